// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// ddct calculates relative gene expression change between a control and a
// stress sample from a qPCR instrument result table using the comparative
// ΔΔCt method.
//
// The input table is a delimited text export, optionally compressed, or an
// Excel workbook holding one row per well. By default the layout of an
// Applied Biosystems SDS export is assumed: the sample name in the second
// column, the detector name in the third and the Ct mean in the thirteenth.
// If a header row naming the columns is found, the columns are taken from
// it, except for columns given explicitly by index.
//
// Replicate wells are averaged for each sample and detector; empty and
// undetermined wells are excluded from the average. Each tested gene is
// normalised against the housekeeping gene to give ΔCt, and the stress
// ΔCt is compared to the control ΔCt to give ΔΔCt and fold-change,
// 2^(-ΔΔCt). If 3′ and 5′ probes of a quality control transcript are given,
// their Ct ratio is reported for each sample as an RNA integrity indicator.
//
// Settings may be given in a YAML configuration file; flags override values
// from the file. The report is written to stdout or the file given by -out
// in text, JSON or TSV format. If no tested gene can be compared, the report
// is still written and ddct exits with status 1.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/kortschak/ddct/internal/config"
	"github.com/kortschak/ddct/internal/ddct"
	"github.com/kortschak/ddct/internal/report"
	"github.com/kortschak/ddct/internal/table"
)

func main() {
	var (
		in        = flag.String("in", "", "specify the qPCR result table (- for stdin - required)")
		cfgPath   = flag.String("config", "", "specify a YAML run configuration")
		control   = flag.String("control", "", "specify the control sample name")
		stress    = flag.String("stress", "", "specify the stress sample name")
		tested    = flag.String("tested", "", "specify the comma-separated list of tested genes")
		house     = flag.String("housekeeping", "", "specify the housekeeping reference gene")
		quality3  = flag.String("quality3", "", "specify the 3′ quality control probe gene")
		quality5  = flag.String("quality5", "", "specify the 5′ quality control probe gene")
		undet     = flag.String("undetermined", "", "specify the comma-separated Ct tokens treated as undetermined")
		delim     = flag.String("delimiter", "", "specify the table delimiter (tab, comma, semicolon or a character - detected if empty)")
		sampleCol = flag.Int("sample-col", -1, "specify the zero-based sample name column")
		detectCol = flag.Int("detector-col", -1, "specify the zero-based detector name column")
		ctCol     = flag.Int("ct-col", -1, "specify the zero-based Ct column")
		sheet     = flag.Int("sheet", 0, "specify the zero-based sheet of an Excel workbook")
		format    = flag.String("format", "text", "specify the report format (text, json or tsv)")
		out       = flag.String("out", "", "specify the report output file (default stdout)")
		plotPath  = flag.String("plot", "", "specify a fold-change plot output file (.png, .svg or .pdf)")
		help      = flag.Bool("help", false, "print help text")
	)
	flag.Parse()

	if *help {
		flag.Usage()
		fmt.Fprintf(os.Stderr, `
%s calculates relative gene expression change between a control and a
stress sample from a qPCR instrument result table using the comparative
ΔΔCt method.

The input table is a delimited text export, optionally gzip, bzip2, xz or
zip compressed, or an Excel workbook holding one row per well. By default
the layout of an Applied Biosystems SDS export is assumed. If a header row
naming the sample, detector and Ct mean columns is found, the columns are
taken from it. Columns given with -sample-col, -detector-col or -ct-col
are used as given.

Settings may be given in a YAML configuration file in the form:

  control: kontrola
  stress: stres
  housekeeping: ef1alfa
  tested: [ATG8H, HSP101, RCAR3]
  quality:
    prime3: GAPDH3
    prime5: GAPDH5
  undetermined: [Undetermined]
  table:
    delimiter: tab
    sample_column: 1
    detector_column: 2
    ct_column: 12

Flags override values from the configuration file.

If no tested gene can be compared, the report is still written and the
program exits with status 1.

`, filepath.Base(os.Args[0]))
		os.Exit(0)
	}

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.Println(os.Args)

	var file config.File
	if *cfgPath != "" {
		log.Println("[loading configuration]")
		var err error
		file, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load configuration: %v", err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "control":
			file.Control = *control
		case "stress":
			file.Stress = *stress
		case "tested":
			file.Tested = config.SplitList(*tested)
		case "housekeeping":
			file.Housekeeping = *house
		case "quality3":
			file.Quality.Prime3 = *quality3
		case "quality5":
			file.Quality.Prime5 = *quality5
		case "undetermined":
			file.Undetermined = config.SplitList(*undet)
		case "delimiter":
			file.Table.Delimiter = *delim
		case "sample-col":
			file.Table.SampleColumn = sampleCol
		case "detector-col":
			file.Table.DetectorColumn = detectCol
		case "ct-col":
			file.Table.CtColumn = ctCol
		case "sheet":
			file.Table.Sheet = *sheet
		}
	})

	cfg := file.Analysis()
	err := cfg.Validate()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	layout, err := file.Layout()
	if err != nil {
		log.Fatalf("invalid table layout: %v", err)
	}
	write, err := writerFor(*format)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("[loading qPCR table]")
	rows, err := table.ReadFile(*in, layout)
	if err != nil {
		log.Fatalf("failed to load qPCR table: %v", err)
	}

	log.Printf("[analysing %s vs %s with reference %s]", cfg.Stress, cfg.Control, cfg.Housekeeping)
	r, analysisErr := ddct.AnalyzeRows(rows, cfg)
	if r == nil {
		log.Fatalf("failed to analyse qPCR table: %v", analysisErr)
	}
	for _, i := range r.Issues {
		log.Printf("%s: %v", i.Severity(), i)
	}

	log.Println("[writing report]")
	err = writeReport(*out, write, r)
	if err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
	if *plotPath != "" && analysisErr == nil {
		log.Println("[plotting fold change]")
		err = report.Plot(*plotPath, r)
		if err != nil {
			log.Fatalf("failed to plot fold change: %v", err)
		}
	}

	if analysisErr != nil {
		var issue ddct.Issue
		if errors.As(analysisErr, &issue) {
			log.Printf("no comparison possible: %v", issue)
		}
		os.Exit(1)
	}
}

func writerFor(format string) (func(io.Writer, *ddct.Report) error, error) {
	switch strings.ToLower(format) {
	case "text":
		return report.WriteText, nil
	case "json":
		return report.WriteJSON, nil
	case "tsv":
		return report.WriteTSV, nil
	default:
		return nil, fmt.Errorf("unknown report format: %q", format)
	}
}

func writeReport(path string, write func(io.Writer, *ddct.Report) error, r *ddct.Report) (err error) {
	if path == "" {
		return write(os.Stdout, r)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()
	return write(f, r)
}
