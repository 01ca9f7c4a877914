// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ddct

import (
	"errors"
	"fmt"
)

// Config holds the condition labels and gene roles for an analysis.
type Config struct {
	// Control and Stress are the condition labels, matched
	// exactly against the readings' Condition fields.
	Control string
	Stress  string

	// Tested is the ordered set of genes to compare.
	// The order is preserved in the Report.
	Tested []string

	// Housekeeping is the reference gene for ΔCt normalisation.
	Housekeeping string

	// Quality3 and Quality5 are the 3′ and 5′ probes used
	// for the RNA integrity ratio. Both may be empty to
	// skip quality assessment.
	Quality3 string
	Quality5 string

	// Undetermined holds the Ct field tokens treated as
	// undetermined by AnalyzeRows. If empty DefaultUndetermined
	// is used.
	Undetermined []string
}

// Validate checks that c is complete and that no gene is given more than
// one role.
func (c Config) Validate() error {
	switch {
	case c.Control == "":
		return errors.New("missing control condition label")
	case c.Stress == "":
		return errors.New("missing stress condition label")
	case c.Control == c.Stress:
		return fmt.Errorf("control and stress labels are identical: %q", c.Control)
	case c.Housekeeping == "":
		return errors.New("missing housekeeping gene")
	case len(c.Tested) == 0:
		return errors.New("no tested genes")
	case (c.Quality3 == "") != (c.Quality5 == ""):
		return errors.New("both or neither quality genes must be given")
	}

	roles := map[string]string{c.Housekeeping: "housekeeping"}
	for _, g := range []struct{ name, role string }{
		{c.Quality3, "3′ quality"},
		{c.Quality5, "5′ quality"},
	} {
		if g.name == "" {
			continue
		}
		if r, ok := roles[g.name]; ok {
			return fmt.Errorf("gene %q used as both %s and %s gene", g.name, r, g.role)
		}
		roles[g.name] = g.role
	}
	for _, g := range c.Tested {
		if g == "" {
			return errors.New("empty tested gene name")
		}
		if r, ok := roles[g]; ok {
			if r == "tested" {
				return fmt.Errorf("duplicate tested gene %q", g)
			}
			return fmt.Errorf("gene %q used as both %s and tested gene", g, r)
		}
		roles[g] = "tested"
	}
	return nil
}

// GeneResult holds the analysis results for one tested gene.
type GeneResult struct {
	Gene string

	// ControlCt and StressCt are the aggregated Ct values.
	ControlCt Ct
	StressCt  Ct

	// ControlDeltaCt and StressDeltaCt are the ΔCt values
	// relative to the housekeeping gene.
	ControlDeltaCt Ct
	StressDeltaCt  Ct

	// Comparable indicates that the gene has a numeric ΔCt in
	// both conditions. DeltaDeltaCt, FoldChange and Regulation
	// are only meaningful when Comparable is true.
	Comparable   bool
	DeltaDeltaCt float64
	FoldChange   float64
	Regulation   Regulation
}

// Report is the complete result of an analysis.
type Report struct {
	Config Config

	// ControlReference and StressReference are the housekeeping
	// gene Ct values for each condition.
	ControlReference Ct
	StressReference  Ct

	ControlQuality Quality
	StressQuality  Quality

	// Genes holds a result for each tested gene in
	// configuration order.
	Genes []GeneResult

	Upregulated   []string
	Downregulated []string

	// Issues holds every warning and fatal issue in the
	// order they were found.
	Issues []Issue
}

// Comparable returns the results for genes with a ΔΔCt value.
func (r *Report) Comparable() []GeneResult {
	var c []GeneResult
	for _, g := range r.Genes {
		if g.Comparable {
			c = append(c, g)
		}
	}
	return c
}

// Fatal returns the fatal issues in the report.
func (r *Report) Fatal() []Issue { return r.filter(Fatal) }

// Warnings returns the warning issues in the report.
func (r *Report) Warnings() []Issue { return r.filter(Warning) }

func (r *Report) filter(s Severity) []Issue {
	var f []Issue
	for _, i := range r.Issues {
		if i.Severity() == s {
			f = append(f, i)
		}
	}
	return f
}

// Analyze aggregates the readings and performs a ΔΔCt analysis according
// to cfg. A reading for either condition holding an out of range Ct is
// an error and no Report is returned. See AnalyzeDatasets for the other
// returned values.
func Analyze(readings []Reading, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for i, r := range readings {
		if r.Condition != cfg.Control && r.Condition != cfg.Stress {
			continue
		}
		if err := r.Ct.Validate(); err != nil {
			return nil, fmt.Errorf("reading %d: gene %q for %q: %w", i+1, r.Gene, r.Condition, err)
		}
	}
	control, stress := Aggregate(readings, cfg.Control, cfg.Stress)
	return AnalyzeDatasets(control, stress, cfg)
}

// AnalyzeRows parses and aggregates the rows and performs a ΔΔCt analysis
// according to cfg. Ct fields are parsed only for rows matching one of the
// condition labels; a parse error is returned without a Report. See
// AnalyzeDatasets for the other returned values.
func AnalyzeRows(rows []Row, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := NewAggregator(cfg.Control, cfg.Stress)
	for i, r := range rows {
		_, err := a.AddRow(r, cfg.Undetermined...)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	control, stress := a.Datasets()
	return AnalyzeDatasets(control, stress, cfg)
}

// AnalyzeDatasets performs a ΔΔCt analysis of the control and stress
// datasets according to cfg. An error is returned without a Report if cfg
// is invalid. Otherwise the Report is always returned, and if no gene could
// be compared the error is the first fatal Issue found.
func AnalyzeDatasets(control, stress *Dataset, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Report{
		Config:           cfg,
		ControlReference: control.Ct(cfg.Housekeeping),
		StressReference:  stress.Ct(cfg.Housekeeping),
	}

	var deltas [2]DeltaCts
	for i, d := range []*Dataset{control, stress} {
		q := Quality{Condition: d.Condition(), Reason: "no data"}
		if d.Len() != 0 {
			var issues []Issue
			q, issues = AssessQuality(d, cfg.Quality3, cfg.Quality5)
			r.Issues = append(r.Issues, issues...)
		}
		if i == 0 {
			r.ControlQuality = q
		} else {
			r.StressQuality = q
		}

		var issues []Issue
		deltas[i], issues = normalizeCondition(d, cfg.Housekeeping, cfg.Tested)
		r.Issues = append(r.Issues, issues...)
	}

	ddcts, issues := Compare(deltas[0], deltas[1], cfg.Tested)
	r.Issues = append(r.Issues, issues...)
	r.Upregulated, r.Downregulated = Classify(ddcts, cfg.Tested)

	r.Genes = make([]GeneResult, len(cfg.Tested))
	for i, g := range cfg.Tested {
		res := GeneResult{
			Gene:           g,
			ControlCt:      control.Ct(g),
			StressCt:       stress.Ct(g),
			ControlDeltaCt: deltas[0].Values[g],
			StressDeltaCt:  deltas[1].Values[g],
		}
		if v, ok := ddcts[g]; ok {
			res.Comparable = true
			res.DeltaDeltaCt = v
			res.FoldChange = FoldChange(v)
			res.Regulation = RegulationOf(v)
		}
		r.Genes[i] = res
	}

	if len(ddcts) == 0 {
		return r, r.Fatal()[0]
	}
	return r, nil
}
