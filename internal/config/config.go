// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config implements loading of ΔΔCt analysis run configurations.
//
// A configuration file is YAML in the form:
//
//  control: kontrola
//  stress: stres
//  housekeeping: ef1alfa
//  tested: [ATG8H, HSP101, RCAR3]
//  quality:
//    prime3: GAPDH3
//    prime5: GAPDH5
//  undetermined: [Undetermined]
//  table:
//    delimiter: tab
//    sample_column: 1
//    detector_column: 2
//    ct_column: 12
//    sheet: 0
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/carbocation/pfx"
	"gopkg.in/yaml.v3"

	"github.com/kortschak/ddct/internal/ddct"
	"github.com/kortschak/ddct/internal/table"
)

// File is a run configuration.
type File struct {
	Control      string   `yaml:"control"`
	Stress       string   `yaml:"stress"`
	Housekeeping string   `yaml:"housekeeping"`
	Tested       []string `yaml:"tested"`
	Quality      Quality  `yaml:"quality"`

	// Undetermined holds the Ct tokens treated
	// as undetermined.
	Undetermined []string `yaml:"undetermined"`

	Table Table `yaml:"table"`
}

// Quality holds the RNA integrity probe gene names.
type Quality struct {
	Prime3 string `yaml:"prime3"`
	Prime5 string `yaml:"prime5"`
}

// Table describes the instrument table layout. Unset fields take their
// values from table.DefaultLayout. A column given by index is not located
// from a header row unless header labels are also given for it.
type Table struct {
	// Delimiter is "tab", "comma", "semicolon" or a single
	// character. If empty the delimiter is detected.
	Delimiter string `yaml:"delimiter"`

	SampleColumn   *int `yaml:"sample_column"`
	DetectorColumn *int `yaml:"detector_column"`
	CtColumn       *int `yaml:"ct_column"`

	SampleHeader   []string `yaml:"sample_header"`
	DetectorHeader []string `yaml:"detector_header"`
	CtHeader       []string `yaml:"ct_header"`

	Sheet int `yaml:"sheet"`
}

// Load returns the configuration held in the YAML file at path.
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, pfx.Err(err)
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return File{}, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	return cfg, nil
}

// Parse returns the configuration read from r. Unknown fields are an error.
func Parse(r io.Reader) (File, error) {
	var cfg File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(&cfg)
	if err != nil && err != io.EOF {
		return File{}, err
	}
	return cfg, nil
}

// Analysis returns the analysis configuration described by f.
func (f File) Analysis() ddct.Config {
	return ddct.Config{
		Control:      f.Control,
		Stress:       f.Stress,
		Tested:       append([]string(nil), f.Tested...),
		Housekeeping: f.Housekeeping,
		Quality3:     f.Quality.Prime3,
		Quality5:     f.Quality.Prime5,
		Undetermined: append([]string(nil), f.Undetermined...),
	}
}

// Layout returns the table layout described by f.
func (f File) Layout() (table.Layout, error) {
	l := table.DefaultLayout
	comma, err := Delimiter(f.Table.Delimiter)
	if err != nil {
		return l, err
	}
	l.Comma = comma
	for _, c := range []struct {
		dst    *int
		src    *int
		labels *[]string
	}{
		{&l.Sample, f.Table.SampleColumn, &l.SampleHeader},
		{&l.Detector, f.Table.DetectorColumn, &l.DetectorHeader},
		{&l.Ct, f.Table.CtColumn, &l.CtHeader},
	} {
		if c.src != nil {
			*c.dst = *c.src
			*c.labels = nil
		}
	}
	for _, h := range []struct {
		dst *[]string
		src []string
	}{
		{&l.SampleHeader, f.Table.SampleHeader},
		{&l.DetectorHeader, f.Table.DetectorHeader},
		{&l.CtHeader, f.Table.CtHeader},
	} {
		if h.src != nil {
			*h.dst = h.src
		}
	}
	l.Sheet = f.Table.Sheet
	return l, nil
}

// Delimiter returns the field delimiter named by s. An empty s returns
// zero, requesting delimiter detection.
func Delimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	}
	r, n := utf8.DecodeRuneInString(s)
	if n != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter: %q", s)
	}
	if r == '\r' || r == '\n' || r == '"' {
		return 0, errors.New("delimiter must not be a quote or line break")
	}
	return r, nil
}

// SplitList splits a comma-separated list of names, dropping empty
// elements and surrounding white space.
func SplitList(s string) []string {
	var list []string
	for _, e := range strings.Split(s, ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			list = append(list, e)
		}
	}
	return list
}
