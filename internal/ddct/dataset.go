// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ddct

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// Precision is the number of decimal digits aggregated Ct values are
// rounded to.
const Precision = 7

// Reading is a single well measurement from an instrument table.
type Reading struct {
	// Condition is the sample label exactly as it appears
	// in the source table.
	Condition string

	// Gene is the detector name.
	Gene string

	Ct Ct
}

// Row is an unparsed table row reduced to its condition, gene and Ct fields.
type Row struct {
	Condition string
	Gene      string
	Ct        string
}

// Dataset holds the aggregated Ct values for one condition. A Dataset is
// read-only once built.
type Dataset struct {
	condition string

	// genes is the sorted set of keys in ct.
	genes []string
	ct    map[string]Ct
}

// NewDataset returns a Dataset for the named condition holding the provided
// per-gene values. Missing values and Numeric values that are not finite
// and non-negative are stored as Undetermined. Absent values are not stored.
func NewDataset(condition string, values map[string]Ct) *Dataset {
	d := &Dataset{condition: condition, ct: make(map[string]Ct, len(values))}
	for g, c := range values {
		switch c.Status {
		case Absent:
			continue
		case Missing:
			c = Ct{Status: Undetermined}
		case Numeric:
			if !inRange(c.Value) {
				c = Ct{Status: Undetermined}
			}
		}
		d.ct[g] = c
		d.genes = append(d.genes, g)
	}
	sort.Strings(d.genes)
	return d
}

// Condition returns the condition label of the dataset.
func (d *Dataset) Condition() string {
	if d == nil {
		return ""
	}
	return d.condition
}

// Len returns the number of genes in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.genes)
}

// Genes returns the sorted gene names held by the dataset.
func (d *Dataset) Genes() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.genes...)
}

// Ct returns the aggregated Ct for gene. If the gene is not in the
// dataset the returned Ct has Status Absent.
func (d *Dataset) Ct(gene string) Ct {
	if d == nil {
		return Ct{}
	}
	return d.ct[gene]
}

// Aggregator groups readings by condition and gene and averages
// replicate wells. Readings may be added in any order.
type Aggregator struct {
	labels [2]string
	wells  [2]map[string][]float64
}

// NewAggregator returns an Aggregator collecting readings for the
// control and stress condition labels.
func NewAggregator(control, stress string) *Aggregator {
	return &Aggregator{
		labels: [2]string{control, stress},
		wells:  [2]map[string][]float64{make(map[string][]float64), make(map[string][]float64)},
	}
}

// Add adds r to the aggregation and reports whether the reading's condition
// matched either label. Undetermined and Missing readings, and Numeric
// readings that are not finite and non-negative, register the gene without
// contributing to its average.
func (a *Aggregator) Add(r Reading) bool {
	var matched bool
	for i, l := range a.labels {
		if r.Condition != l {
			continue
		}
		matched = true
		v := a.wells[i][r.Gene]
		if r.Ct.IsNumeric() && inRange(r.Ct.Value) {
			v = append(v, r.Ct.Value)
		}
		a.wells[i][r.Gene] = v
	}
	return matched
}

// AddRow parses the Ct field of r using the undetermined tokens and adds it
// to the aggregation as Add does. The Ct field of rows that do not match
// either label is not parsed.
func (a *Aggregator) AddRow(r Row, undetermined ...string) (bool, error) {
	if r.Condition != a.labels[0] && r.Condition != a.labels[1] {
		return false, nil
	}
	ct, err := ParseCt(r.Ct, undetermined...)
	if err != nil {
		return true, fmt.Errorf("gene %q for %q: %w", r.Gene, r.Condition, err)
	}
	return a.Add(Reading{Condition: r.Condition, Gene: r.Gene, Ct: ct}), nil
}

// Datasets returns the control and stress datasets for the readings added
// so far. A gene with no valid replicate is Undetermined.
func (a *Aggregator) Datasets() (control, stress *Dataset) {
	return a.dataset(0), a.dataset(1)
}

func (a *Aggregator) dataset(i int) *Dataset {
	d := &Dataset{condition: a.labels[i], ct: make(map[string]Ct, len(a.wells[i]))}
	for g, v := range a.wells[i] {
		d.genes = append(d.genes, g)
		if len(v) == 0 {
			d.ct[g] = Ct{Status: Undetermined}
			continue
		}
		d.ct[g] = NumericCt(mean(v))
	}
	sort.Strings(d.genes)
	return d
}

// mean returns the rounded mean of v. The values are sorted first so the
// result does not depend on reading order.
func mean(v []float64) float64 {
	s := append([]float64(nil), v...)
	sort.Float64s(s)
	return scalar.Round(stat.Mean(s, nil), Precision)
}

// Aggregate returns the control and stress datasets for the readings.
// Readings whose condition matches neither label are ignored.
func Aggregate(readings []Reading, control, stress string) (c, s *Dataset) {
	a := NewAggregator(control, stress)
	for _, r := range readings {
		a.Add(r)
	}
	return a.Datasets()
}
