// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"errors"
	"strings"
)

// Layout describes where the fields of interest are held in a table.
type Layout struct {
	// Comma is the field delimiter. If zero the
	// delimiter is detected from the input.
	Comma rune

	// Sample, Detector and Ct are the zero-based
	// column indices of the sample name, detector
	// name and Ct fields.
	Sample, Detector, Ct int

	// SampleHeader, DetectorHeader and CtHeader hold
	// accepted header labels for each column. If a row
	// holds a label for every labelled column, those
	// column indices are taken from that row and the
	// row is not returned. A column without labels
	// keeps its index. Matching ignores case.
	SampleHeader, DetectorHeader, CtHeader []string

	// Sheet is the zero-based sheet index used for
	// Excel workbooks.
	Sheet int
}

// DefaultLayout is the layout of an Applied Biosystems SDS result export.
var DefaultLayout = Layout{
	Sample:         1,
	Detector:       2,
	Ct:             12,
	SampleHeader:   []string{"Sample Name", "Sample"},
	DetectorHeader: []string{"Detector Name", "Detector", "Target Name", "Target"},
	CtHeader:       []string{"Ct Mean", "Cq Mean"},
}

func (l Layout) validate() error {
	if l.Sample < 0 || l.Detector < 0 || l.Ct < 0 {
		return errors.New("negative column index")
	}
	if l.Sample == l.Detector || l.Sample == l.Ct || l.Detector == l.Ct {
		return errors.New("column indices must be distinct")
	}
	return nil
}

// width returns the minimum number of fields a row must have.
func (l Layout) width() int {
	w := l.Sample
	if l.Detector > w {
		w = l.Detector
	}
	if l.Ct > w {
		w = l.Ct
	}
	return w + 1
}

// header returns the layout with column indices taken from record and
// whether record is a header row. Only labelled columns are located.
func (l Layout) header(record []string) (Layout, bool) {
	var labelled int
	for _, c := range []struct {
		idx    *int
		labels []string
	}{
		{&l.Sample, l.SampleHeader},
		{&l.Detector, l.DetectorHeader},
		{&l.Ct, l.CtHeader},
	} {
		if len(c.labels) == 0 {
			continue
		}
		labelled++
		i := find(record, c.labels)
		if i < 0 {
			return l, false
		}
		*c.idx = i
	}
	if labelled == 0 || l.validate() != nil {
		return l, false
	}
	return l, true
}

// find returns the index of the first field in record matching
// any of labels, or -1 if there is none.
func find(record, labels []string) int {
	for i, f := range record {
		if matchAny(strings.TrimSpace(f), labels) {
			return i
		}
	}
	return -1
}

func matchAny(s string, labels []string) bool {
	for _, l := range labels {
		if strings.EqualFold(s, l) {
			return true
		}
	}
	return false
}
