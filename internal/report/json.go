// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/json"
	"io"

	"github.com/kortschak/ddct/internal/ddct"
)

// SummaryDoc is the JSON rendering of a report.
type SummaryDoc struct {
	// Control and Stress are the condition labels.
	Control string `json:"control"`
	Stress  string `json:"stress"`

	// Housekeeping is the reference gene and ControlReference
	// and StressReference are its Ct values.
	Housekeeping     string `json:"housekeeping"`
	ControlReference Value  `json:"control_reference"`
	StressReference  Value  `json:"stress_reference"`

	// ControlQuality and StressQuality are the RNA
	// integrity ratios for each condition.
	ControlQuality Quality `json:"control_quality"`
	StressQuality  Quality `json:"stress_quality"`

	// Genes holds the results for each tested gene in
	// the configured order.
	Genes []Gene `json:"genes"`

	Upregulated   []string `json:"upregulated"`
	Downregulated []string `json:"downregulated"`

	Issues []Issue `json:"issues"`
}

// Value is a numeric value or the reason it is not available.
type Value struct {
	Value  *float64 `json:"value,omitempty"`
	Status string   `json:"status"`
}

// Quality is an RNA integrity ratio.
type Quality struct {
	Ratio  *float64 `json:"ratio,omitempty"`
	Reason string   `json:"reason,omitempty"`
}

// Gene is the result for a single tested gene. DeltaDeltaCt,
// FoldChange and Regulation are only present for genes with a
// ΔCt in both conditions.
type Gene struct {
	Name           string   `json:"name"`
	ControlCt      Value    `json:"control_ct"`
	StressCt       Value    `json:"stress_ct"`
	ControlDeltaCt Value    `json:"control_delta_ct"`
	StressDeltaCt  Value    `json:"stress_delta_ct"`
	DeltaDeltaCt   *float64 `json:"delta_delta_ct,omitempty"`
	FoldChange     *float64 `json:"fold_change,omitempty"`
	Regulation     string   `json:"regulation,omitempty"`
}

// Issue is a warning or fatal issue.
type Issue struct {
	Severity  string `json:"severity"`
	Kind      string `json:"kind"`
	Condition string `json:"condition,omitempty"`
	Gene      string `json:"gene,omitempty"`
	Message   string `json:"message"`
}

// Summarize returns the SummaryDoc for r.
func Summarize(r *ddct.Report) SummaryDoc {
	doc := SummaryDoc{
		Control:          r.Config.Control,
		Stress:           r.Config.Stress,
		Housekeeping:     r.Config.Housekeeping,
		ControlReference: valueOf(r.ControlReference),
		StressReference:  valueOf(r.StressReference),
		ControlQuality:   qualityOf(r.ControlQuality),
		StressQuality:    qualityOf(r.StressQuality),
		Genes:            make([]Gene, 0, len(r.Genes)),
		Upregulated:      nonNil(r.Upregulated),
		Downregulated:    nonNil(r.Downregulated),
		Issues:           make([]Issue, 0, len(r.Issues)),
	}
	for _, g := range r.Genes {
		e := Gene{
			Name:           g.Gene,
			ControlCt:      valueOf(g.ControlCt),
			StressCt:       valueOf(g.StressCt),
			ControlDeltaCt: valueOf(g.ControlDeltaCt),
			StressDeltaCt:  valueOf(g.StressDeltaCt),
		}
		if g.Comparable {
			d, fc := g.DeltaDeltaCt, g.FoldChange
			e.DeltaDeltaCt = &d
			e.FoldChange = &fc
			e.Regulation = g.Regulation.String()
		}
		doc.Genes = append(doc.Genes, e)
	}
	for _, i := range r.Issues {
		doc.Issues = append(doc.Issues, Issue{
			Severity:  i.Severity().String(),
			Kind:      i.Kind.String(),
			Condition: i.Condition,
			Gene:      i.Gene,
			Message:   i.Error(),
		})
	}
	return doc
}

// WriteJSON writes the SummaryDoc for r to w as indented JSON.
func WriteJSON(w io.Writer, r *ddct.Report) error {
	b, err := json.MarshalIndent(Summarize(r), "", "\t")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

func valueOf(c ddct.Ct) Value {
	v := Value{Status: c.Status.String()}
	if c.IsNumeric() {
		f := c.Value
		v.Value = &f
	}
	return v
}

func qualityOf(q ddct.Quality) Quality {
	if !q.Available {
		return Quality{Reason: q.Reason}
	}
	r := q.Ratio
	return Quality{Ratio: &r}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
