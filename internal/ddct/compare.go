// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ddct

import (
	"fmt"
	"math"
	"strings"
)

// DeltaDeltaCts holds ΔΔCt values for genes with a numeric ΔCt in both
// conditions.
type DeltaDeltaCts map[string]float64

// Compare returns ΔCt(stress) - ΔCt(control) for each tested gene that has
// a numeric ΔCt in both conditions. Other genes are omitted and reported
// with a GeneExcludedFromComparison warning naming the failing side. If no
// gene can be compared the issues end with a fatal NoComparableGenes issue.
func Compare(control, stress DeltaCts, tested []string) (DeltaDeltaCts, []Issue) {
	ddcts := make(DeltaDeltaCts)
	var issues []Issue
	for _, g := range tested {
		c, s := control.Values[g], stress.Values[g]
		if c.IsNumeric() && s.IsNumeric() {
			ddcts[g] = s.Value - c.Value
			continue
		}
		var (
			sides   []string
			failing string
		)
		for _, side := range []struct {
			m  DeltaCts
			ct Ct
		}{{control, c}, {stress, s}} {
			if side.ct.IsNumeric() {
				continue
			}
			failing = side.m.Condition
			sides = append(sides, fmt.Sprintf("no ΔCt for %q (%s)", side.m.Condition, reason(side.m, side.ct)))
		}
		if len(sides) > 1 {
			failing = ""
		}
		issues = append(issues, Issue{
			Kind:      GeneExcludedFromComparison,
			Condition: failing,
			Gene:      g,
			Detail:    strings.Join(sides, " and "),
		})
	}
	if len(ddcts) == 0 {
		issues = append(issues, Issue{Kind: NoComparableGenes})
	}
	return ddcts, issues
}

func reason(m DeltaCts, c Ct) string {
	if m.Values == nil {
		return "condition not analysed"
	}
	return c.Status.String()
}

// FoldChange returns the fold-change corresponding to a ΔΔCt, 2^(-ΔΔCt).
func FoldChange(ddct float64) float64 {
	return math.Pow(2, -ddct)
}

// Regulation is the direction of expression change between conditions.
type Regulation int

const (
	Unchanged Regulation = iota
	Upregulated
	Downregulated
)

func (r Regulation) String() string {
	switch r {
	case Unchanged:
		return "unchanged"
	case Upregulated:
		return "up"
	case Downregulated:
		return "down"
	default:
		return fmt.Sprintf("Regulation(%d)", int(r))
	}
}

// RegulationOf returns the regulation direction for a ΔΔCt. A ΔΔCt of
// exactly zero is Unchanged.
func RegulationOf(ddct float64) Regulation {
	switch {
	case ddct < 0:
		return Upregulated
	case ddct > 0:
		return Downregulated
	default:
		return Unchanged
	}
}

// Classify partitions the genes in ddcts into up- and down-regulated sets
// in the order they appear in tested. Genes with a ΔΔCt of zero are in
// neither set.
func Classify(ddcts DeltaDeltaCts, tested []string) (up, down []string) {
	for _, g := range tested {
		v, ok := ddcts[g]
		if !ok {
			continue
		}
		switch RegulationOf(v) {
		case Upregulated:
			up = append(up, g)
		case Downregulated:
			down = append(down, g)
		}
	}
	return up, down
}
