// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ddct

// DeltaCts holds the ΔCt values of the tested genes for one condition.
// Every tested gene has an entry; genes without a numeric ΔCt are marked
// Absent or Undetermined. A nil Values map indicates that the condition
// failed validation and was not normalised.
type DeltaCts struct {
	Condition string
	Values    map[string]Ct
}

// Usable returns the number of genes with a numeric ΔCt.
func (m DeltaCts) Usable() int {
	var n int
	for _, c := range m.Values {
		if c.IsNumeric() {
			n++
		}
	}
	return n
}

// Gate checks that d can be normalised against the housekeeping gene and
// returns the housekeeping Ct. The returned error is a fatal Issue of kind
// EmptyDataset, MissingHousekeepingGene or UndeterminedHousekeepingGene.
func Gate(d *Dataset, housekeeping string) (reference float64, err error) {
	cond := d.Condition()
	if d.Len() == 0 {
		return 0, Issue{Kind: EmptyDataset, Condition: cond}
	}
	ref := d.Ct(housekeeping)
	switch ref.Status {
	case Numeric:
		return ref.Value, nil
	case Absent:
		return 0, Issue{Kind: MissingHousekeepingGene, Condition: cond, Gene: housekeeping}
	default:
		return 0, Issue{Kind: UndeterminedHousekeepingGene, Condition: cond, Gene: housekeeping}
	}
}

// Normalize returns the ΔCt of each tested gene in d relative to the
// reference Ct. Genes that are absent or undetermined are marked as such
// in the result and reported as GeneNotFound or GeneUndetermined warnings.
func Normalize(d *Dataset, reference float64, tested []string) (DeltaCts, []Issue) {
	cond := d.Condition()
	m := DeltaCts{Condition: cond, Values: make(map[string]Ct, len(tested))}
	var issues []Issue
	for _, g := range tested {
		c := d.Ct(g)
		switch c.Status {
		case Numeric:
			m.Values[g] = NumericCt(c.Value - reference)
		case Absent:
			m.Values[g] = Ct{Status: Absent}
			issues = append(issues, Issue{Kind: GeneNotFound, Condition: cond, Gene: g})
		default:
			m.Values[g] = Ct{Status: Undetermined}
			issues = append(issues, Issue{Kind: GeneUndetermined, Condition: cond, Gene: g})
		}
	}
	return m, issues
}

// normalizeCondition runs the validation gate and normalisation for one
// condition. If the gate fails, or no tested gene gives a numeric ΔCt,
// the returned issues end with the fatal issue. After a gate failure the
// returned map is nil.
func normalizeCondition(d *Dataset, housekeeping string, tested []string) (DeltaCts, []Issue) {
	ref, err := Gate(d, housekeeping)
	if err != nil {
		return DeltaCts{Condition: d.Condition()}, []Issue{err.(Issue)}
	}
	m, issues := Normalize(d, ref, tested)
	if m.Usable() == 0 {
		issues = append(issues, Issue{Kind: NoUsableDeltaCt, Condition: d.Condition()})
	}
	return m, issues
}
