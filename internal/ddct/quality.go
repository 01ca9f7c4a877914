// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ddct

import "strings"

// Quality is the RNA integrity diagnostic for one condition.
//
// Ratio is Ct(3′)/Ct(5′) for two probes on the same transcript. A ratio
// close to 1 suggests intact RNA. The ratio is informational only and is
// never used to accept or reject data.
type Quality struct {
	Condition string

	// Available indicates that Ratio holds a value.
	Available bool
	Ratio     float64

	// Reason describes why the ratio is unavailable.
	Reason string
}

// AssessQuality returns the 3′/5′ quality ratio for d. Absent quality genes
// give QualityGeneNameMismatch warnings and undetermined quality genes give
// QualityGeneUndetermined warnings; in both cases the ratio is unavailable.
func AssessQuality(d *Dataset, prime3, prime5 string) (Quality, []Issue) {
	cond := d.Condition()
	q := Quality{Condition: cond}
	if prime3 == "" || prime5 == "" {
		q.Reason = "quality genes not configured"
		return q, nil
	}
	c3, c5 := d.Ct(prime3), d.Ct(prime5)

	probes := []struct {
		name string
		ct   Ct
	}{{prime3, c3}, {prime5, c5}}

	var issues []Issue
	var names []string
	for _, g := range probes {
		if g.ct.Status == Absent {
			issues = append(issues, Issue{Kind: QualityGeneNameMismatch, Condition: cond, Gene: g.name})
			names = append(names, g.name)
		}
	}
	if issues != nil {
		q.Reason = "quality gene not found: " + strings.Join(names, ", ")
		return q, issues
	}
	for _, g := range probes {
		if !g.ct.IsNumeric() {
			issues = append(issues, Issue{Kind: QualityGeneUndetermined, Condition: cond, Gene: g.name})
			names = append(names, g.name)
		}
	}
	if issues != nil {
		q.Reason = "quality gene undetermined: " + strings.Join(names, ", ")
		return q, issues
	}

	if c5.Value == 0 {
		q.Reason = "quality gene has zero Ct: " + prime5
		return q, []Issue{{Kind: QualityGeneUndetermined, Condition: cond, Gene: prime5, Detail: "Ct is zero"}}
	}

	q.Available = true
	q.Ratio = c3.Value / c5.Value
	return q, nil
}
