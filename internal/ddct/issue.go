// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ddct

import "fmt"

// Severity is the severity of an Issue.
type Severity int

const (
	// Warning issues are recorded and analysis continues.
	Warning Severity = iota

	// Fatal issues halt analysis of the affected condition
	// or of the comparison.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Kind is the kind of problem an Issue describes.
type Kind int

const (
	// Fatal kinds.
	EmptyDataset Kind = iota + 1
	MissingHousekeepingGene
	UndeterminedHousekeepingGene
	NoUsableDeltaCt
	NoComparableGenes

	// Warning kinds.
	GeneNotFound
	GeneUndetermined
	QualityGeneNameMismatch
	QualityGeneUndetermined
	GeneExcludedFromComparison
)

var kindNames = [...]string{
	EmptyDataset:                 "EmptyDataset",
	MissingHousekeepingGene:      "MissingHousekeepingGene",
	UndeterminedHousekeepingGene: "UndeterminedHousekeepingGene",
	NoUsableDeltaCt:              "NoUsableDeltaCt",
	NoComparableGenes:            "NoComparableGenes",
	GeneNotFound:                 "GeneNotFound",
	GeneUndetermined:             "GeneUndetermined",
	QualityGeneNameMismatch:      "QualityGeneNameMismatch",
	QualityGeneUndetermined:      "QualityGeneUndetermined",
	GeneExcludedFromComparison:   "GeneExcludedFromComparison",
}

func (k Kind) String() string {
	if k <= 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Severity returns the severity of issues of kind k.
func (k Kind) Severity() Severity {
	if EmptyDataset <= k && k <= NoComparableGenes {
		return Fatal
	}
	return Warning
}

// Issue is a problem found during analysis. Issue satisfies the error
// interface so fatal issues can be returned to callers directly.
type Issue struct {
	Kind Kind

	// Condition is the condition label the issue applies
	// to, or empty if it applies to the comparison.
	Condition string

	// Gene is the gene the issue applies to, if any.
	Gene string

	// Detail holds additional context.
	Detail string
}

// Severity returns the severity of the issue.
func (i Issue) Severity() Severity { return i.Kind.Severity() }

func (i Issue) Error() string {
	var msg string
	switch i.Kind {
	case EmptyDataset:
		msg = fmt.Sprintf("no rows found for condition %q: check the condition label against the table", i.Condition)
	case MissingHousekeepingGene:
		msg = fmt.Sprintf("housekeeping gene %q not found for %q: check the gene name", i.Gene, i.Condition)
	case UndeterminedHousekeepingGene:
		msg = fmt.Sprintf("housekeeping gene %q is undetermined for %q: no amplification was detected so ΔCt cannot be calculated", i.Gene, i.Condition)
	case NoUsableDeltaCt:
		msg = fmt.Sprintf("no tested gene has a ΔCt value for %q", i.Condition)
	case NoComparableGenes:
		msg = "no tested gene has a ΔCt value in both conditions"
	case GeneNotFound:
		msg = fmt.Sprintf("gene %q not found for %q: check the gene name", i.Gene, i.Condition)
	case GeneUndetermined:
		msg = fmt.Sprintf("gene %q is undetermined for %q: ΔCt cannot be calculated", i.Gene, i.Condition)
	case QualityGeneNameMismatch:
		msg = fmt.Sprintf("quality gene %q not found for %q: check the gene name", i.Gene, i.Condition)
	case QualityGeneUndetermined:
		msg = fmt.Sprintf("quality gene %q is undetermined for %q: quality ratio cannot be calculated", i.Gene, i.Condition)
	case GeneExcludedFromComparison:
		msg = fmt.Sprintf("gene %q excluded from comparison", i.Gene)
	default:
		msg = i.Kind.String()
	}
	if i.Detail != "" {
		msg += ": " + i.Detail
	}
	return msg
}
