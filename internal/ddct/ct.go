// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ddct

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Status is the state of a Ct or ΔCt value.
type Status int

const (
	// Absent indicates that no value exists for the gene. It is the
	// zero value so lookups of unknown genes report Absent.
	Absent Status = iota

	// Numeric indicates a valid finite value.
	Numeric

	// Undetermined indicates that the instrument did not detect
	// amplification, or that no valid replicate remained after
	// aggregation.
	Undetermined

	// Missing indicates an empty Ct field in the source table.
	Missing
)

func (s Status) String() string {
	switch s {
	case Absent:
		return "absent"
	case Numeric:
		return "numeric"
	case Undetermined:
		return "undetermined"
	case Missing:
		return "missing"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Ct is a cycle threshold value or a marker explaining why there is no value.
// Value is only meaningful when Status is Numeric.
type Ct struct {
	Value  float64
	Status Status
}

// NumericCt returns a Numeric Ct holding v.
func NumericCt(v float64) Ct { return Ct{Value: v, Status: Numeric} }

// IsNumeric returns whether c holds a usable value.
func (c Ct) IsNumeric() bool { return c.Status == Numeric }

// Validate returns an error if c is Numeric and its value is not a finite
// non-negative number.
func (c Ct) Validate() error {
	if c.Status == Numeric && !inRange(c.Value) {
		return fmt.Errorf("Ct value out of range: %v", c.Value)
	}
	return nil
}

func inRange(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func (c Ct) String() string {
	if c.Status == Numeric {
		return strconv.FormatFloat(c.Value, 'g', -1, 64)
	}
	return c.Status.String()
}

// DefaultUndetermined is the set of Ct field tokens treated as undetermined
// when no tokens are given to ParseCt. Some instrument software versions
// export the misspelt form.
var DefaultUndetermined = []string{"Undetermined", "Undertermined"}

// ParseCt parses a Ct field from an instrument table. An empty field is
// Missing and a field matching one of the undetermined tokens, ignoring
// case, is Undetermined. If no tokens are provided DefaultUndetermined
// is used. Any other field must be a finite non-negative decimal number.
func ParseCt(field string, undetermined ...string) (Ct, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return Ct{Status: Missing}, nil
	}
	if len(undetermined) == 0 {
		undetermined = DefaultUndetermined
	}
	for _, tok := range undetermined {
		if strings.EqualFold(field, tok) {
			return Ct{Status: Undetermined}, nil
		}
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return Ct{}, fmt.Errorf("invalid Ct value %q", field)
	}
	if !inRange(v) {
		return Ct{}, fmt.Errorf("Ct value out of range: %q", field)
	}
	return NumericCt(v), nil
}
