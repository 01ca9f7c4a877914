// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"io"

	"github.com/kortschak/ddct/internal/ddct"
)

// NA is written for values that are not available.
const NA = "NA"

var tsvHeader = []string{
	"gene",
	"control_ct", "stress_ct",
	"control_delta_ct", "stress_delta_ct",
	"delta_delta_ct", "fold_change", "regulation",
}

// WriteTSV writes the per-gene results of r to w as a tab-separated table
// with a header line.
func WriteTSV(w io.Writer, r *ddct.Report) error {
	c := csv.NewWriter(w)
	c.Comma = '\t'
	err := c.Write(tsvHeader)
	if err != nil {
		return err
	}
	for _, g := range r.Genes {
		record := []string{
			g.Gene,
			ctField(g.ControlCt), ctField(g.StressCt),
			ctField(g.ControlDeltaCt), ctField(g.StressDeltaCt),
			NA, NA, NA,
		}
		if g.Comparable {
			record[5] = formatFloat(g.DeltaDeltaCt)
			record[6] = formatFloat(g.FoldChange)
			record[7] = g.Regulation.String()
		}
		err = c.Write(record)
		if err != nil {
			return err
		}
	}
	c.Flush()
	return c.Error()
}

func ctField(c ddct.Ct) string {
	if !c.IsNumeric() {
		return NA
	}
	return formatFloat(c.Value)
}
