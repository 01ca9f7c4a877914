// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/kortschak/ddct/internal/ddct"
)

// WriteText writes a human-readable rendering of r to w.
func WriteText(w io.Writer, r *ddct.Report) error {
	bw := bufio.NewWriter(w)
	cfg := r.Config

	fmt.Fprintf(bw, "Reference gene: %s\n", cfg.Housekeeping)
	for _, c := range []struct {
		title   string
		label   string
		ref     ddct.Ct
		quality ddct.Quality
		ct      func(ddct.GeneResult) (ddct.Ct, ddct.Ct)
	}{
		{
			title: "Control", label: cfg.Control, ref: r.ControlReference, quality: r.ControlQuality,
			ct: func(g ddct.GeneResult) (ddct.Ct, ddct.Ct) { return g.ControlCt, g.ControlDeltaCt },
		},
		{
			title: "Stress", label: cfg.Stress, ref: r.StressReference, quality: r.StressQuality,
			ct: func(g ddct.GeneResult) (ddct.Ct, ddct.Ct) { return g.StressCt, g.StressDeltaCt },
		},
	} {
		fmt.Fprintf(bw, "\n%s (%s)\n", c.title, c.label)
		fmt.Fprintf(bw, "Reference Ct: %s\n", c.ref)
		if cfg.Quality3 != "" {
			fmt.Fprintf(bw, "Quality ratio (%s/%s): %s\n", cfg.Quality3, cfg.Quality5, qualityText(c.quality))
		}
		fmt.Fprintln(bw, "Gene\tCt\tΔCt")
		for _, g := range r.Genes {
			ct, dct := c.ct(g)
			fmt.Fprintf(bw, "%s\t%s\t%s\n", g.Gene, ct, dct)
		}
	}

	fmt.Fprintln(bw, "\nComparison")
	fmt.Fprintln(bw, "Gene\tΔΔCt\tFold change\tRegulation")
	for _, g := range r.Genes {
		if !g.Comparable {
			fmt.Fprintf(bw, "%s\texcluded\n", g.Gene)
			continue
		}
		fmt.Fprintf(bw, "%s\t%s\t%s\t%s\n", g.Gene, formatFloat(g.DeltaDeltaCt), formatFloat(g.FoldChange), g.Regulation)
	}

	if len(r.Upregulated) != 0 {
		fmt.Fprintln(bw, "\nGenes with higher expression in stress samples; these take part in the response to this stress:")
		for _, g := range r.Upregulated {
			fmt.Fprintf(bw, " - %s\n", g)
		}
	}
	if len(r.Downregulated) != 0 {
		fmt.Fprintln(bw, "\nGenes with lower expression in stress samples; these may hamper the response to this stress:")
		for _, g := range r.Downregulated {
			fmt.Fprintf(bw, " - %s\n", g)
		}
	}

	if len(r.Issues) != 0 {
		fmt.Fprintln(bw, "\nIssues")
		for _, i := range r.Issues {
			fmt.Fprintf(bw, "%s\t%s\t%v\n", i.Severity(), i.Kind, i)
		}
	}

	return bw.Flush()
}

func qualityText(q ddct.Quality) string {
	if !q.Available {
		return "unavailable (" + q.Reason + ")"
	}
	return formatFloat(q.Ratio)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
