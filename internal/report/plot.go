// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kortschak/ddct/internal/ddct"
)

var (
	upColor   = color.RGBA{R: 200, A: 255}
	downColor = color.RGBA{B: 200, A: 255}
)

// Plot writes a bar plot of log2 fold-change for each comparable gene in r
// to path. The image format is determined by the path extension.
func Plot(path string, r *ddct.Report) error {
	genes := r.Comparable()
	if len(genes) == 0 {
		return errors.New("no comparable genes to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Fold change\n%s vs %s (reference %s)", r.Config.Stress, r.Config.Control, r.Config.Housekeeping)
	p.Y.Label.Text = "fold change"
	p.Y.Tick.Marker = foldTicks{}

	// Up- and down-regulated genes are plotted as separate
	// bar series so they can be coloured independently.
	names := make([]string, len(genes))
	up := make(plotter.Values, len(genes))
	down := make(plotter.Values, len(genes))
	log2FC := make([]float64, len(genes))
	for i, g := range genes {
		names[i] = g.Gene
		// log2(2^(-ΔΔCt)) is -ΔΔCt.
		log2FC[i] = -g.DeltaDeltaCt
		if log2FC[i] >= 0 {
			up[i] = log2FC[i]
		} else {
			down[i] = log2FC[i]
		}
	}

	w := vg.Points(20)
	for _, s := range []struct {
		values plotter.Values
		color  color.Color
	}{
		{up, upColor},
		{down, downColor},
	} {
		bars, err := plotter.NewBarChart(s.values, w)
		if err != nil {
			return err
		}
		bars.Color = s.color
		bars.LineStyle.Width = 0
		p.Add(bars)
	}

	extent := math.Max(1, math.Ceil(math.Max(math.Abs(floats.Min(log2FC)), math.Abs(floats.Max(log2FC)))))
	p.Y.Min = -extent
	p.Y.Max = extent
	zero, err := plotter.NewLine(plotter.XYs{{X: -0.5, Y: 0}, {X: float64(len(genes)) - 0.5, Y: 0}})
	if err != nil {
		return err
	}
	p.Add(zero)
	p.NominalX(names...)

	width := vg.Length(len(genes))*2*vg.Centimeter + 6*vg.Centimeter
	return p.Save(width, 12*vg.Centimeter, path)
}

// foldTicks marks integer log2 fold-change values with their
// linear fold-change.
type foldTicks struct{}

func (foldTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for v := math.Ceil(min); v <= max; v++ {
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(math.Exp2(v), 'g', 3, 64)})
	}
	return ticks
}
