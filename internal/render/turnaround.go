// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package render

import (
	"fmt"
	"image/color"
	"io"

	strf "github.com/petenewcomb/strf-go"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/vg"
)

// TurnaroundChart builds a bar chart with one bar per job: its waiting time
// with its burst time stacked on top, so each bar's height is the job's
// turnaround time.
func TurnaroundChart(r *strf.Result) (*plot.Plot, error) {
	palette, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", 4)
	if err != nil {
		return nil, err
	}
	colors := palette.Colors()

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Turnaround (average %.2f)", r.AverageTurnaround)
	p.Y.Label.Text = "time"

	p.Title.TextStyle.Color = color.Gray{64}
	p.X.Color = color.Gray{128}
	p.Y.Color = color.Gray{128}
	p.X.Tick.Color = color.Gray{128}
	p.Y.Tick.Color = color.Gray{128}
	p.Legend.TextStyle.Color = color.Gray{64}

	waiting := make([]float64, len(r.Jobs))
	burst := make([]float64, len(r.Jobs))
	labels := make([]string, len(r.Jobs))
	xTicks := make([]plot.Tick, len(r.Jobs))
	for i, jr := range r.Jobs {
		// Rounding can leave a tiny negative waiting time.
		waiting[i] = max(jr.WaitingTime, 0)
		burst[i] = jr.BurstTime
		labels[i] = formatTime(jr.TurnaroundTime)
		xTicks[i] = plot.Tick{Value: float64(i), Label: jr.ID}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)

	barWidth := vg.Points(20)
	waitBars, err := newBarChart(waiting, barWidth)
	if err != nil {
		return nil, err
	}
	waitBars.Color = colors[0]
	waitBars.LineStyle.Width = 0

	burstBars, err := newBarChart(burst, barWidth)
	if err != nil {
		return nil, err
	}
	burstBars.StackOn(waitBars)
	burstBars.Color = colors[1]
	burstBars.LineStyle.Width = 0
	burstBars.Labels = labels
	burstBars.LabelStyle.Color = color.Gray{64}
	burstBars.LabelStyle.Font.Size *= 0.7
	burstBars.LabelOffset.Y = vg.Points(2)

	p.Add(waitBars, burstBars)
	p.Legend.Add("waiting", waitBars)
	p.Legend.Add("burst", burstBars)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = 1 * vg.Millimeter

	return p, nil
}

// WriteTurnaroundSVG writes the result's turnaround chart to w as SVG.
func WriteTurnaroundSVG(w io.Writer, r *strf.Result) error {
	p, err := TurnaroundChart(r)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(ChartWidth, 6*vg.Inch, "svg")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// SaveTurnaroundSVG writes the result's turnaround chart to the named file.
func SaveTurnaroundSVG(path string, r *strf.Result) error {
	p, err := TurnaroundChart(r)
	if err != nil {
		return err
	}
	return p.Save(ChartWidth, 6*vg.Inch, path)
}
