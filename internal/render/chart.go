// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	strf "github.com/petenewcomb/strf-go"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ChartWidth is the width of charts written by WriteSVG and SaveSVG.
var ChartWidth = 9 * vg.Inch

// ganttBars draws one box per executed chunk, with processors along the Y
// axis and time along the X axis.
type ganttBars struct {
	Events []strf.GanttEvent

	// NumCPUs fixes the Y range so idle processors still get a row.
	NumCPUs int

	Colors map[string]color.Color

	// Height is the height of each box in Y data units.
	Height float64

	draw.LineStyle

	LabelStyle text.Style
}

// Plot implements the plot.Plotter interface.
func (g *ganttBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, e := range g.Events {
		y := float64(e.Processor)
		xMin, xMax := trX(e.StartTime), trX(e.EndTime())
		yMin, yMax := trY(y-g.Height/2), trY(y+g.Height/2)

		pts := []vg.Point{
			{X: xMin, Y: yMin},
			{X: xMin, Y: yMax},
			{X: xMax, Y: yMax},
			{X: xMax, Y: yMin},
		}
		c.FillPolygon(g.Colors[e.JobID], c.ClipPolygonXY(pts))

		pts = append(pts, vg.Point{X: xMin, Y: yMin})
		c.StrokeLines(g.LineStyle, c.ClipLinesXY(pts)...)

		mid := vg.Point{X: (xMin + xMax) / 2, Y: (yMin + yMax) / 2}
		if c.Contains(mid) {
			c.FillText(g.LabelStyle, mid, e.JobID)
		}
	}
}

// DataRange implements the plot.DataRanger interface.
func (g *ganttBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = 0, 0
	for _, e := range g.Events {
		xmax = math.Max(xmax, e.EndTime())
	}
	return xmin, xmax, -0.5, float64(g.NumCPUs) - 0.5
}

// markerLines draws full-height vertical lines at the given X values.
type markerLines struct {
	Xs []float64

	draw.LineStyle
}

// Plot implements the plot.Plotter interface.
func (m *markerLines) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, _ := plt.Transforms(&c)
	for _, x := range m.Xs {
		cx := trX(x)
		if !c.ContainsX(cx) {
			continue
		}
		c.StrokeLine2(m.LineStyle, cx, c.Min.Y, cx, c.Max.Y)
	}
}

// DataRange implements the plot.DataRanger interface. It only extends the X
// range.
func (m *markerLines) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	for _, x := range m.Xs {
		xmin = math.Min(xmin, x)
		xmax = math.Max(xmax, x)
	}
	return xmin, xmax, math.Inf(1), math.Inf(-1)
}

// Thumbnail fulfills the plot.Thumbnailer interface.
func (m *markerLines) Thumbnail(c *draw.Canvas) {
	x := (c.Min.X + c.Max.X) / 2
	c.StrokeLine2(m.LineStyle, x, c.Min.Y, x, c.Max.Y)
}

// swatch is a legend entry filled with a single color.
type swatch struct {
	color.Color
}

// Thumbnail fulfills the plot.Thumbnailer interface.
func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.Color, c.ClipPolygonY(pts))
}

// jobColors assigns each job a color from a qualitative palette in input
// order, reusing colors when there are more jobs than the palette holds.
func jobColors(jobs []strf.JobResult) (map[string]color.Color, error) {
	// Paired is defined for 3 through 12 colors.
	n := min(max(len(jobs), 3), 12)
	palette, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", n)
	if err != nil {
		return nil, err
	}
	colors := palette.Colors()
	m := make(map[string]color.Color, len(jobs))
	for i, jr := range jobs {
		m[jr.ID] = colors[i%len(colors)]
	}
	return m, nil
}

// Chart builds a Gantt chart of the result with one row per processor,
// dashed quantum boundaries, and a legend of job colors.
func Chart(r *strf.Result) (*plot.Plot, error) {
	colors, err := jobColors(r.Jobs)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = "STRF schedule"
	p.X.Label.Text = "time"
	p.Y.Label.Text = "processor"

	p.Title.TextStyle.Color = color.Gray{64}
	p.X.Color = color.Gray{128}
	p.Y.Color = color.Gray{128}
	p.X.Tick.Color = color.Gray{128}
	p.Y.Tick.Color = color.Gray{128}
	p.Legend.TextStyle.Color = color.Gray{64}

	yTicks := make([]plot.Tick, r.Params.NumCPUs)
	for i := range yTicks {
		t := &yTicks[i]
		t.Label = strf.ProcessorID(i).String()
		t.Value = float64(i)
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)

	var xTicks []plot.Tick
	for _, m := range r.TimeMarkers() {
		xTicks = append(xTicks, plot.Tick{Value: m, Label: fmt.Sprintf("%g", m)})
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)

	quanta := &markerLines{
		Xs:        r.QuantumMarkers(),
		LineStyle: plotter.DefaultLineStyle,
	}
	quanta.LineStyle.Color = color.Gray{160}
	quanta.LineStyle.Width = 0.3 * vg.Millimeter
	quanta.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}

	bars := &ganttBars{
		Events:    r.Gantt,
		NumCPUs:   r.Params.NumCPUs,
		Colors:    colors,
		Height:    0.6,
		LineStyle: plotter.DefaultLineStyle,
		LabelStyle: text.Style{
			Font:    font.From(plotter.DefaultFont, plotter.DefaultFontSize),
			Handler: plot.DefaultTextHandler,
			XAlign:  text.XCenter,
			YAlign:  text.YCenter,
		},
	}
	bars.LineStyle.Color = color.White
	bars.LineStyle.Width = 0.2 * vg.Millimeter
	bars.LabelStyle.Font.Size *= 0.8

	p.Add(quanta, bars)

	for _, jr := range r.Jobs {
		p.Legend.Add(jr.ID, swatch{colors[jr.ID]})
	}
	p.Legend.Add(fmt.Sprintf("quantum = %g", r.Params.QuantumTime), quanta)
	p.Legend.Top = true
	p.Legend.Padding = 1 * vg.Millimeter
	p.Legend.YOffs = 5 * vg.Millimeter

	return p, nil
}

func chartHeight(r *strf.Result) vg.Length {
	return 2*vg.Inch + vg.Length(r.Params.NumCPUs)*vg.Inch/2
}

// WriteSVG writes the result's Gantt chart to w as SVG.
func WriteSVG(w io.Writer, r *strf.Result) error {
	p, err := Chart(r)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(ChartWidth, chartHeight(r), "svg")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// SaveSVG writes the result's Gantt chart to the named file.
func SaveSVG(path string, r *strf.Result) error {
	p, err := Chart(r)
	if err != nil {
		return err
	}
	return p.Save(ChartWidth, chartHeight(r), path)
}
