// Derived from https://github.com/gonum/plot/blob/v0.16.0/plotter/barchart.go:
// Copyright ©2015 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A barChart draws one vertical bar per value at integer X positions, so
// that it lines up with nominal job ticks.
type barChart struct {
	// Values holds the height of each bar.
	Values []float64

	// Labels, when present, are drawn above each bar.
	Labels []string

	// Width is the width of the bars.
	Width vg.Length

	// Color is the fill color of the bars.
	Color color.Color

	// LineStyle is the style of the outline of the bars.
	draw.LineStyle

	// LabelStyle is the style of the label text.
	LabelStyle text.Style

	// LabelOffset is added to the position of each label.
	LabelOffset vg.Point

	// stackedOn is the bar chart upon which
	// this bar chart is stacked.
	stackedOn *barChart
}

// newBarChart returns a bar chart with a bar for each value.
func newBarChart(values []float64, width vg.Length) (*barChart, error) {
	if width <= 0 {
		return nil, errors.New("plotter: width parameter was not positive")
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.New("plotter: bar value is not finite")
		}
	}
	return &barChart{
		Values:    append([]float64(nil), values...),
		Width:     width,
		Color:     color.Black,
		LineStyle: plotter.DefaultLineStyle,
		LabelStyle: text.Style{
			Font:    font.From(plotter.DefaultFont, plotter.DefaultFontSize),
			Handler: plot.DefaultTextHandler,
			XAlign:  text.XCenter,
		},
	}, nil
}

// BarHeight returns the top of the ith bar, taking into account any bars
// upon which it is stacked.
func (b *barChart) BarHeight(i int) float64 {
	if b == nil {
		return 0
	}
	ht := 0.0
	if i >= 0 && i < len(b.Values) {
		ht += b.Values[i]
	}
	return ht + b.stackedOn.BarHeight(i)
}

// StackOn stacks a bar chart on top of another.
func (b *barChart) StackOn(on *barChart) {
	b.stackedOn = on
}

// Plot implements the plot.Plotter interface.
func (b *barChart) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	for i, v := range b.Values {
		x := trX(float64(i))
		if !c.ContainsX(x) {
			continue
		}
		xMin := x - b.Width/2
		xMax := xMin + b.Width
		bottom := b.stackedOn.BarHeight(i)
		yMin := trY(bottom)
		yMax := trY(bottom + v)

		pts := []vg.Point{
			{X: xMin, Y: yMin},
			{X: xMin, Y: yMax},
			{X: xMax, Y: yMax},
			{X: xMax, Y: yMin},
		}
		c.FillPolygon(b.Color, c.ClipPolygonY(pts))

		pts = append(pts, vg.Point{X: xMin, Y: yMin})
		c.StrokeLines(b.LineStyle, c.ClipLinesY(pts)...)

		if len(b.Labels) > 0 {
			pt := vg.Point{X: x + b.LabelOffset.X, Y: yMax + b.LabelOffset.Y}
			c.FillText(b.LabelStyle, pt, b.Labels[i])
		}
	}
}

// DataRange implements the plot.DataRanger interface.
func (b *barChart) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = -0.5, float64(len(b.Values))-0.5
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for i := range b.Values {
		bottom := b.stackedOn.BarHeight(i)
		top := b.BarHeight(i)
		ymin = math.Min(ymin, math.Min(bottom, top))
		ymax = math.Max(ymax, math.Max(bottom, top))
	}
	return xmin, xmax, ymin, ymax
}

// GlyphBoxes implements the GlyphBoxer interface.
func (b *barChart) GlyphBoxes(plt *plot.Plot) []plot.GlyphBox {
	boxes := make([]plot.GlyphBox, len(b.Values)+len(b.Labels))
	for i := range b.Values {
		boxes[i].X = plt.X.Norm(float64(i))
		boxes[i].Rectangle = vg.Rectangle{
			Min: vg.Point{X: -b.Width / 2},
			Max: vg.Point{X: b.Width / 2},
		}
	}
	for i, label := range b.Labels {
		box := &boxes[len(b.Values)+i]
		*box = boxes[i]
		box.Y = plt.Y.Norm(b.BarHeight(i))
		box.Min.Y += b.LabelOffset.Y
		box.Max.Y += b.LabelOffset.Y + b.LabelStyle.Rectangle(label).Max.Y
	}
	return boxes
}

// Thumbnail fulfills the plot.Thumbnailer interface.
func (b *barChart) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(b.Color, c.ClipPolygonY(pts))

	pts = append(pts, vg.Point{X: c.Min.X, Y: c.Min.Y})
	c.StrokeLines(b.LineStyle, c.ClipLinesY(pts)...)
}
