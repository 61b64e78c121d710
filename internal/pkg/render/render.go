// Package render projects the curve model onto an abstract drawing
// surface. It owns the canvas<->function coordinate mapping and the
// point hit testing that runs in canvas units.
package render

import (
	"fmt"
	"math"

	"github.com/accelctl/accelctl/internal/pkg/curve"
	"github.com/lucasb-eyer/go-colorful"
)

type Anchor int

const (
	AnchorLeft Anchor = iota
	AnchorCenter
	AnchorRight
)

type Style struct {
	Color colorful.Color
	Width int
}

// Surface is the external collaborator that knows how to draw
// primitives. The projection never owns a window or an event loop.
type Surface interface {
	Line(x1, y1, x2, y2 float64, style Style)
	Circle(cx, cy, r float64, style Style)
	Text(x, y float64, anchor Anchor, s string, style Style)
}

var (
	gridColor     = colorful.Color{R: 0.55, G: 0.55, B: 0.55}
	pointColor    = colorful.Color{R: 0.9, G: 0.2, B: 0.2}
	selectedColor = colorful.Color{R: 0.2, G: 0.85, B: 0.2}
	labelColor    = colorful.Color{R: 0.85, G: 0.85, B: 0.85}
)

// Transform maps between function coordinates ([XMin,XMax]x[YMin,YMax])
// and canvas pixels, keeping a margin around the drawable area.
// Canvas y grows downwards.
type Transform struct {
	Width, Height float64
	Margin        float64
}

func (t Transform) drawable() (float64, float64) {
	return t.Width - 2*t.Margin, t.Height - 2*t.Margin
}

func (t Transform) ToCanvas(x, y float64) (float64, float64) {
	w, h := t.drawable()
	cx := t.Margin + (x-curve.XMin)/(curve.XMax-curve.XMin)*w
	cy := t.Height - t.Margin - (y-curve.YMin)/(curve.YMax-curve.YMin)*h
	return cx, cy
}

func (t Transform) ToFunction(cx, cy float64) (float64, float64) {
	w, h := t.drawable()
	x := (cx-t.Margin)/w*(curve.XMax-curve.XMin) + curve.XMin
	y := (t.Height-t.Margin-cy)/h*(curve.YMax-curve.YMin) + curve.YMin
	return x, y
}

// View is the projection configuration for one rendering of the model.
type View struct {
	Transform
	PointRadius float64
	HumanLabels bool
}

// HitTest returns the first point index whose canvas position lies
// within radius of the query position. Iteration is in index order, so
// the lowest index wins when points overlap.
func (v View) HitTest(m *curve.Model, queryX, queryY, radius float64) (int, bool) {
	for i := 0; i < m.Len(); i++ {
		p := m.Point(i)
		cx, cy := v.ToCanvas(p.Input, p.Output)
		dx, dy := cx-queryX, cy-queryY
		if dx*dx+dy*dy <= radius*radius {
			return i, true
		}
	}
	return 0, false
}

func (v View) drawGrid(s Surface) {
	w, h := v.drawable()
	for i := 0; i <= 10; i++ {
		x := v.Margin + float64(i)/10*w
		s.Line(x, v.Margin, x, v.Height-v.Margin, Style{Color: gridColor, Width: 1})
		y := v.Margin + float64(i)/10*h
		s.Line(v.Margin, y, v.Width-v.Margin, y, Style{Color: gridColor, Width: 1})
	}
}

// Draw renders the grid, curve segments and control points of the model.
func (v View) Draw(m *curve.Model, s Surface) {
	v.drawGrid(s)

	points := m.Points()
	for i := 0; i < len(points)-1; i++ {
		x1, y1 := v.ToCanvas(points[i].Input, points[i].Output)
		x2, y2 := v.ToCanvas(points[i+1].Input, points[i+1].Output)
		s.Line(x1, y1, x2, y2, Style{Color: segmentColor(points[i], points[i+1]), Width: 2})
	}

	for i, p := range points {
		cx, cy := v.ToCanvas(p.Input, p.Output)
		style := Style{Color: pointColor, Width: 1}
		if m.Selected(i) {
			style = Style{Color: selectedColor, Width: 3}
		}
		s.Circle(cx, cy, v.PointRadius, style)
	}

	for i, p := range points {
		cx, cy := v.ToCanvas(p.Input, p.Output)
		label := fmt.Sprintf("%d (%.2f, %.2f)", i, p.Input, p.Output)
		s.Text(cx, cy-v.PointRadius-1, AnchorCenter, label, Style{Color: labelColor})
	}

	xLabel := "Input Speed"
	if v.HumanLabels {
		xLabel = "Input effort"
	}
	s.Text(v.Width/2, v.Height-v.Margin/2, AnchorCenter, xLabel, Style{Color: labelColor})
	s.Text(v.Margin, v.Margin/2, AnchorLeft, "Output Speed", Style{Color: labelColor})
}

// DrawSamples renders decoded sample points with a transform fitted to
// the data bounds, for curves that exceed the editing domain.
func DrawSamples(points []curve.Point, width, height, margin float64, s Surface) {
	if len(points) == 0 {
		return
	}

	maxX, maxY := 0.0, 0.0
	for _, p := range points {
		maxX = math.Max(maxX, p.Input)
		maxY = math.Max(maxY, p.Output)
	}
	if maxX == 0 {
		maxX = 1
	}
	if maxY == 0 {
		maxY = 1
	}

	w, h := width-2*margin, height-2*margin
	toCanvas := func(p curve.Point) (float64, float64) {
		return margin + p.Input/maxX*w, height - margin - p.Output/maxY*h
	}

	for i := 0; i < len(points)-1; i++ {
		x1, y1 := toCanvas(points[i])
		x2, y2 := toCanvas(points[i+1])
		s.Line(x1, y1, x2, y2, Style{Color: segmentColor(points[i], points[i+1]), Width: 2})
	}
	for _, p := range points {
		cx, cy := toCanvas(p)
		s.Circle(cx, cy, 1, Style{Color: pointColor, Width: 1})
		s.Text(cx, cy-1, AnchorRight, fmt.Sprintf("(%.2f, %.2f)", p.Input, p.Output), Style{Color: labelColor})
	}
}

// segmentColor tints a segment by its slope, flat segments stay blue,
// steep ones drift towards magenta.
func segmentColor(a, b curve.Point) colorful.Color {
	slope := 0.0
	if dx := b.Input - a.Input; dx > 0 {
		slope = (b.Output - a.Output) / dx
	}
	hue := 240.0 + 60.0*math.Min(math.Abs(slope)/5.0, 1.0)
	return colorful.Hsv(hue, 0.75, 0.95)
}
