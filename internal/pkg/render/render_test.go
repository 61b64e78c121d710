package render

import (
	"testing"

	"github.com/accelctl/accelctl/internal/pkg/curve"
	"github.com/stretchr/testify/assert"
)

// recorder captures primitive calls for projection tests.
type recorder struct {
	lines   int
	circles []struct{ x, y float64 }
	texts   []string
}

func (r *recorder) Line(x1, y1, x2, y2 float64, style Style) {
	r.lines++
}

func (r *recorder) Circle(cx, cy, _ float64, style Style) {
	r.circles = append(r.circles, struct{ x, y float64 }{cx, cy})
}

func (r *recorder) Text(x, y float64, anchor Anchor, s string, style Style) {
	r.texts = append(r.texts, s)
}

func testTransform() Transform {
	return Transform{Width: 500, Height: 500, Margin: 20}
}

func TestTransformCorners(t *testing.T) {
	tr := testTransform()

	cx, cy := tr.ToCanvas(curve.XMin, curve.YMin)
	assert.InDelta(t, 20.0, cx, 1e-9)
	assert.InDelta(t, 480.0, cy, 1e-9)

	cx, cy = tr.ToCanvas(curve.XMax, curve.YMax)
	assert.InDelta(t, 480.0, cx, 1e-9)
	assert.InDelta(t, 20.0, cy, 1e-9)
}

func TestTransformRoundTrip(t *testing.T) {
	tr := testTransform()

	for _, p := range []curve.Point{
		{Input: 0, Output: 0},
		{Input: 0.25, Output: 0.1},
		{Input: 0.5, Output: 1.5},
		{Input: 1, Output: 3},
	} {
		cx, cy := tr.ToCanvas(p.Input, p.Output)
		x, y := tr.ToFunction(cx, cy)
		assert.InDelta(t, p.Input, x, 1e-9)
		assert.InDelta(t, p.Output, y, 1e-9)
	}
}

func TestHitTest(t *testing.T) {
	m := curve.NewModel()
	v := View{Transform: testTransform(), PointRadius: 6}

	cx, cy := v.ToCanvas(0.5, 0.5)

	index, ok := v.HitTest(m, cx, cy, 6)
	assert.Equal(t, true, ok)
	assert.Equal(t, 1, index)

	// just outside the radius
	_, ok = v.HitTest(m, cx+10, cy+10, 6)
	assert.Equal(t, false, ok)
}

func TestHitTestLowestIndexWins(t *testing.T) {
	m := curve.NewModel()
	err := m.ApplyPoints([]curve.Point{
		{Input: 0, Output: 0},
		{Input: 0.5, Output: 1},
		{Input: 0.5, Output: 1},
		{Input: 1, Output: 2},
	})
	assert.Equal(t, nil, err)

	v := View{Transform: testTransform(), PointRadius: 6}
	cx, cy := v.ToCanvas(0.5, 1)

	index, ok := v.HitTest(m, cx, cy, 6)
	assert.Equal(t, true, ok)
	assert.Equal(t, 1, index)
}

func TestDrawProjectsModel(t *testing.T) {
	m := curve.NewModel()
	m.ApplyPreset(curve.Options{WindowsCurve: true})
	v := View{Transform: testTransform(), PointRadius: 6}

	var r recorder
	v.Draw(m, &r)

	// 22 grid lines plus 3 curve segments
	assert.Equal(t, 22+3, r.lines)
	assert.Equal(t, 4, len(r.circles))
	// one label per point plus two axis labels
	assert.Equal(t, 4+2, len(r.texts))
}

func TestDrawSamples(t *testing.T) {
	points, err := curve.ZipTables(curve.SmoothMouseXCurve, curve.SmoothMouseYCurve)
	assert.Equal(t, nil, err)

	var r recorder
	DrawSamples(points, 100, 30, 2, &r)

	assert.Equal(t, 4, r.lines)
	assert.Equal(t, 5, len(r.circles))
	assert.Equal(t, 5, len(r.texts))

	// the largest sample ends up at the drawable edge
	last := r.circles[4] // x sample 40.0 is the maximum input
	assert.InDelta(t, 98.0, last.x, 1.0)
}

func TestDrawSamplesEmpty(t *testing.T) {
	var r recorder
	DrawSamples(nil, 100, 30, 2, &r)
	assert.Equal(t, 0, r.lines)
}
