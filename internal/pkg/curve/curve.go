// Package curve implements the piecewise-linear pointer acceleration
// curve model: an ordered sequence of control points, monotonic in input,
// together with selection state for batch edits.
package curve

import (
	"fmt"
	"sort"
)

// Normalized coordinate bounds of the curve domain and range.
// The range goes beyond 1.0 so that boost/cap presets have headroom.
const (
	XMin = 0.0
	XMax = 1.0
	YMin = 0.0
	YMax = 3.0
)

// DefaultAdjustStep is the output delta applied by a single
// increase/decrease operation.
const DefaultAdjustStep = 0.1

// Point is a single control point, mapping normalized input speed to
// normalized output speed.
type Point struct {
	Input  float64
	Output float64
}

// Options selects one of the predefined control point configurations.
// Boost and cap combine independently on the 3-point base curve,
// the Windows preset overrides both.
type Options struct {
	WindowsCurve    bool
	NonlinearBoost  bool
	AccelerationCap bool
}

// windowsCurve approximates the S-curve behavior found by
// reverse-engineering the Windows pointer acceleration.
var windowsCurve = []Point{
	{0.0, 0.0}, // low speed (min)
	{0.3, 0.3}, // early acceleration start
	{0.6, 1.2}, // advanced acceleration
	{1.0, 2.5}, // high speed cap
}

// PresetPoints returns the control points for the given options.
func PresetPoints(opts Options) []Point {
	if opts.WindowsCurve {
		points := make([]Point, len(windowsCurve))
		copy(points, windowsCurve)
		return points
	}

	low := Point{0.0, 0.0}
	mid := Point{0.5, 0.5}
	high := Point{1.0, 1.0}
	if opts.NonlinearBoost {
		mid = Point{0.5, 1.5}
	}
	if opts.AccelerationCap {
		high = Point{1.0, 2.5}
	}
	return []Point{low, mid, high}
}

// Model owns the ordered control point sequence and the set of indices
// selected for batch adjustment. The zero value is not usable, use NewModel.
//
// Invariant: point inputs are non-decreasing by index. Every mutating
// operation clamps its arguments so the invariant holds at all times.
type Model struct {
	points    []Point
	selection map[int]struct{}
	lockLow   bool
}

// NewModel returns a model loaded with the default linear preset and
// the low-speed point locked.
func NewModel() *Model {
	return &Model{
		points:    PresetPoints(Options{}),
		selection: map[int]struct{}{},
		lockLow:   true,
	}
}

func (m *Model) Len() int {
	return len(m.points)
}

func (m *Model) Point(index int) Point {
	return m.points[index]
}

// Points returns a copy of the control point sequence.
func (m *Model) Points() []Point {
	points := make([]Point, len(m.points))
	copy(points, m.points)
	return points
}

// Outputs returns the output values in point order, the shape expected
// by the device configuration interface.
func (m *Model) Outputs() []float64 {
	outputs := make([]float64, len(m.points))
	for i, p := range m.points {
		outputs[i] = p.Output
	}
	return outputs
}

// SetLockLow designates the low-speed point (index 0) as immovable.
func (m *Model) SetLockLow(lock bool) {
	m.lockLow = lock
}

func (m *Model) LockLow() bool {
	return m.lockLow
}

// Locked reports whether the point at index is excluded from edits.
func (m *Model) Locked(index int) bool {
	return index == 0 && m.lockLow
}

// ApplyPreset replaces the whole point sequence and clears the selection.
func (m *Model) ApplyPreset(opts Options) {
	m.points = PresetPoints(opts)
	m.ClearSelection()
}

// ApplyPoints installs a custom control point sequence, e.g. a user
// preset. The sequence must stay within bounds and be non-decreasing in
// input, otherwise the model is left untouched.
func (m *Model) ApplyPoints(points []Point) error {
	if err := Validate(points); err != nil {
		return err
	}
	m.points = make([]Point, len(points))
	copy(m.points, points)
	m.ClearSelection()
	return nil
}

// Validate checks bounds and input ordering of a control point sequence.
func Validate(points []Point) error {
	if len(points) < 2 {
		return fmt.Errorf("curve needs at least 2 points, got %d", len(points))
	}
	for i, p := range points {
		if p.Input < XMin || p.Input > XMax {
			return fmt.Errorf("point %d: input %v outside [%v, %v]", i, p.Input, XMin, XMax)
		}
		if p.Output < YMin || p.Output > YMax {
			return fmt.Errorf("point %d: output %v outside [%v, %v]", i, p.Output, YMin, YMax)
		}
		if i > 0 && p.Input < points[i-1].Input {
			return fmt.Errorf("point %d: input %v decreases below previous %v", i, p.Input, points[i-1].Input)
		}
	}
	return nil
}

// MovePoint writes a clamped coordinate pair into the point at index.
// The input is clamped to the domain and then against the neighboring
// points, so the sequence can never lose its input ordering mid-drag.
// Moving a locked point is a no-op.
func (m *Model) MovePoint(index int, input, output float64) {
	if index < 0 || index >= len(m.points) {
		return
	}
	if m.Locked(index) {
		return
	}

	input = clamp(input, XMin, XMax)
	output = clamp(output, YMin, YMax)
	if index > 0 && input < m.points[index-1].Input {
		input = m.points[index-1].Input
	}
	if index < len(m.points)-1 && input > m.points[index+1].Input {
		input = m.points[index+1].Input
	}

	m.points[index] = Point{Input: input, Output: output}
}

// AdjustSelected adds delta to the output of every selected point,
// clamped to the range bounds. Locked points are skipped.
func (m *Model) AdjustSelected(delta float64) {
	for i := range m.selection {
		if m.Locked(i) {
			continue
		}
		m.points[i].Output = clamp(m.points[i].Output+delta, YMin, YMax)
	}
}

// ToggleSelection updates the selection set for a click on the point at
// index. Without additive the selection is replaced, with additive the
// index membership is toggled.
func (m *Model) ToggleSelection(index int, additive bool) {
	if index < 0 || index >= len(m.points) {
		return
	}
	if !additive {
		m.selection = map[int]struct{}{index: {}}
		return
	}
	if _, ok := m.selection[index]; ok {
		delete(m.selection, index)
	} else {
		m.selection[index] = struct{}{}
	}
}

func (m *Model) ClearSelection() {
	m.selection = map[int]struct{}{}
}

func (m *Model) Selected(index int) bool {
	_, ok := m.selection[index]
	return ok
}

// Selection returns the selected indices in ascending order.
func (m *Model) Selection() []int {
	indices := make([]int, 0, len(m.selection))
	for i := range m.selection {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

// PointNames returns display labels matching the curve shape.
func (m *Model) PointNames() []string {
	switch len(m.points) {
	case 3:
		return []string{"Low speed (min)", "Mid speed", "High speed (max)"}
	case 4:
		return []string{"Low speed (min)", "Early accel", "Advanced accel", "High speed (max)"}
	}
	names := make([]string, len(m.points))
	for i := range names {
		names[i] = fmt.Sprintf("Point %d", i)
	}
	return names
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
