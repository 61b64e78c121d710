// Package editor turns pointer and key commands into curve model
// mutations. It is toolkit-agnostic: the terminal UI (or anything else)
// feeds it canvas-space events and re-renders via the change hook.
package editor

import (
	"github.com/accelctl/accelctl/internal/pkg/curve"
	"github.com/accelctl/accelctl/internal/pkg/render"
)

const noDrag = -1

type Editor struct {
	model *curve.Model
	view  render.View
	opts  curve.Options

	// Output delta of one increase/decrease command.
	AdjustStep float64

	dragIndex          int
	dragOffX, dragOffY float64

	onChange func()
}

func New(view render.View) *Editor {
	return &Editor{
		model:      curve.NewModel(),
		view:       view,
		AdjustStep: curve.DefaultAdjustStep,
		dragIndex:  noDrag,
	}
}

func (e *Editor) Model() *curve.Model {
	return e.model
}

func (e *Editor) View() render.View {
	return e.view
}

func (e *Editor) SetView(view render.View) {
	e.view = view
}

func (e *Editor) Options() curve.Options {
	return e.opts
}

// OnChange registers the hook invoked after every model mutation,
// typically redraw plus device auto-apply.
func (e *Editor) OnChange(fn func()) {
	e.onChange = fn
}

func (e *Editor) changed() {
	if e.onChange != nil {
		e.onChange()
	}
}

// SetOptions rebuilds the curve from the preset flags. The selection is
// cleared by the rebuild.
func (e *Editor) SetOptions(opts curve.Options) {
	e.opts = opts
	e.model.ApplyPreset(opts)
	e.changed()
}

// ToggleWindows flips the Windows-like preset flag, which overrides the
// boost/cap flags while active.
func (e *Editor) ToggleWindows() {
	e.opts.WindowsCurve = !e.opts.WindowsCurve
	e.SetOptions(e.opts)
}

func (e *Editor) ToggleBoost() {
	e.opts.NonlinearBoost = !e.opts.NonlinearBoost
	e.SetOptions(e.opts)
}

func (e *Editor) ToggleCap() {
	e.opts.AccelerationCap = !e.opts.AccelerationCap
	e.SetOptions(e.opts)
}

func (e *Editor) ToggleLockLow() {
	e.model.SetLockLow(!e.model.LockLow())
	e.changed()
}

// LoadPoints installs a custom preset sequence.
func (e *Editor) LoadPoints(points []curve.Point) error {
	if err := e.model.ApplyPoints(points); err != nil {
		return err
	}
	e.changed()
	return nil
}

// Press handles a primary button press at canvas coordinates. A hit on
// an unlocked point updates the selection (replace, or toggle when
// additive) and starts a drag; a press on empty space clears the
// selection. Presses on a locked point are ignored.
func (e *Editor) Press(x, y float64, additive bool) {
	index, ok := e.view.HitTest(e.model, x, y, e.view.PointRadius)
	if ok && e.model.Locked(index) {
		return
	}
	if !ok {
		e.model.ClearSelection()
		e.changed()
		return
	}

	e.model.ToggleSelection(index, additive)
	e.dragIndex = index
	p := e.model.Point(index)
	cx, cy := e.view.ToCanvas(p.Input, p.Output)
	e.dragOffX = cx - x
	e.dragOffY = cy - y
	e.changed()
}

// Drag moves the pressed point to the pointer position, keeping the
// press offset, clamped by the model.
func (e *Editor) Drag(x, y float64) {
	if e.dragIndex == noDrag {
		return
	}
	if e.model.Locked(e.dragIndex) {
		return
	}
	fx, fy := e.view.ToFunction(x+e.dragOffX, y+e.dragOffY)
	e.model.MovePoint(e.dragIndex, fx, fy)
	e.changed()
}

func (e *Editor) Release() {
	e.dragIndex = noDrag
}

// Dragging reports whether a point is currently pressed.
func (e *Editor) Dragging() bool {
	return e.dragIndex != noDrag
}

// Select updates the selection for a direct point pick (number keys).
// Locked points are not selectable.
func (e *Editor) Select(index int, additive bool) {
	if index < 0 || index >= e.model.Len() || e.model.Locked(index) {
		return
	}
	e.model.ToggleSelection(index, additive)
	e.changed()
}

// SelectNext cycles the single selection through the points, skipping
// locked ones. Used by keyboard-only editing.
func (e *Editor) SelectNext() {
	next := 0
	if sel := e.model.Selection(); len(sel) > 0 {
		next = (sel[len(sel)-1] + 1) % e.model.Len()
	}
	for e.model.Locked(next) {
		next = (next + 1) % e.model.Len()
	}
	e.model.ToggleSelection(next, false)
	e.changed()
}

// NudgeSelected shifts every selected point by a function-space delta.
func (e *Editor) NudgeSelected(dx, dy float64) {
	for _, i := range e.model.Selection() {
		p := e.model.Point(i)
		e.model.MovePoint(i, p.Input+dx, p.Output+dy)
	}
	e.changed()
}

func (e *Editor) Increase() {
	e.model.AdjustSelected(e.AdjustStep)
	e.changed()
}

func (e *Editor) Decrease() {
	e.model.AdjustSelected(-e.AdjustStep)
	e.changed()
}
