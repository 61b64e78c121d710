// Package xinput pushes acceleration curves to libinput devices through
// the xinput command line tool and enumerates pointer devices.
package xinput

import (
	"fmt"
	"sort"
	"strings"
)

// libinput property names required on the target device.
const (
	PropCustomMotionPoints = "libinput Accel Custom Motion Points"
	PropCustomMotionStep   = "libinput Accel Custom Motion Step"
	PropProfileEnabled     = "libinput Accel Profile Enabled"
)

// UnsupportedDeviceError reports a device that lacks the custom motion
// properties, e.g. one driven by the synaptics driver.
type UnsupportedDeviceError struct {
	Device  string
	Missing []string
}

func (e UnsupportedDeviceError) Error() string {
	return fmt.Sprintf("device %q does not support: %s", e.Device, strings.Join(e.Missing, ", "))
}

// ExternalCommandError wraps a failed xinput invocation.
type ExternalCommandError struct {
	Args []string
	Err  error
}

func (e ExternalCommandError) Error() string {
	return fmt.Sprintf("xinput %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e ExternalCommandError) Unwrap() error {
	return e.Err
}

// Configurator applies a curve to a pointer device and lists candidate
// devices. The non-Linux implementation does nothing.
type Configurator interface {
	Apply(device string, outputs []float64) error
	Devices() ([]string, error)
}

// Runner executes one xinput invocation and returns its stdout.
type Runner func(args ...string) ([]byte, error)

// Tool drives the real xinput binary through a Runner.
type Tool struct {
	run Runner
}

func NewTool(run Runner) *Tool {
	return &Tool{run: run}
}

// Apply first verifies via list-props that the device carries the
// required properties, then issues three set-prop calls: the custom
// motion points, a motion step of 1.0 and the custom profile selection.
// In-memory state is never touched, failures only surface as errors.
func (t *Tool) Apply(device string, outputs []float64) error {
	props, err := t.run("list-props", device)
	if err != nil {
		return ExternalCommandError{Args: []string{"list-props", device}, Err: err}
	}

	var missing []string
	for _, prop := range []string{PropCustomMotionPoints, PropProfileEnabled} {
		if !strings.Contains(string(props), prop) {
			missing = append(missing, prop)
		}
	}
	if len(missing) > 0 {
		return UnsupportedDeviceError{Device: device, Missing: missing}
	}

	for _, args := range [][]string{
		append([]string{"set-prop", device, PropCustomMotionPoints}, FormatOutputs(outputs)...),
		{"set-prop", device, PropCustomMotionStep, "1.0"},
		{"set-prop", device, PropProfileEnabled, "0", "0", "1"},
	} {
		if _, err := t.run(args...); err != nil {
			return ExternalCommandError{Args: args, Err: err}
		}
	}
	return nil
}

// Devices lists pointer device names known to the X server, filtered
// and ordered by FilterPointerNames.
func (t *Tool) Devices() ([]string, error) {
	out, err := t.run("list", "--name-only")
	if err != nil {
		return nil, ExternalCommandError{Args: []string{"list", "--name-only"}, Err: err}
	}
	return FilterPointerNames(strings.Split(strings.TrimRight(string(out), "\n"), "\n")), nil
}

// FormatOutputs renders curve outputs the way xinput expects them.
func FormatOutputs(outputs []float64) []string {
	values := make([]string, len(outputs))
	for i, v := range outputs {
		values[i] = fmt.Sprintf("%.2f", v)
	}
	return values
}

// FilterPointerNames keeps names containing "mouse" or "touchpad"
// (case-insensitive) and orders them by priority: usb first, then
// mouse, then optical, then the rest. Ties keep the original order.
func FilterPointerNames(names []string) []string {
	var pointers []string
	for _, name := range names {
		n := strings.ToLower(name)
		if strings.Contains(n, "mouse") || strings.Contains(n, "touchpad") {
			pointers = append(pointers, name)
		}
	}
	sort.SliceStable(pointers, func(i, j int) bool {
		return devicePriority(pointers[i]) < devicePriority(pointers[j])
	})
	return pointers
}

func devicePriority(name string) int {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "usb"):
		return 1
	case strings.Contains(n, "mouse"):
		return 2
	case strings.Contains(n, "optical"):
		return 3
	default:
		return 100
	}
}

// Noop is the device configuration capability on platforms without
// xinput. Selected at construction time, never checked ad hoc.
type Noop struct{}

func (Noop) Apply(string, []float64) error {
	return nil
}

func (Noop) Devices() ([]string, error) {
	return nil, nil
}
