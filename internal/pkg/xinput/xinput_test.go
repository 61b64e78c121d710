package xinput

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const supportedProps = `Device 'USB Optical Mouse':
	Device Enabled (186):	1
	libinput Accel Speed (321):	0.000000
	libinput Accel Profile Enabled (323):	1, 0, 0
	libinput Accel Custom Motion Points (325):	0.0, 1.0
	libinput Accel Custom Motion Step (326):	1.0
`

const legacyProps = `Device 'PS/2 Mouse':
	Device Enabled (186):	1
	Device Accel Profile (270):	0
`

type fakeRunner struct {
	calls  [][]string
	props  string
	failOn string
}

func (f *fakeRunner) run(args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	if f.failOn != "" && args[0] == f.failOn {
		return nil, fmt.Errorf("exit status 1")
	}
	if args[0] == "list-props" {
		return []byte(f.props), nil
	}
	return nil, nil
}

func TestApply(t *testing.T) {
	runner := &fakeRunner{props: supportedProps}
	tool := NewTool(runner.run)

	err := tool.Apply("USB Optical Mouse", []float64{0, 0.5, 1})
	assert.Equal(t, nil, err)

	assert.Equal(t, [][]string{
		{"list-props", "USB Optical Mouse"},
		{"set-prop", "USB Optical Mouse", PropCustomMotionPoints, "0.00", "0.50", "1.00"},
		{"set-prop", "USB Optical Mouse", PropCustomMotionStep, "1.0"},
		{"set-prop", "USB Optical Mouse", PropProfileEnabled, "0", "0", "1"},
	}, runner.calls)
}

func TestApplyUnsupportedDevice(t *testing.T) {
	runner := &fakeRunner{props: legacyProps}
	tool := NewTool(runner.run)

	err := tool.Apply("PS/2 Mouse", []float64{0, 1})

	var unsupported UnsupportedDeviceError
	assert.Equal(t, true, errors.As(err, &unsupported))
	assert.Equal(t, "PS/2 Mouse", unsupported.Device)
	assert.Equal(t, []string{PropCustomMotionPoints, PropProfileEnabled}, unsupported.Missing)

	// no set-prop may run against an unsupported device
	assert.Equal(t, 1, len(runner.calls))
}

func TestApplyCommandFailure(t *testing.T) {
	runner := &fakeRunner{props: supportedProps, failOn: "set-prop"}
	tool := NewTool(runner.run)

	err := tool.Apply("USB Optical Mouse", []float64{0, 1})

	var cmdErr ExternalCommandError
	assert.Equal(t, true, errors.As(err, &cmdErr))
	assert.Equal(t, "set-prop", cmdErr.Args[0])
}

func TestApplyListPropsFailure(t *testing.T) {
	runner := &fakeRunner{failOn: "list-props"}
	tool := NewTool(runner.run)

	err := tool.Apply("USB Optical Mouse", []float64{0, 1})

	var cmdErr ExternalCommandError
	assert.Equal(t, true, errors.As(err, &cmdErr))
	assert.Equal(t, true, strings.Contains(err.Error(), "list-props"))
}

func TestDevices(t *testing.T) {
	tool := NewTool(func(args ...string) ([]byte, error) {
		assert.Equal(t, []string{"list", "--name-only"}, args)
		return []byte("Virtual core pointer\nAT Translated Keyboard\nPS/2 Optical Mouse\nSynaptics TouchPad\nUSB Gaming Mouse\n"), nil
	})

	devices, err := tool.Devices()
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"USB Gaming Mouse", "PS/2 Optical Mouse", "Synaptics TouchPad"}, devices)
}

func TestDevicesFailure(t *testing.T) {
	tool := NewTool(func(args ...string) ([]byte, error) {
		return nil, fmt.Errorf("no X server")
	})

	devices, err := tool.Devices()
	assert.Equal(t, 0, len(devices))
	var cmdErr ExternalCommandError
	assert.Equal(t, true, errors.As(err, &cmdErr))
}

func TestFilterPointerNames(t *testing.T) {
	names := []string{
		"Video Bus",
		"Logitech Wireless Mouse",
		"SynPS/2 Synaptics TouchPad",
		"USB Optical Mouse",
		"Generic Optical Mouse",
		"Sleep Button",
	}

	assert.Equal(t, []string{
		"USB Optical Mouse",
		"Logitech Wireless Mouse",
		"Generic Optical Mouse",
		"SynPS/2 Synaptics TouchPad",
	}, FilterPointerNames(names))
}

func TestFilterPointerNamesStableTies(t *testing.T) {
	names := []string{"b mouse", "a mouse", "c mouse"}
	assert.Equal(t, []string{"b mouse", "a mouse", "c mouse"}, FilterPointerNames(names))
}

func TestFilterPointerNamesEmpty(t *testing.T) {
	assert.Equal(t, 0, len(FilterPointerNames(nil)))
	assert.Equal(t, 0, len(FilterPointerNames([]string{"Keyboard", "Video Bus"})))
}

func TestFormatOutputs(t *testing.T) {
	assert.Equal(t, []string{"0.00", "0.30", "1.20", "2.50"}, FormatOutputs([]float64{0, 0.3, 1.2, 2.5}))
}

func TestNoop(t *testing.T) {
	var c Configurator = Noop{}

	assert.Equal(t, nil, c.Apply("whatever", []float64{1, 2}))
	devices, err := c.Devices()
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(devices))
}
