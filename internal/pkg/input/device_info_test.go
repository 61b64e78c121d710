package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const procDevices = `I: Bus=0011 Vendor=0001 Product=0001 Version=ab41
N: Name="AT Translated Set 2 keyboard"
P: Phys=isa0060/serio0/input0
S: Sysfs=/devices/platform/i8042/serio0/input/input3
U: Uniq=
H: Handlers=sysrq kbd leds event3
B: PROP=0
B: EV=120013
B: KEY=402000000 3803078f800d001 feffffdfffefffff fffffffffffffffe
B: MSC=10
B: LED=7

I: Bus=0003 Vendor=046d Product=c52b Version=0111
N: Name="Logitech USB Receiver Mouse"
P: Phys=usb-0000:00:14.0-2/input1
S: Sysfs=/devices/pci0000:00/0000:00:14.0/usb1/input/input21
U: Uniq=
H: Handlers=mouse0 event17
B: PROP=0
B: EV=17
B: KEY=ffff0000 0 0 0 0
B: REL=1943
B: MSC=10

I: Bus=0011 Vendor=0002 Product=0007 Version=01b1
N: Name="SynPS/2 Synaptics TouchPad"
P: Phys=isa0060/serio1/input0
S: Sysfs=/devices/platform/i8042/serio1/input/input5
U: Uniq=
H: Handlers=mouse1 event4
B: PROP=5
B: EV=b
B: KEY=e520 10000 0 0 0 0
B: ABS=660800011000003
`

func TestUnmarshal(t *testing.T) {
	devices := unmarshal([]byte(procDevices))
	assert.Equal(t, 3, len(devices))

	kbd := devices[0]
	assert.Equal(t, "AT Translated Set 2 keyboard", kbd.Name)
	assert.Equal(t, "isa0060/serio0/input0", kbd.Phys)
	assert.Equal(t, "/devices/platform/i8042/serio0/input/input3", kbd.Sysfs)
	assert.Equal(t, []string{"sysrq", "kbd", "leds", "event3"}, kbd.Handlers)
	assert.Equal(t, uint32(0x120013), kbd.EV[0])

	mouse := devices[1]
	assert.Equal(t, "Logitech USB Receiver Mouse", mouse.Name)
	assert.Equal(t, []string{"mouse0", "event17"}, mouse.Handlers)
	assert.Equal(t, uint32(0x17), mouse.EV[0])
}

func TestUnmarshalEmpty(t *testing.T) {
	assert.Equal(t, 0, len(unmarshal(nil)))
	assert.Equal(t, 0, len(unmarshal([]byte("\n\n"))))
}

func TestUnmarshalMultiWordBitmap(t *testing.T) {
	data := []byte(`I: Bus=0003 Vendor=1234 Product=5678 Version=0100
N: Name="Weird Device"
H: Handlers=event9
B: EV=1 12001f
`)
	devices := unmarshal(data)
	assert.Equal(t, 1, len(devices))
	assert.Equal(t, uint32(0x12001f), devices[0].EV[0])
	assert.Equal(t, uint32(0x1), devices[0].EV[1])
}

func TestEvent(t *testing.T) {
	devices := unmarshal([]byte(procDevices))
	assert.Equal(t, "event3", devices[0].Event())
	assert.Equal(t, "event17", devices[1].Event())

	var none DeviceInfo
	assert.Equal(t, "", none.Event())
}

func TestIsPointer(t *testing.T) {
	devices := unmarshal([]byte(procDevices))

	assert.Equal(t, false, devices[0].IsPointer()) // keyboard
	assert.Equal(t, true, devices[1].IsPointer())  // EV=17
	assert.Equal(t, true, devices[2].IsPointer())  // mouse1 handler

	var gaming DeviceInfo
	gaming.EV[0] = 0x12001f
	assert.Equal(t, true, gaming.IsPointer())
}
