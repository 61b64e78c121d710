// Package input lists pointer-class devices from the kernel view,
// /proc/bus/input/devices. It backs device enumeration when the X
// server (and therefore xinput) is not around.
package input

import (
	"os"
	"strconv"
	"strings"

	"github.com/holoplot/go-evdev"
)

// DeviceInfo describes one event device reported by the kernel.
// It is supposed to be created by unmarshal only.
type DeviceInfo struct {
	Name     string   // name of the device
	Phys     string   // physical path to the device in the system hierarchy
	Sysfs    string   // sysfs path
	Handlers []string // input handlers associated with the device

	// types of events supported by the device
	EV [(evdev.EV_CNT + 32 - 1) / 32]uint32
}

// Event returns event name, like "event0" for /dev/input/event0
func (d *DeviceInfo) Event() string {
	for _, handler := range d.Handlers {
		if strings.HasPrefix(handler, "event") {
			return handler
		}
	}
	return ""
}

// IsPointer reports whether the device looks like a mouse or touchpad.
// The EV bitmap values cover the common mouse combinations, the handler
// prefix catches the rest.
func (d *DeviceInfo) IsPointer() bool {
	switch d.EV[0] {
	case 0x17, 0x12001f:
		return true
	}
	for _, h := range d.Handlers {
		if strings.HasPrefix(h, "mouse") {
			return true
		}
	}
	return false
}

// Pointers returns the names of pointer-class devices currently known
// to the kernel.
func Pointers() ([]string, error) {
	data, err := os.ReadFile("/proc/bus/input/devices")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, d := range unmarshal(data) {
		if d.IsPointer() {
			names = append(names, d.Name)
		}
	}
	return names, nil
}

// unmarshal parses the /proc/bus/input/devices format: one block per
// device, single-letter labeled lines, blocks separated by empty lines.
func unmarshal(data []byte) []DeviceInfo {
	var devices = make([]DeviceInfo, 0)
	if len(data) == 0 {
		return devices
	}

	var device DeviceInfo
	var seen bool

	flush := func() {
		if seen {
			devices = append(devices, device)
			device = DeviceInfo{}
			seen = false
		}
	}

	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			flush()
			continue
		}
		if len(line) < 3 {
			continue
		}
		seen = true

		label, info := line[:1], line[3:]
		switch label {
		case "N":
			device.Name = strings.Trim(strings.TrimPrefix(info, "Name="), "\"")
		case "P":
			device.Phys = strings.TrimPrefix(info, "Phys=")
		case "S":
			device.Sysfs = strings.TrimPrefix(info, "Sysfs=")
		case "H":
			handlers := strings.TrimPrefix(info, "Handlers=")
			device.Handlers = strings.Fields(handlers)
		case "B":
			fields := strings.SplitN(info, "=", 2)
			if len(fields) != 2 || fields[0] != "EV" {
				continue
			}
			words := strings.Fields(fields[1])
			// words are printed most significant first
			for i, w := range words {
				v, err := strconv.ParseUint(w, 16, 32)
				if err != nil {
					continue
				}
				idx := len(words) - 1 - i
				if idx < len(device.EV) {
					device.EV[idx] = uint32(v)
				}
			}
		}
	}
	flush()

	return devices
}
