//go:build linux
// +build linux

package xinput

import "os/exec"

// New returns the real xinput-backed configurator.
func New() Configurator {
	return NewTool(func(args ...string) ([]byte, error) {
		return exec.Command("xinput", args...).Output()
	})
}
