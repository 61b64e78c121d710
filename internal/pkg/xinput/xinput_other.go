//go:build !linux
// +build !linux

package xinput

// New returns a configurator that does nothing, device configuration is
// only supported on Linux.
func New() Configurator {
	return Noop{}
}
