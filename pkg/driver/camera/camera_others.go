//go:build !linux

package camera

import (
	"errors"

	"github.com/pion/videoproxy/pkg/driver"
)

var errUnsupportedOS = errors.New("camera: V4L2 capture is only available on linux")

// Register is only supported on linux.
func Register(m *driver.Manager, path string) error {
	return errUnsupportedOS
}

// Discover is only supported on linux.
func Discover(m *driver.Manager, patterns ...string) error {
	return errUnsupportedOS
}
