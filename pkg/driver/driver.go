// Package driver manages the capture devices a frame source can be built from.
package driver

import (
	"github.com/pion/videoproxy/pkg/io/video"
	"github.com/pion/videoproxy/pkg/prop"
)

type OpenCloser interface {
	Open() error
	Close() error
}

type Info struct {
	Label      string
	DeviceType DeviceType
	Priority   Priority
}

// VideoRecorder starts producing frames with the selected properties.
type VideoRecorder interface {
	VideoRecord(p prop.Media) (r video.Reader, err error)
}

// Adapter is the interface a device implementation provides. Properties is only called
// on an opened adapter.
type Adapter interface {
	OpenCloser
	VideoRecorder
	Properties() []prop.Media
}

// Driver is an Adapter managed by a Manager. It tracks the adapter's State and rejects
// calls that are invalid in that state.
type Driver interface {
	Adapter
	ID() string
	Info() Info
	Status() State
}
