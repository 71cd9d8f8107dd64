// Package sink defines where finished frames go.
package sink

import (
	"errors"
	"image"
)

// Sink consumes finished frames. Publish must not keep frame after returning, the caller
// reuses it for the next tick.
type Sink interface {
	Publish(frame *image.RGBA) error
	Close() error
}

// Tee publishes every frame to all of its sinks, in order.
type Tee []Sink

// Publish implements Sink. A failing sink doesn't stop the others.
func (t Tee) Publish(frame *image.RGBA) error {
	var errs []error
	for _, s := range t {
		if err := s.Publish(frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close implements Sink.
func (t Tee) Close() error {
	var errs []error
	for _, s := range t {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every frame.
var Discard Sink = discard{}

type discard struct{}

func (discard) Publish(*image.RGBA) error { return nil }
func (discard) Close() error              { return nil }
