// Package pass defines the RenderPass capability and the registry that fixes the
// execution order of passes.
package pass

import (
	"image"

	"github.com/pion/videoproxy/pkg/event"
)

// RenderPass is a named, stateful unit that draws onto frames.
//
// Render receives the frame as left by the passes that ran before it and every event
// drained this tick. It may modify frame in place or return a different buffer of the
// same size. events is shared with the other passes and must not be modified. Render is
// called once per tick from a single goroutine and should return quickly, a slow pass
// delays the whole pipeline.
type RenderPass interface {
	Name() string
	Render(frame *image.RGBA, events []event.Event) (*image.RGBA, error)
}

// RenderFunc adapts a function into a RenderPass.
type RenderFunc func(frame *image.RGBA, events []event.Event) (*image.RGBA, error)

type funcPass struct {
	name string
	fn   RenderFunc
}

// Func creates a RenderPass called name that renders with fn.
func Func(name string, fn RenderFunc) RenderPass {
	return &funcPass{name: name, fn: fn}
}

func (p *funcPass) Name() string {
	return p.name
}

func (p *funcPass) Render(frame *image.RGBA, events []event.Event) (*image.RGBA, error) {
	return p.fn(frame, events)
}
