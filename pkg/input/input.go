// Package input turns user activity on an input surface into events for the render
// pipeline.
package input

import (
	"context"
	"time"

	"github.com/pion/logging"
	"github.com/pion/videoproxy/pkg/event"
)

// DefaultPollInterval is how long a surface waits for activity before the loop checks
// for shutdown again.
const DefaultPollInterval = 20 * time.Millisecond

// Surface is something the user interacts with, typically a window. Poll waits up to
// timeout for activity and dispatches it; it returns false once the user closed the
// surface.
type Surface interface {
	Poll(timeout time.Duration) bool
	Close() error
}

// Run polls s until ctx is done or the surface is closed by the user, then closes s.
// Surfaces bound to an OS thread must be run from that thread.
func Run(ctx context.Context, s Surface, interval time.Duration, log logging.LeveledLogger) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	for ctx.Err() == nil {
		if !s.Poll(interval) {
			log.Info("Input surface closed")
			break
		}
	}
	return s.Close()
}

// Button is a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Action is a button transition.
type Action int

const (
	Release Action = iota
	Press
)

// Emitter translates raw surface callbacks into events on a queue. It holds no state
// besides the queue, so it is safe to call from any goroutine.
type Emitter struct {
	queue *event.Queue
}

// NewEmitter creates an Emitter pushing onto q.
func NewEmitter(q *event.Queue) *Emitter {
	return &Emitter{queue: q}
}

// Char emits a key event for a typed character.
func (e *Emitter) Char(r rune) {
	e.queue.Push(event.Key(int(r)))
}

// Button emits the click event for supported transitions, followed by the position the
// transition happened at. Unsupported transitions only emit the position.
func (e *Emitter) Button(b Button, a Action, x, y int) {
	switch {
	case b == ButtonLeft && a == Press:
		e.queue.Push(event.MouseClick(event.LeftDown))
	case b == ButtonLeft && a == Release:
		e.queue.Push(event.MouseClick(event.LeftUp))
	case b == ButtonMiddle && a == Press:
		e.queue.Push(event.MouseClick(event.MiddleDown))
	}
	e.queue.Push(event.MousePosition(x, y))
}

// Move emits a pointer position event.
func (e *Emitter) Move(x, y int) {
	e.queue.Push(event.MousePosition(x, y))
}
