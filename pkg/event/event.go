// Package event defines the user input records produced by an input surface and consumed
// by the render pipeline, and the queue that hands them over between the two.
package event

import (
	"fmt"
	"image"
)

// Kind tells which field of an Event carries data.
type Kind uint8

const (
	// KindMousePosition means Pos holds the pointer position on the input surface.
	KindMousePosition Kind = iota + 1
	// KindMouseClick means Click holds a mouse button transition.
	KindMouseClick
	// KindKey means Key holds a key code.
	KindKey
)

func (k Kind) String() string {
	switch k {
	case KindMousePosition:
		return "mouse-position"
	case KindMouseClick:
		return "mouse-click"
	case KindKey:
		return "key"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Click represents a mouse button transition.
type Click uint8

const (
	ClickNone Click = iota
	LeftDown
	LeftUp
	MiddleDown
)

func (c Click) String() string {
	switch c {
	case LeftDown:
		return "left-down"
	case LeftUp:
		return "left-up"
	case MiddleDown:
		return "middle-down"
	}
	return "none"
}

// Event is a single user input observation. Exactly one of Pos, Click or Key is
// meaningful, as selected by Kind. Observations that happen together, e.g. a click
// and the position it happened at, are separate events.
type Event struct {
	Kind  Kind
	Pos   image.Point
	Click Click
	Key   int
}

// MousePosition creates a pointer position event.
func MousePosition(x, y int) Event {
	return Event{Kind: KindMousePosition, Pos: image.Pt(x, y)}
}

// MouseClick creates a mouse button event.
func MouseClick(c Click) Event {
	return Event{Kind: KindMouseClick, Click: c}
}

// Key creates a key event. code is the character code of the pressed key.
func Key(code int) Event {
	return Event{Kind: KindKey, Key: code}
}

// IsClick reports whether e is the mouse button transition c.
func (e Event) IsClick(c Click) bool {
	return e.Kind == KindMouseClick && e.Click == c
}

// IsKey reports whether e is a key event with the given code.
func (e Event) IsKey(code int) bool {
	return e.Kind == KindKey && e.Key == code
}

func (e Event) String() string {
	switch e.Kind {
	case KindMousePosition:
		return fmt.Sprintf("%s(%d,%d)", e.Kind, e.Pos.X, e.Pos.Y)
	case KindMouseClick:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Click)
	case KindKey:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Key)
	}
	return e.Kind.String()
}
