// Package mousedraw provides a pass for drawing on the frame with the mouse.
package mousedraw

import (
	"image"

	"github.com/pion/videoproxy/pkg/drawer"
	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/paint"
)

const (
	cursorRadius    = 8
	cursorThickness = 4
)

// Pass draws a line while the left button is held. Releasing the button lifts the pen
// and a middle click erases everything. The cursor is shown as a ring.
type Pass struct {
	lines   *drawer.LineDrawer
	down    bool
	lastPos image.Point
}

// New creates a Pass drawing in magenta.
func New() *Pass {
	return &Pass{lines: drawer.NewLineDrawer(paint.Magenta)}
}

func (p *Pass) Name() string {
	return "Mouse drawing"
}

func (p *Pass) Render(frame *image.RGBA, events []event.Event) (*image.RGBA, error) {
	w := frame.Bounds().Dx()

	for _, e := range events {
		switch {
		case e.IsClick(event.LeftDown):
			p.down = true
		case e.IsClick(event.LeftUp):
			p.down = false
			p.lines.Record(drawer.Discontinuation, drawer.Discontinuation)
		case e.IsClick(event.MiddleDown):
			p.lines.Reset()
		case e.Kind == event.KindMousePosition:
			// The input surface shows the frame mirrored.
			pos := image.Pt(w-e.Pos.X, e.Pos.Y)
			if p.down {
				p.lines.Record(pos.X, pos.Y)
			}
			p.lastPos = pos
		}
	}

	p.lines.Draw(frame)
	paint.Ring(frame, p.lastPos, cursorRadius, cursorThickness, paint.White)
	return frame, nil
}
