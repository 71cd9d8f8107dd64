// Package pong provides a one player pong game drawn onto the frame. The bat follows the
// mouse, keys a and d move it left and right.
package pong

import (
	"fmt"
	"image"

	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/paint"
	"golang.org/x/image/font"
)

const (
	ballSize  = 16
	speed     = 20
	batWidth  = 160
	batHeight = 30
	batZone   = 35
	keyStep   = 40
)

// Pass is the game state. Coordinates are in frame space, the frame is assumed to be
// shown mirrored.
type Pass struct {
	face font.Face

	x, y   int
	vx, vy int
	batX   int
	score  int
	placed bool
}

// New creates a game with the ball in the top left corner.
func New() (*Pass, error) {
	face, err := paint.Face(paint.SizeNormal)
	if err != nil {
		return nil, err
	}
	return &Pass{
		face: face,
		x:    10,
		y:    10,
		vx:   speed,
		vy:   speed,
	}, nil
}

func (p *Pass) Name() string {
	return "Pong (game)"
}

func (p *Pass) Render(frame *image.RGBA, events []event.Event) (*image.RGBA, error) {
	w, h := frame.Bounds().Dx(), frame.Bounds().Dy()
	if !p.placed {
		p.batX = w / 2
		p.placed = true
	}

	nx, ny := p.x+p.vx, p.y+p.vy
	if nx < 0 || nx > w {
		p.vx = -p.vx
	}
	if ny < 0 || ny > h {
		p.vy = -p.vy
	}
	if nx >= p.batX-batWidth/2 && nx <= p.batX+batWidth/2 && ny >= h-batZone {
		p.score++
		p.vy = -speed
	}
	p.x += p.vx
	p.y += p.vy

	for _, e := range events {
		switch {
		case e.Kind == event.KindMousePosition:
			p.batX = w - e.Pos.X
		case e.IsKey('a') && p.batX < w:
			p.batX += keyStep
		case e.IsKey('d') && p.batX > 0:
			p.batX -= keyStep
		}
	}

	paint.Rect(frame, image.Rect(p.batX-batWidth/2, h-batHeight, p.batX+batWidth/2, h), paint.Green)
	paint.MirroredText(frame, fmt.Sprintf("Score: %d", p.score), image.Pt(w-p.batX-batWidth/2, h-6), p.face, paint.Black)
	paint.Circle(frame, image.Pt(p.x, p.y), ballSize, paint.Green)
	return frame, nil
}

// Score returns the number of times the ball hit the bat.
func (p *Pass) Score() int {
	return p.score
}
