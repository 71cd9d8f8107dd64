// Package rain provides an animation pass of falling blue drops.
package rain

import (
	"image"
	"math/rand/v2"

	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/paint"
)

const (
	chance     = 0.4
	speed      = 50
	dropWidth  = 10
	dropHeight = 20
)

// Random is the source of randomness of a Pass. *rand.Rand implements it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// Pass starts a drop at a random column on 40% of the ticks. Drops fall 50px per tick
// until they leave the frame.
type Pass struct {
	rnd   Random
	drops []int
}

// New creates a Pass drawing randomness from rnd, or from the global source when rnd is
// nil.
func New(rnd Random) *Pass {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Pass{rnd: rnd}
}

func (p *Pass) Name() string {
	return "Rain (animation)"
}

func (p *Pass) Render(frame *image.RGBA, _ []event.Event) (*image.RGBA, error) {
	w, h := frame.Bounds().Dx(), frame.Bounds().Dy()
	if len(p.drops) != w {
		p.drops = make([]int, w)
		for x := range p.drops {
			p.drops[x] = h
		}
	}

	if p.rnd.Float64() < chance {
		p.drops[p.rnd.IntN(w)] = 0
	}

	for x, y := range p.drops {
		if y >= h {
			continue
		}
		paint.Rect(frame, image.Rect(x, y, x+dropWidth, y+dropHeight), paint.Blue)
		p.drops[x] += speed
	}
	return frame, nil
}
