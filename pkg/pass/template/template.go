// Package template provides a pass that finds a fixed picture in every frame and marks
// where it was found.
package template

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/pion/videoproxy/pkg/drawer"
	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/paint"
)

// Matching runs on frames shrunk by this factor.
const downscale = 4

var errTemplateTooSmall = errors.New("template is too small")

// Pass looks for the template in every frame and records the centre of the best match
// into a DotDrawer. A middle click clears the marks.
type Pass struct {
	drawer *drawer.DotDrawer
	tmpl   plane
	// Template size in frame pixels.
	w, h int
}

// New loads the template image at path. Colour images are converted to grayscale.
func New(path string) (*Pass, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	b := img.Bounds()
	if b.Dx() < downscale || b.Dy() < downscale {
		return nil, errTemplateTooSmall
	}

	return &Pass{
		drawer: drawer.NewDotDrawer(paint.Red),
		tmpl:   shrink(img),
		w:      b.Dx(),
		h:      b.Dy(),
	}, nil
}

func (p *Pass) Name() string {
	return "Template recognition (drawing)"
}

func (p *Pass) Render(frame *image.RGBA, events []event.Event) (*image.RGBA, error) {
	for _, e := range events {
		if e.IsClick(event.MiddleDown) {
			p.drawer.Reset()
		}
	}

	if pt, ok := p.match(frame); ok {
		p.drawer.Record(pt.X+p.w/2, pt.Y+p.h/2)
	}
	p.drawer.Draw(frame)
	return frame, nil
}

// match returns the top left corner of the best match in frame coordinates.
func (p *Pass) match(frame *image.RGBA) (image.Point, bool) {
	b := frame.Bounds()
	if b.Dx() < p.w || b.Dy() < p.h {
		return image.Point{}, false
	}

	src := shrink(frame)
	t := p.tmpl
	best, bestScore := image.Point{}, uint64(math.MaxUint64)
	for y := 0; y+t.h <= src.h; y++ {
		for x := 0; x+t.w <= src.w; x++ {
			score := ssd(src, t, x, y, bestScore)
			if score < bestScore {
				best, bestScore = image.Pt(x, y), score
			}
		}
	}
	return image.Pt(b.Min.X+best.X*downscale, b.Min.Y+best.Y*downscale), true
}

// plane is an 8 bit grayscale image.
type plane struct {
	pix  []uint8
	w, h int
}

func shrink(img image.Image) plane {
	b := img.Bounds()
	w, h := b.Dx()/downscale, b.Dy()/downscale
	gray := imaging.Grayscale(imaging.Resize(img, w, h, imaging.Box))

	p := plane{pix: make([]uint8, w*h), w: w, h: h}
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < w; x++ {
			p.pix[y*w+x] = row[x*4]
		}
	}
	return p
}

// ssd returns the sum of squared differences between t and src at (x, y). It gives up
// as soon as the sum exceeds limit.
func ssd(src, t plane, x, y int, limit uint64) uint64 {
	var sum uint64
	for ty := 0; ty < t.h; ty++ {
		srow := src.pix[(y+ty)*src.w+x:]
		trow := t.pix[ty*t.w:]
		for tx := 0; tx < t.w; tx++ {
			d := int(srow[tx]) - int(trow[tx])
			sum += uint64(d * d)
		}
		if sum > limit {
			return sum
		}
	}
	return sum
}
