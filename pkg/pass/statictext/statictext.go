// Package statictext provides a pass painting a fixed caption.
package statictext

import (
	"image"

	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/paint"
	"golang.org/x/image/font"
)

// DefaultText is the caption used when none is configured.
const DefaultText = "Video Proxy Demo v0.1"

// Pass paints its text in white at the bottom left of the mirrored frame.
type Pass struct {
	text string
	face font.Face
}

// New creates a Pass showing text.
func New(text string) (*Pass, error) {
	face, err := paint.Face(paint.SizeNormal)
	if err != nil {
		return nil, err
	}
	return &Pass{text: text, face: face}, nil
}

func (p *Pass) Name() string {
	return "Static text"
}

func (p *Pass) Render(frame *image.RGBA, _ []event.Event) (*image.RGBA, error) {
	h := frame.Bounds().Dy()
	paint.MirroredText(frame, p.text, image.Pt(8, h-8), p.face, paint.White)
	return frame, nil
}
