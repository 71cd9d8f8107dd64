// Package typing provides a pass that shows lines typed on the console.
package typing

import (
	"image"

	"github.com/pion/videoproxy/pkg/console"
	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/paint"
	"golang.org/x/image/font"
)

// ClearCommand removes every line shown so far.
const ClearCommand = "/clear"

const (
	top         = 25
	lineSpacing = 30
)

// Pass takes at most one console line per tick and lists all of them at the top left of
// the mirrored frame.
type Pass struct {
	lines console.LineReader
	face  font.Face
	texts []string
}

// New creates a Pass reading from lines.
func New(lines console.LineReader) (*Pass, error) {
	face, err := paint.Face(paint.SizeNormal)
	if err != nil {
		return nil, err
	}
	return &Pass{lines: lines, face: face}, nil
}

func (p *Pass) Name() string {
	return "STDIN typing"
}

func (p *Pass) Render(frame *image.RGBA, _ []event.Event) (*image.RGBA, error) {
	if line, ok := p.lines.TryLine(); ok {
		if line == ClearCommand {
			p.texts = p.texts[:0]
		} else {
			p.texts = append(p.texts, line)
		}
	}

	for i, text := range p.texts {
		pt := image.Pt(8, top+i*lineSpacing)
		paint.OutlinedText(frame, text, pt, p.face, paint.White, paint.Black, true)
	}
	return frame, nil
}

// Texts returns the lines currently shown.
func (p *Pass) Texts() []string {
	return append([]string(nil), p.texts...)
}
