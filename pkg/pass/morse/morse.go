// Package morse provides a pass that blinks console input as morse code.
package morse

import (
	"image"
	"unicode"

	"github.com/pion/videoproxy/pkg/console"
	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/paint"
)

const (
	// Ticks a single unit stays lit.
	unitLength = 6
	// Dark ticks after every symbol.
	symbolGap = 3
	// Dark ticks between letters.
	letterGap = 8

	letterEnd = -1
	radius    = 42
)

// Units of every letter from a to z: 1 is a dot, 3 is a dash.
var table = [26][]int{
	{1, 3},
	{3, 1, 1, 1},
	{3, 1, 3, 1},
	{3, 1, 1},
	{1},
	{1, 1, 3, 1},
	{3, 3, 1},
	{1, 1, 1, 1},
	{1, 1},
	{1, 3, 3, 3},
	{3, 1, 3},
	{1, 3, 1, 1},
	{3, 3},
	{3, 1},
	{3, 3, 3},
	{1, 3, 3, 1},
	{3, 3, 1, 3},
	{1, 3, 1},
	{1, 1, 1},
	{3},
	{1, 1, 3},
	{1, 1, 1, 3},
	{1, 3, 3},
	{3, 1, 1, 3},
	{3, 1, 3, 3},
	{3, 3, 1, 1},
}

// Pass queues the letters of every console line and flashes an orange dot at the bottom
// centre of the frame, one symbol after the other. Characters other than latin letters
// are ignored.
type Pass struct {
	lines   console.LineReader
	queue   []int
	counter int
}

// New creates a Pass reading text from lines.
func New(lines console.LineReader) *Pass {
	return &Pass{lines: lines, counter: -1}
}

func (p *Pass) Name() string {
	return "Morse code"
}

func (p *Pass) Render(frame *image.RGBA, _ []event.Event) (*image.RGBA, error) {
	if line, ok := p.lines.TryLine(); ok {
		p.Enqueue(line)
	}

	if p.counter < 0 {
		if len(p.queue) > 0 {
			if p.queue[0] == letterEnd {
				p.counter = letterGap
			} else {
				p.counter = p.queue[0]*unitLength + symbolGap
			}
		}
	} else {
		p.counter--
		if p.counter < 0 {
			p.queue = p.queue[1:]
		}
	}

	if p.lit() {
		b := frame.Bounds()
		paint.Circle(frame, image.Pt(b.Min.X+b.Dx()/2, b.Max.Y-100), radius, paint.Orange)
	}
	return frame, nil
}

// Enqueue appends the symbols of text to the queue.
func (p *Pass) Enqueue(text string) {
	for _, r := range text {
		r = unicode.ToLower(r)
		if r < 'a' || r > 'z' {
			continue
		}
		p.queue = append(p.queue, table[r-'a']...)
		p.queue = append(p.queue, letterEnd)
	}
}

func (p *Pass) lit() bool {
	return p.counter >= symbolGap && len(p.queue) > 0 && p.queue[0] != letterEnd
}
