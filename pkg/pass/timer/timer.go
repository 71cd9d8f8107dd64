// Package timer provides a countdown pass started from the console.
package timer

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pion/videoproxy/pkg/console"
	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/paint"
	"golang.org/x/image/font"
)

// CompletedText replaces the countdown once it reaches zero.
const CompletedText = "Timer completed"

// Pass starts an N second countdown whenever the console line N is entered. A new line
// restarts the countdown.
type Pass struct {
	lines console.LineReader
	face  font.Face
	now   func() time.Time

	expire  time.Time
	running bool
}

// New creates a Pass reading durations from lines.
func New(lines console.LineReader) (*Pass, error) {
	face, err := paint.Face(paint.SizeNormal)
	if err != nil {
		return nil, err
	}
	return &Pass{lines: lines, face: face, now: time.Now}, nil
}

func (p *Pass) Name() string {
	return "Timer"
}

func (p *Pass) Render(frame *image.RGBA, _ []event.Event) (*image.RGBA, error) {
	var parseErr error
	if line, ok := p.lines.TryLine(); ok {
		seconds, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			parseErr = fmt.Errorf("invalid timer duration %q: %w", line, err)
		} else {
			p.expire = p.now().Add(time.Duration(seconds) * time.Second)
			p.running = true
		}
	}

	if text, ok := p.Text(); ok {
		pt := image.Pt(frame.Bounds().Dx()-300, 100)
		paint.MirroredText(frame, text, pt, p.face, paint.Orange)
	}

	if parseErr != nil {
		return nil, parseErr
	}
	return frame, nil
}

// Text returns what the timer currently shows, and false if no countdown was started.
func (p *Pass) Text() (string, bool) {
	if !p.running {
		return "", false
	}
	left := p.expire.Sub(p.now())
	if left < 0 {
		return CompletedText, true
	}
	return fmt.Sprintf("%.2f", math.Floor(left.Seconds()*100)/100), true
}
