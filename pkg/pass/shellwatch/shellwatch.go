// Package shellwatch provides a pass that periodically runs a shell command and paints
// its standard output onto the frame.
package shellwatch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/paint"
	"golang.org/x/image/font"
)

const (
	// DefaultFrequency is the number of ticks between two runs of the command.
	DefaultFrequency = 10
	// DefaultTimeout bounds a single run of the command.
	DefaultTimeout = time.Second

	lineSpacing = 35
)

var errInvalidCommand = errors.New("invalid command")

// Option configures a Pass.
type Option func(*Pass)

// WithFrequency sets the number of ticks between two runs.
func WithFrequency(n int) Option {
	return func(p *Pass) {
		p.frequency = n
	}
}

// WithPosition sets the baseline of the first output line, in mirrored coordinates.
func WithPosition(pt image.Point) Option {
	return func(p *Pass) {
		p.pos = pt
		p.positioned = true
	}
}

// WithTimeout sets how long a single run may take before it is killed.
func WithTimeout(d time.Duration) Option {
	return func(p *Pass) {
		p.timeout = d
	}
}

// Pass runs its command on the first tick and then on every frequency-th tick. The
// lines printed by the last successful run are painted on every tick.
type Pass struct {
	command    string
	args       []string
	frequency  int
	timeout    time.Duration
	pos        image.Point
	positioned bool
	face       font.Face

	counter int
	output  []string
	run     func(ctx context.Context) ([]byte, error)
}

// New creates a Pass for command. command is split like a shell would, respecting
// quotes, but it isn't run through a shell.
func New(command string, opts ...Option) (*Pass, error) {
	args, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidCommand, err)
	}
	if len(args) == 0 || args[0] == "" {
		return nil, errInvalidCommand
	}

	face, err := paint.Face(paint.SizeNormal)
	if err != nil {
		return nil, err
	}

	p := &Pass{
		command:   command,
		args:      args,
		frequency: DefaultFrequency,
		timeout:   DefaultTimeout,
		face:      face,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.frequency < 0 {
		p.frequency = 0
	}
	p.counter = p.frequency
	p.run = p.exec
	return p, nil
}

func (p *Pass) Name() string {
	return "Shell command (" + p.command + ")"
}

// Render runs the command every frequency frames. A failed run returns the error and
// leaves frame untouched, the last output is painted again after the next success.
func (p *Pass) Render(frame *image.RGBA, _ []event.Event) (*image.RGBA, error) {
	if p.counter >= p.frequency {
		p.counter = 0

		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		out, err := p.run(ctx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.args[0], err)
		}
		p.output = strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	} else {
		p.counter++
	}

	pos := p.pos
	if !p.positioned {
		pos = image.Pt(frame.Bounds().Dx()/2, frame.Bounds().Dy()/2)
	}
	for i, line := range p.output {
		pt := image.Pt(pos.X, pos.Y+i*lineSpacing)
		paint.OutlinedText(frame, line, pt, p.face, paint.White, paint.Black, true)
	}
	return frame, nil
}

// Output returns the lines printed by the last successful run.
func (p *Pass) Output() []string {
	return append([]string(nil), p.output...)
}

func (p *Pass) exec(ctx context.Context) ([]byte, error) {
	return exec.CommandContext(ctx, p.args[0], p.args[1:]...).Output()
}
