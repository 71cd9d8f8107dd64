// Package videoproxy reads frames from a capture source, runs them through a selectable
// chain of render passes driven by user input, and publishes the result to a sink such as
// a virtual camera.
package videoproxy

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/pion/logging"
	internallog "github.com/pion/videoproxy/internal/logging"
	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/io/video"
	"github.com/pion/videoproxy/pkg/pass"
	"github.com/pion/videoproxy/pkg/sink"
	"golang.org/x/image/draw"
)

var (
	// ErrSourceRead is wrapped around the error of a failed source read. It ends Run.
	ErrSourceRead = errors.New("source read failed")
	// ErrPassFailed is wrapped around a pass failure returned under FailFast.
	ErrPassFailed = errors.New("render pass failed")

	errNilFrame = errors.New("returned no frame")
)

// Stats are counters of a running Proxy.
type Stats struct {
	Ticks         uint64
	Executions    []uint64
	PassErrors    uint64
	PublishErrors uint64
	LastTick      time.Duration
}

// Proxy is the frame scheduler. Each tick acquires a source frame, composes it into the
// output frame, applies control keys, runs the selected passes, draws the overlay and
// publishes the result.
type Proxy struct {
	Options

	src    video.Reader
	sink   sink.Sink
	passes []pass.RenderPass
	queue  *event.Queue

	// Only touched by the scheduling goroutine.
	frame    *image.RGBA
	executed []string
	ov       *overlay

	mu    sync.Mutex
	state controlState
	stats Stats
}

// New creates a Proxy reading src and publishing to s. passes is the pass registry and
// queue the event queue filled by the input surface. The Proxy runs the passes registered
// at the time of the call, later registrations are ignored.
func New(src video.Reader, s sink.Sink, passes *pass.Registry, queue *event.Queue, opts ...Option) (*Proxy, error) {
	o := Options{
		width:     DefaultWidth,
		height:    DefaultHeight,
		frameRate: DefaultFrameRate,
		scaler:    video.ScalerApproxBiLinear,
		mask:      DefaultMask,
		overlay:   true,
		policy:    Isolate,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("invalid output size %dx%d", o.width, o.height)
	}
	if o.log == nil {
		o.log = internallog.NewLogger("videoproxy")
	}

	bounds := image.Rect(0, 0, o.width, o.height)
	background := image.NewRGBA(bounds)
	draw.Draw(background, bounds, image.Black, image.Point{}, draw.Src)
	if o.background != nil {
		video.ScaleInto(background, bounds, o.background, o.scaler)
	}
	o.background = background

	if o.transform != nil {
		src = o.transform(src)
	}
	src = video.Throttle(o.frameRate)(src)

	var selected []pass.RenderPass
	if passes != nil {
		selected = passes.Passes()
	}
	p := &Proxy{
		Options: o,
		src:     src,
		sink:    s,
		passes:  selected,
		queue:   queue,
		frame:   image.NewRGBA(bounds),
		state:   controlState{mask: o.mask},
		stats:   Stats{Executions: make([]uint64, len(selected))},
	}
	if o.overlay {
		ov, err := newOverlay()
		if err != nil {
			return nil, err
		}
		p.ov = ov
	}
	return p, nil
}

// Run ticks until ctx is done, which returns nil, or until a tick fails. A failed source
// read is fatal, the returned error wraps ErrSourceRead and the caller is expected to
// shut down.
func (p *Proxy) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := p.Tick(); err != nil {
			return err
		}
	}
}

// Tick runs one pipeline iteration.
func (p *Proxy) Tick() error {
	start := time.Now()

	img, release, err := p.src.Read()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceRead, err)
	}

	p.compose(img, p.PIP())
	release()

	// Control keys drained now affect the passes of this tick, and the composition of
	// the next one.
	events := p.queue.Drain()
	p.mu.Lock()
	for _, e := range events {
		if e.Kind == event.KindKey {
			p.state.apply(e.Key)
		}
	}
	mask := p.state.mask
	p.mu.Unlock()

	frame, err := p.render(mask, events)
	if err != nil {
		return err
	}

	if p.ov != nil {
		p.ov.draw(frame, p.executed)
	}

	publishErr := p.sink.Publish(frame)
	if publishErr != nil {
		p.log.Warnf("Failed to publish frame: %v", publishErr)
	}

	p.mu.Lock()
	p.stats.Ticks++
	if publishErr != nil {
		p.stats.PublishErrors++
	}
	p.stats.LastTick = time.Since(start)
	p.mu.Unlock()
	return nil
}

// compose fills the working frame from the source image. In picture in picture mode the
// source is shrunk into the top left quarter of a copy of the background.
func (p *Proxy) compose(src image.Image, pip bool) {
	bounds := p.frame.Bounds()
	if !pip {
		video.ScaleInto(p.frame, bounds, src, p.scaler)
		return
	}

	draw.Draw(p.frame, bounds, p.background, image.Point{}, draw.Src)
	corner := image.Rect(0, 0, bounds.Dx()/4, bounds.Dy()/4)
	video.ScaleInto(p.frame, corner, src, p.scaler)
}

// render runs the selected passes in registry order.
func (p *Proxy) render(mask Mask, events []event.Event) (*image.RGBA, error) {
	frame := p.frame
	p.executed = p.executed[:0]

	for i, rp := range p.passes {
		if !mask.Has(i) {
			continue
		}

		out, err := rp.Render(frame, events)
		if err == nil {
			switch {
			case out == nil:
				err = errNilFrame
			case out.Bounds() != frame.Bounds():
				err = fmt.Errorf("returned a %v frame, expected %v", out.Bounds(), frame.Bounds())
			}
		}

		if err != nil {
			p.mu.Lock()
			p.stats.PassErrors++
			p.mu.Unlock()

			if p.policy == FailFast {
				return nil, fmt.Errorf("%w: pass #%d %q: %w", ErrPassFailed, i, rp.Name(), err)
			}
			p.log.Warnf("Pass #%d %s failed, skipping it: %v", i, rp.Name(), err)
			continue
		}

		frame = out
		p.executed = append(p.executed, rp.Name())
		p.mu.Lock()
		p.stats.Executions[i]++
		p.mu.Unlock()
	}
	return frame, nil
}

// ApplyControl interprets key as a control key, as if it had been drained from the event
// queue. It reports whether key was a control key.
func (p *Proxy) ApplyControl(key int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.apply(key)
}

// Mask returns the current pass selection.
func (p *Proxy) Mask() Mask {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.mask
}

// PIP reports whether picture in picture mode is on.
func (p *Proxy) PIP() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.pip
}

// Stats returns a snapshot of the counters.
func (p *Proxy) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.stats
	s.Executions = append([]uint64(nil), p.stats.Executions...)
	return s
}

// LogPasses logs every registered pass with its index.
func LogPasses(log logging.LeveledLogger, passes *pass.Registry) {
	for i, name := range passes.Names() {
		log.Infof("Pass #%d: %s", i, name)
	}
}
