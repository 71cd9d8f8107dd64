package videoproxy

import (
	"image"

	"github.com/pion/logging"
	"github.com/pion/videoproxy/pkg/io/video"
)

// PassErrorPolicy decides what a failing pass does to the tick it fails in.
type PassErrorPolicy int

const (
	// Isolate logs the failure, skips the pass for this tick and keeps going with the
	// frame the pass was given.
	Isolate PassErrorPolicy = iota
	// FailFast makes Tick return the pass error.
	FailFast
)

// Default output properties.
const (
	DefaultWidth     = 1280
	DefaultHeight    = 720
	DefaultFrameRate = 60
)

// Options stores parameters used by Proxy.
type Options struct {
	width, height int
	frameRate     float32
	scaler        video.Scaler
	background    *image.RGBA
	mask          Mask
	log           logging.LeveledLogger
	overlay       bool
	policy        PassErrorPolicy
	transform     video.TransformFunc
}

// Option is a type of Proxy functional option.
type Option func(*Options)

// WithSize sets the output frame size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.width, o.height = width, height
	}
}

// WithFrameRate sets the target frame rate. The source is paced to it but frames are
// never dropped, so it is an upper bound. Zero disables pacing.
func WithFrameRate(fps float32) Option {
	return func(o *Options) {
		o.frameRate = fps
	}
}

// WithScaler sets the algorithm used to fit source frames to the output size.
func WithScaler(s video.Scaler) Option {
	return func(o *Options) {
		o.scaler = s
	}
}

// WithBackground sets the canvas shown around the picture in picture. It is scaled to
// the output size once and never modified.
func WithBackground(img *image.RGBA) Option {
	return func(o *Options) {
		o.background = img
	}
}

// WithInitialMask sets the pass selection at startup.
func WithInitialMask(m Mask) Option {
	return func(o *Options) {
		o.mask = m
	}
}

// WithLogger sets the logger of the proxy.
func WithLogger(log logging.LeveledLogger) Option {
	return func(o *Options) {
		o.log = log
	}
}

// WithOverlay enables or disables drawing the names of the executed passes.
func WithOverlay(enabled bool) Option {
	return func(o *Options) {
		o.overlay = enabled
	}
}

// WithPassErrorPolicy sets how failing passes are handled.
func WithPassErrorPolicy(p PassErrorPolicy) Option {
	return func(o *Options) {
		o.policy = p
	}
}

// WithTransformers adds transforms that source frames go through before composition,
// in the given order.
func WithTransformers(transformFuncs ...video.TransformFunc) Option {
	return func(o *Options) {
		o.transform = video.Merge(o.transform, video.Merge(transformFuncs...))
	}
}
