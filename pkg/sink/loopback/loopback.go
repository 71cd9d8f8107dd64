// Package loopback publishes frames to a v4l2loopback device, where other applications
// can open them as a regular camera. Frames are piped as raw RGBA into ffmpeg, which
// converts them and writes the device.
package loopback

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/shlex"
	"github.com/pion/logging"
	internallog "github.com/pion/videoproxy/internal/logging"
)

const closeTimeout = 3 * time.Second

var (
	errInvalidCommand = errors.New("invalid command")
	errFrameSize      = errors.New("frame size doesn't match the output")
	errClosed         = errors.New("sink is closed")
)

// Command returns the ffmpeg invocation that writes raw RGBA frames of the given size
// from its standard input to device.
func Command(device string, width, height int, fps float32) string {
	return fmt.Sprintf(
		"ffmpeg -hide_banner -loglevel warning -f rawvideo -pix_fmt rgba -s %dx%d -r %g -i - -f v4l2 -pix_fmt yuv420p %s",
		width, height, fps, device,
	)
}

// Option configures a Sink.
type Option func(*Sink)

// WithCommand replaces the ffmpeg command. The command receives raw RGBA frames on its
// standard input.
func WithCommand(command string) Option {
	return func(s *Sink) {
		s.command = command
	}
}

// WithLogger sets the logger that receives the standard error of the command.
func WithLogger(log logging.LeveledLogger) Option {
	return func(s *Sink) {
		s.log = log
	}
}

// Sink feeds frames to an external converter process.
type Sink struct {
	command       string
	width, height int
	log           logging.LeveledLogger

	// mu serializes writes only. Close must not take it, a write blocked on a stalled
	// converter is released by closing stdin.
	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	closed atomic.Bool
	exited chan error
}

// New starts the converter for frames of width x height writing to device.
func New(device string, width, height int, fps float32, opts ...Option) (*Sink, error) {
	s := &Sink{
		command: Command(device, width, height, fps),
		width:   width,
		height:  height,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = internallog.NewLogger("videoproxy/sink")
	}

	args, err := shlex.Split(s.command)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidCommand, err)
	}
	if len(args) == 0 || args[0] == "" {
		return nil, errInvalidCommand
	}

	s.cmd = exec.Command(args[0], args[1:]...)
	s.stdin, err = s.cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := s.cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	if err := s.cmd.Start(); err != nil {
		return nil, err
	}

	stderrDone := make(chan struct{})
	go func() {
		defer close(stderrDone)
		prefix := fmt.Sprintf("(%s stderr): ", args[0])
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			s.log.Warn(prefix + scanner.Text())
		}
	}()

	s.exited = make(chan error, 1)
	go func() {
		// Wait closes the pipes, stderr must be drained first.
		<-stderrDone
		s.exited <- s.cmd.Wait()
	}()
	return s, nil
}

// Publish writes frame to the converter. It blocks while the converter is busy.
func (s *Sink) Publish(frame *image.RGBA) error {
	b := frame.Bounds()
	if b.Dx() != s.width || b.Dy() != s.height {
		return fmt.Errorf("%w: got %dx%d, expected %dx%d", errFrameSize, b.Dx(), b.Dy(), s.width, s.height)
	}

	if s.closed.Load() {
		return errClosed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return errClosed
	}

	rowLen := 4 * b.Dx()
	if frame.Stride == rowLen {
		start := frame.PixOffset(b.Min.X, b.Min.Y)
		_, err := s.stdin.Write(frame.Pix[start : start+rowLen*b.Dy()])
		return err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start := frame.PixOffset(b.Min.X, y)
		if _, err := s.stdin.Write(frame.Pix[start : start+rowLen]); err != nil {
			return err
		}
	}
	return nil
}

// Close ends the input of the converter and waits for it to exit. A converter that
// doesn't exit in time is interrupted, and killed if that doesn't help either.
func (s *Sink) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	_ = s.stdin.Close()

	select {
	case err := <-s.exited:
		return err
	case <-time.After(closeTimeout):
	}

	_ = s.cmd.Process.Signal(os.Interrupt)
	select {
	case err := <-s.exited:
		return err
	case <-time.After(closeTimeout):
		return s.cmd.Process.Kill()
	}
}
