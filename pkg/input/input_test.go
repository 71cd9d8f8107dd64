package input

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pion/videoproxy/internal/logging"
	"github.com/pion/videoproxy/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter(t *testing.T) {
	q := event.NewQueue()
	e := NewEmitter(q)

	e.Char('3')
	e.Button(ButtonLeft, Press, 10, 20)
	e.Move(11, 21)
	e.Button(ButtonLeft, Release, 12, 22)
	e.Button(ButtonMiddle, Press, 13, 23)
	e.Button(ButtonRight, Press, 14, 24)
	e.Button(ButtonMiddle, Release, 15, 25)

	assert.Equal(t, []event.Event{
		event.Key('3'),
		event.MouseClick(event.LeftDown),
		event.MousePosition(10, 20),
		event.MousePosition(11, 21),
		event.MouseClick(event.LeftUp),
		event.MousePosition(12, 22),
		event.MouseClick(event.MiddleDown),
		event.MousePosition(13, 23),
		event.MousePosition(14, 24),
		event.MousePosition(15, 25),
	}, q.Drain())
}

type fakeSurface struct {
	polls  int32
	closed int32
	// closeAfter makes Poll report a closed surface after that many polls, if positive.
	closeAfter int32
}

func (s *fakeSurface) Poll(timeout time.Duration) bool {
	n := atomic.AddInt32(&s.polls, 1)
	time.Sleep(timeout)
	return s.closeAfter <= 0 || n < s.closeAfter
}

func (s *fakeSurface) Close() error {
	atomic.AddInt32(&s.closed, 1)
	return nil
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &fakeSurface{}

	done := make(chan error)
	go func() {
		done <- Run(ctx, s, time.Millisecond, logging.NewLogger("test"))
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run didn't return after cancel")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&s.closed))
	assert.Greater(t, atomic.LoadInt32(&s.polls), int32(1))
}

func TestRunStopsWhenSurfaceCloses(t *testing.T) {
	s := &fakeSurface{closeAfter: 3}
	require.NoError(t, Run(context.Background(), s, time.Millisecond, logging.NewLogger("test")))
	assert.Equal(t, int32(3), s.polls)
	assert.Equal(t, int32(1), s.closed)
}
