package pong

import (
	"image"
	"testing"

	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/paint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFrame() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, 320, 240))
}

func TestBallMovesAndBounces(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	_, err = p.Render(newFrame(), nil)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(30, 30), image.Pt(p.x, p.y))

	p.x, p.y = 310, 100
	_, err = p.Render(newFrame(), nil)
	require.NoError(t, err)
	assert.Equal(t, -speed, p.vx)
	assert.Equal(t, 290, p.x)
}

func TestBatHitScores(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	_, err = p.Render(newFrame(), nil)
	require.NoError(t, err)

	p.x, p.y, p.vx, p.vy = 160, 200, 0, speed
	frame := newFrame()
	_, err = p.Render(frame, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, p.Score())
	assert.Equal(t, -speed, p.vy)
	assert.Equal(t, 180, p.y)
	assert.Equal(t, paint.Green, frame.RGBAAt(160, 180))
}

func TestBatControls(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	testCases := map[string]struct {
		events   []event.Event
		expected int
	}{
		"MouseMirrored": {[]event.Event{event.MousePosition(100, 10)}, 220},
		"KeyA":          {[]event.Event{event.Key('a')}, 260},
		"KeyD":          {[]event.Event{event.Key('d'), event.Key('d')}, 140},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			p.placed = true
			p.batX = 220
			frame := newFrame()
			_, err := p.Render(frame, tc.events)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p.batX)
			assert.Equal(t, paint.Green, frame.RGBAAt(tc.expected, 239))
			assert.Equal(t, paint.Green, frame.RGBAAt(tc.expected-batWidth/2, 239-batHeight+1))
		})
	}
}

func TestBatKeysStopAtEdges(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	frame := newFrame()
	w := frame.Bounds().Dx()

	p.placed = true
	p.batX = w - 10
	_, err = p.Render(frame, []event.Event{event.Key('a'), event.Key('a'), event.Key('a')})
	require.NoError(t, err)
	assert.Equal(t, w-10+keyStep, p.batX)

	p.batX = 10
	_, err = p.Render(newFrame(), []event.Event{event.Key('d'), event.Key('d'), event.Key('d')})
	require.NoError(t, err)
	assert.Equal(t, 10-keyStep, p.batX)
}
