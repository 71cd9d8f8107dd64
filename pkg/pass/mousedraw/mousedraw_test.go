package mousedraw

import (
	"image"
	"testing"

	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/paint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMouseDrawing(t *testing.T) {
	p := New()

	frame := image.NewRGBA(image.Rect(0, 0, 200, 100))
	_, err := p.Render(frame, []event.Event{
		event.MousePosition(10, 50),
		event.MouseClick(event.LeftDown),
		event.MousePosition(10, 50),
		event.MousePosition(110, 50),
		event.MouseClick(event.LeftUp),
		event.MousePosition(150, 20),
	})
	require.NoError(t, err)

	// Mirrored: x=10 -> 190, x=110 -> 90.
	assert.Equal(t, paint.Magenta, frame.RGBAAt(140, 50))
	assert.Equal(t, [][2]image.Point{{{190, 50}, {90, 50}}}, p.lines.Segments())
	assert.Equal(t, image.Pt(50, 20), p.lastPos)
	assert.Equal(t, paint.White, frame.RGBAAt(50+cursorRadius-1, 20))

	// Moving after the release must not connect to the old line.
	frame = image.NewRGBA(frame.Bounds())
	_, err = p.Render(frame, []event.Event{
		event.MouseClick(event.LeftDown),
		event.MousePosition(150, 20),
		event.MousePosition(150, 80),
	})
	require.NoError(t, err)
	assert.Len(t, p.lines.Segments(), 2)
	assert.Equal(t, paint.Magenta, frame.RGBAAt(50, 60))
	assert.NotEqual(t, paint.Magenta, frame.RGBAAt(70, 35))
}

func TestMiddleClickResets(t *testing.T) {
	p := New()
	frame := image.NewRGBA(image.Rect(0, 0, 200, 100))
	_, err := p.Render(frame, []event.Event{
		event.MouseClick(event.LeftDown),
		event.MousePosition(10, 10),
		event.MousePosition(100, 10),
	})
	require.NoError(t, err)
	require.Len(t, p.lines.Segments(), 1)

	_, err = p.Render(image.NewRGBA(frame.Bounds()), []event.Event{event.MouseClick(event.MiddleDown)})
	require.NoError(t, err)
	assert.Empty(t, p.lines.Segments())
}

func TestIgnoresPositionsWithoutButton(t *testing.T) {
	p := New()
	_, err := p.Render(image.NewRGBA(image.Rect(0, 0, 200, 100)), []event.Event{
		event.MousePosition(10, 10),
		event.MousePosition(100, 10),
		event.Key('x'),
	})
	require.NoError(t, err)
	assert.Empty(t, p.lines.Segments())
}
