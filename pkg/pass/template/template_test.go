package template

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/paint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pattern is an asymmetric 32x32 picture so that it matches in one place only.
func pattern() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	paint.Rect(img, img.Bounds(), paint.White)
	paint.Rect(img, image.Rect(0, 0, 16, 16), paint.Black)
	paint.Rect(img, image.Rect(16, 16, 24, 32), paint.Black)
	paint.Rect(img, image.Rect(24, 0, 32, 8), paint.Black)
	return img
}

func writeTemplate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.png")
	require.NoError(t, imaging.Save(pattern(), path))
	return path
}

func frameWithPattern(at image.Point) *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, 320, 240))
	paint.Rect(frame, frame.Bounds(), color.RGBA{0x80, 0x80, 0x80, 0xff})
	tmpl := pattern()
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			frame.SetRGBA(at.X+x, at.Y+y, tmpl.RGBAAt(x, y))
		}
	}
	return frame
}

func TestMatch(t *testing.T) {
	p, err := New(writeTemplate(t))
	require.NoError(t, err)

	for _, at := range []image.Point{{200, 100}, {0, 0}, {288, 208}, {60, 140}} {
		pt, ok := p.match(frameWithPattern(at))
		require.True(t, ok)
		assert.InDelta(t, at.X, pt.X, downscale, "match of %v", at)
		assert.InDelta(t, at.Y, pt.Y, downscale, "match of %v", at)
	}
}

func TestRenderMarksCentre(t *testing.T) {
	p, err := New(writeTemplate(t))
	require.NoError(t, err)

	frame := frameWithPattern(image.Pt(200, 100))
	_, err = p.Render(frame, nil)
	require.NoError(t, err)

	points := p.drawer.Points()
	require.Len(t, points, 1)
	assert.InDelta(t, 216, points[0].X, downscale)
	assert.InDelta(t, 116, points[0].Y, downscale)
	assert.Equal(t, paint.Red, frame.RGBAAt(points[0].X, points[0].Y))

	_, err = p.Render(frameWithPattern(image.Pt(200, 100)), []event.Event{event.MouseClick(event.MiddleDown)})
	require.NoError(t, err)
	assert.Len(t, p.drawer.Points(), 1, "reset happens before the new match is recorded")
}

func TestFrameSmallerThanTemplate(t *testing.T) {
	p, err := New(writeTemplate(t))
	require.NoError(t, err)

	_, err = p.Render(image.NewRGBA(image.Rect(0, 0, 16, 16)), nil)
	require.NoError(t, err)
	assert.Empty(t, p.drawer.Points())
}

func TestMissingTemplate(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "template.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
