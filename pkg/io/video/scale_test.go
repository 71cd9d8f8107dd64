package video

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestScale(t *testing.T) {
	red := color.RGBA{0xff, 0, 0, 0xff}
	src := ReaderFunc(func() (image.Image, func(), error) {
		return solid(640, 480, red), func() {}, nil
	})

	cases := map[string]struct {
		width, height int
		expected      image.Rectangle
	}{
		"Both":         {320, 240, image.Rect(0, 0, 320, 240)},
		"KeepByWidth":  {160, -1, image.Rect(0, 0, 160, 120)},
		"KeepByHeight": {-1, 120, image.Rect(0, 0, 160, 120)},
		"Upscale":      {1280, 720, image.Rect(0, 0, 1280, 720)},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			r := Scale(c.width, c.height, nil)(src)
			img, release, err := r.Read()
			require.NoError(t, err)
			defer release()

			rgba, ok := img.(*image.RGBA)
			require.True(t, ok, "expected *image.RGBA, got %T", img)
			assert.Equal(t, c.expected, rgba.Bounds())
			assert.Equal(t, red, rgba.RGBAAt(rgba.Rect.Dx()/2, rgba.Rect.Dy()/2))
		})
	}
}

func TestScaleYCbCr(t *testing.T) {
	src := ReaderFunc(func() (image.Image, func(), error) {
		return image.NewYCbCr(image.Rect(0, 0, 64, 48), image.YCbCrSubsampleRatio420), func() {}, nil
	})

	img, _, err := Scale(32, 24, ScalerBiLinear)(src).Read()
	require.NoError(t, err)
	rgba := img.(*image.RGBA)
	assert.Equal(t, uint8(0xff), rgba.RGBAAt(5, 5).A)
}

func TestScaleInvalidSize(t *testing.T) {
	src := ReaderFunc(func() (image.Image, func(), error) {
		return solid(4, 4, color.RGBA{}), func() {}, nil
	})
	_, _, err := Scale(0, -1, nil)(src).Read()
	assert.ErrorIs(t, err, errInvalidSize)
}

func TestScaleIntoRegion(t *testing.T) {
	dst := solid(8, 8, color.RGBA{0, 0, 0, 0xff})
	ScaleInto(dst, image.Rect(0, 0, 2, 2), solid(8, 8, color.RGBA{0xff, 0xff, 0xff, 0xff}), nil)

	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, dst.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, dst.RGBAAt(2, 2))
}
