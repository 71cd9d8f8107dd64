// Package videotest provides dummy video driver for testing.
package videotest

import (
	"context"
	"image"
	"io"
	"math/rand"
	"time"

	"github.com/pion/videoproxy/pkg/driver"
	"github.com/pion/videoproxy/pkg/frame"
	"github.com/pion/videoproxy/pkg/io/video"
	"github.com/pion/videoproxy/pkg/prop"
)

// Register registers a color bar generator producing frames of width x height at fps.
func Register(m *driver.Manager, width, height int, fps float32) error {
	return m.Register(
		&dummy{width: width, height: height, fps: fps},
		driver.Info{Label: "VideoTest", DeviceType: driver.Test, Priority: driver.PriorityLow},
	)
}

// colors are the SMPTE bars in YCbCr.
var colors = [][3]byte{
	{235, 128, 128},
	{210, 16, 146},
	{170, 166, 16},
	{145, 54, 34},
	{107, 202, 222},
	{82, 90, 240},
	{41, 240, 110},
}

type dummy struct {
	width, height int
	fps           float32

	closed <-chan struct{}
	cancel func()
	tick   *time.Ticker
}

func (d *dummy) Open() error {
	ctx, cancel := context.WithCancel(context.Background())
	d.closed = ctx.Done()
	d.cancel = cancel
	return nil
}

func (d *dummy) Close() error {
	d.cancel()
	if d.tick != nil {
		d.tick.Stop()
	}
	return nil
}

func (d *dummy) VideoRecord(p prop.Media) (video.Reader, error) {
	if p.FrameRate == 0 {
		p.FrameRate = 30
	}

	base := colorBars(p.Width, p.Height)
	hColorBarEnd := p.Height * 3 / 4
	wGradationEnd := p.Width * 5 / 7
	random := rand.New(rand.NewSource(0))

	tick := time.NewTicker(time.Duration(float32(time.Second) / p.FrameRate))
	d.tick = tick
	closed := d.closed

	img := image.NewYCbCr(base.Rect, base.SubsampleRatio)
	r := video.ReaderFunc(func() (image.Image, func(), error) {
		select {
		case <-closed:
			return nil, func() {}, io.EOF
		default:
		}

		select {
		case <-closed:
			return nil, func() {}, io.EOF
		case <-tick.C:
		}

		copy(img.Y, base.Y)
		copy(img.Cb, base.Cb)
		copy(img.Cr, base.Cr)
		for y := hColorBarEnd; y < p.Height; y++ {
			yi := img.YStride * y
			for x := wGradationEnd; x < p.Width; x++ {
				// Noise
				img.Y[yi+x] = uint8(random.Int31n(2) * 255)
			}
		}
		return img, func() {}, nil
	})

	return r, nil
}

// colorBars draws 75% color bars over the top three quarters and a gray ramp below.
func colorBars(width, height int) *image.YCbCr {
	img := image.NewYCbCr(image.Rect(0, 0, width, height), image.YCbCrSubsampleRatio422)
	hColorBarEnd := height * 3 / 4
	wGradationEnd := width * 5 / 7
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			yi, ci := img.YOffset(x, y), img.COffset(x, y)
			switch {
			case y < hColorBarEnd:
				c := colors[x*7/width]
				img.Y[yi] = uint8(uint16(c[0]) * 75 / 100)
				img.Cb[ci], img.Cr[ci] = c[1], c[2]
			case x < wGradationEnd:
				img.Y[yi] = uint8(x * 255 / wGradationEnd)
				img.Cb[ci], img.Cr[ci] = 128, 128
			default:
				img.Cb[ci], img.Cr[ci] = 128, 128
			}
		}
	}
	return img
}

func (d *dummy) Properties() []prop.Media {
	return []prop.Media{
		{
			Video: prop.Video{
				Width:       d.width,
				Height:      d.height,
				FrameRate:   d.fps,
				FrameFormat: frame.FormatYUYV,
			},
		},
	}
}
