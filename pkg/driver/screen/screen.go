// Package screen provides a video driver capturing the host's displays, handy for running
// the pipeline on a machine without a camera.
package screen

import (
	"fmt"
	"image"
	"io"

	"github.com/kbinani/screenshot"
	"github.com/pion/videoproxy/pkg/driver"
	"github.com/pion/videoproxy/pkg/frame"
	"github.com/pion/videoproxy/pkg/io/video"
	"github.com/pion/videoproxy/pkg/prop"
)

type screen struct {
	displayIndex int
	doneCh       chan struct{}
}

// Register registers every active display. The primary display gets a higher priority.
func Register(m *driver.Manager) error {
	activeDisplays := screenshot.NumActiveDisplays()
	for i := 0; i < activeDisplays; i++ {
		priority := driver.PriorityNormal
		if i == 0 {
			priority = driver.PriorityHigh
		}

		err := m.Register(newScreen(i), driver.Info{
			Label:      fmt.Sprint(i),
			DeviceType: driver.Screen,
			Priority:   priority,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func newScreen(displayIndex int) *screen {
	return &screen{displayIndex: displayIndex}
}

func (s *screen) Open() error {
	s.doneCh = make(chan struct{})
	return nil
}

func (s *screen) Close() error {
	close(s.doneCh)
	return nil
}

func (s *screen) VideoRecord(selectedProp prop.Media) (video.Reader, error) {
	doneCh := s.doneCh
	r := video.ReaderFunc(func() (img image.Image, release func(), err error) {
		select {
		case <-doneCh:
			return nil, func() {}, io.EOF
		default:
		}

		img, err = screenshot.CaptureDisplay(s.displayIndex)
		release = func() {}
		return
	})
	return r, nil
}

func (s *screen) Properties() []prop.Media {
	resolution := screenshot.GetDisplayBounds(s.displayIndex)
	supportedProp := prop.Media{
		Video: prop.Video{
			Width:       resolution.Dx(),
			Height:      resolution.Dy(),
			FrameFormat: frame.FormatRGBA,
		},
	}
	return []prop.Media{supportedProp}
}
