package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/blackjack/webcam"
	"github.com/pion/videoproxy/pkg/driver"
	"github.com/pion/videoproxy/pkg/frame"
	"github.com/pion/videoproxy/pkg/io/video"
	"github.com/pion/videoproxy/pkg/prop"
)

const (
	maxEmptyFrameCount = 5
	// seconds
	readTimeout = 5
)

var (
	errReadTimeout = errors.New("read timeout")
	errEmptyFrame  = errors.New("empty frame")
)

// Camera implementation using v4l2
// Reference: https://linuxtv.org/downloads/v4l-dvb-apis/uapi/v4l/videodev.html#videodev
type camera struct {
	path   string
	cam    *webcam.Webcam
	mutex  sync.Mutex
	cancel func()
}

// Register registers the V4L2 device at path, labeled with the path itself.
func Register(m *driver.Manager, path string) error {
	return m.Register(newCamera(path), driver.Info{
		Label:      path,
		DeviceType: driver.Camera,
		Priority:   driver.PriorityNormal,
	})
}

// Discover registers every V4L2 device found by the glob patterns. A device reachable
// through several patterns, like a by-path symlink and the node it points to, is
// registered once with the names joined by LabelSeparator.
func Discover(m *driver.Manager, patterns ...string) error {
	discovered := make(map[string][]string)
	var order []string
	for _, pattern := range patterns {
		devices, err := filepath.Glob(pattern)
		if err != nil {
			return err
		}
		for _, device := range devices {
			reallink, err := filepath.EvalSymlinks(device)
			if err != nil {
				continue
			}
			if _, ok := discovered[reallink]; !ok {
				order = append(order, reallink)
			}
			discovered[reallink] = append(discovered[reallink], filepath.Base(device))
		}
	}

	for _, reallink := range order {
		labels := discovered[reallink]
		if len(labels) == 1 {
			labels = append(labels, filepath.Base(reallink))
		}
		err := m.Register(newCamera(reallink), driver.Info{
			Label:      strings.Join(labels, LabelSeparator),
			DeviceType: driver.Camera,
			Priority:   driver.PriorityNormal,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func newCamera(path string) *camera {
	return &camera{path: path}
}

func (c *camera) Open() error {
	cam, err := webcam.Open(c.path)
	if err != nil {
		return fmt.Errorf("camera %s: %w", c.path, err)
	}

	c.cam = cam
	return nil
}

func (c *camera) Close() error {
	if c.cam == nil {
		return nil
	}

	if c.cancel != nil {
		// Let the reader knows that the caller has closed the camera
		c.cancel()
		// Wait until the reader unref the buffer
		c.mutex.Lock()
		defer c.mutex.Unlock()

		c.cam.StopStreaming()
		c.cancel = nil
	}
	err := c.cam.Close()
	c.cam = nil
	return err
}

func (c *camera) VideoRecord(p prop.Media) (video.Reader, error) {
	decoder, err := frame.NewDecoder(p.FrameFormat)
	if err != nil {
		return nil, err
	}

	pf, ok := toPixelFormat(p.FrameFormat)
	if !ok {
		return nil, fmt.Errorf("camera %s: unsupported frame format %s", c.path, p.FrameFormat)
	}
	_, w, h, err := c.cam.SetImageFormat(pf, uint32(p.Width), uint32(p.Height))
	if err != nil {
		return nil, err
	}
	// The device may round the requested size.
	width, height := int(w), int(h)

	if err := c.cam.StartStreaming(); err != nil {
		return nil, err
	}

	cam := c.cam

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	var buf []byte
	r := video.ReaderFunc(func() (image.Image, func(), error) {
		// Lock to avoid accessing the buffer after StopStreaming()
		c.mutex.Lock()
		defer c.mutex.Unlock()

		for i := 0; i < maxEmptyFrameCount; i++ {
			if ctx.Err() != nil {
				return nil, func() {}, io.EOF
			}

			err := cam.WaitForFrame(readTimeout)
			switch err.(type) {
			case nil:
			case *webcam.Timeout:
				return nil, func() {}, errReadTimeout
			default:
				// Camera has been stopped.
				return nil, func() {}, err
			}

			b, err := cam.ReadFrame()
			if err != nil {
				return nil, func() {}, err
			}

			if len(b) == 0 {
				continue
			}

			if len(b) > len(buf) {
				buf = make([]byte, len(b))
			}

			// move the memory from mmap to Go, StopStreaming unmaps it while decoded
			// images may still be in use.
			n := copy(buf, b)
			return decoder.Decode(buf[:n], width, height)
		}
		return nil, func() {}, errEmptyFrame
	})

	return r, nil
}

func (c *camera) Properties() []prop.Media {
	properties := make([]prop.Media, 0)
	for format := range c.cam.GetSupportedFormats() {
		ff, ok := toFrameFormat(format)
		if !ok {
			continue
		}
		for _, frameSize := range c.cam.GetSupportedFrameSizes(format) {
			properties = append(properties, prop.Media{
				Video: prop.Video{
					Width:       int(frameSize.MaxWidth),
					Height:      int(frameSize.MaxHeight),
					FrameFormat: ff,
				},
			})
		}
	}
	return properties
}
