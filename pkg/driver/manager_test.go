package driver

import (
	"errors"
	"image"
	"testing"

	"github.com/pion/videoproxy/pkg/frame"
	"github.com/pion/videoproxy/pkg/io/video"
	"github.com/pion/videoproxy/pkg/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterTrue(d Driver) bool {
	return true
}
func filterFalse(d Driver) bool {
	return false
}

func TestFilterNot(t *testing.T) {
	if FilterNot(filterTrue)(nil) != false {
		t.Error("FilterNot(filterTrue)() must be false")
	}
	if FilterNot(filterFalse)(nil) != true {
		t.Error("FilterNot(filterFalse)() must be true")
	}
}

func TestFilterAnd(t *testing.T) {
	if FilterAnd(filterTrue, filterTrue)(nil) != true {
		t.Error("FilterAnd(filterTrue, filterTrue)() must be true")
	}
	if FilterAnd(filterTrue, filterFalse)(nil) != false {
		t.Error("FilterAnd(filterTrue, filterFalse)() must be false")
	}
	if FilterAnd(filterFalse, filterTrue, filterTrue)(nil) != false {
		t.Error("FilterAnd(filterFalse, filterTrue, filterTrue)() must be false")
	}
	if FilterAnd()(nil) != true {
		t.Error("FilterAnd()() must be true")
	}
}

type fakeAdapter struct {
	props   []prop.Media
	openErr error
	opened  int
	closed  int
}

func (a *fakeAdapter) Open() error {
	a.opened++
	return a.openErr
}

func (a *fakeAdapter) Close() error {
	a.closed++
	return nil
}

func (a *fakeAdapter) Properties() []prop.Media {
	return append([]prop.Media(nil), a.props...)
}

func (a *fakeAdapter) VideoRecord(p prop.Media) (video.Reader, error) {
	return video.ReaderFunc(func() (image.Image, func(), error) {
		return image.NewRGBA(image.Rect(0, 0, p.Width, p.Height)), func() {}, nil
	}), nil
}

func media(w, h int, fps float32) prop.Media {
	return prop.Media{Video: prop.Video{Width: w, Height: h, FrameRate: fps, FrameFormat: frame.FormatYUY2}}
}

func TestManagerQuery(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Register(&fakeAdapter{}, Info{Label: "/dev/video0", DeviceType: Camera}))
	require.NoError(t, m.Register(&fakeAdapter{}, Info{Label: "0", DeviceType: Screen}))
	require.NoError(t, m.Register(&fakeAdapter{}, Info{Label: "/dev/video1", DeviceType: Camera}))
	assert.Error(t, m.Register(nil, Info{}))

	cams := m.Query(FilterDeviceType(Camera))
	require.Len(t, cams, 2)
	assert.Equal(t, "/dev/video0", cams[0].Info().Label)
	assert.Equal(t, "/dev/video1", cams[1].Info().Label)
	assert.NotEqual(t, cams[0].ID(), cams[1].ID())

	byLabel := m.Query(FilterAnd(FilterDeviceType(Camera), FilterLabel("/dev/video1")))
	require.Len(t, byLabel, 1)
	assert.Len(t, m.Query(FilterID(byLabel[0].ID())), 1)
}

func TestSelectBest(t *testing.T) {
	m := NewManager()
	low := &fakeAdapter{props: []prop.Media{media(640, 480, 30)}}
	good := &fakeAdapter{props: []prop.Media{media(640, 480, 30), media(1280, 720, 60)}}
	broken := &fakeAdapter{openErr: errors.New("busy")}
	require.NoError(t, m.Register(low, Info{Label: "low", DeviceType: Camera}))
	require.NoError(t, m.Register(good, Info{Label: "good", DeviceType: Camera}))
	require.NoError(t, m.Register(broken, Info{Label: "broken", DeviceType: Camera}))

	d, p, err := m.SelectBest(FilterDeviceType(Camera), prop.Constraints{
		Width:     prop.Int(1280),
		Height:    prop.Int(720),
		FrameRate: prop.Float(60),
	})
	require.NoError(t, err)
	assert.Equal(t, "good", d.Info().Label)
	assert.Equal(t, 1280, p.Width)
	assert.Equal(t, d.ID(), p.DeviceID)
	assert.Equal(t, StateOpened, d.Status())

	// Drivers only opened for probing are closed again.
	assert.Equal(t, 1, low.closed)
	assert.Equal(t, 0, good.closed)

	r, err := d.VideoRecord(p)
	require.NoError(t, err)
	assert.Equal(t, StateRunning, d.Status())
	img, _, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1280, 720), img.Bounds())

	_, err = d.VideoRecord(p)
	assert.Error(t, err, "a running driver can't be started twice")
}

func TestSelectBestNotFound(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Register(&fakeAdapter{props: []prop.Media{media(640, 480, 30)}}, Info{DeviceType: Camera}))

	_, _, err := m.SelectBest(FilterDeviceType(Screen), prop.Constraints{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = m.SelectBest(FilterDeviceType(Camera), prop.Constraints{Width: prop.IntExact(1920)})
	assert.ErrorIs(t, err, ErrNotFound)
}
