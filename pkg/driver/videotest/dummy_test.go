package videotest

import (
	"image"
	"io"
	"testing"

	"github.com/pion/videoproxy/pkg/driver"
	"github.com/pion/videoproxy/pkg/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoTest(t *testing.T) {
	m := driver.NewManager()
	require.NoError(t, Register(m, 64, 48, 100))

	d, p, err := m.SelectBest(driver.FilterDeviceType(driver.Test), prop.Constraints{Width: prop.Int(64)})
	require.NoError(t, err)
	assert.Equal(t, 64, p.Width)
	assert.Equal(t, 48, p.Height)

	r, err := d.VideoRecord(p)
	require.NoError(t, err)

	img, release, err := r.Read()
	require.NoError(t, err)
	release()
	assert.Equal(t, image.Rect(0, 0, 64, 48), img.Bounds())

	// Left most bar is 75% white.
	yuv := img.(*image.YCbCr)
	assert.Equal(t, uint8(235*75/100), yuv.Y[yuv.YOffset(0, 0)])

	require.NoError(t, d.Close())
	_, _, err = r.Read()
	assert.Equal(t, io.EOF, err)
}
