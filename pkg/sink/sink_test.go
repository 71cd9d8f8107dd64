package sink

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	published int
	closed    int
	err       error
}

func (r *recorder) Publish(*image.RGBA) error {
	r.published++
	return r.err
}

func (r *recorder) Close() error {
	r.closed++
	return r.err
}

func TestTee(t *testing.T) {
	errBroken := errors.New("broken")
	a, b, c := &recorder{}, &recorder{err: errBroken}, &recorder{}
	tee := Tee{a, b, c}

	frame := image.NewRGBA(image.Rect(0, 0, 2, 2))
	assert.ErrorIs(t, tee.Publish(frame), errBroken)
	assert.Equal(t, 1, a.published)
	assert.Equal(t, 1, c.published, "a failing sink must not starve the ones after it")

	assert.ErrorIs(t, tee.Close(), errBroken)
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, c.closed)

	assert.NoError(t, Tee{a, c}.Publish(frame))
	assert.NoError(t, Discard.Publish(frame))
}
