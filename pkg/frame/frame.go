package frame

import (
	"fmt"
	"image"
)

// Decoder turns a raw frame into an image. The returned release function must be called
// once the image is no longer used.
type Decoder interface {
	Decode(frame []byte, width, height int) (image.Image, func(), error)
}

// DecoderFunc is a proxy type for Decoder
type DecoderFunc func(frame []byte, width, height int) (image.Image, func(), error)

func (f DecoderFunc) Decode(frame []byte, width, height int) (image.Image, func(), error) {
	return f(frame, width, height)
}

// NewDecoder returns the decoder of format f.
func NewDecoder(f Format) (Decoder, error) {
	switch f {
	case FormatI420:
		return DecoderFunc(decodeI420), nil
	case FormatNV21:
		return DecoderFunc(decodeNV21), nil
	case FormatNV12:
		return DecoderFunc(decodeNV12), nil
	case FormatYUY2:
		return DecoderFunc(decodeYUY2), nil
	case FormatUYVY:
		return DecoderFunc(decodeUYVY), nil
	case FormatRGBA:
		return DecoderFunc(decodeRGBA), nil
	case FormatMJPEG:
		return DecoderFunc(decodeMJPEG), nil
	}
	return nil, fmt.Errorf("%s is not supported", f)
}

// Size returns the number of bytes a width x height frame occupies in format f. Compressed
// formats have no fixed size and report false.
func Size(f Format, width, height int) (int, bool) {
	n := width * height
	switch f {
	case FormatI420, FormatNV21, FormatNV12:
		return n + n/2, true
	case FormatYUY2, FormatUYVY:
		return 2 * n, true
	case FormatRGBA:
		return 4 * n, true
	}
	return 0, false
}

func noop() {}

func errShort(got, want int) error {
	return fmt.Errorf("frame length (%d) less than expected (%d)", got, want)
}
