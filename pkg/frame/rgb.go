package frame

import (
	"bytes"
	"image"
	"image/jpeg"
)

func decodeRGBA(frame []byte, width, height int) (image.Image, func(), error) {
	size := 4 * width * height
	if size > len(frame) {
		return nil, noop, errShort(len(frame), size)
	}

	return &image.RGBA{
		Pix:    frame[:size:size],
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}, noop, nil
}

func decodeMJPEG(frame []byte, width, height int) (image.Image, func(), error) {
	img, err := jpeg.Decode(bytes.NewReader(frame))
	return img, noop, err
}
