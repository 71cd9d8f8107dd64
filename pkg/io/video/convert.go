package video

import (
	"image"

	"golang.org/x/image/draw"
)

// imageToRGBA converts src to *image.RGBA and store it to dst. RGBA sources are shared,
// not copied.
func imageToRGBA(dst *image.RGBA, src image.Image) {
	if srcRGBA, ok := src.(*image.RGBA); ok {
		*dst = *srcRGBA
		return
	}
	copyToRGBA(dst, src)
}

// copyToRGBA draws src into dst, growing dst.Pix only when it is too small.
func copyToRGBA(dst *image.RGBA, src image.Image) {
	bounds := src.Bounds()
	size := 4 * bounds.Dx() * bounds.Dy()
	if cap(dst.Pix) < size {
		dst.Pix = make([]uint8, size)
	}
	dst.Pix = dst.Pix[:size]
	dst.Stride = 4 * bounds.Dx()
	dst.Rect = bounds

	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
}

// ToRGBA converts r to a new reader that will output images in RGBA format
func ToRGBA(r Reader) Reader {
	var dst image.RGBA
	return ReaderFunc(func() (image.Image, func(), error) {
		img, release, err := r.Read()
		if err != nil {
			return nil, noop, err
		}

		if _, ok := img.(*image.RGBA); ok {
			return img, release, nil
		}
		defer release()

		imageToRGBA(&dst, img)
		return &dst, noop, nil
	})
}
