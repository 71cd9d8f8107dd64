package video

import (
	"errors"
	"image"

	"golang.org/x/image/draw"
)

// Scaler represents scaling algorithm
type Scaler draw.Scaler

// List of scaling algorithms
var (
	ScalerNearestNeighbor = Scaler(draw.NearestNeighbor)
	ScalerApproxBiLinear  = Scaler(draw.ApproxBiLinear)
	ScalerBiLinear        = Scaler(draw.BiLinear)
	ScalerCatmullRom      = Scaler(draw.CatmullRom)
)

var errInvalidSize = errors.New("scaling: both width and height are non-positive")

// Scale returns video scaling transform. The scaled frames are always *image.RGBA and the
// same buffer is reused between reads.
// Setting scaler=nil to use default scaler. (ScalerNearestNeighbor)
// Negative width or height value will keep the aspect ratio of incoming image.
func Scale(width, height int, scaler Scaler) TransformFunc {
	return func(r Reader) Reader {
		if scaler == nil {
			scaler = ScalerNearestNeighbor
		}

		var dst *image.RGBA
		return ReaderFunc(func() (image.Image, func(), error) {
			if width <= 0 && height <= 0 {
				return nil, noop, errInvalidSize
			}

			img, release, err := r.Read()
			if err != nil {
				return nil, noop, err
			}
			defer release()

			rect := image.Rect(0, 0, width, height)
			bounds := img.Bounds()
			switch {
			case height <= 0:
				rect.Max.Y = bounds.Dy() * width / bounds.Dx()
			case width <= 0:
				rect.Max.X = bounds.Dx() * height / bounds.Dy()
			}

			if dst == nil || dst.Rect != rect {
				dst = image.NewRGBA(rect)
			}
			ScaleInto(dst, rect, img, scaler)
			return dst, noop, nil
		})
	}
}

// ScaleInto scales all of src into the rectangle r of dst, replacing what was there.
func ScaleInto(dst *image.RGBA, r image.Rectangle, src image.Image, scaler Scaler) {
	if scaler == nil {
		scaler = ScalerNearestNeighbor
	}
	if r.Size() == src.Bounds().Size() {
		draw.Draw(dst, r, src, src.Bounds().Min, draw.Src)
		return
	}
	scaler.Scale(dst, r, src, src.Bounds(), draw.Src, nil)
}
