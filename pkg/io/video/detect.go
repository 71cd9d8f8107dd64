package video

import (
	"image"
	"math"
	"time"

	"github.com/pion/videoproxy/pkg/prop"
)

// DetectChanges will detect frame and video property changes. For video property detection,
// since it's time related, interval will be used to determine the sample rate. Frame rate
// changes of at most tolerance fps are not reported.
func DetectChanges(interval time.Duration, tolerance float32, onChange func(prop.Media)) TransformFunc {
	return detectChanges(interval, tolerance, onChange, time.Now)
}

func detectChanges(interval time.Duration, tolerance float32, onChange func(prop.Media), clock func() time.Time) TransformFunc {
	return func(r Reader) Reader {
		var currentProp prop.Media
		var lastTaken time.Time
		var frames uint
		return ReaderFunc(func() (image.Image, func(), error) {
			var dirty bool

			img, release, err := r.Read()
			if err != nil {
				return nil, noop, err
			}

			bounds := img.Bounds()
			if currentProp.Width != bounds.Dx() {
				currentProp.Width = bounds.Dx()
				dirty = true
			}

			if currentProp.Height != bounds.Dy() {
				currentProp.Height = bounds.Dy()
				dirty = true
			}

			now := clock()
			if lastTaken.IsZero() {
				lastTaken = now
			} else if elapsed := now.Sub(lastTaken); elapsed >= interval {
				fps := float32(float64(frames) / elapsed.Seconds())
				if math.Abs(float64(fps-currentProp.FrameRate)) > float64(tolerance) {
					currentProp.FrameRate = fps
					dirty = true
				}
				frames = 0
				lastTaken = now
			}

			if dirty {
				onChange(currentProp)
			}

			frames++
			return img, release, nil
		})
	}
}
