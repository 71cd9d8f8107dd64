package video

import (
	"image"
	"time"
)

// Throttle returns video pacing transform. Reads are spaced at least one frame period
// apart to approach the given framerate in fps. Frames are never dropped, so a source
// slower than rate keeps its own pace. A non-positive rate disables pacing.
func Throttle(rate float32) TransformFunc {
	return func(r Reader) Reader {
		if rate <= 0 {
			return r
		}

		period := time.Duration(float64(time.Second) / float64(rate))
		var next time.Time
		return ReaderFunc(func() (image.Image, func(), error) {
			if wait := time.Until(next); wait > 0 {
				time.Sleep(wait)
			}

			now := time.Now()
			if next.IsZero() || now.Sub(next) > period {
				// Late by more than a period, start over instead of bursting.
				next = now
			}
			next = next.Add(period)

			return r.Read()
		})
	}
}
