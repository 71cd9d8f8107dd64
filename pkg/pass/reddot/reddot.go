// Package reddot provides a pass that follows a red marker held in front of the camera
// and draws its trail.
package reddot

import (
	"image"
	"math"
	"sync"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/transform"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pion/videoproxy/pkg/drawer"
	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/paint"
)

const (
	// Detection runs on a frame shrunk by this factor.
	downscale  = 4
	blurRadius = 1.0

	minRadius = 5
	maxRadius = 60
)

// Lab bounds of what counts as red, on the 8 bit scale where L is stretched to 0..255
// and a, b are offset by 128.
var (
	labLow  = [3]float64{20, 150, 150}
	labHigh = [3]float64{190, 255, 255}
)

// Pass records the centre of the largest red blob of every frame into a drawer. A
// middle click clears the trail.
type Pass struct {
	drawer drawer.Drawer
}

// New creates a Pass recording into d. A nil d draws a red line.
func New(d drawer.Drawer) *Pass {
	if d == nil {
		d = drawer.NewLineDrawer(paint.Red)
	}
	return &Pass{drawer: d}
}

func (p *Pass) Name() string {
	return "Red dot recognition (drawing)"
}

func (p *Pass) Render(frame *image.RGBA, events []event.Event) (*image.RGBA, error) {
	for _, e := range events {
		if e.IsClick(event.MiddleDown) {
			p.drawer.Reset()
		}
	}

	if pt, ok := Detect(frame); ok {
		p.drawer.Record(pt.X, pt.Y)
	}
	p.drawer.Draw(frame)
	return frame, nil
}

// Detect returns the centroid of the largest red blob in img whose size is plausible
// for a marker.
func Detect(img image.Image) (image.Point, bool) {
	b := img.Bounds()
	w, h := b.Dx()/downscale, b.Dy()/downscale
	if w == 0 || h == 0 {
		return image.Point{}, false
	}

	small := blur.Gaussian(transform.Resize(img, w, h, transform.Linear), blurRadius)

	mask := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := small.PixOffset(x, y)
			mask[y*w+x] = isRed(small.Pix[i], small.Pix[i+1], small.Pix[i+2])
		}
	}

	minArea := math.Pi * minRadius * minRadius / (downscale * downscale)
	maxArea := math.Pi * maxRadius * maxRadius / (downscale * downscale)

	var (
		best     blob
		found    bool
		visited  = make([]bool, w*h)
		frontier []int
	)
	for start := range mask {
		if !mask[start] || visited[start] {
			continue
		}

		var cur blob
		visited[start] = true
		frontier = append(frontier[:0], start)
		for len(frontier) > 0 {
			i := frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
			x, y := i%w, i/w
			cur.add(x, y)

			for _, n := range [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
				if n[0] < 0 || n[0] >= w || n[1] < 0 || n[1] >= h {
					continue
				}
				j := n[1]*w + n[0]
				if mask[j] && !visited[j] {
					visited[j] = true
					frontier = append(frontier, j)
				}
			}
		}

		area := float64(cur.n)
		if area < minArea || area > maxArea {
			continue
		}
		if !found || cur.n > best.n {
			best, found = cur, true
		}
	}
	if !found {
		return image.Point{}, false
	}

	cx, cy := best.centroid()
	return image.Pt(
		b.Min.X+int(cx*downscale)+downscale/2,
		b.Min.Y+int(cy*downscale)+downscale/2,
	), true
}

type blob struct {
	n, sumX, sumY int
}

func (b *blob) add(x, y int) {
	b.n++
	b.sumX += x
	b.sumY += y
}

func (b blob) centroid() (float64, float64) {
	return float64(b.sumX) / float64(b.n), float64(b.sumY) / float64(b.n)
}

// Colours are classified in bins of 3 bits less precision per channel.
const binShift = 3

var (
	redOnce sync.Once
	redBins []bool
)

func isRed(r, g, b uint8) bool {
	redOnce.Do(func() {
		const n = 256 >> binShift
		// Each bin is represented by its middle colour.
		mid := func(v int) uint8 { return uint8(v<<binShift | 1<<(binShift-1)) }
		redBins = make([]bool, n*n*n)
		for i := range redBins {
			redBins[i] = inRedRange(toLab(mid(i/(n*n)), mid(i/n%n), mid(i%n)))
		}
	})
	const n = 256 >> binShift
	return redBins[int(r>>binShift)*n*n+int(g>>binShift)*n+int(b>>binShift)]
}

func inRedRange(l, a, b float64) bool {
	return l >= labLow[0] && l <= labHigh[0] &&
		a >= labLow[1] && a <= labHigh[1] &&
		b >= labLow[2] && b <= labHigh[2]
}

// toLab converts an sRGB colour to CIE Lab (D65) on the 8 bit scale.
func toLab(r, g, b uint8) (float64, float64, float64) {
	l, a, bb := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Lab()
	// colorful scales L to 0..1 and a, b to roughly -1..1.
	return l * 255, a*100 + 128, bb*100 + 128
}
