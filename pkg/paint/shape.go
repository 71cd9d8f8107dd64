package paint

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places the control points of four cubic curves so that they approximate a
// circle.
const kappa = 0.5522847498

// Rect fills r with c. r is clipped to dst.
func Rect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// Circle fills a disc of radius r around center.
func Circle(dst *image.RGBA, center image.Point, r int, c color.RGBA) {
	radius := float32(r) + 0.5
	p := newPath(dst, around(center, radius))
	if p == nil {
		return
	}
	cx, cy := pixelCenter(center)
	p.circle(cx, cy, radius, false)
	p.fill(dst, c)
}

// Ring draws the outline of a circle of radius r with the given stroke thickness
// centered on the radius.
func Ring(dst *image.RGBA, center image.Point, r, thickness int, c color.RGBA) {
	half := float32(thickness) / 2
	outer, inner := float32(r)+half, float32(r)-half
	p := newPath(dst, around(center, outer))
	if p == nil {
		return
	}
	cx, cy := pixelCenter(center)
	p.circle(cx, cy, outer, false)
	if inner > 0 {
		p.circle(cx, cy, inner, true)
	}
	p.fill(dst, c)
}

// Line draws a segment from p0 to p1 with the given thickness and round ends.
func Line(dst *image.RGBA, p0, p1 image.Point, thickness int, c color.RGBA) {
	half := float32(max(thickness, 1)) / 2
	p := newPath(dst, around(p0, half).Union(around(p1, half)))
	if p == nil {
		return
	}

	x0, y0 := pixelCenter(p0)
	x1, y1 := pixelCenter(p1)
	p.circle(x0, y0, half, false)
	p.circle(x1, y1, half, false)

	dx, dy := x1-x0, y1-y0
	if length := float32(math.Hypot(float64(dx), float64(dy))); length > 0 {
		// Wound like the end caps, so that overlaps add up instead of cancelling.
		nx, ny := -dy/length*half, dx/length*half
		p.moveTo(x0-nx, y0-ny)
		p.lineTo(x1-nx, y1-ny)
		p.lineTo(x1+nx, y1+ny)
		p.lineTo(x0+nx, y0+ny)
		p.z.ClosePath()
	}
	p.fill(dst, c)
}

// path is a rasterizer covering the part of a frame a shape can touch.
type path struct {
	z      *vector.Rasterizer
	origin image.Point
}

// newPath returns nil when bounds lie outside of dst.
func newPath(dst *image.RGBA, bounds image.Rectangle) *path {
	b := bounds.Intersect(dst.Bounds())
	if b.Empty() {
		return nil
	}
	return &path{z: vector.NewRasterizer(b.Dx(), b.Dy()), origin: b.Min}
}

func (p *path) moveTo(x, y float32) {
	p.z.MoveTo(x-float32(p.origin.X), y-float32(p.origin.Y))
}

func (p *path) lineTo(x, y float32) {
	p.z.LineTo(x-float32(p.origin.X), y-float32(p.origin.Y))
}

func (p *path) cubeTo(bx, by, cx, cy, x, y float32) {
	ox, oy := float32(p.origin.X), float32(p.origin.Y)
	p.z.CubeTo(bx-ox, by-oy, cx-ox, cy-oy, x-ox, y-oy)
}

// circle adds a closed circle. A reversed circle cuts a hole into a forward one.
func (p *path) circle(cx, cy, r float32, reversed bool) {
	k := r * kappa
	p.moveTo(cx+r, cy)
	if reversed {
		p.cubeTo(cx+r, cy-k, cx+k, cy-r, cx, cy-r)
		p.cubeTo(cx-k, cy-r, cx-r, cy-k, cx-r, cy)
		p.cubeTo(cx-r, cy+k, cx-k, cy+r, cx, cy+r)
		p.cubeTo(cx+k, cy+r, cx+r, cy+k, cx+r, cy)
	} else {
		p.cubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		p.cubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		p.cubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		p.cubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	}
	p.z.ClosePath()
}

func (p *path) fill(dst *image.RGBA, c color.RGBA) {
	r := image.Rectangle{Min: p.origin, Max: p.origin.Add(p.z.Size())}
	p.z.Draw(dst, r, image.NewUniform(c), image.Point{})
}

// pixelCenter maps integer coordinates to the middle of their pixel.
func pixelCenter(pt image.Point) (float32, float32) {
	return float32(pt.X) + 0.5, float32(pt.Y) + 0.5
}

func around(center image.Point, radius float32) image.Rectangle {
	n := int(math.Ceil(float64(radius))) + 1
	return image.Rect(center.X-n, center.Y-n, center.X+n+1, center.Y+n+1)
}
