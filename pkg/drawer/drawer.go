// Package drawer provides stateful annotation helpers shared by passes. A Drawer
// accumulates coordinates across frames and paints all of them onto every frame it is
// given.
package drawer

import (
	"image"
	"image/color"
	"sort"

	"github.com/pion/videoproxy/pkg/paint"
)

// Discontinuation is the coordinate value that marks "pen up". Recording it on a
// LineDrawer breaks the line; a DotDrawer ignores it.
const Discontinuation = -1

const (
	defaultDotRadius     = 4
	defaultLineThickness = 4
)

// Drawer records coordinates and renders them. Draw only reads the recorded state, so
// calling it repeatedly without Record or Reset renders the same result.
type Drawer interface {
	Record(x, y int)
	Draw(dst *image.RGBA)
	Reset()
}

// IsDiscontinuation reports whether p is the pen up marker.
func IsDiscontinuation(p image.Point) bool {
	return p.X == Discontinuation || p.Y == Discontinuation
}

// DotDrawer paints a filled dot at every recorded coordinate. Recording order is
// irrelevant and recording the same coordinate twice has no extra effect.
type DotDrawer struct {
	color  color.RGBA
	radius int
	dots   map[image.Point]struct{}
}

// NewDotDrawer creates a DotDrawer painting dots of color c.
func NewDotDrawer(c color.RGBA) *DotDrawer {
	return &DotDrawer{
		color:  c,
		radius: defaultDotRadius,
		dots:   make(map[image.Point]struct{}),
	}
}

func (d *DotDrawer) Record(x, y int) {
	p := image.Pt(x, y)
	if IsDiscontinuation(p) {
		return
	}
	d.dots[p] = struct{}{}
}

func (d *DotDrawer) Draw(dst *image.RGBA) {
	for p := range d.dots {
		paint.Circle(dst, p, d.radius, d.color)
	}
}

func (d *DotDrawer) Reset() {
	d.dots = make(map[image.Point]struct{})
}

// Points returns the recorded coordinates ordered by row, then column.
func (d *DotDrawer) Points() []image.Point {
	points := make([]image.Point, 0, len(d.dots))
	for p := range d.dots {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
	return points
}

// LineDrawer connects recorded coordinates in recording order. A segment is skipped
// when either of its endpoints is the Discontinuation marker.
type LineDrawer struct {
	color     color.RGBA
	thickness int
	sequence  []image.Point
}

// NewLineDrawer creates a LineDrawer painting lines of color c.
func NewLineDrawer(c color.RGBA) *LineDrawer {
	return &LineDrawer{
		color:     c,
		thickness: defaultLineThickness,
	}
}

func (l *LineDrawer) Record(x, y int) {
	l.sequence = append(l.sequence, image.Pt(x, y))
}

func (l *LineDrawer) Draw(dst *image.RGBA) {
	for _, s := range l.Segments() {
		paint.Line(dst, s[0], s[1], l.thickness, l.color)
	}
}

func (l *LineDrawer) Reset() {
	l.sequence = l.sequence[:0]
}

// Segments returns the segments Draw renders.
func (l *LineDrawer) Segments() [][2]image.Point {
	var segments [][2]image.Point
	for i := 0; i+1 < len(l.sequence); i++ {
		a, b := l.sequence[i], l.sequence[i+1]
		if IsDiscontinuation(a) || IsDiscontinuation(b) {
			continue
		}
		segments = append(segments, [2]image.Point{a, b})
	}
	return segments
}
