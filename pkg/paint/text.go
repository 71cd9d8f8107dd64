package paint

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Common text sizes, in pixels.
const (
	SizeSmall  = 14
	SizeNormal = 26
)

var (
	faceMu    sync.Mutex
	faceCache = map[float64]font.Face{}
	regular   *opentype.Font
)

// Face returns a cached Go Regular face of the given pixel size.
func Face(size float64) (font.Face, error) {
	faceMu.Lock()
	defer faceMu.Unlock()

	if f, ok := faceCache[size]; ok {
		return f, nil
	}

	if regular == nil {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return nil, err
		}
		regular = f
	}

	f, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	faceCache[size] = f
	return f, nil
}

// Text draws s with its baseline starting at pt.
func Text(dst *image.RGBA, s string, pt image.Point, face font.Face, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(pt.X, pt.Y),
	}
	d.DrawString(s)
}

// TextBounds returns the rectangle s occupies when drawn with its baseline at pt.
func TextBounds(s string, pt image.Point, face font.Face) image.Rectangle {
	m := face.Metrics()
	w := font.MeasureString(face, s).Ceil()
	return image.Rect(pt.X, pt.Y-m.Ascent.Ceil(), pt.X+w, pt.Y+m.Descent.Ceil())
}

// MirroredText draws s so that it reads correctly once dst is flipped horizontally.
// pt is the baseline origin in the flipped coordinate space.
func MirroredText(dst *image.RGBA, s string, pt image.Point, face font.Face, c color.Color) {
	if s == "" {
		return
	}
	r := TextBounds(s, pt, face)
	tmp := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	Text(tmp, s, image.Pt(0, pt.Y-r.Min.Y), face, c)
	flipped := transform.FlipH(tmp)

	width := dst.Bounds().Dx()
	target := image.Rect(width-r.Max.X, r.Min.Y, width-r.Min.X, r.Max.Y)
	draw.Draw(dst, target, flipped, image.Point{}, draw.Over)
}

// OutlinedText draws s in fg over a thicker outline in bg. When mirrored is set the text
// is laid out as MirroredText does.
func OutlinedText(dst *image.RGBA, s string, pt image.Point, face font.Face, fg, bg color.Color, mirrored bool) {
	drawFn := Text
	if mirrored {
		drawFn = MirroredText
	}
	for _, d := range outlineOffsets {
		drawFn(dst, s, pt.Add(d), face, bg)
	}
	drawFn(dst, s, pt, face, fg)
}

var outlineOffsets = []image.Point{
	{-2, 0}, {2, 0}, {0, -2}, {0, 2},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}
