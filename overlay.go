package videoproxy

import (
	"image"

	"github.com/pion/videoproxy/pkg/paint"
	"golang.org/x/image/font"
)

// Overlay layout, in the mirrored coordinate space consumers of the virtual camera see.
const (
	overlayRightOffset  = 250
	overlayBottomOffset = 20
	overlayLineSpacing  = 20
)

type overlayLine struct {
	text string
	// baseline origin in mirrored coordinates
	pt image.Point
}

// overlayLayout stacks names bottom up from (w-250, h-20). The last name, the most
// recently executed pass, is on the lowest line.
func overlayLayout(names []string, w, h int) []overlayLine {
	lines := make([]overlayLine, len(names))
	for i := range names {
		name := names[len(names)-1-i]
		lines[i] = overlayLine{
			text: name,
			pt:   image.Pt(w-overlayRightOffset, h-overlayBottomOffset-i*overlayLineSpacing),
		}
	}
	return lines
}

type overlay struct {
	face font.Face
}

func newOverlay() (*overlay, error) {
	face, err := paint.Face(paint.SizeSmall)
	if err != nil {
		return nil, err
	}
	return &overlay{face: face}, nil
}

func (o *overlay) draw(dst *image.RGBA, names []string) {
	b := dst.Bounds()
	for _, l := range overlayLayout(names, b.Dx(), b.Dy()) {
		paint.MirroredText(dst, l.text, l.pt, o.face, paint.White)
	}
}
