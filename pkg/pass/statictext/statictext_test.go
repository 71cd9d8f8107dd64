package statictext

import (
	"image"
	"testing"
)

func TestRenderPaintsBottomRight(t *testing.T) {
	p, err := New(DefaultText)
	if err != nil {
		t.Fatal(err)
	}

	frame := image.NewRGBA(image.Rect(0, 0, 640, 360))
	out, err := p.Render(frame, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out != frame {
		t.Fatal("expected the frame to be drawn in place")
	}

	var left, right int
	for y := 0; y < 360; y++ {
		for x := 0; x < 640; x++ {
			if frame.RGBAAt(x, y).R == 0 {
				continue
			}
			if y < 300 {
				t.Fatalf("unexpected pixel at (%d,%d)", x, y)
			}
			if x < 320 {
				left++
			} else {
				right++
			}
		}
	}
	if right == 0 || left != 0 {
		t.Errorf("expected mirrored text on the right half only, got left=%d right=%d", left, right)
	}
}
