package video

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func randomize(arr []uint8) {
	for i := range arr {
		arr[i] = uint8(rand.Uint32())
	}
}

func BenchmarkFrameBufferStoreCopy(b *testing.B) {
	frameBuffer := NewFrameBuffer(0)
	src := image.NewRGBA(image.Rect(0, 0, 1280, 720))
	randomize(src.Pix)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		frameBuffer.StoreCopy(src)
	}
}

func TestFrameBuffer(t *testing.T) {
	buffer := NewFrameBuffer(0)

	var dst image.RGBA
	if seq := buffer.Load(&dst); seq != 0 {
		t.Fatalf("Expected sequence 0 before any store, got %d", seq)
	}

	src := image.NewRGBA(image.Rect(0, 0, 8, 4))
	randomize(src.Pix)
	buffer.StoreCopy(src)

	// Later writes to src must not leak into the stored copy.
	want := append([]uint8(nil), src.Pix...)
	src.SetRGBA(0, 0, color.RGBA{1, 2, 3, 4})

	if seq := buffer.Load(&dst); seq != 1 {
		t.Fatalf("Expected sequence 1, got %d", seq)
	}
	if dst.Bounds() != src.Bounds() {
		t.Fatalf("Expected bounds %v, got %v", src.Bounds(), dst.Bounds())
	}
	for i := range want {
		if dst.Pix[i] != want[i] {
			t.Fatalf("Pixel byte %d: expected %d, got %d", i, want[i], dst.Pix[i])
		}
	}

	buffer.StoreCopy(src)
	if seq := buffer.Load(&dst); seq != 2 {
		t.Fatalf("Expected sequence 2, got %d", seq)
	}
	if got := dst.RGBAAt(0, 0); got != (color.RGBA{1, 2, 3, 4}) {
		t.Errorf("Expected the second store to be loaded, got %v", got)
	}
}
