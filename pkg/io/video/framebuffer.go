package video

import (
	"image"
	"sync"
)

// FrameBuffer keeps a private copy of the latest frame so that a consumer on another
// goroutine can read it while the producer keeps drawing on its own buffer.
type FrameBuffer struct {
	mu  sync.Mutex
	img image.RGBA
	seq uint64
}

// NewFrameBuffer creates a new FrameBuffer instance and initialize internal buffer
// with initialSize bytes
func NewFrameBuffer(initialSize int) *FrameBuffer {
	return &FrameBuffer{img: image.RGBA{Pix: make([]uint8, 0, initialSize)}}
}

// StoreCopy makes a copy of src and store its copy. The previous copy's memory is reused
// when it is large enough.
func (buff *FrameBuffer) StoreCopy(src image.Image) {
	buff.mu.Lock()
	defer buff.mu.Unlock()

	copyToRGBA(&buff.img, src)
	buff.seq++
}

// Load copies the stored frame into dst and returns the sequence number of the stored
// frame. A zero sequence number means nothing was stored yet.
func (buff *FrameBuffer) Load(dst *image.RGBA) uint64 {
	buff.mu.Lock()
	defer buff.mu.Unlock()

	if buff.seq == 0 {
		return 0
	}
	copyToRGBA(dst, &buff.img)
	return buff.seq
}
