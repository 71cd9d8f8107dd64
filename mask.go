package videoproxy

import (
	"fmt"

	"github.com/pion/videoproxy/pkg/pass"
)

// Mask selects the passes that run. Bit i selects the pass registered at index i.
type Mask uint64

const (
	// MaskAll runs every pass.
	MaskAll = ^Mask(0)
	// MaskNone runs no pass. It only has the bit no pass can be registered at, so
	// toggling passes on from it works like toggling them on from zero.
	MaskNone = Mask(1) << pass.MaxPasses
	// DefaultMask runs the first pass only.
	DefaultMask = Mask(1)
)

// Has reports whether the pass at index i is selected.
func (m Mask) Has(i int) bool {
	if i < 0 || i >= 64 {
		return false
	}
	return m&(1<<uint(i)) != 0
}

// Toggle flips the selection of the pass at index i.
func (m Mask) Toggle(i int) Mask {
	if i < 0 || i >= 64 {
		return m
	}
	return m ^ (1 << uint(i))
}

func (m Mask) String() string {
	switch m {
	case MaskAll:
		return "all"
	case MaskNone:
		return "none"
	}
	return fmt.Sprintf("%#b", uint64(m))
}
