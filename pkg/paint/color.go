// Package paint provides the raster primitives passes use to annotate frames.
package paint

import "image/color"

// Palette shared by passes and the overlay.
var (
	Black   = color.RGBA{0, 0, 0, 0xff}
	White   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	Green   = color.RGBA{0, 0xff, 0, 0xff}
	Blue    = color.RGBA{0, 0, 0xff, 0xff}
	Red     = color.RGBA{0xff, 0, 0, 0xff}
	Magenta = color.RGBA{0xff, 0, 0xff, 0xff}
	Orange  = color.RGBA{0xff, 0x96, 0, 0xff}
	Cyan    = color.RGBA{0, 0xff, 0xff, 0xff}
)
