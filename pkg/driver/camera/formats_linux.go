package camera

import (
	"github.com/blackjack/webcam"
	"github.com/pion/videoproxy/pkg/frame"
)

func fourcc(code string) webcam.PixelFormat {
	return webcam.PixelFormat(uint32(code[0]) | uint32(code[1])<<8 | uint32(code[2])<<16 | uint32(code[3])<<24)
}

// supportedFormats maps V4L2 pixel formats to frame formats, in order of preference.
var supportedFormats = []struct {
	pixelFormat webcam.PixelFormat
	frameFormat frame.Format
}{
	{fourcc("YUYV"), frame.FormatYUY2},
	{fourcc("UYVY"), frame.FormatUYVY},
	{fourcc("YU12"), frame.FormatI420},
	{fourcc("NV12"), frame.FormatNV12},
	{fourcc("NV21"), frame.FormatNV21},
	{fourcc("MJPG"), frame.FormatMJPEG},
}

func toFrameFormat(pf webcam.PixelFormat) (frame.Format, bool) {
	for _, f := range supportedFormats {
		if f.pixelFormat == pf {
			return f.frameFormat, true
		}
	}
	return "", false
}

func toPixelFormat(ff frame.Format) (webcam.PixelFormat, bool) {
	for _, f := range supportedFormats {
		if f.frameFormat == ff {
			return f.pixelFormat, true
		}
	}
	return 0, false
}
