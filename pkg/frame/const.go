// Package frame decodes raw capture buffers into images.
package frame

// Format is a pixel layout of a raw frame, named after its fourcc.
type Format string

const (
	// FormatI420 is planar YUV 4:2:0, https://www.fourcc.org/pixel-format/yuv-i420/
	FormatI420 Format = "I420"
	// FormatNV21 is semi-planar YUV 4:2:0 with interleaved VU, https://www.fourcc.org/pixel-format/yuv-nv21/
	FormatNV21 Format = "NV21"
	// FormatNV12 is semi-planar YUV 4:2:0 with interleaved UV.
	FormatNV12 Format = "NV12"
	// FormatYUY2 is packed YUV 4:2:2, https://www.fourcc.org/pixel-format/yuv-yuy2/
	FormatYUY2 Format = "YUY2"
	// FormatUYVY is packed YUV 4:2:2 with chroma first.
	FormatUYVY Format = "UYVY"
	// FormatRGBA is 8 bit RGBA in memory order.
	FormatRGBA Format = "RGBA"

	// FormatMJPEG is motion JPEG, https://www.fourcc.org/mjpg/
	FormatMJPEG Format = "MJPEG"
)

// FormatYUYV is an alias of FormatYUY2
const FormatYUYV = FormatYUY2
