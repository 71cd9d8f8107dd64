package frame

import "image"

func decodeI420(frame []byte, width, height int) (image.Image, func(), error) {
	yi := width * height
	cbi := yi + yi/4
	cri := cbi + yi/4
	if cri > len(frame) {
		return nil, noop, errShort(len(frame), cri)
	}

	return &image.YCbCr{
		Y:              frame[:yi],
		YStride:        width,
		Cb:             frame[yi:cbi],
		Cr:             frame[cbi:cri],
		CStride:        width / 2,
		SubsampleRatio: image.YCbCrSubsampleRatio420,
		Rect:           image.Rect(0, 0, width, height),
	}, noop, nil
}

func decodeNV21(frame []byte, width, height int) (image.Image, func(), error) {
	return decodeSemiPlanar(frame, width, height, 1, 0)
}

func decodeNV12(frame []byte, width, height int) (image.Image, func(), error) {
	return decodeSemiPlanar(frame, width, height, 0, 1)
}

// decodeSemiPlanar splits the interleaved chroma plane. cbOff and crOff are the offsets of
// the two chroma samples inside each pair.
func decodeSemiPlanar(frame []byte, width, height, cbOff, crOff int) (image.Image, func(), error) {
	yi := width * height
	ci := yi + yi/2
	if ci > len(frame) {
		return nil, noop, errShort(len(frame), ci)
	}

	cb := make([]byte, yi/4)
	cr := make([]byte, yi/4)
	for i, j := yi, 0; i+1 < ci && j < len(cb); i, j = i+2, j+1 {
		cb[j] = frame[i+cbOff]
		cr[j] = frame[i+crOff]
	}

	return &image.YCbCr{
		Y:              frame[:yi],
		YStride:        width,
		Cb:             cb,
		Cr:             cr,
		CStride:        width / 2,
		SubsampleRatio: image.YCbCrSubsampleRatio420,
		Rect:           image.Rect(0, 0, width, height),
	}, noop, nil
}

func decodeYUY2(frame []byte, width, height int) (image.Image, func(), error) {
	return decodePacked(frame, width, height, [4]int{0, 1, 2, 3})
}

func decodeUYVY(frame []byte, width, height int) (image.Image, func(), error) {
	return decodePacked(frame, width, height, [4]int{1, 0, 3, 2})
}

// decodePacked unpacks 4:2:2 macropixels. order holds the byte offsets of Y0, Cb, Y1 and
// Cr inside a macropixel.
func decodePacked(frame []byte, width, height int, order [4]int) (image.Image, func(), error) {
	yi := width * height
	fi := 2 * yi
	if len(frame) < fi {
		return nil, noop, errShort(len(frame), fi)
	}

	y := make([]byte, yi)
	cb := make([]byte, yi/2)
	cr := make([]byte, yi/2)
	for i, px := 0, 0; i < fi; i, px = i+4, px+1 {
		y[2*px] = frame[i+order[0]]
		cb[px] = frame[i+order[1]]
		y[2*px+1] = frame[i+order[2]]
		cr[px] = frame[i+order[3]]
	}

	return &image.YCbCr{
		Y:              y,
		YStride:        width,
		Cb:             cb,
		Cr:             cr,
		CStride:        width / 2,
		SubsampleRatio: image.YCbCrSubsampleRatio422,
		Rect:           image.Rect(0, 0, width, height),
	}, noop, nil
}
