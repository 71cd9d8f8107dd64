// Package facedetect provides a pass that marks where faces were seen, using the pigo
// cascade classifier.
package facedetect

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
	"github.com/pion/videoproxy/pkg/drawer"
	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/paint"
)

const (
	confidenceLevel = 5.0
	// Detection runs on a frame shrunk by this factor.
	downscale = 2
)

// Pass records the centre of every detected face into a DotDrawer, so the marks build
// up over time. A middle click clears them.
type Pass struct {
	drawer *drawer.DotDrawer
	detect func(frame *image.RGBA) []image.Point
}

// New loads the pigo cascade at cascadePath.
func New(cascadePath string) (*Pass, error) {
	cascade, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cascade: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack cascade %s: %w", cascadePath, err)
	}

	return &Pass{
		drawer: drawer.NewDotDrawer(paint.Red),
		detect: func(frame *image.RGBA) []image.Point {
			return detectFaces(classifier, frame)
		},
	}, nil
}

func (p *Pass) Name() string {
	return "Face recognition (drawing)"
}

func (p *Pass) Render(frame *image.RGBA, events []event.Event) (*image.RGBA, error) {
	for _, e := range events {
		if e.IsClick(event.MiddleDown) {
			p.drawer.Reset()
		}
	}

	for _, pt := range p.detect(frame) {
		p.drawer.Record(pt.X, pt.Y)
	}
	p.drawer.Draw(frame)
	return frame, nil
}

func detectFaces(classifier *pigo.Pigo, frame *image.RGBA) []image.Point {
	b := frame.Bounds()
	small := imaging.Grayscale(imaging.Resize(frame, b.Dx()/downscale, 0, imaging.Linear))
	sb := small.Bounds()

	params := pigo.CascadeParams{
		MinSize:     50,
		MaxSize:     300,
		ShiftFactor: 0.15,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: grayscale(small),
			Rows:   sb.Dy(),
			Cols:   sb.Dx(),
			Dim:    sb.Dx(),
		},
	}

	// Each detection is a row, column, scale and score quadruplet.
	dets := classifier.RunCascade(params, 0.0)
	dets = classifier.ClusterDetections(dets, 0)

	var centres []image.Point
	for _, det := range dets {
		if det.Q < confidenceLevel {
			continue
		}
		centres = append(centres, image.Pt(b.Min.X+det.Col*downscale, b.Min.Y+det.Row*downscale))
	}
	return centres
}

// grayscale extracts one channel of an image whose channels are already equal.
func grayscale(img *image.NRGBA) []uint8 {
	b := img.Bounds()
	out := make([]uint8, 0, b.Dx()*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			out = append(out, row[x*4])
		}
	}
	return out
}
