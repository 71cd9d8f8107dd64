// Package prop describes video properties and the constraints used to choose among the
// properties a driver offers.
package prop

import (
	"fmt"
	"reflect"

	"github.com/pion/videoproxy/pkg/frame"
)

// Media is the set of properties of a video stream.
type Media struct {
	DeviceID string
	Video
}

// Video represents a video's properties
type Video struct {
	Width, Height int
	FrameRate     float32
	FrameFormat   frame.Format
}

func (p Media) String() string {
	return fmt.Sprintf("%s %dx%d@%.2f %s", p.DeviceID, p.Width, p.Height, p.FrameRate, p.FrameFormat)
}

// Merge merges all the field values from o to p, except zero values.
func (p *Media) Merge(o Media) {
	merge(reflect.ValueOf(p).Elem(), reflect.ValueOf(o))
}

func merge(a, b reflect.Value) {
	for i := 0; i < a.NumField(); i++ {
		fieldA, fieldB := a.Field(i), b.Field(i)
		if fieldA.Kind() == reflect.Struct {
			merge(fieldA, fieldB)
			continue
		}
		if fieldB.IsZero() {
			continue
		}
		fieldA.Set(fieldB)
	}
}

// Constraints restrict and rank Media. A nil constraint accepts anything.
type Constraints struct {
	DeviceID    StringConstraint
	Width       IntConstraint
	Height      IntConstraint
	FrameRate   FloatConstraint
	FrameFormat FrameFormatConstraint
}

// Compare returns the fitness distance of m, lower is better, and whether m satisfies the
// constraints at all.
func (c *Constraints) Compare(m Media) (float64, bool) {
	var dist float64
	add := func(d float64, ok bool) bool {
		dist += d
		return ok
	}

	if c.DeviceID != nil && !add(c.DeviceID.Compare(m.DeviceID)) {
		return dist, false
	}
	if c.Width != nil && !add(c.Width.Compare(m.Width)) {
		return dist, false
	}
	if c.Height != nil && !add(c.Height.Compare(m.Height)) {
		return dist, false
	}
	// Drivers that can't tell their frame rate report zero, which matches any rate.
	if c.FrameRate != nil && m.FrameRate != 0 && !add(c.FrameRate.Compare(m.FrameRate)) {
		return dist, false
	}
	if c.FrameFormat != nil && !add(c.FrameFormat.Compare(m.FrameFormat)) {
		return dist, false
	}
	return dist, true
}
