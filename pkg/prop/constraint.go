package prop

import (
	"math"

	"github.com/pion/videoproxy/pkg/frame"
)

// IntConstraint is an interface to represent integer value constraint.
type IntConstraint interface {
	Compare(int) (float64, bool)
}

// Int specifies ideal int value.
// Any value may be selected, but closest value takes priority.
type Int int

// Compare implements IntConstraint.
func (i Int) Compare(a int) (float64, bool) {
	return relative(float64(a), float64(i)), true
}

// IntExact specifies exact int value.
type IntExact int

// Compare implements IntConstraint.
func (i IntExact) Compare(a int) (float64, bool) {
	return exact(int(i) == a)
}

// FloatConstraint is an interface to represent float value constraint.
type FloatConstraint interface {
	Compare(float32) (float64, bool)
}

// Float specifies ideal float value.
type Float float32

// Compare implements FloatConstraint.
func (f Float) Compare(a float32) (float64, bool) {
	return relative(float64(a), float64(f)), true
}

// StringConstraint is an interface to represent string constraint.
type StringConstraint interface {
	Compare(string) (float64, bool)
}

// StringExact specifies exact string.
type StringExact string

// Compare implements StringConstraint.
func (s StringExact) Compare(a string) (float64, bool) {
	return exact(string(s) == a)
}

// FrameFormatConstraint is an interface to represent frame format constraint.
type FrameFormatConstraint interface {
	Compare(frame.Format) (float64, bool)
}

// FrameFormatOneOf specifies list of acceptable frame formats. Earlier entries are
// preferred.
type FrameFormatOneOf []frame.Format

// Compare implements FrameFormatConstraint.
func (f FrameFormatOneOf) Compare(a frame.Format) (float64, bool) {
	for i, ff := range f {
		if ff == a {
			return float64(i) / float64(len(f)), true
		}
	}
	return 1.0, false
}

func relative(actual, ideal float64) float64 {
	if actual == ideal {
		return 0
	}
	return math.Abs(actual-ideal) / math.Max(math.Abs(actual), math.Abs(ideal))
}

func exact(match bool) (float64, bool) {
	if match {
		return 0.0, true
	}
	return 1.0, false
}
