package models

import (
	"fmt"
	"math"
)

// Orientation is the binary rotation state of a bale on the floor plane.
// Horizontal maps the bale width to the x-axis; Vertical maps it to the z-axis.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// ParseOrientation converts a stored or requested value into an Orientation.
// An empty string defaults to Horizontal, matching bales created before rotation existed.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(s) {
	case Horizontal, "":
		return Horizontal, nil
	case Vertical:
		return Vertical, nil
	default:
		return "", fmt.Errorf("unknown orientation %q", s)
	}
}

// Toggle returns the other orientation.
func (o Orientation) Toggle() Orientation {
	if o == Vertical {
		return Horizontal
	}
	return Vertical
}

// Angle is the yaw in radians a renderer applies for this orientation.
func (o Orientation) Angle() float64 {
	if o == Vertical {
		return math.Pi / 2
	}
	return 0
}

// String returns the underlying string value.
func (o Orientation) String() string {
	return string(o)
}
