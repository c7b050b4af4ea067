package models

import (
	"fmt"
	"math"
)

// Position is a point in warehouse space. Y is vertical.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Key returns the stack key of the (x, z) column the position belongs to.
func (p Position) Key() StackKey {
	return NewStackKey(p.X, p.Z)
}

// PlanarDistance is the distance between two positions ignoring height.
func (p Position) PlanarDistance(o Position) float64 {
	return math.Hypot(p.X-o.X, p.Z-o.Z)
}

// StackKey identifies a stack column by its (x, z) centre.
type StackKey struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

const keyPrecision = 1e6

// NewStackKey rounds the coordinates so float noise from snapping does not split a stack.
func NewStackKey(x, z float64) StackKey {
	return StackKey{
		X: math.Round(x*keyPrecision) / keyPrecision,
		Z: math.Round(z*keyPrecision) / keyPrecision,
	}
}

// Less orders keys by x then z.
func (k StackKey) Less(o StackKey) bool {
	if k.X != o.X {
		return k.X < o.X
	}
	return k.Z < o.Z
}

// String renders the key the way the layout snapshot names stacks ("x,z").
func (k StackKey) String() string {
	return fmt.Sprintf("%g,%g", k.X, k.Z)
}
