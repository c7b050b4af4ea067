package models

import (
	"fmt"
	"math"
)

// Dimensions holds the fixed physical size of every bale and the stacking limit.
type Dimensions struct {
	Width          float64 // W: extent along x when Horizontal
	Depth          float64 // D: extent along z when Horizontal
	UnitHeight     float64 // H: height of one stack level
	MaxStackHeight int     // levels per stack
}

// DefaultDimensions returns the measurements of a standard pressed bale.
func DefaultDimensions() Dimensions {
	return Dimensions{
		Width:          7,
		Depth:          4,
		UnitHeight:     3,
		MaxStackHeight: 5,
	}
}

// Validate reports whether all measurements are usable for placement.
func (d Dimensions) Validate() error {
	if d.Width <= 0 || d.Depth <= 0 || d.UnitHeight <= 0 {
		return fmt.Errorf("bale dimensions must be positive (w=%v d=%v h=%v)", d.Width, d.Depth, d.UnitHeight)
	}
	if d.MaxStackHeight < 1 {
		return fmt.Errorf("max stack height must be at least 1 (got %d)", d.MaxStackHeight)
	}
	return nil
}

// StackingTolerance is the centre-to-centre distance under which two bales
// belong to the same stack.
func (d Dimensions) StackingTolerance() float64 {
	return math.Max(d.Width, d.Depth) / 2
}

// RestingY is the y coordinate of a bale resting at the given level.
func (d Dimensions) RestingY(level int) float64 {
	return float64(level)*d.UnitHeight + d.UnitHeight/2
}

// LevelOf is the inverse of RestingY, rounded to the nearest level.
func (d Dimensions) LevelOf(y float64) int {
	return int(math.Round((y - d.UnitHeight/2) / d.UnitHeight))
}
