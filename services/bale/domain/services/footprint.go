// Package services contains stateless domain services for the bale bounded context.
// Domain services enforce placement rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"math"

	"github.com/ghuser/baleyard/services/bale/domain/models"
)

// overlapEpsilon keeps bales in adjacent cells, whose edges touch exactly, from overlapping.
const overlapEpsilon = 1e-9

// Footprint is the size of a bale's occupied rectangle on the floor plane.
type Footprint struct {
	X float64 // extent along the x-axis
	Z float64 // extent along the z-axis
}

// FootprintOf maps an orientation to its occupied extents:
// (W, D) when Horizontal, (D, W) when Vertical.
func FootprintOf(o models.Orientation, d models.Dimensions) Footprint {
	if o == models.Vertical {
		return Footprint{X: d.Depth, Z: d.Width}
	}
	return Footprint{X: d.Width, Z: d.Depth}
}

// Snap rounds a world point to the grid of the given orientation: x to the nearest
// multiple of the x extent, z to the nearest multiple of the z extent.
// Snap(Snap(p)) == Snap(p).
func Snap(p models.Position, o models.Orientation, d models.Dimensions) (x, z float64) {
	fp := FootprintOf(o, d)
	return snapAxis(p.X, fp.X), snapAxis(p.Z, fp.Z)
}

func snapAxis(v, step float64) float64 {
	return math.Round(v/step) * step
}

// Rect is a footprint centred at (CX, CZ).
type Rect struct {
	CX, CZ float64
	Footprint
}

// RectAt places a footprint at a cell centre.
func RectAt(x, z float64, fp Footprint) Rect {
	return Rect{CX: x, CZ: z, Footprint: fp}
}

// RectOf returns the footprint rectangle a bale currently occupies.
func RectOf(b *models.Bale, d models.Dimensions) Rect {
	return RectAt(b.Position.X, b.Position.Z, FootprintOf(b.EffectiveOrientation(), d))
}

// Overlaps is a separating-axis test: two rectangles overlap when the centre distance
// on both axes is below the sum of their half extents. Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return math.Abs(r.CX-o.CX) < (r.X+o.X)/2-overlapEpsilon &&
		math.Abs(r.CZ-o.CZ) < (r.Z+o.Z)/2-overlapEpsilon
}
