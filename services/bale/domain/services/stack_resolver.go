package services

import (
	"math"
	"sort"

	"github.com/ghuser/baleyard/services/bale/domain/models"
)

// Outcome is the result of resolving a drop.
type Outcome string

const (
	OutcomeCommitted Outcome = "committed"
	OutcomeRejected  Outcome = "rejected"
)

// RejectReason explains a rejected drop.
type RejectReason string

const (
	ReasonNone      RejectReason = ""
	ReasonStackFull RejectReason = "stack_full"
	ReasonCollision RejectReason = "collision"
)

// Resolution describes where a dropped bale lands, or why it cannot.
type Resolution struct {
	Outcome  Outcome
	Reason   RejectReason
	Position models.Position // resting position on commit
	Level    int             // target level, also reported on rejection
	Top      *models.Bale    // bale the dropped one rests on; nil on the floor
}

// Committed reports whether the drop was accepted.
func (r Resolution) Committed() bool {
	return r.Outcome == OutcomeCommitted
}

// ResolveDrop decides where dragged lands when released at the snapped cell (x, z).
// others must not contain dragged. ResolveDrop does not mutate anything.
//
// Bales whose footprint overlaps the dragged footprint are candidates; candidates
// within the stacking tolerance of the cell centre are stackable. The dragged bale
// goes on top of the highest stackable bale, or on the floor when there is none.
func ResolveDrop(dragged *models.Bale, x, z float64, others []*models.Bale, d models.Dimensions) Resolution {
	fp := FootprintOf(dragged.EffectiveOrientation(), d)
	target := RectAt(x, z, fp)
	centre := models.Position{X: x, Z: z}
	tolerance := d.StackingTolerance()

	var candidates, stackable []*models.Bale
	for _, o := range others {
		if !RectOf(o, d).Overlaps(target) {
			continue
		}
		candidates = append(candidates, o)
		if o.Position.PlanarDistance(centre) <= tolerance {
			stackable = append(stackable, o)
		}
	}

	if len(stackable) == 0 {
		if len(candidates) > 0 {
			return Resolution{Outcome: OutcomeRejected, Reason: ReasonCollision}
		}
		return Resolution{
			Outcome:  OutcomeCommitted,
			Position: models.Position{X: x, Y: d.RestingY(0), Z: z},
		}
	}

	top := stackable[0]
	for _, s := range stackable[1:] {
		if s.Position.Y > top.Position.Y {
			top = s
		}
	}

	level := int(math.Round((top.Position.Y + d.UnitHeight/2) / d.UnitHeight))
	if level >= d.MaxStackHeight {
		return Resolution{Outcome: OutcomeRejected, Reason: ReasonStackFull, Level: level, Top: top}
	}

	final := RectAt(top.Position.X, top.Position.Z, fp)
	for _, o := range others {
		if o.Position.PlanarDistance(top.Position) <= tolerance {
			continue
		}
		if RectOf(o, d).Overlaps(final) {
			return Resolution{Outcome: OutcomeRejected, Reason: ReasonCollision, Level: level, Top: top}
		}
	}

	return Resolution{
		Outcome:  OutcomeCommitted,
		Position: models.Position{X: top.Position.X, Y: d.RestingY(level), Z: top.Position.Z},
		Level:    level,
		Top:      top,
	}
}

// RotationConflict returns the first bale of another stack that b would overlap
// once turned to o, or nil when the turned footprint fits. Bales sharing b's stack
// key are skipped.
func RotationConflict(b *models.Bale, o models.Orientation, others []*models.Bale, d models.Dimensions) *models.Bale {
	turned := RectAt(b.Position.X, b.Position.Z, FootprintOf(o, d))
	key := b.Position.Key()
	for _, other := range others {
		if other.Position.Key() == key {
			continue
		}
		if RectOf(other, d).Overlaps(turned) {
			return other
		}
	}
	return nil
}

// Settle closes gaps in a stack: the n-th lowest bale is moved to level n.
// It returns the bales whose height changed, bottom-up.
func Settle(stack []*models.Bale, d models.Dimensions) []*models.Bale {
	sorted := make([]*models.Bale, len(stack))
	copy(sorted, stack)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position.Y < sorted[j].Position.Y })

	var moved []*models.Bale
	for level, b := range sorted {
		y := d.RestingY(level)
		if math.Abs(b.Position.Y-y) > overlapEpsilon {
			b.Position.Y = y
			moved = append(moved, b)
		}
	}
	return moved
}
