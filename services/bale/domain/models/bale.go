package models

import (
	"time"

	"github.com/google/uuid"
)

// Bale is the core aggregate for this bounded context: one physical unit on the floor.
type Bale struct {
	ID          uuid.UUID
	WarehouseID string // tenant scope; always filter by this in queries

	Position    Position
	Orientation Orientation

	// Descriptive attributes, read-only for the placement engine.
	CodeNumber      CodeNumber
	VehicleNumber   string
	WarehouseNumber string
	ArrivalDate     time.Time
	Supplier        string
	TotalWeight     float64
	BaleCount       int
	ContainerNumber string

	// Transient interaction state, never persisted.
	Visible  bool
	Selected bool
	Dragging bool

	rotation *Rotation
}

// Rotation is an orientation change that has been requested but not yet committed.
type Rotation struct {
	From      Orientation
	To        Orientation
	StartedAt time.Time
}

// Placement is the persisted subset of a bale that placement and rotation change.
type Placement struct {
	Position    Position
	Orientation Orientation
}

// NewBale constructs a bale resting at the given position. Bales start visible.
func NewBale(id uuid.UUID, warehouseID string, pos Position, o Orientation) *Bale {
	return &Bale{
		ID:          id,
		WarehouseID: warehouseID,
		Position:    pos,
		Orientation: o,
		Visible:     true,
	}
}

// EffectiveOrientation is the orientation placement computations must use.
// During an in-flight rotation it is already the target orientation.
func (b *Bale) EffectiveOrientation() Orientation {
	if b.rotation != nil {
		return b.rotation.To
	}
	return b.Orientation
}

// Rotating reports whether an orientation change is awaiting completion.
func (b *Bale) Rotating() bool {
	return b.rotation != nil
}

// PendingRotation returns the in-flight rotation, if any.
func (b *Bale) PendingRotation() (Rotation, bool) {
	if b.rotation == nil {
		return Rotation{}, false
	}
	return *b.rotation, true
}

// StartRotation records a toggle request. It returns false when one is already in flight.
func (b *Bale) StartRotation(now time.Time) (Rotation, bool) {
	if b.rotation != nil {
		return *b.rotation, false
	}
	b.rotation = &Rotation{From: b.Orientation, To: b.Orientation.Toggle(), StartedAt: now}
	return *b.rotation, true
}

// FinishRotation commits the in-flight rotation. It returns false when there is none.
func (b *Bale) FinishRotation() (Orientation, bool) {
	if b.rotation == nil {
		return b.Orientation, false
	}
	b.Orientation = b.rotation.To
	b.rotation = nil
	return b.Orientation, true
}

// Placement returns the persisted placement fields.
func (b *Bale) Placement() Placement {
	return Placement{Position: b.Position, Orientation: b.Orientation}
}

// Clone returns a copy safe to hand out of the registry.
func (b *Bale) Clone() *Bale {
	c := *b
	if b.rotation != nil {
		r := *b.rotation
		c.rotation = &r
	}
	return &c
}
