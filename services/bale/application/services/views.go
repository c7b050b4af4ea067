package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/baleyard/services/bale/application/tween"
	"github.com/ghuser/baleyard/services/bale/domain/models"
	"github.com/ghuser/baleyard/services/bale/domain/repositories"
	domainsvcs "github.com/ghuser/baleyard/services/bale/domain/services"
)

// BaleView is a read-only snapshot of one bale and its interaction state.
type BaleView struct {
	ID                   uuid.UUID          `json:"id"`
	WarehouseID          string             `json:"warehouse_id"`
	CodeNumber           string             `json:"code_number"`
	VehicleNumber        string             `json:"vehicle_number"`
	WarehouseNumber      string             `json:"warehouse_number"`
	ArrivalDate          time.Time          `json:"arrival_date"`
	Supplier             string             `json:"supplier"`
	TotalWeight          float64            `json:"total_weight"`
	BaleCount            int                `json:"bale_count"`
	ContainerNumber      string             `json:"container_number"`
	Position             models.Position    `json:"position"`
	Level                int                `json:"level"`
	Orientation          models.Orientation `json:"orientation"`
	EffectiveOrientation models.Orientation `json:"effective_orientation"`
	RibbonColor          string             `json:"ribbon_color"`
	Visible              bool               `json:"visible"`
	Selected             bool               `json:"selected"`
	Dragging             bool               `json:"dragging"`
	Rotating             bool               `json:"rotating"`
}

// DragPreview is where the dragged bale is shown while it follows the pointer.
type DragPreview struct {
	BaleID   uuid.UUID       `json:"bale_id"`
	Origin   models.Position `json:"origin"`
	Position models.Position `json:"position"`
}

// DropResult reports how a drop was resolved. Rejection is a normal outcome.
type DropResult struct {
	BaleID   uuid.UUID               `json:"bale_id"`
	Outcome  domainsvcs.Outcome      `json:"outcome"`
	Reason   domainsvcs.RejectReason `json:"reason,omitempty"`
	Position models.Position         `json:"position"`
	Level    int                     `json:"level"`
	Settled  []uuid.UUID             `json:"settled,omitempty"`
	Labels   []domainsvcs.StackLabel `json:"labels"`
}

// RotationResult describes a started rotation and the tween a client should play.
type RotationResult struct {
	BaleID uuid.UUID          `json:"bale_id"`
	From   models.Orientation `json:"from"`
	To     models.Orientation `json:"to"`
	Tween  tween.Tween        `json:"tween"`
}

// FilterResult is the outcome of a visibility change.
type FilterResult struct {
	Criteria domainsvcs.Criteria     `json:"criteria"`
	Visible  []uuid.UUID             `json:"visible"`
	Labels   []domainsvcs.StackLabel `json:"labels"`
}

// StackView is one stack of the layout snapshot.
type StackView struct {
	Number int             `json:"number"`
	Key    models.StackKey `json:"key"`
	Bales  []BaleView      `json:"bales"`
}

// PendingWriteView describes a placement write awaiting reconciliation.
type PendingWriteView struct {
	BaleID    uuid.UUID                    `json:"bale_id"`
	Change    repositories.PlacementChange `json:"change"`
	Attempts  int                          `json:"attempts"`
	LastError string                       `json:"last_error"`
	Since     time.Time                    `json:"since"`
}

// ReconcileResult summarises one reconciliation pass.
type ReconcileResult struct {
	Replayed int `json:"replayed"`
	Failed   int `json:"failed"`
}
