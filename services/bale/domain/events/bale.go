package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	// TopicBaleMoved is the Watermill topic published when a bale's position is persisted.
	TopicBaleMoved = "bale.moved"

	// TopicBaleRotated is the Watermill topic published when a bale's orientation is persisted.
	TopicBaleRotated = "bale.rotated"
)

// BalePlacementEvent is published after a bale's placement is persisted.
// The same payload is used for both topics; consumers subscribe via
// EventBus.Subscribe(ctx, events.TopicBaleMoved) or TopicBaleRotated.
type BalePlacementEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	BaleID      uuid.UUID `json:"bale_id"`
	WarehouseID string    `json:"warehouse_id"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Z           float64   `json:"z"`
	Orientation string    `json:"orientation"`
	OccurredAt  time.Time `json:"occurred_at"`
}
