package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/baleyard/services/bale/domain/models"
)

// PlacementChange says which part of a placement an update carries, so the
// repository publishes the matching domain event.
type PlacementChange string

const (
	ChangeMoved   PlacementChange = "moved"
	ChangeRotated PlacementChange = "rotated"
)

// BaleRepository is the persistence interface for the Bale aggregate.
// The domain layer owns this interface; infrastructure implements it.
type BaleRepository interface {
	// ListByWarehouse returns every bale stored for the warehouse.
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*models.Bale, error)

	// UpdatePlacement persists a moved or rotated bale.
	// Returns ErrBaleNotFound if the bale does not exist in the warehouse.
	UpdatePlacement(ctx context.Context, warehouseID string, id uuid.UUID, p models.Placement, change PlacementChange) error

	// InsertMany seeds bales in one transaction. Used for first-run bootstrap only.
	InsertMany(ctx context.Context, bales []*models.Bale) error
}
