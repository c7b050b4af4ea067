package selection

import (
	"context"
	"errors"
	"regexp"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const warehouseKey contextKey = "warehouse_id"

// ErrWarehouseNotSelected is returned when no warehouse exists in the request context.
var ErrWarehouseNotSelected = errors.New("warehouse not selected")

// ErrInvalidWarehouseID is returned for identifiers outside [A-Za-z0-9_-]{1,64}.
var ErrInvalidWarehouseID = errors.New("invalid warehouse identifier")

var warehouseIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateWarehouseID checks the shape of a warehouse identifier.
func ValidateWarehouseID(id string) error {
	if !warehouseIDPattern.MatchString(id) {
		return ErrInvalidWarehouseID
	}
	return nil
}

// WarehouseFromCtx extracts the selected warehouse from the request context.
// Returns "" and ErrWarehouseNotSelected if none is set.
func WarehouseFromCtx(ctx context.Context) (string, error) {
	id, ok := ctx.Value(warehouseKey).(string)
	if !ok || id == "" {
		return "", ErrWarehouseNotSelected
	}
	return id, nil
}

// WithWarehouse returns a new context with the warehouse attached.
func WithWarehouse(ctx context.Context, warehouseID string) context.Context {
	return context.WithValue(ctx, warehouseKey, warehouseID)
}
