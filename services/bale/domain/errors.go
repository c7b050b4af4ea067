package domain

import "errors"

// Sentinel errors for the bale domain. Use errors.Is() to check these.
var (
	// ErrBaleNotFound indicates the requested bale does not exist in the warehouse.
	ErrBaleNotFound = errors.New("bale not found")

	// ErrBaleAlreadyExists indicates a bale with the same ID is already registered.
	ErrBaleAlreadyExists = errors.New("bale already exists")

	// ErrInvalidBale indicates a bale violates domain constraints (bad id, orientation, level).
	ErrInvalidBale = errors.New("invalid bale")

	// ErrDragInProgress indicates a pick up was requested while another bale is being dragged.
	ErrDragInProgress = errors.New("another bale is already being dragged")

	// ErrNotDragging indicates a drag operation was requested with no active drag session.
	ErrNotDragging = errors.New("no bale is being dragged")

	// ErrBaleDragging indicates the bale cannot be rotated or reselected while it is dragged.
	ErrBaleDragging = errors.New("bale is being dragged")

	// ErrNotSelected indicates the operation requires the bale to be the current selection.
	ErrNotSelected = errors.New("bale is not selected")

	// ErrRotationInFlight indicates a rotation was requested before the previous one completed.
	ErrRotationInFlight = errors.New("rotation already in progress")

	// ErrRotationBlocked indicates the turned footprint would overlap a bale in another stack.
	ErrRotationBlocked = errors.New("rotation blocked by a neighbouring bale")

	// ErrNoRotationInFlight indicates a rotation completion arrived with nothing to complete.
	ErrNoRotationInFlight = errors.New("no rotation in progress")

	// ErrWarehouseRequired indicates no warehouse identifier was supplied.
	ErrWarehouseRequired = errors.New("warehouse identifier required")

	// ErrWarehouseUnavailable indicates neither the repository nor the bundled sample data
	// could provide bales for the warehouse.
	ErrWarehouseUnavailable = errors.New("warehouse unavailable")
)
