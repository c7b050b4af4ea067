// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/baleyard/pkg/httpx"
	baledomain "github.com/ghuser/baleyard/services/bale/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors; their text is
// not sent to the client.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, true))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, baledomain.ErrWarehouseRequired):
		return http.StatusBadRequest // 400
	case errors.Is(err, baledomain.ErrBaleNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, baledomain.ErrBaleAlreadyExists),
		errors.Is(err, baledomain.ErrDragInProgress),
		errors.Is(err, baledomain.ErrNotDragging),
		errors.Is(err, baledomain.ErrNotSelected),
		errors.Is(err, baledomain.ErrNoRotationInFlight),
		errors.Is(err, baledomain.ErrRotationBlocked):
		return http.StatusConflict // 409
	case errors.Is(err, baledomain.ErrInvalidBale):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, baledomain.ErrBaleDragging),
		errors.Is(err, baledomain.ErrRotationInFlight):
		return http.StatusLocked // 423
	case errors.Is(err, baledomain.ErrWarehouseUnavailable):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
