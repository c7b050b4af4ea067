package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/baleyard/pkg/errhttp"
	"github.com/ghuser/baleyard/pkg/httpx"
	"github.com/ghuser/baleyard/pkg/selection"
	baledomain "github.com/ghuser/baleyard/services/bale/domain"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"bale is not selected"`
} // @name ErrorResponse

// warehouseID returns the warehouse resolved by the selection middleware.
func warehouseID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := selection.WarehouseFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, baledomain.ErrWarehouseRequired)
		return "", false
	}
	return id, true
}

// baleID parses the {id} path parameter.
func baleID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid bale id")
		return uuid.Nil, false
	}
	return id, true
}
