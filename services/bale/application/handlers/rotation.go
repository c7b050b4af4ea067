package handlers

import (
	"net/http"

	"github.com/ghuser/baleyard/pkg/errhttp"
	"github.com/ghuser/baleyard/pkg/httpx"
	appsvcs "github.com/ghuser/baleyard/services/bale/application/services"
)

// RotationHandler serves orientation toggles.
type RotationHandler struct {
	svc *appsvcs.Services
}

// NewRotationHandler returns a RotationHandler backed by the given services.
func NewRotationHandler(svc *appsvcs.Services) *RotationHandler {
	return &RotationHandler{svc: svc}
}

// Begin starts toggling the selected bale between horizontal and vertical.
//
//	@Summary		Begin rotation
//	@Description	Flips the effective orientation and returns the tween to animate. The server completes the rotation itself if the client never does. 409 when the turned footprint would overlap a neighbouring stack.
//	@Tags			rotation
//	@Produce		json
//	@Param			id	path		string	true	"Bale id"
//	@Success		202	{object}	services.RotationResult
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Failure		423	{object}	ErrorResponse
//	@Router			/layout/bales/{id}/rotation [post]
func (h *RotationHandler) Begin(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	id, ok := baleID(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Layout.BeginRotation(r.Context(), wh, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, res)
}

// Complete commits the in-flight rotation.
//
//	@Summary	Complete rotation
//	@Tags		rotation
//	@Produce	json
//	@Param		id	path		string	true	"Bale id"
//	@Success	200	{object}	services.BaleView
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Router		/layout/bales/{id}/rotation/complete [post]
func (h *RotationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	id, ok := baleID(w, r)
	if !ok {
		return
	}
	b, err := h.svc.Layout.CompleteRotation(r.Context(), wh, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}
