package handlers

import (
	"net/http"

	"github.com/ghuser/baleyard/pkg/errhttp"
	"github.com/ghuser/baleyard/pkg/httpx"
	pkgvalidator "github.com/ghuser/baleyard/pkg/validator"
	appsvcs "github.com/ghuser/baleyard/services/bale/application/services"
	"github.com/ghuser/baleyard/services/bale/domain/models"
)

// PointerRequest is a floor point under the pointer. Y is ignored.
type PointerRequest struct {
	X *float64 `json:"x" validate:"required,coord" example:"12.4"`
	Z *float64 `json:"z" validate:"required,coord" example:"3.1"`
} // @name PointerRequest

func (p PointerRequest) position() models.Position {
	return models.Position{X: *p.X, Z: *p.Z}
}

// DropRequest is the optional body of POST /layout/drop. Without a pointer the
// bale is dropped where the preview currently is.
type DropRequest struct {
	Pointer *PointerRequest `json:"pointer"`
} // @name DropRequest

// DragHandler serves the pick up, move, drop and cancel steps of a drag.
type DragHandler struct {
	svc *appsvcs.Services
}

// NewDragHandler returns a DragHandler backed by the given services.
func NewDragHandler(svc *appsvcs.Services) *DragHandler {
	return &DragHandler{svc: svc}
}

// PickUp starts dragging the selected bale.
//
//	@Summary		Pick up bale
//	@Description	Starts a drag for the selected bale. Only one drag may be active per warehouse.
//	@Tags			drag
//	@Produce		json
//	@Param			id	path		string	true	"Bale id"
//	@Success		200	{object}	services.DragPreview
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/layout/bales/{id}/pickup [post]
func (h *DragHandler) PickUp(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	id, ok := baleID(w, r)
	if !ok {
		return
	}
	preview, err := h.svc.Layout.PickUp(r.Context(), wh, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, preview)
}

// Move snaps the dragged bale to the cell under the pointer.
//
//	@Summary	Move drag preview
//	@Tags		drag
//	@Accept		json
//	@Produce	json
//	@Param		request	body		PointerRequest	true	"Pointer on the floor"
//	@Success	200		{object}	services.DragPreview
//	@Failure	409		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/layout/drag [put]
func (h *DragHandler) Move(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[PointerRequest](w, r)
	if !ok {
		return
	}
	preview, err := h.svc.Layout.MoveTo(r.Context(), wh, req.position())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, preview)
}

// Drop resolves the drag. A rejected drop is reported with 200 and outcome "rejected".
//
//	@Summary		Drop bale
//	@Description	Commits the bale onto the stack or empty cell under the pointer, or rejects the drop
//	@Tags			drag
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DropRequest	false	"Optional final pointer"
//	@Success		200		{object}	services.DropResult
//	@Failure		409		{object}	ErrorResponse
//	@Router			/layout/drop [post]
func (h *DragHandler) Drop(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateOptionalRequest[DropRequest](w, r)
	if !ok {
		return
	}
	var pointer *models.Position
	if req.Pointer != nil {
		p := req.Pointer.position()
		pointer = &p
	}
	res, err := h.svc.Layout.Drop(r.Context(), wh, pointer)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// Cancel abandons the drag and restores the bale.
//
//	@Summary	Cancel drag
//	@Tags		drag
//	@Produce	json
//	@Success	200	{object}	services.BaleView
//	@Failure	409	{object}	ErrorResponse
//	@Router		/layout/drag [delete]
func (h *DragHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	b, err := h.svc.Layout.CancelDrag(r.Context(), wh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}
