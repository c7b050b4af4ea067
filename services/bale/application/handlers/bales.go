package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/baleyard/pkg/errhttp"
	"github.com/ghuser/baleyard/pkg/httpx"
	pkgvalidator "github.com/ghuser/baleyard/pkg/validator"
	appsvcs "github.com/ghuser/baleyard/services/bale/application/services"
)

// BindHandleRequest is the request body for PUT /layout/handles/{handle}.
type BindHandleRequest struct {
	BaleID string `json:"bale_id" validate:"required,uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name BindHandleRequest

// BaleListResponse wraps the bales of one warehouse.
type BaleListResponse struct {
	WarehouseID string             `json:"warehouse_id" example:"demo"`
	Source      appsvcs.Source     `json:"source" example:"repository"`
	Bales       []appsvcs.BaleView `json:"bales"`
} // @name BaleListResponse

// BalesHandler serves bale reads, selection and renderer handle binding.
type BalesHandler struct {
	svc *appsvcs.Services
}

// NewBalesHandler returns a BalesHandler backed by the given services.
func NewBalesHandler(svc *appsvcs.Services) *BalesHandler {
	return &BalesHandler{svc: svc}
}

// List returns every bale in the selected warehouse.
//
//	@Summary		List bales
//	@Description	Returns every bale in the selected warehouse with its interaction state
//	@Tags			bales
//	@Produce		json
//	@Param			warehouse	query		string	false	"Warehouse id; remembered for later requests"
//	@Success		200			{object}	BaleListResponse
//	@Failure		303			"No warehouse selected"
//	@Failure		503			{object}	ErrorResponse
//	@Router			/layout/bales [get]
func (h *BalesHandler) List(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	bales, err := h.svc.Layout.Bales(r.Context(), wh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	src, err := h.svc.Layout.Source(r.Context(), wh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, BaleListResponse{WarehouseID: wh, Source: src, Bales: bales})
}

// Get returns one bale.
//
//	@Summary	Get bale
//	@Tags		bales
//	@Produce	json
//	@Param		id	path		string	true	"Bale id"
//	@Success	200	{object}	services.BaleView
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/layout/bales/{id} [get]
func (h *BalesHandler) Get(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	id, ok := baleID(w, r)
	if !ok {
		return
	}
	b, err := h.svc.Layout.Bale(r.Context(), wh, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Select makes the bale the current selection.
//
//	@Summary		Select bale
//	@Description	Selects a bale, replacing any previous selection
//	@Tags			selection
//	@Produce		json
//	@Param			id	path		string	true	"Bale id"
//	@Success		200	{object}	services.BaleView
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/layout/bales/{id}/select [post]
func (h *BalesHandler) Select(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	id, ok := baleID(w, r)
	if !ok {
		return
	}
	b, err := h.svc.Layout.Select(r.Context(), wh, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Deselect clears the selection.
//
//	@Summary	Clear selection
//	@Tags		selection
//	@Success	204
//	@Failure	409	{object}	ErrorResponse
//	@Router		/layout/selection [delete]
func (h *BalesHandler) Deselect(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Layout.Deselect(r.Context(), wh); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.NoContent(w)
}

// BindHandle maps a renderer handle (mesh or hit-test token) to a bale.
//
//	@Summary	Bind renderer handle
//	@Tags		bales
//	@Accept		json
//	@Param		handle	path	string				true	"Renderer handle"
//	@Param		request	body	BindHandleRequest	true	"Bale to bind"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Failure	422	{object}	ErrorResponse
//	@Router		/layout/handles/{handle} [put]
func (h *BalesHandler) BindHandle(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[BindHandleRequest](w, r)
	if !ok {
		return
	}
	if err := h.svc.Layout.BindHandle(r.Context(), wh, chi.URLParam(r, "handle"), uuid.MustParse(req.BaleID)); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.NoContent(w)
}

// ResolveHandle returns the bale bound to a renderer handle.
//
//	@Summary	Resolve renderer handle
//	@Tags		bales
//	@Produce	json
//	@Param		handle	path		string	true	"Renderer handle"
//	@Success	200		{object}	services.BaleView
//	@Failure	404		{object}	ErrorResponse
//	@Router		/layout/handles/{handle} [get]
func (h *BalesHandler) ResolveHandle(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	b, err := h.svc.Layout.ResolveHandle(r.Context(), wh, chi.URLParam(r, "handle"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}
