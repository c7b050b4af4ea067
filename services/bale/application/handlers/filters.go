package handlers

import (
	"net/http"

	"github.com/ghuser/baleyard/pkg/errhttp"
	"github.com/ghuser/baleyard/pkg/httpx"
	pkgvalidator "github.com/ghuser/baleyard/pkg/validator"
	appsvcs "github.com/ghuser/baleyard/services/bale/application/services"
	"github.com/ghuser/baleyard/services/bale/domain/models"
	domainsvcs "github.com/ghuser/baleyard/services/bale/domain/services"
)

// VehicleFilterRequest selects bales from one vehicle and container.
type VehicleFilterRequest struct {
	VehicleNumber   string `json:"vehicle_number" validate:"required,max=64" example:"KA-01-4521"`
	ContainerNumber string `json:"container_number" validate:"required,max=64" example:"CONT-7781"`
} // @name VehicleFilterRequest

// FiltersRequest replaces the vehicle and code prefix filters. Omitted fields clear them.
type FiltersRequest struct {
	Vehicle    *VehicleFilterRequest `json:"vehicle"`
	CodePrefix string                `json:"code_prefix" validate:"omitempty,codeprefix,max=64" example:"CP1"`
} // @name FiltersRequest

// IsolationRequest names the stack to isolate by its cell centre.
type IsolationRequest struct {
	X *float64 `json:"x" validate:"required,coord" example:"7"`
	Z *float64 `json:"z" validate:"required,coord" example:"0"`
} // @name IsolationRequest

// FiltersHandler serves the visibility filters.
type FiltersHandler struct {
	svc *appsvcs.Services
}

// NewFiltersHandler returns a FiltersHandler backed by the given services.
func NewFiltersHandler(svc *appsvcs.Services) *FiltersHandler {
	return &FiltersHandler{svc: svc}
}

// Set replaces the vehicle and code prefix filters, keeping any stack isolation.
//
//	@Summary	Set filters
//	@Tags		filters
//	@Accept		json
//	@Produce	json
//	@Param		request	body		FiltersRequest	true	"Filter criteria"
//	@Success	200		{object}	services.FilterResult
//	@Failure	422		{object}	ErrorResponse
//	@Router		/layout/filters [put]
func (h *FiltersHandler) Set(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[FiltersRequest](w, r)
	if !ok {
		return
	}
	var vehicle *domainsvcs.VehicleFilter
	if req.Vehicle != nil {
		vehicle = &domainsvcs.VehicleFilter{
			VehicleNumber:   req.Vehicle.VehicleNumber,
			ContainerNumber: req.Vehicle.ContainerNumber,
		}
	}
	res, err := h.svc.Layout.SetFilters(r.Context(), wh, vehicle, req.CodePrefix)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// Clear removes every filter including isolation.
//
//	@Summary	Clear filters
//	@Tags		filters
//	@Produce	json
//	@Success	200	{object}	services.FilterResult
//	@Router		/layout/filters [delete]
func (h *FiltersHandler) Clear(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Layout.ClearFilters(r.Context(), wh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// ToggleIsolation shows only the given stack, or everything again if it was already isolated.
//
//	@Summary	Toggle stack isolation
//	@Tags		filters
//	@Accept		json
//	@Produce	json
//	@Param		request	body		IsolationRequest	true	"Stack cell"
//	@Success	200		{object}	services.FilterResult
//	@Failure	422		{object}	ErrorResponse
//	@Router		/layout/isolation [post]
func (h *FiltersHandler) ToggleIsolation(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[IsolationRequest](w, r)
	if !ok {
		return
	}
	res, err := h.svc.Layout.ToggleIsolation(r.Context(), wh, models.NewStackKey(*req.X, *req.Z))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
