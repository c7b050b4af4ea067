package handlers

import (
	"io"
	"net/http"

	"github.com/ghuser/baleyard/pkg/errhttp"
	"github.com/ghuser/baleyard/pkg/httpx"
	appsvcs "github.com/ghuser/baleyard/services/bale/application/services"
	domainsvcs "github.com/ghuser/baleyard/services/bale/domain/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LabelsResponse carries the per-stack labels of the visible bales.
type LabelsResponse struct {
	WarehouseID string                  `json:"warehouse_id" example:"demo"`
	Labels      []domainsvcs.StackLabel `json:"labels"`
} // @name LabelsResponse

// LayoutHandler serves stack labels, the layout snapshot, its export and reset.
type LayoutHandler struct {
	svc *appsvcs.Services
}

// NewLayoutHandler returns a LayoutHandler backed by the given services.
func NewLayoutHandler(svc *appsvcs.Services) *LayoutHandler {
	return &LayoutHandler{svc: svc}
}

// Stacks returns the labels of stacks with at least one visible bale.
//
//	@Summary	Stack labels
//	@Tags		layout
//	@Produce	json
//	@Success	200	{object}	LabelsResponse
//	@Router		/layout/stacks [get]
func (h *LayoutHandler) Stacks(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	labels, err := h.svc.Layout.Labels(r.Context(), wh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if labels == nil {
		labels = []domainsvcs.StackLabel{}
	}
	httpx.JSON(w, http.StatusOK, LabelsResponse{WarehouseID: wh, Labels: labels})
}

// Layout returns every stack with its bales bottom-up.
//
//	@Summary	Layout snapshot
//	@Tags		layout
//	@Produce	json
//	@Success	200	{array}	services.StackView
//	@Router		/layout/layout [get]
func (h *LayoutHandler) Layout(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	stacks, err := h.svc.Layout.Layout(r.Context(), wh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if stacks == nil {
		stacks = []appsvcs.StackView{}
	}
	httpx.JSON(w, http.StatusOK, stacks)
}

// Export streams the layout snapshot as a spreadsheet.
//
//	@Summary	Export layout
//	@Tags		layout
//	@Produce	application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Success	200	{file}	binary
//	@Router		/layout/layout.xlsx [get]
func (h *LayoutHandler) Export(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	err := httpx.Attachment(w, xlsxContentType, "layout-"+wh+".xlsx", func(out io.Writer) error {
		return h.svc.Layout.ExportLayout(r.Context(), wh, out)
	})
	if err != nil {
		errhttp.WriteError(w, err)
	}
}

// Reset discards in-memory state and reloads the warehouse.
//
//	@Summary		Reset layout
//	@Description	Drops the cached listing and reloads bales from the repository
//	@Tags			layout
//	@Produce		json
//	@Success		200	{object}	LabelsResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/layout/reset [post]
func (h *LayoutHandler) Reset(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	labels, err := h.svc.Layout.Reset(r.Context(), wh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if labels == nil {
		labels = []domainsvcs.StackLabel{}
	}
	httpx.JSON(w, http.StatusOK, LabelsResponse{WarehouseID: wh, Labels: labels})
}

// Stream upgrades to a websocket carrying a label snapshot followed by diffs.
//
//	@Summary	Live stack labels
//	@Tags		layout
//	@Success	101
//	@Router		/layout/ws [get]
func (h *LayoutHandler) Stream(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	labels, err := h.svc.Layout.Labels(r.Context(), wh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	h.svc.Hub.ServeWS(w, r, wh, labels)
}
