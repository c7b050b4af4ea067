package handlers

import (
	"net/http"

	"github.com/ghuser/baleyard/pkg/errhttp"
	"github.com/ghuser/baleyard/pkg/httpx"
	appsvcs "github.com/ghuser/baleyard/services/bale/application/services"
)

// PersistenceHandler exposes placement writes that have not reached the repository.
type PersistenceHandler struct {
	svc *appsvcs.Services
}

// NewPersistenceHandler returns a PersistenceHandler backed by the given services.
func NewPersistenceHandler(svc *appsvcs.Services) *PersistenceHandler {
	return &PersistenceHandler{svc: svc}
}

// Pending lists placement writes awaiting reconciliation.
//
//	@Summary	Pending writes
//	@Tags		persistence
//	@Produce	json
//	@Success	200	{array}	services.PendingWriteView
//	@Router		/layout/pending-writes [get]
func (h *PersistenceHandler) Pending(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	pending, err := h.svc.Layout.PendingWrites(r.Context(), wh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if pending == nil {
		pending = []appsvcs.PendingWriteView{}
	}
	httpx.JSON(w, http.StatusOK, pending)
}

// Reconcile replays pending writes from the current in-memory placement.
//
//	@Summary	Reconcile pending writes
//	@Tags		persistence
//	@Produce	json
//	@Success	200	{object}	services.ReconcileResult
//	@Router		/layout/reconcile [post]
func (h *PersistenceHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	wh, ok := warehouseID(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Layout.Reconcile(r.Context(), wh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
