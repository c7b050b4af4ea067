package selection

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/baleyard/pkg/httpx"
	"github.com/ghuser/baleyard/pkg/logger"
)

const (
	sessionName         = "baleyard_selection"
	sessionWarehouseKey = "warehouse_id"

	// QueryParam is the query parameter that selects a warehouse.
	QueryParam = "warehouse"
)

// RequireWarehouse is a chi middleware that resolves the warehouse for a request.
// A ?warehouse= parameter wins and is remembered in the session; otherwise the
// remembered one is used. With neither, the client is sent to selectURL with
// 303 See Other and the request is not processed.
//
// After this middleware, handlers can safely call selection.WarehouseFromCtx(r.Context()).
func RequireWarehouse(store sessions.Store, log logger.Logger, selectURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid selection cookie", "error", err)
			}

			if id := r.URL.Query().Get(QueryParam); id != "" {
				if err := ValidateWarehouseID(id); err != nil {
					httpx.JSONError(w, http.StatusBadRequest, err.Error())
					return
				}
				if session != nil && session.Values[sessionWarehouseKey] != id {
					session.Values[sessionWarehouseKey] = id
					if err := session.Save(r, w); err != nil {
						log.WarnContext(r.Context(), "failed to remember warehouse", "warehouse_id", id, "error", err)
					}
				}
				next.ServeHTTP(w, r.WithContext(WithWarehouse(r.Context(), id)))
				return
			}

			if session != nil {
				if id, ok := session.Values[sessionWarehouseKey].(string); ok && ValidateWarehouseID(id) == nil {
					next.ServeHTTP(w, r.WithContext(WithWarehouse(r.Context(), id)))
					return
				}
			}

			log.DebugContext(r.Context(), "no warehouse selected, redirecting", "to", selectURL)
			http.Redirect(w, r, selectURL, http.StatusSeeOther)
		})
	}
}

