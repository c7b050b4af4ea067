package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/baleyard/pkg/app"
	"github.com/ghuser/baleyard/pkg/selection"
	"github.com/ghuser/baleyard/services/bale/application/handlers"
	appsvcs "github.com/ghuser/baleyard/services/bale/application/services"
)

// BaleRoutes registers layout endpoints on the provided chi router. Every route
// runs inside a warehouse: requests without one are redirected to the selection page.
func BaleRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	bales := handlers.NewBalesHandler(svcs)
	drag := handlers.NewDragHandler(svcs)
	rotation := handlers.NewRotationHandler(svcs)
	filters := handlers.NewFiltersHandler(svcs)
	layout := handlers.NewLayoutHandler(svcs)
	persistence := handlers.NewPersistenceHandler(svcs)

	r.Route("/layout", func(r chi.Router) {
		r.Use(selection.RequireWarehouse(a.SessionStore, a.Logger, a.Config.WarehouseSelectURL))

		r.Route("/bales", func(r chi.Router) {
			r.Get("/", bales.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", bales.Get)
				r.Post("/select", bales.Select)
				r.Post("/pickup", drag.PickUp)
				r.Post("/rotation", rotation.Begin)
				r.Post("/rotation/complete", rotation.Complete)
			})
		})
		r.Delete("/selection", bales.Deselect)
		r.Put("/handles/{handle}", bales.BindHandle)
		r.Get("/handles/{handle}", bales.ResolveHandle)

		r.Put("/drag", drag.Move)
		r.Delete("/drag", drag.Cancel)
		r.Post("/drop", drag.Drop)

		r.Put("/filters", filters.Set)
		r.Delete("/filters", filters.Clear)
		r.Post("/isolation", filters.ToggleIsolation)

		r.Get("/stacks", layout.Stacks)
		r.Get("/layout", layout.Layout)
		r.Get("/layout.xlsx", layout.Export)
		r.Post("/reset", layout.Reset)
		r.Get("/ws", layout.Stream)

		r.Get("/pending-writes", persistence.Pending)
		r.Post("/reconcile", persistence.Reconcile)
	})
}
