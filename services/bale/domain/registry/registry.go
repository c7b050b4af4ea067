// Package registry owns the set of bales placed in one warehouse.
//
// The registry is an arena addressed by bale ID. It is not safe for concurrent
// use; the owning workspace serialises access.
package registry

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/ghuser/baleyard/services/bale/domain"
	"github.com/ghuser/baleyard/services/bale/domain/models"
)

// Registry holds bales in insertion order and indexes them by ID and render handle.
type Registry struct {
	warehouseID string
	order       []uuid.UUID
	bales       map[uuid.UUID]*models.Bale
	handles     map[string]uuid.UUID
}

// New returns an empty registry for one warehouse.
func New(warehouseID string) *Registry {
	return &Registry{
		warehouseID: warehouseID,
		bales:       make(map[uuid.UUID]*models.Bale),
		handles:     make(map[string]uuid.UUID),
	}
}

// WarehouseID returns the warehouse this registry belongs to.
func (r *Registry) WarehouseID() string {
	return r.warehouseID
}

// Add registers a bale. Returns ErrBaleAlreadyExists for a duplicate ID.
func (r *Registry) Add(b *models.Bale) error {
	if b == nil || b.ID == uuid.Nil {
		return fmt.Errorf("%w: bale id must be set", domain.ErrInvalidBale)
	}
	if _, ok := r.bales[b.ID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrBaleAlreadyExists, b.ID)
	}
	r.bales[b.ID] = b
	r.order = append(r.order, b.ID)
	return nil
}

// Get returns the bale with the given ID. The returned pointer is the registry's own
// record; callers inside the workspace mutate it directly.
func (r *Registry) Get(id uuid.UUID) (*models.Bale, error) {
	b, ok := r.bales[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBaleNotFound, id)
	}
	return b, nil
}

// Len returns the number of registered bales.
func (r *Registry) Len() int {
	return len(r.order)
}

// All returns every bale in insertion order.
func (r *Registry) All() []*models.Bale {
	out := make([]*models.Bale, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.bales[id])
	}
	return out
}

// Others returns every bale except the one with the given ID, in insertion order.
func (r *Registry) Others(id uuid.UUID) []*models.Bale {
	out := make([]*models.Bale, 0, len(r.order))
	for _, oid := range r.order {
		if oid != id {
			out = append(out, r.bales[oid])
		}
	}
	return out
}

// Visible returns the bales currently marked visible, in insertion order.
func (r *Registry) Visible() []*models.Bale {
	out := make([]*models.Bale, 0, len(r.order))
	for _, id := range r.order {
		if b := r.bales[id]; b.Visible {
			out = append(out, b)
		}
	}
	return out
}

// AtCell returns the bales whose centre lies within tolerance of (x, z),
// ordered bottom-up.
func (r *Registry) AtCell(x, z, tolerance float64) []*models.Bale {
	centre := models.Position{X: x, Z: z}
	var out []*models.Bale
	for _, id := range r.order {
		b := r.bales[id]
		if b.Position.PlanarDistance(centre) <= tolerance {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position.Y < out[j].Position.Y })
	return out
}

// Stacks groups every bale by stack key; each group is ordered bottom-up.
func (r *Registry) Stacks() map[models.StackKey][]*models.Bale {
	out := make(map[models.StackKey][]*models.Bale)
	for _, id := range r.order {
		b := r.bales[id]
		k := b.Position.Key()
		out[k] = append(out[k], b)
	}
	for _, s := range out {
		sort.SliceStable(s, func(i, j int) bool { return s[i].Position.Y < s[j].Position.Y })
	}
	return out
}

// BindHandle maps a renderer handle (mesh id, hit-test token) to a bale.
func (r *Registry) BindHandle(handle string, id uuid.UUID) error {
	if _, ok := r.bales[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrBaleNotFound, id)
	}
	r.handles[handle] = id
	return nil
}

// ResolveHandle returns the bale bound to a renderer handle.
func (r *Registry) ResolveHandle(handle string) (*models.Bale, error) {
	id, ok := r.handles[handle]
	if !ok {
		return nil, fmt.Errorf("%w: handle %q", domain.ErrBaleNotFound, handle)
	}
	return r.Get(id)
}
