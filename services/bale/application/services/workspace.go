package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/baleyard/services/bale/application/tween"
	"github.com/ghuser/baleyard/services/bale/domain/models"
	"github.com/ghuser/baleyard/services/bale/domain/registry"
	"github.com/ghuser/baleyard/services/bale/domain/repositories"
	domainsvcs "github.com/ghuser/baleyard/services/bale/domain/services"
)

// Source says where a workspace's bales were loaded from.
type Source string

const (
	SourceRepository Source = "repository"
	SourceCache      Source = "cache"
	SourceSample     Source = "sample"
)

// dragSession is the single in-progress drag of a workspace. The bale itself is
// not moved until the drop resolves.
type dragSession struct {
	baleID  uuid.UUID
	origin  models.Position
	preview models.Position
}

// pendingWrite marks a bale whose last placement write failed.
type pendingWrite struct {
	change    repositories.PlacementChange
	version   uint64
	attempts  int
	lastError string
	since     time.Time
}

// placementWrite is a write captured under the workspace lock and sent after it
// is released.
type placementWrite struct {
	warehouseID string
	baleID      uuid.UUID
	placement   models.Placement
	change      repositories.PlacementChange
	version     uint64
}

// Workspace is the in-memory state of one warehouse. All fields are guarded by mu.
type Workspace struct {
	mu sync.Mutex

	warehouseID string
	loaded      bool
	source      Source

	reg       *registry.Registry
	selected  uuid.UUID
	drag      *dragSession
	criteria  domainsvcs.Criteria
	labels    []domainsvcs.StackLabel
	ribbons   domainsvcs.RibbonPalette
	rotations map[uuid.UUID]*tween.Handle

	versions map[uuid.UUID]uint64
	pending  map[uuid.UUID]*pendingWrite
	outbox   []placementWrite
}

func newWorkspace(warehouseID string) *Workspace {
	return &Workspace{
		warehouseID: warehouseID,
		reg:         registry.New(warehouseID),
		rotations:   make(map[uuid.UUID]*tween.Handle),
		versions:    make(map[uuid.UUID]uint64),
		pending:     make(map[uuid.UUID]*pendingWrite),
	}
}

// reset drops all loaded state, stopping any scheduled rotation completions.
// Pending markers survive so a failed write is still reconciled after a reload.
func (ws *Workspace) reset() {
	for id, h := range ws.rotations {
		h.Stop()
		delete(ws.rotations, id)
	}
	ws.loaded = false
	ws.source = ""
	ws.reg = registry.New(ws.warehouseID)
	ws.selected = uuid.Nil
	ws.drag = nil
	ws.criteria = domainsvcs.Criteria{}
	ws.labels = nil
	ws.ribbons = domainsvcs.RibbonPalette{}
}

// enqueue captures the bale's current placement for persistence.
func (ws *Workspace) enqueue(b *models.Bale, change repositories.PlacementChange) {
	ws.versions[b.ID]++
	ws.outbox = append(ws.outbox, placementWrite{
		warehouseID: ws.warehouseID,
		baleID:      b.ID,
		placement:   b.Placement(),
		change:      change,
		version:     ws.versions[b.ID],
	})
}

func (ws *Workspace) drainOutbox() []placementWrite {
	out := ws.outbox
	ws.outbox = nil
	return out
}

// clearSelection deselects whatever is selected.
func (ws *Workspace) clearSelection() {
	if ws.selected == uuid.Nil {
		return
	}
	if b, err := ws.reg.Get(ws.selected); err == nil {
		b.Selected = false
	}
	ws.selected = uuid.Nil
}

// refreshVisibility reapplies the active criteria and rebuilds the stack labels.
// It returns the label diff against the previous build.
func (ws *Workspace) refreshVisibility() (visible []uuid.UUID, changed []domainsvcs.StackLabel, removed []models.StackKey) {
	visible = domainsvcs.ApplyVisibility(ws.reg.All(), ws.criteria)
	next := domainsvcs.BuildStackLabels(ws.reg.Visible())
	changed, removed = domainsvcs.DiffLabels(ws.labels, next)
	ws.labels = next
	return visible, changed, removed
}

func (ws *Workspace) view(b *models.Bale, d models.Dimensions) BaleView {
	return BaleView{
		ID:                   b.ID,
		WarehouseID:          b.WarehouseID,
		CodeNumber:           b.CodeNumber.String(),
		VehicleNumber:        b.VehicleNumber,
		WarehouseNumber:      b.WarehouseNumber,
		ArrivalDate:          b.ArrivalDate,
		Supplier:             b.Supplier,
		TotalWeight:          b.TotalWeight,
		BaleCount:            b.BaleCount,
		ContainerNumber:      b.ContainerNumber,
		Position:             b.Position,
		Level:                d.LevelOf(b.Position.Y),
		Orientation:          b.Orientation,
		EffectiveOrientation: b.EffectiveOrientation(),
		RibbonColor:          ws.ribbons.ColorFor(b.CodeNumber.Prefix()),
		Visible:              b.Visible,
		Selected:             b.Selected,
		Dragging:             b.Dragging,
		Rotating:             b.Rotating(),
	}
}

func (ws *Workspace) pendingViews() []PendingWriteView {
	out := make([]PendingWriteView, 0, len(ws.pending))
	for _, b := range ws.reg.All() {
		p, ok := ws.pending[b.ID]
		if !ok {
			continue
		}
		out = append(out, PendingWriteView{
			BaleID:    b.ID,
			Change:    p.change,
			Attempts:  p.attempts,
			LastError: p.lastError,
			Since:     p.since,
		})
	}
	return out
}
