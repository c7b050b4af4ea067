package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	pkgcache "github.com/ghuser/baleyard/pkg/cache"
	"github.com/ghuser/baleyard/pkg/logger"
	"github.com/ghuser/baleyard/pkg/telemetry"
	"github.com/ghuser/baleyard/services/bale/application/tween"
	baledomain "github.com/ghuser/baleyard/services/bale/domain"
	"github.com/ghuser/baleyard/services/bale/domain/models"
	"github.com/ghuser/baleyard/services/bale/domain/repositories"
	domainsvcs "github.com/ghuser/baleyard/services/bale/domain/services"
	"github.com/ghuser/baleyard/services/bale/infrastructure/export"
	"github.com/ghuser/baleyard/services/bale/infrastructure/sample"
)

// LabelPublisher receives stack label diffs after every recomputation.
type LabelPublisher interface {
	PublishLabels(warehouseID string, changed []domainsvcs.StackLabel, removed []models.StackKey)
}

// Settings are the tunables of the layout service.
type Settings struct {
	Dimensions       models.Dimensions
	RotationDuration time.Duration
	RotationGrace    time.Duration
	PersistTimeout   time.Duration
	DemoWarehouseID  string
}

// LayoutDeps are the collaborators of the layout service. Everything except
// Repo and Log may be nil.
type LayoutDeps struct {
	Repo      repositories.BaleRepository
	Cache     *pkgcache.BaleCache
	Samples   *sample.Dataset
	Publisher LabelPublisher
	Metrics   *telemetry.PlacementMetrics
	Log       logger.Logger
}

// LayoutService runs the placement workflow for every warehouse. Each warehouse
// gets a Workspace that serialises its events; persistence writes are sent after
// the optimistic local update and never block the caller.
type LayoutService struct {
	repo      repositories.BaleRepository
	cache     *pkgcache.BaleCache
	samples   *sample.Dataset
	publisher LabelPublisher
	metrics   *telemetry.PlacementMetrics
	log       logger.Logger
	settings  Settings
	scheduler *tween.Scheduler

	// dispatch runs persistence jobs; asynchronous outside tests.
	dispatch func(func())
	now      func() time.Time

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

// NewLayoutService returns a LayoutService. Zero settings fall back to defaults.
func NewLayoutService(deps LayoutDeps, settings Settings) *LayoutService {
	if settings.Dimensions.Validate() != nil {
		settings.Dimensions = models.DefaultDimensions()
	}
	if settings.PersistTimeout <= 0 {
		settings.PersistTimeout = 5 * time.Second
	}
	return &LayoutService{
		repo:       deps.Repo,
		cache:      deps.Cache,
		samples:    deps.Samples,
		publisher:  deps.Publisher,
		metrics:    deps.Metrics,
		log:        deps.Log,
		settings:   settings,
		scheduler:  tween.NewScheduler(settings.RotationGrace),
		dispatch:   func(f func()) { go f() },
		now:        time.Now,
		workspaces: make(map[string]*Workspace),
	}
}

// Dimensions returns the bale geometry in use.
func (s *LayoutService) Dimensions() models.Dimensions {
	return s.settings.Dimensions
}

// withWorkspace runs fn with the warehouse's workspace locked, loading it first
// if needed. Writes queued by fn are dispatched after the lock is released.
func (s *LayoutService) withWorkspace(ctx context.Context, warehouseID string, fn func(ws *Workspace) error) error {
	if warehouseID == "" {
		return baledomain.ErrWarehouseRequired
	}

	s.mu.Lock()
	ws, ok := s.workspaces[warehouseID]
	if !ok {
		ws = newWorkspace(warehouseID)
		s.workspaces[warehouseID] = ws
	}
	s.mu.Unlock()

	ws.mu.Lock()
	err := s.ensureLoaded(ctx, ws)
	if err == nil {
		err = fn(ws)
	}
	writes := ws.drainOutbox()
	ws.mu.Unlock()

	for _, w := range writes {
		s.dispatch(func() { s.write(ws, w) })
	}
	return err
}

func (s *LayoutService) ensureLoaded(ctx context.Context, ws *Workspace) error {
	if ws.loaded {
		return nil
	}
	ctx, span := telemetry.Tracer().Start(ctx, "layout.Load",
		trace.WithAttributes(attribute.String("warehouse_id", ws.warehouseID)))
	defer span.End()

	bales, source, err := s.fetch(ctx, ws.warehouseID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	for _, b := range bales {
		if err := ws.reg.Add(b); err != nil {
			s.log.WarnContext(ctx, "skipping bale", "warehouse_id", ws.warehouseID, "bale_id", b.ID, "error", err)
			continue
		}
		ws.ribbons.ColorFor(b.CodeNumber.Prefix())
	}
	if err := domainsvcs.ValidateLayout(ws.reg.All(), s.settings.Dimensions); err != nil {
		s.log.WarnContext(ctx, "loaded layout violates placement rules", "warehouse_id", ws.warehouseID, "error", err)
	}
	ws.refreshVisibility()
	ws.loaded = true
	ws.source = source

	s.log.InfoContext(ctx, "warehouse loaded", "warehouse_id", ws.warehouseID, "source", source, "bales", ws.reg.Len())
	return nil
}

// fetch reads the warehouse through the cache, then the repository, then the
// bundled sample. The demo warehouse is seeded from the sample when empty.
func (s *LayoutService) fetch(ctx context.Context, warehouseID string) ([]*models.Bale, Source, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, warehouseID)
		if err == nil {
			bales, err := fromCached(cached)
			if err == nil {
				return bales, SourceCache, nil
			}
			s.log.WarnContext(ctx, "discarding unreadable cached listing", "warehouse_id", warehouseID, "error", err)
		} else if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "bale cache unavailable", "warehouse_id", warehouseID, "error", err)
		}
	}

	bales, err := s.repo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		s.log.WarnContext(ctx, "listing bales failed, using bundled sample", "warehouse_id", warehouseID, "error", err)
		fallback, ok := s.sampleFor(ctx, warehouseID)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s: %w", baledomain.ErrWarehouseUnavailable, warehouseID, err)
		}
		return fallback, SourceSample, nil
	}

	if len(bales) == 0 && warehouseID == s.settings.DemoWarehouseID {
		if seed, ok := s.sampleFor(ctx, warehouseID); ok && len(seed) > 0 {
			if err := s.repo.InsertMany(ctx, seed); err != nil {
				s.log.WarnContext(ctx, "seeding demo warehouse failed", "warehouse_id", warehouseID, "error", err)
				return seed, SourceSample, nil
			}
			s.log.InfoContext(ctx, "seeded demo warehouse", "warehouse_id", warehouseID, "bales", len(seed))
			bales = seed
		}
	}

	if s.cache != nil {
		listing := toCached(bales)
		s.dispatch(func() {
			if err := s.cache.Set(context.Background(), warehouseID, listing); err != nil {
				s.log.Warn("warming bale cache failed", "warehouse_id", warehouseID, "error", err)
			}
		})
	}
	return bales, SourceRepository, nil
}

func (s *LayoutService) sampleFor(ctx context.Context, warehouseID string) ([]*models.Bale, bool) {
	if s.samples == nil {
		return nil, false
	}
	bales, ok, err := s.samples.ForWarehouse(warehouseID, s.settings.Dimensions)
	if err != nil {
		s.log.ErrorContext(ctx, "bundled sample is invalid", "warehouse_id", warehouseID, "error", err)
		return nil, false
	}
	return bales, ok
}

// publish forwards a label diff to observers.
func (s *LayoutService) publish(warehouseID string, changed []domainsvcs.StackLabel, removed []models.StackKey) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishLabels(warehouseID, changed, removed)
}

// Bales returns every bale of the warehouse in load order.
func (s *LayoutService) Bales(ctx context.Context, warehouseID string) ([]BaleView, error) {
	var out []BaleView
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		all := ws.reg.All()
		out = make([]BaleView, 0, len(all))
		for _, b := range all {
			out = append(out, ws.view(b, s.settings.Dimensions))
		}
		return nil
	})
	return out, err
}

// Bale returns one bale. Returns ErrBaleNotFound when it is not in the warehouse.
func (s *LayoutService) Bale(ctx context.Context, warehouseID string, id uuid.UUID) (BaleView, error) {
	var out BaleView
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		b, err := ws.reg.Get(id)
		if err != nil {
			return err
		}
		out = ws.view(b, s.settings.Dimensions)
		return nil
	})
	return out, err
}

// Source reports where the warehouse was loaded from.
func (s *LayoutService) Source(ctx context.Context, warehouseID string) (Source, error) {
	var out Source
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		out = ws.source
		return nil
	})
	return out, err
}

// BindHandle maps a renderer handle to a bale.
func (s *LayoutService) BindHandle(ctx context.Context, warehouseID, handle string, id uuid.UUID) error {
	return s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		return ws.reg.BindHandle(handle, id)
	})
}

// ResolveHandle returns the bale bound to a renderer handle.
func (s *LayoutService) ResolveHandle(ctx context.Context, warehouseID, handle string) (BaleView, error) {
	var out BaleView
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		b, err := ws.reg.ResolveHandle(handle)
		if err != nil {
			return err
		}
		out = ws.view(b, s.settings.Dimensions)
		return nil
	})
	return out, err
}

// Select makes id the single selected bale.
func (s *LayoutService) Select(ctx context.Context, warehouseID string, id uuid.UUID) (BaleView, error) {
	var out BaleView
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		b, err := ws.reg.Get(id)
		if err != nil {
			return err
		}
		if ws.drag != nil {
			return baledomain.ErrDragInProgress
		}
		ws.clearSelection()
		b.Selected = true
		ws.selected = id
		out = ws.view(b, s.settings.Dimensions)
		return nil
	})
	return out, err
}

// Deselect clears the selection. A bale being dragged stays selected.
func (s *LayoutService) Deselect(ctx context.Context, warehouseID string) error {
	return s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		if ws.drag != nil {
			return baledomain.ErrDragInProgress
		}
		ws.clearSelection()
		return nil
	})
}

// PickUp starts dragging the selected bale. The preview is lifted by half a
// unit height over its resting place.
func (s *LayoutService) PickUp(ctx context.Context, warehouseID string, id uuid.UUID) (DragPreview, error) {
	var out DragPreview
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		b, err := ws.reg.Get(id)
		if err != nil {
			return err
		}
		if ws.drag != nil {
			return baledomain.ErrDragInProgress
		}
		if ws.selected != id {
			return baledomain.ErrNotSelected
		}
		preview := b.Position
		preview.Y += s.settings.Dimensions.UnitHeight / 2
		ws.drag = &dragSession{baleID: id, origin: b.Position, preview: preview}
		b.Dragging = true
		out = DragPreview{BaleID: id, Origin: b.Position, Position: preview}
		return nil
	})
	return out, err
}

// MoveTo snaps the pointer to the dragged bale's grid and updates the preview.
func (s *LayoutService) MoveTo(ctx context.Context, warehouseID string, pointer models.Position) (DragPreview, error) {
	var out DragPreview
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		if ws.drag == nil {
			return baledomain.ErrNotDragging
		}
		b, err := ws.reg.Get(ws.drag.baleID)
		if err != nil {
			return err
		}
		out = s.movePreview(ws, b, pointer)
		return nil
	})
	return out, err
}

func (s *LayoutService) movePreview(ws *Workspace, b *models.Bale, pointer models.Position) DragPreview {
	d := s.settings.Dimensions
	x, z := domainsvcs.Snap(pointer, b.EffectiveOrientation(), d)
	ws.drag.preview = models.Position{X: x, Y: ws.drag.origin.Y + d.UnitHeight/2, Z: z}
	return DragPreview{BaleID: b.ID, Origin: ws.drag.origin, Position: ws.drag.preview}
}

// CancelDrag ends the drag without resolving it. The bale keeps its place and
// its selection.
func (s *LayoutService) CancelDrag(ctx context.Context, warehouseID string) (BaleView, error) {
	var out BaleView
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		if ws.drag == nil {
			return baledomain.ErrNotDragging
		}
		b, err := ws.reg.Get(ws.drag.baleID)
		ws.drag = nil
		if err != nil {
			return err
		}
		b.Dragging = false
		out = ws.view(b, s.settings.Dimensions)
		return nil
	})
	return out, err
}

// Drop resolves the drag at the current preview cell, or at pointer when given.
// A committed drop moves the bale, settles the stack it left and queues one
// write per bale whose placement changed. A rejected drop changes nothing.
// Either way the drag and the selection end and labels are rebuilt.
func (s *LayoutService) Drop(ctx context.Context, warehouseID string, pointer *models.Position) (DropResult, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "layout.Drop",
		trace.WithAttributes(attribute.String("warehouse_id", warehouseID)))
	defer span.End()

	var out DropResult
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		if ws.drag == nil {
			return baledomain.ErrNotDragging
		}
		b, err := ws.reg.Get(ws.drag.baleID)
		if err != nil {
			return err
		}
		if pointer != nil {
			s.movePreview(ws, b, *pointer)
		}

		d := s.settings.Dimensions
		res := domainsvcs.ResolveDrop(b, ws.drag.preview.X, ws.drag.preview.Z, ws.reg.Others(b.ID), d)
		out = DropResult{BaleID: b.ID, Outcome: res.Outcome, Reason: res.Reason, Position: b.Position, Level: res.Level}

		if res.Committed() {
			originKey := b.Position.Key()
			b.Position = res.Position

			changed := map[uuid.UUID]*models.Bale{b.ID: b}
			for _, m := range domainsvcs.Settle(ws.reg.Stacks()[originKey], d) {
				changed[m.ID] = m
				if m.ID != b.ID {
					out.Settled = append(out.Settled, m.ID)
				}
			}
			// keep registry order so writes are deterministic
			for _, m := range ws.reg.All() {
				if _, ok := changed[m.ID]; ok {
					ws.enqueue(m, repositories.ChangeMoved)
				}
			}
			out.Position = b.Position
			out.Level = d.LevelOf(b.Position.Y)
			s.log.InfoContext(ctx, "bale placed", "warehouse_id", warehouseID, "bale_id", b.ID,
				"x", b.Position.X, "z", b.Position.Z, "level", out.Level, "settled", len(out.Settled))
		} else {
			s.log.DebugContext(ctx, "drop rejected", "warehouse_id", warehouseID, "bale_id", b.ID,
				"reason", res.Reason, "level", res.Level)
		}

		b.Dragging = false
		ws.drag = nil
		ws.clearSelection()

		_, changedLabels, removed := ws.refreshVisibility()
		s.publish(warehouseID, changedLabels, removed)
		out.Labels = ws.labels
		s.metrics.Drop(ctx, warehouseID, string(res.Outcome), string(res.Reason))
		span.SetAttributes(attribute.String("outcome", string(res.Outcome)))
		return nil
	})
	return out, err
}

// SetFilters replaces the vehicle and code prefix criteria, keeping isolation.
func (s *LayoutService) SetFilters(ctx context.Context, warehouseID string, vehicle *domainsvcs.VehicleFilter, codePrefix string) (FilterResult, error) {
	var out FilterResult
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		ws.criteria.Vehicle = vehicle
		ws.criteria.CodePrefix = codePrefix
		out = s.applyCriteria(ws)
		return nil
	})
	return out, err
}

// ToggleIsolation isolates the stack at key, or clears isolation when that stack
// is already isolated.
func (s *LayoutService) ToggleIsolation(ctx context.Context, warehouseID string, key models.StackKey) (FilterResult, error) {
	var out FilterResult
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		ws.criteria = ws.criteria.ToggleIsolation(key)
		out = s.applyCriteria(ws)
		return nil
	})
	return out, err
}

// ClearFilters makes every bale visible again.
func (s *LayoutService) ClearFilters(ctx context.Context, warehouseID string) (FilterResult, error) {
	var out FilterResult
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		ws.criteria = domainsvcs.Criteria{}
		out = s.applyCriteria(ws)
		return nil
	})
	return out, err
}

func (s *LayoutService) applyCriteria(ws *Workspace) FilterResult {
	visible, changed, removed := ws.refreshVisibility()
	s.publish(ws.warehouseID, changed, removed)
	return FilterResult{Criteria: ws.criteria, Visible: visible, Labels: ws.labels}
}

// Labels returns the current stack labels.
func (s *LayoutService) Labels(ctx context.Context, warehouseID string) ([]domainsvcs.StackLabel, error) {
	var out []domainsvcs.StackLabel
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		out = append([]domainsvcs.StackLabel{}, ws.labels...)
		return nil
	})
	return out, err
}

// Layout returns every stack, bales bottom-up, regardless of visibility.
func (s *LayoutService) Layout(ctx context.Context, warehouseID string) ([]StackView, error) {
	var out []StackView
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		layout := domainsvcs.BuildLayout(ws.reg.All())
		out = make([]StackView, 0, len(layout))
		for _, st := range layout {
			v := StackView{Number: st.Number, Key: st.Key, Bales: make([]BaleView, 0, len(st.Bales))}
			for _, b := range st.Bales {
				v.Bales = append(v.Bales, ws.view(b, s.settings.Dimensions))
			}
			out = append(out, v)
		}
		return nil
	})
	return out, err
}

// ExportLayout writes the layout as an XLSX workbook.
func (s *LayoutService) ExportLayout(ctx context.Context, warehouseID string, w io.Writer) error {
	var layout []domainsvcs.StackLayout
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		for _, st := range domainsvcs.BuildLayout(ws.reg.All()) {
			clones := make([]*models.Bale, len(st.Bales))
			for i, b := range st.Bales {
				clones[i] = b.Clone()
			}
			st.Bales = clones
			layout = append(layout, st)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return export.WriteLayoutXLSX(w, warehouseID, layout, s.settings.Dimensions)
}

// Reset discards the in-memory layout and reloads it from the repository,
// bypassing the cache. Observers receive the label difference.
func (s *LayoutService) Reset(ctx context.Context, warehouseID string) ([]domainsvcs.StackLabel, error) {
	if s.cache != nil && warehouseID != "" {
		if err := s.cache.Delete(ctx, warehouseID); err != nil {
			s.log.WarnContext(ctx, "invalidating bale cache failed", "warehouse_id", warehouseID, "error", err)
		}
	}

	var out []domainsvcs.StackLabel
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		prev := ws.labels
		ws.reset()
		if err := s.ensureLoaded(ctx, ws); err != nil {
			return err
		}
		changed, removed := domainsvcs.DiffLabels(prev, ws.labels)
		s.publish(warehouseID, changed, removed)
		out = append([]domainsvcs.StackLabel{}, ws.labels...)
		return nil
	})
	return out, err
}

func toCached(bales []*models.Bale) []pkgcache.CachedBale {
	out := make([]pkgcache.CachedBale, len(bales))
	for i, b := range bales {
		out[i] = pkgcache.CachedBale{
			ID:              b.ID,
			WarehouseID:     b.WarehouseID,
			CodeNumber:      b.CodeNumber.String(),
			VehicleNumber:   b.VehicleNumber,
			WarehouseNumber: b.WarehouseNumber,
			ArrivalDate:     b.ArrivalDate,
			Supplier:        b.Supplier,
			TotalWeight:     b.TotalWeight,
			BaleCount:       b.BaleCount,
			ContainerNumber: b.ContainerNumber,
			X:               b.Position.X,
			Y:               b.Position.Y,
			Z:               b.Position.Z,
			Orientation:     b.Orientation.String(),
			Seq:             i,
		}
	}
	return out
}

func fromCached(cached []pkgcache.CachedBale) ([]*models.Bale, error) {
	out := make([]*models.Bale, 0, len(cached))
	for _, c := range cached {
		o, err := models.ParseOrientation(c.Orientation)
		if err != nil {
			return nil, fmt.Errorf("cached bale %s: %w", c.ID, err)
		}
		b := models.NewBale(c.ID, c.WarehouseID, models.Position{X: c.X, Y: c.Y, Z: c.Z}, o)
		b.CodeNumber = models.CodeNumber(c.CodeNumber)
		b.VehicleNumber = c.VehicleNumber
		b.WarehouseNumber = c.WarehouseNumber
		b.ArrivalDate = c.ArrivalDate
		b.Supplier = c.Supplier
		b.TotalWeight = c.TotalWeight
		b.BaleCount = c.BaleCount
		b.ContainerNumber = c.ContainerNumber
		out = append(out, b)
	}
	return out, nil
}
