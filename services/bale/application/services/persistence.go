package services

import (
	"context"
	"time"
)

// write sends one placement to the repository and updates the bale's pending
// marker. A failure keeps the local state and leaves a marker for Reconcile.
func (s *LayoutService) write(ws *Workspace, w placementWrite) {
	ctx, cancel := context.WithTimeout(context.Background(), s.settings.PersistTimeout)
	defer cancel()

	err := s.repo.UpdatePlacement(ctx, w.warehouseID, w.baleID, w.placement, w.change)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	s.settle(ctx, ws, w, err)
}

// settle records the outcome of a write. Markers only move forward: an older
// write finishing late never clears a marker left by a newer one.
func (s *LayoutService) settle(ctx context.Context, ws *Workspace, w placementWrite, err error) {
	p, marked := ws.pending[w.baleID]
	if err == nil {
		if marked && p.version <= w.version {
			delete(ws.pending, w.baleID)
			s.metrics.PendingDelta(ctx, w.warehouseID, -1)
		}
		return
	}

	s.log.ErrorContext(ctx, "persisting bale placement failed",
		"warehouse_id", w.warehouseID, "bale_id", w.baleID, "change", w.change, "error", err)
	s.metrics.PersistFailed(ctx, w.warehouseID, string(w.change))

	if !marked {
		p = &pendingWrite{since: s.now()}
		ws.pending[w.baleID] = p
		s.metrics.PendingDelta(ctx, w.warehouseID, 1)
	}
	if w.version >= p.version {
		p.version = w.version
		p.change = w.change
	}
	p.attempts++
	p.lastError = err.Error()
}

// PendingWrites lists the bales whose last write failed, in registry order.
func (s *LayoutService) PendingWrites(ctx context.Context, warehouseID string) ([]PendingWriteView, error) {
	var out []PendingWriteView
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		out = ws.pendingViews()
		return nil
	})
	return out, err
}

// Reconcile replays every pending write of the warehouse from the current local
// state and waits for the results.
func (s *LayoutService) Reconcile(ctx context.Context, warehouseID string) (ReconcileResult, error) {
	var writes []placementWrite
	var ws *Workspace
	err := s.withWorkspace(ctx, warehouseID, func(w *Workspace) error {
		ws = w
		for _, b := range w.reg.All() {
			p, ok := w.pending[b.ID]
			if !ok {
				continue
			}
			w.versions[b.ID]++
			writes = append(writes, placementWrite{
				warehouseID: warehouseID,
				baleID:      b.ID,
				placement:   b.Placement(),
				change:      p.change,
				version:     w.versions[b.ID],
			})
		}
		return nil
	})
	if err != nil {
		return ReconcileResult{}, err
	}

	var res ReconcileResult
	for _, w := range writes {
		wctx, cancel := context.WithTimeout(ctx, s.settings.PersistTimeout)
		werr := s.repo.UpdatePlacement(wctx, w.warehouseID, w.baleID, w.placement, w.change)
		cancel()

		ws.mu.Lock()
		s.settle(ctx, ws, w, werr)
		ws.mu.Unlock()

		if werr != nil {
			res.Failed++
		} else {
			res.Replayed++
		}
	}
	if len(writes) > 0 {
		s.log.InfoContext(ctx, "reconciled pending writes", "warehouse_id", warehouseID,
			"replayed", res.Replayed, "failed", res.Failed)
	}
	return res, nil
}

// ReconcileAll runs Reconcile for every loaded warehouse.
func (s *LayoutService) ReconcileAll(ctx context.Context) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.workspaces))
	for id := range s.workspaces {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.Reconcile(ctx, id); err != nil {
			s.log.WarnContext(ctx, "reconcile failed", "warehouse_id", id, "error", err)
		}
	}
}

// RunReconciler calls ReconcileAll every interval until ctx is done.
func (s *LayoutService) RunReconciler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.ReconcileAll(ctx)
		}
	}
}
