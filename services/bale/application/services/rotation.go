package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/baleyard/services/bale/application/tween"
	baledomain "github.com/ghuser/baleyard/services/bale/domain"
	"github.com/ghuser/baleyard/services/bale/domain/repositories"
	domainsvcs "github.com/ghuser/baleyard/services/bale/domain/services"
)

// BeginRotation flips the selected bale's effective orientation and returns the
// tween to play. The orientation is committed by CompleteRotation, or by the
// scheduler once the tween and its grace period have elapsed.
func (s *LayoutService) BeginRotation(ctx context.Context, warehouseID string, id uuid.UUID) (RotationResult, error) {
	var out RotationResult
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		b, err := ws.reg.Get(id)
		if err != nil {
			return err
		}
		if ws.selected != id {
			return baledomain.ErrNotSelected
		}
		if b.Dragging {
			return baledomain.ErrBaleDragging
		}
		if b.Rotating() {
			return baledomain.ErrRotationInFlight
		}
		if n := domainsvcs.RotationConflict(b, b.Orientation.Toggle(), ws.reg.Others(id), s.settings.Dimensions); n != nil {
			return fmt.Errorf("%w: %s", baledomain.ErrRotationBlocked, n.ID)
		}
		rot, _ := b.StartRotation(s.now())

		tw := tween.Tween{From: rot.From.Angle(), To: rot.To.Angle(), Duration: s.settings.RotationDuration}
		ws.rotations[id] = s.scheduler.Schedule(tw, func(h *tween.Handle) {
			if _, err := s.completeRotation(context.Background(), warehouseID, id, h); err != nil {
				s.log.Debug("scheduled rotation completion skipped", "warehouse_id", warehouseID, "bale_id", id, "error", err)
			}
		})

		out = RotationResult{BaleID: id, From: rot.From, To: rot.To, Tween: tw}
		s.log.DebugContext(ctx, "rotation started", "warehouse_id", warehouseID, "bale_id", id, "to", rot.To)
		return nil
	})
	return out, err
}

// CompleteRotation commits the in-flight rotation with exactly one write.
// Returns ErrNoRotationInFlight when there is nothing to complete.
func (s *LayoutService) CompleteRotation(ctx context.Context, warehouseID string, id uuid.UUID) (BaleView, error) {
	return s.completeRotation(ctx, warehouseID, id, nil)
}

// completeRotation commits the rotation armed with owner. A nil owner matches any
// rotation in flight; a scheduled completion passes its own handle so it never
// commits a later toggle.
func (s *LayoutService) completeRotation(ctx context.Context, warehouseID string, id uuid.UUID, owner *tween.Handle) (BaleView, error) {
	var out BaleView
	err := s.withWorkspace(ctx, warehouseID, func(ws *Workspace) error {
		b, err := ws.reg.Get(id)
		if err != nil {
			return err
		}
		h, armed := ws.rotations[id]
		if owner != nil && (!armed || h != owner) {
			return baledomain.ErrNoRotationInFlight
		}
		if _, ok := b.FinishRotation(); !ok {
			return baledomain.ErrNoRotationInFlight
		}
		if armed {
			h.Stop()
			delete(ws.rotations, id)
		}

		ws.enqueue(b, repositories.ChangeRotated)
		s.metrics.Rotation(ctx, warehouseID)

		_, changed, removed := ws.refreshVisibility()
		s.publish(warehouseID, changed, removed)
		out = ws.view(b, s.settings.Dimensions)
		return nil
	})
	return out, err
}
