package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/baleyard/services/bale/domain/models"
	"github.com/ghuser/baleyard/services/bale/domain/repositories"
	domainsvcs "github.com/ghuser/baleyard/services/bale/domain/services"
)

func TestPersistence_FailureKeepsLocalStateAndMarksPending(t *testing.T) {
	b := newBale(14, 0, 0)
	repo := &fakeRepo{bales: []*models.Bale{b}, updateErr: errors.New("timeout")}
	s, _ := newTestService(t, repo)
	ctx := context.Background()

	res := move(t, s, b.ID, 0, 0)
	require.Equal(t, domainsvcs.OutcomeCommitted, res.Outcome)

	v, err := s.Bale(ctx, wh, b.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0, v.Position.X, 1e-9, "local state is not rolled back")

	pending, err := s.PendingWrites(ctx, wh)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, b.ID, pending[0].BaleID)
	assert.Equal(t, repositories.ChangeMoved, pending[0].Change)
	assert.Equal(t, 1, pending[0].Attempts)
	assert.Equal(t, "timeout", pending[0].LastError)

	// still failing: marker stays, attempts grow
	rr, err := s.Reconcile(ctx, wh)
	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{Failed: 1}, rr)
	pending, _ = s.PendingWrites(ctx, wh)
	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].Attempts)

	repo.setUpdateErr(nil)
	rr, err = s.Reconcile(ctx, wh)
	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{Replayed: 1}, rr)

	pending, _ = s.PendingWrites(ctx, wh)
	assert.Empty(t, pending)
	updates := repo.Updates()
	require.Len(t, updates, 1)
	assert.Equal(t, v.Position, updates[0].placement.Position)
}

func TestPersistence_LaterSuccessClearsMarker(t *testing.T) {
	b := newBale(14, 0, 0)
	repo := &fakeRepo{bales: []*models.Bale{b}, updateErr: errors.New("timeout")}
	s, _ := newTestService(t, repo)
	ctx := context.Background()

	move(t, s, b.ID, 0, 0)
	repo.setUpdateErr(nil)
	move(t, s, b.ID, 21, 0)

	pending, err := s.PendingWrites(ctx, wh)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestPersistence_StaleSuccessDoesNotClearNewerMarker(t *testing.T) {
	s, _ := newTestService(t, &fakeRepo{})
	ws := newWorkspace(wh)
	id := uuid.New()
	ctx := context.Background()

	s.settle(ctx, ws, placementWrite{warehouseID: wh, baleID: id, version: 2, change: repositories.ChangeRotated}, errors.New("boom"))
	s.settle(ctx, ws, placementWrite{warehouseID: wh, baleID: id, version: 1, change: repositories.ChangeMoved}, nil)
	require.Contains(t, ws.pending, id)
	assert.Equal(t, repositories.ChangeRotated, ws.pending[id].change)

	s.settle(ctx, ws, placementWrite{warehouseID: wh, baleID: id, version: 1, change: repositories.ChangeMoved}, errors.New("late"))
	assert.Equal(t, repositories.ChangeRotated, ws.pending[id].change, "older failure must not downgrade the marker")
	assert.Equal(t, uint64(2), ws.pending[id].version)

	s.settle(ctx, ws, placementWrite{warehouseID: wh, baleID: id, version: 3}, nil)
	assert.NotContains(t, ws.pending, id)
}

func TestPersistence_ReconcileAll(t *testing.T) {
	b := newBale(14, 0, 0)
	repo := &fakeRepo{bales: []*models.Bale{b}, updateErr: errors.New("down")}
	s, _ := newTestService(t, repo)
	ctx := context.Background()

	move(t, s, b.ID, 0, 0)
	repo.setUpdateErr(nil)

	s.ReconcileAll(ctx)

	pending, err := s.PendingWrites(ctx, wh)
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Len(t, repo.Updates(), 1)
}
