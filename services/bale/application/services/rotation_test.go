package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/baleyard/services/bale/application/tween"
	baledomain "github.com/ghuser/baleyard/services/bale/domain"
	"github.com/ghuser/baleyard/services/bale/domain/models"
	"github.com/ghuser/baleyard/services/bale/domain/repositories"
	domainsvcs "github.com/ghuser/baleyard/services/bale/domain/services"
)

func TestRotation_RequiresSelection(t *testing.T) {
	b := newBale(0, 0, 0)
	s, _ := newTestService(t, &fakeRepo{bales: []*models.Bale{b}})

	_, err := s.BeginRotation(context.Background(), wh, b.ID)
	assert.ErrorIs(t, err, baledomain.ErrNotSelected)
}

func TestRotation_BeginAndComplete(t *testing.T) {
	b := newBale(0, 0, 0)
	repo := &fakeRepo{bales: []*models.Bale{b}}
	s, _ := newTestService(t, repo)
	ctx := context.Background()

	_, err := s.Select(ctx, wh, b.ID)
	require.NoError(t, err)

	rot, err := s.BeginRotation(ctx, wh, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Horizontal, rot.From)
	assert.Equal(t, models.Vertical, rot.To)
	assert.Equal(t, 400*time.Millisecond, rot.Tween.Duration)
	assert.InDelta(t, models.Vertical.Angle(), rot.Tween.To, 1e-9)

	v, err := s.Bale(ctx, wh, b.ID)
	require.NoError(t, err)
	assert.True(t, v.Rotating)
	assert.Equal(t, models.Horizontal, v.Orientation)
	assert.Equal(t, models.Vertical, v.EffectiveOrientation)
	assert.Empty(t, repo.Updates(), "nothing is persisted before completion")

	_, err = s.BeginRotation(ctx, wh, b.ID)
	assert.ErrorIs(t, err, baledomain.ErrRotationInFlight)

	v, err = s.CompleteRotation(ctx, wh, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Vertical, v.Orientation)
	assert.False(t, v.Rotating)

	updates := repo.Updates()
	require.Len(t, updates, 1)
	assert.Equal(t, repositories.ChangeRotated, updates[0].change)
	assert.Equal(t, models.Vertical, updates[0].placement.Orientation)

	_, err = s.CompleteRotation(ctx, wh, b.ID)
	assert.ErrorIs(t, err, baledomain.ErrNoRotationInFlight)
	assert.Len(t, repo.Updates(), 1)
}

func TestRotation_DoubleToggleRestoresFootprintAndGrid(t *testing.T) {
	b := newBale(7, 0, 4)
	s, _ := newTestService(t, &fakeRepo{bales: []*models.Bale{b}})
	ctx := context.Background()

	_, err := s.Select(ctx, wh, b.ID)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = s.BeginRotation(ctx, wh, b.ID)
		require.NoError(t, err)
		_, err = s.CompleteRotation(ctx, wh, b.ID)
		require.NoError(t, err)
	}

	v, err := s.Bale(ctx, wh, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Horizontal, v.Orientation)
	assert.Equal(t, domainsvcs.FootprintOf(models.Horizontal, dims), domainsvcs.FootprintOf(v.Orientation, dims))
	x, z := domainsvcs.Snap(v.Position, v.Orientation, dims)
	assert.InDelta(t, b.Position.X, x, 1e-9)
	assert.InDelta(t, b.Position.Z, z, 1e-9)
}

func TestRotation_RejectedWhileDragging(t *testing.T) {
	b := newBale(0, 0, 0)
	s, _ := newTestService(t, &fakeRepo{bales: []*models.Bale{b}})
	ctx := context.Background()

	_, err := s.Select(ctx, wh, b.ID)
	require.NoError(t, err)
	_, err = s.PickUp(ctx, wh, b.ID)
	require.NoError(t, err)

	_, err = s.BeginRotation(ctx, wh, b.ID)
	assert.ErrorIs(t, err, baledomain.ErrBaleDragging)
}

func TestRotation_DropUsesTargetOrientation(t *testing.T) {
	// A vertical bale at x=4 would overlap a horizontal neighbour at x=0.
	neighbour, b := newBale(0, 0, 0), newBale(21, 0, 0)
	repo := &fakeRepo{bales: []*models.Bale{neighbour, b}}
	s, _ := newTestService(t, repo)
	ctx := context.Background()

	_, err := s.Select(ctx, wh, b.ID)
	require.NoError(t, err)
	_, err = s.BeginRotation(ctx, wh, b.ID)
	require.NoError(t, err)
	_, err = s.PickUp(ctx, wh, b.ID)
	require.NoError(t, err)

	res, err := s.Drop(ctx, wh, &models.Position{X: 4, Z: 0})
	require.NoError(t, err)
	assert.Equal(t, domainsvcs.OutcomeRejected, res.Outcome)
	assert.Equal(t, domainsvcs.ReasonCollision, res.Reason)
	assert.Empty(t, repo.Updates())
}

func TestRotation_SchedulerCompletesOnce(t *testing.T) {
	b := newBale(0, 0, 0)
	repo := &fakeRepo{bales: []*models.Bale{b}}
	s, _ := newTestService(t, repo, func(_ *LayoutDeps, st *Settings) {
		st.RotationDuration = time.Millisecond
		st.RotationGrace = time.Millisecond
	})
	ctx := context.Background()

	_, err := s.Select(ctx, wh, b.ID)
	require.NoError(t, err)
	_, err = s.BeginRotation(ctx, wh, b.ID)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(repo.Updates()) == 1 }, 2*time.Second, 5*time.Millisecond)

	_, err = s.CompleteRotation(ctx, wh, b.ID)
	assert.ErrorIs(t, err, baledomain.ErrNoRotationInFlight)

	time.Sleep(20 * time.Millisecond)
	assert.Len(t, repo.Updates(), 1)

	v, err := s.Bale(ctx, wh, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Vertical, v.Orientation)
}

func TestRotation_BlockedByNeighbourInAdjacentRow(t *testing.T) {
	a, b := newBale(0, 0, 0), newBale(0, 0, 4)
	repo := &fakeRepo{bales: []*models.Bale{a, b}}
	s, _ := newTestService(t, repo)
	ctx := context.Background()

	_, err := s.Select(ctx, wh, a.ID)
	require.NoError(t, err)

	_, err = s.BeginRotation(ctx, wh, a.ID)
	assert.ErrorIs(t, err, baledomain.ErrRotationBlocked)

	v, err := s.Bale(ctx, wh, a.ID)
	require.NoError(t, err)
	assert.False(t, v.Rotating)
	assert.Equal(t, models.Horizontal, v.EffectiveOrientation)
	_, err = s.CompleteRotation(ctx, wh, a.ID)
	assert.ErrorIs(t, err, baledomain.ErrNoRotationInFlight)
	assert.Empty(t, repo.Updates())

	require.NoError(t, s.withWorkspace(ctx, wh, func(ws *Workspace) error {
		return domainsvcs.ValidateLayout(ws.reg.All(), dims)
	}))

	res := move(t, s, b.ID, 0, 4)
	assert.Equal(t, domainsvcs.OutcomeCommitted, res.Outcome, "the neighbour can still go back to its own cell")
}

func TestRotation_StackedBaleMayTurn(t *testing.T) {
	bottom, top := newBale(0, 0, 0), newBale(0, 1, 0)
	s, _ := newTestService(t, &fakeRepo{bales: []*models.Bale{bottom, top}})
	ctx := context.Background()

	_, err := s.Select(ctx, wh, bottom.ID)
	require.NoError(t, err)
	_, err = s.BeginRotation(ctx, wh, bottom.ID)
	assert.NoError(t, err)
}

func TestRotation_StaleScheduledCompletionIgnored(t *testing.T) {
	b := newBale(0, 0, 0)
	repo := &fakeRepo{bales: []*models.Bale{b}}
	s, _ := newTestService(t, repo)
	ctx := context.Background()

	_, err := s.Select(ctx, wh, b.ID)
	require.NoError(t, err)
	_, err = s.BeginRotation(ctx, wh, b.ID)
	require.NoError(t, err)

	var first *tween.Handle
	require.NoError(t, s.withWorkspace(ctx, wh, func(ws *Workspace) error {
		first = ws.rotations[b.ID]
		return nil
	}))
	require.NotNil(t, first)

	_, err = s.CompleteRotation(ctx, wh, b.ID)
	require.NoError(t, err)
	_, err = s.BeginRotation(ctx, wh, b.ID)
	require.NoError(t, err)

	// The first timer lost its race with the explicit completion and runs late.
	_, err = s.completeRotation(ctx, wh, b.ID, first)
	assert.ErrorIs(t, err, baledomain.ErrNoRotationInFlight)

	v, err := s.Bale(ctx, wh, b.ID)
	require.NoError(t, err)
	assert.True(t, v.Rotating, "the second toggle is still in flight")
	assert.Equal(t, models.Vertical, v.Orientation)
	assert.Len(t, repo.Updates(), 1)

	v, err = s.CompleteRotation(ctx, wh, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Horizontal, v.Orientation)
	assert.Len(t, repo.Updates(), 2)
}
