package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ghuser/baleyard/services/bale/domain/models"
)

func filterFixture() []*models.Bale {
	mk := func(code, vehicle, container string, x float64) *models.Bale {
		b := newBale(x, 0, 0, models.Horizontal)
		b.CodeNumber = models.CodeNumber(code)
		b.VehicleNumber = vehicle
		b.ContainerNumber = container
		return b
	}
	return []*models.Bale{
		mk("AB1-001", "V1", "C1", 0),
		mk("AB1-002", "V1", "C1", 7),
		mk("AB2-001", "V1", "C2", 14),
		mk("XY1-001", "V1", "C1", 21),
		mk("AB3-001", "V2", "C1", 28),
	}
}

func ids(bales []*models.Bale, idx ...int) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(idx))
	for _, i := range idx {
		out = append(out, bales[i].ID)
	}
	return out
}

func TestApplyVisibility_NoCriteriaShowsAll(t *testing.T) {
	bales := filterFixture()
	bales[2].Visible = false

	got := ApplyVisibility(bales, Criteria{})

	assert.Equal(t, ids(bales, 0, 1, 2, 3, 4), got)
	assert.True(t, bales[2].Visible)
}

func TestApplyVisibility_CombinesWithAnd(t *testing.T) {
	bales := filterFixture()
	c := Criteria{
		Vehicle:    &VehicleFilter{VehicleNumber: "V1", ContainerNumber: "C1"},
		CodePrefix: "AB",
	}

	got := ApplyVisibility(bales, c)

	assert.Equal(t, ids(bales, 0, 1), got)
	assert.False(t, bales[3].Visible)
	assert.Equal(t, 2, c.Active())
}

func TestApplyVisibility_RemovingCriterionNeverShrinks(t *testing.T) {
	bales := filterFixture()
	both := Criteria{
		Vehicle:    &VehicleFilter{VehicleNumber: "V1", ContainerNumber: "C1"},
		CodePrefix: "AB",
	}
	narrowed := ApplyVisibility(bales, both)

	for _, relaxed := range []Criteria{
		{Vehicle: both.Vehicle},
		{CodePrefix: both.CodePrefix},
		{},
	} {
		wider := ApplyVisibility(bales, relaxed)
		assert.Subset(t, wider, narrowed)
		assert.GreaterOrEqual(t, len(wider), len(narrowed))
	}
}

func TestApplyVisibility_Deterministic(t *testing.T) {
	bales := filterFixture()
	c := Criteria{CodePrefix: "AB1"}
	first := ApplyVisibility(bales, c)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ApplyVisibility(bales, c))
	}
}

func TestCriteria_ToggleIsolationRoundTrip(t *testing.T) {
	bales := filterFixture()
	base := Criteria{CodePrefix: "AB"}
	before := ApplyVisibility(bales, base)

	key := bales[1].Position.Key()
	isolated := base.ToggleIsolation(key)
	assert.Equal(t, ids(bales, 1), ApplyVisibility(bales, isolated))

	restored := isolated.ToggleIsolation(key)
	assert.Nil(t, restored.Isolation)
	assert.Equal(t, before, ApplyVisibility(bales, restored))
}

func TestCriteria_ToggleIsolationSwitchesStack(t *testing.T) {
	bales := filterFixture()
	c := Criteria{}.ToggleIsolation(bales[0].Position.Key())
	c = c.ToggleIsolation(bales[4].Position.Key())

	assert.Equal(t, ids(bales, 4), ApplyVisibility(bales, c))
}

func TestCriteria_IsolationCombinesWithOtherFilters(t *testing.T) {
	bales := filterFixture()
	c := Criteria{CodePrefix: "XY"}.ToggleIsolation(bales[0].Position.Key())

	assert.Empty(t, ApplyVisibility(bales, c))
}
