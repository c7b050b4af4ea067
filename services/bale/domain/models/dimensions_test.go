package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDimensions(t *testing.T) {
	d := DefaultDimensions()
	require.NoError(t, d.Validate())
	assert.Equal(t, 7.0, d.Width)
	assert.Equal(t, 4.0, d.Depth)
	assert.Equal(t, 3.0, d.UnitHeight)
	assert.Equal(t, 5, d.MaxStackHeight)
	assert.InDelta(t, 3.5, d.StackingTolerance(), 1e-9)
}

func TestDimensions_Validate(t *testing.T) {
	d := DefaultDimensions()
	d.Depth = 0
	assert.Error(t, d.Validate())

	d = DefaultDimensions()
	d.MaxStackHeight = 0
	assert.Error(t, d.Validate())
}

func TestDimensions_LevelRoundTrip(t *testing.T) {
	d := DefaultDimensions()
	for level := 0; level < 10; level++ {
		y := d.RestingY(level)
		assert.InDelta(t, float64(level)*3+1.5, y, 1e-9)
		assert.Equal(t, level, d.LevelOf(y))
		// small drift from client rounding still maps to the same level
		assert.Equal(t, level, d.LevelOf(y+0.2))
	}
}
