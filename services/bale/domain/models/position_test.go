package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackKey_AbsorbsFloatNoise(t *testing.T) {
	a := Position{X: 0.1 + 0.2, Z: 14}.Key()
	b := Position{X: 0.3, Z: 14}.Key()
	assert.Equal(t, a, b)
}

func TestStackKey_Order(t *testing.T) {
	assert.True(t, StackKey{X: 1, Z: 9}.Less(StackKey{X: 2, Z: 0}))
	assert.True(t, StackKey{X: 1, Z: 0}.Less(StackKey{X: 1, Z: 9}))
	assert.False(t, StackKey{X: 1, Z: 9}.Less(StackKey{X: 1, Z: 9}))
}

func TestStackKey_String(t *testing.T) {
	assert.Equal(t, "-7,14", StackKey{X: -7, Z: 14}.String())
}

func TestPosition_PlanarDistanceIgnoresHeight(t *testing.T) {
	d := Position{X: 0, Y: 100, Z: 0}.PlanarDistance(Position{X: 3, Y: 0, Z: 4})
	assert.InDelta(t, 5.0, d, 1e-9)
}

func TestCodeNumber_Prefix(t *testing.T) {
	assert.Equal(t, "AB12", CodeNumber("AB12-0042").Prefix())
	assert.Equal(t, "NODASH", CodeNumber("NODASH").Prefix())
	assert.True(t, CodeNumber("AB12-0042").HasPrefix("AB"))
	assert.True(t, CodeNumber("AB12-0042").HasPrefix(""))
	assert.False(t, CodeNumber("XB12-0042").HasPrefix("AB"))
}
