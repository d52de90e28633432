package workout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWalkingWithLoad_HeightInMetres(t *testing.T) {
	w, err := NewWalkingWithLoad(9000, 1, 75, 180)
	require.NoError(t, err)
	assert.InDelta(t, 1.8, w.heightM, 1e-9)
	assert.Equal(t, LenStep, w.lenStep)
	assert.Equal(t, "WalkingWithLoad", w.Name())
}

func TestNewSwimming_StrokeLength(t *testing.T) {
	s, err := NewSwimming(720, 1, 80, 25, 40)
	require.NoError(t, err)
	assert.Equal(t, LenStroke, s.lenStep)
	assert.Equal(t, 25.0, s.poolLength)
	assert.Equal(t, 40, s.poolCount)
	assert.Equal(t, 1.0, s.Duration())
}
