package core

import (
	"testing"

	"github.com/elektrokombinacija/nanobot-fab/internal/geom"
	"github.com/stretchr/testify/require"
)

func TestMatrixFillVoid(t *testing.T) {
	m := NewMatrix(4)
	c := geom.Coord{X: 1, Y: 2, Z: 3}

	require.False(t, m.IsFull(c))
	require.NoError(t, m.Fill(c))
	require.True(t, m.IsFull(c))
	require.Error(t, m.Fill(c), "filling an already-full voxel must be rejected")

	require.NoError(t, m.Void(c))
	require.False(t, m.IsFull(c))
	require.Error(t, m.Void(c), "voiding an already-void voxel must be rejected")
}

func TestNewMatrixFromTargets(t *testing.T) {
	targets := map[geom.Coord]bool{
		{X: 0, Y: 0, Z: 0}: true,
		{X: 1, Y: 1, Z: 1}: true,
	}
	m := NewMatrixFromTargets(3, targets)
	require.True(t, m.IsFull(geom.Coord{X: 0, Y: 0, Z: 0}))
	require.True(t, m.IsFull(geom.Coord{X: 1, Y: 1, Z: 1}))
	require.False(t, m.IsFull(geom.Coord{X: 2, Y: 2, Z: 2}))
}
