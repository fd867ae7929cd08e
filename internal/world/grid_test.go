package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/legion-shores/internal/errx"
)

func TestTerrainPredicates(t *testing.T) {
	cases := []struct {
		t        Terrain
		walkable bool
		arid     bool
		aquatic  bool
	}{
		{TerrainOcean, false, false, true},
		{TerrainSwamp, false, false, true},
		{TerrainWetlands, true, false, false},
		{TerrainPlains, true, false, false},
		{TerrainMountains, false, false, false},
		{TerrainForest, true, false, false},
		{TerrainDesert, true, true, false},
		{TerrainShallow, false, false, true},
		{TerrainDryForest, true, true, false},
		{TerrainCloud, false, false, false},
		{TerrainUpperCloud, false, false, false},
		{TerrainRiver, false, false, true},
		{TerrainNull, false, false, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.walkable, tc.t.IsWalkable(), tc.t.String())
		assert.Equal(t, tc.arid, tc.t.IsArid(), tc.t.String())
		assert.Equal(t, tc.aquatic, tc.t.IsAquatic(), tc.t.String())
		assert.Equal(t, tc.walkable && tc.arid, tc.t.IsWalkableArid(), tc.t.String())
		assert.Equal(t, tc.walkable && !tc.arid, tc.t.IsWalkableNonArid(), tc.t.String())
	}
	assert.False(t, TerrainRiver.Finished())
	assert.False(t, TerrainNull.Finished())
	assert.True(t, TerrainUpperCloud.Finished())
	assert.False(t, Terrain(13).Valid())
	assert.Equal(t, "DryForest", TerrainDryForest.String())
}

func TestGridFromCells(t *testing.T) {
	cells := make([]Terrain, 8*8)
	cells[9] = TerrainPlains
	g, err := GridFromCells(8, cells)
	require.NoError(t, err)
	assert.Equal(t, TerrainPlains, g.At(1, 1))

	cells[9] = TerrainOcean
	assert.Equal(t, TerrainPlains, g.At(1, 1), "cells must be copied")

	_, err = GridFromCells(8, cells[:10])
	require.ErrorIs(t, err, errx.ErrStructural)

	cells[3] = Terrain(99)
	_, err = GridFromCells(8, cells)
	require.ErrorIs(t, err, errx.ErrStructural)
}

func TestCountNear(t *testing.T) {
	g, err := NewGrid(8)
	require.NoError(t, err)
	g.Fill(TerrainPlains)
	g.Set(3, 3, TerrainOcean)
	g.Set(4, 4, TerrainMountains)

	assert.Equal(t, 1, g.CountNear(3, 4, TerrainMountains, TerrainMountains))
	assert.Equal(t, 6, g.CountNear(3, 4, TerrainPlains, TerrainPlains))
	assert.Equal(t, 8, g.CountNear(3, 4, TerrainOcean, TerrainMountains))
	// Corners only see three neighbours.
	assert.Equal(t, 3, g.CountNear(0, 0, TerrainPlains, TerrainPlains))
	assert.Equal(t, TerrainNull, g.At(-1, 0))
}
