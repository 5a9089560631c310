package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/warren/components"
)

func TestClassifyNoise(t *testing.T) {
	tp := TerrainParams{Scale: 10, WaterThreshold: 0, SandThreshold: 0.15}

	tests := []struct {
		n    float64
		want Voxel
	}{
		{-0.5, VoxelWater},
		{-0.0001, VoxelWater},
		{0, VoxelSand},
		{0.1, VoxelSand},
		{0.15, VoxelGrass},
		{0.9, VoxelGrass},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tp.ClassifyNoise(tt.n), "noise %v", tt.n)
	}
}

func TestGenerateWorldGrid_Deterministic(t *testing.T) {
	params := TerrainParams{Scale: 10, WaterThreshold: 0, SandThreshold: 0.15}

	a := GenerateWorldGrid(NewPerlinNoise(5593487), 60, 60, params)
	b := GenerateWorldGrid(NewPerlinNoise(5593487), 60, 60, params)

	require.Equal(t, 60, a.Width())
	require.Equal(t, 60, a.Height())
	for z := 0; z < 60; z++ {
		for x := 0; x < 60; x++ {
			require.Equal(t, a.Classify(x, z), b.Classify(x, z), "cell (%d,%d)", x, z)
		}
	}
	assert.Equal(t, a.WaterCells(), b.WaterCells())
}

func TestGenerateWorldGrid_LatticeIsSand(t *testing.T) {
	// Perlin is zero on integer lattice points, and zero sits between the thresholds.
	g := GenerateWorldGrid(NewPerlinNoise(1), 21, 21, TerrainParams{Scale: 10, WaterThreshold: 0, SandThreshold: 0.15})
	assert.Equal(t, VoxelSand, g.Classify(0, 0))
	assert.Equal(t, VoxelSand, g.Classify(10, 20))
}

func TestGenerateWorldGrid_Simplex(t *testing.T) {
	noise, err := NewNoise("simplex", 7)
	require.NoError(t, err)
	g := GenerateWorldGrid(noise, 16, 16, TerrainParams{Scale: 5, WaterThreshold: -0.2, SandThreshold: 0.2})

	water, sand, grass := g.Counts()
	assert.Equal(t, 256, water+sand+grass)
	assert.Len(t, g.WaterCells(), water)
}

func TestNewNoise_Unknown(t *testing.T) {
	_, err := NewNoise("worley", 1)
	assert.Error(t, err)
}

func TestWorldGrid_ClassifyOutOfRangePanics(t *testing.T) {
	g := grassGrid(4, 4)
	assert.Panics(t, func() { g.Classify(4, 0) })
	assert.Panics(t, func() { g.Classify(0, -1) })
	assert.NotPanics(t, func() { g.Classify(3, 3) })
}

func TestWorldGrid_Walkable(t *testing.T) {
	g := grassGrid(3, 3, components.Position{X: 1, Z: 1})

	assert.False(t, g.Walkable(1, 1), "water")
	assert.True(t, g.Walkable(0, 0))
	assert.False(t, g.Walkable(-1, 0), "off grid")
	assert.False(t, g.Walkable(0, 3), "off grid")
}

func TestWorldGrid_LegalNeighbors(t *testing.T) {
	water := components.Position{X: 1, Z: 0}
	g := grassGrid(5, 5, water)

	// Corner: clamped to 3 candidates, one of them water
	got := g.LegalNeighbors(nil, components.Position{X: 0, Z: 0})
	assert.Equal(t, []components.Position{{X: 0, Z: 1}, {X: 1, Z: 1}}, got)

	// Interior: all 8
	got = g.LegalNeighbors(nil, components.Position{X: 2, Z: 2})
	assert.Len(t, got, 8)
	assert.NotContains(t, got, components.Position{X: 2, Z: 2})
}

func TestNewWorldGridFromRows_Ragged(t *testing.T) {
	assert.Panics(t, func() {
		NewWorldGridFromRows([][]Voxel{{VoxelGrass, VoxelGrass}, {VoxelGrass}})
	})
}

func TestMustGrid(t *testing.T) {
	assert.Panics(t, func() { mustGrid(nil) })
	assert.Panics(t, func() { mustGrid(&WorldGrid{}) })
}
