package systems

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/warren/components"
)

// ErrNoTerrain is the invariant violation raised when a stage runs without a world grid.
var ErrNoTerrain = errors.New("world grid missing or not populated")

// Voxel is the terrain classification of one grid cell.
type Voxel uint8

const (
	VoxelWater Voxel = iota
	VoxelSand
	VoxelGrass
)

// String returns the display name for a Voxel.
func (v Voxel) String() string {
	switch v {
	case VoxelWater:
		return "water"
	case VoxelSand:
		return "sand"
	case VoxelGrass:
		return "grass"
	default:
		return "unknown"
	}
}

// Walkable reports whether agents may stand on the voxel.
func (v Voxel) Walkable() bool {
	return v == VoxelSand || v == VoxelGrass
}

// TerrainParams controls noise sampling and classification.
type TerrainParams struct {
	Scale          float64 // noise is sampled at cell / Scale
	WaterThreshold float64 // below: water
	SandThreshold  float64 // below: sand, otherwise grass
}

// ClassifyNoise maps a noise value to a voxel using the two thresholds.
func (tp TerrainParams) ClassifyNoise(n float64) Voxel {
	switch {
	case n < tp.WaterThreshold:
		return VoxelWater
	case n < tp.SandThreshold:
		return VoxelSand
	default:
		return VoxelGrass
	}
}

// WorldGrid is the immutable terrain classification of the map.
type WorldGrid struct {
	width  int
	height int
	cells  []Voxel // row-major: z*width + x
	water  []components.Position
}

// GenerateWorldGrid samples noise once per cell and classifies it.
// The result is fully determined by the noise source, the size and the params.
func GenerateWorldGrid(noise Noise2D, width, height int, params TerrainParams) *WorldGrid {
	g := &WorldGrid{
		width:  width,
		height: height,
		cells:  make([]Voxel, width*height),
	}

	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			n := noise.Eval2(float64(x)/params.Scale, float64(z)/params.Scale)
			v := params.ClassifyNoise(n)
			g.cells[z*width+x] = v
			if v == VoxelWater {
				g.water = append(g.water, components.Position{X: x, Z: z})
			}
		}
	}

	return g
}

// NewWorldGridFromRows builds a grid from explicit rows, indexed [z][x].
// Used by tools and tests that need hand-authored terrain.
func NewWorldGridFromRows(rows [][]Voxel) *WorldGrid {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	g := &WorldGrid{
		width:  width,
		height: height,
		cells:  make([]Voxel, width*height),
	}
	for z, row := range rows {
		if len(row) != width {
			panic(fmt.Sprintf("systems: terrain row %d has %d cells, want %d", z, len(row), width))
		}
		for x, v := range row {
			g.cells[z*width+x] = v
			if v == VoxelWater {
				g.water = append(g.water, components.Position{X: x, Z: z})
			}
		}
	}
	return g
}

// Width returns the number of columns.
func (g *WorldGrid) Width() int { return g.width }

// Height returns the number of rows.
func (g *WorldGrid) Height() int { return g.height }

// InBounds reports whether (x, z) is on the grid.
func (g *WorldGrid) InBounds(x, z int) bool {
	return x >= 0 && x < g.width && z >= 0 && z < g.height
}

// Classify returns the voxel at (x, z).
// Out-of-range coordinates are a programming error and panic.
func (g *WorldGrid) Classify(x, z int) Voxel {
	if !g.InBounds(x, z) {
		panic(fmt.Sprintf("systems: classify (%d,%d) outside %dx%d grid", x, z, g.width, g.height))
	}
	return g.cells[z*g.width+x]
}

// At is Classify for a Position.
func (g *WorldGrid) At(p components.Position) Voxel {
	return g.Classify(p.X, p.Z)
}

// Walkable reports whether (x, z) is on the grid and not water.
func (g *WorldGrid) Walkable(x, z int) bool {
	return g.InBounds(x, z) && g.cells[z*g.width+x].Walkable()
}

// WaterCells returns every water cell in row-major order.
// The slice is shared and must not be modified.
func (g *WorldGrid) WaterCells() []components.Position {
	return g.water
}

// Counts returns the number of cells of each voxel type.
func (g *WorldGrid) Counts() (water, sand, grass int) {
	for _, v := range g.cells {
		switch v {
		case VoxelWater:
			water++
		case VoxelSand:
			sand++
		case VoxelGrass:
			grass++
		}
	}
	return water, sand, grass
}

// LegalNeighbors appends the walkable cells of the 3x3 neighbourhood around p
// (clamped to the grid, centre excluded) to dst in row-major order.
func (g *WorldGrid) LegalNeighbors(dst []components.Position, p components.Position) []components.Position {
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dz == 0 {
				continue
			}
			x, z := p.X+dx, p.Z+dz
			if g.Walkable(x, z) {
				dst = append(dst, components.Position{X: x, Z: z})
			}
		}
	}
	return dst
}

// mustGrid aborts when a stage is run before terrain exists.
func mustGrid(g *WorldGrid) *WorldGrid {
	if g == nil || len(g.cells) == 0 {
		panic(fmt.Sprintf("systems: %v", ErrNoTerrain))
	}
	return g
}
