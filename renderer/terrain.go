// Package renderer draws the world grid and its occupants with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warren/systems"
)

// Terrain palette
var (
	ColorWater = rl.Color{R: 52, G: 101, B: 164, A: 255}
	ColorSand  = rl.Color{R: 214, G: 196, B: 140, A: 255}
	ColorGrass = rl.Color{R: 86, G: 140, B: 70, A: 255}
)

// VoxelColor returns the base color of a cell, with a small deterministic
// brightness jitter so adjacent cells of the same type stay distinguishable.
func VoxelColor(v systems.Voxel, x, z int) rl.Color {
	var c rl.Color
	switch v {
	case systems.VoxelWater:
		c = ColorWater
	case systems.VoxelSand:
		c = ColorSand
	default:
		c = ColorGrass
	}
	// Cheap spatial hash in [-8, 7]
	h := int((uint32(x)*73856093 ^ uint32(z)*19349663) % 16) - 8
	return rl.Color{R: shade(c.R, h), G: shade(c.G, h), B: shade(c.B, h), A: 255}
}

func shade(v uint8, d int) uint8 {
	n := int(v) + d
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// TerrainRenderer bakes the static grid into a texture once and draws it scaled.
type TerrainRenderer struct {
	cellSize    int32
	texture     rl.Texture2D
	width       int32
	height      int32
	initialized bool
}

// NewTerrainRenderer creates a terrain renderer. Init must run after the window exists.
func NewTerrainRenderer(cellSize int32) *TerrainRenderer {
	return &TerrainRenderer{cellSize: cellSize}
}

// Init bakes the grid into a texture with one pixel per cell.
func (r *TerrainRenderer) Init(grid *systems.WorldGrid) {
	if r.initialized || grid == nil {
		return
	}
	r.width = int32(grid.Width())
	r.height = int32(grid.Height())

	img := rl.GenImageColor(int(r.width), int(r.height), rl.Black)
	for z := 0; z < grid.Height(); z++ {
		for x := 0; x < grid.Width(); x++ {
			rl.ImageDrawPixel(img, int32(x), int32(z), VoxelColor(grid.Classify(x, z), x, z))
		}
	}
	r.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(r.texture, rl.FilterPoint)
	r.initialized = true
}

// Draw renders the baked terrain at the origin.
func (r *TerrainRenderer) Draw() {
	if !r.initialized {
		return
	}
	rl.DrawTexturePro(
		r.texture,
		rl.Rectangle{X: 0, Y: 0, Width: float32(r.width), Height: float32(r.height)},
		rl.Rectangle{X: 0, Y: 0, Width: float32(r.width * r.cellSize), Height: float32(r.height * r.cellSize)},
		rl.Vector2{X: 0, Y: 0},
		0,
		rl.White,
	)
}

// CellAt converts a screen point to grid coordinates.
func (r *TerrainRenderer) CellAt(mx, my float32) (x, z int, ok bool) {
	if r.cellSize <= 0 || mx < 0 || my < 0 {
		return 0, 0, false
	}
	x = int(mx) / int(r.cellSize)
	z = int(my) / int(r.cellSize)
	if x >= int(r.width) || z >= int(r.height) {
		return 0, 0, false
	}
	return x, z, true
}

// Unload releases the texture.
func (r *TerrainRenderer) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.texture)
		r.initialized = false
	}
}
