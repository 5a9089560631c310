package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warren/inspector"
)

// Occupant palette
var (
	ColorFoliage   = rl.Color{R: 40, G: 200, B: 60, A: 255}
	ColorRabbit    = rl.Color{R: 235, G: 235, B: 230, A: 255}
	ColorHungry    = rl.Color{R: 220, G: 120, B: 90, A: 255}
	ColorSelection = rl.Color{R: 255, G: 210, B: 80, A: 255}
	ColorSight     = rl.Color{R: 255, G: 210, B: 80, A: 40}
	ColorPartner   = rl.Color{R: 240, G: 110, B: 200, A: 255}
)

// PatchCell is a visible foliage patch in grid coordinates.
type PatchCell struct {
	X, Z int
}

// AgentRenderer draws foliage patches and rabbits on top of the terrain.
type AgentRenderer struct {
	cellSize int32
}

// NewAgentRenderer creates an agent renderer.
func NewAgentRenderer(cellSize int32) *AgentRenderer {
	return &AgentRenderer{cellSize: cellSize}
}

// DrawPatches draws each available patch as a small square.
func (r *AgentRenderer) DrawPatches(patches []PatchCell) {
	inset := r.cellSize / 4
	for _, p := range patches {
		rl.DrawRectangle(
			int32(p.X)*r.cellSize+inset,
			int32(p.Z)*r.cellSize+inset,
			r.cellSize-2*inset,
			r.cellSize-2*inset,
			ColorFoliage,
		)
	}
}

// DrawAgents draws every rabbit in the frame. The selected rabbit gets its
// sight window and links to its partner candidates.
func (r *AgentRenderer) DrawAgents(frame *inspector.Frame, selected uint64, hasSelected bool, sight int) {
	if frame == nil {
		return
	}
	radius := float32(r.cellSize) * 0.4

	for i := range frame.Agents {
		a := &frame.Agents[i]
		color := ColorRabbit
		if a.Hunger < 20 || a.Thirst < 20 {
			color = ColorHungry
		}
		rl.DrawCircleV(r.center(a.X, a.Z), radius, color)
	}

	if !hasSelected {
		return
	}
	sel, ok := frame.Find(selected)
	if !ok {
		return
	}

	// Chebyshev window, inclusive
	side := int32(2*sight+1) * r.cellSize
	rl.DrawRectangle(int32(sel.X-sight)*r.cellSize, int32(sel.Z-sight)*r.cellSize, side, side, ColorSight)

	from := r.center(sel.X, sel.Z)
	for _, id := range sel.Partners {
		if p, ok := frame.Find(id); ok {
			rl.DrawLineEx(from, r.center(p.X, p.Z), 1.5, ColorPartner)
		}
	}
	rl.DrawCircleLines(int32(from.X), int32(from.Y), radius+2, ColorSelection)
}

func (r *AgentRenderer) center(x, z int) rl.Vector2 {
	half := float32(r.cellSize) / 2
	return rl.Vector2{X: float32(int32(x)*r.cellSize) + half, Y: float32(int32(z)*r.cellSize) + half}
}
