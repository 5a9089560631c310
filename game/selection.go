package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleSelection selects the rabbit under a left click and clears on right click or Escape.
func (g *Game) handleSelection() {
	if g.panel == nil {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		g.panel.Deselect()
		return
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	if g.panel.Contains(mouse.X, mouse.Y) || !g.cam.InViewport(mouse.X, mouse.Y) {
		return
	}
	wx, wy := g.cam.ScreenToWorld(mouse.X, mouse.Y)
	x, z, ok := g.terrainView.CellAt(wx, wy)
	if !ok {
		return
	}
	if agent, ok := g.Snapshot().At(x, z); ok {
		g.panel.Select(agent.ID)
	}
}
