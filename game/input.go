package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Single step while paused
	if g.paused && rl.IsKeyPressed(rl.KeyN) {
		g.stepOnce = true
	}

	// Clock speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	// Console dumps
	if rl.IsKeyPressed(rl.KeyP) {
		g.logPerfStats()
	}
	if rl.IsKeyPressed(rl.KeyW) {
		g.logWorldState()
	}

	g.handleCamera()
	g.handleSelection()
}

// camPanSpeed is the arrow-key pan rate in screen pixels per frame.
const camPanSpeed = 8

// handleCamera zooms with the mouse wheel and pans with arrows or a middle-button drag.
func (g *Game) handleCamera() {
	if g.cam == nil {
		return
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.cam.ZoomBy(1 + 0.1*wheel)
	}

	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		g.cam.Pan(-d.X, -d.Y)
	}

	var dx, dy float32
	if rl.IsKeyDown(rl.KeyLeft) {
		dx -= camPanSpeed
	}
	if rl.IsKeyDown(rl.KeyRight) {
		dx += camPanSpeed
	}
	if rl.IsKeyDown(rl.KeyUp) {
		dy -= camPanSpeed
	}
	if rl.IsKeyDown(rl.KeyDown) {
		dy += camPanSpeed
	}
	if dx != 0 || dy != 0 {
		g.cam.Pan(dx, dy)
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.cam.Reset()
	}
}
