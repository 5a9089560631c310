package game

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var colorBackground = rl.Color{R: 20, G: 20, B: 24, A: 255}

// Update handles input and advances the clock by the last frame time.
func (g *Game) Update() {
	g.handleInput()
	g.perfCollector.RecordFrame()

	if g.paused {
		if g.stepOnce {
			g.stepOnce = false
			if err := g.Step(); err != nil {
				slog.Error("step failed", "tick", g.tick, "error", err)
			}
		}
		return
	}

	frame := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	if _, err := g.Advance(frame); err != nil {
		slog.Error("step failed", "tick", g.tick, "error", err)
	}
}

// Draw renders the grid, its occupants and the inspector panel.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	frame := g.Snapshot()
	selected, hasSelected := g.panel.Selected()

	rl.BeginScissorMode(0, 0, int32(g.cam.ViewportW), int32(g.cam.ViewportH))
	rl.BeginMode2D(g.camera2D())
	g.terrainView.Draw()
	g.agentView.DrawPatches(g.visiblePatches())
	g.agentView.DrawAgents(frame, selected, hasSelected, g.config().Rabbit.SightDistance)
	rl.EndMode2D()
	rl.EndScissorMode()

	g.panel.Draw(frame)

	g.drawHUD()

	rl.EndDrawing()
}

// camera2D converts the viewer camera for raylib's 2D mode.
func (g *Game) camera2D() rl.Camera2D {
	return rl.Camera2D{
		Offset: rl.Vector2{X: g.cam.ViewportW / 2, Y: g.cam.ViewportH / 2},
		Target: rl.Vector2{X: g.cam.X, Y: g.cam.Y},
		Zoom:   g.cam.Zoom,
	}
}

// drawHUD renders the status line under the grid.
func (g *Game) drawHUD() {
	y := int32(g.grid.Height()*g.config().Screen.CellSize) + 8
	state := "running"
	if g.paused {
		state = "paused (N to step)"
	}
	rl.DrawText(fmt.Sprintf("tick %d  |  %s  |  speed %dx  |  next in %dms  |  zoom %.1fx  |  FPS %d",
		g.tick, state, g.stepsPerUpdate, g.clock.Remaining().Milliseconds(), g.cam.Zoom, rl.GetFPS()), 10, y, 16, rl.RayWhite)
	rl.DrawText("space: pause  ,/.: speed  click: select  wheel/arrows: zoom/pan  H: reset view  P/W: log perf/world", 10, y+22, 14, rl.Gray)
}
