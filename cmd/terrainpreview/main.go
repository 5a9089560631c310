// Terrain preview tool - interactive world grid generation with sliders.
//
// Usage: go run ./cmd/terrainpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/renderer"
	"github.com/pthm-cable/warren/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 600
	panelWidth   = windowWidth - previewSize - 30
)

// TerrainParams holds the values the sliders edit.
type TerrainParams struct {
	Scale          float32
	WaterThreshold float32
	SandThreshold  float32
	Seed           int64
	Simplex        bool
}

func fromConfig(cfg *config.Config) TerrainParams {
	return TerrainParams{
		Scale:          float32(cfg.Terrain.Scale),
		WaterThreshold: float32(cfg.Terrain.WaterThreshold),
		SandThreshold:  float32(cfg.Terrain.SandThreshold),
		Seed:           cfg.Terrain.Seed,
		Simplex:        cfg.Terrain.Noise == "simplex",
	}
}

func (p TerrainParams) noiseKind() string {
	if p.Simplex {
		return "simplex"
	}
	return "perlin"
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	width, height := cfg.Terrain.Width, cfg.Terrain.Height

	rl.InitWindow(windowWidth, windowHeight, "Terrain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := fromConfig(cfg)

	img := rl.GenImageColor(width, height, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var grid *systems.WorldGrid
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			grid = generate(params, width, height)
			updateTexture(texture, grid)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(width), Height: float32(height)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Draw stats
		water, sand, grass := grid.Counts()
		total := float32(water + sand + grass)
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Water: %d (%.0f%%)  Sand: %d (%.0f%%)  Grass: %d (%.0f%%)",
			water, 100*float32(water)/total, sand, 100*float32(sand)/total, grass, 100*float32(grass)/total),
			15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Expected patches: %.0f", float64(grass)*cfg.Foliage.Probability), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Terrain Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Scale (cells per noise unit)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"2", "40",
			params.Scale, 2.0, 40.0,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.Scale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newScale != params.Scale {
			params.Scale = newScale
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Water threshold (below is water)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newWater := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"-0.5", "0.5",
			params.WaterThreshold, -0.5, 0.5,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.WaterThreshold), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newWater != params.WaterThreshold {
			params.WaterThreshold = newWater
			if params.SandThreshold < newWater {
				params.SandThreshold = newWater
			}
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Sand threshold (below is sand)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSand := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"-0.5", "0.5",
			params.SandThreshold, -0.5, 0.5,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.SandThreshold), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newSand != params.SandThreshold {
			params.SandThreshold = max(newSand, params.WaterThreshold)
			needsRegen = true
		}
		panelY += 45

		rl.DrawText(fmt.Sprintf("Seed: %d", params.Seed), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 9999999))
			needsRegen = true
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(params.Simplex, "Noise: Simplex", "Noise: Perlin")) {
			params.Simplex = !params.Simplex
			needsRegen = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = fromConfig(cfg)
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yaml := params.yaml()
		for _, line := range yaml {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yaml {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

func (p TerrainParams) yaml() []string {
	return []string{
		"terrain:",
		fmt.Sprintf("  seed: %d", p.Seed),
		fmt.Sprintf("  noise: %s", p.noiseKind()),
		fmt.Sprintf("  scale: %.1f", p.Scale),
		fmt.Sprintf("  water_threshold: %.2f", p.WaterThreshold),
		fmt.Sprintf("  sand_threshold: %.2f", p.SandThreshold),
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// generate builds a grid the same way the simulation does.
func generate(p TerrainParams, width, height int) *systems.WorldGrid {
	noise, err := systems.NewNoise(p.noiseKind(), p.Seed)
	if err != nil {
		log.Fatalf("noise: %v", err)
	}
	return systems.GenerateWorldGrid(noise, width, height, systems.TerrainParams{
		Scale:          float64(p.Scale),
		WaterThreshold: float64(p.WaterThreshold),
		SandThreshold:  float64(p.SandThreshold),
	})
}

// updateTexture updates the GPU texture from the grid
func updateTexture(texture rl.Texture2D, grid *systems.WorldGrid) {
	pixels := make([]color.RGBA, grid.Width()*grid.Height())
	for z := 0; z < grid.Height(); z++ {
		for x := 0; x < grid.Width(); x++ {
			c := renderer.VoxelColor(grid.Classify(x, z), x, z)
			pixels[z*grid.Width()+x] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
		}
	}
	rl.UpdateTexture(texture, pixels)
}
