package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statusLines := flag.Bool("status-lines", false, "Print one line per rabbit every tick (default from config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed for agent behaviour (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N gated ticks (0 = unlimited)")
	frameMS := flag.Int("frame-ms", 0, "Headless frame length in ms fed to the clock (0 = step every iteration)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Clock speed multiplier (graphical mode and -frame-ms pacing)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// The flag only overrides config when given explicitly
	showStatus := cfg.Telemetry.StatusLines
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "status-lines" {
			showStatus = *statusLines
		}
	})

	// Build game options
	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatusLines:    showStatus,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		g, err := game.NewGame(opts)
		if err != nil {
			slog.Error("failed to create simulation", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"max_ticks", *maxTicks,
			"frame_ms", *frameMS,
		)

		frame := time.Duration(*frameMS) * time.Millisecond
		for {
			var err error
			if frame > 0 {
				_, err = g.Advance(frame)
			} else {
				err = g.Step()
			}
			if err != nil {
				slog.Error("simulation failed", "tick", g.Tick(), "error", err)
				return
			}

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
			if g.Extinct() {
				return
			}
		}
	} else {
		// Graphical mode
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Warren")
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		g, err := game.NewGame(opts)
		if err != nil {
			slog.Error("failed to create simulation", "error", err)
			return
		}
		defer g.Unload()

		for !rl.WindowShouldClose() {
			g.Update()
			g.Draw()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				break
			}
		}
	}
}
