// Package game wires the rabbit simulation together: terrain, foliage, agents,
// the gated pipeline, telemetry and the optional viewer.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/camera"
	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/inspector"
	"github.com/pthm-cable/warren/renderer"
	"github.com/pthm-cable/warren/systems"
	"github.com/pthm-cable/warren/telemetry"
)

// ErrNoGrass is returned when the initial population has nowhere to stand.
var ErrNoGrass = errors.New("no grass cells for initial population")

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatusLines    bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int // clock speed multiplier applied by Advance

	// Config overrides config.Cfg() when set.
	Config *config.Config
	// Grid replaces generated terrain when set.
	Grid *systems.WorldGrid
	// SkipInitialPopulation leaves the registry empty so callers can place agents.
	SkipInitialPopulation bool
}

// Game holds the complete simulation state.
type Game struct {
	cfg     *config.Config
	world   *ecs.World
	rng     *rand.Rand
	rngSeed int64

	grid     *systems.WorldGrid
	foliage  *systems.FoliageField
	pop      *systems.Population
	store    *systems.RabbitStore
	clock    *systems.TickClock
	registry *systems.SystemRegistry

	// Gated systems
	perception *systems.PerceptionSystem
	behavior   *systems.BehaviorSystem
	breeding   *systems.BreedingSystem
	lifecycle  *systems.LifecycleSystem

	// Telemetry
	collector       *telemetry.Collector
	lifetimeTracker *telemetry.LifetimeTracker
	perfCollector   *telemetry.PerfCollector
	outputManager   *telemetry.OutputManager
	logStats        bool
	statusLines     bool
	statsCallback   func(telemetry.WindowStats)

	// Viewer (nil when headless)
	cam         *camera.Camera
	terrainView *renderer.TerrainRenderer
	agentView   *renderer.AgentRenderer
	panel       *inspector.Panel
	frame       *inspector.Frame

	// State
	tick           int32
	last           TickReport
	nextInitialID  uint64
	paused         bool
	stepOnce       bool
	extinct        bool
	stepsPerUpdate int
	headless       bool
}

// NewGame builds a simulation from opts.
// In graphical mode the raylib window must already be open.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	grid := opts.Grid
	if grid == nil {
		noise, err := systems.NewNoise(cfg.Terrain.Noise, cfg.Terrain.Seed)
		if err != nil {
			return nil, fmt.Errorf("terrain noise: %w", err)
		}
		grid = systems.GenerateWorldGrid(noise, cfg.Terrain.Width, cfg.Terrain.Height, systems.TerrainParams{
			Scale:          cfg.Terrain.Scale,
			WaterThreshold: cfg.Terrain.WaterThreshold,
			SandThreshold:  cfg.Terrain.SandThreshold,
		})
	}

	speed := opts.StepsPerUpdate
	if speed < 1 {
		speed = 1
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))
	pop := systems.NewPopulation(cfg.Breeding.PopulationCap)
	store := systems.NewRabbitStore(world, pop)
	foliage := systems.NewFoliageField(world, cfg.Foliage.RegenThreshold)
	registry := systems.NewSystemRegistry()

	g := &Game{
		cfg:             cfg,
		world:           world,
		rng:             rng,
		rngSeed:         opts.Seed,
		grid:            grid,
		foliage:         foliage,
		pop:             pop,
		store:           store,
		clock:           systems.NewTickClock(cfg.Derived.ClockPeriod),
		registry:        registry,
		collector:       telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		lifetimeTracker: telemetry.NewLifetimeTracker(),
		perfCollector:   telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow, registry.IDs()),
		logStats:        opts.LogStats,
		statusLines:     opts.StatusLines,
		stepsPerUpdate:  speed,
		headless:        opts.Headless,
	}

	template := systems.RabbitTemplate{
		SightDistance:         cfg.Rabbit.SightDistance,
		SatisfactionThreshold: cfg.Rabbit.SatisfactionThreshold,
		FullThreshold:         cfg.Rabbit.FullThreshold,
	}
	g.perception = systems.NewPerceptionSystem(store, foliage, grid, cfg.Breeding.MinPartnerAge)
	g.behavior = systems.NewBehaviorSystem(store, foliage, grid, rng, systems.BehaviorParams{
		MinSeekerAge:       cfg.Breeding.MinSeekerAge,
		Nutrition:          cfg.Foliage.Nutrition,
		DrinkAmount:        cfg.Rabbit.DrinkAmount,
		VitalCap:           cfg.Rabbit.VitalCap,
		DecayInAllBranches: cfg.Rabbit.DecayInAllBranches,
	})
	g.breeding = systems.NewBreedingSystem(store, grid, rng, systems.BreedingParams{
		Cooldown:        cfg.Breeding.Cooldown,
		LitterMin:       cfg.Breeding.LitterMin,
		LitterMax:       cfg.Breeding.LitterMax,
		OffspringHunger: cfg.Breeding.OffspringHunger,
		OffspringThirst: cfg.Breeding.OffspringThirst,
		Template:        template,
	})
	g.lifecycle = systems.NewLifecycleSystem(store, foliage, rng, systems.LifecycleParams{
		AgingInterval: cfg.Lifecycle.AgingInterval,
		SenescenceAge: cfg.Lifecycle.SenescenceAge,
		MaxAge:        cfg.Lifecycle.MaxAge,
	})

	patches := foliage.Seed(grid, cfg.Foliage.Probability, rng)

	if !opts.SkipInitialPopulation {
		if err := g.spawnInitialPopulation(cfg.Rabbit.InitialPopulation); err != nil {
			return nil, err
		}
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	if !opts.Headless {
		cell := int32(cfg.Screen.CellSize)
		g.terrainView = renderer.NewTerrainRenderer(cell)
		g.terrainView.Init(grid)
		g.agentView = renderer.NewAgentRenderer(cell)
		worldW := float32(int32(grid.Width()) * cell)
		worldH := float32(int32(grid.Height()) * cell)
		g.cam = camera.New(worldW, worldH, worldW, worldH)
		g.panel = inspector.NewPanel(int32(worldW), 0, int32(cfg.Screen.PanelWidth), int32(cfg.Screen.Height))
	}

	water, sand, grass := grid.Counts()
	slog.Info("simulation_start",
		"seed", opts.Seed,
		"terrain_seed", cfg.Terrain.Seed,
		"grid", fmt.Sprintf("%dx%d", grid.Width(), grid.Height()),
		"water", water,
		"sand", sand,
		"grass", grass,
		"patches", patches,
		"rabbits", pop.Len(),
	)

	return g, nil
}

// config returns the game's configuration.
func (g *Game) config() *config.Config {
	return g.cfg
}

// Advance feeds one frame's elapsed time, scaled by the speed multiplier, to
// the clock and returns how many gated ticks ran. At 1x the clock fires at
// most once per frame; above 1x the periods a frame spans are all run.
func (g *Game) Advance(delta time.Duration) (int, error) {
	if !g.clock.Advance(delta * time.Duration(g.stepsPerUpdate)) {
		return 0, nil
	}
	steps := 1
	if g.stepsPerUpdate > 1 {
		steps = g.clock.TimesFinished()
	}
	for i := 0; i < steps; i++ {
		if err := g.Step(); err != nil {
			return i, err
		}
	}
	return steps, nil
}

// SetStatsCallback registers a function called with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Tick returns the number of gated ticks run.
func (g *Game) Tick() int32 {
	return g.tick
}

// Grid returns the terrain.
func (g *Game) Grid() *systems.WorldGrid {
	return g.grid
}

// Foliage returns the food patches.
func (g *Game) Foliage() *systems.FoliageField {
	return g.foliage
}

// Store returns the rabbit store.
func (g *Game) Store() *systems.RabbitStore {
	return g.store
}

// Population returns the live-agent registry.
func (g *Game) Population() *systems.Population {
	return g.pop
}

// Clock returns the simulation gate.
func (g *Game) Clock() *systems.TickClock {
	return g.clock
}

// LastTick returns what happened during the most recent gated tick.
func (g *Game) LastTick() TickReport {
	return g.last
}

// Extinct reports whether the population has died out.
func (g *Game) Extinct() bool {
	return g.extinct
}

// Unload releases resources.
func (g *Game) Unload() {
	if g.terrainView != nil {
		g.terrainView.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// spawnInitialPopulation places n rabbits on random grass cells.
func (g *Game) spawnInitialPopulation(n int) error {
	if n == 0 {
		return nil
	}
	var grass []components.Position
	for z := 0; z < g.grid.Height(); z++ {
		for x := 0; x < g.grid.Width(); x++ {
			if g.grid.Classify(x, z) == systems.VoxelGrass {
				grass = append(grass, components.Position{X: x, Z: z})
			}
		}
	}
	if len(grass) == 0 {
		return ErrNoGrass
	}

	cfg := g.config()
	for i := 0; i < n && !g.pop.AtCap(); i++ {
		pos := grass[g.rng.Intn(len(grass))]
		g.SpawnRabbit(pos, components.Vitals{Hunger: cfg.Rabbit.InitialHunger, Thirst: cfg.Rabbit.InitialThirst}, 0)
	}
	return nil
}

// SpawnRabbit creates a founder rabbit with the next sequential identifier.
// It bypasses breeding, so the caller is responsible for the cap.
func (g *Game) SpawnRabbit(pos components.Position, vitals components.Vitals, age uint32) ecs.Entity {
	cfg := g.config()
	id := g.nextInitialID
	g.nextInitialID++

	rabbit := components.Rabbit{
		ID:                    id,
		Age:                   age,
		SightDistance:         cfg.Rabbit.SightDistance,
		SatisfactionThreshold: cfg.Rabbit.SatisfactionThreshold,
		FullThreshold:         cfg.Rabbit.FullThreshold,
	}
	e := g.store.Spawn(pos, vitals, rabbit)
	g.lifetimeTracker.Register(id, g.tick, 0, 0, 0)
	g.frame = nil
	return e
}
