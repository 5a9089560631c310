// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Foliage   FoliageConfig   `yaml:"foliage"`
	Clock     ClockConfig     `yaml:"clock"`
	Rabbit    RabbitConfig    `yaml:"rabbit"`
	Breeding  BreedingConfig  `yaml:"breeding"`
	Lifecycle LifecycleConfig `yaml:"lifecycle"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the graphical viewer.
type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TargetFPS  int `yaml:"target_fps"`
	CellSize   int `yaml:"cell_size"`   // Pixels per grid cell
	PanelWidth int `yaml:"panel_width"` // Inspector panel width in pixels
}

// TerrainConfig holds world grid generation parameters.
type TerrainConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Seed           int64   `yaml:"seed"`
	Noise          string  `yaml:"noise"`           // "perlin" or "simplex"
	Scale          float64 `yaml:"scale"`           // Noise coordinates are cell / scale
	WaterThreshold float64 `yaml:"water_threshold"` // noise < this -> water
	SandThreshold  float64 `yaml:"sand_threshold"`  // noise < this -> sand, else grass
}

// FoliageConfig holds food patch parameters.
type FoliageConfig struct {
	Probability    float64 `yaml:"probability"`     // Chance per grass cell to hold a patch
	RegenThreshold uint32  `yaml:"regen_threshold"` // Patch returns once counter exceeds this
	Nutrition      uint32  `yaml:"nutrition"`       // Hunger gained per patch eaten
}

// ClockConfig holds the simulation gate period.
type ClockConfig struct {
	PeriodMS int `yaml:"period_ms"`
}

// RabbitConfig holds per-agent defaults.
type RabbitConfig struct {
	InitialPopulation     int    `yaml:"initial_population"`
	InitialHunger         uint32 `yaml:"initial_hunger"`
	InitialThirst         uint32 `yaml:"initial_thirst"`
	SightDistance         int    `yaml:"sight_distance"`
	SatisfactionThreshold uint32 `yaml:"satisfaction_threshold"`
	FullThreshold         uint32 `yaml:"full_threshold"`
	DrinkAmount           uint32 `yaml:"drink_amount"`
	VitalCap              uint32 `yaml:"vital_cap"`              // 0 = unbounded
	DecayInAllBranches    bool   `yaml:"decay_in_all_branches"` // false keeps decay in random walk only
}

// BreedingConfig holds mating parameters.
type BreedingConfig struct {
	MinPartnerAge   uint32 `yaml:"min_partner_age"` // partner eligible at age >= this
	MinSeekerAge    uint32 `yaml:"min_seeker_age"`  // seeker eligible at age > this
	Cooldown        uint32 `yaml:"cooldown"`
	PopulationCap   int    `yaml:"population_cap"`
	LitterMin       int    `yaml:"litter_min"`
	LitterMax       int    `yaml:"litter_max"`
	OffspringHunger uint32 `yaml:"offspring_hunger"`
	OffspringThirst uint32 `yaml:"offspring_thirst"`
}

// LifecycleConfig holds aging and mortality parameters.
type LifecycleConfig struct {
	AgingInterval int    `yaml:"aging_interval"` // gated ticks per aging step
	SenescenceAge uint32 `yaml:"senescence_age"` // stochastic death starts here
	MaxAge        uint32 `yaml:"max_age"`        // deterministic death at or above
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int  `yaml:"stats_window"` // gated ticks per stats window
	StatusLines         bool `yaml:"status_lines"` // per-agent status line every tick
	PerfCollectorWindow int  `yaml:"perf_collector_window"`
}

// DerivedConfig holds values computed from the loaded configuration.
type DerivedConfig struct {
	ClockPeriod time.Duration
	GridCells   int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Set replaces the global configuration. Used by tools that tune parameters.
func Set(cfg *Config) {
	global = cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate reports values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Terrain.Width <= 0 || c.Terrain.Height <= 0 {
		errs = append(errs, fmt.Errorf("terrain size %dx%d must be positive", c.Terrain.Width, c.Terrain.Height))
	}
	if c.Terrain.Scale <= 0 {
		errs = append(errs, fmt.Errorf("terrain.scale %v must be positive", c.Terrain.Scale))
	}
	if c.Terrain.WaterThreshold > c.Terrain.SandThreshold {
		errs = append(errs, fmt.Errorf("terrain.water_threshold %v above sand_threshold %v",
			c.Terrain.WaterThreshold, c.Terrain.SandThreshold))
	}
	switch c.Terrain.Noise {
	case "perlin", "simplex":
	default:
		errs = append(errs, fmt.Errorf("terrain.noise %q: want perlin or simplex", c.Terrain.Noise))
	}
	if c.Foliage.Probability < 0 || c.Foliage.Probability > 1 {
		errs = append(errs, fmt.Errorf("foliage.probability %v outside [0,1]", c.Foliage.Probability))
	}
	if c.Clock.PeriodMS <= 0 {
		errs = append(errs, fmt.Errorf("clock.period_ms %d must be positive", c.Clock.PeriodMS))
	}
	if c.Rabbit.SightDistance < 0 {
		errs = append(errs, fmt.Errorf("rabbit.sight_distance %d is negative", c.Rabbit.SightDistance))
	}
	if c.Rabbit.InitialPopulation < 0 {
		errs = append(errs, fmt.Errorf("rabbit.initial_population %d is negative", c.Rabbit.InitialPopulation))
	}
	if c.Breeding.PopulationCap < 1 {
		errs = append(errs, fmt.Errorf("breeding.population_cap %d must be at least 1", c.Breeding.PopulationCap))
	}
	if c.Breeding.LitterMin < 1 || c.Breeding.LitterMax < c.Breeding.LitterMin {
		errs = append(errs, fmt.Errorf("breeding litter range [%d,%d] is empty",
			c.Breeding.LitterMin, c.Breeding.LitterMax))
	}
	if c.Lifecycle.AgingInterval < 1 {
		errs = append(errs, fmt.Errorf("lifecycle.aging_interval %d must be at least 1", c.Lifecycle.AgingInterval))
	}
	if c.Lifecycle.SenescenceAge >= c.Lifecycle.MaxAge {
		errs = append(errs, fmt.Errorf("lifecycle.senescence_age %d must be below max_age %d",
			c.Lifecycle.SenescenceAge, c.Lifecycle.MaxAge))
	}
	if c.Telemetry.StatsWindow < 1 {
		errs = append(errs, fmt.Errorf("telemetry.stats_window %d must be at least 1", c.Telemetry.StatsWindow))
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ClockPeriod = time.Duration(c.Clock.PeriodMS) * time.Millisecond
	c.Derived.GridCells = c.Terrain.Width * c.Terrain.Height
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
