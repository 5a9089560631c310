package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Terrain.Width)
	assert.Equal(t, 60, cfg.Terrain.Height)
	assert.Equal(t, 0.1, cfg.Foliage.Probability)
	assert.Equal(t, uint32(20), cfg.Foliage.RegenThreshold)
	assert.Equal(t, 200, cfg.Breeding.PopulationCap)
	assert.Equal(t, uint32(20), cfg.Breeding.Cooldown)
	assert.Equal(t, 5, cfg.Lifecycle.AgingInterval)
	assert.Equal(t, uint32(100), cfg.Lifecycle.MaxAge)
	assert.Equal(t, 90*time.Millisecond, cfg.Derived.ClockPeriod)
	assert.Equal(t, 3600, cfg.Derived.GridCells)
	assert.Zero(t, cfg.Rabbit.VitalCap)
	assert.False(t, cfg.Rabbit.DecayInAllBranches)
}

func TestLoad_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clock:\n  period_ms: 45\nbreeding:\n  population_cap: 50\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 45*time.Millisecond, cfg.Derived.ClockPeriod)
	assert.Equal(t, 50, cfg.Breeding.PopulationCap)
	assert.Equal(t, uint32(20), cfg.Breeding.Cooldown, "untouched keys keep defaults")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		tweak func(*Config)
	}{
		{"zero width", func(c *Config) { c.Terrain.Width = 0 }},
		{"thresholds inverted", func(c *Config) { c.Terrain.WaterThreshold = 0.5 }},
		{"unknown noise", func(c *Config) { c.Terrain.Noise = "value" }},
		{"probability above one", func(c *Config) { c.Foliage.Probability = 1.5 }},
		{"zero period", func(c *Config) { c.Clock.PeriodMS = 0 }},
		{"empty litter", func(c *Config) { c.Breeding.LitterMax = 0 }},
		{"zero cap", func(c *Config) { c.Breeding.PopulationCap = 0 }},
		{"senescence past max", func(c *Config) { c.Lifecycle.SenescenceAge = 100 }},
		{"zero aging interval", func(c *Config) { c.Lifecycle.AgingInterval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.tweak(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Rabbit.SightDistance = 7

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, back.Rabbit.SightDistance)
	assert.Equal(t, cfg.Derived, back.Derived)
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	defer func() { global = saved }()

	global = nil
	assert.Panics(t, func() { Cfg() })

	MustInit("")
	assert.NotNil(t, Cfg())
}
