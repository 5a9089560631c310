package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/telemetry"
)

func TestParamVector_DefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	pv := NewParamVector()
	assert.Equal(t, pv.DefaultVector(), pv.ExtractFromConfig(cfg))
}

func TestParamVector_NormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		assert.InDelta(t, raw[i], back[i], 1e-9, pv.Specs[i].Name)
	}
}

func TestParamVector_ApplyClampsAndRounds(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	pv := NewParamVector()

	values := pv.DefaultVector()
	values[0] = 5      // probability above max
	values[1] = 12.6   // regen threshold
	values[8] = 1000.0 // senescence age

	pv.ApplyToConfig(cfg, values)

	assert.Equal(t, 0.4, cfg.Foliage.Probability)
	assert.Equal(t, uint32(13), cfg.Foliage.RegenThreshold)
	assert.Equal(t, uint32(95), cfg.Lifecycle.SenescenceAge)
	assert.NoError(t, cfg.Validate())
}

func TestParamVector_Describe(t *testing.T) {
	pv := &ParamVector{Specs: []ParamSpec{
		{Path: "foliage.probability"},
		{Path: "breeding.litter_max", Integer: true},
	}}
	assert.Equal(t, "foliage.probability=0.1250 breeding.litter_max=3", pv.Describe([]float64{0.125, 2.6}))
}

func TestQuality(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	capacity := cfg.Breeding.PopulationCap

	assert.Zero(t, quality(nil, capacity))

	steady := make([]telemetry.WindowStats, 6)
	for i := range steady {
		steady[i] = telemetry.WindowStats{Population: 100, HungerP50: 50, ThirstP50: 50}
	}
	assert.InDelta(t, 1.0, quality(steady, capacity), 1e-9)

	crowded := make([]telemetry.WindowStats, 6)
	for i := range crowded {
		crowded[i] = telemetry.WindowStats{Population: 200, HungerP50: 50, ThirstP50: 50}
	}
	assert.Less(t, quality(crowded, capacity), quality(steady, capacity))
}
