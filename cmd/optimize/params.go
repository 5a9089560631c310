// Package main provides CMA-ES optimization for warren simulation parameters.
package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/pthm-cable/warren/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded before applying
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Grid size, clock period and the population cap stay fixed.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Foliage
			{Name: "foliage_probability", Path: "foliage.probability", Min: 0.02, Max: 0.4, Default: 0.1},
			{Name: "regen_threshold", Path: "foliage.regen_threshold", Min: 5, Max: 60, Default: 20, Integer: true},
			{Name: "nutrition", Path: "foliage.nutrition", Min: 2, Max: 30, Default: 10, Integer: true},
			// Rabbit
			{Name: "drink_amount", Path: "rabbit.drink_amount", Min: 2, Max: 30, Default: 10, Integer: true},
			{Name: "sight_distance", Path: "rabbit.sight_distance", Min: 2, Max: 12, Default: 5, Integer: true},
			{Name: "satisfaction_threshold", Path: "rabbit.satisfaction_threshold", Min: 20, Max: 80, Default: 50, Integer: true},
			// Breeding
			{Name: "cooldown", Path: "breeding.cooldown", Min: 5, Max: 60, Default: 20, Integer: true},
			{Name: "litter_max", Path: "breeding.litter_max", Min: 1, Max: 4, Default: 2, Integer: true},
			// Lifecycle
			{Name: "senescence_age", Path: "lifecycle.senescence_age", Min: 30, Max: 95, Default: 50, Integer: true},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds and integers are whole.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := math.Min(math.Max(v[i], spec.Min), spec.Max)
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	// Order must match Specs order
	i := 0

	cfg.Foliage.Probability = clamped[i]; i++
	cfg.Foliage.RegenThreshold = uint32(clamped[i]); i++
	cfg.Foliage.Nutrition = uint32(clamped[i]); i++

	cfg.Rabbit.DrinkAmount = uint32(clamped[i]); i++
	cfg.Rabbit.SightDistance = int(clamped[i]); i++
	cfg.Rabbit.SatisfactionThreshold = uint32(clamped[i]); i++

	cfg.Breeding.Cooldown = uint32(clamped[i]); i++
	cfg.Breeding.LitterMax = max(int(clamped[i]), cfg.Breeding.LitterMin); i++

	cfg.Lifecycle.SenescenceAge = min(uint32(clamped[i]), cfg.Lifecycle.MaxAge-1)
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Foliage.Probability,
		float64(cfg.Foliage.RegenThreshold),
		float64(cfg.Foliage.Nutrition),
		float64(cfg.Rabbit.DrinkAmount),
		float64(cfg.Rabbit.SightDistance),
		float64(cfg.Rabbit.SatisfactionThreshold),
		float64(cfg.Breeding.Cooldown),
		float64(cfg.Breeding.LitterMax),
		float64(cfg.Lifecycle.SenescenceAge),
	}
}

// Describe renders values as space-separated path=value pairs.
func (pv *ParamVector) Describe(values []float64) string {
	parts := make([]string, len(pv.Specs))
	for i, spec := range pv.Specs {
		if spec.Integer {
			parts[i] = fmt.Sprintf("%s=%d", spec.Path, int(math.Round(values[i])))
		} else {
			parts[i] = fmt.Sprintf("%s=%.4f", spec.Path, values[i])
		}
	}
	return strings.Join(parts, " ")
}
