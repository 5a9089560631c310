package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of gated ticks.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Population at window end
	Population       int `csv:"population"`
	AvailablePatches int `csv:"patches_available"`
	TotalPatches     int `csv:"patches_total"`
	MaxGeneration    int `csv:"max_generation"`

	// Events during window
	Births            int `csv:"births"`
	DeathsStarvation  int `csv:"deaths_starvation"`
	DeathsDehydration int `csv:"deaths_dehydration"`
	DeathsOldAge      int `csv:"deaths_old_age"`
	DeathsSenescence  int `csv:"deaths_senescence"`
	Meals             int `csv:"meals"`
	Drinks            int `csv:"drinks"`
	Regrown           int `csv:"regrown"`

	// Breeding
	BreedingRequests int `csv:"breeding_requests"`
	BreedingHonored  int `csv:"breeding_honored"`
	DroppedSpawns    int `csv:"dropped_spawns"`

	// Vitals distribution (sampled at window end)
	HungerMean float64 `csv:"hunger_mean"`
	HungerP10  float64 `csv:"hunger_p10"`
	HungerP50  float64 `csv:"hunger_p50"`
	HungerP90  float64 `csv:"hunger_p90"`

	ThirstMean float64 `csv:"thirst_mean"`
	ThirstP10  float64 `csv:"thirst_p10"`
	ThirstP50  float64 `csv:"thirst_p50"`
	ThirstP90  float64 `csv:"thirst_p90"`

	AgeMean float64 `csv:"age_mean"`
	AgeP50  float64 `csv:"age_p50"`
	AgeP90  float64 `csv:"age_p90"`

	// Lifespan of agents that died in the window, in gated ticks
	LifespanMean float64 `csv:"lifespan_mean"`
	LifespanStd  float64 `csv:"lifespan_std"`
}

// Deaths returns the total deaths in the window.
func (s WindowStats) Deaths() int {
	return s.DeathsStarvation + s.DeathsDehydration + s.DeathsOldAge + s.DeathsSenescence
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean and percentiles.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// MeanStd returns the mean and sample standard deviation. Std is 0 for fewer than two values.
func MeanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("population", s.Population),
		slog.Int("patches_available", s.AvailablePatches),
		slog.Int("max_generation", s.MaxGeneration),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths()),
		slog.Int("deaths_starvation", s.DeathsStarvation),
		slog.Int("deaths_dehydration", s.DeathsDehydration),
		slog.Int("deaths_old_age", s.DeathsOldAge),
		slog.Int("deaths_senescence", s.DeathsSenescence),
		slog.Int("meals", s.Meals),
		slog.Int("drinks", s.Drinks),
		slog.Int("regrown", s.Regrown),
		slog.Int("breeding_requests", s.BreedingRequests),
		slog.Int("breeding_honored", s.BreedingHonored),
		slog.Int("dropped_spawns", s.DroppedSpawns),
		slog.Float64("hunger_mean", s.HungerMean),
		slog.Float64("hunger_p50", s.HungerP50),
		slog.Float64("thirst_mean", s.ThirstMean),
		slog.Float64("thirst_p50", s.ThirstP50),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("lifespan_mean", s.LifespanMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
