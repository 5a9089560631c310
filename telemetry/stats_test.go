package telemetry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	values := []float64{50, 10, 20, 30, 40, 60, 70, 80, 90, 100}
	mean, p10, p50, p90 := ComputeDistribution(values)

	assert.InDelta(t, 55, mean, 0.001)
	assert.InDelta(t, 19, p10, 0.01)
	assert.InDelta(t, 55, p50, 0.01)
	assert.InDelta(t, 91, p90, 0.01)

	// Input must not be reordered
	assert.Equal(t, 50.0, values[0])
}

func TestComputeDistributionEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeDistribution(nil)
	assert.Zero(t, mean)
	assert.Zero(t, p10)
	assert.Zero(t, p50)
	assert.Zero(t, p90)
}

func TestMeanStd(t *testing.T) {
	mean, std := MeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-9)
	// Sample standard deviation
	assert.InDelta(t, math.Sqrt(32.0/7.0), std, 1e-9)

	mean, std = MeanStd([]float64{3})
	assert.Equal(t, 3.0, mean)
	assert.Zero(t, std)
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10)
	require.False(t, c.ShouldFlush(5))
	require.True(t, c.ShouldFlush(10))

	c.RecordBirth()
	c.RecordBirth()
	c.RecordDeath("starvation", 40)
	c.RecordDeath("old_age", 500)
	c.RecordDeath("senescence", 300)
	c.RecordMeal()
	c.RecordDrinks(3)
	c.RecordBreeding(2, 1, 1)
	c.RecordRegrowth(4)

	stats := c.Flush(10, PopulationSample{
		Population: 2,
		Hunger:     []float64{40, 60},
		Thirst:     []float64{30, 30},
		Age:        []float64{5, 15},
	})

	assert.Equal(t, int32(0), stats.WindowStartTick)
	assert.Equal(t, int32(10), stats.WindowEndTick)
	assert.Equal(t, 2, stats.Births)
	assert.Equal(t, 3, stats.Deaths())
	assert.Equal(t, 1, stats.DeathsStarvation)
	assert.Equal(t, 1, stats.DeathsOldAge)
	assert.Equal(t, 1, stats.DeathsSenescence)
	assert.Equal(t, 1, stats.Meals)
	assert.Equal(t, 3, stats.Drinks)
	assert.Equal(t, 2, stats.BreedingRequests)
	assert.Equal(t, 1, stats.BreedingHonored)
	assert.Equal(t, 1, stats.DroppedSpawns)
	assert.Equal(t, 4, stats.Regrown)
	assert.InDelta(t, 50, stats.HungerMean, 1e-9)
	assert.InDelta(t, 280, stats.LifespanMean, 1e-9)

	// Counters reset, window advances
	next := c.Flush(20, PopulationSample{})
	assert.Equal(t, int32(10), next.WindowStartTick)
	assert.Zero(t, next.Births)
	assert.Zero(t, next.Deaths())
	assert.Zero(t, next.LifespanMean)
	assert.False(t, c.ShouldFlush(25))
	assert.True(t, c.ShouldFlush(30))
}
