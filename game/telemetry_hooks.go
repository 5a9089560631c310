package game

import (
	"log/slog"

	"github.com/pthm-cable/warren/telemetry"
)

// recordTick feeds one tick's outcomes to the collector and lifetime tracker.
func (g *Game) recordTick(report *TickReport) {
	b := &report.Behavior
	for _, id := range b.Fed {
		g.collector.RecordMeal()
		g.lifetimeTracker.RecordMeal(id)
	}
	g.collector.RecordDrinks(len(b.Drank))
	for _, id := range b.Drank {
		g.lifetimeTracker.RecordDrink(id)
	}

	br := &report.Breeding
	g.collector.RecordBreeding(len(b.Requests), br.Honored, br.Dropped)
	for _, birth := range br.Births {
		g.collector.RecordBirth()
		gen := uint32(0)
		if _, _, r, ok := g.store.Get(birth.Entity); ok {
			gen = r.Generation
		}
		g.lifetimeTracker.Register(birth.ID, g.tick, gen, birth.ParentA, birth.ParentB)
		g.lifetimeTracker.RecordChild(birth.ParentA, birth.ParentB)
	}

	for _, d := range b.Deaths {
		g.recordDeath(d.ID, d.Cause.String())
	}
	for _, d := range report.Lifecycle.Deaths {
		g.recordDeath(d.ID, d.Cause.String())
	}
	g.collector.RecordRegrowth(report.Lifecycle.Regrown)
}

func (g *Game) recordDeath(id uint64, cause string) {
	g.collector.RecordDeath(cause, g.lifetimeTracker.Lifespan(id, g.tick))
	g.lifetimeTracker.Remove(id)
}

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.samplePopulation())
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// samplePopulation collects the end-of-window distributions.
func (g *Game) samplePopulation() telemetry.PopulationSample {
	n := g.pop.Len()
	sample := telemetry.PopulationSample{
		Population:       n,
		AvailablePatches: g.foliage.AvailableCount(),
		TotalPatches:     len(g.foliage.Patches()),
		Hunger:           make([]float64, 0, n),
		Thirst:           make([]float64, 0, n),
		Age:              make([]float64, 0, n),
	}

	for _, e := range g.pop.All() {
		_, vitals, rabbit, ok := g.store.Get(e)
		if !ok {
			continue
		}
		sample.Hunger = append(sample.Hunger, float64(vitals.Hunger))
		sample.Thirst = append(sample.Thirst, float64(vitals.Thirst))
		sample.Age = append(sample.Age, float64(rabbit.Age))
		if int(rabbit.Generation) > sample.MaxGeneration {
			sample.MaxGeneration = int(rabbit.Generation)
		}
	}
	return sample
}
