package game

import (
	"fmt"
	"io"
	"time"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logStatusLines writes one line per live rabbit in registry order.
func (g *Game) logStatusLines() {
	for _, e := range g.pop.All() {
		pos, vitals, rabbit, ok := g.store.Get(e)
		if !ok {
			continue
		}
		Logf("tick %d rabbit %d: hunger=%d thirst=%d pos=(%d,%d)",
			g.tick, rabbit.ID, vitals.Hunger, vitals.Thirst, pos.X, pos.Z)
	}
}

// logPerfStats logs per-stage timings in registry order.
func (g *Game) logPerfStats() {
	stats := g.perfCollector.Stats()
	Logf("=== Perf @ Tick %d (speed %dx, %d ticks sampled) ===", g.tick, g.stepsPerUpdate, stats.Samples)
	Logf("Avg tick: %s (min %s, max %s)",
		stats.AvgTick.Round(time.Microsecond), stats.MinTick.Round(time.Microsecond), stats.MaxTick.Round(time.Microsecond))

	for _, ph := range stats.Phases {
		if ph.Avg == 0 {
			continue
		}
		Logf("  %-20s %10s  %5.1f%%", g.registry.GetName(ph.ID), ph.Avg.Round(time.Microsecond), ph.Pct)
	}
	Logf("")
}

// logWorldState logs a population summary.
func (g *Game) logWorldState() {
	var minHunger, minThirst uint32 = ^uint32(0), ^uint32(0)
	var ready int
	minAge := g.config().Breeding.MinPartnerAge

	for _, e := range g.pop.All() {
		_, vitals, rabbit, ok := g.store.Get(e)
		if !ok {
			continue
		}
		if vitals.Hunger < minHunger {
			minHunger = vitals.Hunger
		}
		if vitals.Thirst < minThirst {
			minThirst = vitals.Thirst
		}
		if rabbit.MatingReady(minAge) {
			ready++
		}
	}
	if g.pop.Len() == 0 {
		minHunger, minThirst = 0, 0
	}

	Logf("=== Tick %d ===", g.tick)
	Logf("Rabbits: %d/%d (mating ready: %d, min hunger: %d, min thirst: %d)",
		g.pop.Len(), g.pop.Cap(), ready, minHunger, minThirst)
	Logf("Foliage: %d/%d available", g.foliage.AvailableCount(), len(g.foliage.Patches()))
	Logf("")
}
