package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/warren/systems"
)

// TickReport collects the outputs of every stage for one gated tick.
type TickReport struct {
	Tick      int32
	Behavior  systems.BehaviorResult
	Breeding  systems.BreedingResult
	Lifecycle systems.LifecycleResult
}

// stage is one entry of the gated pipeline.
type stage struct {
	id  string
	run func(g *Game, report *TickReport) error
}

// pipeline is the fixed stage order. Each stage reads what the previous ones wrote this tick.
var pipeline = [...]stage{
	{id: systems.StagePerception, run: (*Game).runPerception},
	{id: systems.StageBehavior, run: (*Game).runBehavior},
	{id: systems.StageBreeding, run: (*Game).runBreeding},
	{id: systems.StageLifecycle, run: (*Game).runLifecycle},
}

// Step runs one gated tick through every stage, ignoring the clock.
func (g *Game) Step() error {
	g.perfCollector.StartTick()

	report := TickReport{Tick: g.tick + 1}
	for _, st := range pipeline {
		g.perfCollector.StartPhase(st.id)
		if err := st.run(g, &report); err != nil {
			g.perfCollector.EndTick()
			return fmt.Errorf("%s: %w", st.id, err)
		}
	}
	g.tick++
	g.last = report

	g.perfCollector.StartPhase(systems.StageTelemetry)
	g.recordTick(&report)
	g.flushTelemetry()
	g.checkExtinction()
	g.frame = nil

	if g.statusLines {
		g.perfCollector.StartPhase(systems.StageStatusLines)
		g.logStatusLines()
	}

	g.perfCollector.EndTick()
	return nil
}

func (g *Game) runPerception(_ *TickReport) error {
	return g.perception.Update()
}

func (g *Game) runBehavior(report *TickReport) error {
	report.Behavior = g.behavior.Update()
	return nil
}

func (g *Game) runBreeding(report *TickReport) error {
	report.Breeding = g.breeding.Update(report.Behavior.Requests)
	return nil
}

func (g *Game) runLifecycle(report *TickReport) error {
	report.Lifecycle = g.lifecycle.Update()
	return nil
}

// checkExtinction logs once when the last rabbit dies.
func (g *Game) checkExtinction() {
	if g.extinct || g.pop.Len() > 0 {
		return
	}
	g.extinct = true
	slog.Info("population_extinct", "tick", g.tick)
}
