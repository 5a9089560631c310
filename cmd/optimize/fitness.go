package main

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/game"
	"github.com/pthm-cable/warren/telemetry"
)

// Loss weights. A run fails either by dying out or by pinning the
// registry at its cap, where breeding requests are silently dropped.
const (
	saturationWeight = 0.5
	qualityBonus     = 0.2
	failedLoss       = 1.0
)

// Outcome summarizes one seeded run.
type Outcome struct {
	Seed    int64
	Ticks   int32
	Extinct bool
	AtCap   int32 // ticks that ended with the registry full
	Windows []telemetry.WindowStats
}

// Survival is the fraction of the budget the population lived through.
func (o Outcome) Survival(budget int32) float64 {
	if !o.Extinct || budget <= 0 {
		return 1
	}
	return math.Min(float64(o.Ticks)/float64(budget), 1)
}

// Saturation is the fraction of lived ticks that ended at the cap.
func (o Outcome) Saturation() float64 {
	if o.Ticks == 0 {
		return 0
	}
	return float64(o.AtCap) / float64(o.Ticks)
}

// loss scores one outcome; lower is better.
func loss(o Outcome, budget int32, quality float64) float64 {
	return -o.Survival(budget)*(1+qualityBonus*quality) + saturationWeight*o.Saturation()
}

// Evaluation is the seed-averaged score of one parameter vector.
type Evaluation struct {
	Loss        float64
	Survival    float64
	Saturation  float64
	Quality     float64
	Extinctions int
	Best        Outcome // lowest-loss seed
}

// Evaluator runs a parameter vector headless over a fixed seed list.
type Evaluator struct {
	params *ParamVector
	base   *config.Config
	budget int32
	seeds  []int64
}

// NewEvaluator creates an evaluator running each seed for at most budget ticks.
func NewEvaluator(params *ParamVector, base *config.Config, budget int32, seeds []int64) *Evaluator {
	return &Evaluator{params: params, base: base, budget: budget, seeds: seeds}
}

// Evaluate runs every seed concurrently and averages the scores.
func (ev *Evaluator) Evaluate(raw []float64) (Evaluation, error) {
	outcomes := make([]Outcome, len(ev.seeds))
	var g errgroup.Group
	for i, seed := range ev.seeds {
		g.Go(func() error {
			o, err := ev.run(raw, seed)
			outcomes[i] = o
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Evaluation{Loss: failedLoss}, err
	}

	var e Evaluation
	bestLoss := math.Inf(1)
	for _, o := range outcomes {
		q := quality(o.Windows, ev.base.Breeding.PopulationCap)
		l := loss(o, ev.budget, q)
		e.Loss += l
		e.Survival += o.Survival(ev.budget)
		e.Saturation += o.Saturation()
		e.Quality += q
		if o.Extinct {
			e.Extinctions++
		}
		if l < bestLoss {
			bestLoss, e.Best = l, o
		}
	}
	n := float64(len(outcomes))
	e.Loss /= n
	e.Survival /= n
	e.Saturation /= n
	e.Quality /= n
	return e, nil
}

// run plays one seed until extinction or the tick budget.
func (ev *Evaluator) run(raw []float64, seed int64) (Outcome, error) {
	cfg := ev.base.Clone()
	ev.params.ApplyToConfig(cfg, raw)
	if err := cfg.Validate(); err != nil {
		return Outcome{Seed: seed}, fmt.Errorf("seed %d: %w", seed, err)
	}

	g, err := game.NewGame(game.Options{Seed: seed, Headless: true, Config: cfg})
	if err != nil {
		return Outcome{Seed: seed}, fmt.Errorf("seed %d: %w", seed, err)
	}
	defer g.Unload()

	o := Outcome{Seed: seed}
	g.SetStatsCallback(func(w telemetry.WindowStats) {
		o.Windows = append(o.Windows, w)
	})
	for g.Tick() < ev.budget && !g.Extinct() {
		if err := g.Step(); err != nil {
			return o, fmt.Errorf("seed %d tick %d: %w", seed, g.Tick(), err)
		}
		if g.Population().AtCap() {
			o.AtCap++
		}
	}
	o.Ticks = g.Tick()
	o.Extinct = g.Extinct()
	return o, nil
}

// Quality weights and warmup.
const (
	qualityWeightStability = 0.40
	qualityWeightHeadroom  = 0.30
	qualityWeightVitals    = 0.30

	qualityWarmupWindows = 2
)

// quality rates a run in [0, 1]: a steady population near half the cap
// whose median vitals sit near the satisfaction band.
func quality(windows []telemetry.WindowStats, capacity int) float64 {
	if len(windows) <= qualityWarmupWindows || capacity <= 0 {
		return 0
	}

	pops := make([]float64, 0, len(windows))
	var headroom, vitals float64
	for _, w := range windows[qualityWarmupWindows:] {
		if w.Population == 0 {
			continue
		}
		pop := float64(w.Population)
		pops = append(pops, pop)

		fill := pop / float64(capacity)
		headroom += math.Exp(-math.Pow((fill-0.5)/0.25, 2))

		h := math.Exp(-math.Pow((w.HungerP50-50)/30, 2))
		t := math.Exp(-math.Pow((w.ThirstP50-50)/30, 2))
		vitals += (h + t) / 2
	}
	if len(pops) == 0 {
		return 0
	}

	var stability float64
	if len(pops) >= 2 {
		if mean, std := stat.MeanStdDev(pops, nil); mean > 0 {
			cv := std / mean
			stability = math.Exp(-cv * cv)
		}
	}

	n := float64(len(pops))
	q := qualityWeightStability*stability + qualityWeightHeadroom*headroom/n + qualityWeightVitals*vitals/n
	return math.Min(math.Max(q, 0), 1)
}

// tracker keeps the best evaluation seen across generations.
type tracker struct {
	mu      sync.Mutex
	evals   int
	best    Evaluation
	bestRaw []float64
}

func newTracker() *tracker {
	return &tracker{best: Evaluation{Loss: math.Inf(1)}}
}

// observe records one evaluation and reports its sequence number.
func (t *tracker) observe(e Evaluation, raw []float64) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.evals++
	if e.Loss < t.best.Loss {
		t.best = e
		t.bestRaw = append([]float64(nil), raw...)
	}
	return t.evals
}

func (t *tracker) snapshot() (Evaluation, []float64, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.best, t.bestRaw, t.evals
}
