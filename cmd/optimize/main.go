// Command optimize tunes warren's config with CMA-ES, trading extinction
// against a population pinned at its cap.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/warren/config"
)

type options struct {
	configPath string
	outputDir  string
	budget     int
	seeds      int
	maxEvals   int
	popSize    int
	stepSize   float64
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flag.StringVar(&opts.outputDir, "output", "", "Output directory for results (required)")
	flag.IntVar(&opts.budget, "max-ticks", 20000, "Gated ticks per run; surviving the whole budget scores full survival")
	flag.IntVar(&opts.seeds, "seeds", 3, "Seeds per evaluation")
	flag.IntVar(&opts.maxEvals, "max-evals", 200, "Maximum number of evaluations")
	flag.IntVar(&opts.popSize, "population", 0, "CMA-ES population size (0 = 4 + 3 ln n)")
	flag.Float64Var(&opts.stepSize, "step", 0.3, "Initial CMA-ES step size in normalized space")
	flag.Parse()

	// The simulation's own logging is noise here; progress goes to stdout.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(opts, log); err != nil {
		log.Error("tuning failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options, log *slog.Logger) error {
	if opts.outputDir == "" {
		return errors.New("-output is required")
	}
	if opts.seeds < 1 {
		return errors.New("-seeds must be at least 1")
	}
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	base, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	hist, err := newHistory(filepath.Join(opts.outputDir, "evaluations.csv"))
	if err != nil {
		return err
	}
	defer hist.Close()

	params := NewParamVector()
	t := &tuner{
		params: params,
		eval:   NewEvaluator(params, base, int32(opts.budget), seedList(opts.seeds)),
		track:  newTracker(),
		hist:   hist,
		log:    log,
	}

	method := &optimize.CmaEsChol{
		InitStepSize: opts.stepSize,
		Population:   populationSize(opts.popSize, params.Dim()),
	}
	settings := &optimize.Settings{
		FuncEvaluations: opts.maxEvals,
		Concurrent:      1, // seeds already run in parallel
		Recorder:        t,
	}
	start := params.Normalize(params.Clamp(params.ExtractFromConfig(base)))

	log.Info("tuning",
		"params", params.Dim(),
		"population", method.Population,
		"max_evals", opts.maxEvals,
		"seeds", opts.seeds,
		"max_ticks", opts.budget,
	)
	if _, err := optimize.Minimize(optimize.Problem{Func: t.objective}, start, settings, method); err != nil {
		log.Warn("optimizer stopped early", "error", err)
	}

	return t.save(base, opts.outputDir)
}

// seedList returns n fixed, well spread seeds.
func seedList(n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = int64(i)*1000 + 42
	}
	return seeds
}

// populationSize picks the CMA-ES population, defaulting to 4 + floor(3 ln dim).
func populationSize(requested, dim int) int {
	if requested > 0 {
		return requested
	}
	return 4 + int(3*math.Log(float64(dim)))
}

// tuner connects the evaluator to gonum's optimizer and records progress.
type tuner struct {
	params *ParamVector
	eval   *Evaluator
	track  *tracker
	hist   *history
	log    *slog.Logger
}

// objective maps a normalized point to its loss.
func (t *tuner) objective(x []float64) float64 {
	raw := t.params.Clamp(t.params.Denormalize(x))
	e, err := t.eval.Evaluate(raw)
	if err != nil {
		t.log.Warn("evaluation failed", "error", err)
	}
	n := t.track.observe(e, raw)
	if err := t.hist.add(n, e, t.params, raw); err != nil {
		t.log.Warn("history write failed", "error", err)
	}
	return e.Loss
}

// Init implements optimize.Recorder.
func (t *tuner) Init() error { return nil }

// Record implements optimize.Recorder; it logs once per CMA-ES generation.
func (t *tuner) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if op != optimize.MajorIteration {
		return nil
	}
	best, _, evals := t.track.snapshot()
	t.log.Info("generation",
		"n", stats.MajorIterations,
		"evals", evals,
		"loss", loc.F,
		"best_loss", best.Loss,
		"best_survival", best.Survival,
		"best_saturation", best.Saturation,
		"elapsed", stats.Runtime.Round(time.Second),
	)
	return nil
}

// save writes the best config and the best seed's window stats.
func (t *tuner) save(base *config.Config, dir string) error {
	best, raw, evals := t.track.snapshot()
	if raw == nil {
		return errors.New("no evaluation completed")
	}

	cfg := base.Clone()
	t.params.ApplyToConfig(cfg, raw)
	cfgPath := filepath.Join(dir, "best_config.yaml")
	if err := cfg.WriteYAML(cfgPath); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}

	if len(best.Best.Windows) > 0 {
		f, err := os.Create(filepath.Join(dir, "best_telemetry.csv"))
		if err != nil {
			return fmt.Errorf("creating best telemetry: %w", err)
		}
		defer f.Close()
		if err := gocsv.MarshalFile(&best.Best.Windows, f); err != nil {
			return fmt.Errorf("writing best telemetry: %w", err)
		}
	}

	t.log.Info("done",
		"evals", evals,
		"loss", best.Loss,
		"survival", best.Survival,
		"saturation", best.Saturation,
		"extinctions", best.Extinctions,
		"best_seed", best.Best.Seed,
		"config", cfgPath,
		"params", t.params.Describe(raw),
	)
	return nil
}

// evalRow is one line of evaluations.csv.
type evalRow struct {
	Eval        int     `csv:"eval"`
	Loss        float64 `csv:"loss"`
	Survival    float64 `csv:"survival"`
	Saturation  float64 `csv:"saturation"`
	Quality     float64 `csv:"quality"`
	Extinctions int     `csv:"extinctions"`
	Params      string  `csv:"params"`
}

// history appends one row per evaluation.
type history struct {
	f       *os.File
	started bool
}

func newHistory(path string) (*history, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating history: %w", err)
	}
	return &history{f: f}, nil
}

func (h *history) add(n int, e Evaluation, params *ParamVector, raw []float64) error {
	rows := []evalRow{{
		Eval:        n,
		Loss:        e.Loss,
		Survival:    e.Survival,
		Saturation:  e.Saturation,
		Quality:     e.Quality,
		Extinctions: e.Extinctions,
		Params:      params.Describe(raw),
	}}
	if h.started {
		return gocsv.MarshalWithoutHeaders(rows, h.f)
	}
	h.started = true
	return gocsv.Marshal(rows, h.f)
}

func (h *history) Close() error {
	return h.f.Close()
}
