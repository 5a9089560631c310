package telemetry

import (
	"log/slog"
	"time"
)

// TickRow is the Phase value of the whole-tick row in perf.csv.
const TickRow = "tick"

// PerfCollector times the phases of each gated tick over a rolling window.
// The phase list is fixed at construction; the game passes the system registry's IDs.
type PerfCollector struct {
	phases []string
	index  map[string]int
	now    func() time.Time

	// Ring of the last len(ticks) samples. phaseTimes[i] has one slot per phase.
	ticks      []time.Duration
	phaseTimes [][]time.Duration
	next       int
	filled     int

	current    []time.Duration
	tickStart  time.Time
	phaseStart time.Time
	active     int // running phase index, -1 when none

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int, phases []string) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	p := &PerfCollector{
		phases:     append([]string(nil), phases...),
		index:      make(map[string]int, len(phases)),
		now:        time.Now,
		ticks:      make([]time.Duration, windowSize),
		phaseTimes: make([][]time.Duration, windowSize),
		current:    make([]time.Duration, len(phases)),
		active:     -1,
	}
	for i, id := range phases {
		p.index[id] = i
	}
	for i := range p.phaseTimes {
		p.phaseTimes[i] = make([]time.Duration, len(phases))
	}
	return p
}

// SetClock replaces the time source.
func (p *PerfCollector) SetClock(now func() time.Time) {
	p.now = now
}

// Phases returns the tracked phase IDs in order.
func (p *PerfCollector) Phases() []string {
	return p.phases
}

// StartTick begins timing a new gated tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.phaseStart = p.tickStart
	p.active = -1
	for i := range p.current {
		p.current[i] = 0
	}
}

// StartPhase closes the running phase and starts timing id.
// Time spent in an unknown phase counts toward the tick but no phase.
func (p *PerfCollector) StartPhase(id string) {
	now := p.closePhase()
	p.phaseStart = now
	if i, ok := p.index[id]; ok {
		p.active = i
	} else {
		p.active = -1
	}
}

// EndTick closes the running phase and stores the tick in the window.
func (p *PerfCollector) EndTick() {
	now := p.closePhase()
	p.active = -1

	p.ticks[p.next] = now.Sub(p.tickStart)
	copy(p.phaseTimes[p.next], p.current)
	p.next = (p.next + 1) % len(p.ticks)
	if p.filled < len(p.ticks) {
		p.filled++
	}
}

func (p *PerfCollector) closePhase() time.Time {
	now := p.now()
	if p.active >= 0 {
		p.current[p.active] += now.Sub(p.phaseStart)
	}
	return now
}

// RecordFrame records the time since the previous rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PhaseTiming is one phase's share of the window.
type PhaseTiming struct {
	ID  string
	Avg time.Duration
	Pct float64 // of the average tick
}

// PerfStats aggregates the current window.
type PerfStats struct {
	Samples        int
	AvgTick        time.Duration
	MinTick        time.Duration
	MaxTick        time.Duration
	Phases         []PhaseTiming // collector order
	TicksPerSecond float64

	// Graphics mode only
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes averages over the stored ticks.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		Samples:       p.filled,
		Phases:        make([]PhaseTiming, len(p.phases)),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	for i, id := range p.phases {
		s.Phases[i].ID = id
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	sums := make([]time.Duration, len(p.phases))
	for i := 0; i < p.filled; i++ {
		d := p.ticks[i]
		total += d
		if i == 0 || d < s.MinTick {
			s.MinTick = d
		}
		if d > s.MaxTick {
			s.MaxTick = d
		}
		for j, pd := range p.phaseTimes[i] {
			sums[j] += pd
		}
	}

	n := time.Duration(p.filled)
	s.AvgTick = total / n
	for j := range s.Phases {
		s.Phases[j].Avg = sums[j] / n
		if s.AvgTick > 0 {
			s.Phases[j].Pct = float64(s.Phases[j].Avg) / float64(s.AvgTick) * 100
		}
	}
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}
	return s
}

// Phase looks up one phase's timing.
func (s PerfStats) Phase(id string) (PhaseTiming, bool) {
	for _, ph := range s.Phases {
		if ph.ID == id {
			return ph, true
		}
	}
	return PhaseTiming{}, false
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "window", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("samples", s.Samples),
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, ph := range s.Phases {
		if ph.Pct >= 0.1 {
			attrs = append(attrs, slog.Float64(ph.ID+"_pct", float64(int(ph.Pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfRow is one line of perf.csv.
type PerfRow struct {
	WindowEnd int32   `csv:"window_end"`
	Phase     string  `csv:"phase"`
	AvgUS     int64   `csv:"avg_us"`
	MaxUS     int64   `csv:"max_us"` // whole-tick row only
	Pct       float64 `csv:"pct"`
}

// Rows flattens the window into a whole-tick row followed by one row per phase.
func (s PerfStats) Rows(windowEnd int32) []PerfRow {
	rows := make([]PerfRow, 0, len(s.Phases)+1)
	rows = append(rows, PerfRow{
		WindowEnd: windowEnd,
		Phase:     TickRow,
		AvgUS:     s.AvgTick.Microseconds(),
		MaxUS:     s.MaxTick.Microseconds(),
		Pct:       100,
	})
	for _, ph := range s.Phases {
		rows = append(rows, PerfRow{
			WindowEnd: windowEnd,
			Phase:     ph.ID,
			AvgUS:     ph.Avg.Microseconds(),
			Pct:       ph.Pct,
		})
	}
	return rows
}
