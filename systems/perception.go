package systems

import (
	"runtime"

	"github.com/mlange-42/ark/ecs"
	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/warren/components"
)

// parallelThreshold is the minimum population to fan perception out across workers.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// agentView captures the read-only state perception needs from one agent.
type agentView struct {
	entity ecs.Entity
	pos    components.Position
	sight  int
	ready  bool // eligible as a partner
}

// patchView captures one available foliage patch.
type patchView struct {
	entity ecs.Entity
	pos    components.Position
}

// perceived holds the sets computed for one agent before write-back.
type perceived struct {
	plants   []ecs.Entity
	water    []components.Position
	partners []ecs.Entity
}

// PerceptionSystem fills each agent's in-range sets from a Chebyshev sight window.
type PerceptionSystem struct {
	store         *RabbitStore
	foliage       *FoliageField
	grid          *WorldGrid
	minPartnerAge uint32
	numWorkers    int

	agents  []agentView
	patches []patchView
	results []perceived
}

// NewPerceptionSystem creates a perception system.
func NewPerceptionSystem(store *RabbitStore, foliage *FoliageField, grid *WorldGrid, minPartnerAge uint32) *PerceptionSystem {
	return &PerceptionSystem{
		store:         store,
		foliage:       foliage,
		grid:          grid,
		minPartnerAge: minPartnerAge,
		numWorkers:    runtime.GOMAXPROCS(0),
	}
}

// Update recomputes plants, water and partners in range for every live agent.
func (s *PerceptionSystem) Update() error {
	grid := mustGrid(s.grid)

	// Phase A: snapshot agents and patches (single-threaded)
	s.agents = s.agents[:0]
	for _, e := range s.store.Population().All() {
		pos, _, rabbit, ok := s.store.Get(e)
		if !ok {
			continue
		}
		s.agents = append(s.agents, agentView{
			entity: e,
			pos:    *pos,
			sight:  rabbit.SightDistance,
			ready:  rabbit.MatingReady(s.minPartnerAge),
		})
	}

	s.patches = s.patches[:0]
	for _, e := range s.foliage.Patches() {
		pos, fol, ok := s.foliage.Get(e)
		if !ok || fol.Consumed {
			continue
		}
		s.patches = append(s.patches, patchView{entity: e, pos: *pos})
	}

	if cap(s.results) < len(s.agents) {
		s.results = make([]perceived, len(s.agents))
	}
	s.results = s.results[:len(s.agents)]

	// Phase B: scan (parallel above threshold)
	water := grid.WaterCells()
	if len(s.agents) < parallelThreshold || s.numWorkers < 2 {
		s.scanRange(0, len(s.agents), water)
	} else {
		var eg errgroup.Group
		eg.SetLimit(s.numWorkers)
		chunk := (len(s.agents) + s.numWorkers - 1) / s.numWorkers
		for start := 0; start < len(s.agents); start += chunk {
			end := min(start+chunk, len(s.agents))
			eg.Go(func() error {
				s.scanRange(start, end, water)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
	}

	// Phase C: write back (single-threaded)
	for i, a := range s.agents {
		perc := s.store.Perception(a.entity)
		if perc == nil {
			continue
		}
		perc.Reset()
		perc.Plants = append(perc.Plants, s.results[i].plants...)
		perc.Water = append(perc.Water, s.results[i].water...)
		perc.Partners = append(perc.Partners, s.results[i].partners...)
	}

	return nil
}

// scanRange computes results for agents[start:end]. Each index is written by one worker only.
func (s *PerceptionSystem) scanRange(start, end int, water []components.Position) {
	for i := start; i < end; i++ {
		a := s.agents[i]
		r := &s.results[i]
		r.plants = r.plants[:0]
		r.water = r.water[:0]
		r.partners = r.partners[:0]

		for _, p := range s.patches {
			if a.pos.WithinBox(p.pos, a.sight) {
				r.plants = append(r.plants, p.entity)
			}
		}
		for _, w := range water {
			if a.pos.WithinBox(w, a.sight) {
				r.water = append(r.water, w)
			}
		}
		for j, other := range s.agents {
			if j == i || !other.ready {
				continue
			}
			if a.pos.WithinBox(other.pos, a.sight) {
				r.partners = append(r.partners, other.entity)
			}
		}
	}
}
