package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"
)

// LifecycleParams holds aging and mortality constants.
type LifecycleParams struct {
	AgingInterval int    // gated ticks per aging step
	SenescenceAge uint32 // stochastic death from here
	MaxAge        uint32 // certain death at or above
}

// LifecycleResult reports what happened at the end of one gated tick.
type LifecycleResult struct {
	Aged    bool // this tick was an aging step
	Deaths  []Death
	Regrown int
}

// LifecycleSystem ages agents, removes the old, and regrows foliage.
type LifecycleSystem struct {
	store   *RabbitStore
	foliage *FoliageField
	rng     *rand.Rand
	params  LifecycleParams
	counter int

	dying []dyingAgent
}

type dyingAgent struct {
	entity ecs.Entity
	cause  DeathCause
}

// NewLifecycleSystem creates a lifecycle system.
func NewLifecycleSystem(store *RabbitStore, foliage *FoliageField, rng *rand.Rand, params LifecycleParams) *LifecycleSystem {
	return &LifecycleSystem{
		store:   store,
		foliage: foliage,
		rng:     rng,
		params:  params,
	}
}

// Counter returns the number of gated ticks seen.
func (s *LifecycleSystem) Counter() int {
	return s.counter
}

// Update runs once per gated tick.
func (s *LifecycleSystem) Update() LifecycleResult {
	var res LifecycleResult

	s.counter++
	if s.counter%s.params.AgingInterval == 0 {
		res.Aged = true
		res.Deaths = s.age()
	}

	res.Regrown = s.foliage.Regrow()
	return res
}

// age advances every live agent by one step, then removes those that die.
// Death is judged on the incremented age: an agent turning 50 at this step
// already faces the 1/(max-age) senescence roll, and one turning max dies.
func (s *LifecycleSystem) age() []Death {
	// First pass: mutate and collect (registry must not change while iterating)
	s.dying = s.dying[:0]
	for _, e := range s.store.Population().All() {
		_, _, r, ok := s.store.Get(e)
		if !ok {
			continue
		}
		r.Age++
		if r.MatingCooldown > 0 {
			r.MatingCooldown--
		}

		switch {
		case r.Age >= s.params.MaxAge:
			s.dying = append(s.dying, dyingAgent{entity: e, cause: DeathOldAge})
		case r.Age >= s.params.SenescenceAge:
			// 1 in (max - age): certain one step before max
			if s.rng.Intn(int(s.params.MaxAge-r.Age)) == 0 {
				s.dying = append(s.dying, dyingAgent{entity: e, cause: DeathSenescence})
			}
		}
	}

	// Second pass: remove
	var deaths []Death
	for _, d := range s.dying {
		if death, ok := s.store.Kill(d.entity, d.cause); ok {
			deaths = append(deaths, death)
		}
	}
	return deaths
}
