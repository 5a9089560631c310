package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
)

// BreedingParams holds reproduction constants.
type BreedingParams struct {
	Cooldown        uint32 // aging steps both parents wait after a request is honored
	LitterMin       int
	LitterMax       int
	OffspringHunger uint32
	OffspringThirst uint32
	Template        RabbitTemplate
}

// Birth describes one offspring spawned this tick.
type Birth struct {
	Entity   ecs.Entity
	ID       uint64
	ParentA  uint64
	ParentB  uint64
	Position components.Position
}

// BreedingResult collects the outcome of draining one tick's requests.
type BreedingResult struct {
	Births   []Birth
	Honored  int // requests that reset cooldowns
	Rejected int // stale or duplicate requests
	Dropped  int // offspring not spawned because of the cap
}

// BreedingSystem turns breeding requests into offspring.
type BreedingSystem struct {
	store  *RabbitStore
	grid   *WorldGrid
	rng    *rand.Rand
	params BreedingParams
}

// NewBreedingSystem creates a breeding system.
func NewBreedingSystem(store *RabbitStore, grid *WorldGrid, rng *rand.Rand, params BreedingParams) *BreedingSystem {
	return &BreedingSystem{
		store:  store,
		grid:   grid,
		rng:    rng,
		params: params,
	}
}

// Update drains the requests in order.
// A pair that asked for each other produces two requests; the second finds
// both parents on cooldown and is rejected.
func (s *BreedingSystem) Update(requests []BreedingRequest) BreedingResult {
	mustGrid(s.grid)

	var res BreedingResult
	for _, req := range requests {
		if !s.valid(req) {
			res.Rejected++
			continue
		}
		res.Honored++

		// Snapshot parents before spawning; new entities may move component storage
		posA, _, rabbitA, _ := s.store.Get(req.A)
		posB, _, rabbitB, _ := s.store.Get(req.B)
		pa, pb := *posA, *posB
		ra, rb := *rabbitA, *rabbitB

		litter := s.litterSize()
		pop := s.store.Population()
		for i := 0; i < litter; i++ {
			if pop.AtCap() {
				res.Dropped += litter - i
				break
			}
			res.Births = append(res.Births, s.spawnChild(pa, pb, &ra, &rb))
		}

		s.resetCooldown(req.A)
		s.resetCooldown(req.B)
	}
	return res
}

// valid re-checks that both parents still exist and neither has bred this tick.
func (s *BreedingSystem) valid(req BreedingRequest) bool {
	if req.A == req.B {
		return false
	}
	_, _, a, ok := s.store.Get(req.A)
	if !ok {
		return false
	}
	_, _, b, ok := s.store.Get(req.B)
	if !ok {
		return false
	}
	return a.MatingCooldown == 0 && b.MatingCooldown == 0
}

func (s *BreedingSystem) litterSize() int {
	return s.rng.Intn(s.params.LitterMax-s.params.LitterMin+1) + s.params.LitterMin
}

// childPosition takes x from parent A and z from parent B.
// If that cell is water the child is placed on parent A.
func (s *BreedingSystem) childPosition(a, b components.Position) components.Position {
	p := components.Position{X: a.X, Z: b.Z}
	if !s.grid.Walkable(p.X, p.Z) {
		return a
	}
	return p
}

func (s *BreedingSystem) spawnChild(pa, pb components.Position, a, b *components.Rabbit) Birth {
	gen := a.Generation
	if b.Generation > gen {
		gen = b.Generation
	}
	id := CombineIDs(a.ID, b.ID, s.store.NextSerial())
	pos := s.childPosition(pa, pb)

	vitals := components.Vitals{Hunger: s.params.OffspringHunger, Thirst: s.params.OffspringThirst}
	rabbit := components.Rabbit{
		ID:                    id,
		ParentA:               a.ID,
		ParentB:               b.ID,
		Generation:            gen + 1,
		SightDistance:         s.params.Template.SightDistance,
		SatisfactionThreshold: s.params.Template.SatisfactionThreshold,
		FullThreshold:         s.params.Template.FullThreshold,
	}
	e := s.store.Spawn(pos, vitals, rabbit)

	return Birth{Entity: e, ID: id, ParentA: a.ID, ParentB: b.ID, Position: pos}
}

func (s *BreedingSystem) resetCooldown(e ecs.Entity) {
	if _, _, r, ok := s.store.Get(e); ok {
		r.MatingCooldown = s.params.Cooldown
	}
}
