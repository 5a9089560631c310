package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
)

// Branch identifies which rule of the decision policy an agent followed.
type Branch uint8

const (
	BranchNone Branch = iota
	BranchMate
	BranchWander
	BranchFood
	BranchWater
)

// String returns the display name for a Branch.
func (b Branch) String() string {
	switch b {
	case BranchMate:
		return "mate"
	case BranchWander:
		return "wander"
	case BranchFood:
		return "food"
	case BranchWater:
		return "water"
	default:
		return "none"
	}
}

// BehaviorParams holds the decision policy constants.
type BehaviorParams struct {
	MinSeekerAge       uint32 // mate-seeking requires age > this
	Nutrition          uint32 // hunger gained per patch
	DrinkAmount        uint32 // thirst gained per drink
	VitalCap           uint32 // 0 = unbounded
	DecayInAllBranches bool
}

// Intent is one agent's decision, computed against the start-of-stage state.
type Intent struct {
	Entity  ecs.Entity
	Branch  Branch
	Move    bool
	Dest    components.Position
	Partner ecs.Entity // set when a breeding request is emitted
	Breed   bool
	Patch   ecs.Entity // set when the agent is on its target patch
	Eat     bool
	Drink   bool
	Decay   bool
}

// BehaviorResult collects everything the decision stage produced this tick.
type BehaviorResult struct {
	Requests []BreedingRequest
	Consumed []ResourceConsumed
	Deaths   []Death
	Fed      []uint64 // identifiers of agents that ate
	Drank    []uint64 // identifiers of agents that drank
	Branches [5]int   // count per Branch
}

// BehaviorSystem selects and applies one action per agent per tick.
type BehaviorSystem struct {
	store   *RabbitStore
	foliage *FoliageField
	grid    *WorldGrid
	rng     *rand.Rand
	params  BehaviorParams

	intents   []Intent
	neighbors []components.Position
}

// NewBehaviorSystem creates a behavior system.
func NewBehaviorSystem(store *RabbitStore, foliage *FoliageField, grid *WorldGrid, rng *rand.Rand, params BehaviorParams) *BehaviorSystem {
	return &BehaviorSystem{
		store:     store,
		foliage:   foliage,
		grid:      grid,
		rng:       rng,
		params:    params,
		neighbors: make([]components.Position, 0, 8),
	}
}

// Update decides for every agent, then applies all decisions.
// Deciding first means no agent sees another's move from the same tick.
func (s *BehaviorSystem) Update() BehaviorResult {
	mustGrid(s.grid)

	var res BehaviorResult

	// Pass 1: decide against unmodified state, in registry order
	s.intents = s.intents[:0]
	for _, e := range s.store.Population().All() {
		intent, ok := s.decide(e)
		if !ok {
			continue
		}
		s.intents = append(s.intents, intent)
		if intent.Eat {
			res.Consumed = append(res.Consumed, ResourceConsumed{Patch: intent.Patch, Eater: e})
		}
	}

	// Pass 2: apply
	eaten := s.drainConsumed(res.Consumed)
	for i := range s.intents {
		s.apply(&s.intents[i], eaten, &res)
	}

	return res
}

// Intents returns the decisions from the last Update.
func (s *BehaviorSystem) Intents() []Intent {
	return s.intents
}

// decide evaluates the priority policy for one agent.
func (s *BehaviorSystem) decide(e ecs.Entity) (Intent, bool) {
	pos, vitals, rabbit, ok := s.store.Get(e)
	if !ok {
		return Intent{}, false
	}
	perc := s.store.Perception(e)
	if perc == nil {
		return Intent{}, false
	}

	intent := Intent{Entity: e, Branch: BranchNone}

	// 1. Mate-seek
	if vitals.Sated(rabbit.SatisfactionThreshold) &&
		len(perc.Partners) > 0 &&
		rabbit.Age > s.params.MinSeekerAge &&
		rabbit.MatingCooldown == 0 {
		if partner, ppos, found := s.closestPartner(*pos, perc.Partners); found {
			intent.Branch = BranchMate
			if withinOne(*pos, ppos) {
				intent.Breed = true
				intent.Partner = partner
			} else {
				s.stepIntent(&intent, *pos, ppos)
			}
			return intent, true
		}
	}

	// 2. Random walk when sated or blind to resources
	if vitals.Sated(rabbit.FullThreshold) || !perc.KnowsResources() {
		s.neighbors = s.grid.LegalNeighbors(s.neighbors[:0], *pos)
		if len(s.neighbors) == 0 {
			return intent, true
		}
		intent.Branch = BranchWander
		intent.Move = true
		intent.Dest = s.neighbors[s.rng.Intn(len(s.neighbors))]
		intent.Decay = true
		return intent, true
	}

	// 3. Food-seek
	if vitals.Hunger <= vitals.Thirst && len(perc.Plants) > 0 {
		if patch, ppos, found := s.closestPatch(*pos, perc.Plants); found {
			intent.Branch = BranchFood
			if ppos == *pos {
				intent.Eat = true
				intent.Patch = patch
			} else {
				s.stepIntent(&intent, *pos, ppos)
			}
			s.decayAll(&intent)
			return intent, true
		}
	}

	// 4. Water-seek
	if vitals.Hunger > vitals.Thirst && len(perc.Water) > 0 {
		wpos := closestCell(*pos, perc.Water)
		intent.Branch = BranchWater
		if orthogonallyAdjacent(*pos, wpos) {
			intent.Drink = true
		} else {
			s.stepIntent(&intent, *pos, wpos)
		}
		s.decayAll(&intent)
		return intent, true
	}

	// 5. None
	return intent, true
}

// stepIntent sets a single-cell move toward target if the destination is legal.
// A blocked step leaves the agent in place.
func (s *BehaviorSystem) stepIntent(intent *Intent, from, target components.Position) {
	dest := StepToward(from, target)
	if !s.grid.Walkable(dest.X, dest.Z) {
		intent.Branch = BranchNone
		return
	}
	intent.Move = true
	intent.Dest = dest
}

// decayAll applies vital decay outside the random walk when configured to.
func (s *BehaviorSystem) decayAll(intent *Intent) {
	if s.params.DecayInAllBranches && intent.Branch != BranchNone {
		intent.Decay = true
	}
}

// closestPartner returns the nearest live partner by Manhattan distance; first found wins ties.
func (s *BehaviorSystem) closestPartner(from components.Position, partners []ecs.Entity) (ecs.Entity, components.Position, bool) {
	var best ecs.Entity
	var bestPos components.Position
	bestDist := -1
	for _, p := range partners {
		ppos, ok := s.store.Position(p)
		if !ok {
			continue
		}
		d := from.Manhattan(ppos)
		if bestDist < 0 || d < bestDist {
			best, bestPos, bestDist = p, ppos, d
		}
	}
	return best, bestPos, bestDist >= 0
}

// closestPatch returns the nearest still-available patch by Manhattan distance.
func (s *BehaviorSystem) closestPatch(from components.Position, plants []ecs.Entity) (ecs.Entity, components.Position, bool) {
	var best ecs.Entity
	var bestPos components.Position
	bestDist := -1
	for _, p := range plants {
		ppos, fol, ok := s.foliage.Get(p)
		if !ok || fol.Consumed {
			continue
		}
		d := from.Manhattan(*ppos)
		if bestDist < 0 || d < bestDist {
			best, bestPos, bestDist = p, *ppos, d
		}
	}
	return best, bestPos, bestDist >= 0
}

// closestCell returns the nearest cell by Manhattan distance. cells must not be empty.
func closestCell(from components.Position, cells []components.Position) components.Position {
	best := cells[0]
	bestDist := from.Manhattan(best)
	for _, c := range cells[1:] {
		if d := from.Manhattan(c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// drainConsumed applies consumption messages in order. A patch claimed twice in
// one tick goes to the first eater; the rest find it gone.
func (s *BehaviorSystem) drainConsumed(msgs []ResourceConsumed) map[ecs.Entity]bool {
	eaten := make(map[ecs.Entity]bool, len(msgs))
	for _, m := range msgs {
		if s.foliage.Consume(m.Patch) {
			eaten[m.Eater] = true
		}
	}
	return eaten
}

// apply writes one intent back to the agent.
func (s *BehaviorSystem) apply(intent *Intent, eaten map[ecs.Entity]bool, res *BehaviorResult) {
	pos, vitals, rabbit, ok := s.store.Get(intent.Entity)
	if !ok {
		return
	}
	res.Branches[intent.Branch]++

	if intent.Move {
		*pos = intent.Dest
	}
	if intent.Breed {
		res.Requests = append(res.Requests, BreedingRequest{A: intent.Entity, B: intent.Partner})
	}
	if intent.Eat && eaten[intent.Entity] {
		vitals.Feed(s.params.Nutrition, s.params.VitalCap)
		res.Fed = append(res.Fed, rabbit.ID)
	}
	if intent.Drink {
		vitals.Drink(s.params.DrinkAmount, s.params.VitalCap)
		res.Drank = append(res.Drank, rabbit.ID)
	}
	if intent.Decay && vitals.Decay() {
		cause := DeathDehydration
		if vitals.Hunger == 0 {
			cause = DeathStarvation
		}
		if d, ok := s.store.Kill(intent.Entity, cause); ok {
			res.Deaths = append(res.Deaths, d)
		}
	}
}
