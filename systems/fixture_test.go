package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
)

// fixture is a small world with every store a gated stage needs.
type fixture struct {
	world   *ecs.World
	grid    *WorldGrid
	pop     *Population
	store   *RabbitStore
	foliage *FoliageField
	rng     *rand.Rand
}

func newFixture(grid *WorldGrid, cap int, seed int64) *fixture {
	w := ecs.NewWorld()
	pop := NewPopulation(cap)
	return &fixture{
		world:   w,
		grid:    grid,
		pop:     pop,
		store:   NewRabbitStore(w, pop),
		foliage: NewFoliageField(w, 20),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// grassGrid returns a w x h grid with the listed cells set to water.
func grassGrid(w, h int, water ...components.Position) *WorldGrid {
	rows := make([][]Voxel, h)
	for z := range rows {
		rows[z] = make([]Voxel, w)
		for x := range rows[z] {
			rows[z][x] = VoxelGrass
		}
	}
	for _, p := range water {
		rows[p.Z][p.X] = VoxelWater
	}
	return NewWorldGridFromRows(rows)
}

var testTemplate = RabbitTemplate{
	SightDistance:         5,
	SatisfactionThreshold: 50,
	FullThreshold:         80,
}

func (f *fixture) spawn(x, z int, hunger, thirst, age uint32) ecs.Entity {
	return f.store.Spawn(
		components.Position{X: x, Z: z},
		components.Vitals{Hunger: hunger, Thirst: thirst},
		components.Rabbit{
			ID:                    uint64(f.pop.Len()),
			Age:                   age,
			SightDistance:         testTemplate.SightDistance,
			SatisfactionThreshold: testTemplate.SatisfactionThreshold,
			FullThreshold:         testTemplate.FullThreshold,
		},
	)
}

func (f *fixture) perception() *PerceptionSystem {
	return NewPerceptionSystem(f.store, f.foliage, f.grid, 20)
}

func (f *fixture) behavior() *BehaviorSystem {
	return NewBehaviorSystem(f.store, f.foliage, f.grid, f.rng, BehaviorParams{
		MinSeekerAge: 20,
		Nutrition:    10,
		DrinkAmount:  10,
	})
}

func (f *fixture) breeding(litterMin, litterMax int) *BreedingSystem {
	return NewBreedingSystem(f.store, f.grid, f.rng, BreedingParams{
		Cooldown:        20,
		LitterMin:       litterMin,
		LitterMax:       litterMax,
		OffspringHunger: 50,
		OffspringThirst: 50,
		Template:        testTemplate,
	})
}

func (f *fixture) lifecycle(interval int) *LifecycleSystem {
	return NewLifecycleSystem(f.store, f.foliage, f.rng, LifecycleParams{
		AgingInterval: interval,
		SenescenceAge: 50,
		MaxAge:        100,
	})
}

func (f *fixture) pos(e ecs.Entity) components.Position {
	p, ok := f.store.Position(e)
	if !ok {
		panic("fixture: rabbit is gone")
	}
	return p
}

func (f *fixture) vitals(e ecs.Entity) components.Vitals {
	_, v, _, ok := f.store.Get(e)
	if !ok {
		panic("fixture: rabbit is gone")
	}
	return *v
}

func (f *fixture) rabbit(e ecs.Entity) components.Rabbit {
	_, _, r, ok := f.store.Get(e)
	if !ok {
		panic("fixture: rabbit is gone")
	}
	return *r
}
