package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/warren/components"
)

// step runs perception and decision once, the first half of a gated tick.
func step(t *testing.T, ps *PerceptionSystem, bs *BehaviorSystem) BehaviorResult {
	t.Helper()
	require.NoError(t, ps.Update())
	return bs.Update()
}

func TestBehavior_DrinksWhenAdjacentToWater(t *testing.T) {
	g := grassGrid(20, 20, components.Position{X: 10, Z: 10})
	f := newFixture(g, 10, 1)
	a := f.spawn(10, 9, 60, 30, 0)

	res := step(t, f.perception(), f.behavior())

	v := f.vitals(a)
	assert.Equal(t, uint32(40), v.Thirst)
	assert.Equal(t, uint32(60), v.Hunger, "no decay while seeking")
	assert.Equal(t, components.Position{X: 10, Z: 9}, f.pos(a))
	assert.Equal(t, 1, res.Branches[BranchWater])
	assert.Equal(t, []uint64{0}, res.Drank)
}

func TestBehavior_WaterDiagonalIsNotAdjacent(t *testing.T) {
	g := grassGrid(20, 20, components.Position{X: 10, Z: 10})
	f := newFixture(g, 10, 1)
	a := f.spawn(9, 9, 60, 30, 0)

	step(t, f.perception(), f.behavior())

	// Tie on both axes steps along z
	assert.Equal(t, components.Position{X: 9, Z: 10}, f.pos(a))
	assert.Equal(t, uint32(30), f.vitals(a).Thirst)
}

func TestBehavior_RandomWalkPicksLegalNeighbor(t *testing.T) {
	g := grassGrid(11, 11,
		components.Position{X: 4, Z: 4},
		components.Position{X: 6, Z: 4},
		components.Position{X: 4, Z: 6},
		components.Position{X: 6, Z: 6},
	)
	f := newFixture(g, 10, 1)
	a := f.spawn(5, 5, 90, 90, 0)
	ps, bs := f.perception(), f.behavior()

	allowed := map[components.Position]bool{
		{X: 4, Z: 5}: true,
		{X: 6, Z: 5}: true,
		{X: 5, Z: 4}: true,
		{X: 5, Z: 6}: true,
	}
	seen := make(map[components.Position]int)

	for i := 0; i < 400; i++ {
		pos, v, _, ok := f.store.Get(a)
		require.True(t, ok)
		*pos = components.Position{X: 5, Z: 5}
		*v = components.Vitals{Hunger: 90, Thirst: 90}

		res := step(t, ps, bs)
		require.Equal(t, 1, res.Branches[BranchWander])

		got := f.pos(a)
		require.True(t, allowed[got], "moved to %v", got)
		seen[got]++

		v2 := f.vitals(a)
		require.Equal(t, uint32(89), v2.Hunger)
		require.Equal(t, uint32(89), v2.Thirst)
	}

	assert.Len(t, seen, 4)
	for p, n := range seen {
		assert.InDelta(t, 100, n, 45, "cell %v", p)
	}
}

func TestBehavior_RandomWalkWhenBlind(t *testing.T) {
	f := newFixture(grassGrid(10, 10), 10, 1)
	a := f.spawn(5, 5, 30, 30, 0)

	res := step(t, f.perception(), f.behavior())

	start := components.Position{X: 5, Z: 5}
	assert.Equal(t, 1, res.Branches[BranchWander])
	assert.NotEqual(t, start, f.pos(a))
	assert.True(t, start.WithinBox(f.pos(a), 1))
	assert.Equal(t, uint32(29), f.vitals(a).Hunger)
}

func TestBehavior_BoxedInStaysPut(t *testing.T) {
	g := grassGrid(3, 3,
		components.Position{X: 0, Z: 0}, components.Position{X: 1, Z: 0}, components.Position{X: 2, Z: 0},
		components.Position{X: 0, Z: 1}, components.Position{X: 2, Z: 1},
		components.Position{X: 0, Z: 2}, components.Position{X: 1, Z: 2}, components.Position{X: 2, Z: 2},
	)
	f := newFixture(g, 10, 1)
	a := f.spawn(1, 1, 90, 90, 0)

	res := step(t, f.perception(), f.behavior())

	assert.Equal(t, 1, res.Branches[BranchNone])
	assert.Equal(t, components.Position{X: 1, Z: 1}, f.pos(a))
	assert.Equal(t, uint32(90), f.vitals(a).Hunger)
}

func TestBehavior_MateTakesPriority(t *testing.T) {
	f := newFixture(grassGrid(10, 10), 10, 1)
	a := f.spawn(5, 5, 60, 60, 25)
	b := f.spawn(6, 5, 60, 60, 25)
	patch := f.foliage.Add(components.Position{X: 5, Z: 5})

	res := step(t, f.perception(), f.behavior())

	assert.Equal(t, 2, res.Branches[BranchMate])
	assert.Equal(t, []BreedingRequest{{A: a, B: b}, {A: b, B: a}}, res.Requests)
	assert.True(t, f.foliage.Available(patch), "nobody ate")
	assert.Equal(t, components.Position{X: 5, Z: 5}, f.pos(a))
	assert.Equal(t, components.Position{X: 6, Z: 5}, f.pos(b))
}

func TestBehavior_SeekerMustBeOlderThanMinimum(t *testing.T) {
	f := newFixture(grassGrid(10, 10), 10, 1)
	f.spawn(5, 5, 60, 60, 20) // partner-eligible, not a seeker
	f.spawn(5, 5, 60, 60, 20)

	res := step(t, f.perception(), f.behavior())

	assert.Empty(t, res.Requests)
	assert.Zero(t, res.Branches[BranchMate])
}

func TestBehavior_MatesApproachSimultaneously(t *testing.T) {
	f := newFixture(grassGrid(10, 10), 10, 1)
	a := f.spawn(2, 5, 60, 60, 25)
	b := f.spawn(6, 5, 60, 60, 25)

	res := step(t, f.perception(), f.behavior())

	// Both decide against start-of-tick positions
	assert.Equal(t, components.Position{X: 3, Z: 5}, f.pos(a))
	assert.Equal(t, components.Position{X: 5, Z: 5}, f.pos(b))
	assert.Empty(t, res.Requests)
}

func TestBehavior_FoodSeekThenEat(t *testing.T) {
	f := newFixture(grassGrid(10, 10), 10, 1)
	a := f.spawn(5, 5, 30, 40, 0)
	patch := f.foliage.Add(components.Position{X: 5, Z: 7})
	ps, bs := f.perception(), f.behavior()

	step(t, ps, bs)
	assert.Equal(t, components.Position{X: 5, Z: 6}, f.pos(a))
	step(t, ps, bs)
	assert.Equal(t, components.Position{X: 5, Z: 7}, f.pos(a))
	assert.True(t, f.foliage.Available(patch))

	res := step(t, ps, bs)
	assert.Equal(t, uint32(40), f.vitals(a).Hunger)
	assert.False(t, f.foliage.Available(patch))
	require.Len(t, res.Consumed, 1)
	assert.Equal(t, patch, res.Consumed[0].Patch)
	assert.Equal(t, []uint64{0}, res.Fed)
}

func TestBehavior_SharedPatchFirstEaterWins(t *testing.T) {
	f := newFixture(grassGrid(10, 10), 10, 1)
	first := f.spawn(5, 5, 30, 40, 0)
	second := f.spawn(5, 5, 30, 40, 0)
	f.foliage.Add(components.Position{X: 5, Z: 5})

	res := step(t, f.perception(), f.behavior())

	assert.Len(t, res.Consumed, 2, "both tried")
	assert.Equal(t, []uint64{0}, res.Fed)
	assert.Equal(t, uint32(40), f.vitals(first).Hunger)
	assert.Equal(t, uint32(30), f.vitals(second).Hunger)
}

func TestBehavior_BlockedStepIsNone(t *testing.T) {
	g := grassGrid(10, 10, components.Position{X: 5, Z: 6})
	f := newFixture(g, 10, 1)
	a := f.spawn(5, 5, 30, 40, 0)
	f.foliage.Add(components.Position{X: 5, Z: 8})

	bs := f.behavior()
	res := step(t, f.perception(), bs)

	assert.Equal(t, 1, res.Branches[BranchNone])
	assert.Equal(t, components.Position{X: 5, Z: 5}, f.pos(a))
	require.Len(t, bs.Intents(), 1)
	assert.False(t, bs.Intents()[0].Move)
}

func TestBehavior_ThirstierSeeksWater(t *testing.T) {
	g := grassGrid(10, 10, components.Position{X: 5, Z: 9})
	f := newFixture(g, 10, 1)
	a := f.spawn(5, 5, 40, 30, 0)
	f.foliage.Add(components.Position{X: 5, Z: 3})

	res := step(t, f.perception(), f.behavior())

	assert.Equal(t, 1, res.Branches[BranchWater])
	assert.Equal(t, components.Position{X: 5, Z: 6}, f.pos(a))
}

func TestBehavior_StarvesOnWalk(t *testing.T) {
	f := newFixture(grassGrid(10, 10), 10, 1)
	a := f.spawn(5, 5, 1, 5, 0)

	res := step(t, f.perception(), f.behavior())

	require.Len(t, res.Deaths, 1)
	assert.Equal(t, DeathStarvation, res.Deaths[0].Cause)
	assert.False(t, f.store.Alive(a))
	assert.Zero(t, f.pop.Len())
}

func TestBehavior_DecayInAllBranches(t *testing.T) {
	g := grassGrid(20, 20, components.Position{X: 10, Z: 10})
	f := newFixture(g, 10, 1)
	a := f.spawn(10, 9, 60, 30, 0)
	bs := NewBehaviorSystem(f.store, f.foliage, f.grid, f.rng, BehaviorParams{
		MinSeekerAge:       20,
		Nutrition:          10,
		DrinkAmount:        10,
		DecayInAllBranches: true,
	})

	step(t, f.perception(), bs)

	assert.Equal(t, uint32(39), f.vitals(a).Thirst)
	assert.Equal(t, uint32(59), f.vitals(a).Hunger)
}

func TestBehavior_NeverEntersWater(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	rows := make([][]Voxel, 30)
	for z := range rows {
		rows[z] = make([]Voxel, 30)
		for x := range rows[z] {
			if rng.Float64() < 0.3 {
				rows[z][x] = VoxelWater
			} else {
				rows[z][x] = VoxelGrass
			}
		}
	}
	g := NewWorldGridFromRows(rows)
	f := newFixture(g, 100, 3)

	var agents []ecs.Entity
	for z := 0; z < 30 && len(agents) < 20; z += 3 {
		for x := 0; x < 30 && len(agents) < 20; x += 4 {
			if g.Walkable(x, z) {
				agents = append(agents, f.spawn(x, z, 1000, 1000, 0))
			}
		}
	}
	require.NotEmpty(t, agents)

	ps, bs := f.perception(), f.behavior()
	for tick := 0; tick < 200; tick++ {
		step(t, ps, bs)
		for _, e := range agents {
			p := f.pos(e)
			require.True(t, g.Walkable(p.X, p.Z), "tick %d: agent on %v", tick, p)
		}
	}
}
