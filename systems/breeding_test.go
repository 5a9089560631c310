package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/warren/components"
)

func TestBreeding_MirroredRequestsBreedOnce(t *testing.T) {
	f := newFixture(grassGrid(10, 10), 200, 1)
	a := f.spawn(5, 5, 60, 60, 25)
	b := f.spawn(5, 5, 60, 60, 25)

	res := f.breeding(1, 2).Update([]BreedingRequest{{A: a, B: b}, {A: b, B: a}})

	assert.Equal(t, 1, res.Honored)
	assert.Equal(t, 1, res.Rejected)
	require.GreaterOrEqual(t, len(res.Births), 1)
	require.LessOrEqual(t, len(res.Births), 2)
	assert.Equal(t, 2+len(res.Births), f.pop.Len())

	for _, birth := range res.Births {
		child := f.rabbit(birth.Entity)
		v := f.vitals(birth.Entity)
		assert.Zero(t, child.Age)
		assert.Equal(t, uint32(50), v.Hunger)
		assert.Equal(t, uint32(50), v.Thirst)
		assert.Equal(t, uint32(1), child.Generation)
		assert.Equal(t, uint64(0), child.ParentA)
		assert.Equal(t, uint64(1), child.ParentB)
		assert.Equal(t, 5, child.SightDistance)
	}

	assert.Equal(t, uint32(20), f.rabbit(a).MatingCooldown)
	assert.Equal(t, uint32(20), f.rabbit(b).MatingCooldown)
}

func TestBreeding_SiblingsHaveDistinctIDs(t *testing.T) {
	f := newFixture(grassGrid(10, 10), 200, 1)
	a := f.spawn(5, 5, 60, 60, 25)
	b := f.spawn(5, 5, 60, 60, 25)

	res := f.breeding(2, 2).Update([]BreedingRequest{{A: a, B: b}})

	require.Len(t, res.Births, 2)
	assert.NotEqual(t, res.Births[0].ID, res.Births[1].ID)
}

func TestBreeding_AtCapStillResetsCooldown(t *testing.T) {
	f := newFixture(grassGrid(20, 20), 200, 1)
	for i := 0; i < 200; i++ {
		f.spawn(i%20, i/20, 60, 60, 25)
	}
	require.True(t, f.pop.AtCap())
	a, b := f.pop.All()[0], f.pop.All()[1]

	res := f.breeding(1, 2).Update([]BreedingRequest{{A: a, B: b}})

	assert.Equal(t, 200, f.pop.Len())
	assert.Empty(t, res.Births)
	assert.Equal(t, 1, res.Honored)
	assert.GreaterOrEqual(t, res.Dropped, 1)
	assert.Equal(t, uint32(20), f.rabbit(a).MatingCooldown)
	assert.Equal(t, uint32(20), f.rabbit(b).MatingCooldown)
}

func TestBreeding_CapNeverExceeded(t *testing.T) {
	f := newFixture(grassGrid(10, 10), 7, 1)
	var reqs []BreedingRequest
	for i := 0; i < 3; i++ {
		a := f.spawn(i, 0, 60, 60, 25)
		b := f.spawn(i, 1, 60, 60, 25)
		reqs = append(reqs, BreedingRequest{A: a, B: b})
	}

	res := f.breeding(2, 2).Update(reqs)

	assert.Equal(t, 7, f.pop.Len())
	assert.Len(t, res.Births, 1)
	assert.Equal(t, 5, res.Dropped)
	assert.Equal(t, 3, res.Honored)
	for _, req := range reqs {
		assert.Equal(t, uint32(20), f.rabbit(req.A).MatingCooldown)
		assert.Equal(t, uint32(20), f.rabbit(req.B).MatingCooldown)
	}
}

func TestBreeding_ChildPosition(t *testing.T) {
	g := grassGrid(6, 6, components.Position{X: 1, Z: 3})
	f := newFixture(g, 200, 1)
	bs := f.breeding(1, 1)

	// x from A, z from B
	a := f.spawn(4, 1, 60, 60, 25)
	b := f.spawn(2, 3, 60, 60, 25)
	res := bs.Update([]BreedingRequest{{A: a, B: b}})
	require.Len(t, res.Births, 1)
	assert.Equal(t, components.Position{X: 4, Z: 3}, res.Births[0].Position)
	assert.Equal(t, components.Position{X: 4, Z: 3}, f.pos(res.Births[0].Entity))

	// (1,3) is water, so the child lands on A
	c := f.spawn(1, 1, 60, 60, 25)
	d := f.spawn(3, 3, 60, 60, 25)
	res = bs.Update([]BreedingRequest{{A: c, B: d}})
	require.Len(t, res.Births, 1)
	assert.Equal(t, components.Position{X: 1, Z: 1}, res.Births[0].Position)
}

func TestBreeding_StaleRequestRejected(t *testing.T) {
	f := newFixture(grassGrid(10, 10), 200, 1)
	a := f.spawn(5, 5, 60, 60, 25)
	b := f.spawn(5, 5, 60, 60, 25)
	f.store.Remove(b)

	res := f.breeding(1, 2).Update([]BreedingRequest{{A: a, B: b}, {A: a, B: a}})

	assert.Equal(t, 2, res.Rejected)
	assert.Empty(t, res.Births)
	assert.Zero(t, f.rabbit(a).MatingCooldown)
}

func TestBreeding_GenerationIsMaxPlusOne(t *testing.T) {
	f := newFixture(grassGrid(10, 10), 200, 1)
	a := f.spawn(5, 5, 60, 60, 25)
	b := f.spawn(5, 5, 60, 60, 25)
	_, _, rb, _ := f.store.Get(b)
	rb.Generation = 4

	res := f.breeding(1, 1).Update([]BreedingRequest{{A: a, B: b}})

	require.Len(t, res.Births, 1)
	assert.Equal(t, uint32(5), f.rabbit(res.Births[0].Entity).Generation)
}
