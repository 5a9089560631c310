package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/warren/components"
)

func TestLifecycle_AgesEveryInterval(t *testing.T) {
	f := newFixture(grassGrid(5, 5), 10, 1)
	a := f.spawn(1, 1, 50, 50, 10)
	_, _, r, _ := f.store.Get(a)
	r.MatingCooldown = 3
	ls := f.lifecycle(5)

	for i := 1; i <= 4; i++ {
		res := ls.Update()
		assert.False(t, res.Aged, "tick %d", i)
	}
	assert.Equal(t, uint32(10), f.rabbit(a).Age)

	res := ls.Update()
	assert.True(t, res.Aged)
	assert.Equal(t, 5, ls.Counter())
	assert.Equal(t, uint32(11), f.rabbit(a).Age)
	assert.Equal(t, uint32(2), f.rabbit(a).MatingCooldown)
}

func TestLifecycle_MaxAgeRemovedAtNextAgingStep(t *testing.T) {
	f := newFixture(grassGrid(5, 5), 10, 1)
	old := f.spawn(1, 1, 50, 50, 100)
	young := f.spawn(2, 2, 50, 50, 0)
	ls := f.lifecycle(5)

	for i := 1; i <= 4; i++ {
		ls.Update()
		require.True(t, f.store.Alive(old), "tick %d", i)
	}

	res := ls.Update()
	require.Len(t, res.Deaths, 1)
	assert.Equal(t, DeathOldAge, res.Deaths[0].Cause)
	assert.False(t, f.store.Alive(old))
	assert.True(t, f.store.Alive(young))
}

func TestLifecycle_ReachingMaxAgeIsDeath(t *testing.T) {
	f := newFixture(grassGrid(5, 5), 10, 1)
	a := f.spawn(1, 1, 50, 50, 99)

	res := f.lifecycle(1).Update()

	require.Len(t, res.Deaths, 1)
	assert.Equal(t, DeathOldAge, res.Deaths[0].Cause)
	assert.Equal(t, uint32(100), res.Deaths[0].Age)
	assert.False(t, f.store.Alive(a))
}

func TestLifecycle_SenescenceCertainOneBeforeMax(t *testing.T) {
	f := newFixture(grassGrid(5, 5), 10, 1)
	f.spawn(1, 1, 50, 50, 98)

	res := f.lifecycle(1).Update()

	require.Len(t, res.Deaths, 1)
	assert.Equal(t, DeathSenescence, res.Deaths[0].Cause)
	assert.Zero(t, f.pop.Len())
}

func TestLifecycle_YoungNeverDie(t *testing.T) {
	f := newFixture(grassGrid(5, 5), 10, 1)
	for i := 0; i < 5; i++ {
		f.spawn(i, 0, 50, 50, 0)
	}
	ls := f.lifecycle(1)

	for i := 0; i < 49; i++ {
		res := ls.Update()
		require.Empty(t, res.Deaths, "step %d", i)
	}
	assert.Equal(t, 5, f.pop.Len())
}

func TestLifecycle_RegrowsEveryTick(t *testing.T) {
	f := newFixture(grassGrid(5, 5), 10, 1)
	patch := f.foliage.Add(components.Position{X: 2, Z: 2})
	require.True(t, f.foliage.Consume(patch))
	ls := f.lifecycle(5)

	regrown := 0
	for i := 0; i < 22; i++ {
		regrown += ls.Update().Regrown
	}
	assert.Equal(t, 1, regrown)
	assert.True(t, f.foliage.Available(patch))
}

func TestLifecycle_DeadAgentRemovedOnce(t *testing.T) {
	f := newFixture(grassGrid(10, 10), 10, 1)
	a := f.spawn(5, 5, 1, 1, 99)

	res := step(t, f.perception(), f.behavior())
	require.Len(t, res.Deaths, 1)

	// Would also die of age, but is already gone
	lres := f.lifecycle(1).Update()
	assert.Empty(t, lres.Deaths)
	_, ok := f.store.Kill(a, DeathOldAge)
	assert.False(t, ok)
	assert.Zero(t, f.pop.Len())
}

func TestLifecycle_SenescenceJudgedOnIncrementedAge(t *testing.T) {
	f := newFixture(grassGrid(10, 5), 60, 1)
	for i := 0; i < 50; i++ {
		f.spawn(i%10, i/10, 50, 50, 48)
	}

	// 48 -> 49 stays below the senescence age, so no roll happens
	res := f.lifecycle(1).Update()
	assert.Empty(t, res.Deaths)
	assert.Equal(t, 50, f.pop.Len())
}
