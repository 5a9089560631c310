package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
)

// FoliageField manages the food patches anchored to grass cells.
// Patches are never destroyed; they toggle between available and consumed.
type FoliageField struct {
	world          *ecs.World
	mapper         *ecs.Map2[components.Position, components.Foliage]
	foliageMap     *ecs.Map[components.Foliage]
	patches        []ecs.Entity // creation order
	regenThreshold uint32
}

// NewFoliageField creates an empty field in the given world.
func NewFoliageField(w *ecs.World, regenThreshold uint32) *FoliageField {
	return &FoliageField{
		world:          w,
		mapper:         ecs.NewMap2[components.Position, components.Foliage](w),
		foliageMap:     ecs.NewMap[components.Foliage](w),
		regenThreshold: regenThreshold,
	}
}

// Seed places a patch on each grass cell independently with the given probability.
// Cells are visited in row-major order so a seeded rng gives a reproducible field.
func (f *FoliageField) Seed(grid *WorldGrid, probability float64, rng *rand.Rand) int {
	grid = mustGrid(grid)
	placed := 0
	for z := 0; z < grid.Height(); z++ {
		for x := 0; x < grid.Width(); x++ {
			if grid.Classify(x, z) != VoxelGrass {
				continue
			}
			if rng.Float64() < probability {
				f.Add(components.Position{X: x, Z: z})
				placed++
			}
		}
	}
	return placed
}

// Add creates an available patch at p.
func (f *FoliageField) Add(p components.Position) ecs.Entity {
	pos := p
	fol := components.Foliage{}
	e := f.mapper.NewEntity(&pos, &fol)
	f.patches = append(f.patches, e)
	return e
}

// Patches returns all patch handles in creation order.
func (f *FoliageField) Patches() []ecs.Entity {
	return f.patches
}

// Get returns the patch position and state, or ok=false if the handle is gone.
func (f *FoliageField) Get(e ecs.Entity) (pos *components.Position, fol *components.Foliage, ok bool) {
	if !f.world.Alive(e) || !f.foliageMap.Has(e) {
		return nil, nil, false
	}
	pos, fol = f.mapper.Get(e)
	return pos, fol, true
}

// Available reports whether the patch exists and can be eaten.
func (f *FoliageField) Available(e ecs.Entity) bool {
	_, fol, ok := f.Get(e)
	return ok && !fol.Consumed
}

// Consume marks the patch eaten and restarts its regrowth counter.
// Returns false if the patch is gone or was already eaten.
func (f *FoliageField) Consume(e ecs.Entity) bool {
	_, fol, ok := f.Get(e)
	if !ok || fol.Consumed {
		return false
	}
	fol.Consumed = true
	fol.RegenCounter = 0
	return true
}

// Regrow advances every consumed patch by one gated tick.
// A patch whose counter already exceeds the threshold becomes available again.
// Returns the number of patches that came back.
func (f *FoliageField) Regrow() int {
	restored := 0
	for _, e := range f.patches {
		_, fol, ok := f.Get(e)
		if !ok || !fol.Consumed {
			continue
		}
		if fol.RegenCounter > f.regenThreshold {
			fol.Consumed = false
			fol.RegenCounter = 0
			restored++
		} else {
			fol.RegenCounter++
		}
	}
	return restored
}

// AvailableCount returns how many patches can currently be eaten.
func (f *FoliageField) AvailableCount() int {
	n := 0
	for _, e := range f.patches {
		if f.Available(e) {
			n++
		}
	}
	return n
}
