package systems

import "github.com/mlange-42/ark/ecs"

// BreedingRequest asks Breeding to pair two agents. Produced and drained within one tick.
type BreedingRequest struct {
	A, B ecs.Entity
}

// ResourceConsumed reports that an agent ate a foliage patch. Drained within the same tick.
type ResourceConsumed struct {
	Patch ecs.Entity
	Eater ecs.Entity
}
