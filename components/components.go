// Package components defines ECS components for the simulation.
package components

// Rabbit holds identity, age and reproduction state for one agent.
type Rabbit struct {
	ID                    uint64 `inspect:"label"`
	ParentA               uint64 `inspect:"skip"`
	ParentB               uint64 `inspect:"skip"`
	Generation            uint32 `inspect:"label"`
	Age                   uint32 `inspect:"label"` // aging steps lived
	MatingCooldown        uint32 `inspect:"label"` // aging steps until eligible again
	SightDistance         int    `inspect:"label"` // Chebyshev radius in cells
	SatisfactionThreshold uint32 `inspect:"skip"`
	FullThreshold         uint32 `inspect:"skip"`
}

// MatingReady reports whether the rabbit can be chosen as a partner.
func (r *Rabbit) MatingReady(minAge uint32) bool {
	return r.Age >= minAge && r.MatingCooldown == 0
}

// Foliage is a consumable food patch anchored to a grass cell.
type Foliage struct {
	Consumed     bool   `inspect:"bool"`
	RegenCounter uint32 `inspect:"label"`
}

// Visible reports whether the patch should be drawn and perceived.
func (f *Foliage) Visible() bool {
	return !f.Consumed
}
