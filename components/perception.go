package components

import "github.com/mlange-42/ark/ecs"

// Perception holds what an agent saw this tick.
// All three sets are rebuilt every gated tick and keep scan order.
type Perception struct {
	Plants   []ecs.Entity `inspect:"skip"`
	Water    []Position   `inspect:"skip"`
	Partners []ecs.Entity `inspect:"skip"`
}

// Reset empties the sets, keeping their backing arrays.
func (p *Perception) Reset() {
	p.Plants = p.Plants[:0]
	p.Water = p.Water[:0]
	p.Partners = p.Partners[:0]
}

// KnowsResources reports whether any food or water is in range.
func (p *Perception) KnowsResources() bool {
	return len(p.Plants) > 0 || len(p.Water) > 0
}
