package systems

import "github.com/mlange-42/ark/ecs"

// Population is the ordered registry of live agent handles.
// Iteration follows insertion order, which fixes every "first found" tie-break.
type Population struct {
	order []ecs.Entity
	index map[ecs.Entity]int
	cap   int
}

// NewPopulation creates an empty registry with the given soft cap.
func NewPopulation(cap int) *Population {
	return &Population{
		order: make([]ecs.Entity, 0, cap),
		index: make(map[ecs.Entity]int, cap),
		cap:   cap,
	}
}

// Insert appends a handle. Inserting a handle twice is a no-op.
func (p *Population) Insert(e ecs.Entity) {
	if _, ok := p.index[e]; ok {
		return
	}
	p.index[e] = len(p.order)
	p.order = append(p.order, e)
}

// Remove deletes a handle, preserving the order of the rest.
// Returns false if the handle was not present.
func (p *Population) Remove(e ecs.Entity) bool {
	i, ok := p.index[e]
	if !ok {
		return false
	}
	copy(p.order[i:], p.order[i+1:])
	p.order = p.order[:len(p.order)-1]
	delete(p.index, e)
	for j := i; j < len(p.order); j++ {
		p.index[p.order[j]] = j
	}
	return true
}

// Contains reports whether the handle is registered.
func (p *Population) Contains(e ecs.Entity) bool {
	_, ok := p.index[e]
	return ok
}

// Len returns the number of live agents.
func (p *Population) Len() int {
	return len(p.order)
}

// Cap returns the soft population cap.
func (p *Population) Cap() int {
	return p.cap
}

// AtCap reports whether no further agents may be spawned.
func (p *Population) AtCap() bool {
	return len(p.order) >= p.cap
}

// All returns the handles in insertion order.
// The slice is owned by the registry; copy it before mutating the population.
func (p *Population) All() []ecs.Entity {
	return p.order
}
