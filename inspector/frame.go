// Package inspector provides a read-only view of the population for display.
package inspector

import "github.com/mlange-42/ark/ecs"

// AgentView is one agent as seen at the end of a gated tick.
type AgentView struct {
	Entity         ecs.Entity `inspect:"skip"`
	ID             uint64     `inspect:"label"`
	X              int        `inspect:"label"`
	Z              int        `inspect:"label"`
	Hunger         uint32     `inspect:"bar,max:100"`
	Thirst         uint32     `inspect:"bar,max:100"`
	Age            uint32     `inspect:"label"`
	MatingCooldown uint32     `inspect:"label"`
	Generation     uint32     `inspect:"label"`
	Action         string     `inspect:"label"`
	Partners       []uint64   `inspect:"ids,per:4"` // partner candidates in sight
}

// Frame is a snapshot of the simulation taken after a gated tick.
// It holds copies only; nothing in it aliases simulation state.
type Frame struct {
	Tick             int32
	Population       int
	Cap              int
	AvailablePatches int
	TotalPatches     int
	Agents           []AgentView
}

// Find returns the agent with the given identifier.
func (f *Frame) Find(id uint64) (*AgentView, bool) {
	if f == nil {
		return nil, false
	}
	for i := range f.Agents {
		if f.Agents[i].ID == id {
			return &f.Agents[i], true
		}
	}
	return nil, false
}

// At returns the first agent standing on (x, z).
func (f *Frame) At(x, z int) (*AgentView, bool) {
	if f == nil {
		return nil, false
	}
	for i := range f.Agents {
		if f.Agents[i].X == x && f.Agents[i].Z == z {
			return &f.Agents[i], true
		}
	}
	return nil, false
}

// nextSelection steps through the agents in frame order, wrapping at either end.
// With no current selection it starts at the first (dir > 0) or last (dir < 0) agent.
func nextSelection(agents []AgentView, current uint64, has bool, dir int) (uint64, bool) {
	n := len(agents)
	if n == 0 {
		return 0, false
	}
	idx := -1
	if has {
		for i := range agents {
			if agents[i].ID == current {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		if dir < 0 {
			return agents[n-1].ID, true
		}
		return agents[0].ID, true
	}
	idx = ((idx+dir)%n + n) % n
	return agents[idx].ID, true
}
