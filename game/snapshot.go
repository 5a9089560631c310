package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/inspector"
	"github.com/pthm-cable/warren/renderer"
	"github.com/pthm-cable/warren/systems"
)

// Snapshot returns a read-only copy of the population as of the last gated tick.
// The frame is cached until the next tick.
func (g *Game) Snapshot() *inspector.Frame {
	if g.frame != nil {
		return g.frame
	}

	actions := make(map[ecs.Entity]systems.Branch, g.pop.Len())
	for _, in := range g.behavior.Intents() {
		actions[in.Entity] = in.Branch
	}

	frame := &inspector.Frame{
		Tick:             g.tick,
		Population:       g.pop.Len(),
		Cap:              g.pop.Cap(),
		AvailablePatches: g.foliage.AvailableCount(),
		TotalPatches:     len(g.foliage.Patches()),
		Agents:           make([]inspector.AgentView, 0, g.pop.Len()),
	}

	for _, e := range g.pop.All() {
		pos, vitals, rabbit, ok := g.store.Get(e)
		if !ok {
			continue
		}
		view := inspector.AgentView{
			Entity:         e,
			ID:             rabbit.ID,
			X:              pos.X,
			Z:              pos.Z,
			Hunger:         vitals.Hunger,
			Thirst:         vitals.Thirst,
			Age:            rabbit.Age,
			MatingCooldown: rabbit.MatingCooldown,
			Generation:     rabbit.Generation,
			Action:         "none",
		}
		if b, ok := actions[e]; ok {
			view.Action = b.String()
		}
		if perc := g.store.Perception(e); perc != nil {
			for _, p := range perc.Partners {
				if _, _, pr, ok := g.store.Get(p); ok {
					view.Partners = append(view.Partners, pr.ID)
				}
			}
		}
		frame.Agents = append(frame.Agents, view)
	}

	g.frame = frame
	return frame
}

// visiblePatches lists the patches a viewer should draw.
func (g *Game) visiblePatches() []renderer.PatchCell {
	var out []renderer.PatchCell
	for _, e := range g.foliage.Patches() {
		pos, fol, ok := g.foliage.Get(e)
		if !ok || !fol.Visible() {
			continue
		}
		out = append(out, renderer.PatchCell{X: pos.X, Z: pos.Z})
	}
	return out
}
