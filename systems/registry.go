package systems

// Stage identifiers shared by the pipeline, the perf collector and the UI.
const (
	StagePerception  = "perception"
	StageBehavior    = "behavior"
	StageBreeding    = "breeding"
	StageLifecycle   = "lifecycle"
	StageTelemetry   = "telemetry"
	StageStatusLines = "statusLines"
)

// SystemInfo describes a simulation system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // "pipeline" for gated stages, "internal" for observation
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems to the registry.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	// Gated pipeline, in execution order
	r.Register(SystemInfo{ID: StagePerception, Name: "Perception", Description: "Scans sight windows for food, water and partners", Category: "pipeline"})
	r.Register(SystemInfo{ID: StageBehavior, Name: "Decision & Movement", Description: "Chooses one action per agent and applies it", Category: "pipeline"})
	r.Register(SystemInfo{ID: StageBreeding, Name: "Breeding", Description: "Spawns offspring and resets cooldowns", Category: "pipeline"})
	r.Register(SystemInfo{ID: StageLifecycle, Name: "Lifecycle", Description: "Ages agents, removes the dead, regrows foliage", Category: "pipeline"})

	// Observation
	r.Register(SystemInfo{ID: StageTelemetry, Name: "Telemetry", Description: "Records window stats", Category: "internal"})
	r.Register(SystemInfo{ID: StageStatusLines, Name: "Status Lines", Description: "Logs one line per agent", Category: "internal"})
}

// Pipeline returns the gated stages in execution order.
func (r *SystemRegistry) Pipeline() []SystemInfo {
	return r.ByCategory("pipeline")
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
