package telemetry

// LifetimeStats tracks per-agent statistics over its lifetime.
type LifetimeStats struct {
	BirthTick  int32
	Generation uint32
	ParentA    uint64
	ParentB    uint64

	Meals    int
	Drinks   int
	Children int
}

// LifetimeTracker manages per-agent lifetime statistics, keyed by agent identifier.
type LifetimeTracker struct {
	stats map[uint64]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint64]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new agent.
func (lt *LifetimeTracker) Register(id uint64, birthTick int32, generation uint32, parentA, parentB uint64) {
	lt.stats[id] = &LifetimeStats{
		BirthTick:  birthTick,
		Generation: generation,
		ParentA:    parentA,
		ParentB:    parentB,
	}
}

// Get returns the lifetime stats for an agent, or nil if not found.
func (lt *LifetimeTracker) Get(id uint64) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an agent's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint64) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// Lifespan returns how many gated ticks the agent has lived, or -1 if unknown.
func (lt *LifetimeTracker) Lifespan(id uint64, currentTick int32) int32 {
	if s := lt.stats[id]; s != nil {
		return currentTick - s.BirthTick
	}
	return -1
}

// RecordMeal increments the meal count.
func (lt *LifetimeTracker) RecordMeal(id uint64) {
	if s := lt.stats[id]; s != nil {
		s.Meals++
	}
}

// RecordDrink increments the drink count.
func (lt *LifetimeTracker) RecordDrink(id uint64) {
	if s := lt.stats[id]; s != nil {
		s.Drinks++
	}
}

// RecordChild increments the children count of both parents.
func (lt *LifetimeTracker) RecordChild(parentA, parentB uint64) {
	if s := lt.stats[parentA]; s != nil {
		s.Children++
	}
	if parentB == parentA {
		return
	}
	if s := lt.stats[parentB]; s != nil {
		s.Children++
	}
}

// Count returns the number of tracked agents.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
