// Package telemetry provides windowed population statistics, lifetime tracking and CSV output.
package telemetry

// Collector accumulates events within fixed windows of gated ticks and produces WindowStats.
type Collector struct {
	windowTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	births            int
	deathsStarvation  int
	deathsDehydration int
	deathsOldAge      int
	deathsSenescence  int
	meals             int
	drinks            int
	requests          int
	honored           int
	droppedSpawns     int
	regrown           int
	lifespans         []float64
}

// NewCollector creates a new stats collector.
// windowTicks: how many gated ticks each stats window spans.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: int32(windowTicks),
	}
}

// RecordBirth records one offspring.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records a death by its cause name and the agent's lifespan in gated ticks.
func (c *Collector) RecordDeath(cause string, lifespanTicks int32) {
	switch cause {
	case "starvation":
		c.deathsStarvation++
	case "dehydration":
		c.deathsDehydration++
	case "old_age":
		c.deathsOldAge++
	case "senescence":
		c.deathsSenescence++
	}
	if lifespanTicks >= 0 {
		c.lifespans = append(c.lifespans, float64(lifespanTicks))
	}
}

// RecordMeal records a patch eaten.
func (c *Collector) RecordMeal() {
	c.meals++
}

// RecordDrinks records n drinks.
func (c *Collector) RecordDrinks(n int) {
	c.drinks += n
}

// RecordBreeding records one tick of breeding outcomes.
func (c *Collector) RecordBreeding(requests, honored, dropped int) {
	c.requests += requests
	c.honored += honored
	c.droppedSpawns += dropped
}

// RecordRegrowth records patches that became available again.
func (c *Collector) RecordRegrowth(n int) {
	c.regrown += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// PopulationSample is the state of the world sampled at window end.
type PopulationSample struct {
	Population       int
	AvailablePatches int
	TotalPatches     int
	Hunger           []float64
	Thirst           []float64
	Age              []float64
	MaxGeneration    int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample PopulationSample) WindowStats {
	hungerMean, hungerP10, hungerP50, hungerP90 := ComputeDistribution(sample.Hunger)
	thirstMean, thirstP10, thirstP50, thirstP90 := ComputeDistribution(sample.Thirst)
	ageMean, _, ageP50, ageP90 := ComputeDistribution(sample.Age)
	lifespanMean, lifespanStd := MeanStd(c.lifespans)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Population:       sample.Population,
		AvailablePatches: sample.AvailablePatches,
		TotalPatches:     sample.TotalPatches,
		MaxGeneration:    sample.MaxGeneration,

		Births:            c.births,
		DeathsStarvation:  c.deathsStarvation,
		DeathsDehydration: c.deathsDehydration,
		DeathsOldAge:      c.deathsOldAge,
		DeathsSenescence:  c.deathsSenescence,
		Meals:             c.meals,
		Drinks:            c.drinks,
		Regrown:           c.regrown,

		BreedingRequests: c.requests,
		BreedingHonored:  c.honored,
		DroppedSpawns:    c.droppedSpawns,

		HungerMean: hungerMean,
		HungerP10:  hungerP10,
		HungerP50:  hungerP50,
		HungerP90:  hungerP90,

		ThirstMean: thirstMean,
		ThirstP10:  thirstP10,
		ThirstP50:  thirstP50,
		ThirstP90:  thirstP90,

		AgeMean: ageMean,
		AgeP50:  ageP50,
		AgeP90:  ageP90,

		LifespanMean: lifespanMean,
		LifespanStd:  lifespanStd,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = 0
	c.deathsStarvation = 0
	c.deathsDehydration = 0
	c.deathsOldAge = 0
	c.deathsSenescence = 0
	c.meals = 0
	c.drinks = 0
	c.requests = 0
	c.honored = 0
	c.droppedSpawns = 0
	c.regrown = 0
	c.lifespans = c.lifespans[:0]

	return stats
}

// WindowTicks returns the number of gated ticks per window.
func (c *Collector) WindowTicks() int32 {
	return c.windowTicks
}
