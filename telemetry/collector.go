// Package telemetry provides windowed population statistics and CSV output.
package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	births      int
	deaths      int
	meals       int
	engagements int
	foodSpawned int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordBirth records an offspring joining the roster.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records a death flag latching.
func (c *Collector) RecordDeath() {
	c.deaths++
}

// RecordMeal records a food item being eaten.
func (c *Collector) RecordMeal() {
	c.meals++
}

// RecordEngagement records a courtship forming.
func (c *Collector) RecordEngagement() {
	c.engagements++
}

// RecordFoodSpawn records a food item spawned by the world.
func (c *Collector) RecordFoodSpawn() {
	c.foodSpawned++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the current counters and a population
// sample, then resets the counters for the next window.
func (c *Collector) Flush(currentTick int32, sample PopulationSample) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Creatures: len(sample.Energies),
		Food:      sample.FoodCount,
		Engaged:   sample.Engaged,

		Births:      c.births,
		Deaths:      c.deaths,
		Meals:       c.meals,
		Engagements: c.engagements,
		FoodSpawned: c.foodSpawned,
	}
	stats.EnergyMean, stats.EnergyStd, stats.EnergyP10, stats.EnergyP50, stats.EnergyP90 = ComputeDistribution(sample.Energies)
	stats.HungerMean = Mean(sample.Hungers)
	stats.BoredomMean = Mean(sample.Boredoms)
	stats.AgeMean = Mean(sample.Ages)
	stats.AgeMax = Max(sample.Ages)

	c.windowStartTick = currentTick
	c.births = 0
	c.deaths = 0
	c.meals = 0
	c.engagements = 0
	c.foodSpawned = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
