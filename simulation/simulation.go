// Package simulation advances a world one tick at a time.
package simulation

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/systems"
	"github.com/pthm-cable/critters/telemetry"
	"github.com/pthm-cable/critters/world"
)

// StepStats counts what happened during one Step.
type StepStats struct {
	FoodSpawned bool
	Processed   int
	Deaths      int
	Births      int
}

// Simulation advances a World one tick at a time.
// It is not reentrant: each Step runs to completion before the next.
type Simulation struct {
	world    *world.World
	behavior *systems.BehaviorSystem
	logger   *slog.Logger
	perf     *telemetry.PerfCollector // optional

	tick int32
	last StepStats

	// Reused per step
	roster []ecs.Entity
	dead   []ecs.Entity
}

// New creates a simulation over w driven by behavior.
func New(w *world.World, behavior *systems.BehaviorSystem, logger *slog.Logger) *Simulation {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulation{
		world:    w,
		behavior: behavior,
		logger:   logger,
	}
}

// NewWorldFromConfig builds a world with the configured founders at its centre.
func NewWorldFromConfig(cfg *config.Config, rng *rand.Rand) *world.World {
	founders := make([]world.Founder, cfg.World.InitialCreatures)
	for i := range founders {
		founders[i] = world.Founder{
			Name: fmt.Sprintf("Creature %d", i),
			X:    cfg.Derived.WorldW / 2,
			Y:    cfg.Derived.WorldH / 2,
		}
	}

	return world.New(cfg.World.Width, cfg.World.Height, founders, world.Options{
		FoodCap:         cfg.Food.Cap,
		FoodSpawnChance: cfg.Food.SpawnChance,
		InitialEnergy:   cfg.Needs.InitialEnergy,
		RNG:             rng,
	})
}

// Step advances the world by dt:
//  1. one food spawn trial,
//  2. every creature in the roster snapshot is checked for death and, if
//     alive, runs its transition,
//  3. dead creatures leave the roster and buffered offspring join it.
//
// Offspring born during the pass do not act until the next Step.
func (s *Simulation) Step(dt float64) {
	w := s.world
	stats := StepStats{}

	if s.perf != nil {
		s.perf.StartTick()
		s.perf.StartPhase(telemetry.PhaseFood)
	}
	stats.FoodSpawned = w.SpawnFoodTick()

	if s.perf != nil {
		s.perf.StartPhase(telemetry.PhaseBehavior)
	}
	s.roster = w.Creatures(s.roster[:0])
	s.dead = s.dead[:0]

	for _, e := range s.roster {
		if !s.behavior.IsAlive(w, e) {
			s.dead = append(s.dead, e)
			continue
		}
		s.behavior.Update(w, e, dt)
		stats.Processed++
	}

	if s.perf != nil {
		s.perf.StartPhase(telemetry.PhasePrune)
	}
	for _, e := range s.dead {
		s.behavior.Release(w, e)
		w.RemoveCreature(e)
	}
	stats.Deaths = len(s.dead)
	stats.Births = s.behavior.FlushBirths(w)

	s.tick++
	s.last = stats

	if s.perf != nil {
		s.perf.EndTick()
	}
}

// Sample fills dst with the needs of every creature in the roster and the
// food count. dst's buffers are reused.
func (s *Simulation) Sample(dst *telemetry.PopulationSample) {
	dst.Reset()
	s.world.EachCreature(func(_ ecs.Entity, _ *components.Position, _ *components.Identity, needs *components.Needs, mind *components.Mind) {
		dst.Energies = append(dst.Energies, needs.Energy)
		dst.Hungers = append(dst.Hungers, needs.Hunger)
		dst.Boredoms = append(dst.Boredoms, needs.Boredom)
		dst.Ages = append(dst.Ages, needs.Age)
		if mind.Engaged {
			dst.Engaged++
		}
	})
	dst.FoodCount = s.world.FoodCount()
}

// SetPerf attaches a step timer. nil detaches it.
func (s *Simulation) SetPerf(p *telemetry.PerfCollector) {
	s.perf = p
}

// World returns the simulated world for read access.
func (s *Simulation) World() *world.World { return s.world }

// Behavior returns the behavior system.
func (s *Simulation) Behavior() *systems.BehaviorSystem { return s.behavior }

// Tick returns the number of completed steps.
func (s *Simulation) Tick() int32 { return s.tick }

// LastStep returns the counts from the most recent Step.
func (s *Simulation) LastStep() StepStats { return s.last }
