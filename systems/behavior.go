// Package systems implements the per-tick perception, decision and action of creatures.
package systems

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/world"
)

// Recorder receives behavior events. telemetry.Collector implements it.
type Recorder interface {
	RecordMeal()
	RecordEngagement()
	RecordBirth()
	RecordDeath()
}

type nopRecorder struct{}

func (nopRecorder) RecordMeal()       {}
func (nopRecorder) RecordEngagement() {}
func (nopRecorder) RecordBirth()      {}
func (nopRecorder) RecordDeath()      {}

// Birth is an offspring waiting to join the roster.
type Birth struct {
	Name     string
	X, Y     float64
	ParentID uint32
}

// BehaviorSystem runs the per-tick transition of each creature.
type BehaviorSystem struct {
	brain    *Brain
	recorder Recorder
	logger   *slog.Logger

	pursuitSpeed float64
	wanderSpeed  float64
	arrival      float64
	energyGain   float64
	maxAge       float64

	hungerRate  float64
	boredomRate float64
	energyRate  float64
	ageRate     float64

	// Offspring are buffered and join the roster after the pass.
	pending []Birth
}

// NewBehaviorSystem creates a behavior system. recorder and logger may be nil.
func NewBehaviorSystem(cfg *config.Config, brain *Brain, recorder Recorder, logger *slog.Logger) *BehaviorSystem {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BehaviorSystem{
		brain:        brain,
		recorder:     recorder,
		logger:       logger,
		pursuitSpeed: cfg.Movement.PursuitSpeed,
		wanderSpeed:  cfg.Movement.WanderSpeed,
		arrival:      cfg.Movement.ArrivalDistance,
		energyGain:   cfg.Food.EnergyGain,
		maxAge:       cfg.Lifespan.MaxAge,
		hungerRate:   cfg.Needs.HungerRate,
		boredomRate:  cfg.Needs.BoredomRate,
		energyRate:   cfg.Needs.EnergyRate,
		ageRate:      cfg.Needs.AgeRate,
	}
}

// Brain returns the shared decision policy.
func (s *BehaviorSystem) Brain() *Brain {
	return s.brain
}

// IsAlive reports whether a creature is alive: energy above zero, under the
// maximum age and not flagged dead. The first negative answer latches the
// death flag and logs the death; later calls stay negative without logging.
func (s *BehaviorSystem) IsAlive(w *world.World, e ecs.Entity) bool {
	pos, ident, needs, mind := w.Creature(e)
	alive := s.vital(needs, mind)
	if !alive && !mind.Dead {
		mind.Dead = true
		s.recorder.RecordDeath()
		s.logger.Info("creature died",
			"id", ident.ID,
			"name", ident.Name,
			"age", int(needs.Age),
			"x", pos.X,
			"y", pos.Y,
			"starved", needs.Energy <= 0,
		)
	}
	return alive
}

// vital is the read-only form of IsAlive.
func (s *BehaviorSystem) vital(needs *components.Needs, mind *components.Mind) bool {
	return needs.Energy > 0 && !mind.Dead && needs.Age < s.maxAge
}

// Update runs one tick for a living creature: decide, act, then decay needs.
func (s *BehaviorSystem) Update(w *world.World, e ecs.Entity, dt float64) {
	_, _, needs, mind := w.Creature(e)

	mind.Action = s.brain.Decide(needs)

	switch mind.Action {
	case components.ActionWander:
		s.wander(w, e, dt)
	case components.ActionSeekFood:
		s.seekFood(w, e, dt)
	case components.ActionReproduce:
		s.lookForReproduction(w, e, dt)
	}

	s.decay(needs, dt)
}

// decay applies the per-tick need rates. It runs after acting so a meal's
// hunger reset is visible in the same tick.
func (s *BehaviorSystem) decay(needs *components.Needs, dt float64) {
	needs.Hunger += s.hungerRate * dt
	needs.Boredom += s.boredomRate * dt
	needs.Energy -= s.energyRate * dt
	needs.Age += s.ageRate * dt
}

func (s *BehaviorSystem) wander(w *world.World, e ecs.Entity, dt float64) {
	pos, _, _, _ := w.Creature(e)
	Wander(pos, w.RNG(), s.wanderSpeed, dt, float64(w.Width()), float64(w.Height()))
}

func (s *BehaviorSystem) seekFood(w *world.World, e ecs.Entity, dt float64) {
	pos, _, _, _ := w.Creature(e)

	food, ok := s.brain.FindNearestFood(w, pos)
	if !ok {
		s.wander(w, e, dt)
		return
	}

	fpos := w.FoodPosition(food)
	if GoTo(pos, fpos.X, fpos.Y, s.pursuitSpeed, dt) < s.arrival {
		s.eat(w, e, food)
	}
}

// eat consumes a food item. Energy gain is uncapped.
func (s *BehaviorSystem) eat(w *world.World, e, food ecs.Entity) {
	_, _, needs, _ := w.Creature(e)
	needs.Energy += s.energyGain
	needs.Hunger = 0
	w.RemoveFood(food)
	s.recorder.RecordMeal()
}

func (s *BehaviorSystem) lookForReproduction(w *world.World, e ecs.Entity, dt float64) {
	pos, _, _, mind := w.Creature(e)

	if mind.Engaged {
		if s.partnerPresent(w, mind) {
			ppos, _, _, _ := w.Creature(mind.Partner)
			if GoTo(pos, ppos.X, ppos.Y, s.pursuitSpeed, dt) < s.arrival {
				s.Reproduce(w, e)
			}
			return
		}
		// Partner vanished: drop the courtship and look again.
		s.Release(w, e)
	}

	candidate, ok := s.brain.FindPartner(w, e, pos)
	if !ok || !s.Engage(w, e, candidate) {
		s.wander(w, e, dt)
		return
	}

	cpos, _, _, _ := w.Creature(candidate)
	GoTo(pos, cpos.X, cpos.Y, s.pursuitSpeed, dt)
}

// partnerPresent reports whether the partner handle still names a living
// creature in the roster.
func (s *BehaviorSystem) partnerPresent(w *world.World, mind *components.Mind) bool {
	if !mind.HasPartner() || !w.IsCreature(mind.Partner) {
		return false
	}
	_, _, pneeds, pmind := w.Creature(mind.Partner)
	return s.vital(pneeds, pmind)
}

// Engage forms a symmetric courtship between e and other. Eligibility is
// checked again at commit time; a candidate already claimed this pass is
// refused and Engage reports false.
func (s *BehaviorSystem) Engage(w *world.World, e, other ecs.Entity) bool {
	if e == other || !w.IsCreature(other) {
		return false
	}
	_, _, _, mind := w.Creature(e)
	_, _, oneeds, omind := w.Creature(other)
	if mind.Engaged || !s.brain.Eligible(oneeds, omind) {
		return false
	}

	mind.Engaged = true
	mind.Partner = other
	omind.Engaged = true
	omind.Partner = e
	s.recorder.RecordEngagement()
	return true
}

// Release ends e's courtship. A partner that still points back at e is
// released too, so engagement stays symmetric.
func (s *BehaviorSystem) Release(w *world.World, e ecs.Entity) {
	_, _, _, mind := w.Creature(e)
	if mind.HasPartner() && w.IsCreature(mind.Partner) {
		_, _, _, pmind := w.Creature(mind.Partner)
		if pmind.Partner == e {
			pmind.Disengage()
		}
	}
	mind.Disengage()
}

// Reproduce completes a courtship: both parties lose their engagement and
// boredom, and one offspring is queued at e's position. With no partner
// present only e's own engagement is cleared and nothing is born.
func (s *BehaviorSystem) Reproduce(w *world.World, e ecs.Entity) bool {
	pos, ident, needs, mind := w.Creature(e)
	if !s.partnerPresent(w, mind) {
		s.Release(w, e)
		return false
	}

	_, _, pneeds, pmind := w.Creature(mind.Partner)
	pmind.Disengage()
	pneeds.Boredom = 0
	mind.Disengage()
	needs.Boredom = 0

	s.pending = append(s.pending, Birth{
		Name:     fmt.Sprintf("Creature %d.1", ident.ID),
		X:        pos.X,
		Y:        pos.Y,
		ParentID: ident.ID,
	})
	return true
}

// PendingBirths returns the offspring queued since the last flush.
func (s *BehaviorSystem) PendingBirths() []Birth {
	return s.pending
}

// FlushBirths adds queued offspring to the roster and returns how many were born.
// Must not be called while a roster query is open.
func (s *BehaviorSystem) FlushBirths(w *world.World) int {
	n := len(s.pending)
	for _, b := range s.pending {
		w.AddCreature(b.Name, b.X, b.Y)
		s.recorder.RecordBirth()
		s.logger.Debug("creature born", "name", b.Name, "parent", b.ParentID, "x", b.X, "y", b.Y)
	}
	s.pending = s.pending[:0]
	return n
}
