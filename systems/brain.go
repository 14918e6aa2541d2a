package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/world"
)

// Brain selects actions and perceives food and partners.
// It holds only immutable thresholds, so one instance is shared by every creature.
type Brain struct {
	hungerSeek       float64
	boredomReproduce float64
	reproduceEnergy  float64
	partnerBoredom   float64
	visionRadiusSq   float64
}

// NewBrain creates a brain from the behavior and perception config.
// cfg must have its derived values computed.
func NewBrain(cfg *config.Config) *Brain {
	return &Brain{
		hungerSeek:       cfg.Behavior.HungerSeekThreshold,
		boredomReproduce: cfg.Behavior.BoredomReproduceThreshold,
		reproduceEnergy:  cfg.Behavior.ReproduceMinEnergy,
		partnerBoredom:   cfg.Behavior.PartnerBoredomThreshold,
		visionRadiusSq:   cfg.Derived.VisionRadiusSq,
	}
}

// Decide picks the action for this tick. Hunger is checked first, so a
// starving creature never courts.
func (b *Brain) Decide(needs *components.Needs) components.Action {
	if needs.Hunger > b.hungerSeek {
		return components.ActionSeekFood
	}
	if needs.Boredom > b.boredomReproduce && needs.Energy > b.reproduceEnergy {
		return components.ActionReproduce
	}
	return components.ActionWander
}

// CanSee reports whether (x, y) is strictly inside the vision radius of pos.
func (b *Brain) CanSee(pos *components.Position, x, y float64) bool {
	return distanceSq(pos.X, pos.Y, x, y) < b.visionRadiusSq
}

// Eligible reports whether a creature may be chosen as a partner.
func (b *Brain) Eligible(needs *components.Needs, mind *components.Mind) bool {
	return needs.Boredom > b.partnerBoredom && !mind.Engaged && !mind.Dead
}

// FindNearestFood scans the whole food roster for the closest visible item.
// Ties go to the item met first in roster order.
func (b *Brain) FindNearestFood(w *world.World, pos *components.Position) (ecs.Entity, bool) {
	var best ecs.Entity
	bestDist := math.Inf(1)
	found := false

	w.EachFood(func(e ecs.Entity, fpos *components.Position, _ *components.Food) {
		d := distanceSq(fpos.X, fpos.Y, pos.X, pos.Y)
		if d < bestDist && b.CanSee(pos, fpos.X, fpos.Y) {
			bestDist = d
			best = e
			found = true
		}
	})

	return best, found
}

// FindPartner returns the first other creature in roster order that is
// eligible and visible. It does not look for the nearest one.
func (b *Brain) FindPartner(w *world.World, self ecs.Entity, pos *components.Position) (ecs.Entity, bool) {
	var partner ecs.Entity
	found := false

	w.EachCreature(func(e ecs.Entity, cpos *components.Position, _ *components.Identity, needs *components.Needs, mind *components.Mind) {
		if found || e == self {
			return
		}
		if b.Eligible(needs, mind) && b.CanSee(pos, cpos.X, cpos.Y) {
			partner = e
			found = true
		}
	})

	return partner, found
}
