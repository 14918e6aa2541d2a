// Package components defines ECS components for the simulation.
package components

import "github.com/mlange-42/ark/ecs"

// Action is the behavior a creature selected for the current tick.
type Action uint8

const (
	ActionWander Action = iota
	ActionSeekFood
	ActionReproduce
)

// String returns the action label.
func (a Action) String() string {
	switch a {
	case ActionWander:
		return "wander"
	case ActionSeekFood:
		return "seek_food"
	case ActionReproduce:
		return "reproduce"
	default:
		return "unknown"
	}
}

// Mind holds the decision and courtship state of a creature.
// Partner is a non-owning handle into the same roster; the zero entity means none.
type Mind struct {
	Action  Action     `inspect:"label"`
	Dead    bool       `inspect:"bool"` // write-once
	Engaged bool       `inspect:"bool"`
	Partner ecs.Entity `inspect:"skip"`
}

// HasPartner reports whether a partner handle is set.
func (m *Mind) HasPartner() bool {
	return !m.Partner.IsZero()
}

// Disengage clears the courtship state.
func (m *Mind) Disengage() {
	m.Engaged = false
	m.Partner = ecs.Entity{}
}

// Food marks a food item entity.
type Food struct {
	ID uint32
}
