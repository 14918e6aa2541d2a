package main

import (
	"github.com/pthm-cable/critters/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string
	Path    string  // Config path for display (e.g., "food.spawn_chance")
	Min     float64 // Minimum allowed value
	Max     float64 // Maximum allowed value
	Default float64 // Default value from config
}

// ParamVector holds the optimizable parameters and their specs.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the parameter specification for optimization.
// Only parameters that shape whether a population persists are included.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Food supply
			{Name: "spawn_chance", Path: "food.spawn_chance", Min: 0.02, Max: 0.6, Default: 0.1},
			{Name: "energy_gain", Path: "food.energy_gain", Min: 5, Max: 80, Default: 30},

			// Needs
			{Name: "energy_rate", Path: "needs.energy_rate", Min: 0.5, Max: 6, Default: 2},
			{Name: "hunger_rate", Path: "needs.hunger_rate", Min: 2, Max: 30, Default: 10},
			{Name: "boredom_rate", Path: "needs.boredom_rate", Min: 1, Max: 20, Default: 5},

			// Decisions
			{Name: "hunger_seek_threshold", Path: "behavior.hunger_seek_threshold", Min: 5, Max: 80, Default: 30},
			{Name: "boredom_reproduce_threshold", Path: "behavior.boredom_reproduce_threshold", Min: 5, Max: 80, Default: 30},
			{Name: "partner_boredom_threshold", Path: "behavior.partner_boredom_threshold", Min: 5, Max: 100, Default: 40},
			{Name: "reproduce_min_energy", Path: "behavior.reproduce_min_energy", Min: 0, Max: 60, Default: 10},

			// Perception and movement
			{Name: "vision_radius", Path: "perception.vision_radius", Min: 10, Max: 200, Default: 60},
			{Name: "pursuit_speed", Path: "movement.pursuit_speed", Min: 2, Max: 40, Default: 10},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values.
func (pv *ParamVector) DefaultVector() []float64 {
	x := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		x[i] = spec.Default
	}
	return x
}

// Normalize converts raw values to [0, 1] range.
func (pv *ParamVector) Normalize(x []float64) []float64 {
	normalized := make([]float64, len(x))
	for i, spec := range pv.Specs {
		normalized[i] = (x[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0, 1] values back to raw parameter space.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	x := make([]float64, len(normalized))
	for i, spec := range pv.Specs {
		x[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return x
}

// Clamp ensures all parameters are within bounds.
func (pv *ParamVector) Clamp(x []float64) []float64 {
	clamped := make([]float64, len(x))
	for i, spec := range pv.Specs {
		clamped[i] = x[i]
		if clamped[i] < spec.Min {
			clamped[i] = spec.Min
		}
		if clamped[i] > spec.Max {
			clamped[i] = spec.Max
		}
	}
	return clamped
}

// fields maps parameter names to their config fields.
func (pv *ParamVector) fields(cfg *config.Config) map[string]*float64 {
	return map[string]*float64{
		"spawn_chance":                &cfg.Food.SpawnChance,
		"energy_gain":                 &cfg.Food.EnergyGain,
		"energy_rate":                 &cfg.Needs.EnergyRate,
		"hunger_rate":                 &cfg.Needs.HungerRate,
		"boredom_rate":                &cfg.Needs.BoredomRate,
		"hunger_seek_threshold":       &cfg.Behavior.HungerSeekThreshold,
		"boredom_reproduce_threshold": &cfg.Behavior.BoredomReproduceThreshold,
		"partner_boredom_threshold":   &cfg.Behavior.PartnerBoredomThreshold,
		"reproduce_min_energy":        &cfg.Behavior.ReproduceMinEnergy,
		"vision_radius":               &cfg.Perception.VisionRadius,
		"pursuit_speed":               &cfg.Movement.PursuitSpeed,
	}
}

// ApplyToConfig applies parameter values to a config struct and refreshes
// its derived values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, x []float64) {
	fields := pv.fields(cfg)
	for i, spec := range pv.Specs {
		if f, ok := fields[spec.Name]; ok {
			*f = x[i]
		}
	}
	cfg.ComputeDerived()
}

// ExtractFromConfig reads current parameter values from a config.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	fields := pv.fields(cfg)
	x := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		if f, ok := fields[spec.Name]; ok {
			x[i] = *f
		}
	}
	return x
}
