// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Movement   MovementConfig   `yaml:"movement"`
	Needs      NeedsConfig      `yaml:"needs"`
	Perception PerceptionConfig `yaml:"perception"`
	Behavior   BehaviorConfig   `yaml:"behavior"`
	Lifespan   LifespanConfig   `yaml:"lifespan"`
	Food       FoodConfig       `yaml:"food"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds world dimensions and the founding population.
type WorldConfig struct {
	Width            int `yaml:"width"`
	Height           int `yaml:"height"`
	InitialCreatures int `yaml:"initial_creatures"` // Founders spawn at the world centre
}

// PhysicsConfig holds stepping parameters.
type PhysicsConfig struct {
	DT                float64 `yaml:"dt"`                   // Fixed dt for headless runs
	MaxStepsPerUpdate int     `yaml:"max_steps_per_update"` // Upper bound for the speed control
}

// MovementConfig holds locomotion parameters.
type MovementConfig struct {
	PursuitSpeed    float64 `yaml:"pursuit_speed"`    // Speed when heading to food or a partner
	WanderSpeed     float64 `yaml:"wander_speed"`     // Scale of the random walk
	ArrivalDistance float64 `yaml:"arrival_distance"` // Pre-move distance that counts as arrived
}

// NeedsConfig holds per-unit-time need rates.
type NeedsConfig struct {
	HungerRate    float64 `yaml:"hunger_rate"`
	BoredomRate   float64 `yaml:"boredom_rate"`
	EnergyRate    float64 `yaml:"energy_rate"`
	AgeRate       float64 `yaml:"age_rate"`
	InitialEnergy float64 `yaml:"initial_energy"`
}

// PerceptionConfig holds sensing parameters.
type PerceptionConfig struct {
	VisionRadius float64 `yaml:"vision_radius"`
}

// BehaviorConfig holds the action selection thresholds.
type BehaviorConfig struct {
	HungerSeekThreshold       float64 `yaml:"hunger_seek_threshold"`
	BoredomReproduceThreshold float64 `yaml:"boredom_reproduce_threshold"`
	ReproduceMinEnergy        float64 `yaml:"reproduce_min_energy"`
	PartnerBoredomThreshold   float64 `yaml:"partner_boredom_threshold"` // Eligibility to be chosen as a partner
}

// LifespanConfig holds mortality parameters.
type LifespanConfig struct {
	MaxAge float64 `yaml:"max_age"`
}

// FoodConfig holds the food spawn policy.
type FoodConfig struct {
	Cap         int     `yaml:"cap"`
	SpawnChance float64 `yaml:"spawn_chance"` // Bernoulli trial per tick
	EnergyGain  float64 `yaml:"energy_gain"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds of simulated time per window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	VisionRadiusSq float64 // Perception.VisionRadius squared
	WorldW         float64 // World.Width as float64
	WorldH         float64 // World.Height as float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.ComputeDerived()

	return cfg, nil
}

// Validate reports values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world dimensions must be positive, got %dx%d", c.World.Width, c.World.Height))
	}
	if c.World.InitialCreatures < 0 {
		errs = append(errs, fmt.Errorf("world.initial_creatures must not be negative, got %d", c.World.InitialCreatures))
	}
	if c.Food.SpawnChance < 0 || c.Food.SpawnChance > 1 {
		errs = append(errs, fmt.Errorf("food.spawn_chance must be in [0, 1], got %v", c.Food.SpawnChance))
	}
	if c.Food.Cap < 0 {
		errs = append(errs, fmt.Errorf("food.cap must not be negative, got %d", c.Food.Cap))
	}
	if c.Perception.VisionRadius < 0 {
		errs = append(errs, fmt.Errorf("perception.vision_radius must not be negative, got %v", c.Perception.VisionRadius))
	}
	if c.Physics.DT <= 0 {
		errs = append(errs, fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT))
	}
	return errors.Join(errs...)
}

// ComputeDerived calculates values derived from loaded config.
// Call it again after mutating a loaded config in place.
func (c *Config) ComputeDerived() {
	c.Derived.VisionRadiusSq = c.Perception.VisionRadius * c.Perception.VisionRadius
	c.Derived.WorldW = float64(c.World.Width)
	c.Derived.WorldH = float64(c.World.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
