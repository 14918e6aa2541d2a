package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/world"
)

// testConfig returns the default config.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

// newTestWorld returns an empty 100x100 world with spawning disabled.
func newTestWorld(cfg *config.Config) *world.World {
	return world.New(100, 100, nil, world.Options{
		FoodCap:       cfg.Food.Cap,
		InitialEnergy: cfg.Needs.InitialEnergy,
		RNG:           rand.New(rand.NewSource(5)),
	})
}

// addCreature adds a creature with the given needs.
func addCreature(w *world.World, name string, x, y float64, needs components.Needs) ecs.Entity {
	e := w.AddCreature(name, x, y)
	_, _, n, _ := w.Creature(e)
	*n = needs
	return e
}
