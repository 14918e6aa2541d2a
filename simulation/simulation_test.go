package simulation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/systems"
	"github.com/pthm-cable/critters/telemetry"
	"github.com/pthm-cable/critters/world"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func newTestSimulation(t *testing.T, cfg *config.Config, spawnChance float64) *Simulation {
	t.Helper()
	w := world.New(100, 100, nil, world.Options{
		FoodCap:         cfg.Food.Cap,
		FoodSpawnChance: spawnChance,
		InitialEnergy:   cfg.Needs.InitialEnergy,
		RNG:             rand.New(rand.NewSource(9)),
	})
	return New(w, systems.NewBehaviorSystem(cfg, systems.NewBrain(cfg), nil, nil), nil)
}

func addCreature(w *world.World, name string, x, y float64, needs components.Needs) ecs.Entity {
	e := w.AddCreature(name, x, y)
	_, _, n, _ := w.Creature(e)
	*n = needs
	return e
}

func TestNewWorldFromConfig(t *testing.T) {
	cfg := testConfig(t)
	w := NewWorldFromConfig(cfg, rand.New(rand.NewSource(1)))

	if w.Width() != 500 || w.Height() != 500 {
		t.Errorf("world size %dx%d, want 500x500", w.Width(), w.Height())
	}
	if w.CreatureCount() != 10 {
		t.Fatalf("expected 10 founders, got %d", w.CreatureCount())
	}

	i := 0
	w.EachCreature(func(_ ecs.Entity, pos *components.Position, ident *components.Identity, needs *components.Needs, _ *components.Mind) {
		if pos.X != 250 || pos.Y != 250 {
			t.Errorf("founder %d at (%v, %v), want centre", i, pos.X, pos.Y)
		}
		if ident.ID != uint32(i) {
			t.Errorf("founder %d has id %d", i, ident.ID)
		}
		if needs.Energy != 100 {
			t.Errorf("founder %d energy %v", i, needs.Energy)
		}
		i++
	})
}

func TestForcedFoodSpawn(t *testing.T) {
	cfg := testConfig(t)
	sim := newTestSimulation(t, cfg, 1.0)

	for i := 1; i <= 10; i++ {
		sim.Step(cfg.Physics.DT)
		if !sim.LastStep().FoodSpawned {
			t.Fatalf("tick %d: forced spawn did not trigger", i)
		}
		if got := sim.World().FoodCount(); got != i {
			t.Fatalf("tick %d: food count %d, want %d", i, got, i)
		}
	}

	for i := 0; i < 300; i++ {
		sim.Step(cfg.Physics.DT)
	}
	if got := sim.World().FoodCount(); got != 200 {
		t.Errorf("food count %d, want cap 200", got)
	}
	if sim.World().CreatureCount() != 0 {
		t.Error("food spawning must never create creatures")
	}
}

func TestDeadCreatureRemoved(t *testing.T) {
	cfg := testConfig(t)
	sim := newTestSimulation(t, cfg, 0)
	w := sim.World()

	dying := addCreature(w, "dying", 10, 10, components.Needs{Energy: 0})
	survivor := addCreature(w, "survivor", 20, 20, components.Needs{Energy: 50})

	sim.Step(0.1)

	if w.IsCreature(dying) {
		t.Error("dead creature should be pruned in the step that flagged it")
	}
	if !w.IsCreature(survivor) {
		t.Error("living creature should remain")
	}
	stats := sim.LastStep()
	if stats.Deaths != 1 || stats.Processed != 1 {
		t.Errorf("unexpected step stats %+v", stats)
	}
}

func TestDeathReleasesPartner(t *testing.T) {
	cfg := testConfig(t)
	sim := newTestSimulation(t, cfg, 0)
	w := sim.World()

	a := addCreature(w, "a", 50, 50, components.Needs{Energy: 50, Age: 600})
	b := addCreature(w, "b", 90, 90, components.Needs{Energy: 50, Boredom: 10})
	if !sim.Behavior().Engage(w, a, b) {
		// b is not eligible by boredom; link them by hand.
		_, _, _, amind := w.Creature(a)
		_, _, _, bmind := w.Creature(b)
		amind.Engaged, amind.Partner = true, b
		bmind.Engaged, bmind.Partner = true, a
	}

	sim.Step(0.1)

	if w.IsCreature(a) {
		t.Fatal("aged-out creature should be removed")
	}
	_, _, _, bmind := w.Creature(b)
	if bmind.Engaged || bmind.HasPartner() {
		t.Error("survivor must not keep a partner that left the roster")
	}
}

func TestNewbornsWaitForNextStep(t *testing.T) {
	cfg := testConfig(t)
	sim := newTestSimulation(t, cfg, 0)
	w := sim.World()

	a := addCreature(w, "a", 40, 40, components.Needs{Energy: 50, Boredom: 45})
	b := addCreature(w, "b", 40, 40, components.Needs{Energy: 50, Boredom: 45})
	sim.Behavior().Engage(w, a, b)

	sim.Step(0.1)

	stats := sim.LastStep()
	if stats.Births != 1 || stats.Processed != 2 {
		t.Fatalf("unexpected step stats %+v", stats)
	}
	if w.CreatureCount() != 3 {
		t.Fatalf("expected 3 creatures, got %d", w.CreatureCount())
	}

	var child ecs.Entity
	w.EachCreature(func(e ecs.Entity, _ *components.Position, ident *components.Identity, _ *components.Needs, _ *components.Mind) {
		if ident.Name == "Creature 0.1" {
			child = e
		}
	})
	if child.IsZero() {
		t.Fatal("offspring not found")
	}

	_, _, needs, _ := w.Creature(child)
	if needs.Age != 0 || needs.Hunger != 0 {
		t.Errorf("newborn acted in its birth tick: %+v", *needs)
	}

	sim.Step(0.1)
	_, _, needs, _ = w.Creature(child)
	if needs.Age == 0 {
		t.Error("newborn should act on the following step")
	}
}

func TestFoodRemovalVisibleWithinPass(t *testing.T) {
	cfg := testConfig(t)
	sim := newTestSimulation(t, cfg, 0)
	w := sim.World()

	first := addCreature(w, "first", 50, 50, components.Needs{Energy: 50, Hunger: 35})
	second := addCreature(w, "second", 50, 50, components.Needs{Energy: 50, Hunger: 35})
	w.PlaceFood(50, 50)

	sim.Step(0.1)

	_, _, fneeds, _ := w.Creature(first)
	_, _, sneeds, _ := w.Creature(second)
	if math.Abs(fneeds.Energy-(50+30-0.2)) > 1e-9 {
		t.Errorf("first energy = %v, want %v", fneeds.Energy, 50+30-0.2)
	}
	if math.Abs(sneeds.Energy-(50-0.2)) > 1e-9 {
		t.Errorf("second creature ate a removed item: energy %v", sneeds.Energy)
	}
	if w.FoodCount() != 0 {
		t.Errorf("expected empty food roster, got %d", w.FoodCount())
	}
}

// TestLongRunProperties runs a seeded world and checks the per-step
// guarantees on every creature.
func TestLongRunProperties(t *testing.T) {
	cfg := testConfig(t)
	cfg.Food.SpawnChance = 0.5
	rng := rand.New(rand.NewSource(42))
	w := NewWorldFromConfig(cfg, rng)

	rec := telemetry.NewCollector(1, cfg.Physics.DT)
	sim := New(w, systems.NewBehaviorSystem(cfg, systems.NewBrain(cfg), rec, nil), nil)

	const dt = 0.05
	hungerAfterMeal := cfg.Needs.HungerRate * dt
	boredomAfterBirth := cfg.Needs.BoredomRate * dt

	prev := map[uint32]components.Needs{}
	seen := map[uint32]bool{}
	dead := map[ecs.Entity]bool{}

	for step := 0; step < 1500; step++ {
		sim.Step(dt)

		if w.FoodCount() > cfg.Food.Cap {
			t.Fatalf("step %d: food %d exceeds cap", step, w.FoodCount())
		}

		current := map[uint32]components.Needs{}
		w.EachCreature(func(e ecs.Entity, _ *components.Position, ident *components.Identity, needs *components.Needs, mind *components.Mind) {
			if dead[e] {
				t.Errorf("step %d: creature flagged dead in an earlier step is still present", step)
			}
			if mind.Dead {
				dead[e] = true
			}

			if mind.Engaged != mind.HasPartner() {
				t.Errorf("step %d: %s engaged=%v with partner set=%v", step, ident.Name, mind.Engaged, mind.HasPartner())
			}
			if mind.HasPartner() {
				if !w.IsCreature(mind.Partner) {
					t.Errorf("step %d: %s partnered with a removed creature", step, ident.Name)
				} else {
					_, _, _, pmind := w.Creature(mind.Partner)
					if pmind.Partner != e || !pmind.Engaged {
						t.Errorf("step %d: engagement of %s is not symmetric", step, ident.Name)
					}
				}
			}

			if p, ok := prev[ident.ID]; ok {
				if needs.Age < p.Age {
					t.Errorf("step %d: age of %s decreased", step, ident.Name)
				}
				if needs.Hunger < p.Hunger && math.Abs(needs.Hunger-hungerAfterMeal) > 1e-9 {
					t.Errorf("step %d: hunger of %s decreased without a meal", step, ident.Name)
				}
				if needs.Boredom < p.Boredom && needs.Boredom > boredomAfterBirth+1e-9 {
					t.Errorf("step %d: boredom of %s decreased without a reset", step, ident.Name)
				}
				if needs.Energy > p.Energy && math.Abs(needs.Energy-(p.Energy+cfg.Food.EnergyGain-cfg.Needs.EnergyRate*dt)) > 1e-9 {
					t.Errorf("step %d: energy of %s rose without eating", step, ident.Name)
				}
			} else if seen[ident.ID] {
				t.Errorf("step %d: id %d reused", step, ident.ID)
			}
			seen[ident.ID] = true
			current[ident.ID] = *needs
		})
		prev = current
	}

	if sim.Tick() != 1500 {
		t.Errorf("tick = %d, want 1500", sim.Tick())
	}
}

func TestPopulationGrowsOnlyByBirths(t *testing.T) {
	cfg := testConfig(t)
	cfg.Food.SpawnChance = 1
	sim := New(NewWorldFromConfig(cfg, rand.New(rand.NewSource(3))), systems.NewBehaviorSystem(cfg, systems.NewBrain(cfg), nil, nil), nil)

	for i := 0; i < 800; i++ {
		before := sim.World().CreatureCount()
		sim.Step(cfg.Physics.DT)
		stats := sim.LastStep()
		after := sim.World().CreatureCount()
		if after != before-stats.Deaths+stats.Births {
			t.Fatalf("step %d: population %d -> %d with %d deaths and %d births", i, before, after, stats.Deaths, stats.Births)
		}
	}
}

func TestStepRecordsPerf(t *testing.T) {
	cfg := testConfig(t)
	sim := newTestSimulation(t, cfg, 0)
	perf := telemetry.NewPerfCollector(8)
	sim.SetPerf(perf)

	for i := 0; i < 3; i++ {
		sim.Step(cfg.Physics.DT)
	}
	if got := perf.Stats().Samples; got != 3 {
		t.Errorf("perf samples = %d, want 3", got)
	}
}

func TestSample(t *testing.T) {
	cfg := testConfig(t)
	sim := newTestSimulation(t, cfg, 0)
	w := sim.World()

	a := addCreature(w, "a", 0, 0, components.Needs{Energy: 10, Hunger: 1, Boredom: 45, Age: 3})
	b := addCreature(w, "b", 0, 0, components.Needs{Energy: 30, Hunger: 2, Boredom: 45, Age: 4})
	addCreature(w, "c", 0, 0, components.Needs{Energy: 20})
	sim.Behavior().Engage(w, a, b)
	w.PlaceFood(5, 5)

	var sample telemetry.PopulationSample
	sim.Sample(&sample)

	if len(sample.Energies) != 3 || sample.Energies[1] != 30 {
		t.Errorf("unexpected energies %v", sample.Energies)
	}
	if sample.Engaged != 2 {
		t.Errorf("engaged = %d, want 2", sample.Engaged)
	}
	if sample.FoodCount != 1 {
		t.Errorf("food = %d, want 1", sample.FoodCount)
	}

	sim.Sample(&sample)
	if len(sample.Ages) != 3 {
		t.Errorf("resampling should reset buffers, got %d ages", len(sample.Ages))
	}
}
