package main

import (
	"testing"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/telemetry"
)

func testEvaluator(t *testing.T, maxTicks int32) *FitnessEvaluator {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	cfg.Telemetry.StatsWindow = 1
	return NewFitnessEvaluator(cfg, NewParamVector(), maxTicks, 2000, 50, []int64{42, 1042})
}

func TestRunSimulationExtinction(t *testing.T) {
	fe := testEvaluator(t, 1000)
	cfg := *fe.baseConfig
	cfg.Lifespan.MaxAge = 1
	cfg.Needs.AgeRate = 100

	r := fe.runSimulation(&cfg, 1)
	if r.SurvivalTicks >= fe.maxTicks {
		t.Errorf("population should die out early, survived %d ticks", r.SurvivalTicks)
	}
	if r.Exploded {
		t.Error("extinct run reported as exploded")
	}
}

func TestRunSimulationDeterministic(t *testing.T) {
	fe := testEvaluator(t, 600)
	a := *fe.baseConfig
	b := *fe.baseConfig

	ra := fe.runSimulation(&a, 7)
	rb := fe.runSimulation(&b, 7)

	if ra.SurvivalTicks != rb.SurvivalTicks {
		t.Fatalf("survival differs: %d vs %d", ra.SurvivalTicks, rb.SurvivalTicks)
	}
	if len(ra.Windows) != len(rb.Windows) {
		t.Fatalf("window count differs: %d vs %d", len(ra.Windows), len(rb.Windows))
	}
	for i := range ra.Windows {
		if ra.Windows[i].Creatures != rb.Windows[i].Creatures || ra.Windows[i].Food != rb.Windows[i].Food {
			t.Errorf("window %d differs: %+v vs %+v", i, ra.Windows[i], rb.Windows[i])
		}
	}
}

func TestComputeQuality(t *testing.T) {
	fe := testEvaluator(t, 100)
	initial := fe.baseConfig.Needs.InitialEnergy

	steady := make([]telemetry.WindowStats, 5)
	for i := range steady {
		steady[i] = telemetry.WindowStats{Creatures: 50, EnergyP50: initial}
	}
	if q := fe.computeQuality(steady); q < 0.999 {
		t.Errorf("steady population at target should score ~1, got %v", q)
	}

	swinging := make([]telemetry.WindowStats, 5)
	for i := range swinging {
		n := 5
		if i%2 == 0 {
			n = 500
		}
		swinging[i] = telemetry.WindowStats{Creatures: n, EnergyP50: initial / 4}
	}
	if q := fe.computeQuality(swinging); q >= fe.computeQuality(steady) {
		t.Errorf("swinging population should score lower, got %v", q)
	}

	if q := fe.computeQuality(steady[:1]); q != 0 {
		t.Errorf("single window should score 0, got %v", q)
	}
}

func TestComputeFitness(t *testing.T) {
	fe := testEvaluator(t, 100)

	full := fe.computeFitness([]RunResult{{SurvivalTicks: 100}})
	half := fe.computeFitness([]RunResult{{SurvivalTicks: 50}})
	exploded := fe.computeFitness([]RunResult{{SurvivalTicks: 100, Exploded: true}})

	if !(full < half) {
		t.Errorf("longer survival should be better: full=%v half=%v", full, half)
	}
	if !(full < exploded) {
		t.Errorf("explosion should be penalized: full=%v exploded=%v", full, exploded)
	}
	if fe.LastSurvival() != 100 {
		t.Errorf("last survival = %v, want 100", fe.LastSurvival())
	}
}
