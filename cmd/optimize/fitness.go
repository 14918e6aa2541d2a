package main

import (
	"log/slog"
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/simulation"
	"github.com/pthm-cable/critters/systems"
	"github.com/pthm-cable/critters/telemetry"
)

// FitnessEvaluator runs headless simulations to evaluate parameter fitness.
type FitnessEvaluator struct {
	baseConfig    *config.Config
	params        *ParamVector
	maxTicks      int32
	maxPopulation int     // Runs that exceed this are treated as collapsed
	targetPop     float64 // Population the quality score rewards
	seeds         []int64

	// Averages from the most recent Evaluate, for progress output.
	lastSurvival float64
	lastQuality  float64
}

// NewFitnessEvaluator creates a new fitness evaluator.
func NewFitnessEvaluator(baseCfg *config.Config, params *ParamVector, maxTicks int32, maxPopulation int, targetPop float64, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		baseConfig:    baseCfg,
		params:        params,
		maxTicks:      maxTicks,
		maxPopulation: maxPopulation,
		targetPop:     targetPop,
		seeds:         seeds,
	}
}

// RunResult holds the result of a single simulation run.
type RunResult struct {
	SurvivalTicks int32
	Exploded      bool
	Windows       []telemetry.WindowStats
}

// Evaluate runs simulations with the given parameters and returns a fitness
// score (lower is better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	x = fe.params.Clamp(x)

	results := make([]RunResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			cfg := *fe.baseConfig
			fe.params.ApplyToConfig(&cfg, x)
			results[idx] = fe.runSimulation(&cfg, s)
		}(i, seed)
	}
	wg.Wait()

	return fe.computeFitness(results)
}

// runSimulation steps one seeded world until extinction, explosion, or maxTicks.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) RunResult {
	logger := slog.New(slog.DiscardHandler)
	rng := rand.New(rand.NewSource(seed))

	collector := telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.DT)
	w := simulation.NewWorldFromConfig(cfg, rng)
	behavior := systems.NewBehaviorSystem(cfg, systems.NewBrain(cfg), collector, logger)
	sim := simulation.New(w, behavior, logger)

	var result RunResult
	var sample telemetry.PopulationSample

	for sim.Tick() < fe.maxTicks {
		sim.Step(cfg.Physics.DT)
		if sim.LastStep().FoodSpawned {
			collector.RecordFoodSpawn()
		}

		if collector.ShouldFlush(sim.Tick()) {
			sim.Sample(&sample)
			result.Windows = append(result.Windows, collector.Flush(sim.Tick(), sample))
		}

		if w.CreatureCount() == 0 {
			break
		}
		if w.CreatureCount() > fe.maxPopulation {
			result.Exploded = true
			break
		}
	}

	result.SurvivalTicks = sim.Tick()
	return result
}

// computeFitness calculates the fitness score from simulation results.
// Lower is better. Primary objective: survival time. Secondary: quality.
func (fe *FitnessEvaluator) computeFitness(results []RunResult) float64 {
	if len(results) == 0 {
		return 0
	}

	var totalFitness, totalSurvival, totalQuality float64
	for _, r := range results {
		survivalRatio := float64(r.SurvivalTicks) / float64(fe.maxTicks)
		if r.Exploded {
			// An unbounded population is a failure, scored like an early extinction.
			survivalRatio *= 0.5
		}

		// Survival dominates; quality only separates runs that last equally long.
		quality := fe.computeQuality(r.Windows)
		totalFitness += -survivalRatio * (1 + 0.2*quality)
		totalSurvival += float64(r.SurvivalTicks)
		totalQuality += quality
	}

	n := float64(len(results))
	fe.lastSurvival = totalSurvival / n
	fe.lastQuality = totalQuality / n
	return totalFitness / n
}

// computeQuality scores how healthy the population looks in [0, 1].
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) < 2 {
		return 0
	}

	// Skip the first window while founders settle.
	windows = windows[1:]

	creatures := make([]float64, len(windows))
	energies := make([]float64, len(windows))
	for i, w := range windows {
		creatures[i] = float64(w.Creatures)
		energies[i] = w.EnergyP50
	}

	// Population stability: low coefficient of variation.
	stability := 1 - clamp01(cv(creatures))

	// Population size: close to target on a log scale.
	meanPop := stat.Mean(creatures, nil)
	size := 0.0
	if meanPop > 0 && fe.targetPop > 0 {
		size = 1 - clamp01(math.Abs(math.Log(meanPop/fe.targetPop))/math.Log(10))
	}

	// Energy: median creatures comfortably above zero.
	initial := fe.baseConfig.Needs.InitialEnergy
	energy := 0.0
	if initial > 0 {
		energy = clamp01(stat.Mean(energies, nil) / initial)
	}

	return 0.4*stability + 0.3*size + 0.3*energy
}

// LastSurvival returns the mean survival in ticks of the last evaluation.
func (fe *FitnessEvaluator) LastSurvival() float64 { return fe.lastSurvival }

// LastQuality returns the mean quality of the last evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 { return fe.lastQuality }

// cv returns the coefficient of variation of values.
func cv(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean, std := stat.MeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
