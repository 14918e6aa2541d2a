package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the simulation step.
const (
	PhaseFood     = "food"
	PhaseBehavior = "behavior"
	PhasePrune    = "prune"
)

var phases = []string{PhaseFood, PhaseBehavior, PhasePrune}

// Phases returns the step phases in execution order.
func Phases() []string {
	return append([]string(nil), phases...)
}

// PerfCollector tracks step timings over a rolling window of ticks.
type PerfCollector struct {
	windowSize  int
	ticks       []time.Duration
	phaseTotals []map[string]time.Duration
	writeIndex  int
	sampleCount int

	current    map[string]time.Duration
	tickStart  time.Time
	phaseStart time.Time
	lastPhase  string
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	p := &PerfCollector{
		windowSize:  windowSize,
		ticks:       make([]time.Duration, windowSize),
		phaseTotals: make([]map[string]time.Duration, windowSize),
	}
	for i := range p.phaseTotals {
		p.phaseTotals[i] = make(map[string]time.Duration, len(phases))
	}
	return p
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = p.phaseTotals[p.writeIndex]
	clear(p.current)
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes the tick and stores the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.ticks[p.writeIndex] = now.Sub(p.tickStart)
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds averaged timings.
type PerfStats struct {
	AvgTick time.Duration
	MaxTick time.Duration
	Phases  map[string]time.Duration
	Samples int
}

// Stats averages the samples currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{Phases: make(map[string]time.Duration, len(phases)), Samples: p.sampleCount}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	for i := 0; i < p.sampleCount; i++ {
		total += p.ticks[i]
		if p.ticks[i] > stats.MaxTick {
			stats.MaxTick = p.ticks[i]
		}
		for name, d := range p.phaseTotals[i] {
			stats.Phases[name] += d
		}
	}
	stats.AvgTick = total / time.Duration(p.sampleCount)
	for name := range stats.Phases {
		stats.Phases[name] /= time.Duration(p.sampleCount)
	}
	return stats
}

// PerfStatsCSV is the flat CSV form of PerfStats, in microseconds.
type PerfStatsCSV struct {
	WindowEnd  int32   `csv:"window_end"`
	AvgTickUS  float64 `csv:"avg_tick_us"`
	MaxTickUS  float64 `csv:"max_tick_us"`
	FoodUS     float64 `csv:"food_us"`
	BehaviorUS float64 `csv:"behavior_us"`
	PruneUS    float64 `csv:"prune_us"`
}

// ToCSV converts to the CSV record form.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	us := func(d time.Duration) float64 { return float64(d) / float64(time.Microsecond) }
	return PerfStatsCSV{
		WindowEnd:  windowEnd,
		AvgTickUS:  us(s.AvgTick),
		MaxTickUS:  us(s.MaxTick),
		FoodUS:     us(s.Phases[PhaseFood]),
		BehaviorUS: us(s.Phases[PhaseBehavior]),
		PruneUS:    us(s.Phases[PhasePrune]),
	}
}

// LogStats logs the averaged timings.
func (s PerfStats) LogStats(logger *slog.Logger) {
	logger.Info("perf",
		"avg_tick", s.AvgTick,
		"max_tick", s.MaxTick,
		"food", s.Phases[PhaseFood],
		"behavior", s.Phases[PhaseBehavior],
		"prune", s.Phases[PhasePrune],
		"samples", s.Samples,
	)
}
