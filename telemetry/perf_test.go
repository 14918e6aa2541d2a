package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorEmpty(t *testing.T) {
	p := NewPerfCollector(10)
	stats := p.Stats()
	if stats.Samples != 0 || stats.AvgTick != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}
}

func TestPerfCollectorPhases(t *testing.T) {
	p := NewPerfCollector(4)
	for i := 0; i < 6; i++ {
		p.StartTick()
		p.StartPhase(PhaseFood)
		p.StartPhase(PhaseBehavior)
		time.Sleep(time.Millisecond)
		p.StartPhase(PhasePrune)
		p.EndTick()
	}

	stats := p.Stats()
	if stats.Samples != 4 {
		t.Errorf("samples = %d, want window size 4", stats.Samples)
	}
	if stats.Phases[PhaseBehavior] < time.Millisecond {
		t.Errorf("behavior phase = %v, want at least 1ms", stats.Phases[PhaseBehavior])
	}
	if stats.AvgTick < stats.Phases[PhaseBehavior] {
		t.Errorf("tick average %v below phase average %v", stats.AvgTick, stats.Phases[PhaseBehavior])
	}
	if stats.MaxTick < stats.AvgTick {
		t.Errorf("max %v below average %v", stats.MaxTick, stats.AvgTick)
	}

	row := stats.ToCSV(42)
	if row.WindowEnd != 42 || row.BehaviorUS < 1000 {
		t.Errorf("unexpected csv row: %+v", row)
	}
}
