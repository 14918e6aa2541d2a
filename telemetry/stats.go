package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PopulationSample is a snapshot of the living roster taken at window end.
type PopulationSample struct {
	Energies  []float64
	Hungers   []float64
	Boredoms  []float64
	Ages      []float64
	Engaged   int
	FoodCount int
}

// Reset empties the sample, keeping its buffers.
func (p *PopulationSample) Reset() {
	p.Energies = p.Energies[:0]
	p.Hungers = p.Hungers[:0]
	p.Boredoms = p.Boredoms[:0]
	p.Ages = p.Ages[:0]
	p.Engaged = 0
	p.FoodCount = 0
}

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Creatures int `csv:"creatures"`
	Food      int `csv:"food"`
	Engaged   int `csv:"engaged"`

	// Events during window
	Births      int `csv:"births"`
	Deaths      int `csv:"deaths"`
	Meals       int `csv:"meals"`
	Engagements int `csv:"engagements"`
	FoodSpawned int `csv:"food_spawned"`

	// Needs distribution (sampled at window end)
	EnergyMean  float64 `csv:"energy_mean"`
	EnergyStd   float64 `csv:"energy_std"`
	EnergyP10   float64 `csv:"energy_p10"`
	EnergyP50   float64 `csv:"energy_p50"`
	EnergyP90   float64 `csv:"energy_p90"`
	HungerMean  float64 `csv:"hunger_mean"`
	BoredomMean float64 `csv:"boredom_mean"`
	AgeMean     float64 `csv:"age_mean"`
	AgeMax      float64 `csv:"age_max"`
}

// Percentile returns the p-th quantile of a sorted slice using the
// empirical CDF. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeDistribution returns mean, standard deviation and the 10th, 50th and
// 90th percentiles. All zero for an empty slice.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// Max returns the largest value, or 0 for an empty slice.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Max(values)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("creatures", s.Creatures),
		slog.Int("food", s.Food),
		slog.Int("engaged", s.Engaged),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("meals", s.Meals),
		slog.Int("engagements", s.Engagements),
		slog.Int("food_spawned", s.FoodSpawned),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_std", s.EnergyStd),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("hunger_mean", s.HungerMean),
		slog.Float64("boredom_mean", s.BoredomMean),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("age_max", s.AgeMax),
	)
}

// LogStats logs the window stats using logger.
func (s WindowStats) LogStats(logger *slog.Logger) {
	logger.Info("stats", "window", s)
}
