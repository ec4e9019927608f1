package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated flock statistics for a time window.
type WindowStats struct {
	RunID           string  `csv:"run_id"`
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	Agents int `csv:"agents"`

	// Motion (sampled at window end)
	SpeedMean    float64 `csv:"speed_mean"`
	SpeedStd     float64 `csv:"speed_std"`
	Polarization float64 `csv:"polarization"` // |mean unit heading|, 1 = perfectly aligned
	SteerMean    float64 `csv:"steer_mean"`

	// Spacing: distance to nearest other agent
	NearestMean float64 `csv:"nearest_mean"`
	NearestP10  float64 `csv:"nearest_p10"`
	NearestP50  float64 `csv:"nearest_p50"`
	NearestP90  float64 `csv:"nearest_p90"`

	// Path followers
	PathOutsideMean float64 `csv:"path_outside_mean"`

	// Events during window
	NearMisses int `csv:"near_misses"`
	Contacts   int `csv:"contacts"`
	Captures   int `csv:"captures"`
	PathExits  int `csv:"path_exits"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution returns the mean and 10th/50th/90th percentiles.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// ComputeSpread returns the mean and sample standard deviation.
// Fewer than two values have zero spread.
func ComputeSpread(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// Polarization is the length of the mean unit heading: 1 when every agent
// faces the same way, near 0 for random headings.
func Polarization(headings []r3.Vec) float64 {
	if len(headings) == 0 {
		return 0
	}
	var sum r3.Vec
	for _, h := range headings {
		sum = r3.Add(sum, h)
	}
	return r3.Norm(sum) / float64(len(headings))
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("agents", s.Agents),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("polarization", s.Polarization),
		slog.Float64("steer_mean", s.SteerMean),
		slog.Float64("nearest_mean", s.NearestMean),
		slog.Float64("nearest_p10", s.NearestP10),
		slog.Float64("nearest_p50", s.NearestP50),
		slog.Float64("nearest_p90", s.NearestP90),
		slog.Float64("path_outside_mean", s.PathOutsideMean),
		slog.Int("near_misses", s.NearMisses),
		slog.Int("contacts", s.Contacts),
		slog.Int("captures", s.Captures),
		slog.Int("path_exits", s.PathExits),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"agents", s.Agents,
		"speed_mean", s.SpeedMean,
		"polarization", s.Polarization,
		"nearest_p50", s.NearestP50,
		"path_outside_mean", s.PathOutsideMean,
		"near_misses", s.NearMisses,
		"contacts", s.Contacts,
		"captures", s.Captures,
	)
}
