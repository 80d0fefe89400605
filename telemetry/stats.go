// Package telemetry records per-shot and per-game statistics and writes them
// out as CSV.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ShotRecord is one resolved shot.
type ShotRecord struct {
	Game     int    `csv:"game"`
	Shot     int    `csv:"shot"`
	Color    string `csv:"color"`
	Cell     string `csv:"cell"`
	Cluster  int    `csv:"cluster"`  // 0 when the shot did not match
	Floating int    `csv:"floating"` // bubbles cut loose by the pop
	Score    int    `csv:"score"`
	Attempts int    `csv:"attempts"`
	Layers   int    `csv:"layers"`
}

// GameSummary holds aggregated statistics for one finished game.
type GameSummary struct {
	Game       int `csv:"game"`
	Shots      int `csv:"shots"`
	Abandoned  int `csv:"abandoned"`
	Matches    int `csv:"matches"`
	Popped     int `csv:"popped"`
	Floating   int `csv:"floating"`
	Layers     int `csv:"layers"`
	FinalScore int `csv:"final_score"`

	HitRate float64 `csv:"hit_rate"` // matches per landed shot

	// Cluster size distribution over matching shots
	ClusterMean float64 `csv:"cluster_mean"`
	ClusterP50  float64 `csv:"cluster_p50"`
	ClusterP90  float64 `csv:"cluster_p90"`
	ClusterMax  float64 `csv:"cluster_max"`

	// Shots a landed bubble survived before popping
	BubbleAgeMean float64 `csv:"bubble_age_mean"`
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

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeClusterStats returns the mean, median, 90th percentile and maximum
// of the given cluster sizes.
func ComputeClusterStats(values []float64) (mean, p50, p90, max float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	max = floats.Max(sorted)
	return mean, p50, p90, max
}

// LogValue implements slog.LogValuer for structured logging.
func (s GameSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("game", s.Game),
		slog.Int("shots", s.Shots),
		slog.Int("abandoned", s.Abandoned),
		slog.Int("matches", s.Matches),
		slog.Int("popped", s.Popped),
		slog.Int("floating", s.Floating),
		slog.Int("layers", s.Layers),
		slog.Int("final_score", s.FinalScore),
		slog.Float64("hit_rate", s.HitRate),
		slog.Float64("cluster_mean", s.ClusterMean),
		slog.Float64("cluster_p90", s.ClusterP90),
		slog.Float64("cluster_max", s.ClusterMax),
		slog.Float64("bubble_age_mean", s.BubbleAgeMean),
	)
}

// LogStats logs the summary using slog.
func (s GameSummary) LogStats() {
	slog.Info("game",
		"game", s.Game,
		"shots", s.Shots,
		"matches", s.Matches,
		"popped", s.Popped,
		"floating", s.Floating,
		"layers", s.Layers,
		"final_score", s.FinalScore,
		"hit_rate", s.HitRate,
		"cluster_mean", s.ClusterMean,
		"cluster_max", s.ClusterMax,
	)
}
