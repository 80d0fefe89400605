package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeClusterStats(t *testing.T) {
	values := []float64{17, 2, 5, 3, 3}
	mean, p50, p90, max := ComputeClusterStats(values)

	if math.Abs(mean-6) > 0.001 {
		t.Errorf("mean = %v, want 6", mean)
	}
	if math.Abs(p50-3) > 0.001 {
		t.Errorf("p50 = %v, want 3", p50)
	}
	if math.Abs(p90-12.2) > 0.001 {
		t.Errorf("p90 = %v, want 12.2", p90)
	}
	if max != 17 {
		t.Errorf("max = %v, want 17", max)
	}
	if values[0] != 17 {
		t.Error("input slice must not be reordered")
	}
}

func TestComputeClusterStatsEmpty(t *testing.T) {
	mean, p50, p90, max := ComputeClusterStats(nil)
	if mean != 0 || p50 != 0 || p90 != 0 || max != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Landed(1, 2)
	lt.Landed(2, 5)

	lt.Popped(1, 6)
	lt.Popped(2, 6)
	lt.Popped(99, 6) // ceiling bubble, never landed

	if got := lt.MeanAge(); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("MeanAge = %v, want 2.5", got)
	}

	lt.Reset()
	if lt.MeanAge() != 0 {
		t.Error("MeanAge after Reset should be 0")
	}
}
