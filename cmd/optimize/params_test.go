package main

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/bubbles/config"
)

func TestClampRoundsIntegers(t *testing.T) {
	pv := NewParamVector()
	got := pv.Clamp([]float64{1.5, 3.6, -2, 2.4})
	want := []float64{0.95, 4, 1, 2}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("%s = %v, want %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	extracted := pv.ExtractFromConfig(config.Defaults())
	for i, v := range pv.DefaultVector() {
		if math.Abs(extracted[i]-v) > 1e-9 {
			t.Errorf("%s default %v, config has %v", pv.Specs[i].Path, v, extracted[i])
		}
	}
}

func TestApplyKeepsConfigValid(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Defaults()
	cfg.Level.Layers = 2

	pv.ApplyToConfig(cfg, []float64{0.5, 6, 8, 3})
	if cfg.Level.Baseline != 1 {
		t.Errorf("baseline = %d, want it pulled under the ceiling", cfg.Level.Baseline)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("applied config invalid: %v", err)
	}
}

func TestFitnessPrefersTarget(t *testing.T) {
	fe := NewFitnessEvaluator(NewParamVector(), Target{Shots: 50, HitRate: 0.4}, 1, nil, config.Defaults())

	onTarget := fe.computeFitness(Measurement{Shots: 50, HitRate: 0.4})
	short := fe.computeFitness(Measurement{Shots: 25, HitRate: 0.4})
	missy := fe.computeFitness(Measurement{Shots: 50, HitRate: 0.2})

	if onTarget != 0 {
		t.Errorf("on-target fitness = %v, want 0", onTarget)
	}
	if short <= missy {
		t.Errorf("game length should dominate: short %v, missy %v", short, missy)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{59, "0m59s"},
		{61, "1m01s"},
		{3725, "1h02m05s"},
	}
	for _, tt := range tests {
		if got := formatDuration(time.Duration(tt.secs) * time.Second); got != tt.want {
			t.Errorf("formatDuration(%ds) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
