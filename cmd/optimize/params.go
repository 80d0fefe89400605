// Package main tunes difficulty parameters with CMA-ES so bot games last a
// target number of shots.
package main

import (
	"math"

	"github.com/pthm-cable/bubbles/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // rounded before use
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of difficulty parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "color_step", Path: "turn.color_step", Min: 0.05, Max: 0.95, Default: 0.77},
			{Name: "palette_size", Path: "turn.palette_size", Min: 2, Max: 6, Default: 4, Integer: true},
			{Name: "shot_attempts", Path: "turn.shot_attempts", Min: 1, Max: 8, Default: 3, Integer: true},
			{Name: "baseline", Path: "level.baseline", Min: 0, Max: 3, Default: 1, Integer: true},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp bounds every value and rounds the integer ones.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := math.Max(spec.Min, math.Min(spec.Max, v[i]))
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Turn.ColorStep = clamped[0]
	cfg.Turn.PaletteSize = int(clamped[1])
	cfg.Turn.ShotAttempts = int(clamped[2])
	// The baseline has to stay under the ceiling
	cfg.Level.Baseline = min(int(clamped[3]), cfg.Level.Layers-1)
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Turn.ColorStep,
		float64(cfg.Turn.PaletteSize),
		float64(cfg.Turn.ShotAttempts),
		float64(cfg.Level.Baseline),
	}
}
