// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/bubbles/lattice"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Level     LevelConfig     `yaml:"level"`
	Turn      TurnConfig      `yaml:"turn"`
	Launcher  LauncherConfig  `yaml:"launcher"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// LevelConfig holds the lattice dimensions.
type LevelConfig struct {
	HalfWidth    int     `yaml:"half_width"`
	HalfDepth    int     `yaml:"half_depth"`
	Layers       int     `yaml:"layers"`   // ceiling row index
	Baseline     int     `yaml:"baseline"` // loss row
	BubbleRadius float64 `yaml:"bubble_radius"`
}

// TurnConfig holds turn progression parameters.
type TurnConfig struct {
	ShotAttempts    int     `yaml:"shot_attempts"`     // no-match shots before a layer drops
	ScorePerBubble  int     `yaml:"score_per_bubble"`  // points per popped bubble
	BurstIntervalMs int     `yaml:"burst_interval_ms"` // delay between consecutive pops
	PaletteSize     int     `yaml:"palette_size"`
	ColorStep       float64 `yaml:"color_step"`
}

// LauncherConfig holds projectile parameters used by the hosts.
type LauncherConfig struct {
	Height     float64 `yaml:"height"`
	ShootSpeed float64 `yaml:"shoot_speed"`
	MaxTravel  float64 `yaml:"max_travel"`
	AimSpeed   float64 `yaml:"aim_speed"`
}

// AudioConfig holds sound settings.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// TelemetryConfig holds output settings.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Bounds        lattice.Bounds
	BurstInterval time.Duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the values the lattice and turn logic depend on.
func (c *Config) Validate() error {
	var errs []error
	if c.Level.HalfWidth < 1 || c.Level.HalfDepth < 1 {
		errs = append(errs, fmt.Errorf("level half extents must be >= 1, got %dx%d", c.Level.HalfWidth, c.Level.HalfDepth))
	}
	if c.Level.Layers < 1 {
		errs = append(errs, fmt.Errorf("level.layers must be >= 1, got %d", c.Level.Layers))
	}
	if c.Level.Baseline < 0 || c.Level.Baseline >= c.Level.Layers {
		errs = append(errs, fmt.Errorf("level.baseline must be in [0, %d), got %d", c.Level.Layers, c.Level.Baseline))
	}
	if c.Turn.ShotAttempts < 1 {
		errs = append(errs, fmt.Errorf("turn.shot_attempts must be >= 1, got %d", c.Turn.ShotAttempts))
	}
	if c.Turn.ScorePerBubble < 0 {
		errs = append(errs, fmt.Errorf("turn.score_per_bubble must be >= 0, got %d", c.Turn.ScorePerBubble))
	}
	if c.Turn.BurstIntervalMs < 0 {
		errs = append(errs, fmt.Errorf("turn.burst_interval_ms must be >= 0, got %d", c.Turn.BurstIntervalMs))
	}
	if c.Turn.PaletteSize < 2 || c.Turn.PaletteSize > lattice.MaxPalette {
		errs = append(errs, fmt.Errorf("turn.palette_size must be in [2, %d], got %d", lattice.MaxPalette, c.Turn.PaletteSize))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Bounds = lattice.NewBounds(c.Level.HalfWidth, c.Level.HalfDepth, c.Level.Layers)
	c.Derived.BurstInterval = time.Duration(c.Turn.BurstIntervalMs) * time.Millisecond

	if c.Level.BubbleRadius <= 0 {
		c.Level.BubbleRadius = 0.5
	}
	if c.Turn.ColorStep <= 0 {
		c.Turn.ColorStep = lattice.DefaultColorStep
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
