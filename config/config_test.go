package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Level.HalfWidth != 4 || cfg.Level.Layers != 5 || cfg.Level.Baseline != 1 {
		t.Errorf("level defaults = %+v", cfg.Level)
	}
	if cfg.Turn.ShotAttempts != 3 {
		t.Errorf("shot_attempts = %d, want 3", cfg.Turn.ShotAttempts)
	}
	if cfg.Derived.BurstInterval != 50*time.Millisecond {
		t.Errorf("burst interval = %v, want 50ms", cfg.Derived.BurstInterval)
	}
	if cfg.Derived.Bounds.MaxY != cfg.Level.Layers || cfg.Derived.Bounds.MinX != -cfg.Level.HalfWidth {
		t.Errorf("derived bounds = %+v", cfg.Derived.Bounds)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := "level:\n  half_width: 2\n  half_depth: 2\nturn:\n  shot_attempts: 5\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}
	if cfg.Level.HalfWidth != 2 || cfg.Level.HalfDepth != 2 {
		t.Errorf("overlay not applied: %+v", cfg.Level)
	}
	if cfg.Level.Layers != 5 {
		t.Errorf("unset field lost its default: layers = %d", cfg.Level.Layers)
	}
	if cfg.Turn.ShotAttempts != 5 || cfg.Turn.ScorePerBubble != 10 {
		t.Errorf("turn = %+v", cfg.Turn)
	}
	if cfg.Derived.Bounds.Width() != 4 {
		t.Errorf("derived width = %d, want 4", cfg.Derived.Bounds.Width())
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
	}{
		{"baseline at ceiling", "level:\n  baseline: 5\n"},
		{"negative baseline", "level:\n  baseline: -1\n"},
		{"no attempts", "turn:\n  shot_attempts: 0\n"},
		{"palette too small", "turn:\n  palette_size: 1\n"},
		{"palette too large", "turn:\n  palette_size: 9\n"},
		{"zero width", "level:\n  half_width: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.overlay), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load accepted %q", tt.overlay)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLReload(t *testing.T) {
	cfg := Defaults()
	cfg.Turn.ScorePerBubble = 25

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Turn.ScorePerBubble != 25 {
		t.Errorf("score_per_bubble = %d, want 25", loaded.Turn.ScorePerBubble)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() should panic before Init")
		}
	}()
	Cfg()
}
