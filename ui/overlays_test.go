package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayRegistryDefaults(t *testing.T) {
	r := NewOverlayRegistry()
	if !r.IsEnabled(OverlayAimGuide) || !r.IsEnabled(OverlayBaseline) {
		t.Error("aim guide and baseline should start enabled")
	}
	if r.IsEnabled(OverlayGrid) || r.IsEnabled(OverlayPerf) {
		t.Error("debug overlays should start disabled")
	}
	if cats := r.Categories(); len(cats) != 2 || cats[0] != "play" || cats[1] != "debug" {
		t.Errorf("categories = %v", cats)
	}
	if n := len(r.ByCategory("debug")); n != 4 {
		t.Errorf("debug overlays = %d, want 4", n)
	}
	if n := len(r.Keys()); n != 6 {
		t.Errorf("bound keys = %d, want 6", n)
	}
}

func TestOverlayKeyPress(t *testing.T) {
	r := NewOverlayRegistry()

	id, on, ok := r.HandleKeyPress(rl.KeyG)
	if !ok || id != OverlayGrid || !on {
		t.Errorf("G -> %q %v %v", id, on, ok)
	}
	if _, on, _ := r.HandleKeyPress(rl.KeyG); on {
		t.Error("second press should turn the grid off")
	}
	if _, _, ok := r.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key should not toggle anything")
	}
	if r.Toggle("missing") {
		t.Error("unknown overlay toggled on")
	}
}
