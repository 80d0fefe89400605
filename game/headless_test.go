package game

import (
	"testing"

	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/turn"
)

func newTestHeadless(t *testing.T, seed int64) *Headless {
	t.Helper()
	h, err := NewHeadless(config.Defaults(), Options{Seed: seed, Explore: 0.1})
	if err != nil {
		t.Fatalf("NewHeadless: %v", err)
	}
	return h
}

func TestHeadlessPlaysToGameOver(t *testing.T) {
	h := newTestHeadless(t, 7)

	s := h.PlayGame(2000)
	if s.Game != 1 {
		t.Errorf("game = %d, want 1", s.Game)
	}
	if s.Shots == 0 {
		t.Error("no shots fired")
	}
	if s.Layers < 1 {
		t.Errorf("layers = %d, want at least the seeded one", s.Layers)
	}
	if h.Controller().Phase() != turn.PhaseMenu {
		t.Errorf("phase = %v, want menu after the game", h.Controller().Phase())
	}
	// Every bubble not disposed is still in the lattice
	if h.Live() != h.Controller().Level().Lattice().Len() {
		t.Errorf("live = %d, lattice = %d", h.Live(), h.Controller().Level().Lattice().Len())
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestHeadlessShotLimit(t *testing.T) {
	h := newTestHeadless(t, 3)

	for i := 1; i <= 3; i++ {
		s := h.PlayGame(5)
		if s.Game != i {
			t.Errorf("game %d summary has number %d", i, s.Game)
		}
		if s.Shots > 5 {
			t.Errorf("game %d fired %d shots, limit 5", i, s.Shots)
		}
	}
	if got := len(h.Recorder().Games()); got != 3 {
		t.Errorf("recorded %d games, want 3", got)
	}
	if h.Recorder().HallOfFame().Size() != 3 {
		t.Errorf("hall of fame size = %d", h.Recorder().HallOfFame().Size())
	}
}

func TestHeadlessDeterministic(t *testing.T) {
	a := newTestHeadless(t, 11).PlayGame(40)
	b := newTestHeadless(t, 11).PlayGame(40)
	if a.Shots != b.Shots || a.Matches != b.Matches || a.FinalScore != b.FinalScore {
		t.Errorf("same seed diverged: %+v vs %+v", a, b)
	}
}
