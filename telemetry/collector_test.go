package telemetry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/lattice"
	"github.com/pthm-cable/bubbles/level"
	"github.com/pthm-cable/bubbles/turn"
)

type fixedColor lattice.Color

func (f fixedColor) Next() lattice.Color { return lattice.Color(f) }

func newTestController() *turn.Controller {
	lvl := level.New(config.LevelConfig{HalfWidth: 2, HalfDepth: 2, Layers: 5, Baseline: 1}, nil)
	ctrl := turn.New(config.TurnConfig{ShotAttempts: 3, ScorePerBubble: 10, PaletteSize: 4}, lvl)
	ctrl.SetColorSource(fixedColor(lattice.Red))
	return ctrl
}

func fireAt(t *testing.T, ctrl *turn.Controller, x, y, z float64) {
	t.Helper()
	shot, ok := ctrl.Fire()
	if !ok {
		t.Fatalf("Fire rejected in %v", ctrl.Phase())
	}
	shot.Rest(r3.Vec{X: x, Y: y, Z: z})
	for ctrl.PendingBurst() > 0 {
		ctrl.DrainBurst()
	}
}

func TestCollectorRecordsShotsAndGames(t *testing.T) {
	var shots []ShotRecord
	var games []GameSummary
	c := NewCollector(
		func(r ShotRecord) { shots = append(shots, r) },
		func(s GameSummary) { games = append(games, s) },
	)

	ctrl := newTestController()
	ctrl.SetSink(c.Record)
	ctrl.OnStart()

	fireAt(t, ctrl, -2, 3, -2) // miss, lands in row 3
	fireAt(t, ctrl, 0, 4, 0)   // hits the ceiling: 17 matched, the miss floats
	fireAt(t, ctrl, 0, 1, 0)   // settles on the baseline

	if len(shots) != 3 {
		t.Fatalf("got %d shot records, want 3", len(shots))
	}
	if shots[0].Cluster != 0 || shots[0].Cell != "-2,3,-2" || shots[0].Attempts != 2 {
		t.Errorf("miss record = %+v", shots[0])
	}
	if shots[1].Cluster != 17 || shots[1].Floating != 1 || shots[1].Score != 180 {
		t.Errorf("match record = %+v", shots[1])
	}
	if shots[1].Color != "red" || shots[1].Game != 1 || shots[1].Shot != 2 {
		t.Errorf("match record = %+v", shots[1])
	}

	if len(games) != 1 {
		t.Fatalf("got %d game summaries, want 1", len(games))
	}
	g := games[0]
	if g.Shots != 3 || g.Matches != 1 || g.Popped != 18 || g.Floating != 1 || g.FinalScore != 180 {
		t.Errorf("summary = %+v", g)
	}
	if math.Abs(g.HitRate-1.0/3.0) > 1e-9 {
		t.Errorf("hit rate = %v", g.HitRate)
	}
	if g.ClusterMax != 17 || g.Layers != 1 {
		t.Errorf("summary = %+v", g)
	}
	// The miss survived one shot, the matching bubble none
	if math.Abs(g.BubbleAgeMean-0.5) > 1e-9 {
		t.Errorf("bubble age = %v, want 0.5", g.BubbleAgeMean)
	}
}

func TestCollectorResetsBetweenGames(t *testing.T) {
	var games []GameSummary
	c := NewCollector(nil, func(s GameSummary) { games = append(games, s) })

	ctrl := newTestController()
	ctrl.SetSink(c.Record)

	for i := 0; i < 2; i++ {
		ctrl.Trigger() // start
		fireAt(t, ctrl, 0, 1, 0)
		ctrl.Trigger() // continue to menu
	}

	if len(games) != 2 {
		t.Fatalf("got %d games, want 2", len(games))
	}
	if games[1].Game != 2 || games[1].Shots != 1 {
		t.Errorf("second game = %+v", games[1])
	}
}

func TestCollectorAbandoned(t *testing.T) {
	c := NewCollector(nil, nil)
	ctrl := newTestController()
	ctrl.SetSink(c.Record)
	ctrl.OnStart()

	shot, _ := ctrl.Fire()
	ctrl.AbandonShot(shot)

	s := c.Summary()
	if s.Shots != 1 || s.Abandoned != 1 || s.HitRate != 0 {
		t.Errorf("summary = %+v", s)
	}
}
