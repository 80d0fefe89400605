package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/bubbles/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	// Every method is nil-safe
	if err := om.WriteShot(ShotRecord{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteGame(GameSummary{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteHallOfFame(NewHallOfFame(3)); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" || om.Close() != nil {
		t.Error("nil manager should report no dir and close cleanly")
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteShot(ShotRecord{Game: 1, Shot: i, Color: "red", Cell: "0,4,0"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteGame(GameSummary{Game: 1, FinalScore: 40}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Defaults()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "shots.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("shots.csv has %d lines, want header + 3", len(lines))
	}
	if lines[0] != "game,shot,color,cell,cluster,floating,score,attempts,layers" {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Count(string(data), "game,shot") != 1 {
		t.Error("header written more than once")
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not reload: %v", err)
	}
}

func TestHallOfFame(t *testing.T) {
	hof := NewHallOfFame(3)
	for i, score := range []int{50, 10, 90, 30, 90} {
		hof.Consider(GameSummary{Game: i + 1, FinalScore: score})
	}

	entries := hof.Entries()
	if len(entries) != 3 {
		t.Fatalf("size = %d, want 3", len(entries))
	}
	wantGames := []int{3, 5, 1}
	for i, g := range wantGames {
		if entries[i].Game != g {
			t.Errorf("rank %d game = %d, want %d", i+1, entries[i].Game, g)
		}
	}
	if hof.Best() != 90 {
		t.Errorf("best = %d", hof.Best())
	}
	if hof.Consider(GameSummary{Game: 9, FinalScore: 5}) {
		t.Error("a low score should not enter a full hall")
	}

	data, err := hof.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 3 || decoded[0]["rank"].(float64) != 1 {
		t.Errorf("json = %s", data)
	}
}

func TestRecorderWiresOutput(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRecorder(om, nil)

	ctrl := newTestController()
	ctrl.SetSink(rec.Record)
	ctrl.OnStart()
	fireAt(t, ctrl, 0, 4, 0)
	fireAt(t, ctrl, 0, 1, 0)

	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	if len(rec.Games()) != 1 || rec.HallOfFame().Best() != 170 {
		t.Errorf("games = %+v", rec.Games())
	}

	for _, name := range []string{"shots.csv", "games.csv", "bookmarks.csv", "hall_of_fame.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	data, _ := os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if !strings.Contains(string(data), string(BookmarkBigCombo)) {
		t.Errorf("17-bubble pop should be bookmarked, got %q", data)
	}
}
