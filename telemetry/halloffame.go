package telemetry

import (
	"encoding/json"
	"sort"
)

// HallOfFame keeps the best games of a run, ordered by final score.
type HallOfFame struct {
	entries []GameSummary
	maxSize int
}

// NewHallOfFame creates a hall holding at most maxSize games.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 10
	}
	return &HallOfFame{
		entries: make([]GameSummary, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider offers a finished game. Returns true if it made the hall.
func (hof *HallOfFame) Consider(s GameSummary) bool {
	// Ties keep the earlier game ahead
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return hof.entries[i].FinalScore < s.FinalScore
	})
	if idx >= hof.maxSize {
		return false
	}

	hof.entries = append(hof.entries, GameSummary{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = s

	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// Best returns the top score, or 0 when empty.
func (hof *HallOfFame) Best() int {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].FinalScore
}

// Entries returns the games in rank order.
func (hof *HallOfFame) Entries() []GameSummary {
	out := make([]GameSummary, len(hof.entries))
	copy(out, hof.entries)
	return out
}

// Size returns the number of games held.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

type hallEntryJSON struct {
	Rank       int     `json:"rank"`
	Game       int     `json:"game"`
	FinalScore int     `json:"final_score"`
	Shots      int     `json:"shots"`
	Layers     int     `json:"layers"`
	ClusterMax float64 `json:"cluster_max"`
}

// MarshalJSON serializes the hall in rank order.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	out := make([]hallEntryJSON, len(hof.entries))
	for i, e := range hof.entries {
		out[i] = hallEntryJSON{
			Rank:       i + 1,
			Game:       e.Game,
			FinalScore: e.FinalScore,
			Shots:      e.Shots,
			Layers:     e.Layers,
			ClusterMax: e.ClusterMax,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
