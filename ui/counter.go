package ui

import "math"

// ScoreCounter eases the displayed score toward the real one, one frame at a
// time. Large jumps close quickly; the last few points tick by one.
type ScoreCounter struct {
	shown int
}

// Update advances the displayed value toward score and returns it.
func (s *ScoreCounter) Update(score int) int {
	if score <= s.shown {
		s.shown = score
		return s.shown
	}
	step := 1 + int(math.Round(float64(score-s.shown)/50))
	s.shown = min(score, s.shown+step)
	return s.shown
}

// Shown returns the displayed value.
func (s *ScoreCounter) Shown() int {
	return s.shown
}

// Reset drops the displayed value to zero.
func (s *ScoreCounter) Reset() {
	s.shown = 0
}
