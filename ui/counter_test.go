package ui

import "testing"

func TestScoreCounter(t *testing.T) {
	tests := []struct {
		name  string
		start int
		score int
		want  int
	}{
		{"idle", 0, 0, 0},
		{"small gap ticks by one", 0, 10, 1},
		{"large gap jumps", 0, 170, 4}, // 1 + round(3.4)
		{"never overshoots", 9, 10, 10},
		{"drops on reset score", 120, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ScoreCounter{shown: tt.start}
			if got := c.Update(tt.score); got != tt.want {
				t.Errorf("Update(%d) from %d = %d, want %d", tt.score, tt.start, got, tt.want)
			}
		})
	}
}

func TestScoreCounterConverges(t *testing.T) {
	var c ScoreCounter
	frames := 0
	for c.Shown() < 1000 {
		c.Update(1000)
		frames++
		if frames > 1000 {
			t.Fatal("counter never reached the score")
		}
	}
	if frames > 200 {
		t.Errorf("took %d frames to count to 1000", frames)
	}
	c.Reset()
	if c.Shown() != 0 {
		t.Error("Reset should zero the counter")
	}
}
