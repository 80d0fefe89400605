package components

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubbles/lattice"
	"github.com/pthm-cable/bubbles/turn"
)

// Body holds physical properties of an entity.
type Body struct {
	Radius float64 `inspect:"label,fmt:%.2f"`
	Scale  float64 `inspect:"bar,max:1.4"` // render scale, 1 at rest
}

// BubbleRef links an entity to the core bubble it presents.
type BubbleRef struct {
	Bubble *lattice.Bubble `inspect:"skip"`
}

// Projectile marks a bubble in flight.
type Projectile struct {
	Shot     *turn.Shot
	Traveled float64
}

// Shift animates an entity between two points.
type Shift struct {
	From, To r3.Vec
	Elapsed  float64 `inspect:"label,fmt:%.2fs"`
	Duration float64 `inspect:"label,fmt:%.2fs"`
}

// Progress returns the eased completion in [0, 1].
func (s *Shift) Progress() float64 {
	if s.Duration <= 0 || s.Elapsed >= s.Duration {
		return 1
	}
	t := s.Elapsed / s.Duration
	return t * t * (3 - 2*t)
}

// Popping animates a disposed bubble out before the entity is removed.
type Popping struct {
	Elapsed  float64
	Duration float64
}

// Done reports whether the animation has finished.
func (p *Popping) Done() bool {
	return p.Elapsed >= p.Duration
}
