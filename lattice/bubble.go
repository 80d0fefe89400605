package lattice

import "gonum.org/v1/gonum/spatial/r3"

// State is the lifecycle stage of a bubble.
type State uint8

const (
	StateFalling State = iota // in flight, not part of the lattice
	StateSettled
	StateMarkedForRemoval // removed from the lattice, waiting for the burst queue
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateFalling:
		return "falling"
	case StateSettled:
		return "settled"
	case StateMarkedForRemoval:
		return "marked"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}

// Bubble is the core's view of a bubble entity. Rendering and physics own the
// visual body; the core owns the color and the settled cell.
type Bubble struct {
	ID       uint32
	Color    Color
	Position r3.Vec `inspect:"skip"` // continuous position, snapped to Cell once settled
	Cell     Key
	State    State
	Pinned   bool // kinematic: not moved by physics
}

// NewBubble creates a falling bubble.
func NewBubble(id uint32, color Color) *Bubble {
	return &Bubble{ID: id, Color: color, State: StateFalling}
}

// CellCenter returns the continuous position of a cell's center.
func CellCenter(k Key) r3.Vec {
	return r3.Vec{X: float64(k.X), Y: float64(k.Y), Z: float64(k.Z)}
}
