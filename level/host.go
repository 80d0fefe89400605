package level

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubbles/lattice"
)

// Host is the presentation side of the level: it owns meshes, physics bodies
// and effects for the bubbles the level asks for.
type Host interface {
	// CreateBubble instantiates a bubble of the given color.
	CreateBubble(color lattice.Color) *lattice.Bubble
	// DisposeBubble destroys (or animates out) a bubble. Called at most once per bubble.
	DisposeBubble(b *lattice.Bubble)
	// AnimateShift is a visual hint that b moved between cell centers.
	AnimateShift(b *lattice.Bubble, from, to r3.Vec)
}

// ColorSource supplies colors for new ceiling bubbles.
type ColorSource interface {
	Next() lattice.Color
}

// HeadlessHost is a Host with no presentation. It hands out sequential IDs and
// counts calls, which is all headless runs and tests need.
type HeadlessHost struct {
	nextID   uint32
	Created  int
	Disposed int
	Shifted  int
}

// NewHeadlessHost creates a host whose first bubble has ID 1.
func NewHeadlessHost() *HeadlessHost {
	return &HeadlessHost{nextID: 1}
}

// CreateBubble returns a new falling bubble.
func (h *HeadlessHost) CreateBubble(color lattice.Color) *lattice.Bubble {
	if h.nextID == 0 {
		h.nextID = 1
	}
	b := lattice.NewBubble(h.nextID, color)
	h.nextID++
	h.Created++
	return b
}

// DisposeBubble counts the disposal.
func (h *HeadlessHost) DisposeBubble(b *lattice.Bubble) {
	h.Disposed++
}

// AnimateShift counts the shift.
func (h *HeadlessHost) AnimateShift(b *lattice.Bubble, from, to r3.Vec) {
	h.Shifted++
}

// Live returns the number of created bubbles not yet disposed.
func (h *HeadlessHost) Live() int {
	return h.Created - h.Disposed
}
