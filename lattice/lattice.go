package lattice

import (
	"cmp"
	"slices"
)

// Lattice is a sparse mapping from cell to bubble. A missing entry and a nil
// entry both mean the cell is empty. Every key is clamped to the bounds before
// use, so no operation can address a cell outside the volume.
type Lattice struct {
	bounds Bounds
	cells  map[Key]*Bubble
}

// New creates an empty lattice over the given bounds.
func New(bounds Bounds) *Lattice {
	return &Lattice{
		bounds: bounds,
		cells:  make(map[Key]*Bubble),
	}
}

// Bounds returns the addressable volume.
func (l *Lattice) Bounds() Bounds {
	return l.bounds
}

// Key converts a continuous coordinate into a clamped cell key.
func (l *Lattice) Key(x, y, z float64) Key {
	return l.bounds.Key(x, y, z)
}

// InBounds reports whether k addresses a cell without clamping.
func (l *Lattice) InBounds(k Key) bool {
	return l.bounds.Contains(k)
}

// Get returns the bubble at k, or nil.
func (l *Lattice) Get(k Key) *Bubble {
	return l.cells[l.bounds.Clamp(k)]
}

// Set writes b into k, overwriting any occupant. A nil b clears the cell.
func (l *Lattice) Set(k Key, b *Bubble) {
	k = l.bounds.Clamp(k)
	if b == nil {
		delete(l.cells, k)
		return
	}
	l.cells[k] = b
}

// Occupied reports whether k holds a bubble.
func (l *Lattice) Occupied(k Key) bool {
	return l.Get(k) != nil
}

// Remove deletes every cell that maps to b. Removing an absent bubble is a no-op.
func (l *Lattice) Remove(b *Bubble) int {
	if b == nil {
		return 0
	}
	removed := 0
	for k, v := range l.cells {
		if v == b {
			delete(l.cells, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of occupied cells.
func (l *Lattice) Len() int {
	return len(l.cells)
}

// Clear empties the lattice without touching the bubbles.
func (l *Lattice) Clear() {
	clear(l.cells)
}

// Keys returns the occupied keys ordered by y, then x, then z.
func (l *Lattice) Keys() []Key {
	keys := make([]Key, 0, len(l.cells))
	for k := range l.cells {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}

// Bubbles returns the occupying bubbles in key order.
func (l *Lattice) Bubbles() []*Bubble {
	keys := l.Keys()
	out := make([]*Bubble, 0, len(keys))
	for _, k := range keys {
		out = append(out, l.cells[k])
	}
	return out
}

// Layer returns the occupied keys in row y.
func (l *Lattice) Layer(y int) []Key {
	var keys []Key
	for k := range l.cells {
		if k.Y == y {
			keys = append(keys, k)
		}
	}
	SortKeys(keys)
	return keys
}

// Each calls fn for every occupied cell in unspecified order.
func (l *Lattice) Each(fn func(k Key, b *Bubble)) {
	for k, b := range l.cells {
		fn(k, b)
	}
}

// SortKeys orders keys by y, then x, then z.
func SortKeys(keys []Key) {
	slices.SortFunc(keys, func(a, b Key) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Z, b.Z)
	})
}
