// Package cluster finds connected groups of bubbles in a lattice.
package cluster

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/pthm-cable/bubbles/lattice"
)

// Finder runs flood fills over a lattice.
type Finder struct {
	lat *lattice.Lattice
}

// NewFinder creates a finder bound to lat.
func NewFinder(lat *lattice.Lattice) *Finder {
	return &Finder{lat: lat}
}

// Neighbors returns the in-bounds 6-connected neighbors of k.
func (f *Finder) Neighbors(k lattice.Key) []lattice.Key {
	out := make([]lattice.Key, 0, len(lattice.Directions))
	for _, d := range lattice.Directions {
		n := k.Offset(d.X, d.Y, d.Z)
		if f.lat.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// SameColorCluster returns the 6-connected set of occupied cells sharing the
// seed's color, seed included. An empty seed yields an empty set. Callers
// decide the pop threshold.
func (f *Finder) SameColorCluster(seed lattice.Key) mapset.Set[lattice.Key] {
	keys := mapset.New[lattice.Key]()
	if f == nil || f.lat == nil {
		return keys
	}

	seed = f.lat.Bounds().Clamp(seed)
	origin := f.lat.Get(seed)
	if origin == nil {
		return keys
	}

	queue := []lattice.Key{seed}
	keys.Put(seed)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range f.Neighbors(current) {
			if keys.Has(n) {
				continue
			}
			b := f.lat.Get(n)
			if b == nil || b.Color != origin.Color {
				continue
			}
			keys.Put(n)
			queue = append(queue, n)
		}
	}

	return keys
}

// FindFloating returns every occupied cell with no path of occupied cells to
// the ceiling row. Color plays no part in support.
func (f *Finder) FindFloating() mapset.Set[lattice.Key] {
	floating := mapset.New[lattice.Key]()
	if f == nil || f.lat == nil || f.lat.Len() == 0 {
		return floating
	}

	rooted := mapset.New[lattice.Key]()
	queue := f.lat.Layer(f.lat.Bounds().Ceiling())
	for _, k := range queue {
		rooted.Put(k)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range f.Neighbors(current) {
			if rooted.Has(n) || !f.lat.Occupied(n) {
				continue
			}
			rooted.Put(n)
			queue = append(queue, n)
		}
	}

	f.lat.Each(func(k lattice.Key, _ *lattice.Bubble) {
		if !rooted.Has(k) {
			floating.Put(k)
		}
	})

	return floating
}

// SortedKeys flattens a key set into y, x, z order.
func SortedKeys(set mapset.Set[lattice.Key]) []lattice.Key {
	keys := make([]lattice.Key, 0, set.Size())
	set.Each(func(k lattice.Key) {
		keys = append(keys, k)
	})
	lattice.SortKeys(keys)
	return keys
}
