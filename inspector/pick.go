package inspector

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubbles/lattice"
	"github.com/pthm-cable/bubbles/level"
)

// RaySphere returns the distance along the ray to the first intersection
// with the sphere. dir need not be normalized. Hits behind the origin are
// ignored; an origin inside the sphere hits at distance 0.
func RaySphere(origin, dir, center r3.Vec, radius float64) (float64, bool) {
	n := r3.Norm(dir)
	if n == 0 {
		return 0, false
	}
	d := r3.Scale(1/n, dir)
	oc := r3.Sub(origin, center)

	b := r3.Dot(oc, d)
	c := r3.Dot(oc, oc) - radius*radius
	if c <= 0 {
		return 0, true
	}
	disc := b*b - c
	if disc < 0 || b > 0 {
		return 0, false
	}
	return -b - math.Sqrt(disc), true
}

// Report summarises a settled bubble's standing in the lattice.
type Report struct {
	Cell      lattice.Key
	Cluster   int  `inspect:"label"`
	Neighbors int  `inspect:"label"` // occupied neighbors
	Floating  bool `inspect:"bool"`
	Height    int  `inspect:"bar,max:8"` // rows above the baseline
	Warning   bool `inspect:"bool"`
}

// Inspect reports on b. ok is false when b is not settled in lvl's lattice.
func Inspect(lvl *level.Controller, b *lattice.Bubble) (Report, bool) {
	if b == nil || b.State != lattice.StateSettled || lvl.Lattice().Get(b.Cell) != b {
		return Report{}, false
	}
	finder := lvl.Finder()
	touching := 0
	for _, n := range finder.Neighbors(b.Cell) {
		if lvl.Lattice().Occupied(n) {
			touching++
		}
	}
	r := Report{
		Cell:      b.Cell,
		Cluster:   finder.SameColorCluster(b.Cell).Size(),
		Neighbors: touching,
		Floating:  finder.FindFloating().Has(b.Cell),
		Height:    b.Cell.Y - lvl.Baseline(),
		Warning:   lvl.AlmostBelowBaseline(b),
	}
	return r, true
}
