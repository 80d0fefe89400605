// Package bot picks landing cells for automated play.
package bot

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"github.com/pthm-cable/bubbles/lattice"
	"github.com/pthm-cable/bubbles/level"
)

// Candidate is a cell a shot fired straight up its column would reach.
type Candidate struct {
	Key   lattice.Key
	Match int // size of the cluster the shot would complete, itself included
}

// Player chooses greedily among candidates: the biggest match wins, ties go to
// the cell furthest from the baseline. With probability Explore it picks a
// random candidate instead.
type Player struct {
	rng     *rand.Rand
	Explore float64
}

// New creates a player with its own seeded source.
func New(seed int64, explore float64) *Player {
	return &Player{rng: rand.New(rand.NewSource(seed)), Explore: explore}
}

// Candidates lists one landing cell per column, in column order. A column
// whose lowest bubble sits on the floor has no room and is skipped.
func Candidates(lvl *level.Controller, color lattice.Color) []Candidate {
	lat := lvl.Lattice()
	finder := lvl.Finder()
	b := lat.Bounds()

	var out []Candidate
	for x := b.MinX; x <= b.MaxX; x++ {
		for z := b.MinZ; z <= b.MaxZ; z++ {
			y := b.MaxY
			for yy := b.MinY; yy <= b.MaxY; yy++ {
				if lat.Occupied(lattice.Key{X: x, Y: yy, Z: z}) {
					y = yy - 1
					break
				}
			}
			if y < b.MinY {
				continue
			}
			key := lattice.Key{X: x, Y: y, Z: z}

			joined := mapset.New[lattice.Key]()
			for _, n := range finder.Neighbors(key) {
				nb := lat.Get(n)
				if nb == nil || nb.Color != color || joined.Has(n) {
					continue
				}
				finder.SameColorCluster(n).Each(func(k lattice.Key) {
					joined.Put(k)
				})
			}
			out = append(out, Candidate{Key: key, Match: joined.Size() + 1})
		}
	}
	return out
}

// Choose returns the cell to aim for. It reports false when every column is
// full.
func (p *Player) Choose(lvl *level.Controller, color lattice.Color) (lattice.Key, bool) {
	cands := Candidates(lvl, color)
	if len(cands) == 0 {
		return lattice.Key{}, false
	}
	if p.Explore > 0 && p.rng.Float64() < p.Explore {
		return cands[p.rng.Intn(len(cands))].Key, true
	}

	best := cands[0]
	for _, c := range cands[1:] {
		if better(c, best) {
			best = c
		}
	}
	return best.Key, true
}

func better(a, b Candidate) bool {
	if a.Match != b.Match {
		return a.Match > b.Match
	}
	return a.Key.Y > b.Key.Y
}
