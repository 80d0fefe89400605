// Package level owns the bubble lattice of a running game: settling landed
// projectiles, dropping ceiling layers and checking the baseline.
package level

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubbles/cluster"
	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/lattice"
)

// LayerReport summarizes one InsertLayer call.
type LayerReport struct {
	Cleared  int // baseline bubbles disposed before the shift
	Shifted  int // bubbles moved down one row
	Inserted int // new ceiling bubbles
}

// Controller holds the lattice, the play-volume bounds and the layer logic.
type Controller struct {
	cfg    config.LevelConfig
	lat    *lattice.Lattice
	finder *cluster.Finder
	host   Host
	logger *slog.Logger
}

// New creates a level. A nil host is replaced by a HeadlessHost.
func New(cfg config.LevelConfig, host Host) *Controller {
	if host == nil {
		host = NewHeadlessHost()
	}
	lat := lattice.New(lattice.NewBounds(cfg.HalfWidth, cfg.HalfDepth, cfg.Layers))
	return &Controller{
		cfg:    cfg,
		lat:    lat,
		finder: cluster.NewFinder(lat),
		host:   host,
		logger: slog.Default(),
	}
}

// SetLogger replaces the logger.
func (c *Controller) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Lattice returns the underlying lattice.
func (c *Controller) Lattice() *lattice.Lattice { return c.lat }

// Finder returns the cluster finder bound to the lattice.
func (c *Controller) Finder() *cluster.Finder { return c.finder }

// Bounds returns the play volume.
func (c *Controller) Bounds() lattice.Bounds { return c.lat.Bounds() }

// Baseline returns the loss row.
func (c *Controller) Baseline() int { return c.cfg.Baseline }

// Host returns the presentation host.
func (c *Controller) Host() Host { return c.host }

// Settle snaps b to the cell nearest position and writes it into the lattice.
// Rounding is half-up on every axis, then clamped. If another bubble already
// holds the cell it is replaced and disposed. Returns the cell key.
func (c *Controller) Settle(b *lattice.Bubble, position r3.Vec) lattice.Key {
	key := c.lat.Key(roundHalfUp(position.X), roundHalfUp(position.Y), roundHalfUp(position.Z))
	if b == nil {
		return key
	}

	c.lat.Remove(b)
	if prev := c.lat.Get(key); prev != nil && prev != b {
		c.logger.Warn("settle displaced occupant", "cell", key.String(), "bubble", b.ID, "displaced", prev.ID)
		c.lat.Set(key, nil)
		c.Dispose(prev)
	}

	c.place(b, key)
	return key
}

// InsertLayer pushes the stack down one row and seeds a fresh ceiling:
// baseline bubbles are disposed, every row above moves down by one, and the
// top row is filled with new pinned bubbles.
func (c *Controller) InsertLayer(colors ColorSource) LayerReport {
	var report LayerReport
	bounds := c.lat.Bounds()
	baseline := c.cfg.Baseline

	// Clear any bubbles at the baseline row
	for x := bounds.MinX; x <= bounds.MaxX; x++ {
		for z := bounds.MinZ; z <= bounds.MaxZ; z++ {
			key := lattice.Key{X: x, Y: baseline, Z: z}
			if b := c.lat.Get(key); b != nil {
				c.lat.Set(key, nil)
				c.Dispose(b)
				report.Cleared++
			}
		}
	}

	// Move each row above the baseline down by one
	for y := baseline; y < bounds.MaxY; y++ {
		for x := bounds.MinX; x <= bounds.MaxX; x++ {
			for z := bounds.MinZ; z <= bounds.MaxZ; z++ {
				src := lattice.Key{X: x, Y: y + 1, Z: z}
				dst := lattice.Key{X: x, Y: y, Z: z}

				if b := c.lat.Get(src); b != nil {
					from := b.Position
					c.place(b, dst)
					c.host.AnimateShift(b, from, b.Position)
					report.Shifted++
				}
				c.lat.Set(src, nil)
			}
		}
	}

	// Seed the ceiling
	if colors != nil {
		for x := bounds.MinX; x <= bounds.MaxX; x++ {
			for z := bounds.MinZ; z <= bounds.MaxZ; z++ {
				b := c.host.CreateBubble(colors.Next())
				if b == nil {
					continue
				}
				c.place(b, lattice.Key{X: x, Y: bounds.MaxY, Z: z})
				report.Inserted++
			}
		}
	}

	c.logger.Debug("layer inserted",
		"cleared", report.Cleared,
		"shifted", report.Shifted,
		"inserted", report.Inserted,
	)

	return report
}

// BelowBaseline reports whether a settled bubble sits at or below the baseline.
func (c *Controller) BelowBaseline(b *lattice.Bubble) bool {
	if b == nil || b.State != lattice.StateSettled {
		return false
	}
	return b.Cell.Y <= c.cfg.Baseline
}

// AlmostBelowBaseline reports whether a settled bubble is within one row of
// the baseline. Advisory only.
func (c *Controller) AlmostBelowBaseline(b *lattice.Bubble) bool {
	if b == nil || b.State != lattice.StateSettled {
		return false
	}
	return b.Cell.Y <= c.cfg.Baseline+1
}

// AnyBelowBaseline is the loss predicate over the whole lattice.
func (c *Controller) AnyBelowBaseline() bool {
	found := false
	c.lat.Each(func(_ lattice.Key, b *lattice.Bubble) {
		if c.BelowBaseline(b) {
			found = true
		}
	})
	return found
}

// AnyAlmostBelowBaseline is the early-warning predicate over the whole lattice.
func (c *Controller) AnyAlmostBelowBaseline() bool {
	found := false
	c.lat.Each(func(_ lattice.Key, b *lattice.Bubble) {
		if c.AlmostBelowBaseline(b) {
			found = true
		}
	})
	return found
}

// Pop removes the bubbles at keys from the lattice and marks them for
// removal. The returned bubbles are in key order and still need disposal.
func (c *Controller) Pop(keys []lattice.Key) []*lattice.Bubble {
	popped := make([]*lattice.Bubble, 0, len(keys))
	for _, k := range keys {
		b := c.lat.Get(k)
		if b == nil {
			continue
		}
		c.lat.Remove(b)
		b.State = lattice.StateMarkedForRemoval
		popped = append(popped, b)
	}
	return popped
}

// Dispose hands b to the host for destruction. Repeated calls are no-ops.
func (c *Controller) Dispose(b *lattice.Bubble) {
	if b == nil || b.State == lattice.StateDisposed {
		return
	}
	b.State = lattice.StateDisposed
	c.host.DisposeBubble(b)
}

// Reset disposes every bubble in the lattice and clears it.
func (c *Controller) Reset() {
	for _, b := range c.lat.Bubbles() {
		c.Dispose(b)
	}
	c.lat.Clear()
}

// place writes b into key and pins it at the cell center.
func (c *Controller) place(b *lattice.Bubble, key lattice.Key) {
	key = c.lat.Bounds().Clamp(key)
	c.lat.Set(key, b)
	b.Cell = key
	b.Position = lattice.CellCenter(key)
	b.State = lattice.StateSettled
	b.Pinned = true
}

// roundHalfUp rounds to the nearest integer with halves going toward +inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
