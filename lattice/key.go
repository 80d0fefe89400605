// Package lattice provides the sparse 3D bubble grid and its coordinate rules.
package lattice

import (
	"fmt"
	"math"
)

// Key is an integer cell coordinate in the lattice.
type Key struct {
	X, Y, Z int
}

// String formats the key as "x,y,z".
func (k Key) String() string {
	return fmt.Sprintf("%d,%d,%d", k.X, k.Y, k.Z)
}

// Offset returns the key shifted by (dx, dy, dz). The result is not clamped.
func (k Key) Offset(dx, dy, dz int) Key {
	return Key{X: k.X + dx, Y: k.Y + dy, Z: k.Z + dz}
}

// Directions are the six unit steps of 6-connectivity.
var Directions = [6]Key{
	{0, +1, 0},
	{0, -1, 0},
	{0, 0, +1},
	{0, 0, -1},
	{+1, 0, 0},
	{-1, 0, 0},
}

// Bounds describes the addressable volume. All limits are inclusive.
// The ceiling row is MaxY.
type Bounds struct {
	MinX, MaxX int
	MinY, MaxY int
	MinZ, MaxZ int
}

// NewBounds builds the play volume for a level with the given half extents and
// layer count: x in [-halfWidth, halfWidth-1], y in [0, layers],
// z in [-halfDepth, halfDepth-1].
func NewBounds(halfWidth, halfDepth, layers int) Bounds {
	return Bounds{
		MinX: -halfWidth, MaxX: halfWidth - 1,
		MinY: 0, MaxY: layers,
		MinZ: -halfDepth, MaxZ: halfDepth - 1,
	}
}

// Width returns the number of columns along x.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Depth returns the number of columns along z.
func (b Bounds) Depth() int { return b.MaxZ - b.MinZ + 1 }

// Ceiling returns the y of the top row.
func (b Bounds) Ceiling() int { return b.MaxY }

// Contains reports whether k lies inside the volume.
func (b Bounds) Contains(k Key) bool {
	return k.X >= b.MinX && k.X <= b.MaxX &&
		k.Y >= b.MinY && k.Y <= b.MaxY &&
		k.Z >= b.MinZ && k.Z <= b.MaxZ
}

// Clamp pulls an integer key into the volume.
func (b Bounds) Clamp(k Key) Key {
	return Key{
		X: clampInt(k.X, b.MinX, b.MaxX),
		Y: clampInt(k.Y, b.MinY, b.MaxY),
		Z: clampInt(k.Z, b.MinZ, b.MaxZ),
	}
}

// Key clamps a continuous coordinate to the volume and floors each axis.
// Out-of-range input always maps to a boundary cell; NaN maps to the minimum.
func (b Bounds) Key(x, y, z float64) Key {
	return Key{
		X: int(math.Floor(clampFloat(x, b.MinX, b.MaxX))),
		Y: int(math.Floor(clampFloat(y, b.MinY, b.MaxY))),
		Z: int(math.Floor(clampFloat(z, b.MinZ, b.MaxZ))),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v float64, lo, hi int) float64 {
	if math.IsNaN(v) {
		return float64(lo)
	}
	return math.Max(float64(lo), math.Min(float64(hi), v))
}
