package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubbles/lattice"
)

var (
	gridColor     = rl.Color{R: 70, G: 80, B: 90, A: 90}
	baselineColor = rl.Color{R: 230, G: 60, B: 60, A: 60}
	guideColor    = rl.Color{R: 255, G: 255, B: 255, A: 140}
)

// DrawGrid outlines every cell of the play volume.
func DrawGrid(b lattice.Bounds) {
	for x := b.MinX; x <= b.MaxX; x++ {
		for z := b.MinZ; z <= b.MaxZ; z++ {
			for y := b.MinY; y <= b.MaxY; y++ {
				rl.DrawCubeWires(Vec(lattice.CellCenter(lattice.Key{X: x, Y: y, Z: z})), 1, 1, 1, gridColor)
			}
		}
	}
}

// DrawBaseline shades the plane between the losing row and the one above it.
func DrawBaseline(b lattice.Bounds, baseline int) {
	cx := float32(b.MinX+b.MaxX) / 2
	cz := float32(b.MinZ+b.MaxZ) / 2
	y := float32(baseline) + 0.5
	rl.DrawPlane(rl.NewVector3(cx, y, cz), rl.NewVector2(float32(b.Width()), float32(b.Depth())), baselineColor)
}

// DrawGuide draws a dotted line, one dash per unit, from one point to another.
func DrawGuide(from, to r3.Vec) {
	length := to.Sub(from).Norm()
	if length == 0 {
		return
	}
	dir := to.Sub(from).Unit()
	for d := 0.0; d+0.5 <= length; d++ {
		a := from.Add(dir.Scale(d))
		b := from.Add(dir.Scale(d + 0.5))
		rl.DrawLine3D(Vec(a), Vec(b), guideColor)
	}
}

// DrawLauncher draws the launcher base under origin.
func DrawLauncher(origin r3.Vec, radius float32) {
	base := Vec(origin)
	base.Y -= radius * 2
	rl.DrawCylinder(base, radius*1.2, radius*1.6, radius*1.5, 16, rl.Color{R: 90, G: 100, B: 110, A: 255})
}
