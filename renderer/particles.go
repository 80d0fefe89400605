package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubbles/lattice"
	"github.com/pthm-cable/bubbles/systems"
)

// ParticleRenderer renders effect particles as small fading cubes.
type ParticleRenderer struct {
	palette func(lattice.Color) rl.Color
}

// NewParticleRenderer creates a particle renderer coloring pops with palette.
func NewParticleRenderer(palette func(lattice.Color) rl.Color) *ParticleRenderer {
	return &ParticleRenderer{palette: palette}
}

// Draw renders all particles. Call between BeginMode3D and EndMode3D.
func (r *ParticleRenderer) Draw(particles []systems.EffectParticle) {
	for i := range particles {
		p := &particles[i]

		var color rl.Color
		switch p.Type {
		case systems.ParticlePop:
			color = r.palette(p.Color)
		case systems.ParticleDust:
			color = rl.Color{R: 170, G: 160, B: 150, A: 255}
		}

		alpha := float32(p.Alpha())
		size := float32(p.Size) * (0.5 + 0.5*alpha)
		rl.DrawCube(Vec(p.Pos), size, size, size, rl.Fade(color, alpha))
	}
}

// Vec converts a world vector to raylib's float32 vector.
func Vec(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
