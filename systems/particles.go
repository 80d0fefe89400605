package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubbles/lattice"
)

// ParticleType identifies the type of effect particle.
type ParticleType uint8

const (
	ParticlePop  ParticleType = iota // droplets from a popped bubble
	ParticleDust                     // debris from a ceiling drop
)

// EffectParticle represents a visual feedback particle.
type EffectParticle struct {
	Pos     r3.Vec
	Vel     r3.Vec
	Life    float64 // seconds remaining
	MaxLife float64
	Type    ParticleType
	Color   lattice.Color
	Size    float64
}

// ParticleSystem manages effect particles for visual feedback.
type ParticleSystem struct {
	Particles    []EffectParticle
	maxParticles int
	rng          *rand.Rand
}

// NewParticleSystem creates a new particle system.
func NewParticleSystem(seed int64) *ParticleSystem {
	return &ParticleSystem{
		Particles:    make([]EffectParticle, 0, 500),
		maxParticles: 500,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// Update advances all particles by dt seconds.
func (s *ParticleSystem) Update(dt float64) {
	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.Life -= dt
		if p.Life <= 0 {
			continue
		}

		switch p.Type {
		case ParticlePop:
			p.Vel.Y -= 6 * dt
		case ParticleDust:
			p.Vel.Y -= 2 * dt
		}

		drag := math.Pow(0.2, dt)
		p.Vel = r3.Scale(drag, p.Vel)
		p.Pos = r3.Add(p.Pos, r3.Scale(dt, p.Vel))

		s.Particles[alive] = *p
		alive++
	}
	s.Particles = s.Particles[:alive]
}

// EmitPop emits a radial burst of droplets (10-15 particles).
func (s *ParticleSystem) EmitPop(at r3.Vec, color lattice.Color) {
	count := 10 + s.rng.Intn(6)
	for i := 0; i < count; i++ {
		dir := s.randomDirection()
		speed := 1.5 + s.rng.Float64()*1.5
		life := 0.35 + s.rng.Float64()*0.3
		s.emit(EffectParticle{
			Pos:     r3.Add(at, r3.Scale(0.3, dir)),
			Vel:     r3.Scale(speed, dir),
			Life:    life,
			MaxLife: life,
			Type:    ParticlePop,
			Color:   color,
			Size:    0.05 + s.rng.Float64()*0.05,
		})
	}
}

// EmitDust sprinkles slow debris across a horizontal slab at height y.
func (s *ParticleSystem) EmitDust(b lattice.Bounds, y float64) {
	for x := b.MinX; x <= b.MaxX; x++ {
		for z := b.MinZ; z <= b.MaxZ; z++ {
			if s.rng.Float64() > 0.3 {
				continue
			}
			life := 0.8 + s.rng.Float64()*0.6
			s.emit(EffectParticle{
				Pos: r3.Vec{
					X: float64(x) + s.rng.Float64() - 0.5,
					Y: y,
					Z: float64(z) + s.rng.Float64() - 0.5,
				},
				Vel:     r3.Vec{X: (s.rng.Float64() - 0.5) * 0.3, Z: (s.rng.Float64() - 0.5) * 0.3},
				Life:    life,
				MaxLife: life,
				Type:    ParticleDust,
				Size:    0.03,
			})
		}
	}
}

func (s *ParticleSystem) emit(p EffectParticle) {
	if len(s.Particles) >= s.maxParticles {
		return
	}
	s.Particles = append(s.Particles, p)
}

// randomDirection returns a uniformly distributed unit vector.
func (s *ParticleSystem) randomDirection() r3.Vec {
	z := s.rng.Float64()*2 - 1
	angle := s.rng.Float64() * 2 * math.Pi
	r := math.Sqrt(1 - z*z)
	return r3.Vec{X: r * math.Cos(angle), Y: r * math.Sin(angle), Z: z}
}

// Alpha returns the particle's remaining life as a fraction.
func (p *EffectParticle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return clamp01(p.Life / p.MaxLife)
}

// Count returns the current number of active particles.
func (s *ParticleSystem) Count() int {
	return len(s.Particles)
}
