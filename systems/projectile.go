// Package systems contains ECS systems for bubble entities.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubbles/components"
	"github.com/pthm-cable/bubbles/lattice"
	"github.com/pthm-cable/bubbles/turn"
)

// maxStep is the longest distance a projectile moves between contact checks.
const maxStep = 0.1

// Landing reports a projectile that stopped moving.
type Landing struct {
	Entity   ecs.Entity
	Shot     *turn.Shot
	Position r3.Vec
}

// ProjectileSystem moves shots through the play volume. Shots reflect off
// the side walls and stop on touching the ceiling or a settled bubble.
type ProjectileSystem struct {
	filter    ecs.Filter4[components.Position, components.Velocity, components.Body, components.Projectile]
	projMap   *ecs.Map[components.Projectile]
	velMap    *ecs.Map[components.Velocity]
	lat       *lattice.Lattice
	maxTravel float64
}

// NewProjectileSystem creates a projectile system over lat. Shots that travel
// further than maxTravel are reported as abandoned.
func NewProjectileSystem(w *ecs.World, lat *lattice.Lattice, maxTravel float64) *ProjectileSystem {
	return &ProjectileSystem{
		filter:    *ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Projectile](w),
		projMap:   ecs.NewMap[components.Projectile](w),
		velMap:    ecs.NewMap[components.Velocity](w),
		lat:       lat,
		maxTravel: maxTravel,
	}
}

// Update advances every projectile by dt seconds. Landed entities lose their
// Projectile and Velocity components; abandoned ones are left untouched for
// the caller to dispose.
func (s *ProjectileSystem) Update(dt float64) (landed, abandoned []Landing) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, body, proj := query.Get()

		p := pos.Vec()
		v := vel.Vec()

		dist := r3.Norm(v) * dt
		steps := int(math.Ceil(dist / maxStep))
		if steps < 1 {
			steps = 1
		}
		h := dt / float64(steps)

		for i := 0; i < steps; i++ {
			p = r3.Add(p, r3.Scale(h, v))
			proj.Traveled += r3.Norm(v) * h
			p, v = s.reflect(p, v, body.Radius)

			if s.touching(p, body.Radius) {
				landed = append(landed, Landing{Entity: query.Entity(), Shot: proj.Shot, Position: p})
				break
			}
			if proj.Traveled > s.maxTravel {
				abandoned = append(abandoned, Landing{Entity: query.Entity(), Shot: proj.Shot, Position: p})
				break
			}
		}

		pos.Set(p)
		vel.Set(v)
	}

	// Structural changes wait until the query is closed
	for _, l := range landed {
		s.projMap.Remove(l.Entity)
		s.velMap.Remove(l.Entity)
	}
	return landed, abandoned
}

// reflect bounces p off the x and z walls. The walls sit half a cell outside
// the outermost columns.
func (s *ProjectileSystem) reflect(p, v r3.Vec, radius float64) (r3.Vec, r3.Vec) {
	b := s.lat.Bounds()
	p.X, v.X = bounce(p.X, v.X, float64(b.MinX)-0.5+radius, float64(b.MaxX)+0.5-radius)
	p.Z, v.Z = bounce(p.Z, v.Z, float64(b.MinZ)-0.5+radius, float64(b.MaxZ)+0.5-radius)
	return p, v
}

func bounce(x, v, lo, hi float64) (float64, float64) {
	if lo > hi {
		return (lo + hi) / 2, 0
	}
	if x < lo {
		return clampFloat(2*lo-x, lo, hi), math.Abs(v)
	}
	if x > hi {
		return clampFloat(2*hi-x, lo, hi), -math.Abs(v)
	}
	return x, v
}

// touching reports whether a ball of radius at p has reached the ceiling or
// overlaps a settled bubble in one of the 27 cells around it.
func (s *ProjectileSystem) touching(p r3.Vec, radius float64) bool {
	if p.Y >= float64(s.lat.Bounds().Ceiling()) {
		return true
	}
	center := lattice.Key{
		X: int(math.Floor(p.X + 0.5)),
		Y: int(math.Floor(p.Y + 0.5)),
		Z: int(math.Floor(p.Z + 0.5)),
	}
	reach := 2 * radius
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				k := center.Offset(dx, dy, dz)
				if !s.lat.InBounds(k) || !s.lat.Occupied(k) {
					continue
				}
				if distance(p, lattice.CellCenter(k)) < reach {
					return true
				}
			}
		}
	}
	return false
}
