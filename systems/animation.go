package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bubbles/components"
)

// ShiftSystem slides entities between cell centers.
type ShiftSystem struct {
	filter   ecs.Filter2[components.Position, components.Shift]
	shiftMap *ecs.Map[components.Shift]
	done     []ecs.Entity
}

// NewShiftSystem creates a shift animation system.
func NewShiftSystem(w *ecs.World) *ShiftSystem {
	return &ShiftSystem{
		filter:   *ecs.NewFilter2[components.Position, components.Shift](w),
		shiftMap: ecs.NewMap[components.Shift](w),
	}
}

// Update advances every shift by dt seconds and returns how many finished.
func (s *ShiftSystem) Update(dt float64) int {
	s.done = s.done[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, shift := query.Get()
		shift.Elapsed += dt
		pos.Set(lerp(shift.From, shift.To, shift.Progress()))
		if shift.Elapsed >= shift.Duration {
			s.done = append(s.done, query.Entity())
		}
	}

	for _, e := range s.done {
		s.shiftMap.Remove(e)
	}
	return len(s.done)
}

// PopSystem grows disposed bubbles and removes their entities when the
// animation ends.
type PopSystem struct {
	filter ecs.Filter2[components.Body, components.Popping]
	done   []ecs.Entity
}

// NewPopSystem creates a pop animation system.
func NewPopSystem(w *ecs.World) *PopSystem {
	return &PopSystem{
		filter: *ecs.NewFilter2[components.Body, components.Popping](w),
	}
}

// Update advances every pop by dt seconds and removes finished entities.
func (s *PopSystem) Update(w *ecs.World, dt float64) int {
	s.done = s.done[:0]

	query := s.filter.Query()
	for query.Next() {
		body, pop := query.Get()
		pop.Elapsed += dt
		t := 1.0
		if pop.Duration > 0 {
			t = clamp01(pop.Elapsed / pop.Duration)
		}
		// Swell, then shrink to nothing
		body.Scale = 1 + 0.4*t - 1.4*t*t
		if body.Scale < 0 {
			body.Scale = 0
		}
		if pop.Done() {
			s.done = append(s.done, query.Entity())
		}
	}

	for _, e := range s.done {
		w.RemoveEntity(e)
	}
	return len(s.done)
}

// AnchorSystem pins resting bubble entities to their lattice position.
type AnchorSystem struct {
	filter ecs.Filter2[components.Position, components.BubbleRef]
}

// NewAnchorSystem creates an anchor system. Entities that are in flight,
// shifting or popping are left alone.
func NewAnchorSystem(w *ecs.World) *AnchorSystem {
	return &AnchorSystem{
		filter: *ecs.NewFilter2[components.Position, components.BubbleRef](w).
			Without(ecs.C[components.Projectile](), ecs.C[components.Shift](), ecs.C[components.Popping]()),
	}
}

// Update copies each bubble's core position onto its entity.
func (s *AnchorSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		pos, ref := query.Get()
		if ref.Bubble != nil {
			pos.Set(ref.Bubble.Position)
		}
	}
}
