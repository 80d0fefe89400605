package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubbles/components"
	"github.com/pthm-cable/bubbles/lattice"
	"github.com/pthm-cable/bubbles/systems"
)

// Animation lengths in seconds.
const (
	shiftDuration = 0.3
	snapDuration  = 0.08
	popDuration   = 0.25
)

// Host presents core bubbles as ECS entities. It implements level.Host.
type Host struct {
	world  *ecs.World
	radius float64

	bubbleMapper *ecs.Map3[components.Position, components.Body, components.BubbleRef]
	posMap       *ecs.Map[components.Position]
	velMap       *ecs.Map[components.Velocity]
	projMap      *ecs.Map[components.Projectile]
	shiftMap     *ecs.Map[components.Shift]
	popMap       *ecs.Map[components.Popping]

	particles *systems.ParticleSystem

	nextID   uint32
	entities map[uint32]ecs.Entity
}

// NewHost creates a host over world. Pop bursts go to particles, which may be nil.
func NewHost(world *ecs.World, radius float64, particles *systems.ParticleSystem) *Host {
	return &Host{
		world:        world,
		radius:       radius,
		bubbleMapper: ecs.NewMap3[components.Position, components.Body, components.BubbleRef](world),
		posMap:       ecs.NewMap[components.Position](world),
		velMap:       ecs.NewMap[components.Velocity](world),
		projMap:      ecs.NewMap[components.Projectile](world),
		shiftMap:     ecs.NewMap[components.Shift](world),
		popMap:       ecs.NewMap[components.Popping](world),
		particles:    particles,
		nextID:       1,
		entities:     make(map[uint32]ecs.Entity),
	}
}

// CreateBubble spawns an entity for a new bubble.
func (h *Host) CreateBubble(color lattice.Color) *lattice.Bubble {
	b := lattice.NewBubble(h.nextID, color)
	h.nextID++

	pos := components.Position{}
	body := components.Body{Radius: h.radius, Scale: 1}
	ref := components.BubbleRef{Bubble: b}
	h.entities[b.ID] = h.bubbleMapper.NewEntity(&pos, &body, &ref)
	return b
}

// DisposeBubble starts the pop animation. The entity is removed by the pop
// system once it finishes.
func (h *Host) DisposeBubble(b *lattice.Bubble) {
	e, ok := h.entities[b.ID]
	if !ok {
		return
	}
	delete(h.entities, b.ID)
	if !h.world.Alive(e) {
		return
	}

	if h.projMap.Has(e) {
		h.projMap.Remove(e)
	}
	if h.velMap.Has(e) {
		h.velMap.Remove(e)
	}
	if h.shiftMap.Has(e) {
		h.shiftMap.Remove(e)
	}
	if !h.popMap.Has(e) {
		h.popMap.Add(e, &components.Popping{Duration: popDuration})
	}
	if h.particles != nil {
		h.particles.EmitPop(h.posMap.Get(e).Vec(), b.Color)
	}
}

// AnimateShift slides the bubble's entity from one cell center to another.
func (h *Host) AnimateShift(b *lattice.Bubble, from, to r3.Vec) {
	h.slide(b, from, to, shiftDuration)
}

// Snap slides a landed bubble from where it stopped into its cell.
func (h *Host) Snap(b *lattice.Bubble, from r3.Vec) {
	h.slide(b, from, b.Position, snapDuration)
}

func (h *Host) slide(b *lattice.Bubble, from, to r3.Vec, duration float64) {
	e, ok := h.entities[b.ID]
	if !ok || !h.world.Alive(e) {
		return
	}
	if h.shiftMap.Has(e) {
		s := h.shiftMap.Get(e)
		s.From = h.posMap.Get(e).Vec()
		s.To = to
		s.Elapsed = 0
		s.Duration = duration
		return
	}
	h.posMap.Get(e).Set(from)
	h.shiftMap.Add(e, &components.Shift{From: from, To: to, Duration: duration})
}

// Launch turns a shot bubble into a projectile at origin.
func (h *Host) Launch(b *lattice.Bubble, proj components.Projectile, origin, velocity r3.Vec) bool {
	e, ok := h.entities[b.ID]
	if !ok || !h.world.Alive(e) {
		return false
	}
	h.posMap.Get(e).Set(origin)
	vel := components.Velocity{}
	vel.Set(velocity)
	h.velMap.Add(e, &vel)
	h.projMap.Add(e, &proj)
	return true
}

// Entity returns the live entity for a bubble ID.
func (h *Host) Entity(id uint32) (ecs.Entity, bool) {
	e, ok := h.entities[id]
	return e, ok
}

// Live returns the number of bubbles not yet disposed.
func (h *Host) Live() int {
	return len(h.entities)
}
