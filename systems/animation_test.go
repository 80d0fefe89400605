package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubbles/components"
	"github.com/pthm-cable/bubbles/lattice"
)

func TestShiftSystem(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewShiftSystem(w)
	mapper := ecs.NewMap2[components.Position, components.Shift](w)

	pos := components.Position{Y: 5}
	shift := components.Shift{From: r3.Vec{Y: 5}, To: r3.Vec{Y: 4}, Duration: 0.2}
	e := mapper.NewEntity(&pos, &shift)

	if n := sys.Update(0.1); n != 0 {
		t.Fatalf("finished %d shifts halfway", n)
	}
	got := ecs.NewMap[components.Position](w).Get(e)
	if math.Abs(got.Y-4.5) > 1e-9 {
		t.Errorf("halfway y = %v, want 4.5", got.Y)
	}

	if n := sys.Update(0.1); n != 1 {
		t.Fatalf("finished %d shifts, want 1", n)
	}
	if got := ecs.NewMap[components.Position](w).Get(e); got.Y != 4 {
		t.Errorf("final y = %v, want 4", got.Y)
	}
	if ecs.NewMap[components.Shift](w).Has(e) {
		t.Error("finished shift should be removed")
	}
}

func TestPopSystemRemovesEntity(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewPopSystem(w)
	mapper := ecs.NewMap2[components.Body, components.Popping](w)

	body := components.Body{Radius: 0.5, Scale: 1}
	pop := components.Popping{Duration: 0.1}
	e := mapper.NewEntity(&body, &pop)

	sys.Update(w, 0.05)
	if !w.Alive(e) {
		t.Fatal("entity removed before the pop finished")
	}
	got := ecs.NewMap[components.Body](w).Get(e)
	if math.Abs(got.Scale-0.85) > 1e-9 {
		t.Errorf("scale = %v, want 0.85", got.Scale)
	}

	if n := sys.Update(w, 0.05); n != 1 {
		t.Errorf("removed %d entities, want 1", n)
	}
	if w.Alive(e) {
		t.Error("entity should be removed after the pop")
	}
}

func TestAnchorSystemSkipsAnimated(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewAnchorSystem(w)

	b := lattice.NewBubble(1, lattice.Blue)
	b.Position = r3.Vec{X: 1, Y: 2, Z: 3}

	resting := ecs.NewMap2[components.Position, components.BubbleRef](w).
		NewEntity(&components.Position{}, &components.BubbleRef{Bubble: b})
	shifting := ecs.NewMap3[components.Position, components.BubbleRef, components.Shift](w).
		NewEntity(&components.Position{}, &components.BubbleRef{Bubble: b}, &components.Shift{Duration: 1})

	sys.Update()

	posMap := ecs.NewMap[components.Position](w)
	if got := posMap.Get(resting).Vec(); got != b.Position {
		t.Errorf("resting entity at %v, want %v", got, b.Position)
	}
	if got := posMap.Get(shifting).Vec(); got != (r3.Vec{}) {
		t.Errorf("shifting entity moved to %v", got)
	}
}

func TestParticles(t *testing.T) {
	ps := NewParticleSystem(1)
	ps.EmitPop(r3.Vec{Y: 3}, lattice.Green)
	if n := ps.Count(); n < 10 || n > 15 {
		t.Fatalf("pop emitted %d particles, want 10-15", n)
	}
	for _, p := range ps.Particles {
		if p.Color != lattice.Green || p.Alpha() != 1 {
			t.Errorf("particle = %+v", p)
		}
	}

	ps.EmitDust(lattice.NewBounds(2, 2, 5), 5)
	for i := 0; i < 120; i++ {
		ps.Update(1.0 / 60)
	}
	if ps.Count() != 0 {
		t.Errorf("%d particles outlived their life", ps.Count())
	}

	for i := 0; i < 100; i++ {
		ps.EmitPop(r3.Vec{}, lattice.Red)
	}
	if ps.Count() > 500 {
		t.Errorf("particle cap exceeded: %d", ps.Count())
	}
}
