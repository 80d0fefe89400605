package game

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bubbles/components"
	"github.com/pthm-cable/bubbles/config"
	"github.com/pthm-cable/bubbles/lattice"
	"github.com/pthm-cable/bubbles/level"
	"github.com/pthm-cable/bubbles/systems"
	"github.com/pthm-cable/bubbles/turn"
)

func TestHostCreateAndDispose(t *testing.T) {
	world := ecs.NewWorld()
	particles := systems.NewParticleSystem(1)
	host := NewHost(world, 0.5, particles)

	a := host.CreateBubble(lattice.Red)
	b := host.CreateBubble(lattice.Blue)
	if a.ID == b.ID {
		t.Fatalf("bubbles share ID %d", a.ID)
	}
	if host.Live() != 2 {
		t.Fatalf("live = %d, want 2", host.Live())
	}

	e, ok := host.Entity(a.ID)
	if !ok {
		t.Fatal("no entity for created bubble")
	}
	host.DisposeBubble(a)
	if host.Live() != 1 {
		t.Errorf("live = %d after dispose, want 1", host.Live())
	}
	if !ecs.NewMap[components.Popping](world).Has(e) {
		t.Error("disposed entity should be popping")
	}
	if particles.Count() == 0 {
		t.Error("dispose should emit pop particles")
	}

	// A second dispose is ignored
	host.DisposeBubble(a)
	if host.Live() != 1 {
		t.Errorf("live = %d after double dispose", host.Live())
	}
}

func TestHostLaunchAndSnap(t *testing.T) {
	world := ecs.NewWorld()
	host := NewHost(world, 0.5, nil)
	b := host.CreateBubble(lattice.Green)
	e, _ := host.Entity(b.ID)

	origin := r3.Vec{X: 0, Y: -3, Z: 0}
	if !host.Launch(b, components.Projectile{}, origin, r3.Vec{Y: 9}) {
		t.Fatal("Launch failed for a live bubble")
	}
	if !ecs.NewMap[components.Projectile](world).Has(e) {
		t.Error("launched entity has no projectile")
	}
	vel := ecs.NewMap[components.Velocity](world).Get(e)
	if vel.Y != 9 {
		t.Errorf("velocity = %+v", vel)
	}

	b.Position = r3.Vec{X: 0, Y: 4, Z: 0}
	host.Snap(b, r3.Vec{X: 0.2, Y: 3.9, Z: 0})
	shift := ecs.NewMap[components.Shift](world).Get(e)
	if shift == nil || shift.To != b.Position || math.Abs(shift.Duration-snapDuration) > 1e-9 {
		t.Errorf("shift = %+v", shift)
	}

	host.DisposeBubble(b)
	if host.Launch(b, components.Projectile{}, origin, r3.Vec{Y: 9}) {
		t.Error("Launch should fail for a disposed bubble")
	}
}

func TestHostBacksLevel(t *testing.T) {
	cfg := config.Defaults()
	world := ecs.NewWorld()
	host := NewHost(world, cfg.Level.BubbleRadius, nil)
	lvl := level.New(cfg.Level, host)
	ctrl := turn.New(cfg.Turn, lvl)
	ctrl.OnStart()

	if host.Live() != lvl.Lattice().Len() {
		t.Fatalf("live = %d, lattice = %d", host.Live(), lvl.Lattice().Len())
	}

	anchors := systems.NewAnchorSystem(world)
	anchors.Update()
	posMap := ecs.NewMap[components.Position](world)
	lvl.Lattice().Each(func(k lattice.Key, b *lattice.Bubble) {
		e, ok := host.Entity(b.ID)
		if !ok {
			t.Errorf("bubble %d at %v has no entity", b.ID, k)
			return
		}
		if got := posMap.Get(e).Vec(); got != lattice.CellCenter(k) {
			t.Errorf("entity at %v, want %v", got, lattice.CellCenter(k))
		}
	})
}
