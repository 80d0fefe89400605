package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bubbles/components"
	"github.com/pthm-cable/bubbles/lattice"
)

type projectileWorld struct {
	world  *ecs.World
	lat    *lattice.Lattice
	sys    *ProjectileSystem
	mapper *ecs.Map4[components.Position, components.Velocity, components.Body, components.Projectile]
}

func newProjectileWorld(maxTravel float64) *projectileWorld {
	w := ecs.NewWorld()
	lat := lattice.New(lattice.NewBounds(2, 2, 5))
	return &projectileWorld{
		world:  w,
		lat:    lat,
		sys:    NewProjectileSystem(w, lat, maxTravel),
		mapper: ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Projectile](w),
	}
}

func (pw *projectileWorld) launch(pos components.Position, vel components.Velocity) ecs.Entity {
	body := components.Body{Radius: 0.5, Scale: 1}
	proj := components.Projectile{}
	return pw.mapper.NewEntity(&pos, &vel, &body, &proj)
}

// run updates until something lands or is abandoned.
func (pw *projectileWorld) run(t *testing.T, dt float64) (landed, abandoned []Landing) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		landed, abandoned = pw.sys.Update(dt)
		if len(landed)+len(abandoned) > 0 {
			return landed, abandoned
		}
	}
	t.Fatal("projectile never stopped")
	return nil, nil
}

func TestProjectileHitsCeiling(t *testing.T) {
	pw := newProjectileWorld(100)
	e := pw.launch(components.Position{Y: -3}, components.Velocity{Y: 9})

	landed, abandoned := pw.run(t, 1.0/60)
	if len(landed) != 1 || len(abandoned) != 0 {
		t.Fatalf("landed=%d abandoned=%d", len(landed), len(abandoned))
	}
	if landed[0].Entity != e {
		t.Error("landing reported for the wrong entity")
	}
	if y := landed[0].Position.Y; y < 5 || y > 5+maxStep {
		t.Errorf("stopped at y=%v, want just past the ceiling", y)
	}
	if ecs.NewMap[components.Projectile](pw.world).Has(e) {
		t.Error("landed entity should lose its Projectile component")
	}
}

func TestProjectileStopsOnBubble(t *testing.T) {
	pw := newProjectileWorld(100)
	pw.lat.Set(lattice.Key{X: 0, Y: 4, Z: 0}, lattice.NewBubble(1, lattice.Red))
	pw.launch(components.Position{Y: -3}, components.Velocity{Y: 9})

	landed, _ := pw.run(t, 1.0/60)
	if len(landed) != 1 {
		t.Fatalf("landed=%d", len(landed))
	}
	y := landed[0].Position.Y
	if y < 2.9 || y > 3.1 {
		t.Errorf("stopped at y=%v, want about 3", y)
	}
	if math.Floor(y+0.5) != 3 {
		t.Errorf("y=%v would settle outside the cell below the bubble", y)
	}
}

func TestProjectileReflectsOffWalls(t *testing.T) {
	pw := newProjectileWorld(100)
	e := pw.launch(components.Position{Y: -3}, components.Velocity{X: 6, Y: 1})

	landed, abandoned := pw.sys.Update(0.5)
	if len(landed)+len(abandoned) != 0 {
		t.Fatal("projectile stopped early")
	}

	posMap := ecs.NewMap[components.Position](pw.world)
	velMap := ecs.NewMap[components.Velocity](pw.world)
	pos := posMap.Get(e)
	vel := velMap.Get(e)

	// x travels 3: right to the wall limit at 1, then back to -1
	if math.Abs(pos.X-(-1)) > 1e-9 {
		t.Errorf("x = %v, want -1", pos.X)
	}
	if vel.X != -6 {
		t.Errorf("vel.X = %v, want -6", vel.X)
	}
	if math.Abs(pos.Y-(-2.5)) > 1e-9 {
		t.Errorf("y = %v, want -2.5", pos.Y)
	}
}

func TestProjectileAbandonedPastMaxTravel(t *testing.T) {
	pw := newProjectileWorld(1)
	e := pw.launch(components.Position{Y: -3}, components.Velocity{Y: 9})

	landed, abandoned := pw.sys.Update(0.2)
	if len(landed) != 0 || len(abandoned) != 1 {
		t.Fatalf("landed=%d abandoned=%d", len(landed), len(abandoned))
	}
	if abandoned[0].Entity != e {
		t.Error("abandon reported for the wrong entity")
	}
	if !ecs.NewMap[components.Projectile](pw.world).Has(e) {
		t.Error("abandoned entity is left for the caller to dispose")
	}
}

func TestBounce(t *testing.T) {
	tests := []struct {
		name         string
		x, v         float64
		wantX, wantV float64
	}{
		{"inside", 0.5, 2, 0.5, 2},
		{"past high", 1.25, 2, 0.75, -2},
		{"past low", -2.5, -3, -1.5, 3},
		{"degenerate", 3, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := -2.0, 1.0
			if tt.name == "degenerate" {
				lo, hi = 1, -1
			}
			x, v := bounce(tt.x, tt.v, lo, hi)
			if math.Abs(x-tt.wantX) > 1e-9 || v != tt.wantV {
				t.Errorf("bounce(%v, %v) = %v, %v; want %v, %v", tt.x, tt.v, x, v, tt.wantX, tt.wantV)
			}
		})
	}
}
