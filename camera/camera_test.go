package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func near(a, b r3.Vec) bool {
	return r3.Norm(r3.Sub(a, b)) < 1e-9
}

func TestNew(t *testing.T) {
	cam := New(r3.Vec{Y: 2}, 10)

	if cam.Distance != 10 {
		t.Errorf("expected distance 10, got %f", cam.Distance)
	}
	if d := r3.Norm(r3.Sub(cam.Eye(), cam.Target)); math.Abs(d-10) > 1e-9 {
		t.Errorf("eye is %f from target, want 10", d)
	}
	if cam.Eye().Y <= cam.Target.Y {
		t.Error("default view should look down on the target")
	}
}

func TestForwardLooksAtTarget(t *testing.T) {
	cam := New(r3.Vec{X: 1, Y: 2, Z: 3}, 8)
	cam.Orbit(0.7, -0.2)

	hit := r3.Add(cam.Eye(), r3.Scale(cam.Distance, cam.Forward()))
	if !near(hit, cam.Target) {
		t.Errorf("eye + distance*forward = %v, want %v", hit, cam.Target)
	}
	if math.Abs(r3.Dot(cam.Right(), cam.Forward())) > 1e-9 {
		t.Error("right should be perpendicular to forward")
	}
	if math.Abs(r3.Norm(cam.Right())-1) > 1e-9 {
		t.Error("right should be a unit vector")
	}
}

func TestOrbitClampsPitch(t *testing.T) {
	cam := New(r3.Vec{}, 10)

	cam.Orbit(0, 10)
	if cam.Pitch != cam.MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", cam.MaxPitch, cam.Pitch)
	}
	cam.Orbit(0, -10)
	if cam.Pitch != cam.MinPitch {
		t.Errorf("expected pitch clamped to %f, got %f", cam.MinPitch, cam.Pitch)
	}

	cam.Orbit(3*math.Pi, 0)
	if cam.Yaw < -math.Pi || cam.Yaw > math.Pi {
		t.Errorf("yaw %f not wrapped", cam.Yaw)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(r3.Vec{}, 10)

	cam.ZoomBy(100)
	if cam.Distance != cam.MinDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MinDistance, cam.Distance)
	}
	cam.ZoomBy(0.001)
	if cam.Distance != cam.MaxDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MaxDistance, cam.Distance)
	}
	cam.ZoomBy(0)
	if cam.Distance != cam.MaxDistance {
		t.Error("zero factor should be ignored")
	}
}

func TestReset(t *testing.T) {
	cam := New(r3.Vec{Y: 1}, 10)
	eye := cam.Eye()

	cam.Orbit(1, 0.5)
	cam.ZoomBy(2)
	cam.Reset()

	if !near(cam.Eye(), eye) {
		t.Errorf("after reset eye = %v, want %v", cam.Eye(), eye)
	}
	cam.Orbit(1, 0)
	cam.Reset()
	if !near(cam.Eye(), eye) {
		t.Error("second reset should restore the same view")
	}
}
