package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Aim is the launcher direction. Yaw turns around the vertical axis and
// Pitch is elevation, so Pitch == Pi/2 fires straight up.
type Aim struct {
	Origin             r3.Vec
	Yaw, Pitch         float64
	MinPitch, MaxPitch float64
}

// NewAim creates an aim at origin pointing straight up.
func NewAim(origin r3.Vec) *Aim {
	return &Aim{
		Origin:   origin,
		Pitch:    math.Pi / 2,
		MinPitch: 0.2,
		MaxPitch: math.Pi / 2,
	}
}

// Direction returns the unit launch direction.
func (a *Aim) Direction() r3.Vec {
	cp := math.Cos(a.Pitch)
	return r3.Vec{
		X: cp * math.Sin(a.Yaw),
		Y: math.Sin(a.Pitch),
		Z: cp * math.Cos(a.Yaw),
	}
}

// Velocity returns the launch velocity at the given speed.
func (a *Aim) Velocity(speed float64) r3.Vec {
	return r3.Scale(speed, a.Direction())
}

// Turn rotates the aim, keeping the pitch in range.
func (a *Aim) Turn(dYaw, dPitch float64) {
	a.Yaw = normalizeAngle(a.Yaw + dYaw)
	a.Pitch = clamp(a.Pitch+dPitch, a.MinPitch, a.MaxPitch)
}

// AimAt points the launcher at target. It reports false when the target is
// outside the pitch range; the aim is then clamped toward it.
func (a *Aim) AimAt(target r3.Vec) bool {
	d := r3.Sub(target, a.Origin)
	horiz := math.Hypot(d.X, d.Z)
	if horiz < 1e-9 && d.Y == 0 {
		return false
	}
	if horiz > 1e-9 {
		a.Yaw = math.Atan2(d.X, d.Z)
	}
	pitch := math.Atan2(d.Y, horiz)
	a.Pitch = clamp(pitch, a.MinPitch, a.MaxPitch)
	return pitch >= a.MinPitch && pitch <= a.MaxPitch
}

// Crossing returns where the straight aim line reaches height y, ignoring
// walls. It reports false when the line never gets there.
func (a *Aim) Crossing(y float64) (r3.Vec, bool) {
	dir := a.Direction()
	if dir.Y <= 1e-9 {
		return r3.Vec{}, false
	}
	t := (y - a.Origin.Y) / dir.Y
	if t < 0 {
		return r3.Vec{}, false
	}
	return r3.Add(a.Origin, r3.Scale(t, dir)), true
}
