// Package camera provides the orbit view camera and the launcher aim.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Up is the world up axis.
var Up = r3.Vec{Y: 1}

// Camera orbits a target point at a fixed distance.
type Camera struct {
	// Target is the point the camera looks at
	Target r3.Vec

	// Yaw rotates around the vertical axis; Pitch is elevation above the
	// horizontal plane. Both in radians.
	Yaw, Pitch float64

	// Distance from the target
	Distance float64

	// Constraints
	MinDistance, MaxDistance float64
	MinPitch, MaxPitch       float64

	home Camera
}

// New creates a camera looking at target from the given distance, slightly
// above the horizon.
func New(target r3.Vec, distance float64) *Camera {
	c := &Camera{
		Target:      target,
		Pitch:       0.35,
		Distance:    distance,
		MinDistance: 2,
		MaxDistance: math.Max(distance*3, 2),
		MinPitch:    -1.2,
		MaxPitch:    1.45,
	}
	c.home = *c
	return c
}

// offset is the unit vector from the target to the eye.
func (c *Camera) offset() r3.Vec {
	cp := math.Cos(c.Pitch)
	return r3.Vec{
		X: cp * math.Sin(c.Yaw),
		Y: math.Sin(c.Pitch),
		Z: cp * math.Cos(c.Yaw),
	}
}

// Eye returns the camera position in world coordinates.
func (c *Camera) Eye() r3.Vec {
	return r3.Add(c.Target, r3.Scale(c.Distance, c.offset()))
}

// Forward returns the unit view direction.
func (c *Camera) Forward() r3.Vec {
	return r3.Scale(-1, c.offset())
}

// Right returns the unit vector pointing to the right of the view.
func (c *Camera) Right() r3.Vec {
	r := r3.Cross(c.Forward(), Up)
	if r3.Norm(r) < 1e-9 {
		return r3.Vec{X: math.Cos(c.Yaw), Z: -math.Sin(c.Yaw)}
	}
	return r3.Unit(r)
}

// Orbit rotates the camera around its target.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw = normalizeAngle(c.Yaw + dYaw)
	c.Pitch = clamp(c.Pitch+dPitch, c.MinPitch, c.MaxPitch)
}

// ZoomBy moves the camera closer (factor > 1) or further away.
func (c *Camera) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance = clamp(c.Distance/factor, c.MinDistance, c.MaxDistance)
}

// Reset restores the initial view.
func (c *Camera) Reset() {
	home := c.home
	*c = home
	c.home = home
}

// normalizeAngle wraps an angle to [-Pi, Pi].
func normalizeAngle(angle float64) float64 {
	return math.Remainder(angle, 2*math.Pi)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
