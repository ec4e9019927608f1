// Package camera provides an orbit camera for viewing the 3D world.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Pitch limits keep the eye off the poles, where the up vector degenerates.
const (
	minPitch = -math.Pi/2 + 0.05
	maxPitch = math.Pi/2 - 0.05
)

// Orbit circles a target point at a fixed distance.
// Yaw turns around the world Y axis; pitch tilts above or below the XZ plane.
type Orbit struct {
	Target   r3.Vec
	Yaw      float64 // radians, 0 looks down -Z from +Z
	Pitch    float64 // radians, positive is above the target
	Distance float64

	// Distance constraints
	MinDistance, MaxDistance float64
}

// New creates a camera looking at the origin from the given distance.
func New(distance float64) *Orbit {
	o := &Orbit{
		Pitch:       0.35,
		Distance:    distance,
		MinDistance: 2,
		MaxDistance: distance * 4,
	}
	o.clamp()
	return o
}

// Position returns the eye position in world coordinates.
func (o *Orbit) Position() r3.Vec {
	cp := math.Cos(o.Pitch)
	offset := r3.Vec{
		X: o.Distance * cp * math.Sin(o.Yaw),
		Y: o.Distance * math.Sin(o.Pitch),
		Z: o.Distance * cp * math.Cos(o.Yaw),
	}
	return r3.Add(o.Target, offset)
}

// Forward returns the unit view direction.
func (o *Orbit) Forward() r3.Vec {
	return r3.Unit(r3.Sub(o.Target, o.Position()))
}

// Rotate changes yaw and pitch by the given amounts, in radians.
func (o *Orbit) Rotate(dYaw, dPitch float64) {
	o.Yaw = math.Mod(o.Yaw+dYaw, 2*math.Pi)
	o.Pitch += dPitch
	o.clamp()
}

// Zoom scales the distance by factor (values below 1 move closer).
func (o *Orbit) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	o.Distance *= factor
	o.clamp()
}

// Follow moves the target a fraction of the way toward point, for smoothed
// tracking of a moving agent. rate is clamped to [0, 1].
func (o *Orbit) Follow(point r3.Vec, rate float64) {
	rate = math.Max(0, math.Min(rate, 1))
	o.Target = r3.Add(o.Target, r3.Scale(rate, r3.Sub(point, o.Target)))
}

// IsVisible reports whether a sphere could be in front of the camera
// (conservative check for culling; ignores the view cone).
func (o *Orbit) IsVisible(center r3.Vec, radius float64) bool {
	toPoint := r3.Sub(center, o.Position())
	return r3.Dot(toPoint, o.Forward()) >= -radius
}

func (o *Orbit) clamp() {
	if o.Pitch < minPitch {
		o.Pitch = minPitch
	} else if o.Pitch > maxPitch {
		o.Pitch = maxPitch
	}
	if o.Distance < o.MinDistance {
		o.Distance = o.MinDistance
	} else if o.MaxDistance > 0 && o.Distance > o.MaxDistance {
		o.Distance = o.MaxDistance
	}
}
