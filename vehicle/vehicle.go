// Package vehicle provides a simple point-mass agent that implements
// steer.Kinematics and integrates steering forces.
package vehicle

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/steer"
)

// Default physical properties for a new vehicle.
const (
	DefaultMass     = 1.0
	DefaultRadius   = 0.5
	DefaultMaxForce = 0.1
	DefaultMaxSpeed = 1.0
)

// accelerationDamping is the blend rate used to smooth acceleration between
// ticks, in 1/seconds.
const accelerationDamping = 9.0

// Vehicle is a point mass with an orientation frame that follows its velocity.
type Vehicle struct {
	steer.LocalSpace

	mass     float64
	radius   float64
	maxForce float64
	maxSpeed float64
	speed    float64

	velocity     r3.Vec
	acceleration r3.Vec

	// Annotation receives a VelocityAcceleration event each ApplySteeringForce.
	Annotation steer.Annotation
}

var _ steer.Kinematics = (*Vehicle)(nil)

// New creates a stationary vehicle at position facing forward.
func New(position, forward r3.Vec) *Vehicle {
	v := &Vehicle{}
	v.Reset(position, forward)
	return v
}

// Reset restores default properties and places the vehicle at rest.
func (v *Vehicle) Reset(position, forward r3.Vec) {
	v.LocalSpace = steer.NewLocalSpace(forward, r3.Vec{Y: 1}, position)
	v.mass = DefaultMass
	v.radius = DefaultRadius
	v.maxForce = DefaultMaxForce
	v.maxSpeed = DefaultMaxSpeed
	v.speed = 0
	v.velocity = r3.Vec{}
	v.acceleration = r3.Vec{}
}

func (v *Vehicle) Mass() float64        { return v.mass }
func (v *Vehicle) Radius() float64      { return v.radius }
func (v *Vehicle) MaxForce() float64    { return v.maxForce }
func (v *Vehicle) MaxSpeed() float64    { return v.maxSpeed }
func (v *Vehicle) Speed() float64       { return v.speed }
func (v *Vehicle) Velocity() r3.Vec     { return v.velocity }
func (v *Vehicle) Acceleration() r3.Vec { return v.acceleration }

// SetMass sets the mass. Non-positive values are ignored.
func (v *Vehicle) SetMass(m float64) {
	if m > 0 {
		v.mass = m
	}
}

func (v *Vehicle) SetRadius(r float64)   { v.radius = math.Max(r, 0) }
func (v *Vehicle) SetMaxForce(f float64) { v.maxForce = math.Max(f, 0) }
func (v *Vehicle) SetMaxSpeed(s float64) { v.maxSpeed = math.Max(s, 0) }

// SetSpeed sets speed along the current heading.
func (v *Vehicle) SetSpeed(s float64) {
	v.speed = s
	v.velocity = r3.Scale(s, v.Forward())
}

// SetVelocity sets velocity and turns the frame to face it.
func (v *Vehicle) SetVelocity(vel r3.Vec) {
	v.velocity = vel
	v.speed = r3.Norm(vel)
	v.RegenerateOrthonormalBasis(vel)
}

// PredictPosition extrapolates linearly along the current velocity.
func (v *Vehicle) PredictPosition(t float64) r3.Vec {
	return r3.Add(v.Position(), r3.Scale(t, v.velocity))
}

// ApplySteeringForce integrates one tick: the force is clamped to MaxForce,
// converted to acceleration, smoothed, and the resulting velocity is clamped
// to MaxSpeed before moving the vehicle.
func (v *Vehicle) ApplySteeringForce(force r3.Vec, dt float64) {
	if dt <= 0 {
		return
	}
	clipped := steer.TruncateLength(force, v.maxForce)
	newAccel := r3.Scale(1/v.mass, clipped)

	// blend toward the new acceleration to damp one-tick spikes
	blend := math.Min(dt*accelerationDamping, 1)
	v.acceleration = r3.Add(v.acceleration, r3.Scale(blend, r3.Sub(newAccel, v.acceleration)))

	velocity := r3.Add(v.velocity, r3.Scale(dt, v.acceleration))
	velocity = steer.TruncateLength(velocity, v.maxSpeed)
	v.velocity = velocity
	v.speed = r3.Norm(velocity)

	v.SetPosition(r3.Add(v.Position(), r3.Scale(dt, velocity)))

	if v.speed > 0 {
		v.RegenerateOrthonormalBasis(velocity)
	}

	if v.Annotation != nil && v.Annotation.IsEnabled() {
		v.Annotation.VelocityAcceleration(v, 3, 3)
	}
}

// ApplyBrakingForce reduces speed by rate (fraction per second) without
// changing heading.
func (v *Vehicle) ApplyBrakingForce(rate, dt float64) {
	rawBraking := v.speed * rate
	clipped := math.Min(rawBraking, v.maxForce)
	v.SetSpeed(math.Max(v.speed-clipped*dt, 0))
}
