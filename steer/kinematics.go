package steer

import "gonum.org/v1/gonum/spatial/r3"

// Kinematics is the read-only motion state a behavior needs from an agent.
type Kinematics interface {
	LocalSpaceBasis

	Mass() float64
	// Radius is the agent's size; flocking scales its near-neighbor band by it.
	Radius() float64
	Velocity() r3.Vec
	Acceleration() r3.Vec
	Speed() float64
	MaxForce() float64
	MaxSpeed() float64

	// PredictPosition estimates where the agent will be after t seconds.
	PredictPosition(t float64) r3.Vec
}
