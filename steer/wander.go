package steer

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// wanderRate scales dt into the random-walk step.
const wanderRate = 12

var wanderColor = color.RGBA{R: 255, G: 160, B: 0, A: 255}

// WanderState is the only memory a behavior carries between ticks. The caller
// owns it and stores the value Wander returns.
type WanderState struct {
	Side float64
	Up   float64
}

// Advance random-walks both components within [-1, 1].
func (w WanderState) Advance(rng RandomSource, dt float64) WanderState {
	step := wanderRate * dt
	return WanderState{
		Side: ScalarRandomWalk(rng, w.Side, step, -1, 1),
		Up:   ScalarRandomWalk(rng, w.Up, step, -1, 1),
	}
}

// Wander produces a smoothly varying lateral wobble in the agent's own frame
// and returns the advanced state alongside it.
func Wander(k LocalSpaceBasis, dt float64, state WanderState, rng RandomSource, ann Annotation) (r3.Vec, WanderState) {
	next := state.Advance(rng, dt)
	steering := r3.Add(r3.Scale(next.Side, k.Side()), r3.Scale(next.Up, k.Up()))

	if a := annotations(ann); a.IsEnabled() {
		a.Line(k.Position(), r3.Add(k.Position(), steering), wanderColor)
	}
	return steering, next
}
