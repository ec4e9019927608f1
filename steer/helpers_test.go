package steer_test

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/steer"
)

const tol = 1e-9

// agent is a minimal Kinematics for exercising behaviors in isolation.
type agent struct {
	steer.LocalSpace
	velocity r3.Vec
	radius   float64
}

func newAgent(position, velocity r3.Vec) *agent {
	return &agent{
		LocalSpace: steer.NewLocalSpace(velocity, r3.Vec{Y: 1}, position),
		velocity:   velocity,
		radius:     0.5,
	}
}

func (a *agent) Mass() float64        { return 1 }
func (a *agent) Radius() float64      { return a.radius }
func (a *agent) Velocity() r3.Vec     { return a.velocity }
func (a *agent) Acceleration() r3.Vec { return r3.Vec{} }
func (a *agent) Speed() float64       { return r3.Norm(a.velocity) }
func (a *agent) MaxForce() float64    { return 1 }
func (a *agent) MaxSpeed() float64    { return 10 }

func (a *agent) PredictPosition(t float64) r3.Vec {
	return r3.Add(a.Position(), r3.Scale(t, a.velocity))
}

func kinematics(agents ...*agent) []steer.Kinematics {
	out := make([]steer.Kinematics, len(agents))
	for i, a := range agents {
		out[i] = a
	}
	return out
}

// fixedRand always returns the same draw.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// recorder counts annotation events.
type recorder struct {
	steer.NopAnnotation
	lines         int
	pathFollowing int
	closeNeighbor int
	neighbor      int
	lastSteer     float64
}

func (r *recorder) IsEnabled() bool                     { return true }
func (r *recorder) Line(_, _ r3.Vec, _ color.RGBA)      { r.lines++ }
func (r *recorder) PathFollowing(_, _, _ r3.Vec, _ float64) { r.pathFollowing++ }

func (r *recorder) AvoidCloseNeighbor(steer.Kinematics, float64) { r.closeNeighbor++ }

func (r *recorder) AvoidNeighbor(_ steer.Kinematics, s float64, _, _ r3.Vec) {
	r.neighbor++
	r.lastSteer = s
}

// zAxisPath is a straight corridor along +Z; path distance equals Z.
type zAxisPath struct {
	radius float64
}

func (p zAxisPath) MapPointToPath(point r3.Vec) (r3.Vec, r3.Vec, float64) {
	onPath := r3.Vec{Z: point.Z}
	return onPath, r3.Vec{Z: 1}, math.Hypot(point.X, point.Y) - p.radius
}

func (p zAxisPath) MapPathDistanceToPoint(d float64) r3.Vec { return r3.Vec{Z: d} }
func (p zAxisPath) MapPointToPathDistance(point r3.Vec) float64 { return point.Z }

// stubObstacle reports a fixed intersection and force.
type stubObstacle struct {
	t     float64
	hit   bool
	force r3.Vec
}

func (s stubObstacle) SteerToAvoid(steer.Kinematics, float64) r3.Vec   { return s.force }
func (s stubObstacle) NextIntersection(steer.Kinematics) (float64, bool) { return s.t, s.hit }

func assertVec(t *testing.T, want, got r3.Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, tol, "y of %v", got)
	assert.InDelta(t, want.Z, got.Z, tol, "z of %v", got)
}
