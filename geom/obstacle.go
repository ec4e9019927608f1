package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/steer"
)

// SphereObstacle is a solid sphere agents steer around.
type SphereObstacle struct {
	Center r3.Vec
	Radius float64
}

var _ steer.Obstacle = SphereObstacle{}

// SteerToAvoid returns a lateral push away from the sphere's center when the
// sphere lies ahead, within the agent's swept cylinder, and would be reached
// within minTimeToCollision at the current speed. Otherwise it returns zero.
func (s SphereObstacle) SteerToAvoid(k steer.Kinematics, minTimeToCollision float64) r3.Vec {
	minDistanceToCollision := minTimeToCollision * k.Speed()
	minDistanceToCenter := minDistanceToCollision + s.Radius
	totalRadius := s.Radius + k.Radius()

	localOffset := r3.Sub(s.Center, k.Position())
	forwardComponent := r3.Dot(localOffset, k.Forward())
	offForward := r3.Sub(localOffset, r3.Scale(forwardComponent, k.Forward()))

	inCylinder := r3.Norm(offForward) < totalRadius
	nearby := forwardComponent < minDistanceToCenter
	inFront := forwardComponent > 0

	if inCylinder && nearby && inFront {
		return r3.Scale(-1, offForward)
	}
	return steer.Zero
}

// NextIntersection casts a ray along the agent's heading against the sphere
// inflated by the agent's radius and converts the hit distance to time.
// An agent already inside the sphere intersects at time 0.
func (s SphereObstacle) NextIntersection(k steer.Kinematics) (float64, bool) {
	r := s.Radius + k.Radius()
	local := r3.Sub(s.Center, k.Position())
	b := r3.Dot(local, k.Forward())
	c := r3.Norm2(local) - r*r

	if c <= 0 {
		return 0, true
	}
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	near := b - math.Sqrt(disc)
	if near < 0 {
		return 0, false
	}
	if k.Speed() <= 0 {
		return 0, false
	}
	return near / k.Speed(), true
}
