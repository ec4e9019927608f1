package steer

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// Pathway is a corridor agents can follow.
type Pathway interface {
	// MapPointToPath returns the nearest on-path point, the path tangent there,
	// and how far point lies outside the corridor (negative when inside).
	MapPointToPath(point r3.Vec) (onPath, tangent r3.Vec, outside float64)
	// MapPathDistanceToPoint returns the point at arclength distance along the path.
	MapPathDistanceToPoint(distance float64) r3.Vec
	// MapPointToPathDistance returns the arclength of point's projection.
	MapPointToPathDistance(point r3.Vec) float64
}

// FlowField is a vector field sampled at world points.
type FlowField interface {
	Sample(point r3.Vec) r3.Vec
}

// FlowFieldFunc adapts a plain function to FlowField.
type FlowFieldFunc func(point r3.Vec) r3.Vec

// Sample calls f(point).
func (f FlowFieldFunc) Sample(point r3.Vec) r3.Vec {
	return f(point)
}

// Obstacle owns its avoidance geometry.
type Obstacle interface {
	// SteerToAvoid returns a lateral steering vector, or zero when the agent
	// would not reach the obstacle within minTimeToCollision.
	SteerToAvoid(k Kinematics, minTimeToCollision float64) r3.Vec
	// NextIntersection returns the time until the agent's current heading
	// takes it into the obstacle. ok is false when it never will.
	NextIntersection(k Kinematics) (t float64, ok bool)
}

// Annotation receives debug drawing and semantic events. All calls must be
// safe to make when disabled; behaviors never depend on them.
type Annotation interface {
	IsEnabled() bool
	Enable(enabled bool)

	Line(start, end r3.Vec, c color.RGBA)
	CircleXZ(radius float64, center r3.Vec, c color.RGBA, segments int)
	DiskXZ(radius float64, center r3.Vec, c color.RGBA, segments int)
	Circle3D(radius float64, center, axis r3.Vec, c color.RGBA, segments int)
	Disk3D(radius float64, center, axis r3.Vec, c color.RGBA, segments int)

	PathFollowing(future, onPath, target r3.Vec, outside float64)
	AvoidCloseNeighbor(other Kinematics, additionalDistance float64)
	AvoidNeighbor(threat Kinematics, steer float64, ourFuture, threatFuture r3.Vec)
	VelocityAcceleration(k Kinematics, maxAccelerationLength, maxVelocityLength float64)
}

// NopAnnotation discards everything. Embed it to inherit no-op defaults for
// the events an implementation does not care about.
type NopAnnotation struct{}

func (NopAnnotation) IsEnabled() bool                                   { return false }
func (NopAnnotation) Enable(bool)                                       {}
func (NopAnnotation) Line(r3.Vec, r3.Vec, color.RGBA)                   {}
func (NopAnnotation) CircleXZ(float64, r3.Vec, color.RGBA, int)         {}
func (NopAnnotation) DiskXZ(float64, r3.Vec, color.RGBA, int)           {}
func (NopAnnotation) Circle3D(float64, r3.Vec, r3.Vec, color.RGBA, int) {}
func (NopAnnotation) Disk3D(float64, r3.Vec, r3.Vec, color.RGBA, int)   {}
func (NopAnnotation) PathFollowing(r3.Vec, r3.Vec, r3.Vec, float64)     {}
func (NopAnnotation) AvoidCloseNeighbor(Kinematics, float64)            {}
func (NopAnnotation) AvoidNeighbor(Kinematics, float64, r3.Vec, r3.Vec) {}
func (NopAnnotation) VelocityAcceleration(Kinematics, float64, float64) {}

// annotations substitutes a no-op sink for nil.
func annotations(a Annotation) Annotation {
	if a == nil {
		return NopAnnotation{}
	}
	return a
}
