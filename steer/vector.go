// Package steer computes steering forces for autonomous agents moving in 3D.
//
// Every behavior is a free function over the Kinematics interface. Behaviors
// never mutate the agent; they return a desired change to velocity which the
// host combines, clamps and integrates.
package steer

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// epsilon is the squared-length threshold below which a vector is treated as zero.
const epsilon = 1e-12

// Zero is the zero vector, returned by behaviors that want no adjustment.
var Zero = r3.Vec{}

// TruncateLength returns v unchanged when its length does not exceed maxLength,
// otherwise v rescaled to exactly maxLength.
func TruncateLength(v r3.Vec, maxLength float64) r3.Vec {
	maxSq := maxLength * maxLength
	lenSq := r3.Norm2(v)
	if lenSq <= maxSq || lenSq == 0 {
		return v
	}
	return r3.Scale(maxLength/math.Sqrt(lenSq), v)
}

// IsNearZero reports whether v is too short to take a direction from.
func IsNearZero(v r3.Vec) bool {
	return r3.Norm2(v) < epsilon
}

// SafeUnit returns v normalized, or the zero vector when v has no direction.
func SafeUnit(v r3.Vec) r3.Vec {
	lenSq := r3.Norm2(v)
	if lenSq < epsilon {
		return Zero
	}
	return r3.Scale(1/math.Sqrt(lenSq), v)
}

// ParallelComponent returns the part of v parallel to unitBasis.
func ParallelComponent(v, unitBasis r3.Vec) r3.Vec {
	return r3.Scale(r3.Dot(v, unitBasis), unitBasis)
}

// PerpendicularComponent returns the part of v perpendicular to unitBasis.
func PerpendicularComponent(v, unitBasis r3.Vec) r3.Vec {
	return r3.Sub(v, ParallelComponent(v, unitBasis))
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
