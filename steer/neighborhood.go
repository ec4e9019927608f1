package steer

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// InBoidNeighborhood reports whether other counts as a flocking neighbor of
// self: its distance lies in [minDistance, maxDistance] and the direction to it
// is within the view cone cos(angle to Forward) >= cosMaxAngle. Both bounds are
// inclusive. An agent at self's exact position (self included) never counts.
func InBoidNeighborhood(self, other LocalSpaceBasis, minDistance, maxDistance, cosMaxAngle float64) bool {
	offset := r3.Sub(other.Position(), self.Position())
	distSq := r3.Norm2(offset)
	if distSq < epsilon {
		return false
	}
	if distSq < minDistance*minDistance || distSq > maxDistance*maxDistance {
		return false
	}
	unitOffset := r3.Scale(1/math.Sqrt(distSq), offset)
	forwardness := r3.Dot(self.Forward(), unitOffset)
	return forwardness >= cosMaxAngle
}

// SelectNeighbors returns the members of others that pass InBoidNeighborhood.
// The result shares no storage with others.
func SelectNeighbors(self LocalSpaceBasis, others []Kinematics, minDistance, maxDistance, cosMaxAngle float64) []Kinematics {
	var neighbors []Kinematics
	for _, other := range others {
		if InBoidNeighborhood(self, other, minDistance, maxDistance, cosMaxAngle) {
			neighbors = append(neighbors, other)
		}
	}
	return neighbors
}
