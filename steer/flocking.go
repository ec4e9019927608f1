package steer

import "gonum.org/v1/gonum/spatial/r3"

// nearRadiusScale multiplies an agent's radius to get the inner edge of its
// flocking neighborhood.
const nearRadiusScale = 3

// FlockNeighbors applies the flocking neighborhood (near radius 3*Radius) to others.
// Separation, Alignment and Cohesion all select through it.
func FlockNeighbors(k Kinematics, maxDistance, cosMaxAngle float64, others []Kinematics) []Kinematics {
	return SelectNeighbors(k, others, nearRadiusScale*k.Radius(), maxDistance, cosMaxAngle)
}

// Separation pushes away from neighbors, weighting each by inverse distance.
// The result is a unit direction, or zero with no neighbors.
func Separation(k Kinematics, maxDistance, cosMaxAngle float64, others []Kinematics) r3.Vec {
	return separation(k, FlockNeighbors(k, maxDistance, cosMaxAngle, others))
}

// Alignment turns toward the neighbors' average heading.
func Alignment(k Kinematics, maxDistance, cosMaxAngle float64, others []Kinematics) r3.Vec {
	return alignment(k, FlockNeighbors(k, maxDistance, cosMaxAngle, others))
}

// Cohesion steers toward the neighbors' centroid.
func Cohesion(k Kinematics, maxDistance, cosMaxAngle float64, others []Kinematics) r3.Vec {
	return cohesion(k, FlockNeighbors(k, maxDistance, cosMaxAngle, others))
}

func separation(k Kinematics, neighbors []Kinematics) r3.Vec {
	if len(neighbors) == 0 {
		return Zero
	}
	var steering r3.Vec
	for _, other := range neighbors {
		offset := r3.Sub(other.Position(), k.Position())
		distSq := r3.Norm2(offset)
		steering = r3.Add(steering, r3.Scale(-1/distSq, offset))
	}
	steering = r3.Scale(1/float64(len(neighbors)), steering)
	return SafeUnit(steering)
}

func alignment(k Kinematics, neighbors []Kinematics) r3.Vec {
	if len(neighbors) == 0 {
		return Zero
	}
	var sum r3.Vec
	for _, other := range neighbors {
		sum = r3.Add(sum, other.Forward())
	}
	average := r3.Scale(1/float64(len(neighbors)), sum)
	return SafeUnit(r3.Sub(average, k.Forward()))
}

func cohesion(k Kinematics, neighbors []Kinematics) r3.Vec {
	if len(neighbors) == 0 {
		return Zero
	}
	var sum r3.Vec
	for _, other := range neighbors {
		sum = r3.Add(sum, other.Position())
	}
	centroid := r3.Scale(1/float64(len(neighbors)), sum)
	return SafeUnit(r3.Sub(centroid, k.Position()))
}

// FlockParams configures one force of the classic boids blend.
type FlockParams struct {
	Weight      float64
	MaxDistance float64
	CosMaxAngle float64
}

// FlockWeights groups the three flocking forces.
type FlockWeights struct {
	Separation FlockParams
	Alignment  FlockParams
	Cohesion   FlockParams
}

// Flock returns the weighted sum of separation, alignment and cohesion. Forces
// with equal (MaxDistance, CosMaxAngle) see the same neighbor set.
func Flock(k Kinematics, w FlockWeights, others []Kinematics) r3.Vec {
	sep := Separation(k, w.Separation.MaxDistance, w.Separation.CosMaxAngle, others)
	ali := Alignment(k, w.Alignment.MaxDistance, w.Alignment.CosMaxAngle, others)
	coh := Cohesion(k, w.Cohesion.MaxDistance, w.Cohesion.CosMaxAngle, others)

	steering := r3.Scale(w.Separation.Weight, sep)
	steering = r3.Add(steering, r3.Scale(w.Alignment.Weight, ali))
	return r3.Add(steering, r3.Scale(w.Cohesion.Weight, coh))
}
