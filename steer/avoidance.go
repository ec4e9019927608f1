package steer

import "gonum.org/v1/gonum/spatial/r3"

// parallelThreshold is cos(45°): headings closer than this count as parallel
// (or anti-parallel) when choosing how to dodge a threat.
const parallelThreshold = 0.707

// AvoidCloseNeighbors pushes sideways away from the first agent whose surface
// is closer than minSeparationDistance. The push is perpendicular to Forward
// so it turns the agent rather than braking it. Coincident agents are skipped.
func AvoidCloseNeighbors(k Kinematics, minSeparationDistance float64, others []Kinematics, ann Annotation) r3.Vec {
	for _, other := range others {
		offset := r3.Sub(other.Position(), k.Position())
		if IsNearZero(offset) {
			continue
		}
		minCenterToCenter := minSeparationDistance + k.Radius() + other.Radius()
		if r3.Norm(offset) < minCenterToCenter {
			annotations(ann).AvoidCloseNeighbor(other, minSeparationDistance)
			return PerpendicularComponent(r3.Scale(-1, offset), k.Forward())
		}
	}
	return Zero
}

// PredictNearestApproachTime returns when k and other, holding their current
// velocities, will be closest. Zero relative velocity gives 0; a negative
// result means the closest approach is already behind them.
func PredictNearestApproachTime(k, other Kinematics) float64 {
	relVelocity := r3.Sub(other.Velocity(), k.Velocity())
	relSpeedSq := r3.Norm2(relVelocity)
	if relSpeedSq < epsilon {
		return 0
	}
	relPosition := r3.Sub(k.Position(), other.Position())
	return r3.Dot(relVelocity, relPosition) / relSpeedSq
}

// NearestApproachPositions returns where k and other will be after t seconds
// and how far apart they will be then.
func NearestApproachPositions(k, other Kinematics, t float64) (ours, theirs r3.Vec, distance float64) {
	ours = k.PredictPosition(t)
	theirs = other.PredictPosition(t)
	return ours, theirs, Distance(ours, theirs)
}

// AvoidNeighbors prevents interpenetration with nearby agents. Overlapping
// agents are handled first by AvoidCloseNeighbors. Otherwise the agent whose
// predicted nearest approach comes soonest, within minTimeToCollision and
// closer than twice k's radius, is the threat; the result is k's side axis
// scaled by +1 or -1 depending on whether the paths are anti-parallel,
// parallel or crossing.
func AvoidNeighbors(k Kinematics, minTimeToCollision float64, others []Kinematics, ann Annotation) r3.Vec {
	if sep := AvoidCloseNeighbors(k, 0, others, ann); sep != Zero {
		return sep
	}

	var (
		threat       Kinematics
		ourFuture    r3.Vec
		threatFuture r3.Vec
	)
	minTime := minTimeToCollision
	dangerThreshold := k.Radius() * 2

	for _, other := range others {
		if IsNearZero(r3.Sub(other.Position(), k.Position())) {
			continue
		}
		t := PredictNearestApproachTime(k, other)
		if t < 0 || t >= minTime {
			continue
		}
		ours, theirs, d := NearestApproachPositions(k, other, t)
		if d < dangerThreshold {
			minTime = t
			threat = other
			ourFuture, threatFuture = ours, theirs
		}
	}

	if threat == nil {
		return Zero
	}

	var steer float64
	parallelness := r3.Dot(k.Forward(), threat.Forward())
	switch {
	case parallelness < -parallelThreshold:
		// head on: veer away from where the threat will be
		offset := r3.Sub(threatFuture, k.Position())
		steer = awayFrom(r3.Dot(offset, k.Side()))
	case parallelness > parallelThreshold:
		// side by side: veer away from where the threat is now
		offset := r3.Sub(threat.Position(), k.Position())
		steer = awayFrom(r3.Dot(offset, k.Side()))
	default:
		// crossing: the faster agent passes behind the slower one
		if threat.Speed() <= k.Speed() {
			steer = awayFrom(r3.Dot(k.Side(), threat.Velocity()))
		}
	}

	annotations(ann).AvoidNeighbor(threat, steer, ourFuture, threatFuture)
	return r3.Scale(steer, k.Side())
}

func awayFrom(sideDot float64) float64 {
	if sideDot > 0 {
		return -1
	}
	return 1
}
