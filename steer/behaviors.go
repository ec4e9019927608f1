package steer

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// minDistance is the offset length below which a target counts as reached.
const minDistance = 1e-6

// minSpeed is the speed below which another agent is treated as stationary.
const minSpeed = 1e-6

// Seek steers toward target at up to maxSpeed.
func Seek(k Kinematics, target r3.Vec, maxSpeed float64) r3.Vec {
	offset := r3.Sub(target, k.Position())
	desired := TruncateLength(offset, maxSpeed)
	return r3.Sub(desired, k.Velocity())
}

// Flee steers directly away from target at up to maxSpeed.
func Flee(k Kinematics, target r3.Vec, maxSpeed float64) r3.Vec {
	offset := r3.Sub(k.Position(), target)
	desired := TruncateLength(offset, maxSpeed)
	return r3.Sub(desired, k.Velocity())
}

// ArrivalSpeed is the desired speed at distance from an arrival target:
// linear in distance inside slowingDistance, capped at maxSpeed outside it.
// A non-positive slowingDistance disables the ramp.
func ArrivalSpeed(distance, maxSpeed, slowingDistance float64) float64 {
	if slowingDistance <= 0 {
		return maxSpeed
	}
	ramped := maxSpeed * distance / slowingDistance
	return math.Min(ramped, maxSpeed)
}

// Arrival seeks target but slows linearly once within slowingDistance of it.
// At the target itself the desired velocity is zero, so the result brakes.
func Arrival(k Kinematics, target r3.Vec, maxSpeed, slowingDistance float64) r3.Vec {
	offset := r3.Sub(target, k.Position())
	distance := r3.Norm(offset)
	if distance < minDistance {
		return r3.Scale(-1, k.Velocity())
	}
	clipped := ArrivalSpeed(distance, maxSpeed, slowingDistance)
	desired := r3.Scale(clipped/distance, offset)
	return r3.Sub(desired, k.Velocity())
}

// TargetSpeed drives the agent toward a cruising speed along its own heading.
func TargetSpeed(k Kinematics, targetSpeed, maxForce float64) r3.Vec {
	adjust := Clamp(targetSpeed-k.Speed(), -maxForce, maxForce)
	return r3.Scale(adjust, k.Forward())
}

// FollowFlowField aligns velocity with the field sampled where the agent
// will be after predictionTime.
func FollowFlowField(k Kinematics, field FlowField, maxSpeed, predictionTime float64) r3.Vec {
	future := k.PredictPosition(predictionTime)
	flow := TruncateLength(field.Sample(future), maxSpeed)
	return r3.Sub(flow, k.Velocity())
}

// StayOnPath seeks back toward path when the agent's predicted position
// leaves the corridor. Inside the corridor it returns zero.
func StayOnPath(k Kinematics, predictionTime float64, path Pathway, maxSpeed float64, ann Annotation) r3.Vec {
	future := k.PredictPosition(predictionTime)
	onPath, _, outside := path.MapPointToPath(future)
	if outside < 0 {
		return Zero
	}
	annotations(ann).PathFollowing(future, onPath, onPath, outside)
	return Seek(k, onPath, maxSpeed)
}

// FollowPath moves the agent along path. direction is +1 to travel toward
// increasing path distance and -1 for the reverse. No correction is made while
// the predicted position is inside the corridor and moving the right way.
func FollowPath(k Kinematics, direction, predictionTime float64, path Pathway, maxSpeed float64, ann Annotation) r3.Vec {
	pathDistanceOffset := direction * predictionTime * k.Speed()
	future := k.PredictPosition(predictionTime)

	nowPathDistance := path.MapPointToPathDistance(k.Position())
	futurePathDistance := path.MapPointToPathDistance(future)

	var rightWay bool
	if pathDistanceOffset > 0 {
		rightWay = nowPathDistance < futurePathDistance
	} else {
		rightWay = nowPathDistance > futurePathDistance
	}

	onPath, _, outside := path.MapPointToPath(future)
	if outside < 0 && rightWay {
		return Zero
	}

	target := path.MapPathDistanceToPoint(nowPathDistance + pathDistanceOffset)
	annotations(ann).PathFollowing(future, onPath, target, outside)
	return Seek(k, target, maxSpeed)
}

// AvoidObstacle hands avoidance to the obstacle itself.
func AvoidObstacle(k Kinematics, minTimeToCollision float64, obstacle Obstacle) r3.Vec {
	return obstacle.SteerToAvoid(k, minTimeToCollision)
}

// AvoidObstacles avoids whichever obstacle the agent would hit first, provided
// the hit comes within minTimeToCollision.
func AvoidObstacles(k Kinematics, minTimeToCollision float64, obstacles []Obstacle) r3.Vec {
	var nearest Obstacle
	nearestTime := math.Inf(1)
	for _, o := range obstacles {
		t, ok := o.NextIntersection(k)
		if !ok || t < 0 {
			continue
		}
		if t < nearestTime {
			nearest = o
			nearestTime = t
		}
	}
	if nearest == nil || nearestTime > minTimeToCollision {
		return Zero
	}
	return nearest.SteerToAvoid(k, minTimeToCollision)
}

// PredictionTime is the lookahead used to intercept or escape other: the time
// to cover the current gap at other's speed, capped at maxPredictionTime.
// A stationary other yields maxPredictionTime.
func PredictionTime(k LocalSpaceBasis, other Kinematics, maxPredictionTime float64) float64 {
	speed := other.Speed()
	if speed < minSpeed {
		return maxPredictionTime
	}
	roughTime := Distance(other.Position(), k.Position()) / speed
	return math.Min(roughTime, maxPredictionTime)
}

// Evasion flees from where menace will be rather than where it is.
func Evasion(k Kinematics, menace Kinematics, maxPredictionTime, maxSpeed float64) r3.Vec {
	t := PredictionTime(k, menace, maxPredictionTime)
	return Flee(k, menace.PredictPosition(t), maxSpeed)
}

// Pursuit seeks where quarry will be rather than where it is.
func Pursuit(k Kinematics, quarry Kinematics, maxPredictionTime, maxSpeed float64) r3.Vec {
	t := PredictionTime(k, quarry, maxPredictionTime)
	return Seek(k, quarry.PredictPosition(t), maxSpeed)
}
