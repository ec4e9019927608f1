package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/components"
	"github.com/pthm-cable/steer/config"
	"github.com/pthm-cable/steer/steer"
)

// flockWeights converts the configured flocking forces.
func flockWeights(cfg *config.Config) steer.FlockWeights {
	st := &cfg.Steering
	return steer.FlockWeights{
		Separation: steer.FlockParams{
			Weight:      st.Separation.Weight,
			MaxDistance: st.Separation.MaxDistance,
			CosMaxAngle: cfg.Derived.CosSepAngle,
		},
		Alignment: steer.FlockParams{
			Weight:      st.Alignment.Weight,
			MaxDistance: st.Alignment.MaxDistance,
			CosMaxAngle: cfg.Derived.CosAliAngle,
		},
		Cohesion: steer.FlockParams{
			Weight:      st.Cohesion.Weight,
			MaxDistance: st.Cohesion.MaxDistance,
			CosMaxAngle: cfg.Derived.CosCohAngle,
		},
	}
}

// steerAgent computes the steering force for snapshot i. It reads only the
// snapshots and the agent's own RNG, so agents can be steered concurrently.
//
// Priorities, highest first: obstacle avoidance, returning from outside the
// world sphere, and neighbor avoidance for the roles that use it. When one of
// them produces a correction it is applied alone.
func (s *Sim) steerAgent(i int, scratch *workerScratch, dt float64) intent {
	p := s.parallel
	snap := &p.snapshots[i]
	k := p.kin[i]
	st := &s.cfg.Steering
	ann := s.opts.Annotation

	in := s.gatherNeighbors(i, scratch)
	in.Wander = snap.Wander
	if snap.Agent.Role == components.RolePathFollower && s.path != nil {
		_, _, in.Outside = s.path.MapPointToPath(k.Position())
	}

	if avoid := steer.AvoidObstacles(k, st.ObstacleAvoidTime, s.obstacles); !steer.IsNearZero(avoid) {
		in.Force = r3.Scale(k.MaxForce(), steer.SafeUnit(avoid))
		return in
	}

	if r3.Norm(k.Position()) > s.cfg.World.Radius {
		in.Force = steer.Seek(k, r3.Vec{}, k.MaxSpeed())
		return in
	}

	switch snap.Agent.Role {
	case components.RolePathFollower, components.RoleWanderer:
		if avoid := steer.AvoidNeighbors(k, st.NeighborAvoidTime, scratch.others, ann); !steer.IsNearZero(avoid) {
			in.Force = r3.Scale(k.MaxForce(), steer.SafeUnit(avoid))
			return in
		}
	}

	var force r3.Vec
	switch snap.Agent.Role {
	case components.RoleBoid:
		force = r3.Scale(k.MaxForce(), steer.Flock(k, flockWeights(s.cfg), scratch.others))
		force = r3.Add(force, s.cruise(k))

	case components.RoleEvader:
		force = r3.Scale(k.MaxForce(), steer.Flock(k, flockWeights(s.cfg), scratch.others))
		force = r3.Add(force, s.cruise(k))
		if menace := s.nearestOfRole(k, components.RolePursuer, st.EvasionRange); menace >= 0 {
			evade := steer.Evasion(k, p.kin[menace], st.MaxPredictionTime, k.MaxSpeed())
			force = r3.Add(force, r3.Scale(st.EvasionWeight, evade))
		}

	case components.RolePursuer:
		quarry := s.nearestOfRole(k, components.RoleEvader, math.Inf(1))
		if quarry < 0 {
			force, in.Wander = s.wander(i, dt)
			force = r3.Add(force, s.cruise(k))
			break
		}
		q := p.kin[quarry]
		if steer.Distance(k.Position(), q.Position()) <= k.Radius()+q.Radius() {
			in.Captured = quarry
		}
		force = r3.Scale(st.PursuitWeight, steer.Pursuit(k, q, st.MaxPredictionTime, k.MaxSpeed()))

	case components.RolePathFollower:
		if s.path == nil {
			force, in.Wander = s.wander(i, dt)
			force = r3.Add(force, s.cruise(k))
			break
		}
		direction := snap.PathFollow.Direction
		follow := steer.FollowPath(k, direction, st.PathPredictionTime, s.path, k.MaxSpeed(), ann)
		force = r3.Add(r3.Scale(st.PathWeight, follow), s.cruise(k))
		in.FlipDirection = s.atPathEnd(k, direction)
		return s.finish(in, k, force, false)

	case components.RoleWanderer:
		force, in.Wander = s.wander(i, dt)
		force = r3.Add(force, s.cruise(k))
	}

	return s.finish(in, k, force, true)
}

// finish adds the ambient flow and the boundary pull to force.
func (s *Sim) finish(in intent, k steer.Kinematics, force r3.Vec, withFlow bool) intent {
	st := &s.cfg.Steering
	if withFlow && s.flow != nil && st.FlowWeight != 0 {
		flow := steer.FollowFlowField(k, s.flow, k.MaxSpeed(), st.FlowPredictionTime)
		force = r3.Add(force, r3.Scale(st.FlowWeight, flow))
	}
	in.Force = r3.Add(force, s.boundary(k))
	return in
}

// cruise holds the agent near the configured fraction of its top speed.
func (s *Sim) cruise(k steer.Kinematics) r3.Vec {
	st := &s.cfg.Steering
	target := st.CruiseSpeed * k.MaxSpeed()
	return r3.Scale(st.CruiseWeight, steer.TargetSpeed(k, target, k.MaxForce()))
}

// wander advances snapshot i's wander state with the agent's own RNG.
func (s *Sim) wander(i int, dt float64) (r3.Vec, steer.WanderState) {
	snap := &s.parallel.snapshots[i]
	k := s.parallel.kin[i]
	rng := s.rngs[snap.Agent.ID]
	force, state := steer.Wander(k, dt, snap.Wander, rng, s.opts.Annotation)
	return r3.Scale(s.cfg.Steering.WanderWeight*k.MaxForce(), force), state
}

// boundary pulls agents back toward the origin. The pull ramps from zero at
// BoundarySlowingDist inside the world radius to full strength at the radius;
// past the radius steerAgent seeks the origin outright.
func (s *Sim) boundary(k steer.Kinematics) r3.Vec {
	st := &s.cfg.Steering
	radius := s.cfg.World.Radius
	margin := math.Max(st.BoundarySlowingDist, 1e-6)

	d := r3.Norm(k.Position())
	ramp := steer.Clamp((d-(radius-margin))/margin, 0, 1)
	if ramp == 0 {
		return r3.Vec{}
	}
	return r3.Scale(st.BoundaryWeight*ramp, steer.Seek(k, r3.Vec{}, k.MaxSpeed()))
}

// nearestOfRole returns the snapshot index of the closest agent with the given
// role within maxDistance, or -1.
func (s *Sim) nearestOfRole(k steer.Kinematics, role components.Role, maxDistance float64) int {
	p := s.parallel
	best, bestDist := -1, math.Inf(1)
	for _, j := range p.byRole[role] {
		other := p.kin[j]
		if other == k {
			continue
		}
		d := steer.Distance(k.Position(), other.Position())
		if d <= maxDistance && d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

// atPathEnd reports whether a follower on an open path has reached the end it
// is heading toward.
func (s *Sim) atPathEnd(k steer.Kinematics, direction float64) bool {
	if s.path.Cyclic() {
		return false
	}
	d := s.path.MapPointToPathDistance(k.Position())
	margin := s.path.Radius()
	if direction > 0 {
		return d >= s.path.Length()-margin
	}
	return d <= margin
}
