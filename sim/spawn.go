package sim

import (
	"math/rand"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/components"
	"github.com/pthm-cable/steer/steer"
	"github.com/pthm-cable/steer/vehicle"
)

// spawnAttempts bounds the rejection sampling used to keep spawns out of
// obstacles.
const spawnAttempts = 16

// agentSeed derives an agent's private RNG seed from the run seed, so an
// agent's random stream does not depend on how many agents precede it.
func agentSeed(seed int64, id uint32) uint64 {
	return xxhash.Sum64String(strconv.FormatInt(seed, 10) + ":" + strconv.FormatUint(uint64(id), 10))
}

// spawnPopulation creates every agent listed in the population config.
// IDs are assigned in role order.
func (s *Sim) spawnPopulation() {
	p := s.cfg.Population
	counts := []struct {
		role  components.Role
		count int
	}{
		{components.RoleBoid, p.Boids},
		{components.RolePursuer, p.Pursuers},
		{components.RoleEvader, p.Evaders},
		{components.RolePathFollower, p.PathFollowers},
		{components.RoleWanderer, p.Wanderers},
	}

	for _, c := range counts {
		for i := 0; i < c.count; i++ {
			s.spawn(c.role, i)
		}
	}
}

// spawn creates one agent. ordinal is its index within its role.
func (s *Sim) spawn(role components.Role, ordinal int) {
	id := uint32(len(s.entities))
	seed := agentSeed(s.seed, id)

	pos, forward := s.randomPlacement()
	var direction float64
	if role == components.RolePathFollower && s.path != nil {
		// alternate directions so followers meet head-on
		direction = 1
		if ordinal%2 == 1 {
			direction = -1
		}
		onPath, tangent, _ := s.path.MapPointToPath(s.path.MapPathDistanceToPoint(s.rng.Float64() * s.path.Length()))
		pos = onPath
		forward = r3.Scale(direction, tangent)
	}

	v := vehicle.New(pos, forward)
	s.configureVehicle(v, role)
	v.SetSpeed(s.cfg.Steering.CruiseSpeed * v.MaxSpeed())

	agent := components.Agent{ID: id, Role: role, Seed: seed}
	wander := components.Wander{}
	steering := components.Steering{}
	pathFollow := components.PathFollow{Direction: direction}

	e := s.agentMapper.NewEntity(v, &agent, &wander, &steering, &pathFollow)
	s.entities = append(s.entities, e)
	s.rngs = append(s.rngs, rand.New(rand.NewSource(int64(seed))))
}

// configureVehicle applies the configured physical limits.
func (s *Sim) configureVehicle(v *vehicle.Vehicle, role components.Role) {
	vc := s.cfg.Vehicle
	v.SetMass(vc.Mass)
	v.SetRadius(vc.Radius)
	v.SetMaxForce(vc.MaxForce)
	v.SetMaxSpeed(vc.MaxSpeed)
	if role == components.RolePursuer && s.cfg.Steering.PursuerSpeedBoost > 0 {
		v.SetMaxSpeed(vc.MaxSpeed * s.cfg.Steering.PursuerSpeedBoost)
	}
	v.Annotation = s.opts.Annotation
}

// randomPlacement picks a point inside the spawn sphere that is clear of
// obstacles, and a random heading.
func (s *Sim) randomPlacement() (pos, forward r3.Vec) {
	radius := s.cfg.Population.SpawnRadius
	margin := s.cfg.Vehicle.Radius

	for attempt := 0; attempt < spawnAttempts; attempt++ {
		pos = r3.Scale(radius, s.randomInUnitSphere())
		if !s.insideObstacle(pos, margin) {
			break
		}
	}

	forward = steer.SafeUnit(s.randomInUnitSphere())
	if steer.IsNearZero(forward) {
		forward = r3.Vec{Z: 1}
	}
	return pos, forward
}

func (s *Sim) randomInUnitSphere() r3.Vec {
	for {
		p := r3.Vec{
			X: 2*s.rng.Float64() - 1,
			Y: 2*s.rng.Float64() - 1,
			Z: 2*s.rng.Float64() - 1,
		}
		if r3.Dot(p, p) <= 1 {
			return p
		}
	}
}

func (s *Sim) insideObstacle(p r3.Vec, margin float64) bool {
	for _, o := range s.spheres {
		if steer.Distance(p, o.Center) < o.Radius+margin {
			return true
		}
	}
	return false
}

// respawn moves a captured agent to a fresh random placement.
func (s *Sim) respawn(v *vehicle.Vehicle) {
	pos, forward := s.randomPlacement()
	v.SetPosition(pos)
	v.RegenerateOrthonormalBasis(forward)
	v.SetSpeed(s.cfg.Steering.CruiseSpeed * v.MaxSpeed())
}
