package sim

import (
	"context"
	"math"

	"github.com/mlange-42/ark/ecs"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/components"
	"github.com/pthm-cable/steer/steer"
	"github.com/pthm-cable/steer/vehicle"
)

// parallelThreshold is the minimum agent count to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// agentSnapshot captures read-only state for the steering phase.
type agentSnapshot struct {
	Entity     ecs.Entity
	Agent      components.Agent
	Vehicle    vehicle.Vehicle
	Wander     steer.WanderState
	PathFollow components.PathFollow
}

// intent captures computed outputs to apply after the steering phase.
type intent struct {
	Force  r3.Vec
	Wander steer.WanderState

	Nearest     int     // snapshot index of the closest neighbor, -1 if none
	NearestDist float64 // center distance, +Inf if none
	NearestGap  float64 // surface gap to the closest neighbor

	Outside       float64 // path followers: distance outside the corridor
	FlipDirection bool    // path followers reached the end of an open path
	Captured      int     // pursuers: snapshot index of a caught evader, -1 if none
}

// workerScratch holds per-worker reusable buffers.
type workerScratch struct {
	neighbors []Neighbor
	others    []steer.Kinematics
}

// parallelState holds the per-tick buffers of the steering phase.
type parallelState struct {
	snapshots []agentSnapshot
	kin       []steer.Kinematics // kin[i] points at snapshots[i].Vehicle
	intents   []intent
	scratches []workerScratch
	byRole    [][]int // snapshot indices per role
	captured  []bool
	workers   int
}

func newParallelState(workers, capacity int) *parallelState {
	scratches := make([]workerScratch, workers)
	for i := range scratches {
		scratches[i].neighbors = make([]Neighbor, 0, 64)
		scratches[i].others = make([]steer.Kinematics, 0, 64)
	}
	return &parallelState{
		workers:   workers,
		scratches: scratches,
		snapshots: make([]agentSnapshot, 0, capacity),
		byRole:    make([][]int, components.RoleCount()),
	}
}

// takeSnapshots copies every agent out of the ECS world.
func (s *Sim) takeSnapshots() {
	p := s.parallel
	p.snapshots = p.snapshots[:0]
	for r := range p.byRole {
		p.byRole[r] = p.byRole[r][:0]
	}

	query := s.agentFilter.Query()
	for query.Next() {
		v, agent, wander, _, pathFollow := query.Get()
		p.byRole[agent.Role] = append(p.byRole[agent.Role], len(p.snapshots))
		p.snapshots = append(p.snapshots, agentSnapshot{
			Entity:     query.Entity(),
			Agent:      *agent,
			Vehicle:    *v,
			Wander:     wander.State,
			PathFollow: *pathFollow,
		})
	}

	// Pointers are taken only after the slice stops growing
	n := len(p.snapshots)
	if cap(p.kin) < n {
		p.kin = make([]steer.Kinematics, n)
	}
	p.kin = p.kin[:n]
	for i := range p.snapshots {
		p.kin[i] = &p.snapshots[i].Vehicle
	}

	if cap(p.intents) < n {
		p.intents = make([]intent, n)
	}
	p.intents = p.intents[:n]
}

// rebuildGrid inserts every snapshot into the spatial grid.
func (s *Sim) rebuildGrid() {
	s.grid.Clear()
	for i := range s.parallel.snapshots {
		s.grid.Insert(i, s.parallel.snapshots[i].Vehicle.Position())
	}
}

// computeIntents runs the steering phase, in parallel for large populations.
// Each intent depends only on the snapshots, so the result does not depend on
// the worker count.
func (s *Sim) computeIntents(ctx context.Context, dt float64) error {
	p := s.parallel
	n := len(p.snapshots)
	if n == 0 {
		return nil
	}

	if n < parallelThreshold || p.workers == 1 {
		s.computeChunk(0, n, &p.scratches[0], dt)
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	chunkSize := (n + p.workers - 1) / p.workers
	for w := 0; w < p.workers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			break
		}
		scratch := &p.scratches[w]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.computeChunk(start, end, scratch, dt)
			return nil
		})
	}
	return g.Wait()
}

// computeChunk steers the snapshots in [i0, i1).
func (s *Sim) computeChunk(i0, i1 int, scratch *workerScratch, dt float64) {
	for i := i0; i < i1; i++ {
		s.parallel.intents[i] = s.steerAgent(i, scratch, dt)
	}
}

// gatherNeighbors fills scratch with the agents within the widest flocking
// distance and returns the intent seeded with the closest one.
func (s *Sim) gatherNeighbors(i int, scratch *workerScratch) intent {
	p := s.parallel
	k := p.kin[i]

	scratch.neighbors = s.grid.QueryRadiusInto(scratch.neighbors[:0], k.Position(), s.cfg.Derived.NeighborRadius, i)
	scratch.others = scratch.others[:0]

	in := intent{Nearest: -1, NearestDist: math.Inf(1), Captured: -1}
	for _, nb := range scratch.neighbors {
		scratch.others = append(scratch.others, p.kin[nb.Index])
		if d := math.Sqrt(nb.DistSq); d < in.NearestDist {
			in.NearestDist = d
			in.Nearest = nb.Index
		}
	}
	if in.Nearest >= 0 {
		in.NearestGap = in.NearestDist - k.Radius() - p.kin[in.Nearest].Radius()
	}
	return in
}

// applyIntents writes the steering results back to ECS components.
func (s *Sim) applyIntents(dt float64) {
	p := s.parallel
	for i := range p.snapshots {
		snap := &p.snapshots[i]
		in := &p.intents[i]

		v := s.vehicleMap.Get(snap.Entity)
		if v == nil {
			continue
		}
		v.ApplySteeringForce(in.Force, dt)

		s.wanderMap.Get(snap.Entity).State = in.Wander
		s.steeringMap.Get(snap.Entity).Force = in.Force

		pf := s.pathMap.Get(snap.Entity)
		pf.Outside = in.Outside
		if in.FlipDirection {
			pf.Direction = -pf.Direction
		}
	}
}
