// Package sim runs a population of steering agents in an ECS world.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/components"
	"github.com/pthm-cable/steer/config"
	"github.com/pthm-cable/steer/geom"
	"github.com/pthm-cable/steer/steer"
	"github.com/pthm-cable/steer/telemetry"
	"github.com/pthm-cable/steer/vehicle"
)

// Options configures a simulation beyond its config file.
type Options struct {
	Seed     int64
	Workers  int  // overrides physics.workers when > 0
	LogStats bool // log each stats window and bookmark

	// Output receives CSV telemetry. The simulation closes it in Close.
	Output *telemetry.OutputManager

	// Annotation receives debug drawing from behaviors. It must be safe for
	// concurrent use when more than one worker runs.
	Annotation steer.Annotation

	// StatsCallback is called with each flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Sim owns the ECS world and steps every agent once per tick.
type Sim struct {
	cfg   *config.Config
	opts  Options
	runID string
	seed  int64
	rng   *rand.Rand // spawn placement only
	tick  int32

	world *ecs.World

	agentMapper *ecs.Map5[
		vehicle.Vehicle,
		components.Agent,
		components.Wander,
		components.Steering,
		components.PathFollow,
	]
	agentFilter *ecs.Filter5[
		vehicle.Vehicle,
		components.Agent,
		components.Wander,
		components.Steering,
		components.PathFollow,
	]
	vehicleMap  *ecs.Map1[vehicle.Vehicle]
	wanderMap   *ecs.Map1[components.Wander]
	steeringMap *ecs.Map1[components.Steering]
	pathMap     *ecs.Map1[components.PathFollow]

	entities []ecs.Entity // by agent ID
	rngs     []*rand.Rand // by agent ID

	grid      *SpatialGrid
	path      *geom.PolylinePathway
	spheres   []geom.SphereObstacle
	obstacles []steer.Obstacle
	flow      steer.FlowField
	noise     *geom.NoiseFlowField

	parallel *parallelState

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	bookmarks *telemetry.BookmarkDetector
	sample    telemetry.Sample
	lastStats telemetry.WindowStats
}

// New builds the world described by cfg and spawns its population.
func New(cfg *config.Config, opts Options) (*Sim, error) {
	world := ecs.NewWorld()

	s := &Sim{
		cfg:   cfg,
		opts:  opts,
		seed:  opts.Seed,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		world: world,
		agentMapper: ecs.NewMap5[
			vehicle.Vehicle,
			components.Agent,
			components.Wander,
			components.Steering,
			components.PathFollow,
		](world),
		agentFilter: ecs.NewFilter5[
			vehicle.Vehicle,
			components.Agent,
			components.Wander,
			components.Steering,
			components.PathFollow,
		](world),
		vehicleMap:  ecs.NewMap1[vehicle.Vehicle](world),
		wanderMap:   ecs.NewMap1[components.Wander](world),
		steeringMap: ecs.NewMap1[components.Steering](world),
		pathMap:     ecs.NewMap1[components.PathFollow](world),
	}

	s.runID = opts.Output.RunID()
	if s.runID == "" {
		s.runID = telemetry.NewRunID()
	}

	if err := s.buildScene(); err != nil {
		return nil, err
	}

	halfExtent := cfg.World.Radius + 2*cfg.Derived.CellSize
	s.grid = NewSpatialGrid(halfExtent, cfg.Derived.CellSize)

	workers := cfg.Physics.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	s.parallel = newParallelState(workers, cfg.Derived.TotalAgents)

	s.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.DT)
	s.perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindowTicks)
	s.bookmarks = telemetry.NewBookmarkDetector(10)

	s.spawnPopulation()

	if err := opts.Output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	slog.Info("simulation ready",
		"run_id", s.runID,
		"seed", s.seed,
		"agents", len(s.entities),
		"workers", workers,
		"obstacles", len(s.spheres),
		"flow", cfg.Flow.Kind,
	)
	return s, nil
}

// buildScene creates the pathway, obstacles and flow field from config.
func (s *Sim) buildScene() error {
	cfg := s.cfg

	if len(cfg.Path.Points) >= 2 {
		points := make([]r3.Vec, len(cfg.Path.Points))
		for i, p := range cfg.Path.Points {
			points[i] = vec(p)
		}
		path, err := geom.NewPolylinePathway(points, cfg.Path.Radius, cfg.Path.Cyclic)
		if err != nil {
			return fmt.Errorf("building path: %w", err)
		}
		s.path = path
	}

	for _, o := range cfg.Obstacles {
		sphere := geom.SphereObstacle{Center: vec(o.Center), Radius: o.Radius}
		s.spheres = append(s.spheres, sphere)
		s.obstacles = append(s.obstacles, sphere)
	}

	switch cfg.Flow.Kind {
	case "uniform":
		s.flow = geom.UniformFlowField{Flow: vec(cfg.Flow.Uniform)}
	case "noise":
		s.noise = geom.NewNoiseFlowField(s.seed, cfg.Flow.Scale, cfg.Flow.Strength, cfg.Flow.Speed)
		s.flow = s.noise
	}
	return nil
}

// Step advances the simulation by one tick.
func (s *Sim) Step(ctx context.Context) error {
	dt := s.cfg.Physics.DT

	s.perf.StartTick()
	defer s.perf.EndTick()

	s.perf.StartPhase(telemetry.PhaseFlowField)
	if s.noise != nil {
		s.noise.Advance(dt)
	}

	s.perf.StartPhase(telemetry.PhaseSnapshot)
	s.takeSnapshots()

	s.perf.StartPhase(telemetry.PhaseSpatialGrid)
	s.rebuildGrid()

	s.perf.StartPhase(telemetry.PhaseSteering)
	if err := s.computeIntents(ctx, dt); err != nil {
		return err
	}

	s.perf.StartPhase(telemetry.PhaseIntegrate)
	s.applyIntents(dt)

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.recordEvents()
	s.tick++
	s.flushTelemetry(false)
	return nil
}

// Run steps until ctx is done or maxTicks ticks have run (0 = unlimited).
func (s *Sim) Run(ctx context.Context, maxTicks int) error {
	for maxTicks <= 0 || int(s.tick) < maxTicks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes the partial stats window and closes the output files.
func (s *Sim) Close() error {
	s.flushTelemetry(true)
	return s.opts.Output.Close()
}

// Tick returns the number of completed ticks.
func (s *Sim) Tick() int32 { return s.tick }

// RunID returns the identifier written to every output row.
func (s *Sim) RunID() string { return s.runID }

// Config returns the live configuration. Changes to steering fields apply on
// the next tick; call Recompute after changing flocking angles.
func (s *Sim) Config() *config.Config { return s.cfg }

// Path returns the shared pathway, or nil when none is configured.
func (s *Sim) Path() *geom.PolylinePathway { return s.path }

// Obstacles returns the spherical obstacles.
func (s *Sim) Obstacles() []geom.SphereObstacle { return s.spheres }

// FlowField returns the ambient flow, or nil when disabled.
func (s *Sim) FlowField() steer.FlowField { return s.flow }

// AgentCount returns the number of spawned agents.
func (s *Sim) AgentCount() int { return len(s.entities) }

// LastStats returns the most recently flushed stats window.
func (s *Sim) LastStats() telemetry.WindowStats { return s.lastStats }

// Perf returns the tick timing collector.
func (s *Sim) Perf() *telemetry.PerfCollector { return s.perf }

// ForEachAgent calls fn for every agent with its live vehicle and the force
// applied on the last tick. fn must not retain v.
func (s *Sim) ForEachAgent(fn func(a components.Agent, v *vehicle.Vehicle, force r3.Vec)) {
	query := s.agentFilter.Query()
	for query.Next() {
		v, agent, _, steering, _ := query.Get()
		fn(*agent, v, steering.Force)
	}
}

// Vehicle returns the live vehicle of the agent with the given ID.
func (s *Sim) Vehicle(id uint32) (*vehicle.Vehicle, bool) {
	if int(id) >= len(s.entities) {
		return nil, false
	}
	v := s.vehicleMap.Get(s.entities[id])
	return v, v != nil
}

// Inspection is a copy of one agent's state for display.
type Inspection struct {
	Agent      components.Agent
	Vehicle    vehicle.Vehicle
	Wander     steer.WanderState
	Force      r3.Vec
	PathFollow components.PathFollow
}

// Inspect copies the state of the agent with the given ID.
func (s *Sim) Inspect(id uint32) (Inspection, bool) {
	if int(id) >= len(s.entities) {
		return Inspection{}, false
	}
	e := s.entities[id]
	v, agent, wander, steering, path := s.agentMapper.Get(e)
	if v == nil {
		return Inspection{}, false
	}
	return Inspection{
		Agent:      *agent,
		Vehicle:    *v,
		Wander:     wander.State,
		Force:      steering.Force,
		PathFollow: *path,
	}, true
}

func vec(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}
