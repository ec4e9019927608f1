// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Vehicle    VehicleConfig    `yaml:"vehicle"`
	Population PopulationConfig `yaml:"population"`
	Steering   SteeringConfig   `yaml:"steering"`
	Path       PathConfig       `yaml:"path"`
	Obstacles  []ObstacleConfig `yaml:"obstacles"`
	Flow       FlowConfig       `yaml:"flow"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the bounds of the simulated volume.
type WorldConfig struct {
	Radius float64 `yaml:"radius"` // agents leaving this sphere seek back to the origin
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	DT           float64 `yaml:"dt"`
	GridCellSize float64 `yaml:"grid_cell_size"` // 0 = largest neighbor radius
	Workers      int     `yaml:"workers"`        // 0 = GOMAXPROCS
}

// VehicleConfig holds per-agent physical limits.
type VehicleConfig struct {
	Mass     float64 `yaml:"mass"`
	Radius   float64 `yaml:"radius"`
	MaxForce float64 `yaml:"max_force"`
	MaxSpeed float64 `yaml:"max_speed"`
}

// PopulationConfig holds how many agents of each role are spawned.
type PopulationConfig struct {
	Boids         int     `yaml:"boids"`
	Pursuers      int     `yaml:"pursuers"`
	Evaders       int     `yaml:"evaders"`
	PathFollowers int     `yaml:"path_followers"`
	Wanderers     int     `yaml:"wanderers"`
	SpawnRadius   float64 `yaml:"spawn_radius"`
}

// FlockForceConfig configures one of the three flocking forces.
type FlockForceConfig struct {
	Weight      float64 `yaml:"weight"`
	MaxDistance float64 `yaml:"max_distance"`
	MaxAngleDeg float64 `yaml:"max_angle_deg"` // half-angle of the view cone
}

// SteeringConfig holds behavior weights and horizons.
type SteeringConfig struct {
	Separation FlockForceConfig `yaml:"separation"`
	Alignment  FlockForceConfig `yaml:"alignment"`
	Cohesion   FlockForceConfig `yaml:"cohesion"`

	WanderWeight      float64 `yaml:"wander_weight"`
	CruiseSpeed       float64 `yaml:"cruise_speed"` // fraction of max speed
	CruiseWeight      float64 `yaml:"cruise_weight"`
	MaxPredictionTime float64 `yaml:"max_prediction_time"`
	PursuitWeight     float64 `yaml:"pursuit_weight"`
	EvasionWeight     float64 `yaml:"evasion_weight"`
	EvasionRange      float64 `yaml:"evasion_range"`       // evaders ignore pursuers beyond this
	PursuerSpeedBoost float64 `yaml:"pursuer_speed_boost"` // max speed multiplier for pursuers

	NeighborAvoidTime   float64 `yaml:"neighbor_avoid_time"`
	ObstacleAvoidTime   float64 `yaml:"obstacle_avoid_time"`
	PathPredictionTime  float64 `yaml:"path_prediction_time"`
	PathWeight          float64 `yaml:"path_weight"`
	FlowWeight          float64 `yaml:"flow_weight"`
	FlowPredictionTime  float64 `yaml:"flow_prediction_time"`
	BoundaryWeight      float64 `yaml:"boundary_weight"`
	BoundarySlowingDist float64 `yaml:"boundary_slowing_distance"`
}

// PathConfig describes the shared pathway used by path followers.
type PathConfig struct {
	Points [][3]float64 `yaml:"points"`
	Radius float64      `yaml:"radius"`
	Cyclic bool         `yaml:"cyclic"`
}

// ObstacleConfig describes one spherical obstacle.
type ObstacleConfig struct {
	Center [3]float64 `yaml:"center"`
	Radius float64    `yaml:"radius"`
}

// FlowConfig describes the ambient flow field.
type FlowConfig struct {
	Kind     string     `yaml:"kind"` // "none", "uniform" or "noise"
	Uniform  [3]float64 `yaml:"uniform"`
	Scale    float64    `yaml:"scale"`
	Strength float64    `yaml:"strength"`
	Speed    float64    `yaml:"speed"`
}

// TelemetryConfig holds telemetry and logging parameters.
type TelemetryConfig struct {
	StatsWindow      float64 `yaml:"stats_window"` // seconds per stats window
	PerfWindowTicks  int     `yaml:"perf_window_ticks"`
	NearMissDistance float64 `yaml:"near_miss_distance"` // surface gap counted as a near miss
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	DT32           float32
	ScreenW32      float32
	ScreenH32      float32
	CosSepAngle    float64
	CosAliAngle    float64
	CosCohAngle    float64
	CellSize       float64
	NeighborRadius float64 // widest flocking distance
	TotalAgents    int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Defaults returns the embedded default configuration with derived values.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Physics.DT <= 0:
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	case c.World.Radius <= 0:
		return fmt.Errorf("world.radius must be positive, got %v", c.World.Radius)
	case c.Vehicle.Mass <= 0:
		return fmt.Errorf("vehicle.mass must be positive, got %v", c.Vehicle.Mass)
	case c.Population.PathFollowers > 0 && len(c.Path.Points) < 2:
		return fmt.Errorf("path needs at least two points for %d path followers", c.Population.PathFollowers)
	}
	switch c.Flow.Kind {
	case "", "none", "uniform", "noise":
	default:
		return fmt.Errorf("unknown flow.kind %q", c.Flow.Kind)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Derived.CosSepAngle = cosDeg(c.Steering.Separation.MaxAngleDeg)
	c.Derived.CosAliAngle = cosDeg(c.Steering.Alignment.MaxAngleDeg)
	c.Derived.CosCohAngle = cosDeg(c.Steering.Cohesion.MaxAngleDeg)

	c.Derived.NeighborRadius = math.Max(c.Steering.Separation.MaxDistance,
		math.Max(c.Steering.Alignment.MaxDistance, c.Steering.Cohesion.MaxDistance))

	cell := c.Physics.GridCellSize
	if cell <= 0 {
		cell = c.Derived.NeighborRadius
	}
	if cell <= 0 {
		cell = 10
	}
	c.Derived.CellSize = cell

	p := c.Population
	c.Derived.TotalAgents = p.Boids + p.Pursuers + p.Evaders + p.PathFollowers + p.Wanderers
}

// Recompute refreshes derived values after fields were changed in place.
func (c *Config) Recompute() {
	c.computeDerived()
}

func cosDeg(deg float64) float64 {
	return math.Cos(deg * math.Pi / 180)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
