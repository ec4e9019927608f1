package sim

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/components"
	"github.com/pthm-cable/steer/config"
	"github.com/pthm-cable/steer/telemetry"
	"github.com/pthm-cable/steer/vehicle"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func newSim(t *testing.T, cfg *config.Config, opts Options) *Sim {
	t.Helper()
	s, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func positions(s *Sim) map[uint32]r3.Vec {
	out := make(map[uint32]r3.Vec)
	s.ForEachAgent(func(a components.Agent, v *vehicle.Vehicle, _ r3.Vec) {
		out[a.ID] = v.Position()
	})
	return out
}

func TestNewSpawnsPopulation(t *testing.T) {
	cfg := testConfig(t)
	s := newSim(t, cfg, Options{Seed: 1, Workers: 1})

	if s.AgentCount() != cfg.Derived.TotalAgents {
		t.Fatalf("AgentCount = %d, want %d", s.AgentCount(), cfg.Derived.TotalAgents)
	}

	counts := make(map[components.Role]int)
	s.ForEachAgent(func(a components.Agent, v *vehicle.Vehicle, _ r3.Vec) {
		counts[a.Role]++
		if v.MaxForce() != cfg.Vehicle.MaxForce {
			t.Errorf("agent %d MaxForce = %v", a.ID, v.MaxForce())
		}
		if a.Role == components.RolePathFollower {
			if _, _, outside := s.Path().MapPointToPath(v.Position()); outside > 1e-9 {
				t.Errorf("path follower %d spawned %v outside the path", a.ID, outside)
			}
		}
		if a.Role == components.RolePursuer && v.MaxSpeed() <= cfg.Vehicle.MaxSpeed {
			t.Errorf("pursuer %d MaxSpeed = %v, want boosted", a.ID, v.MaxSpeed())
		}
	})

	p := cfg.Population
	want := map[components.Role]int{
		components.RoleBoid:         p.Boids,
		components.RolePursuer:      p.Pursuers,
		components.RoleEvader:       p.Evaders,
		components.RolePathFollower: p.PathFollowers,
		components.RoleWanderer:     p.Wanderers,
	}
	for role, n := range want {
		if counts[role] != n {
			t.Errorf("%s count = %d, want %d", role, counts[role], n)
		}
	}

	if len(s.Obstacles()) != len(cfg.Obstacles) {
		t.Errorf("Obstacles = %d, want %d", len(s.Obstacles()), len(cfg.Obstacles))
	}
	if s.FlowField() == nil {
		t.Error("expected a flow field for flow.kind=noise")
	}
}

func TestAgentSeedsAreStable(t *testing.T) {
	if agentSeed(7, 3) != agentSeed(7, 3) {
		t.Error("agentSeed is not deterministic")
	}
	if agentSeed(7, 3) == agentSeed(7, 4) || agentSeed(7, 3) == agentSeed(8, 3) {
		t.Error("agentSeed collides for different inputs")
	}
}

func TestStepDeterministicAcrossWorkers(t *testing.T) {
	// the default population is above parallelThreshold
	serial := newSim(t, testConfig(t), Options{Seed: 42, Workers: 1})
	parallel := newSim(t, testConfig(t), Options{Seed: 42, Workers: 4})
	if serial.AgentCount() < parallelThreshold {
		t.Fatalf("population %d too small to exercise the parallel path", serial.AgentCount())
	}

	ctx := context.Background()
	for i := 0; i < 60; i++ {
		if err := serial.Step(ctx); err != nil {
			t.Fatal(err)
		}
		if err := parallel.Step(ctx); err != nil {
			t.Fatal(err)
		}
	}

	a, b := positions(serial), positions(parallel)
	for id, pa := range a {
		if pb := b[id]; pa != pb {
			t.Fatalf("agent %d diverged: %v vs %v", id, pa, pb)
		}
	}
}

func TestStepMovesAgents(t *testing.T) {
	s := newSim(t, testConfig(t), Options{Seed: 3, Workers: 1})
	before := positions(s)

	if err := s.Run(context.Background(), 30); err != nil {
		t.Fatal(err)
	}
	if s.Tick() != 30 {
		t.Fatalf("Tick = %d, want 30", s.Tick())
	}

	moved := 0
	for id, p := range positions(s) {
		if p != before[id] {
			moved++
		}
	}
	if moved != s.AgentCount() {
		t.Errorf("%d of %d agents moved", moved, s.AgentCount())
	}
}

func TestAgentsStayInsideWorld(t *testing.T) {
	cfg := testConfig(t)
	s := newSim(t, cfg, Options{Seed: 5})

	if err := s.Run(context.Background(), 1200); err != nil {
		t.Fatal(err)
	}
	limit := cfg.World.Radius * 1.5
	for id, p := range positions(s) {
		if d := r3.Norm(p); d > limit {
			t.Errorf("agent %d at distance %v, beyond %v", id, d, limit)
		}
	}
}

func TestRunHonorsContext(t *testing.T) {
	s := newSim(t, testConfig(t), Options{Seed: 1, Workers: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run with cancelled context = %v, want context.Canceled", err)
	}
	if s.Tick() != 0 {
		t.Errorf("Tick = %d, want 0", s.Tick())
	}
}

func TestCaptureIsCounted(t *testing.T) {
	cfg := testConfig(t)
	cfg.Population = config.PopulationConfig{Pursuers: 1, Evaders: 1, SpawnRadius: 0}
	cfg.Obstacles = nil
	cfg.Flow.Kind = "none"
	cfg.Recompute()

	var windows []telemetry.WindowStats
	s := newSim(t, cfg, Options{
		Seed:          9,
		Workers:       1,
		StatsCallback: func(w telemetry.WindowStats) { windows = append(windows, w) },
	})

	// both agents start at the origin, inside each other
	if err := s.Run(context.Background(), 5); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	if len(windows) != 1 {
		t.Fatalf("got %d stats windows, want 1 partial window", len(windows))
	}
	if windows[0].Captures == 0 {
		t.Errorf("expected a capture, got %+v", windows[0])
	}
	if windows[0].Agents != 2 {
		t.Errorf("Agents = %d, want 2", windows[0].Agents)
	}
}

func TestCloseWritesOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := telemetry.NewOutputManager(dir, "test-run")
	if err != nil {
		t.Fatal(err)
	}

	s := newSim(t, testConfig(t), Options{Seed: 2, Workers: 1, Output: om})
	if s.RunID() != "test-run" {
		t.Errorf("RunID = %q, want the output manager's", s.RunID())
	}
	if err := s.Run(context.Background(), 10); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("telemetry.csv has %d lines, want header + 1", len(lines))
	}
	if !strings.HasPrefix(lines[1], "test-run,10,") {
		t.Errorf("unexpected row %q", lines[1])
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
}
