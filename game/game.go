// Package game runs the simulation in a raylib window.
package game

import (
	"context"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/steer/camera"
	"github.com/pthm-cable/steer/config"
	"github.com/pthm-cable/steer/renderer"
	"github.com/pthm-cable/steer/sim"
	"github.com/pthm-cable/steer/ui"
)

const (
	maxStepsPerUpdate = 10
	followRate        = 0.15
	flowSpacing       = 8.0
	flowScale         = 4.0
)

// Game holds the window-side state around a simulation.
type Game struct {
	sim   *sim.Sim
	cfg   *config.Config
	tuned config.SteeringConfig // values to restore on reset

	camera    *camera.Orbit
	annotator *renderer.Annotator
	flow      *renderer.FlowRenderer

	overlays  *ui.OverlayRegistry
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	stats     *ui.StatsPanel
	perfPanel *ui.PerfPanel
	tuning    *ui.TuningPanel
	inspector *ui.Inspector

	paused         bool
	stepsPerUpdate int
	selected       int // agent ID, -1 for none

	screenWidth, screenHeight int32
}

// New creates the simulation with an annotator attached. The annotator is
// enabled when annotate is set, and can be toggled at runtime.
func New(cfg *config.Config, opts sim.Options, annotate bool) (*Game, error) {
	annotator := renderer.NewAnnotator()
	annotator.Enable(annotate)
	opts.Annotation = annotator

	s, err := sim.New(cfg, opts)
	if err != nil {
		return nil, err
	}

	w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	g := &Game{
		sim:            s,
		cfg:            cfg,
		tuned:          cfg.Steering,
		camera:         camera.New(cfg.World.Radius * 2.2),
		annotator:      annotator,
		flow:           renderer.NewFlowRenderer(cfg.World.Radius, flowSpacing, flowScale),
		overlays:       ui.NewOverlayRegistry(),
		hud:            ui.NewHUD(),
		controls:       ui.NewControlsPanel(10, 100, 220),
		stats:          ui.NewStatsPanel(w-250, 10, 240),
		perfPanel:      ui.NewPerfPanel(w-300, h-150),
		tuning:         ui.NewTuningPanel(w-250, 250, 240),
		inspector:      ui.NewInspector(10, h-200, 240),
		stepsPerUpdate: 1,
		selected:       -1,
		screenWidth:    w,
		screenHeight:   h,
	}
	g.overlays.SetEnabled(ui.OverlayAnnotations, annotate)
	return g, nil
}

// Run opens the window and loops until it is closed or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(g.screenWidth, g.screenHeight, "steer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(g.cfg.Screen.TargetFPS))

	slog.Info("window open", "width", g.screenWidth, "height", g.screenHeight, "agents", g.sim.AgentCount())

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}
		g.handleInput()
		if err := g.Update(ctx); err != nil {
			return err
		}
		g.Draw()
	}
	return nil
}

// Update advances the simulation by the current number of steps per frame.
func (g *Game) Update(ctx context.Context) error {
	g.sim.Perf().RecordFrame()
	if g.paused {
		return nil
	}

	// Annotations show the last step of the frame only.
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.annotator.Reset()
		if err := g.sim.Step(ctx); err != nil {
			return fmt.Errorf("step %d: %w", g.sim.Tick(), err)
		}
	}

	if g.selected >= 0 && g.overlays.IsEnabled(ui.OverlayFollow) {
		if v, ok := g.sim.Vehicle(uint32(g.selected)); ok {
			g.camera.Follow(v.Position(), followRate)
		}
	}
	return nil
}

// Close flushes telemetry and closes output files.
func (g *Game) Close() error {
	return g.sim.Close()
}

func (g *Game) setAnnotations(on bool) {
	g.annotator.Enable(on)
	g.overlays.SetEnabled(ui.OverlayAnnotations, on)
	slog.Info("annotations", "enabled", on)
}

func (g *Game) resetTuning() {
	g.cfg.Steering = g.tuned
	g.cfg.Recompute()
	slog.Info("steering parameters reset")
}
