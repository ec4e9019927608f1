package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/components"
	"github.com/pthm-cable/steer/renderer"
	"github.com/pthm-cable/steer/ui"
	"github.com/pthm-cable/steer/vehicle"
)

const controlsLegend = "[Space] pause  [,/.] speed  [RMB] orbit  [wheel] zoom  [LMB] select  [H] overlays  [Home] recenter"

var background = rl.Color{R: 14, G: 18, B: 24, A: 255}

// camera3D converts the orbit camera to raylib's representation.
func (g *Game) camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(g.camera.Position()),
		Target:     vec3(g.camera.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       50,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(background)

	rl.BeginMode3D(g.camera3D())
	g.drawScene()
	rl.EndMode3D()

	g.drawPanels()
	rl.EndDrawing()
}

func (g *Game) drawScene() {
	if g.overlays.IsEnabled(ui.OverlayBounds) {
		renderer.DrawWorldBounds(g.cfg.World.Radius)
	}
	if g.overlays.IsEnabled(ui.OverlayObstacles) {
		renderer.DrawObstacles(g.sim.Obstacles())
	}
	if g.overlays.IsEnabled(ui.OverlayPath) {
		renderer.DrawPath(g.sim.Path())
	}
	if g.overlays.IsEnabled(ui.OverlayFlowField) {
		g.flow.Draw(g.sim.FlowField())
	}

	g.sim.ForEachAgent(func(a components.Agent, v *vehicle.Vehicle, _ r3.Vec) {
		if !g.camera.IsVisible(v.Position(), v.Radius()*2) {
			return
		}
		renderer.DrawAgent(v, v.Radius(), renderer.RoleColor(a.Role))
		if int(a.ID) == g.selected {
			renderer.DrawSelection(v, v.Radius())
		}
	})

	if g.annotator.IsEnabled() {
		g.annotator.Draw()
	}
}

func (g *Game) drawPanels() {
	g.hud.Draw(ui.HUDData{
		Title:    "Steering Behaviors",
		Agents:   g.sim.AgentCount(),
		Tick:     g.sim.Tick(),
		SimTime:  float64(g.sim.Tick()) * g.cfg.Physics.DT,
		Speed:    g.stepsPerUpdate,
		FPS:      rl.GetFPS(),
		Paused:   g.paused,
		Selected: g.selected,
	})
	g.hud.DrawControls(g.screenHeight, controlsLegend)
	g.controls.Draw(g.overlays)

	if g.overlays.IsEnabled(ui.OverlayStats) {
		g.stats.Draw(g.sim.LastStats())
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.sim.Perf().Stats())
	}
	if g.overlays.IsEnabled(ui.OverlayTuning) {
		result := g.tuning.Draw(g.cfg, g.annotator.IsEnabled())
		if result.ToggleAnnotations {
			g.setAnnotations(!g.annotator.IsEnabled())
		}
		if result.Reset {
			g.resetTuning()
		}
	}

	if g.selected >= 0 {
		if in, ok := g.sim.Inspect(uint32(g.selected)); ok {
			g.inspector.Draw(ui.AgentReadout{
				ID:         in.Agent.ID,
				Role:       in.Agent.Role,
				Speed:      in.Vehicle.Speed(),
				Force:      r3.Norm(in.Force),
				WanderSide: in.Wander.Side,
				WanderUp:   in.Wander.Up,
				Outside:    in.PathFollow.Outside,
			}, float32(in.Vehicle.MaxSpeed()), float32(in.Vehicle.MaxForce()))
		}
	}
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
