package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/components"
	"github.com/pthm-cable/steer/ui"
	"github.com/pthm-cable/steer/vehicle"
)

const (
	orbitSensitivity = 0.005 // radians per pixel
	zoomStep         = 0.1
	pickSlack        = 1.5 // pick radius as a multiple of the agent radius
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < maxStepsPerUpdate {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		g.selected = -1
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := g.overlays.HandleKeyPress(key); ok && id == ui.OverlayAnnotations {
			g.setAnnotations(on)
		}
	}

	g.handleCameraInput()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !g.overPanel(rl.GetMousePosition()) {
		g.selectAtMouse()
	}
}

// handleResize keeps panels anchored to the right and bottom edges.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.screenWidth = int32(rl.GetScreenWidth())
	g.screenHeight = int32(rl.GetScreenHeight())

	g.stats.SetPosition(g.screenWidth-250, 10)
	g.tuning.SetPosition(g.screenWidth-250, 250)
	g.perfPanel.SetPosition(g.screenWidth-300, g.screenHeight-150)
	g.inspector.SetPosition(10, g.screenHeight-200)
}

// handleCameraInput orbits with the right mouse button and zooms with the
// wheel or +/- keys.
func (g *Game) handleCameraInput() {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.camera.Rotate(-float64(d.X)*orbitSensitivity, float64(d.Y)*orbitSensitivity)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.Zoom(1 - float64(wheel)*zoomStep)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.Zoom(0.8)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.Zoom(1.25)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Target = r3.Vec{}
	}
}

// overPanel reports whether pos is over a panel that takes mouse input.
func (g *Game) overPanel(pos rl.Vector2) bool {
	return g.overlays.IsEnabled(ui.OverlayTuning) && pos.X >= float32(g.screenWidth-250) && pos.Y >= 250
}

// selectAtMouse selects the agent under the cursor, or clears the selection.
func (g *Game) selectAtMouse() {
	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), g.camera3D())
	origin := r3.Vec{X: float64(ray.Position.X), Y: float64(ray.Position.Y), Z: float64(ray.Position.Z)}
	dir := r3.Vec{X: float64(ray.Direction.X), Y: float64(ray.Direction.Y), Z: float64(ray.Direction.Z)}

	picker := newRayPicker(origin, dir)
	g.sim.ForEachAgent(func(a components.Agent, v *vehicle.Vehicle, _ r3.Vec) {
		picker.consider(int(a.ID), v.Position(), v.Radius()*pickSlack)
	})
	g.selected = picker.best
}
