// Flow field preview tool - interactive slice view of the noise current.
//
// Usage: go run ./cmd/flowpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/steer/config"
	"github.com/pthm-cable/steer/geom"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 128
	arrowStride  = 8 // grid cells between arrows
)

// previewParams are the slider-controlled values.
type previewParams struct {
	Scale    float32
	Strength float32
	Speed    float32
	SliceY   float32
	Seed     int64
}

func paramsFromConfig(cfg *config.Config) previewParams {
	return previewParams{
		Scale:    float32(cfg.Flow.Scale),
		Strength: float32(cfg.Flow.Strength),
		Speed:    float32(cfg.Flow.Speed),
		Seed:     1,
	}
}

// flowYAML renders params as the flow section of a config file.
func flowYAML(p previewParams) (string, error) {
	out, err := yaml.Marshal(map[string]config.FlowConfig{
		"flow": {
			Kind:     "noise",
			Scale:    float64(p.Scale),
			Strength: float64(p.Strength),
			Speed:    float64(p.Speed),
		},
	})
	return string(out), err
}

func main() {
	configPath := flag.String("config", "", "Config to start from (empty = defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	extent := cfg.World.Radius

	rl.InitWindow(windowWidth, windowHeight, "Flow Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	defaults := paramsFromConfig(cfg)
	params := defaults

	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	field := geom.NewNoiseFlowField(params.Seed, float64(params.Scale), float64(params.Strength), float64(params.Speed))
	var slice flowSlice
	animating := false
	needsRegen := true

	for !rl.WindowShouldClose() {
		if animating {
			field.Advance(float64(rl.GetFrameTime()))
			needsRegen = true
		}
		if needsRegen {
			slice = sampleSlice(field, gridSize, extent, float64(params.SliceY))
			rl.UpdateTexture(texture, slice.colors())
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		drawArrows(slice, 10, 10, previewSize)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("|flow| min: %.3f  max: %.3f  mean: %.3f", slice.Min, slice.Max, slice.Mean), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Time: %.2f  (XZ slice, %.0f units across)", field.Time(), 2*extent), 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)
		rl.DrawText("Noise Flow Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		changed := false
		slider := func(label string, value *float32, lo, hi float32) {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				*value, lo, hi,
			)
			rl.DrawText(fmt.Sprintf("%.3f", *value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if next != *value {
				*value = next
				changed = true
			}
			panelY += 35
		}
		slider("Scale (spatial frequency)", &params.Scale, 0.001, 0.2)
		slider("Strength (peak per axis)", &params.Strength, 0, 5)
		slider("Speed (drift per second)", &params.Speed, 0, 2)
		slider("Slice height (Y)", &params.SliceY, float32(-extent), float32(extent))

		if changed {
			field.Scale = float64(params.Scale)
			field.Strength = float64(params.Strength)
			field.Speed = float64(params.Speed)
			needsRegen = true
		}

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(1, 99999))
			field = geom.NewNoiseFlowField(params.Seed, float64(params.Scale), float64(params.Strength), float64(params.Speed))
			needsRegen = true
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			field = geom.NewNoiseFlowField(params.Seed, float64(params.Scale), float64(params.Strength), float64(params.Speed))
			needsRegen = true
		}
		panelY += 55

		snippet, err := flowYAML(params)
		if err != nil {
			snippet = err.Error()
		}
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		rl.DrawText(snippet, int32(panelX), int32(panelY+25), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) && err == nil {
			rl.SetClipboardText(snippet)
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func drawArrows(s flowSlice, x0, y0, size int32) {
	if s.Max == 0 {
		return
	}
	cell := float32(size) / float32(s.Size)
	for j := arrowStride / 2; j < s.Size; j += arrowStride {
		for i := arrowStride / 2; i < s.Size; i += arrowStride {
			f := s.Flow[j*s.Size+i]
			cx := float32(x0) + (float32(i)+0.5)*cell
			cy := float32(y0) + (float32(j)+0.5)*cell
			length := float32(arrowStride) * cell * 0.45 / float32(s.Max)
			end := rl.Vector2{X: cx + float32(f.X)*length, Y: cy + float32(f.Z)*length}
			rl.DrawLineV(rl.Vector2{X: cx, Y: cy}, end, rl.White)
			rl.DrawCircleV(end, 1.5, rl.White)
		}
	}
}
