package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/steer/config"
)

// knob binds a slider to one steering parameter.
type knob struct {
	label    string
	min, max float32
	field    func(*config.SteeringConfig) *float64
}

func tuningKnobs() []knob {
	return []knob{
		{"Separation", 0, 20, func(s *config.SteeringConfig) *float64 { return &s.Separation.Weight }},
		{"Sep. radius", 0.5, 20, func(s *config.SteeringConfig) *float64 { return &s.Separation.MaxDistance }},
		{"Alignment", 0, 20, func(s *config.SteeringConfig) *float64 { return &s.Alignment.Weight }},
		{"Ali. radius", 0.5, 30, func(s *config.SteeringConfig) *float64 { return &s.Alignment.MaxDistance }},
		{"Cohesion", 0, 20, func(s *config.SteeringConfig) *float64 { return &s.Cohesion.Weight }},
		{"Coh. radius", 0.5, 40, func(s *config.SteeringConfig) *float64 { return &s.Cohesion.MaxDistance }},
		{"Cruise speed", 0, 1, func(s *config.SteeringConfig) *float64 { return &s.CruiseSpeed }},
		{"Wander", 0, 5, func(s *config.SteeringConfig) *float64 { return &s.WanderWeight }},
		{"Flow", 0, 5, func(s *config.SteeringConfig) *float64 { return &s.FlowWeight }},
		{"Pursuit", 0, 5, func(s *config.SteeringConfig) *float64 { return &s.PursuitWeight }},
		{"Evasion", 0, 5, func(s *config.SteeringConfig) *float64 { return &s.EvasionWeight }},
	}
}

// TuningResult reports what the user changed this frame.
type TuningResult struct {
	Changed           bool // a steering parameter moved
	ToggleAnnotations bool
	Reset             bool // restore the values captured at startup
}

// TuningPanel edits steering parameters in place with raygui sliders.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	knobs    []knob
}

// NewTuningPanel creates a tuning panel.
func NewTuningPanel(x, y, width int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		knobs:    tuningKnobs(),
	}
}

// SetPosition updates the panel position.
func (t *TuningPanel) SetPosition(x, y int32) {
	t.x = x
	t.y = y
}

// Draw renders the sliders and writes moved values into cfg. Derived values
// are refreshed when anything changed.
func (t *TuningPanel) Draw(cfg *config.Config, annotating bool) TuningResult {
	var result TuningResult
	r := t.renderer
	padding := float32(r.Theme.Padding)
	rowHeight := float32(34)
	height := padding*2 + 24 + rowHeight*float32(len(t.knobs)) + 36

	r.DrawPanel(t.x, t.y, t.width, int32(height))

	x := float32(t.x) + padding
	y := float32(t.y) + padding
	sliderWidth := float32(t.width) - padding*2 - 50

	rl.DrawText("Steering", int32(x), int32(y), 16, rl.White)
	y += 24

	for _, k := range t.knobs {
		field := k.field(&cfg.Steering)
		rl.DrawText(k.label, int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		next := gui.SliderBar(
			rl.Rectangle{X: x, Y: y + 14, Width: sliderWidth, Height: 14},
			"", "",
			float32(*field), k.min, k.max,
		)
		rl.DrawText(fmt.Sprintf("%.2f", *field), int32(x+sliderWidth+6), int32(y+14), r.Theme.FontSize, r.Theme.ValueColor)
		if next != float32(*field) {
			*field = float64(next)
			result.Changed = true
		}
		y += rowHeight
	}

	half := (float32(t.width) - padding*3) / 2
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 26}, toggleText(annotating, "Hide Annotations", "Annotate")) {
		result.ToggleAnnotations = true
	}
	if gui.Button(rl.Rectangle{X: x + half + padding, Y: y, Width: half, Height: 26}, "Reset") {
		result.Reset = true
	}

	if result.Changed {
		cfg.Recompute()
	}
	return result
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
