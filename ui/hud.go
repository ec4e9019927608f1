package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/steer/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Agents   int
	Tick     int32
	SimTime  float64 // seconds
	Speed    int     // steps per frame
	FPS      int32
	Paused   bool
	Selected int // -1 when nothing is selected
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Agents: %d | Tick: %d | Time: %.1fs", data.Agents, data.Tick, data.SimTime),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Speed: %dx | FPS: %d", data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	if data.Selected >= 0 {
		status += fmt.Sprintf(" | Selected #%d", data.Selected)
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// StatsPanel renders the most recent stats window.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *StatsPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders stats. Nothing is drawn before the first window closes.
func (p *StatsPanel) Draw(stats telemetry.WindowStats) {
	if stats.WindowEndTick == 0 {
		return
	}
	r := p.renderer
	padding := r.Theme.Padding
	width := p.width - padding*2

	r.DrawPanel(p.x, p.y, p.width, 14*r.Theme.LineHeight+padding*2)

	x := p.x + padding
	y := r.DrawSectionHeader(x, p.y+padding, fmt.Sprintf("Window @ %.0fs", stats.SimTimeSec))
	y = r.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%.2f ± %.2f", stats.SpeedMean, stats.SpeedStd))
	y = r.DrawBar(x, y, "Polarization", float32(stats.Polarization), 0, 1, width)
	y = r.DrawLabelValue(x, y, "Steer", fmt.Sprintf("%.3f", stats.SteerMean))

	y = r.DrawSpacer(y, 4)
	y = r.DrawLabelValue(x, y, "Nearest", fmt.Sprintf("%.2f", stats.NearestMean))
	y = r.DrawLabelValue(x, y, "  p10/50/90", fmt.Sprintf("%.2f / %.2f / %.2f", stats.NearestP10, stats.NearestP50, stats.NearestP90))

	y = r.DrawSpacer(y, 4)
	y = r.DrawLabelValue(x, y, "Near misses", fmt.Sprintf("%d", stats.NearMisses))
	y = r.DrawLabelValue(x, y, "Contacts", fmt.Sprintf("%d", stats.Contacts))
	y = r.DrawLabelValue(x, y, "Captures", fmt.Sprintf("%d", stats.Captures))
	y = r.DrawLabelValue(x, y, "Path exits", fmt.Sprintf("%d", stats.PathExits))
	r.DrawLabelValue(x, y, "Outside", fmt.Sprintf("%.3f", stats.PathOutsideMean))
}

// PerfPanel renders per-phase tick timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	x, y := p.x, p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Avg: %s  (%.0f ticks/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, 14, rl.Yellow)
	y += 16
	rl.DrawText(fmt.Sprintf("Min: %s  Max: %s", stats.MinTickDuration.Round(time.Microsecond), stats.MaxTickDuration.Round(time.Microsecond)),
		x, y, 12, rl.LightGray)
	y += 16

	for _, phase := range telemetry.Phases() {
		pct := stats.PhasePct[phase]
		c := r.Theme.LabelColor
		if pct > 50 {
			c = r.Theme.Hot
		} else if pct > 25 {
			c = r.Theme.Warn
		}
		rl.DrawText(
			fmt.Sprintf("%-14s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, c,
		)
		y += 14
	}
}
