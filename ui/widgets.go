package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/steer/components"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws value as a fraction of [minVal, maxVal].
func (r *Renderer) DrawBar(x, y int32, label string, value, minVal, maxVal float32, width int32) int32 {
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	fill := barFraction(value, minVal, maxVal)
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*fill), r.Theme.BarHeight, r.Theme.BarFill)

	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight + 2
}

// DrawCenteredBar draws a bar growing from the middle, for values in a
// symmetric range such as [-1, 1].
func (r *Renderer) DrawCenteredBar(x, y int32, label string, value, maxAbs float32, width int32) int32 {
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	centerX := barX + barWidth/2
	rl.DrawLine(centerX, y+2, centerX, y+2+r.Theme.BarHeight, rl.Color{R: 80, G: 80, B: 80, A: 255})

	fillWidth := int32(float32(barWidth/2) * barFraction(float32(math.Abs(float64(value))), 0, maxAbs))
	fillX := centerX
	barColor := r.Theme.BarFillPositive
	if value < 0 {
		fillX = centerX - fillWidth
		barColor = r.Theme.BarFillNegative
	}
	rl.DrawRectangle(fillX, y+2, fillWidth, r.Theme.BarHeight, barColor)

	rl.DrawText(fmt.Sprintf("%+.2f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight + 2
}

// DrawSpacer adds vertical space and returns new Y.
func (r *Renderer) DrawSpacer(y int32, amount int32) int32 {
	return y + amount
}

// DrawField renders one descriptor. Bars need a numeric value; fields whose
// range straddles zero draw as centered bars.
func (r *Renderer) DrawField(x, y int32, fd components.FieldDescriptor, src FieldSource, width int32) int32 {
	value, ok := src.FieldValue(fd.ID)
	if !ok {
		return y
	}
	num, isNum := value.(float64)

	switch {
	case fd.IsBar && isNum:
		return r.DrawBar(x, y, fd.Label, float32(num), fd.Min, fd.Max, width)
	case fd.Min < 0 && fd.Max > 0 && isNum:
		return r.DrawCenteredBar(x, y, fd.Label, float32(num), fd.Max, width)
	}
	return r.DrawLabelValue(x, y, fd.Label, formatField(fd.Format, value))
}

// DrawFields renders descriptors in order, starting a new section header
// whenever the group changes.
func (r *Renderer) DrawFields(x, y int32, fields []components.FieldDescriptor, src FieldSource, width int32) int32 {
	group := ""
	for _, fd := range fields {
		if fd.Group != group {
			if group != "" {
				y = r.DrawSpacer(y, 4)
			}
			group = fd.Group
		}
		y = r.DrawField(x, y, fd, src, width)
	}
	return y
}

func formatField(format string, value any) string {
	if format == "" {
		return fmt.Sprint(value)
	}
	return fmt.Sprintf(format, value)
}

// barFraction maps value into [0, 1] over [minVal, maxVal].
func barFraction(value, minVal, maxVal float32) float32 {
	if maxVal <= minVal {
		return 0
	}
	f := (value - minVal) / (maxVal - minVal)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
