// Package ui draws the 2D panels layered over the 3D view.
// Agent readouts are driven by components.FieldDescriptor so that new fields
// only need a descriptor and a value source.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	Warn            rl.Color
	Hot             rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:     rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:   rl.Yellow,
		LabelColor:      rl.LightGray,
		ValueColor:      rl.RayWhite,
		BarBg:           rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:         rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillNegative: rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillPositive: rl.Color{R: 100, G: 200, B: 100, A: 255},
		Warn:            rl.Orange,
		Hot:             rl.Red,
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      84,
		BarHeight:       12,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}

// FieldSource supplies values for descriptor-driven readouts.
type FieldSource interface {
	// FieldValue returns the value for a field ID: a float64 for numeric
	// fields, anything printable otherwise.
	FieldValue(id string) (any, bool)
}
