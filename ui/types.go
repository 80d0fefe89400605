// Package ui draws the HUD, the menu and game-over screens, and the debug
// overlay panel on top of the 3D scene.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bubbles/lattice"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillLow     rl.Color
	Warning        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillLow:     rl.Color{R: 200, G: 100, B: 100, A: 255},
		Warning:        rl.Color{R: 230, G: 80, B: 60, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     80,
		BarHeight:      12,
		FontSize:       14,
		HeaderFontSize: 16,
	}
}

// bubbleColors follows the palette order in lattice.
var bubbleColors = []rl.Color{
	{R: 220, G: 50, B: 60, A: 255},  // red
	{R: 50, G: 110, B: 230, A: 255}, // blue
	{R: 60, G: 190, B: 80, A: 255},  // green
	{R: 240, G: 210, B: 60, A: 255}, // yellow
	{R: 160, G: 70, B: 210, A: 255}, // purple
	{R: 60, G: 210, B: 220, A: 255}, // cyan
}

// BubbleColor returns the display color for a palette color.
func BubbleColor(c lattice.Color) rl.Color {
	if int(c) < len(bubbleColors) {
		return bubbleColors[c]
	}
	return rl.Gray
}
