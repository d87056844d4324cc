// Package ui provides the aquarium's screen-space panels. Panels are
// driven by field descriptors and registries so they stay in sync with
// the components and frame phases they display.
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
		PanelBg:         rl.Color{R: 10, G: 22, B: 32, A: 220},
		PanelBorder:     rl.Color{R: 50, G: 90, B: 110, A: 255},
		SectionHeader:   rl.Color{R: 255, G: 217, B: 61, A: 255},
		LabelColor:      rl.LightGray,
		ValueColor:      rl.LightGray,
		BarBg:           rl.Color{R: 30, G: 40, B: 48, A: 255},
		BarFill:         rl.Color{R: 100, G: 170, B: 210, A: 255},
		BarFillNegative: rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillPositive: rl.Color{R: 107, G: 203, B: 119, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      60,
		BarHeight:       10,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}

// Normalize maps v from [min, max] onto [0, 1], clamped.
func Normalize(v, min, max float32) float32 {
	if max <= min {
		return 0
	}
	t := (v - min) / (max - min)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
