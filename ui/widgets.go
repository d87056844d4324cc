package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aquarium/components"
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
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for value in [min, max].
func (r *Renderer) DrawBar(x, y int32, label, text string, value, min, max float32, width int32) int32 {
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	fillWidth := int32(float32(barWidth) * Normalize(value, min, max))
	rl.DrawRectangle(barX, y+2, fillWidth, r.Theme.BarHeight, r.Theme.BarFill)

	rl.DrawText(text, barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawCenteredBar draws a bar growing from the middle of [min, max].
func (r *Renderer) DrawCenteredBar(x, y int32, label, text string, value, min, max float32, width int32) int32 {
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	centerX := barX + barWidth/2
	rl.DrawLine(centerX, y+2, centerX, y+2+r.Theme.BarHeight, rl.Color{R: 80, G: 80, B: 80, A: 255})

	t := Normalize(value, min, max)*2 - 1
	fillX := centerX
	fillWidth := int32(float32(barWidth/2) * t)
	barColor := r.Theme.BarFillPositive
	if t < 0 {
		fillWidth = -fillWidth
		fillX = centerX - fillWidth
		barColor = r.Theme.BarFillNegative
	}
	rl.DrawRectangle(fillX, y+2, fillWidth, r.Theme.BarHeight, barColor)

	rl.DrawText(text, barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawColorSwatch draws a small color square.
func (r *Renderer) DrawColorSwatch(x, y int32, color rl.Color) {
	rl.DrawRectangle(x, y+1, 10, 10, color)
}

// DrawDescriptor renders one swim field according to its descriptor.
// Zero values are hidden unless the descriptor asks otherwise.
func (r *Renderer) DrawDescriptor(x, y int32, fd components.FieldDescriptor, swim components.Swim, width int32) int32 {
	value, ok := swim.Value(fd.ID)
	if !ok || (value == 0 && !fd.ShowWhenZero) {
		return y
	}
	text := fmt.Sprintf(fd.Format, value)
	switch {
	case fd.IsBar:
		return r.DrawBar(x, y, fd.Label, text, value, fd.Min, fd.Max, width)
	case fd.IsCentered:
		return r.DrawCenteredBar(x, y, fd.Label, text, value, fd.Min, fd.Max, width)
	default:
		return r.DrawLabelValue(x, y, fd.Label, text)
	}
}
