package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aquarium/components"
)

// JellyRow is one jelly as listed in the controls panel.
type JellyRow struct {
	Name  string
	Route string
	Swim  components.Swim
}

// ControlsResult reports what the user changed this frame.
type ControlsResult struct {
	Surface   int // index of the jelly to surface, -1 for none
	TimeScale float32
}

// ControlsPanel renders the left-side panel: one block per jelly with a
// surface button, the overlay toggles and the time scale slider.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	visible  bool
	fields   []components.FieldDescriptor
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
		fields:   components.SwimFieldDescriptors(),
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether p lies on the panel as last drawn.
func (c *ControlsPanel) Contains(p rl.Vector2) bool {
	if !c.visible {
		return false
	}
	rect := rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height)}
	return rl.CheckCollisionPointRec(p, rect)
}

// Draw renders the panel and returns the user's requests.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, rows []JellyRow, timeScale float32) ControlsResult {
	result := ControlsResult{Surface: -1, TimeScale: timeScale}
	if !c.visible {
		return result
	}

	r := c.renderer
	pad := r.Theme.Padding
	line := r.Theme.LineHeight
	inner := c.width - pad*2

	if c.height > 0 {
		r.DrawPanel(c.x, c.y, c.width, c.height)
	}
	x := c.x + pad
	y := c.y + pad

	for i, row := range rows {
		y = r.DrawSectionHeader(x, y, row.Name)
		rl.DrawText(row.Route, x, y, r.Theme.FontSize, r.Theme.LabelColor)
		y += line
		for _, fd := range c.fields {
			y = r.DrawDescriptor(x, y, fd, row.Swim, inner)
		}

		label := fmt.Sprintf("Surface [%d]", i+1)
		if row.Swim.Surfacing {
			label = "Surfacing..."
		}
		if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(inner), Height: 20}, label) && !row.Swim.Surfacing {
			result.Surface = i
		}
		y += 26
	}

	for _, category := range overlays.Categories() {
		y = r.DrawSectionHeader(x, y, categoryLabel(category))
		for _, desc := range overlays.ByCategory(category) {
			text := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			enabled := overlays.IsEnabled(desc.ID)
			checked := gui.CheckBox(rl.Rectangle{X: float32(x), Y: float32(y), Width: 12, Height: 12}, text, enabled)
			if checked != enabled {
				overlays.SetEnabled(desc.ID, checked)
			}
			y += line
		}
		y += 4
	}

	y = r.DrawSectionHeader(x, y, "Time Scale")
	result.TimeScale = gui.SliderBar(
		rl.Rectangle{X: float32(x + 30), Y: float32(y), Width: float32(inner - 70), Height: 16},
		"0.1", "4.0", timeScale, 0.1, 4,
	)
	rl.DrawText(fmt.Sprintf("%.2fx", result.TimeScale), x+inner-30, y+2, r.Theme.FontSize, r.Theme.ValueColor)
	y += 24

	c.height = y - c.y + pad
	return result
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "render":
		return "Render"
	case "debug":
		return "Debug"
	case "interaction":
		return "Interaction"
	default:
		return cat
	}
}
