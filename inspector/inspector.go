// Package inspector shows the components of the selected jelly in a
// side panel. Fields are discovered by reflection over inspect tags.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 12, G: 24, B: 32, A: 235}
	ColorPanelHeader = rl.Color{R: 26, G: 48, B: 60, A: 255}
	ColorPanelBorder = rl.Color{R: 60, G: 100, B: 120, A: 255}
	ColorHeaderText  = rl.White
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 30, G: 58, B: 72, A: 255}
)

// Section is a titled group of component fields.
type Section struct {
	Title     string
	Component any
}

// Inspector tracks the selected entity and draws its panel.
type Inspector struct {
	selected     ecs.Entity
	hasSelected  bool
	panelX       int32
	panelY       int32
	screenWidth  int32
	screenHeight int32
	height       int32
}

// NewInspector creates an inspector docked to the right edge.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize re-docks the panel after a window resize.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = 10
}

// Select makes e the inspected entity.
func (ins *Inspector) Select(e ecs.Entity) {
	ins.selected = e
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
	ins.height = 0
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Contains reports whether p lies on the visible panel.
func (ins *Inspector) Contains(p rl.Vector2) bool {
	if !ins.hasSelected || ins.height == 0 {
		return false
	}
	rect := rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(ins.height)}
	return rl.CheckCollisionPointRec(p, rect)
}

// HandleInput closes the panel on Escape or a click on the close button.
// It returns true when the input was consumed.
func (ins *Inspector) HandleInput(mouse rl.Vector2) bool {
	if !ins.hasSelected {
		return false
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return true
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return false
	}
	closeBtn := rl.Rectangle{X: float32(ins.panelX + PanelWidth - 25), Y: float32(ins.panelY + 5), Width: 20, Height: 20}
	if rl.CheckCollisionPointRec(mouse, closeBtn) {
		ins.Deselect()
		return true
	}
	return ins.Contains(mouse)
}

// Draw renders the panel for the selected entity. The caller resolves
// the entity's components into sections.
func (ins *Inspector) Draw(title string, sections []Section) {
	if !ins.hasSelected {
		return
	}

	fields := make([][]Field, len(sections))
	height := int32(HeaderHeight + PanelPadding*2)
	for i, s := range sections {
		fields[i] = ExtractFields(s.Component)
		height += 26
		for _, f := range fields[i] {
			height += FieldHeight(f)
		}
	}
	ins.height = height

	x0, y0 := ins.panelX, ins.panelY
	rl.DrawRectangle(x0, y0, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: float32(x0), Y: float32(y0), Width: PanelWidth, Height: float32(height)}, 1, ColorPanelBorder)

	rl.DrawRectangle(x0, y0, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(title, x0+PanelPadding, y0+7, 16, ColorHeaderText)
	rl.DrawRectangle(x0+PanelWidth-25, y0+5, 20, 20, ColorCloseBtn)
	rl.DrawText("X", x0+PanelWidth-19, y0+8, 14, rl.White)

	x := x0 + PanelPadding
	y := y0 + HeaderHeight + PanelPadding
	for i, s := range sections {
		rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
		rl.DrawText(s.Title, x+2, y, 14, ColorText)
		y += 26
		for _, f := range fields[i] {
			y += DrawField(x, y, f)
		}
	}
}

// Title formats a panel title for an entity.
func Title(name string, e ecs.Entity) string {
	return fmt.Sprintf("%s  #%d", name, e.ID())
}
