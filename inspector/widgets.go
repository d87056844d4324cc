package inspector

import (
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 30, G: 42, B: 50, A: 255}
	ColorBarFill     = rl.Color{R: 110, G: 190, B: 220, A: 255}
	ColorText        = rl.Color{R: 220, G: 230, B: 235, A: 255}
	ColorTextDim     = rl.Color{R: 140, G: 160, B: 170, A: 255}
	ColorAngleBg     = rl.Color{R: 40, G: 55, B: 65, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 120, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 140, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

const labelWidth = 80

// DrawLabel renders name: value and returns the height used.
func DrawLabel(x, y int32, name, text string) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawText(text, x+labelWidth, y, 14, ColorText)
	return 20
}

// DrawBar renders value against [h.Min, h.Max].
func DrawBar(x, y int32, name string, value float32, h Hint) int32 {
	ratio := float32(0)
	if h.Max > h.Min {
		ratio = (value - h.Min) / (h.Max - h.Min)
	}
	ratio = math32.Max(0, math32.Min(1, ratio))

	const barWidth, barHeight = 120, 14
	rl.DrawText(name, x, y, 14, ColorTextDim)
	barX := x + labelWidth
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)
	rl.DrawRectangle(barX, y, int32(barWidth*ratio), barHeight, ColorBarFill)
	rl.DrawText(FormatValue(value, h.Format), barX+barWidth+5, y, 14, ColorTextDim)
	return 18
}

// DrawAngle renders a compass dial. Zero points right, positive turns
// counterclockwise as seen from above.
func DrawAngle(x, y int32, name string, radians float32) int32 {
	const size = 40
	cx := float32(x + labelWidth + size/2)
	cy := float32(y + size/2)

	rl.DrawText(name, x, y+size/2-7, 14, ColorTextDim)
	rl.DrawCircle(int32(cx), int32(cy), size/2, ColorAngleBg)
	rl.DrawCircleLines(int32(cx), int32(cy), size/2, ColorTextDim)

	s, c := math32.Sin(radians), math32.Cos(radians)
	needle := float32(size/2 - 4)
	rl.DrawLineEx(rl.Vector2{X: cx, Y: cy}, rl.Vector2{X: cx + needle*c, Y: cy - needle*s}, 2, ColorAngleNeedle)

	rl.DrawText(fmt.Sprintf("%.0f deg", radians*180/math32.Pi), x+labelWidth+size+5, y+size/2-7, 14, ColorTextDim)
	return size + 4
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)
	color, text := ColorBoolOff, "no"
	if value {
		color, text = ColorBoolOn, "yes"
	}
	rl.DrawRectangle(x+labelWidth, y, 14, 14, color)
	rl.DrawText(text, x+labelWidth+19, y, 14, color)
	return 18
}

// DrawField renders a field with its widget, falling back to a label
// when the value does not suit the widget.
func DrawField(x, y int32, f Field) int32 {
	switch f.Hint.Widget {
	case WidgetBar:
		if v, ok := Float(f.Value); ok {
			return DrawBar(x, y, f.Name, v, f.Hint)
		}
	case WidgetAngle:
		if v, ok := Float(f.Value); ok {
			return DrawAngle(x, y, f.Name, v)
		}
	case WidgetBool:
		if v, ok := f.Value.(bool); ok {
			return DrawBool(x, y, f.Name, v)
		}
	}
	return DrawLabel(x, y, f.Name, FormatValue(f.Value, f.Hint.Format))
}

// FieldHeight is the height DrawField will use for f.
func FieldHeight(f Field) int32 {
	switch f.Hint.Widget {
	case WidgetAngle:
		if _, ok := Float(f.Value); ok {
			return 44
		}
	case WidgetBar, WidgetBool:
		return 18
	}
	return 20
}
