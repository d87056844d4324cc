package jellyfish

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Color is a linear RGB color. Components may exceed 1 for glow.
type Color struct {
	R, G, B float64
}

// Hex converts a 0xRRGGBB value.
func Hex(v uint32) Color {
	return Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

// Scale multiplies every component by f.
func (c Color) Scale(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f}
}

// Lerp blends from c toward to by t.
func (c Color) Lerp(to Color, t float64) Color {
	return Color{
		R: c.R + (to.R-c.R)*t,
		G: c.G + (to.G-c.G)*t,
		B: c.B + (to.B-c.B)*t,
	}
}

// Palette is the set of colors a jellyfish is drawn with, at rest and
// when hovered.
type Palette struct {
	Color    Color
	DiffuseB Color
	Faint    Color

	Hover         Color
	HoverDiffuseB Color
	HoverFaint    Color
}

// DefaultPalette is the coral jellyfish.
func DefaultPalette() Palette {
	return Palette{
		Color:         Hex(0xff6b6b),
		DiffuseB:      Hex(0x7a1a1a),
		Faint:         Hex(0xff4444),
		Hover:         Hex(0xffb3b3),
		HoverDiffuseB: Hex(0xc45050),
		HoverFaint:    Hex(0xff8888),
	}
}

// Hover colors are pushed past 1 so they bloom.
const (
	hoverGain      = 2.5
	hoverFaintGain = 4.0
)

// Slot names a material of the jellyfish.
type Slot uint8

const (
	SlotBulb Slot = iota
	SlotRim
	SlotTail
	SlotHood
	SlotTentacle
	SlotMouth
	SlotInner
	slotCount
)

func (s Slot) String() string {
	return [...]string{"bulb", "rim", "tail", "hood", "tentacle", "mouth", "inner", "unknown"}[min(s, slotCount)]
}

// Material is the per-frame parameter set of one slot.
type Material struct {
	Phase    float64
	Time     float64
	Diffuse  Color
	DiffuseB Color
	Opacity  float64
}

// Materials holds one material per slot.
type Materials [slotCount]Material

// Get returns the material of slot s.
func (m *Materials) Get(s Slot) Material {
	return m[s]
}

// materials computes every slot for the frame. h is the hover blend and
// rim the eased rim opacity.
func (p Palette) materials(phase, time, h, rim float64) Materials {
	hover := p.Hover.Scale(hoverGain)
	hoverFaint := p.HoverFaint.Scale(hoverFaintGain)
	main := p.Color.Lerp(hover, h)
	faint := p.Faint.Lerp(hoverFaint, h)

	var m Materials
	for i := range m {
		m[i].Phase = phase
		m[i].Time = time
	}
	m[SlotBulb].Diffuse = main
	m[SlotBulb].DiffuseB = p.DiffuseB.Lerp(p.HoverDiffuseB, h)
	m[SlotBulb].Opacity = 0.75 + h*0.2

	m[SlotRim].Diffuse = p.Faint
	m[SlotRim].Opacity = rim

	m[SlotTail].Diffuse = faint
	m[SlotTail].DiffuseB = main
	m[SlotTail].Opacity = 0.55 + h*0.2

	m[SlotHood].Diffuse = main
	m[SlotHood].Opacity = 0.35 + h*0.55

	m[SlotTentacle].Diffuse = faint
	m[SlotTentacle].Opacity = 0.25

	m[SlotMouth].Diffuse = faint
	m[SlotMouth].DiffuseB = main
	m[SlotMouth].Opacity = 0.75 * 0.65

	m[SlotInner].Diffuse = main
	m[SlotInner].Opacity = 0.2
	return m
}

// Hover eases the hover blend between 0 and 1.
type Hover struct {
	duration float32
	target   float32
	value    float32
	tween    *gween.Tween
}

// NewHover returns a blend that takes duration seconds to settle.
func NewHover(duration float64) *Hover {
	return &Hover{duration: float32(duration)}
}

// Set changes the blend target: 1 while hovered, 0 otherwise.
func (h *Hover) Set(hovered bool) {
	var target float32
	if hovered {
		target = 1
	}
	if target == h.target {
		return
	}
	h.target = target
	h.tween = gween.New(h.value, target, h.duration, ease.OutQuad)
}

// Hovered reports the current target.
func (h *Hover) Hovered() bool {
	return h.target == 1
}

// Update advances the blend and returns it.
func (h *Hover) Update(dt float64) float64 {
	if h.tween != nil {
		v, done := h.tween.Update(float32(dt))
		h.value = v
		if done {
			h.tween = nil
		}
	}
	return float64(h.value)
}

// Value returns the current blend.
func (h *Hover) Value() float64 {
	return float64(h.value)
}
