package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aquarium/jellyfish"
)

// part pairs a geometry view with the material slot it is drawn with.
type part struct {
	part jellyfish.Part
	slot jellyfish.Slot
}

var (
	surfaceParts = []part{
		{jellyfish.PartBell, jellyfish.SlotBulb},
		{jellyfish.PartTail, jellyfish.SlotTail},
		{jellyfish.PartMouth, jellyfish.SlotMouth},
	}
	lineParts = []part{
		{jellyfish.PartHood, jellyfish.SlotHood},
		{jellyfish.PartTentacles, jellyfish.SlotTentacle},
	}
)

// JellyRenderer draws creatures from their shared position buffer.
type JellyRenderer struct {
	Wireframe bool
	ShowInner bool

	scene map[*jellyfish.Creature][]rl.Vector3
}

// NewJellyRenderer creates a new jelly renderer.
func NewJellyRenderer() *JellyRenderer {
	return &JellyRenderer{scene: make(map[*jellyfish.Creature][]rl.Vector3)}
}

// Forget drops the cached vertices of c.
func (r *JellyRenderer) Forget(c *jellyfish.Creature) {
	delete(r.scene, c)
}

// Draw renders c. Must be called between BeginMode3D and EndMode3D.
func (r *JellyRenderer) Draw(c *jellyfish.Creature) {
	verts := r.vertices(c)
	mats := c.Materials()
	uvs := c.UVs()

	rl.DrawRenderBatchActive()
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()

	for _, p := range surfaceParts {
		m := mats.Get(p.slot)
		g := c.Geometry(p.part)
		// Bulb brightens slightly as the bell contracts.
		base := m.Diffuse.Scale(1 + 0.15*m.Phase)
		for k := 0; k+2 < len(g.Indices); k += 3 {
			a, b, cc := g.Indices[k], g.Indices[k+1], g.Indices[k+2]
			if r.Wireframe {
				col := ToColor(base, m.Opacity)
				rl.DrawLine3D(verts[a], verts[b], col)
				rl.DrawLine3D(verts[b], verts[cc], col)
				rl.DrawLine3D(verts[cc], verts[a], col)
				continue
			}
			v := uvs[2*int(a)+1]
			rl.DrawTriangle3D(verts[a], verts[b], verts[cc], ToColor(base.Lerp(m.DiffuseB, v), m.Opacity))
		}
	}

	if rim := mats.Get(jellyfish.SlotRim); rim.Opacity > 0.01 && !r.Wireframe {
		col := ToColor(rim.Diffuse, rim.Opacity)
		g := c.Geometry(jellyfish.PartBell)
		for k := 0; k+2 < len(g.Indices); k += 3 {
			rl.DrawLine3D(verts[g.Indices[k]], verts[g.Indices[k+1]], col)
		}
	}

	parts := lineParts
	if r.ShowInner {
		parts = append(parts[:len(parts):len(parts)], part{jellyfish.PartInner, jellyfish.SlotInner})
	}
	for _, p := range parts {
		m := mats.Get(p.slot)
		g := c.Geometry(p.part)
		col := ToColor(m.Diffuse, m.Opacity)
		for k := 0; k+1 < len(g.Indices); k += 2 {
			rl.DrawLine3D(verts[g.Indices[k]], verts[g.Indices[k+1]], col)
		}
	}

	rl.DrawRenderBatchActive()
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

// vertices returns c's particles in scene space, refreshing the cache
// only when the body moved since the last draw.
func (r *JellyRenderer) vertices(c *jellyfish.Creature) []rl.Vector3 {
	verts, ok := r.scene[c]
	if ok && !c.Dirty() {
		return verts
	}
	view := c.Positions()
	if len(verts) != view.Len() {
		verts = make([]rl.Vector3, view.Len())
	}
	t := c.Transform()
	for i := range verts {
		verts[i] = Vec3(t.Apply(view.At(i)))
	}
	r.scene[c] = verts
	c.MarkClean()
	return verts
}
