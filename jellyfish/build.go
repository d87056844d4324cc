// Package jellyfish builds and animates the soft-body jellyfish.
package jellyfish

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/aquarium/verlet"
)

// Structural constants. The topology is fixed; everything downstream
// addresses particles through the handles recorded in Body.
const (
	size           = 40.0
	yOffset        = 20.0
	segmentsCount  = 4
	Segments       = segmentsCount * 3 * 3
	ribsCount      = 20
	ribRadiusScale = 15.0
	tailRibsCount  = 15
	tailRibFlare   = 20.0

	tentacleGroupStart   = 6
	tentacleGroupOffset  = 4
	tentacleGroupCount   = 1
	tentacleWeightFactor = 1.25
	tentacleSegments     = 40
	tentacleSegmentLen   = 0.7

	tailArmSegments   = 30
	tailArmSegmentLen = 1.0
	tailArmWeight     = 0.5

	posTop      = yOffset + size
	posMid      = yOffset
	posBottom   = yOffset - size
	posTail     = yOffset - tailArmSegments*tailArmSegmentLen
	posTentacle = yOffset - tentacleSegments*tentacleSegmentLen*1.5

	// Iterations is the number of relaxation passes per step.
	Iterations = 2
)

// Anchor particles. The first five are pins; the rest are free core points.
const (
	PinTop = iota
	PinMid
	PinBottom
	PinTail
	PinTentacle
	idxTop
	idxMid
	idxBottom
)

// Pins lists every anchor held at its rest position.
var Pins = [...]int{PinTop, PinMid, PinBottom, PinTail, PinTentacle}

// Body is the output of Build: one particle system plus the index views
// and structural handles that address it.
type Body struct {
	System  *verlet.System
	Gravity *verlet.DirectionalForce

	UVs []float64

	BellFaces  []uint32
	TailFaces  []uint32
	MouthFaces []uint32

	HoodLines     []uint32
	TentacleLines []uint32
	InnerLines    []uint32

	Ribs     []*Rib
	TailRibs []*Rib
	// Tentacles holds each group's rings from the attached end to the free end.
	Tentacles [][]Span
	Arms      []Arm
}

// Arm is one mouth arm: an inner spine chain and its frilled outer edge.
type Arm struct {
	Inner Span
	Outer Span
}

// TentacleRange returns the span covering every tentacle particle.
func (b *Body) TentacleRange() Span {
	if len(b.Tentacles) == 0 {
		return Span{}
	}
	first := b.Tentacles[0][0]
	last := b.Tentacles[len(b.Tentacles)-1]
	end := last[len(last)-1].End()
	return Span{Start: first.Start, Count: end - first.Start}
}

// assembly carries the index buffers while the body parts are appended.
type assembly struct {
	*Builder

	links, innerLinks, tentLinks     []int
	bellFaces, tailFaces, mouthFaces []uint32

	ribs, tailRibs []*Rib
	tentacles      [][]Span
	arms           []Arm
}

// Build lays out a complete jellyfish. It is deterministic: every call
// yields the same particles, constraints and index buffers.
func Build() *Body {
	a := &assembly{Builder: NewBuilder()}
	a.core()
	a.bell()
	a.tailFunnel()
	a.mouthArms()
	a.tentacleGroups()

	for _, p := range Pins {
		a.Pin(p)
	}
	sys := a.System(Iterations)
	gravity := verlet.NewDirectionalForce(mgl64.Vec3{0, -2, 0})
	sys.AddForce(gravity)

	return &Body{
		System:        sys,
		Gravity:       gravity,
		UVs:           a.UVs(),
		BellFaces:     a.bellFaces,
		TailFaces:     a.tailFaces,
		MouthFaces:    a.mouthFaces,
		HoodLines:     toUint32(a.links),
		TentacleLines: toUint32(a.tentLinks),
		InnerLines:    toUint32(a.innerLinks),
		Ribs:          a.ribs,
		TailRibs:      a.tailRibs,
		Tentacles:     a.tentacles,
		Arms:          a.arms,
	}
}

func (a *assembly) core() {
	for _, y := range []float64{posTop, posMid, posBottom, posTail, posTentacle, size * 1.5, -size * 0.5, -size} {
		a.Point(Vertex{Pos: mgl64.Vec3{0, y, 0}})
	}
	a.Link(0, size*0.5, []int{PinTop, idxTop})
	a.Link(size*0.5, size*0.7, []int{idxTop, idxMid})
	a.Link(0, size*0.5, []int{PinBottom, idxBottom})
	a.Link(size, size*2, []int{idxTop, idxBottom})
	a.Axis(PinTop, PinMid, []int{idxTop, idxMid, idxBottom})

	// The bell cap fans out from the top core point to the first rib,
	// which is appended next.
	a.bellFaces = facesRadial(idxTop, Span{Start: a.Len(), Count: Segments}, a.bellFaces)
}

func ribRadius(t float64) float64 {
	return math.Sin(math.Pi-math.Pi*0.55*t*1.8) + math.Log(t*100+2)/3
}

func tailRibRadius(t float64) float64 {
	return math.Sin(0.25*t*math.Pi+0.5*math.Pi) * (1 - 0.9*t)
}

// ribUV mirrors u around the ring midpoint so the texture wraps seamlessly.
func ribUV(v float64) func(i int) mgl64.Vec2 {
	return func(i int) mgl64.Vec2 {
		if i == Segments-1 {
			return mgl64.Vec2{0, v}
		}
		st := float64(i+1) / Segments
		if st > 0.5 {
			st = 1 - st
		}
		return mgl64.Vec2{st * 2, v}
	}
}

func zeroUV(int) mgl64.Vec2 { return mgl64.Vec2{} }

// tripods returns the inner bracing pairs of a ring.
func tripods(ring Span) []int {
	var idx []int
	for i := 0; i < segmentsCount; i++ {
		idx = linksTripod(i*3, ring, idx)
	}
	return idx
}

func (a *assembly) bell() {
	for i := 0; i < ribsCount; i++ {
		a.rib(i)
		if i > 0 {
			a.skin(a.ribs[i-1], a.ribs[i], &a.links, &a.bellFaces)
		}
	}
}

func (a *assembly) rib(index int) {
	t := float64(index) / ribsCount
	radius := ribRadius(t) * ribRadiusScale
	y := size + yOffset - t*size
	ring := a.Ring(Segments, radius, y, ribUV(t))

	rib := &Rib{Ring: ring, Radius: radius, YParam: t, YPos: y}

	top, bottom := index == 0, index == ribsCount-1
	if top || bottom {
		center, reach := idxTop, radius*1.25
		if bottom {
			center, reach = idxBottom, radius
		}
		pairs := linksRadial(center, ring, nil)
		spine := a.Link(radius*0.5, reach, pairs)
		if top {
			a.links = append(a.links, pairs...)
		} else {
			a.innerLinks = append(a.innerLinks, pairs...)
		}
		rib.Bands = append(rib.Bands, Band{Kind: BandSpine, Constraint: spine, Radius: radius, Reach: reach})
	}

	outerLen := 2 * math.Pi * radius / Segments
	outerPairs := linksLoop(ring, nil)
	outer := a.Link(outerLen*0.9, outerLen, outerPairs)

	innerLen := 2 * math.Pi * radius / 3
	innerPairs := tripods(ring)
	inner := a.Link(innerLen*0.8, innerLen, innerPairs)

	a.innerLinks = append(a.innerLinks, outerPairs...)
	a.innerLinks = append(a.innerLinks, innerPairs...)
	rib.Bands = append(rib.Bands,
		Band{Kind: BandOuter, Constraint: outer, Radius: radius},
		Band{Kind: BandInner, Constraint: inner, Radius: radius},
	)
	a.ribs = append(a.ribs, rib)
}

// skin links two consecutive ribs ring-to-ring and triangulates between them.
func (a *assembly) skin(r0, r1 *Rib, lines *[]int, faces *[]uint32) {
	d := a.Distance(r0.Ring.Start, r1.Ring.Start)
	pairs := linksRings(r0.Ring, r1.Ring, nil)
	a.Link(d*0.5, d, pairs)
	*lines = append(*lines, pairs...)
	*faces = facesRings(r0.Ring, r1.Ring, *faces)
}

func (a *assembly) tailFunnel() {
	for i := 0; i < tailRibsCount; i++ {
		a.tailRib(i)
		prev := a.ribs[len(a.ribs)-1]
		if i > 0 {
			prev = a.tailRibs[i-1]
		}
		a.skin(prev, a.tailRibs[i], &a.innerLinks, &a.tailFaces)
	}
}

func (a *assembly) tailRib(index int) {
	last := a.ribs[len(a.ribs)-1]
	t := float64(index) / tailRibsCount
	radius := tailRibRadius(t) * last.Radius
	flare := radius + t*tailRibFlare
	y := last.YPos - t*size*0.8
	ring := a.Ring(Segments, radius, y, ribUV(t))

	// Tail ribs modulate most at the bell and least at the tip.
	rib := &Rib{Ring: ring, Radius: radius, YParam: 1 - t, YPos: y}

	if index == tailRibsCount-1 {
		pairs := linksRadial(idxMid, ring, nil)
		spine := a.Link(radius*0.8, radius, pairs)
		a.innerLinks = append(a.innerLinks, pairs...)
		rib.Bands = append(rib.Bands, Band{Kind: BandSpine, Constraint: spine, Radius: radius, Reach: radius})
	}

	mainLen := 2 * math.Pi * flare / Segments
	outer := a.Link(mainLen*0.9, mainLen*1.5, linksLoop(ring, nil))
	innerLen := 2 * math.Pi * radius / 3
	inner := a.Link(innerLen*0.8, innerLen, tripods(ring))

	rib.Bands = append(rib.Bands,
		Band{Kind: BandOuter, Constraint: outer, Radius: flare},
		Band{Kind: BandInner, Constraint: inner, Radius: radius},
	)
	a.tailRibs = append(a.tailRibs, rib)
}

// ribFromTip counts ribs upward from the tip of the tail into the bell.
func (a *assembly) ribFromTip(i int) *Rib {
	if i < len(a.tailRibs) {
		return a.tailRibs[len(a.tailRibs)-1-i]
	}
	return a.ribs[len(a.ribs)-1-(i-len(a.tailRibs))]
}

func (a *assembly) mouthArms() {
	groups := []struct {
		scale        float64
		inner, outer int
		count        int
		offset       int
	}{
		{1.0, 0, 4, 3, 0},
		{0.8, 1, 8, 3, 3},
		{0.5, 7, 9, 6, 0},
	}
	for _, g := range groups {
		for i := 0; i < g.count; i++ {
			a.mouthArm(g.scale, g.inner, g.outer, i, g.count, g.offset)
		}
	}
}

func (a *assembly) mouthArm(vScale float64, r0, r1, index, total, offset int) {
	t := float64(index) / float64(total)
	ribIndex := (int(math.Round(Segments*t)) + offset) % Segments
	innerPin := a.ribFromTip(r0).Ring.Start + ribIndex
	outerPin := a.ribFromTip(r1).Ring.Start + ribIndex
	scale := a.Distance(innerPin, outerPin)

	segments := int(math.Round(vScale * tailArmSegments))
	innerSize := tailArmSegmentLen
	outerSize := innerSize * 2.4
	bottomPinMax := 20 + float64(tailArmSegments-segments)*innerSize
	baseX, baseZ := math.Cos(2*math.Pi*t), math.Sin(2*math.Pi*t)
	last := float64(segments - 1)

	innerChain := a.Chain(segments, func(i int) Vertex {
		return Vertex{
			Pos: mgl64.Vec3{0, posMid - float64(i)*innerSize, 0},
			UV:  mgl64.Vec2{float64(i) / last, 0},
		}
	})

	linkSizes := make([]float64, segments)
	outerChain := a.Chain(segments, func(i int) Vertex {
		u := float64(i) / last
		ls := scale *
			(math.Sin(math.Pi/2+10*u)*0.25 + 0.75) *
			(math.Sin(math.Pi/2+20*u)*0.25 + 0.75) *
			(math.Sin(math.Pi/2+26*u)*0.15 + 0.85) *
			math.Sin(math.Pi/2+math.Pi*0.45*u)
		linkSizes[i] = ls
		return Vertex{
			Pos: mgl64.Vec3{baseX * ls, posMid - float64(i)*innerSize, baseZ * ls},
			UV:  mgl64.Vec2{u, 1},
		}
	})

	innerPairs := linksLine(innerChain, []int{innerPin, innerChain.Start})
	outerPairs := linksLine(outerChain, []int{outerPin, outerChain.Start})

	var braces, rungs []int
	for i := 0; i < segments; i++ {
		in, out := innerChain.Start+i, outerChain.Start+i
		a.Link(linkSizes[i]*0.5, linkSizes[i], []int{in, out})
		if i > 10 {
			braces = append(braces, in-10, out)
		}
		if i > 1 {
			rungs = append(rungs, in-1, out)
			a.mouthFaces = facesQuadDoubleSide(in-1, out-1, out, in, a.mouthFaces)
		}
	}

	a.Link(innerSize*0.25, innerSize, innerPairs)
	a.Link(outerSize*0.25, outerSize, outerPairs)
	pin := []int{innerChain.End() - 1, PinTail}
	a.Link(0, bottomPinMax, pin)
	if len(braces) > 0 {
		a.Link(linkSizes[segments-1]*0.5, 1e8, braces)
	}

	a.SetWeight(Span{Start: innerChain.Start, Count: segments * 2}, tailArmWeight)

	a.links = append(a.links, innerPairs...)
	a.links = append(a.links, outerPairs...)
	a.tentLinks = append(a.tentLinks, rungs...)
	a.tentLinks = append(a.tentLinks, braces...)
	a.innerLinks = append(a.innerLinks, innerPairs...)
	a.innerLinks = append(a.innerLinks, outerPairs...)
	a.innerLinks = append(a.innerLinks, rungs...)
	a.innerLinks = append(a.innerLinks, braces...)
	a.innerLinks = append(a.innerLinks, pin...)
	a.arms = append(a.arms, Arm{Inner: innerChain, Outer: outerChain})
}

func (a *assembly) tentacleGroups() {
	for g := 0; g < tentacleGroupCount; g++ {
		a.tentacleGroup(g)
	}
}

func (a *assembly) tentacleGroup(g int) {
	rib := a.ribs[tentacleGroupStart+tentacleGroupOffset*g]
	count := int(math.Floor(
		tentacleSegments*(1-float64(g)/tentacleGroupCount)*0.25 + tentacleSegments*0.75,
	))

	rings := make([]Span, 0, count)
	for i := 0; i < count; i++ {
		radius := rib.Radius * (0.25*math.Sin(float64(i)*0.25) + 0.5)
		ring := a.Ring(Segments, radius, -float64(i)*tentacleSegmentLen+yOffset, zeroUV)
		// Lighter toward the free end for whip-like motion.
		a.SetWeight(ring, math.Sqrt(float64(i)/float64(count))*tentacleWeightFactor)

		if i == 0 {
			pairs := linksRings(rib.Ring, ring, nil)
			a.Link(tentacleSegmentLen*0.5, tentacleSegmentLen, pairs)
			a.tentLinks = append(a.tentLinks, pairs...)
		} else {
			pairs := linksRings(rings[i-1], ring, nil)
			a.Link(tentacleSegmentLen*0.5, tentacleSegmentLen, pairs)
			a.tentLinks = append(a.tentLinks, pairs...)
			a.innerLinks = append(a.innerLinks, pairs...)
		}
		rings = append(rings, ring)
	}

	d := tentacleSegments * tentacleSegmentLen
	a.Link(d*0.5, d, linksRadial(PinTentacle, rings[len(rings)-1], nil))
	a.tentacles = append(a.tentacles, rings)
}
