package jellyfish

// Index helpers shared by the body parts. Each appends to buf and returns it.

// linksLoop links consecutive particles of a span and closes the loop.
func linksLoop(s Span, buf []int) []int {
	for i := 0; i < s.Count-1; i++ {
		buf = append(buf, s.Start+i, s.Start+i+1)
	}
	return append(buf, s.Start, s.Start+s.Count-1)
}

// linksLine links consecutive particles of a span without closing it.
func linksLine(s Span, buf []int) []int {
	for i := 0; i < s.Count-1; i++ {
		buf = append(buf, s.Start+i, s.Start+i+1)
	}
	return buf
}

// linksRings links particle i of one ring to particle i of the next.
func linksRings(r0, r1 Span, buf []int) []int {
	for i := 0; i < r0.Count; i++ {
		buf = append(buf, r0.Start+i, r1.Start+i)
	}
	return buf
}

// linksRadial links a center particle to every particle of a ring.
func linksRadial(center int, s Span, buf []int) []int {
	for i := 0; i < s.Count; i++ {
		buf = append(buf, center, s.Start+i)
	}
	return buf
}

// linksTripod links every third of a ring into a triangle, starting at
// offset, which stiffens the ring against radial collapse.
func linksTripod(offset int, s Span, buf []int) []int {
	step := s.Count / 3
	for i := 0; i < 3; i++ {
		buf = append(buf,
			s.Start+(offset+step*i)%s.Count,
			s.Start+(offset+step*(i+1))%s.Count,
		)
	}
	return buf
}

func facesRadial(center int, s Span, buf []uint32) []uint32 {
	c := uint32(center)
	for i := 0; i < s.Count-1; i++ {
		buf = append(buf, c, uint32(s.Start+i+1), uint32(s.Start+i))
	}
	return append(buf, c, uint32(s.Start), uint32(s.Start+s.Count-1))
}

// facesQuadDoubleSide emits both windings of quad abcd.
func facesQuadDoubleSide(a, b, c, d int, buf []uint32) []uint32 {
	ua, ub, uc, ud := uint32(a), uint32(b), uint32(c), uint32(d)
	return append(buf, ua, ub, uc, uc, ud, ua, ud, uc, ub, ub, ua, ud)
}

// facesRings skins two rings of equal size with quads.
func facesRings(r0, r1 Span, buf []uint32) []uint32 {
	n := r0.Count
	for i := 0; i < n-1; i++ {
		a := uint32(r0.Start + i)
		b := uint32(r0.Start + i + 1)
		c := uint32(r1.Start + i + 1)
		d := uint32(r1.Start + i)
		buf = append(buf, a, b, c, c, d, a)
	}
	a := uint32(r0.Start + n - 1)
	b := uint32(r0.Start)
	c := uint32(r1.Start)
	d := uint32(r1.Start + n - 1)
	return append(buf, a, b, c, c, d, a)
}

func toUint32(idx []int) []uint32 {
	out := make([]uint32, len(idx))
	for i, v := range idx {
		out[i] = uint32(v)
	}
	return out
}
