// Package water simulates the ripple height field the aquarium's surface and
// caustics read from.
package water

import (
	"math"

	"gonum.org/v1/gonum/blas/blas32"
)

// Channel offsets within a cell.
const (
	chHeight = iota
	chVelocity
	chGradX
	chGradY
	channels
)

// Params tunes the wave propagation.
type Params struct {
	Resolution  int
	Propagation float32 // pull toward the neighbor average
	Damping     float32 // velocity kept per step
	RestHeight  float32
	Spring      float32 // pull toward RestHeight
	DropGain    float32
	Gradient    float32 // Sobel gradient amplitude
}

// DefaultParams returns the tuning of the aquarium's water.
func DefaultParams() Params {
	return Params{
		Resolution:  128,
		Propagation: 2.0,
		Damping:     0.985,
		RestHeight:  0.4,
		Spring:      0.006,
		DropGain:    1.5,
		Gradient:    1.5,
	}
}

// HeightField is a ping-pong double buffer of RGBA cells: R height,
// G vertical velocity, B/A horizontal/vertical gradient. Every pass reads
// the front buffer, writes the back buffer and swaps, so readers never
// observe a partially written frame.
type HeightField struct {
	params Params
	n      int
	buf    [2][]float32
	front  int
	snap   []float32
}

// New allocates a still height field at rest height.
func New(p Params) *HeightField {
	if p.Resolution < 2 {
		p.Resolution = 2
	}
	size := p.Resolution * p.Resolution * channels
	h := &HeightField{
		params: p,
		n:      p.Resolution,
		buf:    [2][]float32{make([]float32, size), make([]float32, size)},
		snap:   make([]float32, size),
	}
	for c := chHeight; c < size; c += channels {
		h.buf[0][c] = p.RestHeight
	}
	return h
}

// Resolution returns the number of cells along each axis.
func (h *HeightField) Resolution() int {
	return h.n
}

func vec(data []float32) blas32.Vector {
	return blas32.Vector{N: len(data), Inc: 1, Data: data}
}

// channel views one channel of every cell as a strided vector.
func channel(data []float32, ch int) blas32.Vector {
	return blas32.Vector{N: len(data) / channels, Inc: channels, Data: data[ch:]}
}

// begin copies the front buffer into the back buffer and returns both.
func (h *HeightField) begin() (src, dst []float32) {
	src, dst = h.buf[h.front], h.buf[1-h.front]
	blas32.Copy(vec(src), vec(dst))
	return src, dst
}

func (h *HeightField) swap() {
	h.front = 1 - h.front
}

// at returns the value of channel ch at cell (i, j), clamped to the edge.
func (h *HeightField) at(data []float32, i, j, ch int) float32 {
	i = min(max(i, 0), h.n-1)
	j = min(max(j, 0), h.n-1)
	return data[(j*h.n+i)*channels+ch]
}

// AddDrop raises a smooth bump centered at (x, y) in simulation space,
// where both axes span [-1, 1]. Radius is in texture units.
func (h *HeightField) AddDrop(x, y, radius, strength float64) {
	_, dst := h.begin()
	cu, cv := x*0.5+0.5, y*0.5+0.5
	inv := 1 / float64(h.n)
	for j := 0; j < h.n; j++ {
		v := (float64(j) + 0.5) * inv
		for i := 0; i < h.n; i++ {
			u := (float64(i) + 0.5) * inv
			d := math.Max(0, 1-math.Hypot(cu-u, cv-v)/radius)
			if d == 0 {
				continue
			}
			d = 0.5 - math.Cos(d*math.Pi)*0.5
			dst[(j*h.n+i)*channels+chHeight] += float32(d * strength * float64(h.params.DropGain))
		}
	}
	h.swap()
}

// Step advances the waves by one tick and refreshes the gradients.
func (h *HeightField) Step() {
	h.propagate()
	h.gradients()
}

func (h *HeightField) propagate() {
	p := h.params
	src, dst := h.begin()
	for j := 0; j < h.n; j++ {
		for i := 0; i < h.n; i++ {
			avg := (h.at(src, i-1, j, chHeight) +
				h.at(src, i+1, j, chHeight) +
				h.at(src, i, j-1, chHeight) +
				h.at(src, i, j+1, chHeight)) * 0.25
			c := (j*h.n + i) * channels
			dst[c+chVelocity] += (avg - src[c+chHeight]) * p.Propagation
		}
	}
	blas32.Scal(p.Damping, channel(dst, chVelocity))
	for c := 0; c < len(dst); c += channels {
		dst[c+chVelocity] += (p.RestHeight - dst[c+chHeight]) * p.Spring
		dst[c+chHeight] += dst[c+chVelocity]
	}
	h.swap()
}

func (h *HeightField) gradients() {
	g := h.params.Gradient
	src, dst := h.begin()
	for j := 0; j < h.n; j++ {
		for i := 0; i < h.n; i++ {
			h0 := h.at(src, i-1, j-1, chHeight)
			h1 := h.at(src, i, j-1, chHeight)
			h2 := h.at(src, i+1, j-1, chHeight)
			h3 := h.at(src, i-1, j, chHeight)
			h5 := h.at(src, i+1, j, chHeight)
			h6 := h.at(src, i-1, j+1, chHeight)
			h7 := h.at(src, i, j+1, chHeight)
			h8 := h.at(src, i+1, j+1, chHeight)
			c := (j*h.n + i) * channels
			dst[c+chGradX] = (h2 + 2*h5 + h8 - (h0 + 2*h3 + h6)) * g
			dst[c+chGradY] = (h6 + 2*h7 + h8 - (h0 + 2*h1 + h2)) * g
		}
	}
	h.swap()
}

// Texture returns a snapshot of the current front buffer. The snapshot is
// reused and stays valid until the next call to Texture.
func (h *HeightField) Texture() Snapshot {
	blas32.Copy(vec(h.buf[h.front]), vec(h.snap))
	return Snapshot{n: h.n, data: h.snap}
}

// MaxAmplitude returns the largest deviation from the rest height.
func (h *HeightField) MaxAmplitude() float64 {
	var worst float32
	rest := h.params.RestHeight
	front := h.buf[h.front]
	for c := chHeight; c < len(front); c += channels {
		d := front[c] - rest
		if d < 0 {
			d = -d
		}
		worst = max(worst, d)
	}
	return float64(worst)
}
