package game

// Blend selects how a pass is composited onto what is already drawn.
type Blend uint8

const (
	BlendNormal  Blend = iota // source-over alpha
	BlendLighter              // additive light accumulation
)

// Shape selects how a pass's records are rasterized.
type Shape uint8

const (
	ShapeDot    Shape = iota // soft-edged filled circle
	ShapeGlow                // radial light falloff
	ShapeSquare              // rotated filled square
	ShapeDisk                // rotated flat ellipse (accretion disk)
	ShapeHole                // dark core with a coloured rim
	ShapeLine                // straight segment
	ShapeFade                // full-surface translucent overlay
)

// Record layouts.
//
//	sprite: [x, y, size, r, g, b, a, rotation]  size is the diameter in pixels
//	line:   [x1, y1, x2, y2, r, g, b, a]
//	fade:   [r, g, b, a]
const (
	SpriteStride = 8
	LineStride   = 8
	FadeStride   = 4
)

// Pass is a run of records sharing one shape and blend mode.
type Pass struct {
	Shape Shape
	Blend Blend
	Buf   []float32
}

// Count returns the number of records in the pass.
func (p *Pass) Count() int {
	switch p.Shape {
	case ShapeLine:
		return len(p.Buf) / LineStride
	case ShapeFade:
		return len(p.Buf) / FadeStride
	}
	return len(p.Buf) / SpriteStride
}

// Canvas records draw calls as ordered, batched passes. Renderers replay the
// passes in order; the simulation never reads anything back.
type Canvas struct {
	W, H float64

	// Screen-shake offset applied to the whole frame by the renderer.
	OffsetX, OffsetY float64

	passes []Pass
	n      int
	blend  Blend
}

// Begin starts a new frame, keeping pass buffers for reuse.
func (c *Canvas) Begin(w, h float64) {
	c.W, c.H = w, h
	c.OffsetX, c.OffsetY = 0, 0
	for i := 0; i < c.n; i++ {
		c.passes[i].Buf = c.passes[i].Buf[:0]
	}
	c.n = 0
	c.blend = BlendNormal
}

// Passes returns the passes recorded since Begin.
func (c *Canvas) Passes() []Pass {
	return c.passes[:c.n]
}

// SetBlend changes the blend mode for subsequent draw calls.
func (c *Canvas) SetBlend(b Blend) {
	c.blend = b
}

// BlendMode reports the current blend mode.
func (c *Canvas) BlendMode() Blend {
	return c.blend
}

// pass returns the open pass when it matches, otherwise opens a new one.
func (c *Canvas) pass(s Shape) *Pass {
	if c.n > 0 {
		p := &c.passes[c.n-1]
		if p.Shape == s && p.Blend == c.blend {
			return p
		}
	}
	if c.n < len(c.passes) {
		p := &c.passes[c.n]
		p.Shape = s
		p.Blend = c.blend
		p.Buf = p.Buf[:0]
		c.n++
		return p
	}
	c.passes = append(c.passes, Pass{Shape: s, Blend: c.blend, Buf: make([]float32, 0, 256)})
	c.n++
	return &c.passes[c.n-1]
}

// Fade covers the surface with col at alpha a (the trail-fading overlay).
func (c *Canvas) Fade(col RGB, a float64) {
	if a <= 0 {
		return
	}
	p := c.pass(ShapeFade)
	r, g, b := col.Floats()
	p.Buf = append(p.Buf, r, g, b, float32(clampF(a, 0, 1)))
}

// Sprite queues one shape centred at (x, y) with the given radius.
func (c *Canvas) Sprite(s Shape, x, y, radius float64, col RGB, a, rot float64) {
	if a <= 0 || radius <= 0 {
		return
	}
	p := c.pass(s)
	r, g, b := col.Floats()
	p.Buf = append(p.Buf,
		float32(x), float32(y), float32(radius*2),
		r, g, b, float32(clampF(a, 0, 1)), float32(rot),
	)
}

// Line queues a segment.
func (c *Canvas) Line(x1, y1, x2, y2 float64, col RGB, a float64) {
	if a <= 0 {
		return
	}
	p := c.pass(ShapeLine)
	r, g, b := col.Floats()
	p.Buf = append(p.Buf,
		float32(x1), float32(y1), float32(x2), float32(y2),
		r, g, b, float32(clampF(a, 0, 1)),
	)
}

// Count returns how many records of shape s were queued this frame.
func (c *Canvas) Count(s Shape) int {
	n := 0
	for i := 0; i < c.n; i++ {
		if c.passes[i].Shape == s {
			n += c.passes[i].Count()
		}
	}
	return n
}
