package game

import "math"

// Pointer is the last known pointer position. Known is false until the
// pointer has entered the surface, and again after it leaves.
type Pointer struct {
	X, Y  float64
	Known bool
}

// Field is everything outside a particle that moves it during one tick.
type Field struct {
	W, H        float64
	Pointer     Pointer
	Mode        Mode
	MouseRadius float64
	Holes       []*BlackHole
	LevelMul    float64
	TimeScale   float64
}

// Outcome reports per-particle side effects the caller folds into shared state.
type Outcome struct {
	Power     float64
	Swallowed bool
}

type Particle struct {
	X, Y           float64
	SpeedX, SpeedY float64
	Size           float64

	BaseCol   RGB
	Col       RGB
	Highlight bool

	Trail Trail
	Life  int // ticks left before respawn
}

// Reset respawns the particle somewhere inside w×h with fresh motion,
// colour and lifespan.
func (p *Particle) Reset(w, h float64, r *Rand) {
	p.X = r.RangeF(0, w)
	p.Y = r.RangeF(0, h)
	p.SpeedX = r.RangeF(-ParticleSpeedMax, ParticleSpeedMax)
	p.SpeedY = r.RangeF(-ParticleSpeedMax, ParticleSpeedMax)
	p.Size = r.RangeF(ParticleSizeMin, ParticleSizeMax)
	p.BaseCol = RandomHue(r)
	p.Col = p.BaseCol
	p.Highlight = false
	p.Trail.Clear()
	p.Life = r.Range(ParticleLifeMin, ParticleLifeMax)
}

// Update advances the particle one tick. Motion is per tick, not per second;
// frame-rate compensation lives in f.TimeScale.
func (p *Particle) Update(f *Field, r *Rand) Outcome {
	var out Outcome

	p.Trail.Push(p.X, p.Y)

	k := (1 + f.LevelMul) * f.TimeScale
	p.X += p.SpeedX * k
	p.Y += p.SpeedY * k

	p.Life--
	if p.Life <= 0 {
		p.Reset(f.W, f.H, r)
	}

	p.bounce(f.W, f.H)
	out.Power = p.applyPointer(f)
	out.Swallowed = p.applyHoles(f)
	p.clamp(f.W, f.H)
	return out
}

// bounce reflects each axis independently off the walls, losing energy.
func (p *Particle) bounce(w, h float64) {
	if p.X < 0 || p.X > w {
		p.SpeedX = -p.SpeedX * WallDamping
		p.X = clampF(p.X, 0, w)
	}
	if p.Y < 0 || p.Y > h {
		p.SpeedY = -p.SpeedY * WallDamping
		p.Y = clampF(p.Y, 0, h)
	}
}

func (p *Particle) clamp(w, h float64) {
	p.X = clampF(p.X, 0, w)
	p.Y = clampF(p.Y, 0, h)
}

// applyPointer pushes the particle toward or away from the pointer and
// returns the power it generated.
func (p *Particle) applyPointer(f *Field) float64 {
	if !f.Pointer.Known {
		p.unhighlight()
		return 0
	}
	dx := f.Pointer.X - p.X
	dy := f.Pointer.Y - p.Y
	d2 := dx*dx + dy*dy
	if d2 >= f.MouseRadius*f.MouseRadius {
		p.unhighlight()
		return 0
	}

	d := math.Sqrt(d2)
	force := f.MouseRadius / (d + 1)
	if d > 0 {
		step := force * MouseForceScale / d
		if f.Mode == ModeAttract {
			p.X += dx * step
			p.Y += dy * step
		} else {
			p.X -= dx * step
			p.Y -= dy * step
		}
	}
	p.Highlight = true
	p.Col = Palette.Highlight
	if f.Mode == ModeAttract {
		return PowerPerParticle
	}
	return 0
}

func (p *Particle) unhighlight() {
	p.Highlight = false
	p.Col = p.BaseCol
}

// applyHoles pulls toward every hole in range and reports whether the
// particle fell inside a hole's core.
func (p *Particle) applyHoles(f *Field) bool {
	swallowed := false
	for _, h := range f.Holes {
		dx := h.X - p.X
		dy := h.Y - p.Y
		d2 := dx*dx + dy*dy
		pr := h.PullRadius()
		if d2 > pr*pr {
			continue
		}
		if d2 <= HoleMinDist2 {
			swallowed = true
			continue
		}
		d := math.Sqrt(d2)
		force := HolePullStrength * h.PulseSize() / d
		p.X += dx / d * force
		p.Y += dy / d * force
		if h.Temporary {
			p.Col = PositionHue(p.X, p.Y, f.W, f.H)
		}
	}
	return swallowed
}

// Draw renders the trail oldest-first, then the particle itself.
func (p *Particle) Draw(cv *Canvas) {
	n := p.Trail.Len()
	for i := 0; i < n; i++ {
		pt := p.Trail.At(i)
		a := float64(i+1) / float64(n+1) * 0.5
		cv.Sprite(ShapeDot, pt.X, pt.Y, p.Size*0.6, p.Col, a, 0)
	}
	cv.Sprite(ShapeDot, p.X, p.Y, p.Size, p.Col, 1, 0)
}

// DrawHalo adds the highlight glow. Callers batch it in an additive pass.
func (p *Particle) DrawHalo(cv *Canvas) {
	if !p.Highlight {
		return
	}
	cv.Sprite(ShapeGlow, p.X, p.Y, p.Size*4, p.Col, 0.6, 0)
}
