package game

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Star is a fixed background point whose brightness follows a noise curve.
type Star struct {
	X, Y  float64
	Size  float64
	Base  float64 // resting alpha
	Phase float64 // noise-space offset so stars twinkle out of step
}

// Starfield is the static backdrop. Twinkle is driven by 2D Perlin noise
// sampled along each star's own row, so it is smooth and deterministic.
type Starfield struct {
	Stars []Star
	noise *perlin.Perlin
	t     float64
}

func NewStarfield(seed uint64) *Starfield {
	return &Starfield{noise: perlin.NewPerlin(2, 2, 3, int64(seed))}
}

// Build scatters n stars over w×h, discarding the previous set.
func (sf *Starfield) Build(n int, w, h float64, r *Rand) {
	sf.Stars = sf.Stars[:0]
	for i := 0; i < n; i++ {
		sf.Stars = append(sf.Stars, Star{
			X:     r.RangeF(0, w),
			Y:     r.RangeF(0, h),
			Size:  r.RangeF(0.4, 1.4),
			Base:  r.RangeF(0.25, 0.8),
			Phase: r.RangeF(0, 1000),
		})
	}
}

// Update advances the twinkle clock; dt is in seconds.
func (sf *Starfield) Update(dt float64) {
	sf.t += dt
}

// Twinkle returns the current alpha of star i in [0, 1].
func (sf *Starfield) Twinkle(i int) float64 {
	s := &sf.Stars[i]
	n := sf.noise.Noise2D(s.Phase, sf.t*0.6)
	return clampF(s.Base*(0.65+0.6*n), 0, 1)
}

func (sf *Starfield) Draw(cv *Canvas) {
	for i := range sf.Stars {
		s := &sf.Stars[i]
		cv.Sprite(ShapeDot, s.X, s.Y, s.Size, Palette.Star, sf.Twinkle(i), 0)
	}
}

// drawLinks connects every pair of particles closer than maxDist with a line
// whose alpha falls off linearly with distance.
func drawLinks(cv *Canvas, grid *spatialGrid, ps []Particle, maxDist float64) {
	if maxDist <= 0 || len(ps) < 2 {
		return
	}
	max2 := maxDist * maxDist
	grid.Build(ps, cv.W, cv.H, maxDist)
	grid.Pairs(ps, func(i, j int) {
		a, b := &ps[i], &ps[j]
		d2 := dist2(a.X, a.Y, b.X, b.Y)
		if d2 >= max2 {
			return
		}
		alpha := 1 - math.Sqrt(d2)/maxDist
		cv.Line(a.X, a.Y, b.X, b.Y, Palette.Line, alpha*0.5)
	})
}
