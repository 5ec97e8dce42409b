package game

import (
	"math"
	"testing"
)

func stillParticle(x, y float64) Particle {
	p := Particle{X: x, Y: y, Size: 2, Life: 500}
	p.BaseCol = RGB{R: 10, G: 20, B: 30}
	p.Col = p.BaseCol
	return p
}

func openField() Field {
	return Field{W: 800, H: 600, MouseRadius: 100, TimeScale: 1}
}

func TestParticleStaysInBounds(t *testing.T) {
	r := NewRand(7)
	f := openField()
	f.Holes = []*BlackHole{NewBlackHole(400, 300, false)}
	f.LevelMul = 0.5

	ps := make([]Particle, 200)
	for i := range ps {
		ps[i].Reset(f.W, f.H, r)
	}
	for tick := 0; tick < 600; tick++ {
		f.Pointer = Pointer{X: r.RangeF(-50, 850), Y: r.RangeF(-50, 650), Known: tick%3 != 0}
		f.Mode = Mode(tick / 100 % 2)
		for i := range ps {
			ps[i].Update(&f, r)
			p := &ps[i]
			if p.X < 0 || p.X > f.W || p.Y < 0 || p.Y > f.H {
				t.Fatalf("tick %d particle %d out of bounds at (%f, %f)", tick, i, p.X, p.Y)
			}
		}
	}
}

func TestParticleLifeDecreases(t *testing.T) {
	r := NewRand(1)
	f := openField()
	p := stillParticle(100, 100)
	p.Update(&f, r)
	if p.Life != 499 {
		t.Fatalf("life = %d, want 499", p.Life)
	}
}

func TestParticleRespawnsWhenLifeRunsOut(t *testing.T) {
	r := NewRand(1)
	f := openField()
	p := stillParticle(100, 100)
	p.Life = 1
	p.Trail.Push(1, 1)
	p.Update(&f, r)
	if p.Life < ParticleLifeMin || p.Life > ParticleLifeMax {
		t.Fatalf("life after reset = %d, want in [%d, %d]", p.Life, ParticleLifeMin, ParticleLifeMax)
	}
	if p.Trail.Len() != 0 {
		t.Fatalf("trail len after reset = %d, want 0", p.Trail.Len())
	}
}

func TestParticleWallBounceAcrossTicks(t *testing.T) {
	r := NewRand(1)
	f := openField()
	p := stillParticle(10, 300)
	p.SpeedX = -5

	// x lands on 0 during the second tick; the reflection happens on the next.
	for i := 0; i < 5 && p.SpeedX < 0; i++ {
		p.Update(&f, r)
	}
	if p.X != 0 {
		t.Fatalf("x = %f, want 0", p.X)
	}
	if math.Abs(p.SpeedX-4) > 1e-9 {
		t.Fatalf("speedX = %f, want 4", p.SpeedX)
	}
	if p.SpeedY != 0 || p.Y != 300 {
		t.Fatalf("y axis disturbed: y=%f vy=%f", p.Y, p.SpeedY)
	}
}

func TestParticleRepelMovesAway(t *testing.T) {
	r := NewRand(1)
	f := openField()
	f.Mode = ModeRepel
	f.Pointer = Pointer{X: 400, Y: 300, Known: true}
	p := stillParticle(450, 300)

	out := p.Update(&f, r)
	if p.X <= 450 {
		t.Fatalf("x = %f, want > 450", p.X)
	}
	if p.Y != 300 {
		t.Fatalf("y = %f, want 300", p.Y)
	}
	if !p.Highlight || p.Col != Palette.Highlight {
		t.Fatalf("particle in radius not highlighted")
	}
	if out.Power != 0 {
		t.Fatalf("repel power = %f, want 0", out.Power)
	}
}

func TestParticleAttractGainsPower(t *testing.T) {
	r := NewRand(1)
	f := openField()
	f.Mode = ModeAttract
	f.Pointer = Pointer{X: 400, Y: 300, Known: true}
	p := stillParticle(450, 300)

	out := p.Update(&f, r)
	if p.X >= 450 {
		t.Fatalf("x = %f, want < 450", p.X)
	}
	if out.Power != PowerPerParticle {
		t.Fatalf("power = %f, want %f", out.Power, PowerPerParticle)
	}
}

func TestParticleUnknownPointerClearsHighlight(t *testing.T) {
	r := NewRand(1)
	f := openField()
	f.Pointer = Pointer{X: 450, Y: 300, Known: false}
	p := stillParticle(450, 300)
	p.Highlight = true
	p.Col = Palette.Highlight

	p.Update(&f, r)
	if p.Highlight || p.Col != p.BaseCol {
		t.Fatalf("highlight kept with unknown pointer")
	}
	if p.X != 450 || p.Y != 300 {
		t.Fatalf("moved to (%f, %f) with unknown pointer", p.X, p.Y)
	}
}

func TestParticleSwallowedByHole(t *testing.T) {
	r := NewRand(1)
	f := openField()
	f.Holes = []*BlackHole{NewBlackHole(100, 100, false)}
	p := stillParticle(101, 101)

	if out := p.Update(&f, r); !out.Swallowed {
		t.Fatalf("particle at hole core not swallowed")
	}
}

func TestParticlePulledTowardHole(t *testing.T) {
	r := NewRand(1)
	f := openField()
	f.Holes = []*BlackHole{NewBlackHole(100, 100, false)}
	p := stillParticle(200, 100)

	p.Update(&f, r)
	if p.X >= 200 {
		t.Fatalf("x = %f, want < 200", p.X)
	}
}

func TestTemporaryHoleRecolors(t *testing.T) {
	r := NewRand(1)
	f := openField()
	f.Holes = []*BlackHole{NewBlackHole(100, 100, true)}
	p := stillParticle(150, 100)

	p.Update(&f, r)
	if p.Col == p.BaseCol {
		t.Fatalf("colour unchanged near temporary hole")
	}
}

func TestTrailKeepsNewest(t *testing.T) {
	var tr Trail
	for i := 0; i < 10; i++ {
		tr.Push(float64(i), 0)
	}
	if tr.Len() != TrailLength {
		t.Fatalf("len = %d, want %d", tr.Len(), TrailLength)
	}
	if got := tr.At(0).X; got != 2 {
		t.Fatalf("oldest = %f, want 2", got)
	}
	if got := tr.At(TrailLength - 1).X; got != 9 {
		t.Fatalf("newest = %f, want 9", got)
	}
	tr.Clear()
	if tr.Len() != 0 {
		t.Fatalf("len after clear = %d", tr.Len())
	}
}

func TestParticleDrawsTrailThenBody(t *testing.T) {
	var cv Canvas
	cv.Begin(800, 600)
	p := stillParticle(10, 10)
	p.Trail.Push(8, 8)
	p.Trail.Push(9, 9)
	p.Draw(&cv)
	if got := cv.Count(ShapeDot); got != 3 {
		t.Fatalf("dots = %d, want 3", got)
	}
	p.DrawHalo(&cv)
	if got := cv.Count(ShapeGlow); got != 0 {
		t.Fatalf("halo drawn for unhighlighted particle")
	}
}
