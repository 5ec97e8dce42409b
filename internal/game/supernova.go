package game

import "math"

type ShardKind uint8

const (
	ShardShockwave ShardKind = iota
	ShardCore
	ShardDebris
)

// Supernova tuning.
const (
	NovaDuration      = 120 // frames
	NovaSeedRadius    = 5.0
	NovaMaxRadiusFrac = 0.4 // of min(W, H)
)

// shardTuning is the spawn and decay table for one shard kind.
type shardTuning struct {
	count              int
	speedMin, speedMax float64
	sizeMin, sizeMax   float64
	decayMin, decayMax float64 // life lost per tick
	shrink             float64 // size multiplier per tick
	spinMax            float64
}

var shardTable = [...]shardTuning{
	ShardShockwave: {count: 120, speedMin: 4, speedMax: 10, sizeMin: 1, sizeMax: 3, decayMin: 0.02, decayMax: 0.035, shrink: 0.97},
	ShardCore:      {count: 40, speedMin: 0.5, speedMax: 2.5, sizeMin: 4, sizeMax: 9, decayMin: 0.008, decayMax: 0.014, shrink: 0.99},
	ShardDebris:    {count: 30, speedMin: 1.5, speedMax: 5, sizeMin: 3, sizeMax: 7, decayMin: 0.01, decayMax: 0.02, shrink: 0.985, spinMax: 0.2},
}

// Shard is one sub-particle of a supernova. It travels in a straight line.
type Shard struct {
	X, Y     float64
	Speed    float64
	Angle    float64
	Size     float64
	Life     float64 // 1 at spawn, pruned at <= 0
	Decay    float64
	Rotation float64
	Spin     float64
	Col      RGB
	Kind     ShardKind
}

// Supernova is a single-shot, re-triggerable burst.
type Supernova struct {
	Active    bool
	X, Y      float64
	Radius    float64
	MaxRadius float64
	Frame     int
	Duration  int

	Shockwave []Shard
	Core      []Shard
	Debris    []Shard

	seed uint64
	seq  uint64
}

func NewSupernova(seed uint64) *Supernova {
	if seed == 0 {
		seed = 1
	}
	return &Supernova{Duration: NovaDuration, seed: seed}
}

// Explode (re)starts the effect at (x, y) on a w×h surface. Any shards of a
// previous burst are discarded.
func (s *Supernova) Explode(x, y, w, h float64) {
	s.seq++
	r := NewRand(hash2D(s.seed^s.seq*0xA5A5A5A5, int(x), int(y)))

	s.Active = true
	s.X, s.Y = x, y
	s.Frame = 0
	s.Radius = NovaSeedRadius
	s.MaxRadius = math.Min(w, h) * NovaMaxRadiusFrac
	if s.MaxRadius < NovaSeedRadius {
		s.MaxRadius = NovaSeedRadius
	}

	s.Shockwave = s.spawn(s.Shockwave[:0], ShardShockwave, r)
	s.Core = s.spawn(s.Core[:0], ShardCore, r)
	s.Debris = s.spawn(s.Debris[:0], ShardDebris, r)
}

func (s *Supernova) spawn(dst []Shard, kind ShardKind, r *Rand) []Shard {
	t := &shardTable[kind]
	for i := 0; i < t.count; i++ {
		sh := Shard{
			X:     s.X,
			Y:     s.Y,
			Speed: r.RangeF(t.speedMin, t.speedMax),
			Angle: r.Angle(),
			Size:  r.RangeF(t.sizeMin, t.sizeMax),
			Life:  1,
			Decay: r.RangeF(t.decayMin, t.decayMax),
			Kind:  kind,
		}
		switch kind {
		case ShardShockwave:
			sh.Col = Palette.NovaHot.Add(0, r.Range(-30, 0), r.Range(-60, 0))
		case ShardCore:
			sh.Col = lerpRGB(Palette.NovaCore, Palette.NovaHot, r.Float64()*0.5)
		case ShardDebris:
			sh.Col = lerpRGB(Palette.NovaDebris, Palette.NovaDebrisHot, r.Float64())
			sh.Rotation = r.Angle()
			sh.Spin = r.RangeF(-t.spinMax, t.spinMax)
		}
		dst = append(dst, sh)
	}
	return dst
}

// Update advances one frame. It is a no-op while inactive.
func (s *Supernova) Update() {
	if !s.Active {
		return
	}
	s.Frame++
	t := float64(s.Frame) / float64(s.Duration)
	s.Radius = NovaSeedRadius + (s.MaxRadius-NovaSeedRadius)*EaseOutCubic(t)

	s.Shockwave = updateShards(s.Shockwave)
	s.Core = updateShards(s.Core)
	s.Debris = updateShards(s.Debris)

	if s.Frame >= s.Duration && s.ShardCount() == 0 {
		s.Active = false
	}
}

// updateShards moves, decays and prunes in place (swap-remove).
func updateShards(shards []Shard) []Shard {
	for i := 0; i < len(shards); {
		sh := &shards[i]
		t := &shardTable[sh.Kind]
		sh.X += math.Cos(sh.Angle) * sh.Speed
		sh.Y += math.Sin(sh.Angle) * sh.Speed
		sh.Size *= t.shrink
		sh.Life -= sh.Decay
		switch sh.Kind {
		case ShardDebris:
			sh.Rotation += sh.Spin
		case ShardShockwave:
			sh.Speed *= 0.985
		}
		if sh.Life <= 0 {
			shards[i] = shards[len(shards)-1]
			shards = shards[:len(shards)-1]
			continue
		}
		i++
	}
	return shards
}

// ShardCount is the number of live shards across all populations.
func (s *Supernova) ShardCount() int {
	return len(s.Shockwave) + len(s.Core) + len(s.Debris)
}

// Progress is Frame/Duration clamped to [0,1].
func (s *Supernova) Progress() float64 {
	if s.Duration <= 0 {
		return 1
	}
	return clampF(float64(s.Frame)/float64(s.Duration), 0, 1)
}

// Draw renders the shockwave disc and every shard additively, restoring the
// caller's blend mode afterwards.
func (s *Supernova) Draw(cv *Canvas) {
	if !s.Active {
		return
	}
	prev := cv.BlendMode()
	cv.SetBlend(BlendLighter)

	fade := 1 - s.Progress()
	cv.Sprite(ShapeGlow, s.X, s.Y, s.Radius, Palette.NovaRing, 0.55*fade, 0)
	cv.Sprite(ShapeGlow, s.X, s.Y, s.Radius*0.35, Palette.NovaHot, 0.8*fade, 0)

	for i := range s.Shockwave {
		sh := &s.Shockwave[i]
		cv.Sprite(ShapeGlow, sh.X, sh.Y, sh.Size*2, sh.Col, sh.Life, 0)
	}
	for i := range s.Core {
		sh := &s.Core[i]
		cv.Sprite(ShapeGlow, sh.X, sh.Y, sh.Size*2, sh.Col, sh.Life, 0)
	}
	for i := range s.Debris {
		sh := &s.Debris[i]
		cv.Sprite(ShapeSquare, sh.X, sh.Y, sh.Size, sh.Col, sh.Life, sh.Rotation)
	}

	cv.SetBlend(prev)
}
