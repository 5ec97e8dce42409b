package game

import "fmt"

// Sim owns every piece of simulation state. Frontends drive it from a single
// goroutine: input setters, then Tick, then Draw.
type Sim struct {
	cfg  Config
	W, H float64

	Particles []Particle
	Holes     []*BlackHole
	Nova      *Supernova
	Stars     *Starfield
	Prog      *Progression
	Bus       *EventBus

	Power  Meter
	Health Meter

	pointer Pointer
	core    *BlackHole // the permanent hole, always Holes[0]
	shake   Shake
	links   spatialGrid
	tasks   taskQueue
	rng     *Rand
	fx      *Rand

	doubleHole bool
	timeWarp   bool
}

// New builds a simulation on a w×h surface.
func New(cfg Config, w, h float64) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: surface %gx%g", ErrInvalidConfig, w, h)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 0x5EED0F5EED
	}

	s := &Sim{
		cfg:    cfg,
		W:      w,
		H:      h,
		Nova:   NewSupernova(splitmix64(seed ^ 0xA0BA)),
		Stars:  NewStarfield(splitmix64(seed ^ 0x57A2)),
		Bus:    NewEventBus(),
		Power:  NewMeter(cfg.Power, PowerMax),
		Health: NewMeter(cfg.Health, HealthMax),
		rng:    NewRand(splitmix64(seed)),
		fx:     NewRand(splitmix64(seed ^ 0xF00D)),
	}
	s.Prog = NewProgression(s.Bus)
	s.core = NewBlackHole(w/2, h/2, false)
	s.Holes = []*BlackHole{s.core}
	s.Stars.Build(cfg.StarCount, w, h, s.rng)
	s.fill(cfg.ParticleCount)

	s.Bus.Subscribe(EventSupernova, s.onSupernova)
	return s, nil
}

func (s *Sim) onSupernova(e Event) {
	x, y := e.X, e.Y
	if e.Data == NovaAtCenter {
		x, y = s.W/2, s.H/2
	}
	s.Nova.Explode(x, y, s.W, s.H)
	s.shake.Add(6, 0.45)
}

// fill grows or shrinks the particle pool to n.
func (s *Sim) fill(n int) {
	if n <= len(s.Particles) {
		s.Particles = s.Particles[:n]
		return
	}
	for len(s.Particles) < n {
		var p Particle
		p.Reset(s.W, s.H, s.rng)
		s.Particles = append(s.Particles, p)
	}
}

func (s *Sim) Config() Config {
	c := s.cfg
	c.Power = s.Power.Value
	c.Health = s.Health.Value
	return c
}

// Resize adapts to a new surface size. Zero or negative sizes (a minimised
// window) are ignored.
func (s *Sim) Resize(w, h float64) {
	if w <= 0 || h <= 0 || (w == s.W && h == s.H) {
		return
	}
	s.W, s.H = w, h
	s.core.X, s.core.Y = w/2, h/2
	for _, hole := range s.Holes {
		hole.X = clampF(hole.X, 0, w)
		hole.Y = clampF(hole.Y, 0, h)
	}
	s.Stars.Build(s.cfg.StarCount, w, h, s.rng)
	for i := range s.Particles {
		s.Particles[i].clamp(w, h)
	}
}

func (s *Sim) SetPointer(x, y float64) {
	s.pointer = Pointer{X: x, Y: y, Known: true}
}

func (s *Sim) ClearPointer() {
	s.pointer.Known = false
}

func (s *Sim) Pointer() Pointer { return s.pointer }

func (s *Sim) SetMode(m Mode) {
	if s.cfg.Mode == m {
		return
	}
	s.cfg.Mode = m
	s.Bus.Notify(fmt.Sprintf("Mode: %s", m))
}

func (s *Sim) Mode() Mode { return s.cfg.Mode }

// SetParticleCount resizes the pool. Out-of-range counts are rejected and
// leave the pool untouched.
func (s *Sim) SetParticleCount(n int) error {
	c := s.cfg
	c.ParticleCount = n
	if err := c.Validate(); err != nil {
		return err
	}
	s.cfg.ParticleCount = n
	s.fill(n)
	return nil
}

func (s *Sim) AddExperience(points int) {
	s.Prog.AddExperience(points)
}

// TriggerSupernova explodes at the pointer, or the center when the pointer is
// unknown. It costs health and is refused when too little is left.
func (s *Sim) TriggerSupernova() bool {
	if !s.Health.Spend(SupernovaHealthCost) {
		return false
	}
	e := Event{Type: EventSupernova, X: s.W / 2, Y: s.H / 2, Data: NovaAtCenter}
	if s.pointer.Known {
		e.X, e.Y, e.Data = s.pointer.X, s.pointer.Y, NovaAtPoint
	}
	s.Bus.Emit(e)
	return true
}

// ActivateDoubleHole spawns a temporary hole for DoubleHoleDuration. It is a
// no-op while locked, already active, or at the hole limit.
func (s *Sim) ActivateDoubleHole() bool {
	if !s.Prog.Unlocked(AbilityDoubleHole) || s.doubleHole || len(s.Holes) >= MaxBlackHoles {
		return false
	}
	x, y := s.W*0.3, s.H*0.3
	if s.pointer.Known {
		x, y = s.pointer.X, s.pointer.Y
	}
	hole := NewBlackHole(x, y, true)
	s.Holes = append(s.Holes, hole)
	s.doubleHole = true
	s.Bus.Notify("Double Black Hole active!")
	s.Bus.Emit(Event{Type: EventAbilityActivated, X: x, Y: y, Data: int(AbilityDoubleHole)})

	s.tasks.After(s.cfg.DoubleHoleDuration.Seconds(), func() {
		s.removeHole(hole)
		s.doubleHole = false
		s.Bus.Emit(Event{Type: EventAbilityExpired, Data: int(AbilityDoubleHole)})
	})
	return true
}

func (s *Sim) removeHole(hole *BlackHole) {
	for i, h := range s.Holes {
		if h == hole {
			s.Holes = append(s.Holes[:i], s.Holes[i+1:]...)
			return
		}
	}
}

// ActivateTimeWarp slows particle motion for TimeWarpDuration.
func (s *Sim) ActivateTimeWarp() bool {
	if !s.Prog.Unlocked(AbilityTimeWarp) || s.timeWarp {
		return false
	}
	s.timeWarp = true
	s.Bus.Notify("Time Distortion active!")
	s.Bus.Emit(Event{Type: EventAbilityActivated, Data: int(AbilityTimeWarp)})

	s.tasks.After(s.cfg.TimeWarpDuration.Seconds(), func() {
		if !s.timeWarp {
			return
		}
		s.timeWarp = false
		s.Bus.Emit(Event{Type: EventAbilityExpired, Data: int(AbilityTimeWarp)})
	})
	return true
}

// Active reports whether a timed ability is currently running.
func (s *Sim) Active(a Ability) bool {
	switch a {
	case AbilityDoubleHole:
		return s.doubleHole
	case AbilityTimeWarp:
		return s.timeWarp
	}
	return false
}

// Tick advances the simulation by dt seconds of wall-clock time. Ability
// timers use the full dt; motion and meters use dt clamped to MaxFrameDelta,
// and particle and supernova motion step once per call.
func (s *Sim) Tick(dt float64) {
	if !(dt > 0) {
		dt = 0
	}
	s.tasks.Drain(dt)

	dt = min(dt, MaxFrameDelta)
	frames := dt / BaseFrame

	s.Power.Add(-PowerDecay * frames)
	s.Health.Add(HealthRegen * frames)

	for _, h := range s.Holes {
		h.Update(dt)
	}
	s.Stars.Update(dt)

	field := Field{
		W:           s.W,
		H:           s.H,
		Pointer:     s.pointer,
		Mode:        s.cfg.Mode,
		MouseRadius: s.cfg.MouseRadius,
		Holes:       s.Holes,
		LevelMul:    s.Prog.LevelMultiplier(),
		TimeScale:   1,
	}
	if s.timeWarp {
		field.TimeScale = TimeWarpScale
	}

	swallowed := 0
	var gain float64
	for i := range s.Particles {
		p := &s.Particles[i]
		out := p.Update(&field, s.rng)
		gain += out.Power
		if out.Swallowed {
			p.Reset(s.W, s.H, s.rng)
			swallowed++
		}
	}
	s.Power.Add(gain)

	s.Nova.Update()
	s.shake.Update(dt, s.fx)

	if swallowed > 0 {
		s.Prog.AddExperience(swallowed * XPPerSwallow)
	}
	s.Prog.CheckAchievements(Snapshot{
		ParticleCount: len(s.Particles),
		Mode:          s.cfg.Mode,
		Level:         s.Prog.Level,
	})
}

// Draw records one frame onto cv, back to front.
func (s *Sim) Draw(cv *Canvas) {
	cv.Begin(s.W, s.H)
	cv.OffsetX, cv.OffsetY = s.shake.X, s.shake.Y

	cv.Fade(Palette.Background, 0.1)
	s.Stars.Draw(cv)
	drawLinks(cv, &s.links, s.Particles, s.cfg.LineDistance)
	for _, h := range s.Holes {
		h.Draw(cv)
	}
	for i := range s.Particles {
		s.Particles[i].Draw(cv)
	}
	cv.SetBlend(BlendLighter)
	for i := range s.Particles {
		s.Particles[i].DrawHalo(cv)
	}
	cv.SetBlend(BlendNormal)
	s.Nova.Draw(cv)
}

// Readout is what the numeric displays show.
type Readout struct {
	Power      int
	Health     int
	Level      int
	Experience int
	Threshold  int
	Particles  int
	Mode       Mode
}

func (s *Sim) Readout() Readout {
	return Readout{
		Power:      s.Power.Rounded(),
		Health:     s.Health.Rounded(),
		Level:      s.Prog.Level,
		Experience: s.Prog.Experience,
		Threshold:  s.Prog.Threshold(),
		Particles:  len(s.Particles),
		Mode:       s.cfg.Mode,
	}
}
