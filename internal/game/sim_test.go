package game

import (
	"errors"
	"math"
	"testing"
)

func newTestSim(t *testing.T, mod func(*Config)) *Sim {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 42
	if mod != nil {
		mod(&cfg)
	}
	s, err := New(cfg, 800, 600)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParticleCount = -3
	if _, err := New(cfg, 800, 600); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	for _, mod := range []func(*Config){
		func(c *Config) { c.LineDistance = 1e-6 },
		func(c *Config) { c.MouseRadius = math.NaN() },
	} {
		cfg := DefaultConfig()
		mod(&cfg)
		if _, err := New(cfg, 800, 600); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("err = %v, want ErrInvalidConfig", err)
		}
	}
	if _, err := New(DefaultConfig(), 0, 600); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("zero surface err = %v, want ErrInvalidConfig", err)
	}
}

func TestNewBuildsWorld(t *testing.T) {
	s := newTestSim(t, nil)
	if len(s.Particles) != 100 || len(s.Stars.Stars) != 200 {
		t.Fatalf("particles=%d stars=%d", len(s.Particles), len(s.Stars.Stars))
	}
	if len(s.Holes) != 1 || s.Holes[0].X != 400 || s.Holes[0].Y != 300 || s.Holes[0].Temporary {
		t.Fatalf("permanent hole not centred: %+v", s.Holes)
	}
}

func TestSimKeepsParticlesInBounds(t *testing.T) {
	s := newTestSim(t, func(c *Config) { c.ParticleCount = 300 })
	r := NewRand(9)
	for tick := 0; tick < 400; tick++ {
		if tick%50 == 0 {
			s.SetPointer(r.RangeF(0, 800), r.RangeF(0, 600))
		}
		if tick == 200 {
			s.SetMode(ModeAttract)
		}
		s.Tick(BaseFrame)
		for i := range s.Particles {
			p := &s.Particles[i]
			if p.X < 0 || p.X > s.W || p.Y < 0 || p.Y > s.H {
				t.Fatalf("tick %d: particle %d at (%f, %f)", tick, i, p.X, p.Y)
			}
		}
	}
}

func TestSimPowerDecays(t *testing.T) {
	s := newTestSim(t, func(c *Config) { c.Power = 50; c.ParticleCount = 0 })
	s.Tick(BaseFrame)
	if math.Abs(s.Power.Value-49.9) > 1e-9 {
		t.Fatalf("power = %f, want 49.9", s.Power.Value)
	}
	if got := s.Readout().Power; got != 50 {
		t.Fatalf("readout power = %d, want 50", got)
	}
	for i := 0; i < 1000; i++ {
		s.Tick(BaseFrame)
	}
	if s.Power.Value != 0 {
		t.Fatalf("power = %f, want floor 0", s.Power.Value)
	}
}

func TestSimAttractGainsPower(t *testing.T) {
	s := newTestSim(t, func(c *Config) { c.Mode = ModeAttract; c.MouseRadius = 2000 })
	s.SetPointer(400, 300)
	s.Tick(BaseFrame)
	if s.Power.Value <= 0 {
		t.Fatalf("power = %f, want gain from attracted particles", s.Power.Value)
	}
}

func TestTriggerSupernovaAtPointer(t *testing.T) {
	s := newTestSim(t, nil)
	var rec recorder
	rec.listen(s.Bus, EventSupernova)

	s.SetPointer(120, 80)
	if !s.TriggerSupernova() {
		t.Fatalf("trigger refused at full health")
	}
	if !s.Nova.Active || s.Nova.X != 120 || s.Nova.Y != 80 {
		t.Fatalf("nova active=%v at (%f, %f), want (120, 80)", s.Nova.Active, s.Nova.X, s.Nova.Y)
	}
	if s.Health.Value != HealthMax-SupernovaHealthCost {
		t.Fatalf("health = %f, want %f", s.Health.Value, HealthMax-SupernovaHealthCost)
	}
	if rec.count(EventSupernova) != 1 {
		t.Fatalf("supernova events = %d, want 1", rec.count(EventSupernova))
	}
}

func TestTriggerSupernovaCentresWithoutPointer(t *testing.T) {
	s := newTestSim(t, nil)
	s.TriggerSupernova()
	if s.Nova.X != 400 || s.Nova.Y != 300 {
		t.Fatalf("nova at (%f, %f), want centre", s.Nova.X, s.Nova.Y)
	}
}

func TestTriggerSupernovaRefusedWhenExhausted(t *testing.T) {
	s := newTestSim(t, func(c *Config) { c.Health = 3 })
	if s.TriggerSupernova() {
		t.Fatalf("trigger accepted with health 3")
	}
	if s.Nova.Active {
		t.Fatalf("nova active after refused trigger")
	}
}

func TestLevelUpExplodesAtCentre(t *testing.T) {
	s := newTestSim(t, nil)
	s.AddExperience(100)
	if s.Prog.Level != 2 {
		t.Fatalf("level = %d, want 2", s.Prog.Level)
	}
	if !s.Nova.Active || s.Nova.X != 400 || s.Nova.Y != 300 {
		t.Fatalf("level-up nova active=%v at (%f, %f)", s.Nova.Active, s.Nova.X, s.Nova.Y)
	}
}

func levelTo(s *Sim, level int) {
	for s.Prog.Level < level {
		s.AddExperience(s.Prog.Threshold())
	}
}

func TestDoubleHoleLifecycle(t *testing.T) {
	s := newTestSim(t, func(c *Config) { c.ParticleCount = 0 })
	if s.ActivateDoubleHole() {
		t.Fatalf("double hole activated while locked")
	}

	levelTo(s, 3)
	if !s.ActivateDoubleHole() {
		t.Fatalf("double hole refused after unlock")
	}
	if len(s.Holes) != 2 || !s.Holes[1].Temporary {
		t.Fatalf("holes = %d, want permanent + temporary", len(s.Holes))
	}
	if math.Abs(s.Holes[1].X-240) > 1e-9 || math.Abs(s.Holes[1].Y-180) > 1e-9 {
		t.Fatalf("temporary hole at (%f, %f), want (240, 180)", s.Holes[1].X, s.Holes[1].Y)
	}
	if s.ActivateDoubleHole() {
		t.Fatalf("second activation accepted while active")
	}

	for i := 0; i < 95; i++ {
		s.Tick(MaxFrameDelta)
	}
	if len(s.Holes) != 2 {
		t.Fatalf("temporary hole removed early")
	}
	for i := 0; i < 10; i++ {
		s.Tick(MaxFrameDelta)
	}
	if len(s.Holes) != 1 || s.Holes[0].Temporary || s.Active(AbilityDoubleHole) {
		t.Fatalf("temporary hole not expired: holes=%d", len(s.Holes))
	}
	if !s.ActivateDoubleHole() {
		t.Fatalf("double hole refused after expiry")
	}
}

func TestAbilityTimersUseWallClock(t *testing.T) {
	s := newTestSim(t, func(c *Config) { c.ParticleCount = 0 })
	levelTo(s, 6)
	if !s.ActivateDoubleHole() || !s.ActivateTimeWarp() {
		t.Fatalf("abilities refused after unlock")
	}

	// A stalled frame (minimised window, slow machine) still counts in full.
	s.Tick(4)
	if !s.Active(AbilityDoubleHole) || !s.Active(AbilityTimeWarp) {
		t.Fatalf("abilities expired early")
	}
	s.Tick(7)
	if s.Active(AbilityDoubleHole) || s.Active(AbilityTimeWarp) || len(s.Holes) != 1 {
		t.Fatalf("abilities still active after 11s: holes=%d", len(s.Holes))
	}
}

func TestDoubleHoleAtPointer(t *testing.T) {
	s := newTestSim(t, func(c *Config) { c.ParticleCount = 0 })
	levelTo(s, 3)
	s.SetPointer(50, 60)
	s.ActivateDoubleHole()
	if h := s.Holes[1]; h.X != 50 || h.Y != 60 {
		t.Fatalf("temporary hole at (%f, %f), want (50, 60)", h.X, h.Y)
	}
}

func TestTimeWarpLifecycle(t *testing.T) {
	s := newTestSim(t, func(c *Config) { c.ParticleCount = 0 })
	levelTo(s, 5)
	if s.ActivateTimeWarp() {
		t.Fatalf("time warp activated before level 6")
	}
	levelTo(s, 6)
	if !s.ActivateTimeWarp() || !s.Active(AbilityTimeWarp) {
		t.Fatalf("time warp refused after unlock")
	}
	if s.ActivateTimeWarp() {
		t.Fatalf("second activation accepted while active")
	}
	for i := 0; i < 65; i++ {
		s.Tick(MaxFrameDelta)
	}
	if s.Active(AbilityTimeWarp) {
		t.Fatalf("time warp still active after duration")
	}
}

func TestTimeWarpSlowsParticles(t *testing.T) {
	s := newTestSim(t, func(c *Config) { c.ParticleCount = 1 })
	levelTo(s, 6)
	s.Holes = s.Holes[:0]
	s.ActivateTimeWarp()

	p := &s.Particles[0]
	p.X, p.Y = 400, 300
	p.SpeedX, p.SpeedY = 1, 0
	p.Life = 100
	s.Tick(BaseFrame)

	want := 400 + 1*(1+s.Prog.LevelMultiplier())*TimeWarpScale
	if math.Abs(p.X-want) > 1e-9 {
		t.Fatalf("x = %f, want %f", p.X, want)
	}
}

func TestSetParticleCount(t *testing.T) {
	s := newTestSim(t, nil)
	if err := s.SetParticleCount(-1); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if len(s.Particles) != 100 {
		t.Fatalf("pool changed on rejected count: %d", len(s.Particles))
	}
	if err := s.SetParticleCount(SwarmParticleCount); err != nil {
		t.Fatalf("SetParticleCount: %v", err)
	}
	if len(s.Particles) != SwarmParticleCount || s.Config().ParticleCount != SwarmParticleCount {
		t.Fatalf("pool = %d", len(s.Particles))
	}
	s.Tick(BaseFrame)
	if !s.Prog.Earned(AchievementSwarm) {
		t.Fatalf("swarm achievement not earned")
	}
	if err := s.SetParticleCount(10); err != nil || len(s.Particles) != 10 {
		t.Fatalf("shrink: err=%v len=%d", err, len(s.Particles))
	}
}

func TestSwallowedParticleAwardsExperience(t *testing.T) {
	s := newTestSim(t, func(c *Config) { c.ParticleCount = 1 })
	p := &s.Particles[0]
	p.X, p.Y = 400, 300
	p.SpeedX, p.SpeedY = 0, 0
	p.Life = 100

	s.Tick(BaseFrame)
	if s.Prog.Experience != XPPerSwallow {
		t.Fatalf("experience = %d, want %d", s.Prog.Experience, XPPerSwallow)
	}
	if p.X == 400 && p.Y == 300 {
		t.Fatalf("swallowed particle not respawned")
	}
}

func TestResizeRecentresCore(t *testing.T) {
	s := newTestSim(t, nil)
	s.Resize(1000, 400)
	if s.Holes[0].X != 500 || s.Holes[0].Y != 200 {
		t.Fatalf("core at (%f, %f), want (500, 200)", s.Holes[0].X, s.Holes[0].Y)
	}
	for i := range s.Particles {
		if s.Particles[i].Y > 400 {
			t.Fatalf("particle %d left outside after resize", i)
		}
	}
	s.Resize(0, 0)
	if s.W != 1000 || s.H != 400 {
		t.Fatalf("zero resize applied")
	}
}

func TestDrawOrder(t *testing.T) {
	s := newTestSim(t, nil)
	s.SetPointer(400, 300)
	s.TriggerSupernova()
	s.Tick(BaseFrame)

	var cv Canvas
	s.Draw(&cv)
	passes := cv.Passes()
	if len(passes) == 0 || passes[0].Shape != ShapeFade {
		t.Fatalf("first pass is not the fade overlay")
	}
	if got := passes[0].Buf[3]; math.Abs(float64(got)-0.1) > 1e-6 {
		t.Fatalf("fade alpha = %f, want 0.1", got)
	}
	last := passes[len(passes)-1]
	if last.Blend != BlendLighter {
		t.Fatalf("supernova not drawn last")
	}
	if cv.Count(ShapeHole) != 1 {
		t.Fatalf("holes drawn = %d, want 1", cv.Count(ShapeHole))
	}
	if cv.BlendMode() != BlendNormal {
		t.Fatalf("blend left at %d", cv.BlendMode())
	}
}

func TestModeChangeEarnsGravityWell(t *testing.T) {
	s := newTestSim(t, nil)
	var rec recorder
	rec.listen(s.Bus, EventNotify)
	s.SetMode(ModeAttract)
	s.SetMode(ModeAttract)
	if rec.count(EventNotify) != 1 {
		t.Fatalf("notifications = %d, want 1", rec.count(EventNotify))
	}
	s.Tick(BaseFrame)
	if !s.Prog.Earned(AchievementGravityWell) {
		t.Fatalf("gravity well not earned")
	}
}
