package game

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidConfig is wrapped by every configuration rejection.
var ErrInvalidConfig = errors.New("invalid configuration")

// Frame pacing.
const (
	BaseFrame     = 0.016 // seconds; rates below are tuned per 16 ms frame
	MaxFrameDelta = 0.1
)

// Particles.
const (
	TrailLength      = 8
	ParticleLifeMin  = 300
	ParticleLifeMax  = 900
	ParticleSizeMin  = 1.0
	ParticleSizeMax  = 3.5
	ParticleSpeedMax = 1.5
	WallDamping      = 0.8
	MouseForceScale  = 0.05
	PowerPerParticle = 0.05
	LevelSpeedStep   = 0.1
	MaxParticleCount = 2000
)

// Black holes.
const (
	MaxBlackHoles     = 2
	HoleSize          = 30.0
	TempHoleSize      = 25.0
	HolePullScale     = 5.0
	HolePullStrength  = 0.8
	HoleMinDist2      = 25.0
	TimeWarpScale     = 0.35
	XPPerSwallow      = 2
	HoleSpawnInFrames = 45.0
)

// Meters.
const (
	PowerMax            = 100.0
	PowerDecay          = 0.1
	HealthMax           = 100.0
	HealthRegen         = 0.02
	SupernovaHealthCost = 5.0
)

// Configuration limits. A LineDistance of 0 disables links.
const (
	MaxStarCount    = 5000
	MinLineDistance = 1.0
)

// Thresholds for achievements.
const SwarmParticleCount = 200

// Mode is the pointer interaction mode.
type Mode uint8

const (
	ModeRepel Mode = iota
	ModeAttract
)

func (m Mode) String() string {
	if m == ModeAttract {
		return "attract"
	}
	return "repel"
}

// ParseMode accepts "attract" or "repel" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attract":
		return ModeAttract, nil
	case "repel":
		return ModeRepel, nil
	}
	return ModeRepel, fmt.Errorf("%w: mode %q (want attract or repel)", ErrInvalidConfig, s)
}

// Config holds the process-wide tunables. Power and Health are the live
// meters; everything else is read-mostly and set by the UI.
type Config struct {
	ParticleCount      int
	MouseRadius        float64
	Mode               Mode
	LineDistance       float64
	StarCount          int
	Power              float64
	Health             float64
	DoubleHoleDuration time.Duration
	TimeWarpDuration   time.Duration
	Seed               uint64
	Mute               bool
}

// DefaultConfig mirrors the stock tuning.
func DefaultConfig() Config {
	return Config{
		ParticleCount:      100,
		MouseRadius:        100,
		Mode:               ModeRepel,
		LineDistance:       100,
		StarCount:          200,
		Power:              0,
		Health:             HealthMax,
		DoubleHoleDuration: 10 * time.Second,
		TimeWarpDuration:   6 * time.Second,
	}
}

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"mouse radius", c.MouseRadius},
		{"line distance", c.LineDistance},
		{"power", c.Power},
		{"health", c.Health},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s %g is not finite", ErrInvalidConfig, f.name, f.v)
		}
	}
	switch {
	case c.ParticleCount < 0 || c.ParticleCount > MaxParticleCount:
		return fmt.Errorf("%w: particle count %d outside [0, %d]", ErrInvalidConfig, c.ParticleCount, MaxParticleCount)
	case c.MouseRadius < 0:
		return fmt.Errorf("%w: mouse radius %g < 0", ErrInvalidConfig, c.MouseRadius)
	case c.Mode != ModeRepel && c.Mode != ModeAttract:
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfig, c.Mode)
	case c.LineDistance != 0 && c.LineDistance < MinLineDistance:
		return fmt.Errorf("%w: line distance %g (want 0 or >= %g)", ErrInvalidConfig, c.LineDistance, MinLineDistance)
	case c.StarCount < 0 || c.StarCount > MaxStarCount:
		return fmt.Errorf("%w: star count %d outside [0, %d]", ErrInvalidConfig, c.StarCount, MaxStarCount)
	case c.Power < 0 || c.Power > PowerMax:
		return fmt.Errorf("%w: power %g outside [0, %g]", ErrInvalidConfig, c.Power, PowerMax)
	case c.Health < 0 || c.Health > HealthMax:
		return fmt.Errorf("%w: health %g outside [0, %g]", ErrInvalidConfig, c.Health, HealthMax)
	case c.DoubleHoleDuration <= 0:
		return fmt.Errorf("%w: double hole duration %s must be positive", ErrInvalidConfig, c.DoubleHoleDuration)
	case c.TimeWarpDuration <= 0:
		return fmt.Errorf("%w: time warp duration %s must be positive", ErrInvalidConfig, c.TimeWarpDuration)
	}
	return nil
}
