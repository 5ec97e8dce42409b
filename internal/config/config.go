// Package config loads settings from an optional dotenv file and NEBULA_*
// environment variables on top of the simulation defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"nebula/internal/game"
)

const Prefix = "NEBULA_"

// DefaultFile is read when no --env flag is given.
const DefaultFile = ".env"

// Environment keys, without the prefix.
const (
	KeyParticles    = "PARTICLES"
	KeyMouseRadius  = "MOUSE_RADIUS"
	KeyMode         = "MODE"
	KeyLineDistance = "LINE_DISTANCE"
	KeyStars        = "STARS"
	KeyDoubleHole   = "DOUBLE_HOLE_SECONDS"
	KeyTimeWarp     = "TIME_WARP_SECONDS"
	KeySeed         = "SEED"
	KeyMute         = "MUTE"
	KeyWidth        = "WIDTH"
	KeyHeight       = "HEIGHT"
)

// Settings is everything a frontend needs to start.
type Settings struct {
	game.Config
	Width, Height int
}

func Default() Settings {
	return Settings{Config: game.DefaultConfig(), Width: 1280, Height: 800}
}

// Lookup resolves a prefixed key. The process environment wins over the file.
type Lookup func(key string) (string, bool)

// Load reads path (a missing file is fine), overlays the environment and
// validates the result.
func Load(path string, env Lookup) (Settings, error) {
	file := map[string]string{}
	if path != "" {
		m, err := godotenv.Read(path)
		switch {
		case err == nil:
			file = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Settings{}, fmt.Errorf("read %s: %w", path, err)
		}
	}
	get := func(key string) (string, bool) {
		if env != nil {
			if v, ok := env(Prefix + key); ok {
				return v, true
			}
		}
		v, ok := file[Prefix+key]
		return v, ok
	}

	s := Default()
	if err := s.apply(get); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) apply(get Lookup) error {
	var err error
	intVar := func(key string, dst *int) {
		if v, ok := get(key); ok && err == nil {
			var n int
			n, err = strconv.Atoi(v)
			if err != nil {
				err = invalid(key, v, err)
				return
			}
			*dst = n
		}
	}
	floatVar := func(key string, dst *float64) {
		if v, ok := get(key); ok && err == nil {
			var f float64
			f, err = strconv.ParseFloat(v, 64)
			if err != nil {
				err = invalid(key, v, err)
				return
			}
			if math.IsNaN(f) || math.IsInf(f, 0) {
				err = invalid(key, v, errNotFinite)
				return
			}
			*dst = f
		}
	}
	secondsVar := func(key string, dst *time.Duration) {
		f := dst.Seconds()
		floatVar(key, &f)
		*dst = time.Duration(f * float64(time.Second))
	}

	intVar(KeyParticles, &s.ParticleCount)
	floatVar(KeyMouseRadius, &s.MouseRadius)
	floatVar(KeyLineDistance, &s.LineDistance)
	intVar(KeyStars, &s.StarCount)
	secondsVar(KeyDoubleHole, &s.DoubleHoleDuration)
	secondsVar(KeyTimeWarp, &s.TimeWarpDuration)
	intVar(KeyWidth, &s.Width)
	intVar(KeyHeight, &s.Height)
	if err != nil {
		return err
	}

	if v, ok := get(KeyMode); ok {
		m, perr := game.ParseMode(v)
		if perr != nil {
			return fmt.Errorf("%s%s: %w", Prefix, KeyMode, perr)
		}
		s.Mode = m
	}
	if v, ok := get(KeySeed); ok {
		n, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			return invalid(KeySeed, v, perr)
		}
		s.Seed = n
	}
	if v, ok := get(KeyMute); ok {
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			return invalid(KeyMute, v, perr)
		}
		s.Mute = b
	}
	return nil
}

var errNotFinite = errors.New("not a finite number")

func invalid(key, value string, err error) error {
	return fmt.Errorf("%w: %s%s=%q: %v", game.ErrInvalidConfig, Prefix, key, value, err)
}

// Validate checks the window size on top of the simulation tunables.
func (s Settings) Validate() error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", game.ErrInvalidConfig, s.Width, s.Height)
	}
	return nil
}

// Env is the settings as prefixed dotenv pairs.
func (s Settings) Env() map[string]string {
	ftoa := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
	return map[string]string{
		Prefix + KeyParticles:    strconv.Itoa(s.ParticleCount),
		Prefix + KeyMouseRadius:  ftoa(s.MouseRadius),
		Prefix + KeyMode:         s.Mode.String(),
		Prefix + KeyLineDistance: ftoa(s.LineDistance),
		Prefix + KeyStars:        strconv.Itoa(s.StarCount),
		Prefix + KeyDoubleHole:   ftoa(s.DoubleHoleDuration.Seconds()),
		Prefix + KeyTimeWarp:     ftoa(s.TimeWarpDuration.Seconds()),
		Prefix + KeySeed:         strconv.FormatUint(s.Seed, 10),
		Prefix + KeyMute:         strconv.FormatBool(s.Mute),
		Prefix + KeyWidth:        strconv.Itoa(s.Width),
		Prefix + KeyHeight:       strconv.Itoa(s.Height),
	}
}

// Marshal renders the settings as a dotenv file.
func (s Settings) Marshal() (string, error) {
	return godotenv.Marshal(s.Env())
}
