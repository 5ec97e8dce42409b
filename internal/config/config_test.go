package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"nebula/internal/game"
)

func writeEnv(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.env"), noEnv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s != Default() {
		t.Fatalf("settings = %+v, want defaults", s)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeEnv(t, `
NEBULA_PARTICLES=250
NEBULA_MODE=attract
NEBULA_MOUSE_RADIUS=80.5
NEBULA_DOUBLE_HOLE_SECONDS=2.5
NEBULA_SEED=77
NEBULA_MUTE=true
NEBULA_WIDTH=640
`)
	s, err := Load(path, noEnv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.ParticleCount != 250 || s.Mode != game.ModeAttract || s.MouseRadius != 80.5 {
		t.Fatalf("settings = %+v", s)
	}
	if s.DoubleHoleDuration != 2500*time.Millisecond {
		t.Fatalf("double hole = %s, want 2.5s", s.DoubleHoleDuration)
	}
	if s.Seed != 77 || !s.Mute || s.Width != 640 || s.Height != 800 {
		t.Fatalf("settings = %+v", s)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeEnv(t, "NEBULA_PARTICLES=250\nNEBULA_STARS=10\n")
	t.Setenv("NEBULA_PARTICLES", "40")

	s, err := Load(path, os.LookupEnv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.ParticleCount != 40 || s.StarCount != 10 {
		t.Fatalf("particles=%d stars=%d, want 40/10", s.ParticleCount, s.StarCount)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name, body string
	}{
		{"not a number", "NEBULA_PARTICLES=lots"},
		{"out of range", "NEBULA_PARTICLES=999999"},
		{"bad mode", "NEBULA_MODE=orbit"},
		{"bad bool", "NEBULA_MUTE=maybe"},
		{"negative seed", "NEBULA_SEED=-1"},
		{"zero window", "NEBULA_HEIGHT=0"},
		{"zero warp", "NEBULA_TIME_WARP_SECONDS=0"},
		{"NaN radius", "NEBULA_MOUSE_RADIUS=NaN"},
		{"infinite links", "NEBULA_LINE_DISTANCE=+Inf"},
		{"NaN hole time", "NEBULA_DOUBLE_HOLE_SECONDS=NaN"},
		{"tiny links", "NEBULA_LINE_DISTANCE=0.000001"},
		{"too many stars", "NEBULA_STARS=100000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeEnv(t, tt.body), noEnv)
			if !errors.Is(err, game.ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestMarshalReloads(t *testing.T) {
	want := Default()
	want.ParticleCount = 321
	want.Mode = game.ModeAttract
	want.TimeWarpDuration = 1500 * time.Millisecond
	want.Seed = 9

	text, err := want.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Load(writeEnv(t, text), noEnv)
	if err != nil {
		t.Fatalf("Load: %v\n%s", err, text)
	}
	if got != want {
		t.Fatalf("reloaded %+v, want %+v", got, want)
	}
}
