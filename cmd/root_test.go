package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nebula/internal/game"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	envFile, particles, mode, seed, mute, verbose = "", 0, "", 0, false, false
	for _, name := range []string{"particles", "mode", "seed", "mute", "verbose", "env"} {
		if f := rootCmd.PersistentFlags().Lookup(name); f != nil {
			f.Changed = false
		}
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigPrintsEffectiveSettings(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, "nebula.env")
	if err := os.WriteFile(env, []byte("NEBULA_PARTICLES=300\nNEBULA_MODE=attract\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "config", "--env", env, "--particles", "50")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{`NEBULA_PARTICLES=50`, `NEBULA_MODE="attract"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %s:\n%s", want, out)
		}
	}
}

func TestConfigRejectsBadFlags(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "none.env")

	_, err := execute(t, "config", "--env", missing, "--particles=-1")
	if !errors.Is(err, game.ErrInvalidConfig) {
		t.Fatalf("negative particles got=%v want ErrInvalidConfig", err)
	}
	_, err = execute(t, "config", "--env", missing, "--mode", "sideways")
	if !errors.Is(err, game.ErrInvalidConfig) {
		t.Fatalf("bad mode got=%v want ErrInvalidConfig", err)
	}
}
