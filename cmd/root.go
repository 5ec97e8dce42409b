package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"nebula/internal/config"
	"nebula/internal/game"
)

var (
	envFile   string
	particles int
	mode      string
	seed      uint64
	mute      bool
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "nebula",
	Short: "Interactive particle field with black holes and supernovae",
	Long: `Nebula draws a field of drifting particles around a black hole.
Move the pointer to push them away or pull them in, earn levels as the hole
swallows them, and unlock a second hole and time distortion on the way.

Running without a subcommand opens the desktop window.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lmicroseconds)
		}
	},
	RunE: runDesktop,
}

func init() {
	log.SetFlags(0)

	rootCmd.PersistentFlags().StringVar(&envFile, "env", config.DefaultFile, "dotenv file with NEBULA_* settings")
	rootCmd.PersistentFlags().IntVarP(&particles, "particles", "n", 0, "number of particles")
	rootCmd.PersistentFlags().StringVarP(&mode, "mode", "m", "", "pointer mode: attract or repel")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (0 picks a fixed default)")
	rootCmd.PersistentFlags().BoolVar(&mute, "mute", false, "disable sound")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log timestamps and frame statistics")
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, game.ErrInvalidConfig) {
			log.Printf("%v", err)
			log.Fatalf("see `%s config --help` for the accepted settings", rootCmd.Name())
		}
		log.Fatal(err)
	}
}

// loadSettings reads the dotenv file and environment, then applies any
// flags given on the command line.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	s, err := config.Load(envFile, os.LookupEnv)
	if err != nil {
		return s, err
	}
	flags := cmd.Flags()
	if flags.Changed("particles") {
		s.ParticleCount = particles
	}
	if flags.Changed("mode") {
		m, err := game.ParseMode(mode)
		if err != nil {
			return s, fmt.Errorf("--mode: %w", err)
		}
		s.Mode = m
	}
	if flags.Changed("seed") {
		s.Seed = seed
	}
	if flags.Changed("mute") {
		s.Mute = mute
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}
