package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"nebula/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective settings as a dotenv file",
	Long: `Print the settings nebula would start with, after reading the dotenv file,
the NEBULA_* environment variables and the command line flags.

Accepted variables (each prefixed with ` + config.Prefix + `):
  PARTICLES            particle count, 0 to 2000
  MOUSE_RADIUS         pointer influence radius in pixels
  MODE                 attract or repel
  LINE_DISTANCE        maximum length of particle links in pixels
  STARS                background star count
  DOUBLE_HOLE_SECONDS  lifetime of the second black hole
  TIME_WARP_SECONDS    length of the time distortion
  SEED                 random seed
  MUTE                 true to disable sound
  WIDTH, HEIGHT        initial window size`,
	Args: cobra.NoArgs,
	RunE: printConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func printConfig(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	out, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
