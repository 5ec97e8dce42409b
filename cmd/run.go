package cmd

import (
	"github.com/spf13/cobra"

	"nebula/internal/desktop"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the desktop window (default)",
	Args:  cobra.NoArgs,
	RunE:  runDesktop,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDesktop(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	return desktop.Run(s, desktop.Options{Verbose: verbose})
}
