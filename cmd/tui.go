package cmd

import (
	"github.com/spf13/cobra"

	"nebula/internal/terminal"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run in the terminal",
	Long: `Run the simulation full-screen in the terminal. Each character cell
covers an 8x16 block of the field. The mouse moves the pointer; q or Ctrl-C quits.`,
	Args: cobra.NoArgs,
	RunE: runTerminal,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTerminal(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	return terminal.Run(s, terminal.Options{Verbose: verbose})
}
