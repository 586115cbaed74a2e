package cmd

import (
	"github.com/spf13/cobra"

	"minifyall/internal/logger"
	"minifyall/internal/tui"
)

// tuiCmd launches the interactive file picker.
var tuiCmd = &cobra.Command{
	Use:   "tui [directory]",
	Short: "Pick files to minify in an interactive TUI",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		svc := newService()
		// Messages would tear the alternate screen.
		logger.SetMessagesMuted(true)
		return tui.Run(dir, svc, svc.Accepts)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
