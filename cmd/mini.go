package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(miniCmd)
}

// miniCmd launches the prompt-driven interface.
var miniCmd = &cobra.Command{
	Use:   "mini",
	Short: "Launch the lightweight prompt-driven interface",
	Long:  `Browse the catalog and control playback through a sequence of prompts instead of the full-screen TUI.`,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(launch(cmd.Context(), runMini))
	},
}
