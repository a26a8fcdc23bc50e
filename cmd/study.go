// ABOUTME: Study command for the skillsync CLI
// ABOUTME: Launches the interactive TUI, same as running skillsync bare

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Launch the interactive study TUI",
	Long: `Launch the interactive TUI: pick a group and a flashcard set, then review
the cards that are due. Unauthenticated sessions land on the login screen.`,
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runStudy(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(studyCmd)
}
