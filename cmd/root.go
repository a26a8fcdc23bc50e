// ABOUTME: Root command for the skillsync CLI
// ABOUTME: Handles global flags, configuration and shared client construction

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dykkyongdo/SkillSync-sub000/internal/client"
	"github.com/dykkyongdo/SkillSync-sub000/internal/config"
	"github.com/dykkyongdo/SkillSync-sub000/internal/logger"
	"github.com/dykkyongdo/SkillSync-sub000/internal/session"
	"github.com/dykkyongdo/SkillSync-sub000/internal/tui"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command. Bare invocation launches the interactive TUI.
var rootCmd = &cobra.Command{
	Use:   "skillsync",
	Short: "Terminal client for SkillSync group flashcard study",
	Long: `skillsync is a terminal client for the SkillSync spaced-repetition service.

Run without arguments for the interactive study TUI, or use the subcommands
for scripting and quick lookups.

Environment Variables:
  SKILLSYNC_API_URL      Backend API URL (default: http://localhost:8080)
  SKILLSYNC_CONFIG_DIR   Directory for the persisted session
  SKILLSYNC_STUDY_LIMIT  Due cards fetched per study session (default: 10)`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init()
	},
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runStudy(os.Stdout))
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides SKILLSYNC_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// setup loads configuration, hydrates the persisted session and builds the
// API client. Every subcommand goes through here.
func setup() (*client.Client, *session.Manager, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	sess := session.NewManager(session.NewStore(cfg.ConfigDir))
	if err := sess.Hydrate(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to restore session: %w", err)
	}

	return client.New(cfg.APIURL, sess), sess, cfg, nil
}

// reportError prints a failure in a consistent shape and picks the exit code.
// Expired sessions get sign-in guidance instead of a bare error.
func reportError(w io.Writer, err error) int {
	if errors.Is(err, client.ErrAuthExpired) {
		fmt.Fprintln(w, "Your session has expired. Run 'skillsync login' to sign in again.")
		return 2
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 2
}

// runStudy launches the interactive TUI.
func runStudy(w io.Writer) int {
	c, sess, cfg, err := setup()
	if err != nil {
		return reportError(w, err)
	}

	if err := tui.Run(c, sess, cfg.StudyLimit); err != nil {
		return reportError(w, err)
	}
	return 0
}
