// ABOUTME: Whoami command for the skillsync CLI
// ABOUTME: Shows the signed-in subject and token expiry without calling the backend

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dykkyongdo/SkillSync-sub000/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Long:  `Show the signed-in user and token expiry from the persisted session. Claims are read client-side and are not verified.`,
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runWhoami(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami prints the session summary and returns the exit code.
func runWhoami(w io.Writer) int {
	_, sess, _, err := setup()
	if err != nil {
		return reportError(w, err)
	}

	if !sess.Authenticated() {
		fmt.Fprintln(w, "Not signed in. Run 'skillsync login' first.")
		return 2
	}

	current := sess.Current()
	expiresAt := session.ExpiresAt(current.Token)
	expired := session.IsExpired(current.Token)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(current.Subject, expiresAt, expired))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(current.Subject, expiresAt, expired))
	}
	return 0
}

// formatWhoamiHuman formats the session summary for human readability
func formatWhoamiHuman(subject string, expiresAt time.Time, expired bool) string {
	status := "valid"
	if expired {
		status = "expired"
	}
	expiry := "unknown"
	if !expiresAt.IsZero() {
		expiry = expiresAt.Local().Format(time.RFC1123)
	}
	return fmt.Sprintf(`Signed in as: %s
Token status: %s
Expires:      %s`, subject, status, expiry)
}

// formatWhoamiJSON formats the session summary as JSON
func formatWhoamiJSON(subject string, expiresAt time.Time, expired bool) string {
	output := map[string]interface{}{
		"subject": subject,
		"expired": expired,
	}
	if !expiresAt.IsZero() {
		output["expires_at"] = expiresAt.UTC().Format(time.RFC3339)
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
