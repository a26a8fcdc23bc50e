// ABOUTME: Flashcard set commands for the skillsync CLI
// ABOUTME: Lists and creates sets inside a study group

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	setGroupID     string
	setTitle       string
	setDescription string
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "Manage flashcard sets",
}

var setsListCmd = &cobra.Command{
	Use:   "list <group-id>",
	Short: "List the flashcard sets of a group",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runSetsList(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var setsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a flashcard set in a group",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runSetsCreate(ctx, os.Stdout, setGroupID, setTitle, setDescription); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	setsCreateCmd.Flags().StringVar(&setGroupID, "group", "", "Group ID the set belongs to")
	setsCreateCmd.Flags().StringVar(&setTitle, "title", "", "Set title")
	setsCreateCmd.Flags().StringVar(&setDescription, "description", "", "Set description")

	setsCmd.AddCommand(setsListCmd)
	setsCmd.AddCommand(setsCreateCmd)
	rootCmd.AddCommand(setsCmd)
}

func runSetsList(ctx context.Context, w io.Writer, groupID string) int {
	c, _, _, err := setup()
	if err != nil {
		return reportError(w, err)
	}

	sets, err := c.GroupSets(ctx, groupID)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(sets, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(sets) == 0 {
		fmt.Fprintln(w, "No sets in this group yet.")
		return 0
	}
	for _, s := range sets {
		line := fmt.Sprintf("%-36s  %s", s.ID, s.Title)
		if s.Description != "" {
			line += "  - " + s.Description
		}
		fmt.Fprintln(w, line)
	}
	return 0
}

func runSetsCreate(ctx context.Context, w io.Writer, groupID, title, description string) int {
	if groupID == "" || title == "" {
		fmt.Fprintln(w, "Provide --group and --title.")
		return 1
	}

	c, _, _, err := setup()
	if err != nil {
		return reportError(w, err)
	}

	set, err := c.CreateSet(ctx, groupID, title, description)
	if err != nil {
		return reportError(w, err)
	}

	fmt.Fprintf(w, "Created set %s (%s)\n", set.Title, set.ID)
	return 0
}
