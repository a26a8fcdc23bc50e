// ABOUTME: Overview command for the skillsync CLI
// ABOUTME: Fetches groups, stats and invitations in parallel for a dashboard view

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dykkyongdo/SkillSync-sub000/internal/client"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show your groups, progress and pending invitations",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runOverview(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

// runOverview fetches the three overview resources concurrently and renders
// them, returning the exit code.
func runOverview(ctx context.Context, w io.Writer) int {
	c, _, _, err := setup()
	if err != nil {
		return reportError(w, err)
	}

	var (
		groups      []client.Group
		stats       *client.MyStats
		invitations []client.Invitation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		groups, err = c.MyGroups(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = c.Stats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		invitations, err = c.Invitations(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatOverviewJSON(groups, stats, invitations))
	} else {
		fmt.Fprintln(w, formatOverviewHuman(groups, stats, invitations))
	}
	return 0
}

// formatOverviewHuman formats the overview for human readability
func formatOverviewHuman(groups []client.Group, stats *client.MyStats, invitations []client.Invitation) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Level %d  XP %d  Streak %d days  Mastered %d  Due today %d\n\n",
		stats.Level, stats.XP, stats.StreakCount, stats.MasteredCards, stats.DueToday)

	if len(groups) == 0 {
		sb.WriteString("No study groups yet. Create one with 'skillsync groups create'.\n")
	} else {
		fmt.Fprintf(&sb, "Groups (%d):\n", len(groups))
		for _, g := range groups {
			fmt.Fprintf(&sb, "  %-36s  %-8s  %s\n", g.GroupID, g.Role, g.Name)
		}
	}

	if len(invitations) > 0 {
		fmt.Fprintf(&sb, "\nPending invitations (%d):\n", len(invitations))
		for _, inv := range invitations {
			fmt.Fprintf(&sb, "  %s invited you to %s\n", inv.InviterEmail, inv.GroupName)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// formatOverviewJSON formats the overview as JSON
func formatOverviewJSON(groups []client.Group, stats *client.MyStats, invitations []client.Invitation) string {
	output := map[string]interface{}{
		"stats":       stats,
		"groups":      groups,
		"invitations": invitations,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
