// ABOUTME: Group management commands for the skillsync CLI
// ABOUTME: Lists, creates and administers study groups and their members

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

	"github.com/dykkyongdo/SkillSync-sub000/internal/client"
)

var (
	groupName        string
	groupDescription string
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Manage study groups",
}

var groupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your study groups",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runGroupsList(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var groupsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a study group",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runGroupsCreate(ctx, os.Stdout, groupName, groupDescription); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var groupsMembersCmd = &cobra.Command{
	Use:   "members <group-id>",
	Short: "List the members of a group",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runGroupsMembers(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var groupsRemoveMemberCmd = &cobra.Command{
	Use:   "remove-member <group-id> <membership-id>",
	Short: "Remove a member from a group",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runGroupsRemoveMember(ctx, os.Stdout, args[0], args[1]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	groupsCreateCmd.Flags().StringVar(&groupName, "name", "", "Group name")
	groupsCreateCmd.Flags().StringVar(&groupDescription, "description", "", "Group description")

	groupsCmd.AddCommand(groupsListCmd)
	groupsCmd.AddCommand(groupsCreateCmd)
	groupsCmd.AddCommand(groupsMembersCmd)
	groupsCmd.AddCommand(groupsRemoveMemberCmd)
	rootCmd.AddCommand(groupsCmd)
}

func runGroupsList(ctx context.Context, w io.Writer) int {
	c, _, _, err := setup()
	if err != nil {
		return reportError(w, err)
	}

	groups, err := c.MyGroups(ctx)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(groups, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(groups) == 0 {
		fmt.Fprintln(w, "No study groups yet. Create one with 'skillsync groups create'.")
		return 0
	}
	fmt.Fprintln(w, formatGroupsHuman(groups))
	return 0
}

func runGroupsCreate(ctx context.Context, w io.Writer, name, description string) int {
	if name == "" {
		fmt.Fprintln(w, "Provide --name.")
		return 1
	}

	c, _, _, err := setup()
	if err != nil {
		return reportError(w, err)
	}

	group, err := c.CreateGroup(ctx, name, description)
	if err != nil {
		return reportError(w, err)
	}

	fmt.Fprintf(w, "Created group %s (%s)\n", group.Name, group.GroupID)
	return 0
}

func runGroupsMembers(ctx context.Context, w io.Writer, groupID string) int {
	c, _, _, err := setup()
	if err != nil {
		return reportError(w, err)
	}

	members, err := c.GroupMembers(ctx, groupID)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(members, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(members) == 0 {
		fmt.Fprintln(w, "No members.")
		return 0
	}
	for _, m := range members {
		fmt.Fprintf(w, "%-36s  %-8s  %-8s  %s\n", m.MembershipID, m.Role, m.Status, m.Email)
	}
	return 0
}

func runGroupsRemoveMember(ctx context.Context, w io.Writer, groupID, membershipID string) int {
	c, _, _, err := setup()
	if err != nil {
		return reportError(w, err)
	}

	err = c.RemoveMember(ctx, groupID, membershipID)
	if client.IsNotFound(err) {
		// Already gone; the end state is what the user asked for.
		fmt.Fprintln(w, "Member already removed.")
		return 0
	}
	if err != nil {
		return reportError(w, err)
	}

	fmt.Fprintln(w, "Member removed.")
	return 0
}

// formatGroupsHuman formats the group list as an aligned table
func formatGroupsHuman(groups []client.Group) string {
	var sb strings.Builder
	for _, g := range groups {
		line := fmt.Sprintf("%-36s  %-8s  %s", g.GroupID, g.Role, g.Name)
		if g.Description != "" {
			line += "  - " + g.Description
		}
		sb.WriteString(line + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
