// ABOUTME: Login, register and logout commands for the skillsync CLI
// ABOUTME: Mints or clears the persisted bearer token

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dykkyongdo/SkillSync-sub000/internal/client"
)

var (
	loginEmail    string
	loginPassword string
	loginDemo     bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session",
	Long: `Sign in to SkillSync and persist the session token for later commands.

Use --demo to mint a throwaway account with seeded sample data.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runLogin(ctx, os.Stdout, loginEmail, loginPassword, loginDemo); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runRegister(ctx, os.Stdout, loginEmail, loginPassword); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runLogout(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	loginCmd.Flags().BoolVar(&loginDemo, "demo", false, "Sign in with a generated demo account")
	registerCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
}

// runLogin signs in and persists the token, returning the exit code.
func runLogin(ctx context.Context, w io.Writer, email, password string, demo bool) int {
	c, sess, _, err := setup()
	if err != nil {
		return reportError(w, err)
	}

	var resp *client.AuthResponse
	if demo {
		resp, err = c.TestAccount(ctx)
	} else {
		if email == "" || password == "" {
			fmt.Fprintln(w, "Provide --email and --password, or use --demo.")
			return 1
		}
		resp, err = c.Login(ctx, email, password)
	}
	if err != nil {
		return reportError(w, err)
	}

	if err := sess.Login(resp.Token); err != nil {
		return reportError(w, err)
	}

	if demo {
		fmt.Fprintf(w, "Signed in with demo account %s (password: %s)\n", resp.Email, resp.Password)
	} else {
		fmt.Fprintf(w, "Signed in as %s\n", sess.Current().Subject)
	}
	return 0
}

// runRegister creates an account, signs in and persists the token.
func runRegister(ctx context.Context, w io.Writer, email, password string) int {
	if email == "" || password == "" {
		fmt.Fprintln(w, "Provide --email and --password.")
		return 1
	}

	c, sess, _, err := setup()
	if err != nil {
		return reportError(w, err)
	}

	resp, err := c.Register(ctx, email, password)
	if err != nil {
		return reportError(w, err)
	}

	if err := sess.Login(resp.Token); err != nil {
		return reportError(w, err)
	}

	fmt.Fprintf(w, "Account created. Signed in as %s\n", sess.Current().Subject)
	return 0
}

// runLogout clears the session from memory and disk.
func runLogout(w io.Writer) int {
	_, sess, _, err := setup()
	if err != nil {
		return reportError(w, err)
	}

	if !sess.Authenticated() {
		fmt.Fprintln(w, "Not signed in.")
		return 0
	}

	if err := sess.Logout(); err != nil {
		return reportError(w, err)
	}

	fmt.Fprintln(w, "Signed out.")
	return 0
}
