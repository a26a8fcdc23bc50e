// ABOUTME: Flashcard commands for the skillsync CLI
// ABOUTME: Lists, adds and deletes cards in a set

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

	"github.com/dykkyongdo/SkillSync-sub000/internal/client"
)

var (
	cardSetID    string
	cardQuestion string
	cardAnswer   string
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Manage flashcards",
}

var cardsListCmd = &cobra.Command{
	Use:   "list <set-id>",
	Short: "List the cards of a set",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runCardsList(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var cardsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a card to a set",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runCardsAdd(ctx, os.Stdout, cardSetID, cardQuestion, cardAnswer); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var cardsDeleteCmd = &cobra.Command{
	Use:   "delete <card-id>",
	Short: "Delete a card",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runCardsDelete(ctx, os.Stdout, args[0]); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	cardsAddCmd.Flags().StringVar(&cardSetID, "set", "", "Set ID the card belongs to")
	cardsAddCmd.Flags().StringVar(&cardQuestion, "question", "", "Card front")
	cardsAddCmd.Flags().StringVar(&cardAnswer, "answer", "", "Card back")

	cardsCmd.AddCommand(cardsListCmd)
	cardsCmd.AddCommand(cardsAddCmd)
	cardsCmd.AddCommand(cardsDeleteCmd)
	rootCmd.AddCommand(cardsCmd)
}

func runCardsList(ctx context.Context, w io.Writer, setID string) int {
	c, _, _, err := setup()
	if err != nil {
		return reportError(w, err)
	}

	cards, err := c.SetCards(ctx, setID)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(cards, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(cards) == 0 {
		fmt.Fprintln(w, "No cards in this set yet.")
		return 0
	}
	for _, card := range cards {
		fmt.Fprintf(w, "%-36s  %s\n%38s%s\n", card.ID, card.Question, "", card.Answer)
	}
	return 0
}

func runCardsAdd(ctx context.Context, w io.Writer, setID, question, answer string) int {
	if setID == "" || question == "" || answer == "" {
		fmt.Fprintln(w, "Provide --set, --question and --answer.")
		return 1
	}

	c, _, _, err := setup()
	if err != nil {
		return reportError(w, err)
	}

	card, err := c.CreateCard(ctx, setID, question, answer)
	if err != nil {
		return reportError(w, err)
	}

	fmt.Fprintf(w, "Added card %s\n", card.ID)
	return 0
}

func runCardsDelete(ctx context.Context, w io.Writer, cardID string) int {
	c, _, _, err := setup()
	if err != nil {
		return reportError(w, err)
	}

	err = c.DeleteCard(ctx, cardID)
	if client.IsNotFound(err) {
		fmt.Fprintln(w, "Card already deleted.")
		return 0
	}
	if err != nil {
		return reportError(w, err)
	}

	fmt.Fprintln(w, "Card deleted.")
	return 0
}
