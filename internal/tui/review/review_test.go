// ABOUTME: Tests for the study session screen
// ABOUTME: Drives the review model with key and refresh messages

package review

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dykkyongdo/SkillSync-sub000/internal/client"
	"github.com/dykkyongdo/SkillSync-sub000/internal/study"
)

type stubAPI struct {
	cards  []client.DueCard
	dueErr error
}

func (s *stubAPI) DueCards(ctx context.Context, setID string, limit int) ([]client.DueCard, error) {
	return s.cards, s.dueErr
}

func (s *stubAPI) SubmitReview(ctx context.Context, setID, cardID string, grade int) error {
	return nil
}

func loadedReview(t *testing.T, api *stubAPI) *Review {
	t.Helper()
	engine := study.New(api, "set-1", 10)
	r := New(engine, "Concurrency")
	msg := r.fetch()()
	model, _ := r.Update(msg)
	return model.(*Review)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestReviewShowsQuestionAfterFetch(t *testing.T) {
	r := loadedReview(t, &stubAPI{cards: []client.DueCard{
		{FlashcardID: "c1", Question: "What is a goroutine?", Answer: "A lightweight thread"},
	}})

	view := r.View()
	if !strings.Contains(view, "What is a goroutine?") {
		t.Error("expected question in view")
	}
	if strings.Contains(view, "A lightweight thread") {
		t.Error("expected answer hidden before reveal")
	}
}

func TestReviewSpaceRevealsAnswer(t *testing.T) {
	r := loadedReview(t, &stubAPI{cards: []client.DueCard{
		{FlashcardID: "c1", Question: "Q", Answer: "the answer"},
	}})

	model, _ := r.Update(keyMsg(" "))
	r = model.(*Review)

	if !strings.Contains(r.View(), "the answer") {
		t.Error("expected answer shown after reveal")
	}
}

func TestReviewGradeKeySubmits(t *testing.T) {
	r := loadedReview(t, &stubAPI{cards: []client.DueCard{
		{FlashcardID: "c1", Question: "Q1", Answer: "A1"},
		{FlashcardID: "c2", Question: "Q2", Answer: "A2"},
	}})

	model, _ := r.Update(keyMsg(" "))
	r = model.(*Review)

	model, cmd := r.Update(keyMsg("3"))
	r = model.(*Review)
	if cmd == nil {
		t.Fatal("expected grade command")
	}

	// Run the grade command and feed the result back.
	model, _ = r.Update(cmd())
	r = model.(*Review)

	if !strings.Contains(r.View(), "Q2") {
		t.Error("expected next question after successful grade")
	}
}

func TestReviewGradeIgnoredBeforeReveal(t *testing.T) {
	r := loadedReview(t, &stubAPI{cards: []client.DueCard{
		{FlashcardID: "c1", Question: "Q", Answer: "A"},
	}})

	_, cmd := r.Update(keyMsg("2"))
	if cmd != nil {
		t.Error("expected grade key to be ignored before reveal")
	}
}

func TestReviewEmptyQueueShowsComplete(t *testing.T) {
	r := loadedReview(t, &stubAPI{})

	if !strings.Contains(r.View(), "complete") {
		t.Error("expected completion message for empty queue")
	}
}

func TestReviewFetchErrorShowsRetry(t *testing.T) {
	r := loadedReview(t, &stubAPI{dueErr: &client.APIError{Status: 500, Message: "boom"}})

	view := r.View()
	if !strings.Contains(view, "boom") {
		t.Error("expected error message in view")
	}
	if !strings.Contains(view, "Retry") {
		t.Error("expected retry hint in view")
	}
}

func TestReviewAuthExpiredBubblesUp(t *testing.T) {
	engine := study.New(&stubAPI{dueErr: client.ErrAuthExpired}, "set-1", 10)
	r := New(engine, "Concurrency")

	msg := r.fetch()()
	_, cmd := r.Update(msg)
	if cmd == nil {
		t.Fatal("expected command after auth failure")
	}
	if _, ok := cmd().(AuthExpiredMsg); !ok {
		t.Fatalf("expected AuthExpiredMsg, got %T", cmd())
	}
}

func TestReviewEscEmitsBack(t *testing.T) {
	r := loadedReview(t, &stubAPI{})

	_, cmd := r.Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("expected command from esc")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Fatalf("expected BackMsg, got %T", cmd())
	}
}
