// ABOUTME: Tests for the review session state machine
// ABOUTME: Covers transitions, grade outcomes, stale-response discard and restart

package study

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dykkyongdo/SkillSync-sub000/internal/client"
)

// stubAPI implements API with pluggable behavior per test.
type stubAPI struct {
	due    func(ctx context.Context, setID string, limit int) ([]client.DueCard, error)
	review func(ctx context.Context, setID, cardID string, grade int) error
}

func (s *stubAPI) DueCards(ctx context.Context, setID string, limit int) ([]client.DueCard, error) {
	return s.due(ctx, setID, limit)
}

func (s *stubAPI) SubmitReview(ctx context.Context, setID, cardID string, grade int) error {
	return s.review(ctx, setID, cardID, grade)
}

func twoCards() []client.DueCard {
	return []client.DueCard{
		{FlashcardID: "c1", Question: "Q1", Answer: "A1"},
		{FlashcardID: "c2", Question: "Q2", Answer: "A2"},
	}
}

func readyEngine(t *testing.T, cards []client.DueCard) *Engine {
	t.Helper()
	api := &stubAPI{
		due: func(ctx context.Context, setID string, limit int) ([]client.DueCard, error) {
			return cards, nil
		},
		review: func(ctx context.Context, setID, cardID string, grade int) error {
			return nil
		},
	}
	e := New(api, "set-1", 10)
	if err := e.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	return e
}

func TestFetch_NonEmptyQueue(t *testing.T) {
	e := readyEngine(t, twoCards())

	snap := e.Snapshot()
	if snap.State != StateReady {
		t.Errorf("expected state ready, got %s", snap.State)
	}
	if snap.Cursor != 0 || snap.Total != 2 {
		t.Errorf("expected cursor 0 of 2, got %d of %d", snap.Cursor, snap.Total)
	}
	if snap.ShowAnswer {
		t.Error("expected answer hidden after fetch")
	}
	if snap.Current == nil || snap.Current.FlashcardID != "c1" {
		t.Errorf("expected current card c1, got %+v", snap.Current)
	}
}

func TestFetch_EmptyQueueCompletesImmediately(t *testing.T) {
	e := readyEngine(t, nil)

	snap := e.Snapshot()
	if snap.State != StateComplete {
		t.Errorf("expected state complete for empty batch, got %s", snap.State)
	}
}

func TestFetch_FailureIsRetriable(t *testing.T) {
	attempts := 0
	api := &stubAPI{
		due: func(ctx context.Context, setID string, limit int) ([]client.DueCard, error) {
			attempts++
			if attempts == 1 {
				return nil, errors.New("backend error: boom")
			}
			return twoCards(), nil
		},
	}
	e := New(api, "set-1", 10)

	if err := e.Fetch(context.Background()); err == nil {
		t.Fatal("expected fetch error, got nil")
	}
	snap := e.Snapshot()
	if snap.State != StateError {
		t.Fatalf("expected state error, got %s", snap.State)
	}
	if snap.Err != "backend error: boom" {
		t.Errorf("expected error message to be carried, got %q", snap.Err)
	}

	if err := e.Fetch(context.Background()); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if e.Snapshot().State != StateReady {
		t.Errorf("expected state ready after retry, got %s", e.Snapshot().State)
	}
}

func TestFetch_InvalidFromReady(t *testing.T) {
	e := readyEngine(t, twoCards())
	if err := e.Fetch(context.Background()); err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestReveal_Idempotent(t *testing.T) {
	e := readyEngine(t, twoCards())

	if err := e.Reveal(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Snapshot().State != StateRevealed || !e.Snapshot().ShowAnswer {
		t.Error("expected revealed state with answer shown")
	}

	// Second reveal is a no-op, not an error.
	if err := e.Reveal(); err != nil {
		t.Errorf("expected idempotent reveal, got %v", err)
	}
	if e.Snapshot().State != StateRevealed {
		t.Errorf("expected state to stay revealed, got %s", e.Snapshot().State)
	}
}

func TestReveal_InvalidBeforeFetch(t *testing.T) {
	api := &stubAPI{}
	e := New(api, "set-1", 10)
	if err := e.Reveal(); err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestGrade_SuccessAdvancesCursor(t *testing.T) {
	var gotCard string
	var gotGrade int
	api := &stubAPI{
		due: func(ctx context.Context, setID string, limit int) ([]client.DueCard, error) {
			return twoCards(), nil
		},
		review: func(ctx context.Context, setID, cardID string, grade int) error {
			gotCard = cardID
			gotGrade = grade
			return nil
		},
	}
	e := New(api, "set-1", 10)
	e.Fetch(context.Background())
	e.Reveal()

	if err := e.Grade(context.Background(), "c1", GradeGood); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotCard != "c1" || gotGrade != 2 {
		t.Errorf("expected review of c1 with grade 2, got %s/%d", gotCard, gotGrade)
	}

	snap := e.Snapshot()
	if snap.State != StateReady {
		t.Errorf("expected state ready after grade, got %s", snap.State)
	}
	if snap.Current == nil || snap.Current.FlashcardID != "c2" {
		t.Errorf("expected cursor at c2, got %+v", snap.Current)
	}
	if snap.ShowAnswer {
		t.Error("expected answer hidden for next card")
	}
}

func TestGrade_FailureHoldsState(t *testing.T) {
	api := &stubAPI{
		due: func(ctx context.Context, setID string, limit int) ([]client.DueCard, error) {
			return twoCards(), nil
		},
		review: func(ctx context.Context, setID, cardID string, grade int) error {
			return errors.New("backend error: review rejected")
		},
	}
	e := New(api, "set-1", 10)
	e.Fetch(context.Background())
	e.Reveal()

	if err := e.Grade(context.Background(), "c1", GradeHard); err == nil {
		t.Fatal("expected grade error, got nil")
	}

	// The scheduler never recorded the review, so the card must not advance.
	snap := e.Snapshot()
	if snap.State != StateError {
		t.Errorf("expected state error, got %s", snap.State)
	}
	if snap.Cursor != 0 || snap.Total != 2 {
		t.Errorf("expected queue unchanged at cursor 0 of 2, got %d of %d", snap.Cursor, snap.Total)
	}
	if snap.Current == nil || snap.Current.FlashcardID != "c1" {
		t.Errorf("expected cursor still at c1, got %+v", snap.Current)
	}
}

func TestGrade_RejectsNonCurrentCard(t *testing.T) {
	reviewed := false
	api := &stubAPI{
		due: func(ctx context.Context, setID string, limit int) ([]client.DueCard, error) {
			return twoCards(), nil
		},
		review: func(ctx context.Context, setID, cardID string, grade int) error {
			reviewed = true
			return nil
		},
	}
	e := New(api, "set-1", 10)
	e.Fetch(context.Background())
	e.Reveal()

	if err := e.Grade(context.Background(), "c2", GradeEasy); err != ErrNotCurrentCard {
		t.Fatalf("expected ErrNotCurrentCard, got %v", err)
	}
	if reviewed {
		t.Error("expected no review call for non-current card")
	}
	if e.Snapshot().State != StateRevealed {
		t.Errorf("expected state unchanged, got %s", e.Snapshot().State)
	}
}

func TestGrade_InvalidBeforeReveal(t *testing.T) {
	e := readyEngine(t, twoCards())
	if err := e.Grade(context.Background(), "c1", GradeGood); err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestGrade_LastCardCompletesSession(t *testing.T) {
	for _, n := range []int{1, 3, 7} {
		cards := make([]client.DueCard, n)
		for i := range cards {
			cards[i] = client.DueCard{FlashcardID: string(rune('a' + i)), Question: "Q", Answer: "A"}
		}
		e := readyEngine(t, cards)

		for i := 0; i < n; i++ {
			if err := e.Reveal(); err != nil {
				t.Fatalf("n=%d reveal %d failed: %v", n, i, err)
			}
			current := e.Snapshot().Current
			if err := e.Grade(context.Background(), current.FlashcardID, GradeGood); err != nil {
				t.Fatalf("n=%d grade %d failed: %v", n, i, err)
			}
		}

		if e.Snapshot().State != StateComplete {
			t.Errorf("n=%d: expected complete after %d grades, got %s", n, n, e.Snapshot().State)
		}
	}
}

func TestRestart_FromComplete(t *testing.T) {
	fetches := 0
	api := &stubAPI{
		due: func(ctx context.Context, setID string, limit int) ([]client.DueCard, error) {
			fetches++
			if fetches == 1 {
				return nil, nil
			}
			return twoCards(), nil
		},
	}
	e := New(api, "set-1", 10)
	e.Fetch(context.Background())
	if e.Snapshot().State != StateComplete {
		t.Fatalf("expected complete, got %s", e.Snapshot().State)
	}

	if err := e.Restart(context.Background()); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if e.Snapshot().State != StateReady {
		t.Errorf("expected ready after restart, got %s", e.Snapshot().State)
	}
	if fetches != 2 {
		t.Errorf("expected 2 fetches, got %d", fetches)
	}
}

func TestRestart_InvalidFromReady(t *testing.T) {
	e := readyEngine(t, twoCards())
	if err := e.Restart(context.Background()); err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestFetch_StaleResponseDiscarded(t *testing.T) {
	// Two overlapping fetches: the first (older) response arrives after the
	// second. Only the second may be applied.
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	call := 0
	var mu sync.Mutex

	api := &stubAPI{
		due: func(ctx context.Context, setID string, limit int) ([]client.DueCard, error) {
			mu.Lock()
			call++
			n := call
			mu.Unlock()
			if n == 1 {
				close(firstStarted)
				<-releaseFirst
				return []client.DueCard{{FlashcardID: "stale", Question: "old", Answer: "old"}}, nil
			}
			return []client.DueCard{{FlashcardID: "fresh", Question: "new", Answer: "new"}}, nil
		},
	}
	e := New(api, "set-1", 10)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.Fetch(context.Background())
	}()
	<-firstStarted

	// Second fetch supersedes the first and completes immediately.
	if err := e.Fetch(context.Background()); err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}

	// Now let the stale response arrive.
	close(releaseFirst)
	wg.Wait()

	snap := e.Snapshot()
	if snap.Current == nil || snap.Current.FlashcardID != "fresh" {
		t.Errorf("expected fresh result to win, got %+v", snap.Current)
	}
	if snap.State != StateReady {
		t.Errorf("expected state ready, got %s", snap.State)
	}
}

func TestClose_DiscardsInFlightFetch(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &stubAPI{
		due: func(ctx context.Context, setID string, limit int) ([]client.DueCard, error) {
			close(started)
			<-release
			return twoCards(), nil
		},
	}
	e := New(api, "set-1", 10)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.Fetch(context.Background())
	}()
	<-started
	e.Close()
	close(release)
	wg.Wait()

	snap := e.Snapshot()
	if snap.Total != 0 {
		t.Error("expected in-flight result to be discarded after close")
	}
	if snap.State != StateLoading {
		t.Errorf("expected no transition after close, got %s", snap.State)
	}
}
