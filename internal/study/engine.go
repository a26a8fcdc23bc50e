// ABOUTME: Review session state machine driving one timed study run
// ABOUTME: Fetches due cards, reveals answers, submits grades and advances

package study

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dykkyongdo/SkillSync-sub000/internal/client"
)

// State is the engine's position in the review lifecycle.
type State int

const (
	StateLoading State = iota
	StateReady
	StateRevealed
	StateSubmitting
	StateComplete
	StateError
)

// String returns the state name for logs and tests.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateRevealed:
		return "revealed"
	case StateSubmitting:
		return "submitting"
	case StateComplete:
		return "complete"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Grade is the four-level recall quality signal consumed by the remote
// spaced-repetition scheduler.
type Grade int

const (
	GradeAgain Grade = iota
	GradeHard
	GradeGood
	GradeEasy
)

// String returns the grade label shown to the user.
func (g Grade) String() string {
	switch g {
	case GradeAgain:
		return "Again"
	case GradeHard:
		return "Hard"
	case GradeGood:
		return "Good"
	case GradeEasy:
		return "Easy"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidTransition is returned when an operation is not valid in the
	// engine's current state.
	ErrInvalidTransition = errors.New("operation not valid in current state")
	// ErrNotCurrentCard is returned when a grade targets a card other than
	// the one at the cursor. The engine state is untouched.
	ErrNotCurrentCard = errors.New("grade does not target the current card")
)

// API is the slice of the SkillSync client the engine consumes.
type API interface {
	DueCards(ctx context.Context, setID string, limit int) ([]client.DueCard, error)
	SubmitReview(ctx context.Context, setID, cardID string, grade int) error
}

// Engine drives one review session for one flashcard set. Cards are never
// reordered; grading always acts on the card at the cursor. Results of
// superseded or post-Close requests are discarded at commit time, so a slow
// response can never overwrite state produced by a newer one.
type Engine struct {
	mu         sync.Mutex
	api        API
	setID      string
	limit      int
	gen        uint64
	closed     bool
	state      State
	queue      []client.DueCard
	cursor     int
	showAnswer bool
	errMsg     string
}

// Snapshot is an immutable view of the engine for rendering.
type Snapshot struct {
	State      State
	Cursor     int
	Total      int
	Current    *client.DueCard
	ShowAnswer bool
	Err        string
}

// New creates an engine for the given set. The session starts in Loading;
// call Fetch to pull the due-card batch.
func New(api API, setID string, limit int) *Engine {
	return &Engine{
		api:   api,
		setID: setID,
		limit: limit,
		state: StateLoading,
	}
}

// Fetch pulls up to limit due cards. Valid from Loading and Error (both are
// re-entrant, so a failed fetch is retried by calling Fetch again). An empty
// batch completes the session immediately; nothing was due.
func (e *Engine) Fetch(ctx context.Context) error {
	return e.fetch(ctx, StateLoading, StateError)
}

// Restart discards the prior queue and re-fetches with the original set and
// limit. Valid from Complete and Error.
func (e *Engine) Restart(ctx context.Context) error {
	return e.fetch(ctx, StateComplete, StateError)
}

func (e *Engine) fetch(ctx context.Context, validFrom ...State) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	valid := false
	for _, s := range validFrom {
		if e.state == s {
			valid = true
			break
		}
	}
	if !valid {
		e.mu.Unlock()
		return ErrInvalidTransition
	}
	e.gen++
	gen := e.gen
	e.state = StateLoading
	e.errMsg = ""
	e.mu.Unlock()

	cards, err := e.api.DueCards(ctx, e.setID, e.limit)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || gen != e.gen {
		// A newer fetch superseded this one, or the session was torn down.
		slog.Debug("Discarding stale due-card response", "set", e.setID)
		return nil
	}
	if err != nil {
		e.state = StateError
		e.errMsg = err.Error()
		return err
	}

	e.queue = cards
	e.cursor = 0
	e.showAnswer = false
	if len(cards) == 0 {
		e.state = StateComplete
		return nil
	}
	e.state = StateReady
	return nil
}

// Reveal shows the answer for the current card. Valid from Ready; calling it
// again while already Revealed is a no-op.
func (e *Engine) Reveal() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case StateReady:
		e.showAnswer = true
		e.state = StateRevealed
		return nil
	case StateRevealed:
		return nil
	default:
		return ErrInvalidTransition
	}
}

// Grade submits the recall grade for the current card. Valid only from
// Revealed and only for the card at the cursor. On success the cursor
// advances (or the session completes after the last card); on failure the
// cursor and queue are untouched, since the remote scheduler never recorded
// the review, and the engine moves to Error.
func (e *Engine) Grade(ctx context.Context, cardID string, grade Grade) error {
	e.mu.Lock()
	if e.state != StateRevealed {
		e.mu.Unlock()
		return ErrInvalidTransition
	}
	if e.queue[e.cursor].FlashcardID != cardID {
		e.mu.Unlock()
		return ErrNotCurrentCard
	}
	e.state = StateSubmitting
	gen := e.gen
	e.mu.Unlock()

	err := e.api.SubmitReview(ctx, e.setID, cardID, int(grade))

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || gen != e.gen {
		return nil
	}
	if err != nil {
		e.state = StateError
		e.errMsg = err.Error()
		return err
	}

	if e.cursor+1 >= len(e.queue) {
		e.state = StateComplete
		return nil
	}
	e.cursor++
	e.showAnswer = false
	e.state = StateReady
	return nil
}

// Close tears the session down. Any in-flight fetch or grade result is
// discarded instead of being applied to a session the user has left.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.gen++
}

// Snapshot returns a copy of the visible session state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := Snapshot{
		State:      e.state,
		Cursor:     e.cursor,
		Total:      len(e.queue),
		ShowAnswer: e.showAnswer,
		Err:        e.errMsg,
	}
	if e.cursor < len(e.queue) && (e.state == StateReady || e.state == StateRevealed || e.state == StateSubmitting || e.state == StateError) {
		card := e.queue[e.cursor]
		snap.Current = &card
	}
	return snap
}
