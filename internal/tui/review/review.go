// ABOUTME: Study session screen rendering the review engine state
// ABOUTME: Space reveals the answer, number keys grade, r retries or restarts

package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dykkyongdo/SkillSync-sub000/internal/client"
	"github.com/dykkyongdo/SkillSync-sub000/internal/study"
	"github.com/dykkyongdo/SkillSync-sub000/internal/tui/styles"
)

// BackMsg is sent when the user leaves the study session.
type BackMsg struct{}

// AuthExpiredMsg is sent when a study request came back unauthorized.
type AuthExpiredMsg struct{}

// refreshMsg is sent when an engine operation settles.
type refreshMsg struct {
	err error
}

// Review drives one study session for a chosen set.
type Review struct {
	engine  *study.Engine
	setName string
	spin    spinner.Model
	width   int
}

// New creates the study screen. The engine starts in Loading; Init kicks off
// the due-card fetch.
func New(engine *study.Engine, setName string) *Review {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)
	return &Review{engine: engine, setName: setName, spin: sp}
}

// Init implements tea.Model
func (r *Review) Init() tea.Cmd {
	return tea.Batch(r.spin.Tick, r.fetch())
}

func (r *Review) fetch() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{err: r.engine.Fetch(context.Background())}
	}
}

func (r *Review) restart() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{err: r.engine.Restart(context.Background())}
	}
}

func (r *Review) grade(cardID string, g study.Grade) tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{err: r.engine.Grade(context.Background(), cardID, g)}
	}
}

// Update implements tea.Model
func (r *Review) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		return r, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		r.spin, cmd = r.spin.Update(msg)
		return r, cmd

	case refreshMsg:
		if errors.Is(msg.err, client.ErrAuthExpired) {
			return r, func() tea.Msg { return AuthExpiredMsg{} }
		}
		// Other failures are already reflected in the engine snapshot.
		return r, nil

	case tea.KeyMsg:
		return r.handleKey(msg)
	}

	return r, nil
}

func (r *Review) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := r.engine.Snapshot()

	switch msg.String() {
	case "esc", "b":
		return r, func() tea.Msg { return BackMsg{} }

	case " ", "enter":
		if snap.State == study.StateReady {
			r.engine.Reveal()
		}
		return r, nil

	case "1", "2", "3", "4":
		if snap.State != study.StateRevealed || snap.Current == nil {
			return r, nil
		}
		grade := study.Grade(int(msg.String()[0] - '1'))
		return r, r.grade(snap.Current.FlashcardID, grade)

	case "r":
		switch snap.State {
		case study.StateError:
			return r, r.fetch()
		case study.StateComplete:
			return r, r.restart()
		}
	}

	return r, nil
}

// View implements tea.Model
func (r *Review) View() string {
	snap := r.engine.Snapshot()
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Studying " + r.setName))
	sb.WriteString("\n\n")

	switch snap.State {
	case study.StateLoading:
		sb.WriteString(r.spin.View() + " Loading due cards...")

	case study.StateComplete:
		sb.WriteString(styles.StatusOK.Render("Session complete!"))
		sb.WriteString("\n\n")
		sb.WriteString(styles.Help.Render("r Study again  esc Back"))

	case study.StateError:
		sb.WriteString(styles.StatusError.Render("Error: " + snap.Err))
		sb.WriteString("\n\n")
		sb.WriteString(styles.Help.Render("r Retry  esc Back"))

	default:
		sb.WriteString(r.viewCard(snap))
	}

	return sb.String()
}

func (r *Review) viewCard(snap study.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("Card %d of %d", snap.Cursor+1, snap.Total)))
	sb.WriteString("\n")
	sb.WriteString(styles.ProgressBar(snap.Cursor, snap.Total, 30))
	sb.WriteString("\n\n")

	if snap.Current != nil {
		sb.WriteString(styles.QuestionStyle.Render(snap.Current.Question))
		sb.WriteString("\n\n")
		if snap.ShowAnswer {
			sb.WriteString(styles.AnswerStyle.Render(snap.Current.Answer))
			sb.WriteString("\n\n")
		}
	}

	switch snap.State {
	case study.StateReady:
		sb.WriteString(styles.Help.Render("space Reveal answer  esc Back"))
	case study.StateRevealed:
		sb.WriteString(styles.Help.Render("1 Again  2 Hard  3 Good  4 Easy  esc Back"))
	case study.StateSubmitting:
		sb.WriteString(r.spin.View() + " Saving review...")
	}

	return sb.String()
}
