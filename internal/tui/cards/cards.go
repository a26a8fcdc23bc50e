// ABOUTME: Flashcard browser for one set with guarded deletion and card entry
// ABOUTME: Removes optimistically, restores by reload when the backend refuses

package cards

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/dykkyongdo/SkillSync-sub000/internal/client"
	"github.com/dykkyongdo/SkillSync-sub000/internal/guard"
	"github.com/dykkyongdo/SkillSync-sub000/internal/tui/styles"
)

// API is the slice of the SkillSync client the browser consumes.
type API interface {
	SetCards(ctx context.Context, setID string) ([]client.Flashcard, error)
	CreateCard(ctx context.Context, setID, question, answer string) (*client.Flashcard, error)
	DeleteCard(ctx context.Context, cardID string) error
}

// BackMsg is sent when the user leaves the browser.
type BackMsg struct{}

// AuthExpiredMsg is sent when a request came back unauthorized.
type AuthExpiredMsg struct{}

type loadedMsg struct{ err error }
type deletedMsg struct{ err error }
type createdMsg struct{ err error }

type mode int

const (
	modeList mode = iota
	modeAdd
)

// listState is the shared card list. Guarded deletes mutate it from command
// goroutines while Update reads it, so access goes through the mutex.
type listState struct {
	mu    sync.Mutex
	api   API
	setID string
	items []client.Flashcard
}

func (s *listState) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.items {
		if c.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *listState) Reload(ctx context.Context) error {
	cards, err := s.api.SetCards(ctx, s.setID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items = cards
	s.mu.Unlock()
	return nil
}

func (s *listState) Items() []client.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]client.Flashcard, len(s.items))
	copy(out, s.items)
	return out
}

// Cards is the flashcard browser screen.
type Cards struct {
	api     API
	guard   *guard.Guard
	setName string
	list    *listState
	cursor  int
	mode    mode
	form    *huh.Form
	notice  string
	loaded  bool

	question string
	answer   string
}

// New creates a browser for the given set. Init triggers the initial load.
func New(api API, g *guard.Guard, setID, setName string) *Cards {
	return &Cards{
		api:     api,
		guard:   g,
		setName: setName,
		list:    &listState{api: api, setID: setID},
	}
}

// Init implements tea.Model
func (c *Cards) Init() tea.Cmd {
	return c.reload()
}

func (c *Cards) reload() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: c.list.Reload(context.Background())}
	}
}

func (c *Cards) deleteCard(id string) tea.Cmd {
	return func() tea.Msg {
		err := c.guard.Delete(context.Background(), id, c.list, func(ctx context.Context) error {
			return c.api.DeleteCard(ctx, id)
		})
		return deletedMsg{err: err}
	}
}

func (c *Cards) createCard(question, answer string) tea.Cmd {
	return func() tea.Msg {
		_, err := c.api.CreateCard(context.Background(), c.list.setID, question, answer)
		return createdMsg{err: err}
	}
}

func (c *Cards) addForm() *huh.Form {
	c.question = ""
	c.answer = ""
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Question").
				CharLimit(500).
				Value(&c.question).
				Validate(required),
			huh.NewInput().
				Title("Answer").
				CharLimit(500).
				Value(&c.answer).
				Validate(required),
		).Title("New flashcard"),
	)
}

// Update implements tea.Model
func (c *Cards) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		c.loaded = true
		return c, c.checkErr(msg.err)

	case deletedMsg:
		if msg.err != nil {
			c.notice = "Delete failed: " + msg.err.Error()
		}
		return c, c.checkErr(msg.err)

	case createdMsg:
		if msg.err != nil {
			c.notice = "Create failed: " + msg.err.Error()
			return c, c.checkErr(msg.err)
		}
		return c, c.reload()

	case tea.KeyMsg:
		c.notice = ""
		if c.mode == modeAdd {
			return c.updateAdd(msg)
		}
		return c.updateList(msg)
	}

	if c.mode == modeAdd && c.form != nil {
		return c.updateAdd(msg)
	}
	return c, nil
}

func (c *Cards) checkErr(err error) tea.Cmd {
	if errors.Is(err, client.ErrAuthExpired) {
		return func() tea.Msg { return AuthExpiredMsg{} }
	}
	return nil
}

func (c *Cards) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := c.list.Items()
	c.clamp(len(items))

	switch msg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(items)-1 {
			c.cursor++
		}
	case "d":
		if len(items) > 0 {
			return c, c.deleteCard(items[c.cursor].ID)
		}
	case "a":
		c.mode = modeAdd
		c.form = c.addForm()
		return c, c.form.Init()
	case "esc", "b":
		return c, func() tea.Msg { return BackMsg{} }
	}

	return c, nil
}

func (c *Cards) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		c.mode = modeList
		c.form = nil
		return c, nil
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		question, answer := c.question, c.answer
		c.mode = modeList
		c.form = nil
		return c, c.createCard(question, answer)
	}

	return c, cmd
}

func (c *Cards) clamp(n int) {
	if c.cursor >= n {
		c.cursor = n - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

// View implements tea.Model
func (c *Cards) View() string {
	if c.mode == modeAdd && c.form != nil {
		return c.form.View()
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Cards in " + c.setName))
	sb.WriteString("\n\n")

	if c.notice != "" {
		sb.WriteString(styles.StatusError.Render(c.notice))
		sb.WriteString("\n\n")
	}

	items := c.list.Items()
	switch {
	case !c.loaded:
		sb.WriteString(styles.Subtitle.Render("Loading..."))
	case len(items) == 0:
		sb.WriteString(styles.Subtitle.Render("No cards yet. Press a to add one."))
	default:
		c.clamp(len(items))
		for i, card := range items {
			line := fmt.Sprintf("%s  %s", card.Question, styles.Subtitle.Render(card.Answer))
			if i == c.cursor {
				sb.WriteString(styles.KeyStyle.Render("> ") + styles.ValueStyle.Render(line))
			} else {
				sb.WriteString("  " + line)
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("a Add  d Delete  esc Back"))
	return sb.String()
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}
