// ABOUTME: Root bubbletea model for the SkillSync TUI
// ABOUTME: Routes between login, group/set pickers, study session and card browser

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dykkyongdo/SkillSync-sub000/internal/client"
	"github.com/dykkyongdo/SkillSync-sub000/internal/guard"
	"github.com/dykkyongdo/SkillSync-sub000/internal/session"
	"github.com/dykkyongdo/SkillSync-sub000/internal/study"
	"github.com/dykkyongdo/SkillSync-sub000/internal/tui/cards"
	"github.com/dykkyongdo/SkillSync-sub000/internal/tui/login"
	"github.com/dykkyongdo/SkillSync-sub000/internal/tui/picker"
	"github.com/dykkyongdo/SkillSync-sub000/internal/tui/review"
	"github.com/dykkyongdo/SkillSync-sub000/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenGroups
	ScreenSets
	ScreenStudy
	ScreenCards
)

const minTerminalWidth = 80

// authDoneMsg is sent when a login, register or demo request settles.
type authDoneMsg struct {
	token string
	err   error
}

// groupsLoadedMsg carries the user's groups.
type groupsLoadedMsg struct {
	groups []client.Group
	err    error
}

// setsLoadedMsg carries the flashcard sets of the chosen group.
type setsLoadedMsg struct {
	sets []client.FlashcardSet
	err  error
}

// authExpiredMsg forces the app back to the login screen.
type authExpiredMsg struct{}

// App is the root model for the TUI
type App struct {
	client     *client.Client
	sess       *session.Manager
	guard      *guard.Guard
	studyLimit int
	screen     Screen
	width      int
	height     int
	err        error

	groupName string
	setName   string
	setID     string

	// Child models
	loginScreen *login.Login
	groupPicker *picker.Picker
	setPicker   *picker.Picker
	reviewView  *review.Review
	cardView    *cards.Cards

	engine *study.Engine
}

// New creates the TUI application. A hydrated, authenticated session skips
// straight to the group list.
func New(apiClient *client.Client, sess *session.Manager, studyLimit int) *App {
	a := &App{
		client:     apiClient,
		sess:       sess,
		guard:      guard.New(),
		studyLimit: studyLimit,
		screen:     ScreenLogin,
	}
	if sess.Authenticated() {
		a.screen = ScreenGroups
	} else {
		a.loginScreen = login.New("")
	}
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.screen == ScreenGroups {
		return a.loadGroups()
	}
	return a.loginScreen.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.forward(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if msg.String() == "q" && (a.screen == ScreenGroups || a.screen == ScreenSets) {
			return a, tea.Quit
		}
		if msg.String() == "r" && a.screen == ScreenGroups {
			a.err = nil
			return a, a.loadGroups()
		}
		if msg.String() == "c" && a.screen == ScreenSets && a.setPicker != nil {
			if item, ok := a.setPicker.Selected(); ok {
				return a.openCards(item)
			}
			return a, nil
		}
		return a.forward(msg)

	case login.SubmitMsg:
		return a, a.authenticate(msg)

	case login.CancelledMsg:
		return a, tea.Quit

	case authDoneMsg:
		return a.handleAuthDone(msg)

	case groupsLoadedMsg:
		return a.handleGroupsLoaded(msg)

	case setsLoadedMsg:
		return a.handleSetsLoaded(msg)

	case picker.ChosenMsg:
		return a.handleChosen(msg)

	case picker.BackMsg:
		return a.handleBack()

	case review.BackMsg:
		a.closeEngine()
		a.screen = ScreenSets
		a.reviewView = nil
		return a, nil

	case cards.BackMsg:
		a.screen = ScreenSets
		a.cardView = nil
		return a, nil

	case review.AuthExpiredMsg, cards.AuthExpiredMsg, authExpiredMsg:
		return a.handleAuthExpired()

	default:
		return a.forward(msg)
	}
}

// forward routes a message to the active child model.
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var model tea.Model
	var cmd tea.Cmd

	switch a.screen {
	case ScreenLogin:
		if a.loginScreen == nil {
			return a, nil
		}
		model, cmd = a.loginScreen.Update(msg)
		a.loginScreen = model.(*login.Login)
	case ScreenGroups:
		if a.groupPicker == nil {
			return a, nil
		}
		model, cmd = a.groupPicker.Update(msg)
		a.groupPicker = model.(*picker.Picker)
	case ScreenSets:
		if a.setPicker == nil {
			return a, nil
		}
		model, cmd = a.setPicker.Update(msg)
		a.setPicker = model.(*picker.Picker)
	case ScreenStudy:
		if a.reviewView == nil {
			return a, nil
		}
		model, cmd = a.reviewView.Update(msg)
		a.reviewView = model.(*review.Review)
	case ScreenCards:
		if a.cardView == nil {
			return a, nil
		}
		model, cmd = a.cardView.Update(msg)
		a.cardView = model.(*cards.Cards)
	}

	return a, cmd
}

func (a *App) authenticate(msg login.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		var resp *client.AuthResponse
		var err error
		switch msg.Mode {
		case login.ModeRegister:
			resp, err = a.client.Register(context.Background(), msg.Email, msg.Password)
		case login.ModeDemo:
			resp, err = a.client.TestAccount(context.Background())
		default:
			resp, err = a.client.Login(context.Background(), msg.Email, msg.Password)
		}
		if err != nil {
			return authDoneMsg{err: err}
		}
		return authDoneMsg{token: resp.Token}
	}
}

func (a *App) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.loginScreen = login.New(msg.err.Error())
		return a, a.loginScreen.Init()
	}
	if err := a.sess.Login(msg.token); err != nil {
		a.loginScreen = login.New(err.Error())
		return a, a.loginScreen.Init()
	}
	a.loginScreen = nil
	a.screen = ScreenGroups
	return a, a.loadGroups()
}

func (a *App) loadGroups() tea.Cmd {
	return func() tea.Msg {
		groups, err := a.client.MyGroups(context.Background())
		return groupsLoadedMsg{groups: groups, err: err}
	}
}

func (a *App) handleGroupsLoaded(msg groupsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return a.handleLoadError(msg.err)
	}
	items := make([]picker.Item, len(msg.groups))
	for i, g := range msg.groups {
		items[i] = picker.Item{ID: g.GroupID, Title: g.Name, Desc: g.Role}
	}
	a.groupPicker = picker.New("Your study groups", "No groups yet. Create one with the CLI.", items)
	a.screen = ScreenGroups
	return a, nil
}

func (a *App) loadSets(groupID string) tea.Cmd {
	return func() tea.Msg {
		sets, err := a.client.GroupSets(context.Background(), groupID)
		return setsLoadedMsg{sets: sets, err: err}
	}
}

func (a *App) handleSetsLoaded(msg setsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return a.handleLoadError(msg.err)
	}
	items := make([]picker.Item, len(msg.sets))
	for i, s := range msg.sets {
		items[i] = picker.Item{ID: s.ID, Title: s.Title, Desc: s.Description}
	}
	a.setPicker = picker.New("Flashcard sets in "+a.groupName, "No sets in this group yet.", items)
	a.screen = ScreenSets
	return a, nil
}

func (a *App) handleChosen(msg picker.ChosenMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenGroups:
		a.groupName = msg.Item.Title
		return a, a.loadSets(msg.Item.ID)
	case ScreenSets:
		a.setID = msg.Item.ID
		a.setName = msg.Item.Title
		a.engine = study.New(a.client, a.setID, a.studyLimit)
		a.reviewView = review.New(a.engine, a.setName)
		a.screen = ScreenStudy
		return a, a.reviewView.Init()
	}
	return a, nil
}

func (a *App) openCards(item picker.Item) (tea.Model, tea.Cmd) {
	a.setID = item.ID
	a.setName = item.Title
	a.cardView = cards.New(a.client, a.guard, a.setID, a.setName)
	a.screen = ScreenCards
	return a, a.cardView.Init()
}

func (a *App) handleBack() (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenGroups:
		return a, tea.Quit
	case ScreenSets:
		a.screen = ScreenGroups
		a.setPicker = nil
		return a, nil
	}
	return a, nil
}

func (a *App) handleLoadError(err error) (tea.Model, tea.Cmd) {
	if err == client.ErrAuthExpired {
		return a.handleAuthExpired()
	}
	a.err = err
	return a, nil
}

// handleAuthExpired tears down any live session state and returns to the
// login screen with a notice. Repeated expiry signals are absorbed; the user
// is redirected once.
func (a *App) handleAuthExpired() (tea.Model, tea.Cmd) {
	a.closeEngine()
	if a.screen == ScreenLogin {
		return a, nil
	}
	a.reviewView = nil
	a.cardView = nil
	a.groupPicker = nil
	a.setPicker = nil
	a.loginScreen = login.New("Your session has expired. Please sign in again.")
	a.screen = ScreenLogin
	return a, a.loginScreen.Init()
}

func (a *App) closeEngine() {
	if a.engine != nil {
		a.engine.Close()
		a.engine = nil
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		content = a.childView(a.loginScreen)
	case ScreenGroups:
		if a.err != nil {
			content = styles.StatusError.Render("Error: " + a.err.Error())
		} else if a.groupPicker == nil {
			content = styles.Subtitle.Render("Loading groups...")
		} else {
			content = a.groupPicker.View()
		}
	case ScreenSets:
		content = a.childView(a.setPicker)
	case ScreenStudy:
		content = a.childView(a.reviewView)
	case ScreenCards:
		content = a.childView(a.cardView)
	}

	return a.renderHeader() + "\n\n" + content + "\n" + a.renderFooter()
}

func (a *App) childView(m tea.Model) string {
	if m == nil {
		return ""
	}
	return m.View()
}

// renderHeader creates the header bar with branding and the signed-in user
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := " " + titleStyle.Render("SkillSync")

	rightText := ""
	if subject := a.sess.Current().Subject; subject != "" && a.screen != ScreenLogin {
		rightText = contextStyle.Render(subject) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts per screen
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenLogin:
		shortcuts = []string{"↑↓ Navigate", "Enter Confirm", "Esc Back"}
	case ScreenGroups:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "r Refresh", "q Quit"}
	case ScreenSets:
		shortcuts = []string{"Enter Study", "c Cards", "Esc Back", "q Quit"}
	case ScreenStudy:
		shortcuts = []string{"Space Reveal", "1-4 Grade", "Esc Back"}
	case ScreenCards:
		shortcuts = []string{"a Add", "d Delete", "Esc Back"}
	}

	var styled []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styled = append(styled, s)
		}
	}

	leftText := " " + strings.Join(styled, "  ")
	leftPlain := " " + strings.Join(shortcuts, "  ")

	fillWidth := width - 4 - lipgloss.Width(leftPlain)
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯"
	return borderStyle.Render(footer)
}

// Run starts the TUI. The gateway's expiry callback is wired into the
// program so a 401 anywhere lands the user back on the login screen.
func Run(apiClient *client.Client, sess *session.Manager, studyLimit int) error {
	app := New(apiClient, sess, studyLimit)

	p := tea.NewProgram(app, tea.WithAltScreen())
	apiClient.OnAuthExpired(func() {
		go p.Send(authExpiredMsg{})
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
