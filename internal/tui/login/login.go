// ABOUTME: Login screen as a bubbletea model built on huh forms
// ABOUTME: Two steps, mode selection then credentials, demo mode skips step two

package login

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dykkyongdo/SkillSync-sub000/internal/tui/styles"
)

// Mode selects how the user wants to authenticate.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
	ModeDemo
)

// SubmitMsg is sent when the form finishes. For ModeDemo the credentials
// are empty; the backend mints a throwaway account.
type SubmitMsg struct {
	Mode     Mode
	Email    string
	Password string
}

// CancelledMsg is sent when the user backs out of the login flow.
type CancelledMsg struct{}

// Login collects credentials before the rest of the app is reachable.
type Login struct {
	form   *huh.Form
	step   int
	width  int
	notice string

	mode     Mode
	email    string
	password string
}

// New creates the login screen. A non-empty notice is rendered above the
// form, used for the session-expired banner.
func New(notice string) *Login {
	l := &Login{step: 1, notice: notice}
	l.form = l.modeForm()
	return l
}

func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(styles.Primary).
		SetString("> ")
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true)
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Primary)

	return t
}

func (l *Login) modeForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Mode]().
				Title("Welcome to SkillSync").
				Description("How do you want to sign in?").
				Options(
					huh.NewOption("Sign in", ModeLogin),
					huh.NewOption("Create an account", ModeRegister),
					huh.NewOption("Try a demo account", ModeDemo),
				).
				Value(&l.mode),
		),
	).WithTheme(createTheme())
}

func (l *Login) credentialsForm() *huh.Form {
	title := "Sign in"
	if l.mode == ModeRegister {
		title = "Create an account"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				CharLimit(128).
				Value(&l.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(128).
				Value(&l.password).
				Validate(validatePassword),
		).Title(title),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width

	case tea.KeyMsg:
		if msg.String() == "esc" {
			if l.step == 2 {
				// Back to mode selection
				l.step = 1
				l.form = l.modeForm()
				return l, l.form.Init()
			}
			return l, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		return l.advance()
	}

	return l, cmd
}

func (l *Login) advance() (tea.Model, tea.Cmd) {
	if l.step == 1 {
		if l.mode == ModeDemo {
			return l, func() tea.Msg { return SubmitMsg{Mode: ModeDemo} }
		}
		l.step = 2
		l.form = l.credentialsForm()
		return l, l.form.Init()
	}

	return l, func() tea.Msg {
		return SubmitMsg{Mode: l.mode, Email: l.email, Password: l.password}
	}
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder
	if l.notice != "" {
		sb.WriteString(styles.StatusWarning.Render(l.notice))
		sb.WriteString("\n\n")
	}
	sb.WriteString(l.form.View())
	return sb.String()
}

func validateEmail(s string) error {
	if !strings.Contains(s, "@") {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}
