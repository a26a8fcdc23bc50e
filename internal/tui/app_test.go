// ABOUTME: Integration tests for the TUI app
// ABOUTME: Tests screen routing, auth expiry handling and view content

package tui

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dykkyongdo/SkillSync-sub000/internal/client"
	"github.com/dykkyongdo/SkillSync-sub000/internal/session"
	"github.com/dykkyongdo/SkillSync-sub000/internal/tui/picker"
)

func testSession(t *testing.T, loggedIn bool) *session.Manager {
	t.Helper()
	sess := session.NewManager(session.NewStore(t.TempDir()))
	if loggedIn {
		payload, _ := json.Marshal(map[string]interface{}{"sub": "tester@example.com", "exp": time.Now().Add(time.Hour).Unix()})
		token := "h." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
		if err := sess.Login(token); err != nil {
			t.Fatalf("login failed: %v", err)
		}
	}
	return sess
}

func newTestApp(t *testing.T, loggedIn bool) *App {
	t.Helper()
	sess := testSession(t, loggedIn)
	c := client.New("http://localhost:8080", sess)
	return New(c, sess, 10)
}

func TestAppInitialScreen_Unauthenticated(t *testing.T) {
	app := newTestApp(t, false)
	if app.screen != ScreenLogin {
		t.Errorf("expected login screen for unauthenticated session, got %d", app.screen)
	}
	if app.loginScreen == nil {
		t.Error("expected login screen to be initialized")
	}
}

func TestAppInitialScreen_Authenticated(t *testing.T) {
	app := newTestApp(t, true)
	if app.screen != ScreenGroups {
		t.Errorf("expected group screen for authenticated session, got %d", app.screen)
	}
}

func TestAppGroupsLoadedMsg(t *testing.T) {
	app := newTestApp(t, true)

	msg := groupsLoadedMsg{groups: []client.Group{
		{GroupID: "g1", Name: "Go study", Role: "ADMIN"},
		{GroupID: "g2", Name: "Spanish", Role: "MEMBER"},
	}}
	updated, _ := app.Update(msg)

	result := updated.(*App)
	if result.screen != ScreenGroups {
		t.Errorf("expected group screen, got %d", result.screen)
	}
	if result.groupPicker == nil {
		t.Fatal("expected group picker to be created")
	}
	if !strings.Contains(result.groupPicker.View(), "Go study") {
		t.Error("expected group name in picker view")
	}
}

func TestAppSetsLoadedMsg(t *testing.T) {
	app := newTestApp(t, true)
	app.groupName = "Go study"

	msg := setsLoadedMsg{sets: []client.FlashcardSet{
		{ID: "s1", Title: "Concurrency", Description: "goroutines and channels"},
	}}
	updated, _ := app.Update(msg)

	result := updated.(*App)
	if result.screen != ScreenSets {
		t.Errorf("expected sets screen, got %d", result.screen)
	}
	if result.setPicker == nil {
		t.Fatal("expected set picker to be created")
	}
}

func TestAppChoosingSetStartsStudy(t *testing.T) {
	app := newTestApp(t, true)
	app.screen = ScreenSets

	updated, cmd := app.Update(picker.ChosenMsg{Item: picker.Item{ID: "s1", Title: "Concurrency"}})

	result := updated.(*App)
	if result.screen != ScreenStudy {
		t.Errorf("expected study screen, got %d", result.screen)
	}
	if result.engine == nil {
		t.Error("expected study engine to be created")
	}
	if result.reviewView == nil {
		t.Error("expected review screen to be created")
	}
	if cmd == nil {
		t.Error("expected init command to fetch due cards")
	}
}

func TestAppAuthExpiredReturnsToLogin(t *testing.T) {
	app := newTestApp(t, true)
	app.screen = ScreenSets

	updated, _ := app.Update(authExpiredMsg{})

	result := updated.(*App)
	if result.screen != ScreenLogin {
		t.Errorf("expected login screen after auth expiry, got %d", result.screen)
	}
	if result.loginScreen == nil {
		t.Fatal("expected login screen to be created")
	}
	if !strings.Contains(result.loginScreen.View(), "expired") {
		t.Error("expected session-expired notice on login screen")
	}
}

func TestAppAuthExpiredWhileStudyingClosesEngine(t *testing.T) {
	app := newTestApp(t, true)
	app.screen = ScreenSets
	updated, _ := app.Update(picker.ChosenMsg{Item: picker.Item{ID: "s1", Title: "Concurrency"}})
	app = updated.(*App)

	updated, _ = app.Update(authExpiredMsg{})
	result := updated.(*App)

	if result.engine != nil {
		t.Error("expected engine to be torn down on auth expiry")
	}
	if result.screen != ScreenLogin {
		t.Errorf("expected login screen, got %d", result.screen)
	}
}

func TestAppAuthExpiredOnLoginScreenIsAbsorbed(t *testing.T) {
	app := newTestApp(t, false)

	updated, _ := app.Update(authExpiredMsg{})
	result := updated.(*App)

	if result.screen != ScreenLogin {
		t.Errorf("expected to stay on login screen, got %d", result.screen)
	}
	// The fresh login form must not be replaced by an expired-session one.
	if strings.Contains(result.loginScreen.View(), "expired") {
		t.Error("expected no expiry notice when never signed in")
	}
}

func TestAppViewContainsBranding(t *testing.T) {
	app := newTestApp(t, true)
	app.width = 100
	app.height = 40

	view := app.View()
	if !strings.Contains(view, "SkillSync") {
		t.Error("expected view to contain 'SkillSync'")
	}
	if !strings.Contains(view, "tester@example.com") {
		t.Error("expected header to show the signed-in user")
	}
}
