package app

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/crypto/bcrypt"

	"github.com/marcus/modalkit/internal/signin"
	"github.com/marcus/modalkit/pkg/dom"
	"github.com/marcus/modalkit/pkg/modal"
	"github.com/marcus/modalkit/pkg/tui"
)

func TestToggle(t *testing.T) {
	tests := []struct {
		name     string
		initial  bool
		ops      func(*Toggle)
		wantOpen bool
		wantCall int
	}{
		{"default closed", false, func(*Toggle) {}, false, 0},
		{"default open", true, func(*Toggle) {}, true, 0},
		{"open", false, (*Toggle).Open, true, 1},
		{"open when open", true, (*Toggle).Open, true, 0},
		{"close when closed", false, (*Toggle).Close, false, 0},
		{"toggle twice", false, func(tg *Toggle) { tg.Toggle(); tg.Toggle() }, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			tg := NewToggle(tt.initial, func(bool) { calls++ })
			tt.ops(tg)
			if tg.IsOpen() != tt.wantOpen || calls != tt.wantCall {
				t.Errorf("open=%v calls=%d, want %v and %d", tg.IsOpen(), calls, tt.wantOpen, tt.wantCall)
			}
		})
	}
}

func mountApp(t *testing.T, opts Options) (*dom.Document, *App) {
	t.Helper()
	doc := dom.NewDocument()
	a := New(opts)
	if err := a.Mount(doc); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	doc.Flush()
	t.Cleanup(a.Unmount)
	return doc, a
}

func submit(doc *dom.Document, a *App, email, password string) {
	form := a.SignIn().Form()
	form.Email().SetValue(email)
	form.Password().SetValue(password)
	doc.Click(form.SubmitButton())
}

func TestAppStartsWithSignInOpen(t *testing.T) {
	doc, a := mountApp(t, Options{SignInOpen: true})

	if !a.SignIn().Modal().Element().IsOpen() {
		t.Fatal("sign-in dialog should start open")
	}
	if a.Message().Modal().Element().IsOpen() {
		t.Fatal("message dialog should start closed")
	}
	doc.Advance(modal.DefaultAutoFocusDelay)
	if !a.SignIn().Form().Email().Focused() {
		t.Errorf("focus is on %v, want the email input", doc.ActiveElement())
	}
}

func TestAppSubmitOpensMessage(t *testing.T) {
	doc, a := mountApp(t, Options{SignInOpen: true})

	submit(doc, a, "ada@example.com", "anything")

	if a.SignInState().IsOpen() || a.SignIn().Modal().Element().IsOpen() {
		t.Error("sign-in dialog still open")
	}
	if !a.MessageState().IsOpen() || !a.Message().Modal().Element().IsOpen() {
		t.Fatal("message dialog not opened")
	}
	if !strings.Contains(ansi.Strip(a.Message().Text()), "ada@example.com") {
		t.Errorf("message body = %q", a.Message().Text())
	}
	if !strings.Contains(a.Status(), "ada@example.com") {
		t.Errorf("status = %q", a.Status())
	}

	doc.Advance(modal.DefaultAutoFocusDelay)
	if !a.Message().CloseButton().Focused() {
		t.Errorf("focus is on %v, want the message close button", doc.ActiveElement())
	}

	doc.DispatchKey(dom.KeyEscape, false)
	if a.MessageState().IsOpen() {
		t.Error("Escape did not close the message")
	}
}

func TestAppCredentialCheck(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := map[string]string{"ada@example.com": string(hash)}

	tests := []struct {
		name      string
		email     string
		password  string
		wantOpen  bool
		wantClass string
	}{
		{"right password", "ada@example.com", "correct horse", true, "info"},
		{"email case ignored", "Ada@Example.com", "correct horse", true, "info"},
		{"wrong password", "ada@example.com", "battery staple", false, "error"},
		{"unknown user", "bob@example.com", "correct horse", false, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, a := mountApp(t, Options{SignInOpen: true, Users: users})
			submit(doc, a, tt.email, tt.password)

			if a.MessageState().IsOpen() != tt.wantOpen {
				t.Errorf("message open = %v, want %v", a.MessageState().IsOpen(), tt.wantOpen)
			}
			if got := a.status.GetAttribute("class"); got != tt.wantClass {
				t.Errorf("status class = %q, want %q (%s)", got, tt.wantClass, a.Status())
			}
			if a.SignInState().IsOpen() {
				t.Error("submit should close the sign-in dialog either way")
			}
		})
	}
}

func signinCreds(email, password string) signin.Credentials {
	return signin.Credentials{Email: email, Password: password}
}

func TestAuthenticate(t *testing.T) {
	a := New(Options{Users: map[string]string{"ada@example.com": "not a bcrypt hash"}})
	err := a.authenticate(signinCreds("ada@example.com", "x"))
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("malformed hash: err = %v, want a wrapped bcrypt error", err)
	}

	open := New(Options{})
	if err := open.authenticate(signinCreds("anyone", "")); err != nil {
		t.Errorf("no users configured: err = %v", err)
	}
}

func TestAppCancelAndReopen(t *testing.T) {
	doc, a := mountApp(t, Options{SignInOpen: true})

	doc.DispatchKey(dom.KeyEscape, false)
	if a.SignInState().IsOpen() {
		t.Fatal("Escape did not close the sign-in dialog")
	}
	if !strings.Contains(a.Status(), "cancelled") {
		t.Errorf("status = %q", a.Status())
	}

	doc.Click(a.OpenButton())
	if !a.SignInState().IsOpen() || !a.SignIn().Modal().Element().IsOpen() {
		t.Error("Sign In button did not reopen the dialog")
	}
}

func TestAppUnmount(t *testing.T) {
	doc := dom.NewDocument()
	a := New(Options{SignInOpen: true})
	if err := a.Mount(doc); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	doc.Flush()
	a.Unmount()

	if n := doc.ListenerCount(dom.EventKeyDown); n != 0 {
		t.Errorf("keydown listeners = %d", n)
	}
	if n := doc.ListenerCount(dom.EventClick); n != 0 {
		t.Errorf("click listeners = %d", n)
	}
	if len(doc.Body().Children()) != 0 {
		t.Error("page left in the document")
	}
	if doc.PendingTimers() != 0 {
		t.Errorf("%d timers still pending", doc.PendingTimers())
	}
}

func TestAppInHost(t *testing.T) {
	a := New(Options{SignInOpen: true})
	h, err := tui.NewHost(a, tui.NewRenderer())
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	h.Init()
	h.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	h.Document().Advance(modal.DefaultAutoFocusDelay)

	if !strings.Contains(ansi.Strip(h.View()), "Sign Up") {
		t.Fatal("sign-in dialog not rendered")
	}

	h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ada@example.com")})
	h.Update(tea.KeyMsg{Type: tea.KeyTab})
	h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pw")})
	h.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if a.SignInState().IsOpen() {
		t.Fatal("Enter in the password field did not submit")
	}
	if !a.MessageState().IsOpen() {
		t.Fatal("message dialog not opened")
	}
	if !strings.Contains(ansi.Strip(h.View()), "ada@example.com") {
		t.Error("message not rendered")
	}

	_, cmd := h.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
	if h.Document().ListenerCount(dom.EventKeyDown) != 0 {
		t.Error("quitting left the dialogs mounted")
	}
}
