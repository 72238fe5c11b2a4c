package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/marcus/modalkit/internal/message"
	"github.com/marcus/modalkit/internal/signin"
	"github.com/marcus/modalkit/pkg/dom"
	"github.com/marcus/modalkit/pkg/modal"
)

// ErrInvalidCredentials is returned for an unknown user or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Options configures the demo application.
type Options struct {
	AutoFocusDelay   time.Duration
	DisableFocusTrap bool

	// Users maps lower-case emails to bcrypt hashes. When empty any
	// credentials are accepted.
	Users map[string]string

	// SignInOpen is the initial state of the sign-in dialog.
	SignInOpen bool
}

const lorem = "Lorem ipsum dolor sit amet consectetur adipisicing elit. Natus " +
	"accusamus maxime nemo optio deleniti fugit nam nihil eveniet dolorem " +
	"laudantium. Quis necessitatibus ratione culpa."

// App is a page with a Sign In button, a sign-in dialog and a message
// dialog shown after a successful sign in.
type App struct {
	opts Options

	signInState  *Toggle
	messageState *Toggle
	signIn       *signin.FormModal
	message      *message.Modal
	messageBody  string

	page    *dom.Element
	anchor  *dom.Element
	status  *dom.Element
	openBtn *dom.Element
	openReg *dom.Registration
}

// New returns an unmounted App.
func New(opts Options) *App {
	a := &App{opts: opts}
	a.signInState = NewToggle(opts.SignInOpen, func(bool) { a.signIn.Update(a.signInProps()) })
	a.messageState = NewToggle(false, func(bool) { a.message.Update(a.messageProps()) })
	a.signIn = signin.NewFormModal(a.signInProps())
	a.message = message.New(a.messageProps())
	return a
}

// Mount builds the page and the mount point, then mounts both dialogs.
func (a *App) Mount(doc *dom.Document) error {
	a.openBtn = doc.Build("button", "Sign In", dom.Attrs{"type": "button"})
	a.status = doc.Build("p", "Not signed in.", dom.Attrs{"class": "muted", "role": "status"})

	a.page = doc.Build("main", "", dom.Attrs{"class": "page"},
		doc.Build("h1", "modalkit", dom.Attrs{"class": "title"}),
		a.openBtn,
		a.status,
	)
	for i := 0; i < 3; i++ {
		a.page.AppendChild(doc.Build("p", lorem, dom.Attrs{"class": "muted"}))
	}
	a.anchor = doc.Build("div", "", dom.Attrs{"id": modal.DefaultAnchor})
	doc.Body().AppendChild(a.page)
	doc.Body().AppendChild(a.anchor)

	a.openReg = a.openBtn.AddEventListener(dom.EventClick, func(*dom.Event) { a.signInState.Open() })

	if err := a.signIn.Mount(doc); err != nil {
		a.Unmount()
		return err
	}
	if err := a.message.Mount(doc); err != nil {
		a.Unmount()
		return err
	}
	slog.Info("app mounted", "sign_in_open", a.signInState.IsOpen())
	return nil
}

// Unmount removes both dialogs and the page.
func (a *App) Unmount() {
	a.signIn.Unmount()
	a.message.Unmount()
	a.openReg.Remove()
	if a.page != nil {
		a.page.Remove()
		a.anchor.Remove()
	}
}

// SignIn returns the sign-in dialog.
func (a *App) SignIn() *signin.FormModal { return a.signIn }

// Message returns the message dialog.
func (a *App) Message() *message.Modal { return a.message }

// SignInState returns the sign-in dialog's open state.
func (a *App) SignInState() *Toggle { return a.signInState }

// MessageState returns the message dialog's open state.
func (a *App) MessageState() *Toggle { return a.messageState }

// Status returns the status line text.
func (a *App) Status() string { return a.status.Text }

// OpenButton returns the page's Sign In button.
func (a *App) OpenButton() *dom.Element { return a.openBtn }

func (a *App) signInProps() signin.Props {
	return signin.Props{
		IsOpen:           a.signInState.IsOpen(),
		Close:            a.signInState.Close,
		OnSubmit:         a.handleSubmit,
		OnCancel:         a.handleCancel,
		AutoFocusDelay:   a.opts.AutoFocusDelay,
		DisableFocusTrap: a.opts.DisableFocusTrap,
	}
}

func (a *App) messageProps() message.Props {
	return message.Props{
		IsOpen: a.messageState.IsOpen(),
		Close:  a.messageState.Close,
		Body:   a.messageBody,
	}
}

func (a *App) handleSubmit(c signin.Credentials) {
	if err := a.authenticate(c); err != nil {
		slog.Warn("sign in failed", "email", c.Email, "err", err)
		a.setStatus("Sign in failed: "+err.Error(), "error")
		return
	}

	slog.Info("signed in", "email", c.Email, "remember", c.Remember)
	a.setStatus("Signed in as "+c.Email+".", "info")
	a.messageBody = fmt.Sprintf("# Welcome\n\nYou're *successfully* logged in as **%s**!", c.Email)
	a.message.Update(a.messageProps())
	a.messageState.Open()
}

func (a *App) handleCancel() {
	slog.Info("sign in cancelled")
	a.setStatus("Sign in cancelled.", "muted")
}

func (a *App) setStatus(text, class string) {
	a.status.Text = text
	a.status.SetAttribute("class", class)
}

// authenticate checks c against the configured users.
func (a *App) authenticate(c signin.Credentials) error {
	if len(a.opts.Users) == 0 {
		return nil
	}
	hash, ok := a.opts.Users[strings.ToLower(c.Email)]
	if !ok {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(c.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("check password: %w", err)
	}
	return nil
}
