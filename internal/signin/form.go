package signin

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/marcus/modalkit/pkg/dom"
)

const formName = "signup"

// Credentials are the values entered in the form.
type Credentials struct {
	Email    string
	Password string
	Remember bool
}

// Form is the sign-in panel: email, password, a remember-me checkbox and
// Submit and Cancel buttons. Element ids carry a short random suffix so
// that several forms can share a document.
type Form struct {
	ID       string
	defaults Credentials

	el       *dom.Element
	email    *dom.Element
	password *dom.Element
	remember *dom.Element
	submit   *dom.Element
	cancel   *dom.Element
	regs     []*dom.Registration

	// OnSubmit and OnCancel are read when the event fires.
	OnSubmit func(Credentials)
	OnCancel func()
}

// NewForm builds a detached form prefilled with defaults.
func NewForm(doc *dom.Document, defaults Credentials) *Form {
	id := uuid.NewString()[:8]
	f := &Form{ID: formName + "-" + id, defaults: defaults}

	f.email = doc.Build("input", "", dom.Attrs{
		"type":        "email",
		"id":          "email-" + id,
		"name":        "email",
		"placeholder": "Your address email",
		"value":       defaults.Email,
	})
	f.password = doc.Build("input", "", dom.Attrs{
		"type":        "password",
		"id":          "password-" + id,
		"name":        "password",
		"placeholder": "Your password",
		"value":       defaults.Password,
	})
	f.remember = doc.Build("input", "Remember me", dom.Attrs{
		"type": "checkbox",
		"id":   "remember-" + id,
		"name": "remember",
	})
	f.submit = doc.Build("button", "Submit", dom.Attrs{"type": "submit"})
	f.cancel = doc.Build("button", "Cancel", dom.Attrs{"type": "button", "class": "danger"})

	f.el = doc.Build("form", "", dom.Attrs{"id": f.ID, "name": formName, "class": "panel"},
		doc.Build("h2", "Sign Up", dom.Attrs{"class": "title"}),
		doc.Build("p", "Your email", dom.Attrs{"class": "muted"}),
		f.email,
		doc.Build("p", "Your password", dom.Attrs{"class": "muted"}),
		f.password,
		f.remember,
		doc.Build("div", "", dom.Attrs{"layout": "row"}, f.submit, f.cancel),
	)
	f.remember.ToggleAttribute("checked", defaults.Remember)

	f.regs = []*dom.Registration{
		f.submit.AddEventListener(dom.EventClick, func(ev *dom.Event) {
			ev.PreventDefault()
			f.handleSubmit()
		}),
		f.cancel.AddEventListener(dom.EventClick, func(ev *dom.Event) {
			ev.PreventDefault()
			f.handleCancel()
		}),
		// Enter in a text field submits, like an implicit form submission.
		f.el.AddEventListener(dom.EventKeyDown, func(ev *dom.Event) {
			if ev.Key == dom.KeyEnter && (ev.Target == f.email || ev.Target == f.password) {
				ev.PreventDefault()
				f.handleSubmit()
			}
		}),
	}
	return f
}

// Element returns the form element.
func (f *Form) Element() *dom.Element { return f.el }

// Email returns the email input.
func (f *Form) Email() *dom.Element { return f.email }

// Password returns the password input.
func (f *Form) Password() *dom.Element { return f.password }

// Remember returns the remember-me checkbox.
func (f *Form) Remember() *dom.Element { return f.remember }

// SubmitButton returns the Submit button.
func (f *Form) SubmitButton() *dom.Element { return f.submit }

// CancelButton returns the Cancel button.
func (f *Form) CancelButton() *dom.Element { return f.cancel }

// Credentials reads the current field values.
func (f *Form) Credentials() Credentials {
	return Credentials{
		Email:    f.email.Value(),
		Password: f.password.Value(),
		Remember: f.remember.Checked(),
	}
}

// Reset restores every field to its default.
func (f *Form) Reset() {
	f.email.SetValue(f.defaults.Email)
	f.password.SetValue(f.defaults.Password)
	f.remember.ToggleAttribute("checked", f.defaults.Remember)
}

// Release detaches the form's listeners.
func (f *Form) Release() {
	for _, r := range f.regs {
		r.Remove()
	}
	f.regs = nil
}

func (f *Form) handleSubmit() {
	slog.Debug("sign-in form submitted", "form", f.ID)
	if f.OnSubmit != nil {
		f.OnSubmit(f.Credentials())
	}
}

func (f *Form) handleCancel() {
	slog.Debug("sign-in form cancelled", "form", f.ID)
	if f.OnCancel != nil {
		f.OnCancel()
	}
}
