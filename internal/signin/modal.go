package signin

import (
	"fmt"
	"time"

	"github.com/marcus/modalkit/pkg/dom"
	"github.com/marcus/modalkit/pkg/modal"
)

// Props configures a FormModal.
type Props struct {
	IsOpen bool

	// Close is asked to flip the caller's open state to false.
	Close func()

	OnOpen   modal.Handler
	OnClose  modal.Handler
	OnSubmit func(Credentials)
	OnCancel func()

	Defaults         Credentials
	AutoFocusDelay   time.Duration
	DisableFocusTrap bool
}

// FormModal shows a sign-in Form in a dialog. The form is reset on every
// open. Escape, a backdrop click and Cancel all cancel; Submit hands the
// credentials over. Either way the dialog asks its owner to close.
type FormModal struct {
	props Props
	form  *Form
	m     *modal.Modal
}

// NewFormModal returns an unmounted FormModal.
func NewFormModal(props Props) *FormModal {
	return &FormModal{props: props}
}

// Mount builds the form and mounts the dialog.
func (fm *FormModal) Mount(doc *dom.Document) error {
	fm.form = NewForm(doc, fm.props.Defaults)
	fm.form.OnSubmit = fm.handleSubmit
	fm.form.OnCancel = fm.handleCancel

	m, err := modal.Mount(doc, fm.modalProps())
	if err != nil {
		fm.form.Release()
		return fmt.Errorf("sign-in modal: %w", err)
	}
	fm.m = m
	return nil
}

// Update re-renders with new props.
func (fm *FormModal) Update(props Props) {
	fm.props = props
	if fm.m != nil {
		fm.m.Update(fm.modalProps())
	}
}

// Unmount tears the dialog and the form down.
func (fm *FormModal) Unmount() {
	if fm.m == nil {
		return
	}
	fm.m.Unmount()
	fm.form.Release()
	fm.m = nil
}

// Form returns the form, nil before Mount.
func (fm *FormModal) Form() *Form { return fm.form }

// Modal returns the mounted dialog, nil before Mount.
func (fm *FormModal) Modal() *modal.Modal { return fm.m }

func (fm *FormModal) modalProps() modal.Props {
	return modal.Props{
		IsOpen:           fm.props.IsOpen,
		OnOpen:           fm.handleOpen,
		OnClose:          fm.props.OnClose,
		OnEscape:         func(*dom.Event) { fm.handleCancel() },
		OnMouseOut:       func(*dom.Event) { fm.handleCancel() },
		AutoFocusDelay:   fm.props.AutoFocusDelay,
		DisableFocusTrap: fm.props.DisableFocusTrap,
		Class:            "backdrop",
		CloseClass:       "closed",
		Attrs:            dom.Attrs{"aria-label": "Sign in"},
		Children:         []*dom.Element{fm.form.Element()},
	}
}

func (fm *FormModal) handleOpen(ev *dom.Event) {
	fm.form.Reset()
	if fm.props.OnOpen != nil {
		fm.props.OnOpen(ev)
	}
}

func (fm *FormModal) handleCancel() {
	if fm.props.OnCancel != nil {
		fm.props.OnCancel()
	}
	fm.close()
}

func (fm *FormModal) handleSubmit(c Credentials) {
	if fm.props.OnSubmit != nil {
		fm.props.OnSubmit(c)
	}
	fm.close()
}

func (fm *FormModal) close() {
	if fm.props.Close != nil {
		fm.props.Close()
	}
}
