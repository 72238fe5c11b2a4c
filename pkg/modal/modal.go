package modal

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/modalkit/pkg/dom"
)

// DefaultAnchor is the id of the element dialogs mount under.
const DefaultAnchor = "root"

// ErrMissingAnchor is returned by Mount when the mount point does not
// exist. The embedding application is expected to treat it as fatal.
var ErrMissingAnchor = errors.New("modal: mount anchor not found")

// Attributes the component owns; passthrough Attrs cannot override them.
var reservedAttrs = map[string]bool{
	OpenAttribute: true,
	"class":       true,
	"hidden":      true,
	"role":        true,
	"aria-modal":  true,
	"aria-hidden": true,
}

// Props configures a Modal. The zero value is a closed dialog with
// auto-focus and focus trapping enabled.
type Props struct {
	// IsOpen is the caller's declarative open state.
	IsOpen bool

	OnOpen     Handler
	OnClose    Handler
	OnEscape   Handler
	OnMouseOut Handler

	DisableAutoFocus bool
	DisableFocusTrap bool
	// AutoFocusDelay overrides DefaultAutoFocusDelay when positive.
	AutoFocusDelay time.Duration

	Class      string
	OpenClass  string
	CloseClass string
	Style      lipgloss.Style
	Attrs      dom.Attrs

	Children []*dom.Element

	// Anchor is the id of the mount point. Defaults to DefaultAnchor.
	Anchor string
}

func (p Props) anchor() string {
	if p.Anchor == "" {
		return DefaultAnchor
	}
	return p.Anchor
}

func (p Props) autoFocusDelay() time.Duration {
	if p.AutoFocusDelay > 0 {
		return p.AutoFocusDelay
	}
	return DefaultAutoFocusDelay
}

// Modal is a mounted dialog.
type Modal struct {
	doc     *dom.Document
	root    *dom.Element
	el      *Element
	props   Props
	applied bool
	mounted bool

	autoFocus  *autoFocus
	trap       *FocusTrap
	onOpen     *dom.Registration
	onClose    *dom.Registration
	onEscape   *dom.Registration
	onMouseOut *dom.Registration
}

// Mount builds the dialog root under the anchor element and wires every
// configured behaviour. When props.IsOpen is set the open event is
// delivered at the document's next flush.
func Mount(doc *dom.Document, props Props) (*Modal, error) {
	anchor := doc.GetElementByID(props.anchor())
	if anchor == nil {
		return nil, fmt.Errorf("%w: #%s", ErrMissingAnchor, props.anchor())
	}

	root := doc.CreateElement("div")
	m := &Modal{doc: doc, root: root, mounted: true}
	m.el = Install(root)

	// Presentation follows every observed write, so imperative Show/Close
	// and outside writes restyle the dialog even when no event is announced.
	m.el.obs.sync = m.present

	m.apply(props)
	anchor.AppendChild(root)

	slog.Debug("modal mounted", "anchor", props.anchor(), "open", props.IsOpen)
	return m, nil
}

// Update re-renders the dialog with new props. Callbacks always run through
// the latest props; listeners are only attached or detached when a callback
// or flag switches between set and unset.
func (m *Modal) Update(props Props) {
	if !m.mounted {
		return
	}
	m.apply(props)
}

// Unmount detaches every listener, cancels a pending auto-focus, releases
// the attribute observer and removes the root from the document. It is safe
// to call more than once.
func (m *Modal) Unmount() {
	if !m.mounted {
		return
	}
	m.mounted = false

	for _, r := range []*dom.Registration{
		m.onOpen, m.onClose, m.onEscape, m.onMouseOut,
	} {
		r.Remove()
	}
	m.onOpen, m.onClose, m.onEscape, m.onMouseOut = nil, nil, nil, nil

	if m.autoFocus != nil {
		m.autoFocus.release()
		m.autoFocus = nil
	}
	if m.trap != nil {
		m.trap.Release()
		m.trap = nil
	}

	m.el.Release()
	m.root.Remove()
	slog.Debug("modal unmounted", "anchor", m.props.anchor())
}

// Element returns the imperative surface of the dialog root.
func (m *Modal) Element() *Element { return m.el }

// Root returns the dialog root element.
func (m *Modal) Root() *dom.Element { return m.root }

// Props returns the props last applied.
func (m *Modal) Props() Props { return m.props }

// Mounted reports whether Unmount has not been called yet.
func (m *Modal) Mounted() bool { return m.mounted }

func (m *Modal) apply(p Props) {
	prev, first := m.props, !m.applied
	m.props = p
	m.applied = true

	m.syncListeners()
	m.syncAttrs(prev.Attrs)

	if !slices.Equal(m.root.Children(), p.Children) {
		m.root.ReplaceChildren(p.Children...)
	}
	m.root.Style = p.Style

	// Like a re-render, the attribute is only written when the declarative
	// value changes, so an imperative Close survives unrelated updates.
	if first || prev.IsOpen != p.IsOpen {
		m.el.SetOpen(p.IsOpen)
	}
	m.present()
}

func (m *Modal) syncListeners() {
	p := m.props

	switch {
	case !p.DisableAutoFocus && m.autoFocus == nil:
		m.autoFocus = newAutoFocus(m.el, p.autoFocusDelay())
	case p.DisableAutoFocus && m.autoFocus != nil:
		m.autoFocus.release()
		m.autoFocus = nil
	}
	if m.autoFocus != nil {
		m.autoFocus.delay = p.autoFocusDelay()
	}

	switch {
	case !p.DisableFocusTrap && m.trap == nil:
		m.trap = TrapFocus(m.el)
	case p.DisableFocusTrap && m.trap != nil:
		m.trap.Release()
		m.trap = nil
	}

	m.onOpen = bind(m.onOpen, p.OnOpen != nil, func() *dom.Registration {
		return m.el.OnOpen(func(ev *dom.Event) { call(m.props.OnOpen, ev) })
	})
	m.onClose = bind(m.onClose, p.OnClose != nil, func() *dom.Registration {
		return m.el.OnClose(func(ev *dom.Event) { call(m.props.OnClose, ev) })
	})
	m.onMouseOut = bind(m.onMouseOut, p.OnMouseOut != nil, func() *dom.Registration {
		return OnOutsideClick(m.el, func(ev *dom.Event) { call(m.props.OnMouseOut, ev) })
	})
	m.onEscape = bind(m.onEscape, p.OnEscape != nil, func() *dom.Registration {
		return OnEscape(m.el, func(ev *dom.Event) { call(m.props.OnEscape, ev) })
	})
}

// bind keeps exactly one registration while want holds and none otherwise.
func bind(reg *dom.Registration, want bool, register func() *dom.Registration) *dom.Registration {
	switch {
	case want && reg == nil:
		return register()
	case !want && reg != nil:
		reg.Remove()
		return nil
	}
	return reg
}

func call(fn Handler, ev *dom.Event) {
	if fn != nil {
		fn(ev)
	}
}

func (m *Modal) syncAttrs(prev dom.Attrs) {
	for k := range prev {
		if _, keep := m.props.Attrs[k]; !keep && !reservedAttrs[k] {
			m.root.RemoveAttribute(k)
		}
	}
	for k, v := range m.props.Attrs {
		if !reservedAttrs[k] {
			m.root.SetAttribute(k, v)
		}
	}
	m.root.SetAttribute("role", "dialog")
	m.root.SetAttribute("aria-modal", "true")
}

// present derives classes and visibility from the open attribute.
func (m *Modal) present() {
	open := m.el.IsOpen()
	state := m.props.CloseClass
	if open {
		state = m.props.OpenClass
	}
	m.root.SetAttribute("class", strings.Join(strings.Fields(m.props.Class+" "+state), " "))
	m.root.ToggleAttribute("hidden", !open)
	m.root.SetAttribute("aria-hidden", strconv.FormatBool(!open))
}
