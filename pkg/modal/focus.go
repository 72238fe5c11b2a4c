package modal

import (
	"slices"

	"github.com/marcus/modalkit/pkg/dom"
)

// Focusables returns root's descendants that Tab navigation can reach, in
// document order. The root itself is never included. The set is computed on
// every call.
func Focusables(root *dom.Element) []*dom.Element {
	var out []*dom.Element
	for _, e := range root.Descendants() {
		if dom.IsTabbable(e) {
			out = append(out, e)
		}
	}
	return out
}

// FirstFocusable returns the first element of Focusables(root), or nil.
func FirstFocusable(root *dom.Element) *dom.Element {
	for _, e := range root.Descendants() {
		if dom.IsTabbable(e) {
			return e
		}
	}
	return nil
}

type trapStackKey struct{}

// FocusTrap keeps Tab navigation inside an open dialog. When several
// trapped dialogs are open only the most recently opened one acts.
type FocusTrap struct {
	el   *Element
	reg  *dom.Registration
	open *dom.Registration
}

// TrapFocus attaches a document keydown listener that wraps Tab and
// Shift+Tab at the dialog's first and last focusable descendants while the
// dialog is open.
func TrapFocus(el *Element) *FocusTrap {
	t := &FocusTrap{el: el}
	t.reg = el.root.Document().AddEventListener(dom.EventKeyDown, t.handleKey)
	t.open = el.OnOpen(func(*dom.Event) { t.raise() })
	if el.IsOpen() {
		t.raise()
	}
	return t
}

// stack holds the document's traps, most recently opened last. It lives on
// the body so every dialog of a document shares it.
func (t *FocusTrap) stack() []*FocusTrap {
	s, _ := t.el.root.Document().Body().Property(trapStackKey{}).([]*FocusTrap)
	return s
}

func (t *FocusTrap) setStack(s []*FocusTrap) {
	t.el.root.Document().Body().SetProperty(trapStackKey{}, s)
}

func (t *FocusTrap) raise() {
	s := slices.DeleteFunc(slices.Clone(t.stack()), func(o *FocusTrap) bool { return o == t })
	t.setStack(append(s, t))
}

// topmost reports whether t belongs to the most recently opened dialog that
// is still open.
func (t *FocusTrap) topmost() bool {
	s := t.stack()
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].el.IsOpen() {
			return s[i] == t
		}
	}
	return false
}

func (t *FocusTrap) handleKey(ev *dom.Event) {
	if ev.Key != dom.KeyTab || !t.el.IsOpen() || !t.topmost() {
		return
	}

	elements := Focusables(t.el.root)
	if len(elements) == 0 {
		return
	}

	first, last := 0, len(elements)-1
	if ev.Shift {
		first, last = last, first
	}

	// Focus outside the set (outside the dialog, or on an element Tab
	// cannot reach) would otherwise follow the document's order out of it.
	active := t.el.root.Document().ActiveElement()
	if active == elements[last] || !slices.Contains(elements, active) {
		ev.PreventDefault()
		elements[first].Focus()
	}
}

// Release detaches the trap's listeners.
func (t *FocusTrap) Release() {
	t.reg.Remove()
	t.open.Remove()
	t.setStack(slices.DeleteFunc(slices.Clone(t.stack()), func(o *FocusTrap) bool { return o == t }))
}
