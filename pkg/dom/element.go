package dom

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Attrs is a set of attributes used when building elements.
type Attrs map[string]string

// Element is a node in a document tree.
type Element struct {
	eventTarget

	tag       string
	doc       *Document
	parent    *Element
	children  []*Element
	attrs     map[string]string
	props     map[any]any
	observers []*MutationObserver

	// Text is rendered before the element's children.
	Text string
	// Style is used when no stylesheet entry matches the element.
	Style lipgloss.Style

	rect Rect
}

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// ID returns the id attribute.
func (e *Element) ID() string { return e.attrs["id"] }

// Document returns the owner document.
func (e *Element) Document() *Document { return e.doc }

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

// --- Attributes ---

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// GetAttribute returns the attribute value, or "" when absent.
func (e *Element) GetAttribute(name string) string {
	return e.attrs[name]
}

// SetAttribute sets an attribute. A mutation record is queued even when the
// value does not change.
func (e *Element) SetAttribute(name, value string) {
	old, had := e.attrs[name]
	e.attrs[name] = value
	e.queueMutation(name, old, had)
}

// RemoveAttribute removes an attribute. Nothing is recorded when the
// attribute was not present.
func (e *Element) RemoveAttribute(name string) {
	old, had := e.attrs[name]
	if !had {
		return
	}
	delete(e.attrs, name)
	e.queueMutation(name, old, had)
}

// ToggleAttribute sets the presence-only attribute name when on is true and
// removes it otherwise.
func (e *Element) ToggleAttribute(name string, on bool) {
	if on {
		e.SetAttribute(name, "")
	} else {
		e.RemoveAttribute(name)
	}
}

// SetAttrs sets every attribute in attrs.
func (e *Element) SetAttrs(attrs Attrs) {
	for k, v := range attrs {
		e.SetAttribute(k, v)
	}
}

// Value returns the value attribute of a form control.
func (e *Element) Value() string { return e.attrs["value"] }

// SetValue sets the value attribute.
func (e *Element) SetValue(v string) { e.SetAttribute("value", v) }

// Checked reports whether a checkbox is checked.
func (e *Element) Checked() bool { return e.HasAttribute("checked") }

// Classes returns the whitespace separated tokens of the class attribute.
func (e *Element) Classes() []string {
	return strings.Fields(e.attrs["class"])
}

// TabIndex returns the parsed tabindex attribute and whether it was present
// and well formed.
func (e *Element) TabIndex() (int, bool) {
	v, ok := e.attrs["tabindex"]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (e *Element) queueMutation(name, old string, had bool) {
	for _, o := range e.observers {
		if o.watches(e, name) {
			o.enqueue(MutationRecord{
				Target:        e,
				AttributeName: name,
				OldValue:      old,
				HadOldValue:   had,
			})
		}
	}
}

// --- Properties ---

// Property returns a value previously stored with SetProperty.
func (e *Element) Property(key any) any {
	return e.props[key]
}

// SetProperty stores an arbitrary value on the element. It is not an
// attribute and is never observed.
func (e *Element) SetProperty(key, value any) {
	if e.props == nil {
		e.props = make(map[any]any)
	}
	e.props[key] = value
}

// DeleteProperty removes a stored property.
func (e *Element) DeleteProperty(key any) {
	delete(e.props, key)
}

// --- Tree ---

// AppendChild moves child to the end of e's children.
func (e *Element) AppendChild(child *Element) {
	if child == e || child.Contains(e) {
		panic("dom: cannot append an element to its own subtree")
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

// RemoveChild detaches child from e. If the removed subtree held focus,
// focus returns to the body.
func (e *Element) RemoveChild(child *Element) {
	for i, c := range e.children {
		if c != child {
			continue
		}
		e.children = append(e.children[:i:i], e.children[i+1:]...)
		child.parent = nil
		if a := e.doc.active; a != nil && child.Contains(a) {
			e.doc.active = nil
		}
		return
	}
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.RemoveChild(e)
	}
}

// ReplaceChildren removes all children and appends the given ones.
func (e *Element) ReplaceChildren(children ...*Element) {
	for _, c := range e.Children() {
		e.RemoveChild(c)
	}
	for _, c := range children {
		e.AppendChild(c)
	}
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// IsConnected reports whether e is attached to its document's body.
func (e *Element) IsConnected() bool {
	return e.doc.body.Contains(e)
}

// Walk calls fn for e and every descendant in document order.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// Descendants returns every descendant of e in document order, excluding e.
func (e *Element) Descendants() []*Element {
	var out []*Element
	for _, c := range e.children {
		c.Walk(func(n *Element) { out = append(out, n) })
	}
	return out
}

// Visible reports whether e is connected and neither it nor an ancestor
// carries the hidden attribute.
func (e *Element) Visible() bool {
	if !e.IsConnected() {
		return false
	}
	for n := e; n != nil; n = n.parent {
		if n.HasAttribute("hidden") {
			return false
		}
	}
	return true
}

// --- Focus ---

// IsFocusable reports whether e matches the focusable element predicate:
// buttons, links with an href, inputs, selects, textareas and anything with
// a non-negative tabindex.
func IsFocusable(e *Element) bool {
	switch e.tag {
	case "button", "input", "select", "textarea":
		return true
	case "a", "area":
		if e.HasAttribute("href") {
			return true
		}
	}
	n, ok := e.TabIndex()
	return ok && n >= 0
}

// IsTabbable reports whether sequential Tab navigation can reach e: it is
// focusable, its tabindex is not negative and neither it nor an ancestor is
// hidden.
func IsTabbable(e *Element) bool {
	if !IsFocusable(e) {
		return false
	}
	if n, ok := e.TabIndex(); ok && n < 0 {
		return false
	}
	for n := e; n != nil; n = n.parent {
		if n.HasAttribute("hidden") {
			return false
		}
	}
	return true
}

// Focus makes e the active element. Focusing a detached element does nothing.
func (e *Element) Focus() {
	if !e.IsConnected() {
		return
	}
	e.doc.active = e
}

// Blur clears focus if e holds it.
func (e *Element) Blur() {
	if e.doc.active == e {
		e.doc.active = nil
	}
}

// Focused reports whether e is the active element.
func (e *Element) Focused() bool {
	return e.doc.active == e
}

// --- Events ---

// AddEventListener attaches fn for events of typ delivered to e.
func (e *Element) AddEventListener(typ EventType, fn Listener) *Registration {
	return e.addListener(typ, fn)
}

// DispatchEvent delivers ev to e's own listeners without bubbling. It
// returns false if a listener prevented the default.
func (e *Element) DispatchEvent(ev *Event) bool {
	ev.Target = e
	e.invoke(ev)
	return !ev.defaultPrevented
}

// ListenerCount returns the number of listeners attached for typ.
func (e *Element) ListenerCount(typ EventType) int {
	return e.listenerCount(typ)
}

// --- Layout ---

// Rect returns the area the element occupied in the last render.
func (e *Element) Rect() Rect { return e.rect }

// SetRect records the element's rendered area.
func (e *Element) SetRect(r Rect) { e.rect = r }

// ElementAt finds the deepest visible element whose rect contains (x, y).
// Later children are checked first since they render on top.
func (e *Element) ElementAt(x, y int) *Element {
	if e.HasAttribute("hidden") {
		return nil
	}
	for i := len(e.children) - 1; i >= 0; i-- {
		if hit := e.children[i].ElementAt(x, y); hit != nil {
			return hit
		}
	}
	if e.rect.Contains(x, y) {
		return e
	}
	return nil
}
