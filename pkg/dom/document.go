package dom

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Document owns an element tree, keyboard focus, document level listeners,
// pending mutation observers and timers.
type Document struct {
	eventTarget

	body   *Element
	active *Element

	pending  []*MutationObserver
	flushing bool

	now        time.Duration
	timers     []*Timer
	nextTimer  int
	onSchedule func(*Timer)
}

// NewDocument returns an empty document with a body element.
func NewDocument() *Document {
	d := &Document{}
	d.body = d.CreateElement("body")
	return d
}

// Body returns the body element.
func (d *Document) Body() *Element { return d.body }

// CreateElement returns a detached element owned by d.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{
		tag:   tag,
		doc:   d,
		attrs: make(map[string]string),
		Style: lipgloss.NewStyle(),
	}
}

// Build creates an element with text, attributes and children in one call.
func (d *Document) Build(tag, text string, attrs Attrs, children ...*Element) *Element {
	e := d.CreateElement(tag)
	e.Text = text
	for k, v := range attrs {
		e.attrs[k] = v
	}
	for _, c := range children {
		e.AppendChild(c)
	}
	return e
}

// GetElementByID returns the first connected element with the given id.
func (d *Document) GetElementByID(id string) *Element {
	var found *Element
	d.body.Walk(func(e *Element) {
		if found == nil && e.attrs["id"] == id {
			found = e
		}
	})
	return found
}

// ActiveElement returns the focused element, or the body when nothing is.
func (d *Document) ActiveElement() *Element {
	if d.active == nil {
		return d.body
	}
	return d.active
}

// AddEventListener attaches fn for events of typ reaching the document.
func (d *Document) AddEventListener(typ EventType, fn Listener) *Registration {
	return d.addListener(typ, fn)
}

// ListenerCount returns the number of document level listeners for typ.
func (d *Document) ListenerCount(typ EventType) int {
	return d.listenerCount(typ)
}

// --- Dispatch ---

// propagate delivers ev to its target, then each ancestor, then the document.
func (d *Document) propagate(ev *Event) {
	for n := ev.Target; n != nil; n = n.parent {
		n.invoke(ev)
		if ev.stopped {
			return
		}
	}
	d.invoke(ev)
}

// DispatchKey delivers a keydown to the active element and runs the default
// action unless a listener prevented it. Pending observer records are
// flushed before it returns.
func (d *Document) DispatchKey(key string, shift bool) *Event {
	ev := &Event{Type: EventKeyDown, Target: d.ActiveElement(), Key: key, Shift: shift}
	d.propagate(ev)
	if !ev.defaultPrevented {
		d.keyDefault(ev)
	}
	d.Flush()
	return ev
}

func (d *Document) keyDefault(ev *Event) {
	t := ev.Target
	switch ev.Key {
	case KeyTab:
		d.navigate(ev.Shift)
	case KeyEnter:
		if t.tag == "button" {
			d.Click(t)
		}
	case KeySpace:
		if t.tag == "button" || isCheckbox(t) {
			d.Click(t)
		}
	}
}

// Click delivers a click to el. When not prevented, a focusable target takes
// focus and a checkbox toggles.
func (d *Document) Click(el *Element) *Event {
	r := el.rect
	return d.click(&Event{Type: EventClick, Target: el, X: r.X, Y: r.Y})
}

// DispatchClick clicks the element rendered at (x, y), or the body when
// nothing is there.
func (d *Document) DispatchClick(x, y int) *Event {
	target := d.body.ElementAt(x, y)
	if target == nil {
		target = d.body
	}
	return d.click(&Event{Type: EventClick, Target: target, X: x, Y: y})
}

func (d *Document) click(ev *Event) *Event {
	d.propagate(ev)
	if t := ev.Target; !ev.defaultPrevented {
		if IsFocusable(t) {
			t.Focus()
		}
		if isCheckbox(t) {
			t.ToggleAttribute("checked", !t.Checked())
		}
	}
	d.Flush()
	return ev
}

func isCheckbox(e *Element) bool {
	return e.tag == "input" && e.attrs["type"] == "checkbox"
}

// navigate moves focus to the next (or previous) visible focusable element
// in document order, wrapping at either end.
func (d *Document) navigate(backward bool) {
	var order []*Element
	d.body.Walk(func(e *Element) {
		if IsTabbable(e) {
			order = append(order, e)
		}
	})
	if len(order) == 0 {
		return
	}

	idx := -1
	for i, e := range order {
		if e == d.active {
			idx = i
			break
		}
	}

	var next int
	switch {
	case idx < 0 && backward:
		next = len(order) - 1
	case idx < 0:
		next = 0
	case backward:
		next = (idx - 1 + len(order)) % len(order)
	default:
		next = (idx + 1) % len(order)
	}
	order[next].Focus()
}
