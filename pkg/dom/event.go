package dom

// EventType names an event.
type EventType string

// Built-in event types.
const (
	EventKeyDown EventType = "keydown"
	EventClick   EventType = "click"
)

// Key names used in keydown events.
const (
	KeyTab       = "Tab"
	KeyEscape    = "Escape"
	KeyEnter     = "Enter"
	KeySpace     = " "
	KeyBackspace = "Backspace"
)

// Event is delivered to listeners. Keyboard events carry Key and Shift,
// pointer events carry X and Y.
type Event struct {
	Type   EventType
	Target *Element
	Key    string
	Shift  bool
	X, Y   int

	defaultPrevented bool
	stopped          bool
}

// PreventDefault cancels the document's default action for the event.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from reaching further ancestors.
// Remaining listeners on the current node still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Listener handles an event.
type Listener func(*Event)

// Registration is the handle for one attached listener.
type Registration struct {
	owner   *eventTarget
	typ     EventType
	fn      Listener
	removed bool
}

// Remove detaches the listener. Calling it again is a no-op.
func (r *Registration) Remove() {
	if r == nil || r.removed {
		return
	}
	r.removed = true

	list := r.owner.listeners[r.typ]
	for i, x := range list {
		if x == r {
			// Copy so that in-flight dispatch snapshots are not disturbed.
			r.owner.listeners[r.typ] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(r.owner.listeners[r.typ]) == 0 {
		delete(r.owner.listeners, r.typ)
	}
}

// Active reports whether the listener is still attached.
func (r *Registration) Active() bool {
	return r != nil && !r.removed
}

// eventTarget holds listeners for a node or the document.
type eventTarget struct {
	listeners map[EventType][]*Registration
}

func (t *eventTarget) addListener(typ EventType, fn Listener) *Registration {
	if t.listeners == nil {
		t.listeners = make(map[EventType][]*Registration)
	}
	r := &Registration{owner: t, typ: typ, fn: fn}
	t.listeners[typ] = append(t.listeners[typ], r)
	return r
}

// invoke runs the listeners registered for ev.Type at the time of the call,
// in registration order, skipping any removed while dispatch is in progress.
func (t *eventTarget) invoke(ev *Event) {
	snapshot := t.listeners[ev.Type]
	for _, r := range snapshot {
		if r.removed {
			continue
		}
		r.fn(ev)
	}
}

func (t *eventTarget) listenerCount(typ EventType) int {
	return len(t.listeners[typ])
}
