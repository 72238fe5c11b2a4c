package modal

import (
	"log/slog"

	"github.com/marcus/modalkit/pkg/dom"
)

// OpenAttribute is the presence-only attribute holding a dialog's open state.
const OpenAttribute = "open"

// Events dispatched on the dialog root when its open attribute changes.
const (
	EventOpen  dom.EventType = "open"
	EventClose dom.EventType = "close"
)

// attributeObserver turns writes to the open attribute of one root into open
// and close events dispatched on that root. Coalesced writes deliver the
// final state only, and nothing is delivered when the final state matches
// what was last announced.
type attributeObserver struct {
	root      *dom.Element
	mo        *dom.MutationObserver
	announced bool

	// sync runs for every delivered batch, including those that end in
	// the announced state and dispatch nothing.
	sync func()
}

func observe(root *dom.Element) *attributeObserver {
	a := &attributeObserver{
		root:      root,
		announced: root.HasAttribute(OpenAttribute),
	}
	a.mo = root.Document().NewMutationObserver(a.deliver)
	a.mo.Observe(root, OpenAttribute)
	return a
}

func (a *attributeObserver) deliver(records []dom.MutationRecord, _ *dom.MutationObserver) {
	if a.sync != nil {
		a.sync()
	}
	open := a.root.HasAttribute(OpenAttribute)
	if open == a.announced {
		return
	}
	a.announced = open

	typ := EventClose
	if open {
		typ = EventOpen
	}
	slog.Debug("modal state changed", "event", typ, "records", len(records), "id", a.root.ID())
	a.root.DispatchEvent(&dom.Event{Type: typ})
}

func (a *attributeObserver) disconnect() {
	a.mo.Disconnect()
}
