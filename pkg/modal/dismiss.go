package modal

import "github.com/marcus/modalkit/pkg/dom"

// Handler receives the event behind a modal callback.
type Handler func(*dom.Event)

// OnOutsideClick calls fn for document clicks whose target is the dialog
// root itself while the dialog is open. Clicks on the panel or anything
// inside it bubble through the root but do not match.
func OnOutsideClick(el *Element, fn Handler) *dom.Registration {
	return el.root.Document().AddEventListener(dom.EventClick, func(ev *dom.Event) {
		if el.IsOpen() && ev.Target == el.root {
			fn(ev)
		}
	})
}

// OnEscape calls fn for Escape keydowns while the dialog is open.
func OnEscape(el *Element, fn Handler) *dom.Registration {
	return el.root.Document().AddEventListener(dom.EventKeyDown, func(ev *dom.Event) {
		if el.IsOpen() && ev.Key == dom.KeyEscape {
			fn(ev)
		}
	})
}
