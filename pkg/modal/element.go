package modal

import "github.com/marcus/modalkit/pkg/dom"

type adapterKey struct{}

// Element is the imperative surface of a dialog root. Show and Close only
// write the open attribute; the open and close events come from the
// attribute observer.
type Element struct {
	root *dom.Element
	obs  *attributeObserver
}

// Install attaches the attribute observer and the imperative surface to
// root. Installing on the same root again returns the existing Element.
func Install(root *dom.Element) *Element {
	if el, ok := Installed(root); ok {
		return el
	}
	el := &Element{root: root, obs: observe(root)}
	root.SetProperty(adapterKey{}, el)
	return el
}

// Installed returns the Element installed on root, if any.
func Installed(root *dom.Element) (*Element, bool) {
	el, ok := root.Property(adapterKey{}).(*Element)
	return el, ok
}

// Root returns the dialog root.
func (e *Element) Root() *dom.Element { return e.root }

// Show sets the open attribute.
func (e *Element) Show() {
	e.root.SetAttribute(OpenAttribute, "")
}

// Close removes the open attribute.
func (e *Element) Close() {
	e.root.RemoveAttribute(OpenAttribute)
}

// SetOpen shows or closes the dialog.
func (e *Element) SetOpen(open bool) {
	if open {
		e.Show()
	} else {
		e.Close()
	}
}

// IsOpen reports whether the open attribute is present.
func (e *Element) IsOpen() bool {
	return e.root.HasAttribute(OpenAttribute)
}

// OnOpen registers fn for open events on the root.
func (e *Element) OnOpen(fn dom.Listener) *dom.Registration {
	return e.root.AddEventListener(EventOpen, fn)
}

// OnClose registers fn for close events on the root.
func (e *Element) OnClose(fn dom.Listener) *dom.Registration {
	return e.root.AddEventListener(EventClose, fn)
}

// Release disconnects the observer and forgets the installation, so a later
// Install starts fresh.
func (e *Element) Release() {
	e.obs.disconnect()
	if el, ok := Installed(e.root); ok && el == e {
		e.root.DeleteProperty(adapterKey{})
	}
}
