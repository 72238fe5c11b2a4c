// Package modal provides a modal dialog primitive for dom documents.
//
// The dialog's open state lives in a single place: the presence of the open
// attribute on the dialog root. Everything that reacts to opening or closing
// (auto-focus, caller callbacks, presentation) listens for the open and close
// events an attribute observer synthesizes from writes to that attribute, so
// declarative props, the imperative Show/Close surface and direct attribute
// writes all converge.
//
// # Quick Start
//
//	m, err := modal.Mount(doc, modal.Props{
//	    IsOpen:     false,
//	    Class:      "backdrop",
//	    OnEscape:   func(*dom.Event) { closeDialog() },
//	    OnMouseOut: func(*dom.Event) { closeDialog() },
//	    Children:   []*dom.Element{panel},
//	})
//	if err != nil {
//	    return err // the mount anchor is missing
//	}
//	defer m.Unmount()
//
//	// Later, when the caller's state changes:
//	m.Update(props)
//
// # Behaviour
//
//   - Focus trap: Tab and Shift+Tab cycle through the dialog's focusable
//     descendants while it is open (disable with DisableFocusTrap).
//   - Auto-focus: the first focusable descendant receives focus shortly after
//     the dialog opens (disable with DisableAutoFocus).
//   - Dismissal: OnEscape fires for Escape while open, OnMouseOut for clicks
//     that land on the root itself, i.e. the backdrop.
//   - Portal: the root is mounted under the element whose id is Props.Anchor
//     (default "root"), outside the caller's own subtree.
//
// Document level listeners stay attached while the dialog is mounted, gated
// on the open attribute. Only Unmount detaches them.
package modal
