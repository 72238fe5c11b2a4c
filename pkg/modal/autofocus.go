package modal

import (
	"time"

	"github.com/marcus/modalkit/pkg/dom"
)

// DefaultAutoFocusDelay leaves time for an opening transition to finish
// before focus moves into the dialog. It is a tunable policy value.
const DefaultAutoFocusDelay = 100 * time.Millisecond

// autoFocus moves focus to the dialog's first focusable descendant a short
// delay after each open event.
type autoFocus struct {
	el    *Element
	delay time.Duration
	reg   *dom.Registration
	timer *dom.Timer
}

func newAutoFocus(el *Element, delay time.Duration) *autoFocus {
	a := &autoFocus{el: el, delay: delay}
	a.reg = el.OnOpen(a.handleOpen)
	return a
}

func (a *autoFocus) handleOpen(*dom.Event) {
	a.timer.Stop()
	a.timer = nil
	target := FirstFocusable(a.el.root)
	if target == nil {
		return
	}
	// Focus on a node detached in the meantime is a no-op.
	a.timer = a.el.root.Document().SetTimeout(a.delay, target.Focus)
}

func (a *autoFocus) release() {
	a.reg.Remove()
	a.timer.Stop()
	a.timer = nil
}
