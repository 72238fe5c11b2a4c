package modal

import (
	"testing"

	"github.com/marcus/modalkit/pkg/dom"
)

// trapFixture builds a page with a focusable control before and after an
// open dialog containing the given children.
type trapFixture struct {
	doc    *dom.Document
	el     *Element
	before *dom.Element
	after  *dom.Element
}

func newTrapFixture(t *testing.T, build func(doc *dom.Document) []*dom.Element) *trapFixture {
	t.Helper()
	doc := newDocument(t)
	children := build(doc)
	before := doc.Build("button", "before", nil)
	after := doc.Build("button", "after", nil)

	anchor := doc.GetElementByID(DefaultAnchor)
	root := doc.Build("div", "", nil, children...)
	doc.Body().ReplaceChildren(before, anchor, after)
	anchor.AppendChild(root)

	el := Install(root)
	el.Show()
	doc.Flush()
	TrapFocus(el)
	return &trapFixture{doc: doc, el: el, before: before, after: after}
}

func TestFocusablesOrderAndPredicate(t *testing.T) {
	doc := newDocument(t)
	a := doc.Build("input", "", dom.Attrs{"type": "text"})
	link := doc.Build("a", "docs", dom.Attrs{"href": "https://example.com"})
	plain := doc.Build("a", "no href", nil)
	custom := doc.Build("div", "", dom.Attrs{"tabindex": "0"})
	skipped := doc.Build("div", "", dom.Attrs{"tabindex": "-1"})
	btn := doc.Build("button", "OK", nil)
	root := doc.Build("div", "", dom.Attrs{"tabindex": "0"},
		a,
		doc.Build("div", "", nil, link, plain),
		custom, skipped, btn,
	)

	got := Focusables(root)
	want := []*dom.Element{a, link, custom, btn}
	if len(got) != len(want) {
		t.Fatalf("got %d focusables, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("focusable[%d] = %s, want %s", i, got[i].Tag(), want[i].Tag())
		}
	}
	if FirstFocusable(root) != a {
		t.Error("FirstFocusable should return the first input")
	}
	if FirstFocusable(doc.Build("div", "", nil)) != nil {
		t.Error("FirstFocusable of an empty root should be nil")
	}
}

func TestFocusTrapWrapsAtBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		start int
		shift bool
		want  int
	}{
		{"tab from last wraps to first", 2, false, 0},
		{"shift+tab from first wraps to last", 0, true, 2},
		{"tab from middle moves forward", 1, false, 2},
		{"shift+tab from middle moves back", 1, true, 0},
		{"tab from first moves forward", 0, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var elems []*dom.Element
			f := newTrapFixture(t, func(doc *dom.Document) []*dom.Element {
				elems = []*dom.Element{
					doc.Build("button", "A", nil),
					doc.Build("button", "B", nil),
					doc.Build("button", "C", nil),
				}
				return elems
			})

			elems[tt.start].Focus()
			f.doc.DispatchKey(dom.KeyTab, tt.shift)

			if got := f.doc.ActiveElement(); got != elems[tt.want] {
				t.Errorf("focused %q, want %q", got.Text, elems[tt.want].Text)
			}
		})
	}
}

func TestFocusTrapSingleElementStaysPinned(t *testing.T) {
	var only *dom.Element
	f := newTrapFixture(t, func(doc *dom.Document) []*dom.Element {
		only = doc.Build("button", "only", nil)
		return []*dom.Element{only}
	})
	only.Focus()

	for i, shift := range []bool{false, true, false, true} {
		ev := f.doc.DispatchKey(dom.KeyTab, shift)
		if !only.Focused() {
			t.Fatalf("press %d (shift=%v): focus moved to %v", i, shift, f.doc.ActiveElement())
		}
		if !ev.DefaultPrevented() {
			t.Errorf("press %d: default navigation was not prevented", i)
		}
	}
}

func TestFocusTrapEmptySetIsNoop(t *testing.T) {
	f := newTrapFixture(t, func(doc *dom.Document) []*dom.Element {
		return []*dom.Element{doc.Build("p", "nothing to focus", nil)}
	})
	f.before.Focus()

	ev := f.doc.DispatchKey(dom.KeyTab, false)
	if ev.DefaultPrevented() {
		t.Error("trap with no focusables should not prevent default")
	}
	if !f.after.Focused() {
		t.Errorf("default navigation should proceed, focus is on %v", f.doc.ActiveElement())
	}
}

func TestFocusTrapPullsOutsideFocusIn(t *testing.T) {
	var a, b *dom.Element
	f := newTrapFixture(t, func(doc *dom.Document) []*dom.Element {
		a = doc.Build("input", "", nil)
		b = doc.Build("button", "B", nil)
		return []*dom.Element{a, b}
	})

	f.before.Focus()
	f.doc.DispatchKey(dom.KeyTab, false)
	if !a.Focused() {
		t.Errorf("Tab from outside should land on the first element, got %v", f.doc.ActiveElement())
	}

	f.after.Focus()
	f.doc.DispatchKey(dom.KeyTab, true)
	if !b.Focused() {
		t.Errorf("Shift+Tab from outside should land on the last element, got %v", f.doc.ActiveElement())
	}
}

func TestFocusTrapInactiveWhileClosed(t *testing.T) {
	var c *dom.Element
	f := newTrapFixture(t, func(doc *dom.Document) []*dom.Element {
		c = doc.Build("button", "C", nil)
		return []*dom.Element{doc.Build("button", "A", nil), c}
	})
	f.el.Close()
	f.doc.Flush()

	c.Focus()
	ev := f.doc.DispatchKey(dom.KeyTab, false)
	if ev.DefaultPrevented() {
		t.Error("closed dialog should not intercept Tab")
	}
	if !f.after.Focused() {
		t.Errorf("focus should follow document order, got %v", f.doc.ActiveElement())
	}
}

func TestFocusTrapIgnoresOtherKeys(t *testing.T) {
	var c *dom.Element
	f := newTrapFixture(t, func(doc *dom.Document) []*dom.Element {
		c = doc.Build("button", "C", nil)
		return []*dom.Element{doc.Build("button", "A", nil), c}
	})
	c.Focus()

	if ev := f.doc.DispatchKey("x", false); ev.DefaultPrevented() {
		t.Error("non-Tab key was prevented")
	}
	if !c.Focused() {
		t.Error("non-Tab key moved focus")
	}
}

func TestFocusTrapRecomputesSet(t *testing.T) {
	var a, b *dom.Element
	f := newTrapFixture(t, func(doc *dom.Document) []*dom.Element {
		a = doc.Build("button", "A", nil)
		b = doc.Build("button", "B", nil)
		return []*dom.Element{a, b}
	})

	late := f.doc.Build("button", "late", nil)
	f.el.Root().AppendChild(late)

	b.Focus()
	f.doc.DispatchKey(dom.KeyTab, false)
	if !late.Focused() {
		t.Fatalf("Tab from B should reach the newly added button, got %v", f.doc.ActiveElement())
	}
	f.doc.DispatchKey(dom.KeyTab, false)
	if !a.Focused() {
		t.Errorf("Tab from the new last element should wrap to A, got %v", f.doc.ActiveElement())
	}
}

func TestFocusTrapRelease(t *testing.T) {
	doc := newDocument(t)
	root := doc.Build("div", "", nil, doc.Build("button", "A", nil))
	doc.GetElementByID(DefaultAnchor).AppendChild(root)
	el := Install(root)

	before := doc.ListenerCount(dom.EventKeyDown)
	trap := TrapFocus(el)
	if doc.ListenerCount(dom.EventKeyDown) != before+1 {
		t.Fatal("TrapFocus did not register a keydown listener")
	}
	trap.Release()
	trap.Release()
	if doc.ListenerCount(dom.EventKeyDown) != before {
		t.Error("Release left a keydown listener behind")
	}
}

func TestFocusTrapIgnoresUnreachableLastElement(t *testing.T) {
	tests := []struct {
		name  string
		attrs dom.Attrs
	}{
		{"negative tabindex", dom.Attrs{"tabindex": "-1"}},
		{"hidden", dom.Attrs{"hidden": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a, b *dom.Element
			f := newTrapFixture(t, func(doc *dom.Document) []*dom.Element {
				a = doc.Build("button", "A", nil)
				b = doc.Build("button", "B", nil)
				return []*dom.Element{a, b, doc.Build("button", "C", tt.attrs)}
			})

			b.Focus()
			f.doc.DispatchKey(dom.KeyTab, false)
			if !a.Focused() {
				t.Errorf("Tab from B should wrap to A, focus is on %q", f.doc.ActiveElement().Text)
			}

			a.Focus()
			f.doc.DispatchKey(dom.KeyTab, true)
			if !b.Focused() {
				t.Errorf("Shift+Tab from A should wrap to B, focus is on %q", f.doc.ActiveElement().Text)
			}
		})
	}
}

func TestFocusTrapUnreachableActiveElementIsPulledIn(t *testing.T) {
	var a, skip *dom.Element
	f := newTrapFixture(t, func(doc *dom.Document) []*dom.Element {
		a = doc.Build("button", "A", nil)
		skip = doc.Build("div", "", dom.Attrs{"tabindex": "-1"})
		return []*dom.Element{a, doc.Build("button", "B", nil), skip}
	})

	skip.Focus()
	f.doc.DispatchKey(dom.KeyTab, false)
	if !a.Focused() {
		t.Errorf("Tab from an unreachable element should land on A, got %q", f.doc.ActiveElement().Text)
	}
}

func TestFocusTrapOnlyMostRecentDialogActs(t *testing.T) {
	doc := newDocument(t)
	a1 := doc.Build("button", "A1", nil)
	a2 := doc.Build("button", "A2", nil)
	b2 := doc.Build("button", "B2", nil)
	root1 := doc.Build("div", "", nil, a1, doc.Build("button", "B1", nil))
	root2 := doc.Build("div", "", nil, a2, b2)
	anchor := doc.GetElementByID(DefaultAnchor)
	anchor.AppendChild(root1)
	anchor.AppendChild(root2)

	first, second := Install(root1), Install(root2)
	defer TrapFocus(first).Release()
	defer TrapFocus(second).Release()

	second.Show()
	doc.Flush()
	first.Show()
	doc.Flush()

	a2.Focus()
	doc.DispatchKey(dom.KeyTab, false)
	if !a1.Focused() {
		t.Fatalf("the dialog opened last should take focus, got %q", doc.ActiveElement().Text)
	}

	first.Close()
	doc.Flush()
	doc.DispatchKey(dom.KeyTab, false)
	if !a2.Focused() {
		t.Fatalf("after closing it the earlier dialog should trap again, got %q", doc.ActiveElement().Text)
	}
	doc.DispatchKey(dom.KeyTab, false)
	if !b2.Focused() {
		t.Errorf("Tab inside the remaining dialog moved to %q, want B2", doc.ActiveElement().Text)
	}
}
