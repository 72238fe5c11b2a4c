package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/modalkit/pkg/dom"
)

// DefaultInputWidth is the rendered width of a text input without a size
// attribute.
const DefaultInputWidth = 24

// Renderer turns a document into a string and records the rect of every
// element it draws so clicks can be hit tested.
//
// Block children stack vertically; children of an element with
// layout="row" sit side by side, one column apart. Elements with
// role="dialog" are drawn as full screen layers above the page: the dialog
// root covers the screen and its content is centred on top.
type Renderer struct {
	Styles Stylesheet

	// Input renders text inputs. Nil uses the value attribute.
	Input func(e *dom.Element) string
}

// NewRenderer returns a renderer using the default stylesheet.
func NewRenderer() *Renderer {
	return &Renderer{Styles: DefaultStylesheet()}
}

// placement is an element's rect relative to the block that contains it.
type placement struct {
	el *dom.Element
	r  dom.Rect
}

type block struct {
	s      string
	w, h   int
	places []placement
}

// Render draws the document body into a width x height screen.
func (r *Renderer) Render(doc *dom.Document, width, height int) string {
	body := doc.Body()
	body.Walk(func(e *dom.Element) { e.SetRect(dom.Rect{}) })

	var layers []*dom.Element
	base, ok := r.renderElement(body, &layers)
	screen := blankLines(height)
	if ok {
		for _, p := range base.places {
			p.el.SetRect(p.r)
		}
		screen = fitLines(base.s, width, height)
	}

	for _, root := range layers {
		screen = r.renderLayer(root, screen, width, height)
	}
	return strings.Join(screen, "\n")
}

func (r *Renderer) renderLayer(root *dom.Element, screen []string, width, height int) []string {
	content, ok := r.renderBox(root, nil)
	root.SetRect(dom.Rect{W: width, H: height})
	if !ok {
		return screen
	}

	x := max((width-content.w)/2, 0)
	y := max((height-content.h)/2, 0)
	for _, p := range content.places {
		if p.el != root {
			p.el.SetRect(p.r.Offset(x, y))
		}
	}

	return overlay(dim(screen, width), strings.Split(content.s, "\n"), x, y, width)
}

// renderElement draws e in the page flow. Dialog roots are collected into
// layers instead.
func (r *Renderer) renderElement(e *dom.Element, layers *[]*dom.Element) (block, bool) {
	if e.HasAttribute("hidden") {
		return block{}, false
	}
	if e.GetAttribute("role") == "dialog" && layers != nil {
		*layers = append(*layers, e)
		return block{}, false
	}
	return r.renderBox(e, layers)
}

// renderBox draws e's own text or input followed by its children, styled
// with e's style.
func (r *Renderer) renderBox(e *dom.Element, layers *[]*dom.Element) (block, bool) {
	var parts []block
	if line, ok := r.ownContent(e); ok {
		parts = append(parts, textBlock(line))
	}
	for _, c := range e.Children() {
		if b, ok := r.renderElement(c, layers); ok {
			parts = append(parts, b)
		}
	}
	if len(parts) == 0 {
		return block{}, false
	}

	inner := join(parts, e.GetAttribute("layout") == "row")

	style := r.Styles.For(e)
	s := style.Render(inner.s)
	left := style.GetMarginLeft() + style.GetBorderLeftSize() + style.GetPaddingLeft()
	top := style.GetMarginTop() + style.GetBorderTopSize() + style.GetPaddingTop()

	out := block{s: s, w: lipgloss.Width(s), h: lipgloss.Height(s)}
	out.places = append(out.places, placement{el: e, r: dom.Rect{W: out.w, H: out.h}})
	for _, p := range inner.places {
		out.places = append(out.places, placement{el: p.el, r: p.r.Offset(left, top)})
	}
	return out, true
}

func (r *Renderer) ownContent(e *dom.Element) (string, bool) {
	switch inputKind(e) {
	case "":
		return e.Text, e.Text != ""
	case "checkbox":
		mark := "[ ]"
		if e.Checked() {
			mark = "[x]"
		}
		if e.Text == "" {
			return mark, true
		}
		return mark + " " + e.Text, true
	default:
		if r.Input != nil {
			return r.Input(e), true
		}
		return plainInput(e), true
	}
}

// plainInput shows the value, masked for passwords, or the placeholder.
func plainInput(e *dom.Element) string {
	v := e.Value()
	if inputKind(e) == "password" {
		v = strings.Repeat("*", len([]rune(v)))
	}
	if v == "" {
		v = e.GetAttribute("placeholder")
	}
	return lipgloss.NewStyle().Width(inputWidth(e)).Render(v)
}

// inputKind returns the type of an input element, "text" when unset, or ""
// for anything that is not an input.
func inputKind(e *dom.Element) string {
	if e.Tag() != "input" {
		return ""
	}
	if t := e.GetAttribute("type"); t != "" {
		return t
	}
	return "text"
}

func isTextInput(e *dom.Element) bool {
	k := inputKind(e)
	return k != "" && k != "checkbox"
}

func textBlock(s string) block {
	return block{s: s, w: lipgloss.Width(s), h: lipgloss.Height(s)}
}

func join(parts []block, row bool) block {
	var out block
	strs := make([]string, 0, len(parts)*2)
	offset := 0
	for i, p := range parts {
		if row && i > 0 {
			strs = append(strs, " ")
			offset++
		}
		strs = append(strs, p.s)
		for _, pl := range p.places {
			if row {
				out.places = append(out.places, placement{el: pl.el, r: pl.r.Offset(offset, 0)})
			} else {
				out.places = append(out.places, placement{el: pl.el, r: pl.r.Offset(0, offset)})
			}
		}
		if row {
			offset += p.w
		} else {
			offset += p.h
		}
	}
	if row {
		out.s = lipgloss.JoinHorizontal(lipgloss.Top, strs...)
	} else {
		out.s = lipgloss.JoinVertical(lipgloss.Left, strs...)
	}
	out.w, out.h = lipgloss.Width(out.s), lipgloss.Height(out.s)
	return out
}
