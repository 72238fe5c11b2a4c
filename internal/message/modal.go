package message

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/marcus/modalkit/pkg/dom"
	"github.com/marcus/modalkit/pkg/modal"
)

// DefaultWidth is the word wrap width of the markdown body.
const DefaultWidth = 40

// Props configures a Modal.
type Props struct {
	IsOpen bool

	// Close is asked to flip the caller's open state to false.
	Close func()

	// Body is markdown.
	Body  string
	Width int
}

// Modal shows a short markdown message with a close button. Escape and a
// backdrop click close it too.
type Modal struct {
	props Props

	panel    *dom.Element
	body     *dom.Element
	closeBtn *dom.Element
	closeReg *dom.Registration
	m        *modal.Modal

	// source and width body.Text was rendered from
	source string
	width  int
}

// New returns an unmounted message modal.
func New(props Props) *Modal {
	return &Modal{props: props}
}

// Mount builds the panel and mounts the dialog.
func (mm *Modal) Mount(doc *dom.Document) error {
	mm.closeBtn = doc.Build("button", "Close", dom.Attrs{"type": "button", "aria-label": "close modal"})
	mm.body = doc.Build("div", "", dom.Attrs{"class": "message"})
	mm.panel = doc.Build("div", "", dom.Attrs{"class": "panel"},
		doc.Build("div", "", dom.Attrs{"layout": "row"}, mm.closeBtn),
		mm.body,
	)
	mm.closeReg = mm.closeBtn.AddEventListener(dom.EventClick, func(*dom.Event) { mm.close() })
	mm.renderBody()

	m, err := modal.Mount(doc, mm.modalProps())
	if err != nil {
		mm.closeReg.Remove()
		return fmt.Errorf("message modal: %w", err)
	}
	mm.m = m
	return nil
}

// Update re-renders with new props.
func (mm *Modal) Update(props Props) {
	mm.props = props
	if mm.m == nil {
		return
	}
	mm.renderBody()
	mm.m.Update(mm.modalProps())
}

// Unmount tears the dialog down.
func (mm *Modal) Unmount() {
	if mm.m == nil {
		return
	}
	mm.m.Unmount()
	mm.closeReg.Remove()
	mm.m = nil
}

// Modal returns the mounted dialog, nil before Mount.
func (mm *Modal) Modal() *modal.Modal { return mm.m }

// CloseButton returns the close button, nil before Mount.
func (mm *Modal) CloseButton() *dom.Element { return mm.closeBtn }

// Text returns the rendered body.
func (mm *Modal) Text() string {
	if mm.body == nil {
		return ""
	}
	return mm.body.Text
}

func (mm *Modal) modalProps() modal.Props {
	return modal.Props{
		IsOpen:     mm.props.IsOpen,
		OnEscape:   func(*dom.Event) { mm.close() },
		OnMouseOut: func(*dom.Event) { mm.close() },
		Class:      "backdrop",
		CloseClass: "closed",
		Attrs:      dom.Attrs{"aria-label": "Message"},
		Children:   []*dom.Element{mm.panel},
	}
}

func (mm *Modal) close() {
	if mm.props.Close != nil {
		mm.props.Close()
	}
}

// renderBody re-renders the markdown when the body or width changed.
func (mm *Modal) renderBody() {
	width := mm.props.Width
	if width <= 0 {
		width = DefaultWidth
	}
	if mm.props.Body == mm.source && width == mm.width {
		return
	}
	mm.source, mm.width = mm.props.Body, width
	mm.body.Text = renderMarkdown(mm.props.Body, width)
}

// renderMarkdown falls back to the raw text if glamour fails.
func renderMarkdown(text string, width int) string {
	if text == "" {
		return ""
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}

	rendered, err := renderer.Render(text)
	if err != nil {
		return text
	}

	// Glamour pads with blank lines on both sides.
	return strings.TrimRight(strings.TrimLeft(rendered, "\n"), "\n\r\t ")
}
