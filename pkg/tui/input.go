package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/modalkit/pkg/dom"
)

func inputWidth(e *dom.Element) int {
	if n, err := strconv.Atoi(e.GetAttribute("size")); err == nil && n > 0 {
		return n
	}
	return DefaultInputWidth
}

// inputs keeps one textinput model per text input element. The element's
// value attribute is the source of truth: models are resynced from it before
// every render so that resets done by listeners show up.
type inputs struct {
	models map[*dom.Element]*textinput.Model
}

func newInputs() *inputs {
	return &inputs{models: make(map[*dom.Element]*textinput.Model)}
}

func (in *inputs) model(e *dom.Element) *textinput.Model {
	if m, ok := in.models[e]; ok {
		return m
	}
	m := textinput.New()
	m.Prompt = ""
	m.Placeholder = e.GetAttribute("placeholder")
	m.Width = inputWidth(e)
	if inputKind(e) == "password" {
		m.EchoMode = textinput.EchoPassword
		m.EchoCharacter = '*'
	}
	in.models[e] = &m
	return &m
}

// update feeds msg to the model of the focused input and writes the new
// value back to the element.
func (in *inputs) update(e *dom.Element, msg tea.Msg) tea.Cmd {
	m := in.model(e)
	if m.Value() != e.Value() {
		m.SetValue(e.Value())
	}
	var focusCmd tea.Cmd
	if !m.Focused() {
		focusCmd = m.Focus()
	}
	next, cmd := m.Update(msg)
	*m = next
	if v := m.Value(); v != e.Value() {
		e.SetValue(v)
	}
	return tea.Batch(focusCmd, cmd)
}

// sync matches every model to its element's value and focus, and forgets
// models whose element left the document.
func (in *inputs) sync(doc *dom.Document) tea.Cmd {
	var cmds []tea.Cmd
	seen := make(map[*dom.Element]bool)
	doc.Body().Walk(func(e *dom.Element) {
		if !isTextInput(e) {
			return
		}
		seen[e] = true
		m := in.model(e)
		if m.Value() != e.Value() {
			m.SetValue(e.Value())
		}
		switch {
		case e.Focused() && !m.Focused():
			cmds = append(cmds, m.Focus())
		case !e.Focused() && m.Focused():
			m.Blur()
		}
	})
	for e := range in.models {
		if !seen[e] {
			delete(in.models, e)
		}
	}
	return tea.Batch(cmds...)
}

func (in *inputs) view(e *dom.Element) string {
	return in.model(e).View()
}
