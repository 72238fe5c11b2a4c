package tui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/modalkit/pkg/dom"
)

// Default screen size until the first WindowSizeMsg arrives.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Component is a tree of elements the host mounts into its document.
type Component interface {
	Mount(doc *dom.Document) error
	Unmount()
}

// timerMsg fires the document timer with the given id.
type timerMsg struct {
	id int
}

// Host runs a document inside a bubbletea program. Every message is one
// task: it is dispatched into the document and pending observers are
// flushed before the next render.
type Host struct {
	doc      *dom.Document
	comp     Component
	renderer *Renderer
	inputs   *inputs

	width, height int
	scheduled     []tea.Cmd
	quitting      bool
}

// NewHost creates a document and mounts comp into it.
func NewHost(comp Component, renderer *Renderer) (*Host, error) {
	if renderer == nil {
		renderer = NewRenderer()
	}
	h := &Host{
		doc:      dom.NewDocument(),
		comp:     comp,
		renderer: renderer,
		inputs:   newInputs(),
		width:    DefaultWidth,
		height:   DefaultHeight,
	}
	if renderer.Input == nil {
		renderer.Input = h.inputs.view
	}
	h.doc.OnSchedule(h.schedule)

	if err := comp.Mount(h.doc); err != nil {
		return nil, fmt.Errorf("mount: %w", err)
	}
	h.doc.Flush()
	return h, nil
}

// Document returns the host's document.
func (h *Host) Document() *dom.Document { return h.doc }

// schedule turns a document timer into a tick that fires it.
func (h *Host) schedule(t *dom.Timer) {
	id := t.ID()
	h.scheduled = append(h.scheduled, tea.Tick(t.Delay(), func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
}

// Init implements tea.Model.
func (h *Host) Init() tea.Cmd {
	return h.settle(nil)
}

// Update implements tea.Model.
func (h *Host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width, h.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			h.quit()
			return h, tea.Quit
		}
		cmd = h.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			// Rects come from the last render, which is what the user clicked.
			h.doc.DispatchClick(msg.X, msg.Y)
		}

	case timerMsg:
		if !h.doc.Fire(msg.id) {
			slog.Debug("timer already cancelled", "id", msg.id)
		}

	default:
		// Cursor blinks and the like belong to the focused input.
		if e := h.doc.ActiveElement(); isTextInput(e) {
			cmd = h.inputs.update(e, msg)
		}
	}

	return h, h.settle(cmd)
}

func (h *Host) handleKey(msg tea.KeyMsg) tea.Cmd {
	key, shift := keyName(msg)
	ev := h.doc.DispatchKey(key, shift)
	if ev.DefaultPrevented() || navigationKey(key) {
		return nil
	}
	// The target kept focus through the default action, so it is still the
	// input the user typed into.
	if t := ev.Target; isTextInput(t) && t.Focused() {
		return h.inputs.update(t, msg)
	}
	return nil
}

// settle resyncs input models and collects the ticks for timers scheduled
// while handling the last message.
func (h *Host) settle(cmd tea.Cmd) tea.Cmd {
	cmds := append(h.scheduled, cmd, h.inputs.sync(h.doc))
	h.scheduled = nil
	return tea.Batch(cmds...)
}

func (h *Host) quit() {
	if h.quitting {
		return
	}
	h.quitting = true
	h.comp.Unmount()
	h.doc.Flush()
}

// View implements tea.Model.
func (h *Host) View() string {
	if h.quitting {
		return ""
	}
	return h.renderer.Render(h.doc, h.width, h.height)
}

// keyName maps a bubbletea key to the key value the document sees.
func keyName(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyTab:
		return dom.KeyTab, false
	case tea.KeyShiftTab:
		return dom.KeyTab, true
	case tea.KeyEsc:
		return dom.KeyEscape, false
	case tea.KeyEnter:
		return dom.KeyEnter, false
	case tea.KeySpace:
		return dom.KeySpace, false
	case tea.KeyBackspace:
		return dom.KeyBackspace, false
	case tea.KeyRunes:
		return string(msg.Runes), false
	}
	return msg.String(), false
}

func navigationKey(key string) bool {
	return key == dom.KeyTab || key == dom.KeyEscape || key == dom.KeyEnter
}
