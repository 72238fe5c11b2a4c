package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/modalkit/pkg/dom"
)

// Palette
var (
	Primary      = lipgloss.Color("212")
	Error        = lipgloss.Color("196")
	Warning      = lipgloss.Color("214")
	Info         = lipgloss.Color("45")
	Muted        = lipgloss.Color("241")
	BgSecondary  = lipgloss.Color("235")
	BorderNormal = lipgloss.Color("240")
)

// FocusSuffix marks the stylesheet entry used while an element has focus,
// e.g. "button:focus".
const FocusSuffix = ":focus"

// Stylesheet maps class names and tag names to styles.
type Stylesheet map[string]lipgloss.Style

// DefaultStylesheet returns the styles used by the demo.
func DefaultStylesheet() Stylesheet {
	button := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("238")).
		Padding(0, 2)

	return Stylesheet{
		"button": button,
		"button" + FocusSuffix: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(Primary).
			Bold(true).
			Padding(0, 2),

		"danger": button,
		"danger" + FocusSuffix: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(Error).
			Bold(true).
			Padding(0, 2),

		"input": lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(BorderNormal),
		"input" + FocusSuffix: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(Primary),

		"checkbox":               lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		"checkbox" + FocusSuffix: lipgloss.NewStyle().Foreground(Primary).Bold(true),

		"panel": lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2),
		"page":  lipgloss.NewStyle().Padding(1, 2),
		"title": lipgloss.NewStyle().Bold(true).MarginBottom(1),
		"muted": lipgloss.NewStyle().Foreground(Muted),
		"error": lipgloss.NewStyle().Foreground(Error),
		"info":  lipgloss.NewStyle().Foreground(Info),
	}
}

// For resolves the style of e. Class tokens are checked last to first, then
// the input kind and tag name. The first key present wins, using its focus
// variant when e is focused and the sheet has one. Elements matching
// nothing use their own Style.
func (s Stylesheet) For(e *dom.Element) lipgloss.Style {
	for _, k := range priority(e.Classes(), e) {
		base, ok := s[k]
		if !ok {
			continue
		}
		if e.Focused() {
			if focused, ok := s[k+FocusSuffix]; ok {
				return focused
			}
		}
		return base
	}
	return e.Style
}

// priority orders stylesheet keys for e from most to least specific.
func priority(classes []string, e *dom.Element) []string {
	keys := make([]string, 0, len(classes)+2)
	for i := len(classes) - 1; i >= 0; i-- {
		if !strings.HasSuffix(classes[i], FocusSuffix) {
			keys = append(keys, classes[i])
		}
	}
	if inputKind(e) == "checkbox" {
		keys = append(keys, "checkbox")
	}
	return append(keys, e.Tag())
}
