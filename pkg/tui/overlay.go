package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var scrim = lipgloss.NewStyle().Foreground(Muted).Faint(true)

func blankLines(height int) []string {
	return make([]string, max(height, 0))
}

// fitLines splits s into exactly height lines, truncating or padding with
// empty lines.
func fitLines(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	out := blankLines(height)
	for i := range out {
		if i < len(lines) {
			out[i] = ansi.Truncate(lines[i], width, "")
		}
	}
	return out
}

// padLine right pads an ANSI line with spaces to width cells.
func padLine(line string, width int) string {
	if n := ansi.StringWidth(line); n < width {
		return line + strings.Repeat(" ", width-n)
	}
	return line
}

// dim fades the page behind a dialog. Lines are padded first so the
// compositor can cut them at fixed columns.
func dim(lines []string, width int) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = scrim.Render(padLine(ansi.Strip(l), width))
	}
	return out
}

// overlay draws fg over bg with its top-left corner at (x, y). Cells of bg
// outside fg keep their styling.
func overlay(bg, fg []string, x, y, width int) []string {
	fgW := 0
	for _, l := range fg {
		fgW = max(fgW, ansi.StringWidth(l))
	}
	fgW = min(fgW, max(width-x, 0))
	if fgW == 0 {
		return bg
	}

	for i, fgLine := range fg {
		row := y + i
		if row < 0 || row >= len(bg) {
			continue
		}
		bgLine := padLine(bg[row], width)
		left := ansi.Cut(bgLine, 0, x)
		right := ansi.Cut(bgLine, x+fgW, width)

		if n := ansi.StringWidth(fgLine); n < fgW {
			fgLine += strings.Repeat(" ", fgW-n)
		} else if n > fgW {
			fgLine = ansi.Cut(fgLine, 0, fgW)
		}
		bg[row] = left + fgLine + right
	}
	return bg
}
