// Package layout fits rendered views to the terminal.
package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/trim-timeline-cli/tui/styles"
)

// PadToWidth pads or truncates s to exactly width cells. Truncation is
// ANSI-aware so styled text keeps its escape sequences balanced.
func PadToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w > width {
		s = ansi.Truncate(s, width, "")
		w = lipgloss.Width(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// Fit clips view to a width x height screen. When lines are cut off the
// last row says so.
func Fit(view string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
		more := lipgloss.NewStyle().Foreground(styles.Purple).Render("↓ enlarge the terminal to see more")
		lines[height-1] = more
	}
	for i, line := range lines {
		lines[i] = PadToWidth(line, width)
	}
	return strings.Join(lines, "\n")
}
