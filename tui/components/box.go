package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/trim-timeline-cli/tui/styles"
)

// TabBox wraps content lines in a rounded border with a tab-style title:
//
//	╭─ Title ─────╮
//	│content      │
//	╰─────────────╯
//
// Lines are padded to the inner width (width - 2) but never truncated.
func TabBox(title string, lines []string, width int) string {
	if width < 4 {
		return strings.Join(lines, "\n")
	}
	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	borderStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	inner := width - 2

	headerText := headerStyle.Render(" " + title + " ")
	fill := inner - 1 - lipgloss.Width(headerText)
	if fill < 0 {
		fill = 0
	}
	out := make([]string, 0, len(lines)+2)
	out = append(out, borderStyle.Render("╭─")+headerText+borderStyle.Render(strings.Repeat("─", fill)+"╮"))

	side := borderStyle.Render("│")
	for _, line := range lines {
		pad := inner - lipgloss.Width(line)
		if pad < 0 {
			pad = 0
		}
		out = append(out, side+line+strings.Repeat(" ", pad)+side)
	}
	out = append(out, borderStyle.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return strings.Join(out, "\n")
}
