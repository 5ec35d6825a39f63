package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/trim-timeline-cli/tui/styles"
)

// helpColumnWidth is the width of one keybinding group in the overlay.
const helpColumnWidth = 34

// HelpOverlay renders every keybinding group in a panel centred in a
// width x height area. Groups sit side by side when the terminal is wide
// enough and stack otherwise.
func HelpOverlay(width, height int) string {
	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true).Width(18)
	descStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)

	var blocks []string
	for _, group := range GetControlGroups() {
		lines := []string{headerStyle.Render(group.Name)}
		for _, c := range group.Controls {
			lines = append(lines, keyStyle.Render(c.Shortcut)+descStyle.Render(c.Name))
		}
		blocks = append(blocks, lipgloss.NewStyle().Width(helpColumnWidth).Render(strings.Join(lines, "\n")))
	}

	perRow := (width - 8) / helpColumnWidth
	if perRow < 1 {
		perRow = 1
	}
	var rows []string
	for i := 0; i < len(blocks); i += perRow {
		end := i + perRow
		if end > len(blocks) {
			end = len(blocks)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, blocks[i:end]...))
	}

	body := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true).Render("Keybindings") + "\n\n" +
		strings.Join(rows, "\n\n") + "\n\n" +
		lipgloss.NewStyle().Foreground(styles.Lavender).Italic(true).Render("Press any key to close")

	panel := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BrightPurple).
		Padding(1, 2).
		Render(body)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
