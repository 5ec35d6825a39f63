package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/trim-timeline-cli/pkg/timeutil"
	"github.com/user/trim-timeline-cli/tui/styles"
)

// TrimRow is a saved trim as shown in the trims panel.
type TrimRow struct {
	ID     int64
	Start  float64
	Finish float64
	Label  string
	Status string
}

// TrimsPanel renders the saved trims of the current video, newest last,
// keeping at most height rows visible.
func TrimsPanel(rows []TrimRow, width, height int) string {
	if width < 10 || height < 1 {
		return ""
	}
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)
	dimStyle := lipgloss.NewStyle().Foreground(styles.Lavender)

	total := len(rows)
	var lines []string
	if total == 0 {
		lines = append(lines, dimStyle.Render(" No saved trims. Press w to save the current range."))
	}
	if len(rows) > height {
		rows = rows[len(rows)-height:]
	}
	for _, r := range rows {
		line := fmt.Sprintf(" %s #%-3d %s → %s  %6.2fs",
			statusIcon(r.Status),
			r.ID,
			timeutil.FormatPrecise(r.Start),
			timeutil.FormatPrecise(r.Finish),
			r.Finish-r.Start)
		if r.Label != "" {
			line += "  " + dimStyle.Render(r.Label)
		}
		lines = append(lines, ansi.Truncate(textStyle.Render(line), width-2, "…"))
	}
	return TabBox(fmt.Sprintf("Trims (%d)", total), lines, width)
}

func statusIcon(status string) string {
	switch status {
	case "pending":
		return lipgloss.NewStyle().Foreground(styles.Amber).Render("◌")
	case "processing":
		return lipgloss.NewStyle().Foreground(styles.Cyan).Render("◐")
	case "complete":
		return lipgloss.NewStyle().Foreground(styles.Green).Render("●")
	case "error":
		return lipgloss.NewStyle().Foreground(styles.Red).Render("✗")
	default:
		return lipgloss.NewStyle().Foreground(styles.Purple).Render("○")
	}
}
