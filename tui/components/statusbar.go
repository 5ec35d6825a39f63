// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/trim-timeline-cli/pkg/timeutil"
	"github.com/user/trim-timeline-cli/tui/styles"
)

// StatusBarState holds the current playback state for the status bar.
type StatusBarState struct {
	// Paused indicates if playback is paused
	Paused bool
	// TimePos is the current playback position in seconds
	TimePos float64
	// Duration is the total video duration in seconds
	Duration float64
	// Filename is the base name of the video being trimmed
	Filename string
	// Unsaved is set when the range changed since the last save
	Unsaved bool
	// Exports is the number of trims waiting for or in export
	Exports int
}

// StatusBar renders the status bar component.
// Left: play/pause icon, position / duration and the video name.
// Right: unsaved marker and the export queue length.
func StatusBar(state StatusBarState, width int) string {
	playIcon := "▶"
	if state.Paused {
		playIcon = "⏸"
	}

	leftContent := fmt.Sprintf(" %s %s / %s  %s", playIcon,
		timeutil.FormatPrecise(state.TimePos),
		timeutil.FormatTime(state.Duration),
		state.Filename)

	var right []string
	if state.Unsaved {
		right = append(right, "● unsaved")
	}
	if state.Exports > 0 {
		right = append(right, fmt.Sprintf("⇪ %d exporting", state.Exports))
	}
	rightContent := strings.Join(right, "  ") + " "

	padding := width - lipgloss.Width(leftContent) - lipgloss.Width(rightContent)
	if padding < 0 {
		padding = 0
	}
	content := leftContent + strings.Repeat(" ", padding) + rightContent

	return lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		Width(width).
		Render(content)
}

// ResultLine renders a transient message below the strip. Errors use the
// warning style.
func ResultLine(msg string, isError bool, width int) string {
	if msg == "" {
		return ""
	}
	style := styles.Success
	if isError {
		style = styles.Warning
	}
	return style.Render(" " + truncate(msg, width-2))
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
