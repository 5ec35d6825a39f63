package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/trim-timeline-cli/tui/styles"
)

// Control represents a single control with its display info.
type Control struct {
	Name     string
	Shortcut string
}

// ControlGroup is a titled set of controls.
type ControlGroup struct {
	Name     string
	Controls []Control
}

// GetControlGroups returns the keybindings shown in the controls line and the
// help overlay.
func GetControlGroups() []ControlGroup {
	return []ControlGroup{
		{
			Name: "Handles",
			Controls: []Control{
				{Name: "Grab start", Shortcut: "["},
				{Name: "Grab end", Shortcut: "]"},
				{Name: "Nudge", Shortcut: "h / l"},
				{Name: "Nudge ×5", Shortcut: "ctrl+← / ctrl+→"},
				{Name: "Release", Shortcut: "Enter"},
				{Name: "Cancel", Shortcut: "Esc"},
				{Name: "Drag", Shortcut: "Mouse"},
			},
		},
		{
			Name: "Strip",
			Controls: []Control{
				{Name: "Scroll", Shortcut: "H / L"},
				{Name: "Scroll", Shortcut: "shift+← / shift+→"},
				{Name: "Scroll", Shortcut: "Wheel"},
			},
		},
		{
			Name: "Playback",
			Controls: []Control{
				{Name: "Play/Pause", Shortcut: "Space"},
				{Name: "Restart trim", Shortcut: "0"},
			},
		},
		{
			Name: "Trims",
			Controls: []Control{
				{Name: "Save", Shortcut: "w"},
				{Name: "Save + export", Shortcut: "e"},
				{Name: "Session", Shortcut: "r"},
				{Name: "Help", Shortcut: "?"},
				{Name: "Quit", Shortcut: "q"},
			},
		},
	}
}

// ControlsLine renders the most used shortcuts on a single line, truncated to width.
func ControlsLine(width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(styles.Lavender)

	short := []Control{
		{Name: "start", Shortcut: "["},
		{Name: "end", Shortcut: "]"},
		{Name: "nudge", Shortcut: "h/l"},
		{Name: "scroll", Shortcut: "H/L"},
		{Name: "play", Shortcut: "space"},
		{Name: "save", Shortcut: "w"},
		{Name: "export", Shortcut: "e"},
		{Name: "session", Shortcut: "r"},
		{Name: "help", Shortcut: "?"},
	}
	parts := make([]string, 0, len(short))
	for _, c := range short {
		parts = append(parts, keyStyle.Render(c.Shortcut)+" "+nameStyle.Render(c.Name))
	}
	return ansi.Truncate(" "+strings.Join(parts, "  "), width, "…")
}
