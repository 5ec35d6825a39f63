package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/trim-timeline-cli/tui/styles"
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func button(bg, text lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(bg).Foreground(text).Padding(0, 1)
}

// Theme returns the huh theme used by the trimmer dialogs.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	f := &t.Focused
	f.Base = f.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.BrightPurple).
		PaddingLeft(1)
	f.Title = fg(styles.Pink).Bold(true)
	f.Description = fg(styles.Lavender)
	f.ErrorIndicator = fg(styles.Pink).Bold(true)
	f.ErrorMessage = fg(styles.Pink)
	f.SelectSelector = fg(styles.Cyan).SetString("▸ ")
	f.Option = fg(styles.LightLavender)
	f.SelectedOption = fg(styles.Cyan)
	f.UnselectedOption = fg(styles.Lavender)
	f.TextInput.Cursor = fg(styles.Cyan)
	f.TextInput.Placeholder = fg(styles.Purple)
	f.TextInput.Prompt = fg(styles.Cyan)
	f.TextInput.Text = fg(styles.LightLavender)
	f.FocusedButton = button(styles.BrightPurple, styles.LightLavender).Bold(true)
	f.BlurredButton = button(styles.Purple, styles.Lavender)
	f.NoteTitle = fg(styles.Cyan).Bold(true)
	f.Next = f.FocusedButton

	b := &t.Blurred
	b.Base = b.Base.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true).
		PaddingLeft(1)
	b.Title = fg(styles.Lavender)
	b.Description = fg(styles.Purple)
	b.ErrorIndicator = fg(styles.Pink)
	b.ErrorMessage = fg(styles.Pink)
	b.SelectSelector = lipgloss.NewStyle().SetString("  ")
	b.Option = fg(styles.Lavender)
	b.TextInput.Cursor = fg(styles.Purple)
	b.TextInput.Placeholder = fg(styles.Purple)
	b.TextInput.Prompt = fg(styles.Purple)
	b.TextInput.Text = fg(styles.Lavender)
	b.FocusedButton = button(styles.Purple, styles.Lavender)
	b.BlurredButton = button(styles.DeepPurple, styles.Purple)
	b.NoteTitle = fg(styles.Lavender)
	b.Next = b.FocusedButton

	return t
}
