// Package forms provides huh-based form components for the TUI.
package forms

import (
	"github.com/charmbracelet/huh"
)

// NewConfirmQuitForm asks whether to quit with an unsaved trim range.
// The result pointer is bound to the confirm field value.
func NewConfirmQuitForm(quit *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Quit without saving?").
				Description("The current trim range has not been saved.").
				Affirmative("Yes, quit").
				Negative("No, go back").
				Value(quit),
		),
	).WithTheme(Theme())
}
