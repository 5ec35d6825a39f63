package forms

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/user/trim-timeline-cli/pkg/timeutil"
)

// SaveFormResult holds the data returned by a completed save form.
type SaveFormResult struct {
	Label  string
	Export bool
}

// NewSaveForm creates a huh form to label the current range before saving it.
func NewSaveForm(start, finish float64, result *SaveFormResult) *huh.Form {
	header := fmt.Sprintf("Save trim %s → %s", timeutil.FormatPrecise(start), timeutil.FormatPrecise(finish))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(header),

			huh.NewInput().
				Title("Label").
				Description("Optional").
				CharLimit(64).
				Value(&result.Label),

			huh.NewConfirm().
				Title("Export now?").
				Affirmative("Queue export").
				Negative("Just save").
				Value(&result.Export),
		),
	).WithTheme(Theme())
}
