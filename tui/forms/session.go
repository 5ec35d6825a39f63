package forms

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/user/trim-timeline-cli/pkg/timeutil"
)

// SessionFormResult holds the raw field values of the session form.
type SessionFormResult struct {
	MinDuration    string
	MaxDuration    string
	FramesPerCycle string
}

// NewSessionFormResult pre-fills the form with the current session values.
func NewSessionFormResult(minDuration, maxDuration float64, framesPerCycle int) *SessionFormResult {
	return &SessionFormResult{
		MinDuration:    strconv.FormatFloat(minDuration, 'f', -1, 64),
		MaxDuration:    strconv.FormatFloat(maxDuration, 'f', -1, 64),
		FramesPerCycle: strconv.Itoa(framesPerCycle),
	}
}

// Values parses the form fields. Durations accept seconds, MM:SS or H:MM:SS.
func (r *SessionFormResult) Values() (minDuration, maxDuration float64, framesPerCycle int, err error) {
	if minDuration, err = timeutil.ParseTimeToSeconds(r.MinDuration); err != nil {
		return 0, 0, 0, fmt.Errorf("min duration: %w", err)
	}
	if maxDuration, err = timeutil.ParseTimeToSeconds(r.MaxDuration); err != nil {
		return 0, 0, 0, fmt.Errorf("max duration: %w", err)
	}
	if maxDuration < minDuration {
		return 0, 0, 0, fmt.Errorf("max duration must be at least the min duration")
	}
	if framesPerCycle, err = strconv.Atoi(r.FramesPerCycle); err != nil || framesPerCycle < 1 {
		return 0, 0, 0, fmt.Errorf("frames per cycle must be a positive integer")
	}
	return minDuration, maxDuration, framesPerCycle, nil
}

// NewSessionForm creates a huh form to restart the trim session with new
// duration limits. videoLength is shown in the header for reference.
func NewSessionForm(videoLength float64, result *SessionFormResult) *huh.Form {
	header := fmt.Sprintf("Trim session · video %s", timeutil.FormatPrecise(videoLength))

	duration := func(s string) error {
		if _, err := timeutil.ParseTimeToSeconds(s); err != nil {
			return err
		}
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(header).Description("Values are clamped to the video length."),

			huh.NewInput().
				Title("Min duration").
				Description("Shortest allowed trim").
				Value(&result.MinDuration).
				Validate(duration),

			huh.NewInput().
				Title("Max duration").
				Description("Initial and visible trim window").
				Value(&result.MaxDuration).
				Validate(duration),

			huh.NewInput().
				Title("Frames per cycle").
				Description("Thumbnails across the strip").
				Value(&result.FramesPerCycle).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 {
						return fmt.Errorf("enter a positive integer")
					}
					return nil
				}),
		),
	).WithTheme(Theme())
}
