package db

import "time"

// Trim export statuses.
const (
	StatusSaved      = "saved"
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusComplete   = "complete"
	StatusError      = "error"
)

// Video represents a row in the videos table.
type Video struct {
	ID        int64
	Path      string
	Filename  string
	Extension string
	Filesize  int64
	Duration  float64
}

// Trim represents a row in the trims table joined with its video path.
type Trim struct {
	ID         int64
	VideoID    int64
	VideoPath  string
	Start      float64
	Finish     float64
	Label      string
	Status     string
	OutputPath string
	Log        string
	CreatedAt  time.Time
	StartedAt  *time.Time
	FinishedAt *time.Time
}

// Duration returns the length of the trimmed range in seconds.
func (t Trim) Duration() float64 {
	return t.Finish - t.Start
}
