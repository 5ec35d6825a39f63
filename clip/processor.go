package clip

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/user/trim-timeline-cli/db"
)

// ErrEmptyRange is returned when asked to export a range with no duration.
var ErrEmptyRange = errors.New("clip: empty trim range")

// Runner executes ffmpeg with args, returning its combined output.
type Runner func(ctx context.Context, args []string) ([]byte, error)

// FFmpeg runs the ffmpeg binary from PATH.
func FFmpeg(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// ExportArgs builds the ffmpeg arguments that cut [start, finish) out of
// videoPath into out. Seeking before -i keeps long videos fast; re-encoding
// keeps the cut frame-accurate.
func ExportArgs(videoPath string, start, finish float64, out string) []string {
	return []string{
		"-y",
		"-v", "error",
		"-ss", ffmpegTime(start),
		"-i", videoPath,
		"-t", ffmpegTime(finish - start),
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-c:a", "aac",
		"-movflags", "+faststart",
		out,
	}
}

// Export cuts a single trim synchronously.
func Export(ctx context.Context, run Runner, videoPath string, start, finish float64, out string) error {
	if finish <= start {
		return ErrEmptyRange
	}
	if run == nil {
		run = FFmpeg
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if output, err := run(ctx, ExportArgs(videoPath, start, finish, out)); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, bytes.TrimSpace(output))
	}
	return nil
}

// Processor is the background trim export worker.
type Processor struct {
	DB *sql.DB
	// Run defaults to FFmpeg.
	Run Runner
	// Interval between queue polls when idle. Defaults to 2s.
	Interval time.Duration
	// OnDone, if set, is called after each trim finishes.
	OnDone func(trimID int64, err error)
}

// Start launches a goroutine that continuously polls for pending trims and
// exports them. The goroutine exits when ctx is cancelled.
func (p *Processor) Start(ctx context.Context) {
	if n, err := db.ResetProcessingTrims(p.DB); err != nil {
		log.Printf("export: reset interrupted trims: %v", err)
	} else if n > 0 {
		log.Printf("export: re-queued %d interrupted trims", n)
	}

	interval := p.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	go func() {
		for {
			worked, err := p.ProcessNext(ctx)
			if err != nil {
				log.Printf("export: %v", err)
			}
			if worked {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(interval):
			}
		}
	}()
}

// ProcessNext exports the oldest pending trim. It reports whether a trim was
// taken from the queue and exported or marked failed.
func (p *Processor) ProcessNext(ctx context.Context) (bool, error) {
	if ctx.Err() != nil {
		return false, nil
	}
	t, err := db.SelectNextPendingTrim(p.DB)
	if err != nil {
		return false, err
	}
	if t == nil {
		return false, nil
	}

	// The trim stays pending; report no work so Start waits before retrying.
	if err := db.MarkTrimProcessing(p.DB, t.ID, time.Now()); err != nil {
		return false, err
	}

	out := t.OutputPath
	if out == "" {
		out = OutputPath(t.VideoPath, t.Start, t.Finish, t.Label)
	}

	exportErr := Export(ctx, p.Run, t.VideoPath, t.Start, t.Finish, out)
	if exportErr != nil {
		log.Printf("export: trim %d failed: %v", t.ID, exportErr)
		err = db.MarkTrimError(p.DB, t.ID, time.Now(), exportErr.Error())
	} else {
		log.Printf("export: trim %d written to %s", t.ID, out)
		err = db.MarkTrimComplete(p.DB, t.ID, time.Now())
	}
	if p.OnDone != nil {
		p.OnDone(t.ID, exportErr)
	}
	return true, err
}
