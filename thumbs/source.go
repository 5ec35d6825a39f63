// Package thumbs materializes thumbnail frames for the trim timeline with ffmpeg.
package thumbs

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/user/trim-timeline-cli/timeline"
	"golang.org/x/sync/errgroup"
)

// Frame is a thumbnail delivered by a Source.
type Frame struct {
	Generation uint64
	Index      int
	Seconds    float64
	Step       float64
	Path       string
	Preview    Cells
}

// Extractor writes the frame at seconds of videoPath to out as a JPEG.
type Extractor func(ctx context.Context, videoPath string, seconds float64, width int, out string) error

// Source implements timeline.FrameSource. Each request runs in the background
// on a bounded worker pool; a new request or CancelPending cancels the previous
// one, killing its ffmpeg processes.
type Source struct {
	videoPath string
	cacheRoot string
	cacheDir  string
	width     int
	workers   int
	deliver   func(Frame)

	// Extract defaults to FFmpegExtract.
	Extract Extractor

	mu         sync.Mutex
	cancel     context.CancelFunc
	generation uint64
	cols, rows int
	wg         sync.WaitGroup
}

var _ timeline.FrameSource = (*Source)(nil)

// NewSource returns a source for videoPath caching frames under cacheDir.
// deliver is called from worker goroutines for every materialized frame.
func NewSource(videoPath, cacheDir string, width, workers int, deliver func(Frame)) *Source {
	if workers < 1 {
		workers = 1
	}
	return &Source{
		videoPath: videoPath,
		cacheRoot: cacheDir,
		cacheDir:  filepath.Join(cacheDir, videoKey(videoPath)),
		width:     width,
		workers:   workers,
		deliver:   deliver,
		Extract:   FFmpegExtract,
		cols:      8,
		rows:      2,
	}
}

// SetCellSize sets the preview size in terminal cells for later requests.
func (s *Source) SetCellSize(cols, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cols, s.rows = cols, rows
}

// Refresh cancels pending work and re-keys the cache after the video file
// changed on disk.
func (s *Source) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.cacheDir = filepath.Join(s.cacheRoot, videoKey(s.videoPath))
}

// Generation returns the generation of the latest request.
func (s *Source) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// RequestFrames supersedes any pending request and starts materializing w.
func (s *Source) RequestFrames(w timeline.Window) {
	if w.Empty() {
		return
	}
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.generation++
	gen := s.generation
	cols, rows := s.cols, s.rows
	dir := s.cacheDir
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.run(ctx, dir, gen, w, cols, rows); err != nil && ctx.Err() == nil {
			log.Printf("thumbs: window [%.2f, %.2f]: %v", w.Start, w.Finish, err)
		}
	}()
}

// CancelPending drops the in-flight request, if any.
func (s *Source) CancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Wait blocks until every started request has finished or been cancelled.
func (s *Source) Wait() {
	s.wg.Wait()
}

func (s *Source) run(ctx context.Context, cacheDir string, gen uint64, w timeline.Window, cols, rows int) error {
	dir := filepath.Join(cacheDir, fmt.Sprintf("%d", int64(math.Round(w.Step*1000))))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, ft := range FrameTimes(w) {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			out := filepath.Join(dir, fmt.Sprintf("%06d.jpg", ft.Index))
			if _, err := os.Stat(out); err != nil {
				if err := s.extractAtomic(ctx, ft.Seconds, out); err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					log.Printf("thumbs: frame %d at %.2fs: %v", ft.Index, ft.Seconds, err)
					return nil
				}
			}
			preview, err := Preview(out, cols, rows)
			if err != nil {
				log.Printf("thumbs: preview %s: %v", out, err)
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if s.deliver != nil {
				s.deliver(Frame{
					Generation: gen,
					Index:      ft.Index,
					Seconds:    ft.Seconds,
					Step:       w.Step,
					Path:       out,
					Preview:    preview,
				})
			}
			return nil
		})
	}
	return g.Wait()
}

// extractAtomic extracts into a temp file and renames it so a cancelled
// extraction never leaves a partial cache entry.
func (s *Source) extractAtomic(ctx context.Context, seconds float64, out string) error {
	tmp := out + ".part.jpg"
	if err := s.Extract(ctx, s.videoPath, seconds, s.width, tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, out)
}

// FrameTime is a thumbnail slot inside a window.
type FrameTime struct {
	Index   int
	Seconds float64
}

// FrameTimes lists the thumbnail slots covered by w. Slot i sits at i*w.Step.
func FrameTimes(w timeline.Window) []FrameTime {
	if w.Empty() || w.Finish <= w.Start {
		return nil
	}
	first := int(math.Floor(w.Start/w.Step + 1e-9))
	last := int(math.Ceil(w.Finish/w.Step - 1e-9))
	if last <= first {
		last = first + 1
	}
	times := make([]FrameTime, 0, last-first)
	for i := first; i < last; i++ {
		times = append(times, FrameTime{Index: i, Seconds: float64(i) * w.Step})
	}
	return times
}

// FFmpegExtract grabs a single frame with ffmpeg, scaled to width pixels.
func FFmpegExtract(ctx context.Context, videoPath string, seconds float64, width int, out string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-v", "error",
		"-y",
		"-ss", fmt.Sprintf("%.3f", seconds),
		"-i", videoPath,
		"-frames:v", "1",
		"-vf", fmt.Sprintf("scale=%d:-2", width),
		"-q:v", "5",
		out,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, stderr.String())
	}
	return nil
}

// videoKey identifies a version of a video file by path, size and mtime.
func videoKey(videoPath string) string {
	key := videoPath
	if info, err := os.Stat(videoPath); err == nil {
		key = fmt.Sprintf("%s|%d|%d", videoPath, info.Size(), info.ModTime().UnixNano())
	}
	sum := sha1.Sum([]byte(key))
	return hex.EncodeToString(sum[:8])
}
