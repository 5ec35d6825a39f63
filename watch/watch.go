// Package watch notices when the video being trimmed is rewritten on disk.
package watch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type snapshot struct {
	size    int64
	modTime time.Time
}

func (s snapshot) equal(o snapshot) bool {
	return s.size == o.size && s.modTime.Equal(o.modTime)
}

// Watcher reports a change once the file has stopped changing for settleFor.
// fsnotify wakes the caller; Poll decides whether the change has settled.
type Watcher struct {
	path      string
	settleFor time.Duration
	fs        *fsnotify.Watcher

	mu        sync.Mutex
	stable    snapshot
	candidate snapshot
	since     time.Time
	pending   bool

	events chan struct{}
	done   chan struct{}
	once   sync.Once
}

// New creates a watcher for path. Start must be called before Poll.
func New(path string, settleFor time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	return &Watcher{
		path:      abs,
		settleFor: settleFor,
		fs:        fs,
		events:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start records the current state of the file and begins watching its
// directory. Editors and encoders often replace files by rename, so the
// directory is watched rather than the file itself.
func (w *Watcher) Start() error {
	snap, err := stat(w.path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.stable = snap
	w.mu.Unlock()

	if err := w.fs.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	go w.loop()
	return nil
}

// Events signals that the file may have changed. Signals coalesce.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Poll returns true exactly once per settled change.
func (w *Watcher) Poll(now time.Time) (bool, error) {
	snap, err := stat(w.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if snap.equal(w.stable) {
		w.pending = false
		return false, nil
	}
	if !w.pending || !snap.equal(w.candidate) {
		w.pending = true
		w.candidate = snap
		w.since = now
		return false, nil
	}
	if now.Sub(w.since) < w.settleFor {
		return false, nil
	}
	w.stable = snap
	w.pending = false
	return true, nil
}

// Pending reports whether a change has been seen but has not settled yet.
func (w *Watcher) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.once.Do(func() {
		close(w.done)
	})
	return w.fs.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != w.path {
				continue
			}
			w.signal()
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// Poll still sees the file, so wake the caller and let it decide.
			w.signal()
		}
	}
}

func (w *Watcher) signal() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}

func stat(path string) (snapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		return snapshot{}, err
	}
	if info.IsDir() {
		return snapshot{}, fmt.Errorf("%s is a directory", path)
	}
	return snapshot{size: info.Size(), modTime: info.ModTime()}, nil
}
