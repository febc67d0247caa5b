package devserver

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	"node_modules",
	"*.tmp",
	"*.swp",
	"*~",
}

// Watcher reports debounced changes below a directory tree. New
// directories are watched as they appear.
type Watcher struct {
	root     string
	ignore   []string
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher

	mu       sync.Mutex
	onChange func(paths []string)
}

// NewWatcher watches every directory below root.
func NewWatcher(root string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:     root,
		ignore:   DefaultIgnore,
		debounce: debounce,
		logger:   logger.With("component", "watcher"),
		fsw:      fsw,
	}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// OnChange sets the callback for a batch of changed paths.
func (w *Watcher) OnChange(fn func(paths []string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// addTree watches dir and every directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && w.shouldIgnore(p) {
			return filepath.SkipDir
		}
		return w.fsw.Add(p)
	})
}

// Run delivers changes until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending []string
		seen    = make(map[string]bool)
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.shouldIgnore(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("watching new directory failed", "path", event.Name, "error", err)
					}
				}
			}
			if !seen[event.Name] {
				seen[event.Name] = true
				pending = append(pending, event.Name)
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			batch := pending
			pending = nil
			seen = make(map[string]bool)

			w.mu.Lock()
			fn := w.onChange
			w.mu.Unlock()
			if fn != nil {
				fn(batch)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}

// shouldIgnore checks if a path should be ignored.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	name := filepath.Base(fullPath)
	normalized := filepath.ToSlash(fullPath)

	for _, pattern := range w.ignore {
		if name == pattern {
			return true
		}
		if strings.ContainsAny(pattern, "*?[") {
			if matched, _ := filepath.Match(pattern, name); matched {
				return true
			}
			continue
		}
		if pathHasSegment(normalized, pattern) {
			return true
		}
	}
	return false
}

func pathHasSegment(path, segment string) bool {
	for _, part := range strings.Split(path, "/") {
		if part == segment {
			return true
		}
	}
	return false
}
