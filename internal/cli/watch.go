package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/mdlstyle/internal/logging"
)

// watchDebounce is how long check --watch waits for writes to settle.
const watchDebounce = 200 * time.Millisecond

// styleWatcher reports changes to a set of style files. It watches their
// directories because editors often replace a file instead of writing it.
type styleWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
}

func newStyleWatcher(paths []string) (*styleWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	sw := &styleWatcher{watcher: watcher, files: make(map[string]bool, len(paths))}
	dirs := make(map[string]bool)

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("resolve %s: %w", path, err)
		}
		sw.files[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	return sw, nil
}

// matches reports whether event changes one of the watched files.
func (sw *styleWatcher) matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	return sw.files[filepath.Clean(event.Name)]
}

// Run calls onChange once per burst of changes, delay after the last one.
// It returns nil when ctx is done and closes the watcher.
func (sw *styleWatcher) Run(ctx context.Context, delay time.Duration, onChange func()) error {
	defer sw.watcher.Close()

	logger := logging.FromContext(ctx)
	timer := time.NewTimer(delay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return nil
			}
			if sw.matches(event) {
				logger.Debug("style changed", logging.FieldPath, event.Name)
				timer.Reset(delay)
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)

		case <-timer.C:
			onChange()
		}
	}
}
