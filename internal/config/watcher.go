package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/vilaca/api-explorer/internal/domain"
)

// Logger interface for logging operations (Interface Segregation Principle).
type Logger interface {
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
}

// Watch reloads the backend registry whenever the file changes and passes
// the new list to onChange. Files that fail validation are logged and skipped.
// Blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, logger Logger, onChange func([]domain.Backend)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			backends, err := LoadBackends(path)
			if err != nil {
				logger.Warnw("ignoring invalid backends file", "path", path, "error", err)
				continue
			}
			logger.Infow("reloaded backends", "path", path, "count", len(backends))
			onChange(backends)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("backends watcher error", "error", err)
		}
	}
}
