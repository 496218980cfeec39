package overlay

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// debounceDelay coalesces bursts of events (editors often write a
// file several times in quick succession).
const debounceDelay = 500 * time.Millisecond

// Watch watches the given files and invokes reload after any of them
// changes, debounced. It watches the parent directories so that
// rename-and-replace saves are seen, and filters events back down to
// the named files. Watch returns once the watcher is running; it stops
// when ctx is cancelled.
func Watch(ctx context.Context, paths []string, logger zerolog.Logger, reload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	watched := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Failed to watch path")
			continue
		}
		watched[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, seen := dirs[dir]; seen {
			continue
		}
		dirs[dir] = struct{}{}
		if err := watcher.Add(dir); err != nil {
			logger.Warn().Err(err).Str("path", dir).Msg("Failed to watch directory")
		}
	}

	go processEvents(ctx, watcher, watched, logger, reload)

	logger.Info().Int("paths", len(watched)).Msg("Started watching configuration layers")
	return nil
}

// Relevant reports whether an event concerns one of the watched files
// with an op that changes content.
func Relevant(event fsnotify.Event, watched map[string]struct{}) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := watched[abs]
	return ok
}

func processEvents(ctx context.Context, watcher *fsnotify.Watcher, watched map[string]struct{}, logger zerolog.Logger, reload func()) {
	var reloadTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			_ = watcher.Close()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !Relevant(event, watched) {
				continue
			}
			logger.Debug().
				Str("file", event.Name).
				Str("op", event.Op.String()).
				Msg("Configuration layer changed")
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			reloadTimer = time.AfterFunc(debounceDelay, reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Error().Err(err).Msg("Watcher error")
		}
	}
}
