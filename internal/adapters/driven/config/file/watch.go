package file

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
	"github.com/tidewater-labs/lakeview-cli/internal/logger"
)

// Watch reloads the store when the config file changes on disk and
// calls onChange with the new effective settings. It blocks until the
// context is cancelled. Long-running surfaces (the MCP server) use
// this so edits take effect without a restart.
func (s *ConfigStore) Watch(ctx context.Context, onChange func(domain.Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace the file on
	// save, which would drop a file-level watch.
	if err := watcher.Add(s.configDir()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != s.filePath {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}

			if err := s.Load(); err != nil {
				logger.Warn("Config reload failed: %v", err)
				continue
			}
			logger.Info("Config reloaded from %s", s.filePath)
			if onChange != nil {
				onChange(s.Settings())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Config watcher error: %v", err)
		}
	}
}
