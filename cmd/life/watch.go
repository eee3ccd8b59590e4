package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"life-engine/pkg/format"
	"life-engine/pkg/temporal"
)

// watchPattern reloads path into state whenever the file is written or
// replaced, until ctx is done. The parent directory is watched so that
// editors which save by renaming are picked up too.
func watchPattern(ctx context.Context, path string, f format.Format, state *temporal.State) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	slog.Debug("watching pattern file", slog.String("path", abs))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			s, err := loadCellState(abs, f, nil)
			if err != nil {
				slog.Warn("pattern reload failed", slog.String("path", abs), slog.Any("error", err))
				continue
			}
			state.SetCellState(s)
			slog.Info("pattern reloaded", slog.String("path", abs), slog.Int("population", s.Len()))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("pattern watcher error", slog.Any("error", err))

		case <-ctx.Done():
			return nil
		}
	}
}
