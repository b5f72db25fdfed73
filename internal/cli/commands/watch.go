package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/sqlequiv/pkg/equiv"
)

const watchDebounce = 100 * time.Millisecond

func watchCompare(ctx context.Context, cc *CommandContext, cmp *equiv.Comparator, sourcePath, targetPath string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	run := func() {
		if _, err := cc.compareFiles(ctx, cmp, sourcePath, targetPath); err != nil {
			cc.Renderer.Error(err.Error())
		}
	}
	run()
	cc.Renderer.Muted("Watching for changes. Press Ctrl+C to stop.")

	return watchFiles(ctx, []string{sourcePath, targetPath}, cc.Logger, func() {
		cc.Renderer.Println("")
		run()
	})
}

// watchFiles calls onChange after writes to any of paths settle, until ctx
// is done. Parent directories are watched so that editors replacing the
// file are noticed.
func watchFiles(ctx context.Context, paths []string, logger *slog.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		watched[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			debounce = time.After(watchDebounce)

		case <-debounce:
			debounce = nil
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
