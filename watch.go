package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// watchSource regenerates path every time it is written until ctx is done.
// The parent directory is watched so editors that replace files on save are
// picked up too.
func watchSource(ctx context.Context, path string, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("unable to watch %s: %w", path, err)
	}

	regenerate := func() {
		b, err := os.ReadFile(path)
		if err != nil {
			log.Error("Could not read script", "path", path, "error", err)
			return
		}
		if err := executeCLI(string(b), w); err != nil {
			log.Error("Could not generate ssml", "path", path, "error", err)
		}
	}

	regenerate()
	log.Debug("Watching script", "path", path)

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			log.Debug("Script changed", "op", ev.Op.String())
			regenerate()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher error", "error", err)
		}
	}
}
