package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/born05/schematic/internal/logger"
)

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 200 * time.Millisecond

const documentExt = ".yml"

// watchDocument calls onChange after the document at path changes,
// until ctx is cancelled. path is a file or a split document directory.
func watchDocument(ctx context.Context, cmd *cobra.Command, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	info, err := os.Stat(path)
	isDir := err == nil && info.IsDir()
	dir := path
	if !isDir {
		// Editors often replace the file, so watch its directory.
		dir = filepath.Dir(path)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for changes (Ctrl+C to stop)\n", path)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !affectsDocument(event, path, isDir) {
				continue
			}
			logger.Debug("Watch event %s", event)
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		case <-fire:
			fire = nil
			onChange()
		}
	}
}

// affectsDocument reports whether event touches the watched document.
func affectsDocument(event fsnotify.Event, path string, isDir bool) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	if isDir {
		return filepath.Ext(event.Name) == documentExt
	}
	return filepath.Clean(event.Name) == filepath.Clean(path)
}
