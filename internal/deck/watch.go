package deck

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDelay = 100 * time.Millisecond

// Watch signals on the returned channel whenever the deck file is written or
// replaced. Bursts of writes collapse into one signal. The channel is closed
// once ctx is done or the watcher fails.
func Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("deck: create watcher: %w", err)
	}

	// Editors often replace the file, so watch the directory and filter by name
	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("deck: resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("deck: watch %s: %w", abs, err)
	}

	reloads := make(chan struct{}, 1)
	go func() {
		defer close(reloads)
		defer watcher.Close()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Deck: watcher error: %v", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				pending = time.After(reloadDelay)
			case <-pending:
				pending = nil
				select {
				case reloads <- struct{}{}:
				default:
					// A reload is already queued
				}
			}
		}
	}()

	return reloads, nil
}
