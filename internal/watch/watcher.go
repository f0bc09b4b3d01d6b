// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch re-applies a protocol fixture file whenever it changes
// on disk.
package watch

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the write bursts editors produce when
// saving a file.
const DefaultDebounce = 200 * time.Millisecond

// Watcher delivers the contents of one file every time it changes.
type Watcher struct {
	path     string
	debounce time.Duration
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string) *Watcher {
	return &Watcher{path: path, debounce: DefaultDebounce}
}

// Run reads the file once immediately, then invokes onChange with the
// file's contents after every (debounced) modification until ctx is
// cancelled. Editors that replace-on-save (rename over the original)
// are handled by watching the directory rather than the file itself.
func (w *Watcher) Run(ctx context.Context, onChange func([]byte)) error {
	deliver := func() {
		data, err := os.ReadFile(w.path)
		if err != nil {
			log.Printf("watch: read %s: %v", w.path, err)
			return
		}
		onChange(data)
	}
	deliver()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return err
	}

	target := filepath.Clean(w.path)
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Debounce: restart the timer on every event in a burst.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			deliver()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		}
	}
}
