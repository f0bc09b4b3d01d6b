// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// watch_cmd.go - Live re-rendering of a batch file for the loom CLI.
//
// Command: watch
// Short:   Render a batch file and re-render whenever it changes
//
// The screen is cleared and redrawn on every save, which makes the
// command a tight feedback loop for hand-editing protocol fixtures.
//
// Examples:
//   loom watch examples/contact.json
//   loom watch batch.json --surface form
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeranaias/loom-tui/internal/protocol"
	"github.com/jeranaias/loom-tui/internal/surface"
	"github.com/jeranaias/loom-tui/internal/watch"
)

// HandleWatch renders a batch file and re-renders on every change
// until interrupted.
func HandleWatch(args *ArgParser) error {
	path, err := args.RequirePositional(0, "batch file")
	if err != nil {
		return err
	}
	surfaceID := args.Flag("surface")
	width := GetTerminalWidth()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	watcher := watch.NewWatcher(path)
	err = watcher.Run(ctx, func(payload []byte) {
		// Each save replaces the whole world: a fresh store keeps
		// deleted surfaces from lingering across edits.
		store := surface.NewStore()

		batch, err := protocol.DecodeBatch(payload)
		if err != nil {
			clearScreen()
			fmt.Fprintf(os.Stderr, "decode %s: %v\n", path, err)
			return
		}
		if err := store.Apply(batch); err != nil {
			clearScreen()
			fmt.Fprintf(os.Stderr, "apply %s: %v\n", path, err)
			return
		}

		out, err := renderStore(store, surfaceID, width)
		if err != nil {
			clearScreen()
			fmt.Fprintln(os.Stderr, err)
			return
		}
		clearScreen()
		fmt.Println(out)
		fmt.Printf("\nwatching %s (Ctrl+C to stop)\n", path)
	})

	if err == context.Canceled {
		return nil
	}
	return err
}

// clearScreen resets the terminal between redraws; a no-op when piped.
func clearScreen() {
	if IsStdoutTTY() {
		fmt.Print("\033[2J\033[H")
	}
}
