// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// replay_cmd.go - Journal replay for the loom CLI.
//
// Command: replay
// Short:   Rebuild surfaces from journaled batches and render them
//
// Examples:
//   loom replay                       Replay the whole journal
//   loom replay --list                List journaled batches
//   loom replay --id 4f1c...          Replay up to one batch, inclusive
//   loom replay --journal /tmp/j.db   Use a specific journal database
package cli

import (
	"fmt"

	"github.com/jeranaias/loom-tui/internal/config"
	"github.com/jeranaias/loom-tui/internal/journal"
	"github.com/jeranaias/loom-tui/internal/protocol"
	"github.com/jeranaias/loom-tui/internal/surface"
	"github.com/jeranaias/loom-tui/internal/util"
)

// HandleReplay lists or replays the journal.
func HandleReplay(args *ArgParser) error {
	path := args.Flag("journal")
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		path, err = cfg.JournalPath()
		if err != nil {
			return err
		}
	}

	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	if args.BoolFlag("list") {
		return listEntries(j)
	}
	return replayEntries(j, args.Flag("id"), args.Flag("surface"))
}

// listEntries prints one line per journaled batch.
func listEntries(j *journal.Journal) error {
	entries, err := j.Entries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("journal is empty")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %s  %s\n",
			e.ID,
			e.ReceivedAt.Format("2006-01-02 15:04:05"),
			util.TruncateRunes(e.Prompt, 60))
	}
	return nil
}

// replayEntries folds batches into a fresh store and renders the
// resulting surfaces. With an id, replay stops after that batch so the
// UI can be inspected mid-conversation.
func replayEntries(j *journal.Journal, stopID, surfaceID string) error {
	store := surface.NewStore()

	var applied int
	var err error
	if stopID == "" {
		applied, err = j.Replay(store.Apply)
	} else {
		applied, err = replayUntil(j, store, stopID)
	}
	if err != nil {
		return err
	}

	out, err := renderStore(store, surfaceID, GetTerminalWidth())
	if err != nil {
		return err
	}
	fmt.Println(out)
	fmt.Printf("\nreplayed %d batch(es)\n", applied)
	return nil
}

// replayUntil applies entries up to and including stopID.
func replayUntil(j *journal.Journal, store *surface.Store, stopID string) (int, error) {
	if _, err := j.Get(stopID); err != nil {
		return 0, err
	}

	entries, err := j.Entries()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, e := range entries {
		batch, err := protocol.DecodeBatch(e.Payload)
		if err != nil {
			continue
		}
		if err := store.Apply(batch); err != nil {
			return applied, fmt.Errorf("replay batch %s: %w", e.ID, err)
		}
		applied++
		if e.ID == stopID {
			break
		}
	}
	return applied, nil
}
