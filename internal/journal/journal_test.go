// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package journal records applied message batches in a local SQLite
// database.
package journal

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/jeranaias/loom-tui/internal/surface"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndEntries(t *testing.T) {
	j := openTestJournal(t)

	first, err := j.Record("hello", []byte(`[{"createSurface":{"surfaceId":"a","catalogId":"std"}}]`))
	if err != nil {
		t.Fatal(err)
	}
	second, err := j.Record("again", []byte(`[{"deleteSurface":{"surfaceId":"a"}}]`))
	if err != nil {
		t.Fatal(err)
	}

	entries, err := j.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].ID != first || entries[1].ID != second {
		t.Error("entries must come back in receipt order")
	}
	if entries[0].Prompt != "hello" {
		t.Errorf("prompt = %q", entries[0].Prompt)
	}
}

func TestGet(t *testing.T) {
	j := openTestJournal(t)
	id, _ := j.Record("p", []byte(`[]`))

	e, err := j.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if e.ID != id {
		t.Errorf("got %q", e.ID)
	}

	if _, err := j.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestReplayRebuildsStore(t *testing.T) {
	j := openTestJournal(t)
	j.Record("create", []byte(`[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [{"id": "root", "type": "Text", "text": "hi"}]}}
	]`))
	j.Record("garbage", []byte(`{"not": "a batch"}`))
	j.Record("more", []byte(`[
		{"updateDataModel": {"surfaceId": "main", "path": "/k", "value": 1}}
	]`))

	store := surface.NewStore()
	applied, err := j.Replay(store.Apply)
	if err != nil {
		t.Fatal(err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2 (garbage skipped)", applied)
	}
	if store.Len() != 1 {
		t.Errorf("store should hold the replayed surface")
	}
}

func TestClosedJournal(t *testing.T) {
	j := openTestJournal(t)
	j.Close()

	if _, err := j.Record("x", []byte(`[]`)); !errors.Is(err, ErrClosed) {
		t.Errorf("Record after close = %v", err)
	}
	if _, err := j.Entries(); !errors.Is(err, ErrClosed) {
		t.Errorf("Entries after close = %v", err)
	}
	if err := j.Close(); err != nil {
		t.Errorf("double close should be fine: %v", err)
	}
}
