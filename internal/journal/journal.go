// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package journal records applied message batches in a local SQLite
// database.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/loom-tui/internal/protocol"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed   = errors.New("journal closed")
	ErrNotFound = errors.New("batch not found")
)

// =============================================================================
// JOURNAL
// =============================================================================

// Entry is one recorded batch.
type Entry struct {
	ID         string
	Prompt     string
	Payload    []byte
	ReceivedAt time.Time
}

// Journal is an append-only log of message batches.
type Journal struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

const schema = `
CREATE TABLE IF NOT EXISTS batches (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL UNIQUE,
	prompt      TEXT NOT NULL,
	payload     BLOB NOT NULL,
	received_at TEXT NOT NULL
);
`

// Open opens (or creates) a journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Record appends a batch and returns its assigned id. The payload is
// the raw JSON exactly as received, so replay re-decodes the same
// bytes the interpreter originally saw.
func (j *Journal) Record(prompt string, payload []byte) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return "", ErrClosed
	}

	id := uuid.NewString()
	_, err := j.db.Exec(
		`INSERT INTO batches (id, prompt, payload, received_at) VALUES (?, ?, ?, ?)`,
		id, prompt, payload, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("record batch: %w", err)
	}
	return id, nil
}

// Entries returns all recorded batches in receipt order.
func (j *Journal) Entries() ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil, ErrClosed
	}

	rows, err := j.db.Query(`SELECT id, prompt, payload, received_at FROM batches ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &e.Prompt, &e.Payload, &ts); err != nil {
			return nil, err
		}
		e.ReceivedAt, _ = time.Parse(time.RFC3339Nano, ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns one recorded batch by id.
func (j *Journal) Get(id string) (Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return Entry{}, ErrClosed
	}

	var e Entry
	var ts string
	err := j.db.QueryRow(
		`SELECT id, prompt, payload, received_at FROM batches WHERE id = ?`, id,
	).Scan(&e.ID, &e.Prompt, &e.Payload, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}
	e.ReceivedAt, _ = time.Parse(time.RFC3339Nano, ts)
	return e, nil
}

// Len returns the number of recorded batches.
func (j *Journal) Len() (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return 0, ErrClosed
	}
	var n int
	err := j.db.QueryRow(`SELECT COUNT(*) FROM batches`).Scan(&n)
	return n, err
}

// Close releases the database handle. Further calls return ErrClosed.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.db.Close()
}

// =============================================================================
// REPLAY
// =============================================================================

// Replay folds every recorded batch, in receipt order, into apply.
// Batches that no longer decode are skipped rather than aborting the
// whole replay; the count of applied batches is returned.
func (j *Journal) Replay(apply func([]protocol.Message) error) (int, error) {
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
		if err := apply(batch); err != nil {
			return applied, fmt.Errorf("replay batch %s: %w", e.ID, err)
		}
		applied++
	}
	return applied, nil
}
