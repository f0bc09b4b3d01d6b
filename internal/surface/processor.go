// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package surface holds the authoritative per-surface state.
package surface

import (
	"log"

	"github.com/jeranaias/loom-tui/internal/datapath"
	"github.com/jeranaias/loom-tui/internal/protocol"
)

// =============================================================================
// MESSAGE PROCESSOR
// =============================================================================

// Apply folds an ordered message batch over the store. The whole batch
// is validated up front so a malformed batch is rejected before any
// element takes effect, then applied under one lock: later messages in
// the batch observe the effects of earlier ones, and concurrent
// batches serialize rather than interleave.
func (s *Store) Apply(batch []protocol.Message) error {
	if err := protocol.ValidateBatch(batch); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, msg := range batch {
		s.applyLocked(msg)
	}
	return nil
}

// applyLocked dispatches one message. Caller holds the write lock.
func (s *Store) applyLocked(msg protocol.Message) {
	switch msg.Kind() {
	case protocol.KindCreateSurface:
		m := msg.CreateSurface
		s.createLocked(m.SurfaceID, m.CatalogID)

	case protocol.KindUpdateComponents:
		m := msg.UpdateComponents
		s.upsertLocked(m.SurfaceID, m.Components)

	case protocol.KindUpdateDataModel:
		s.applyDataModelLocked(msg.UpdateDataModel)

	case protocol.KindDeleteSurface:
		s.deleteLocked(msg.DeleteSurface.SurfaceID)
	}
}

// applyDataModelLocked handles the updateDataModel operation. "add"
// and "replace" are both set-at-path; "remove" deletes at the path.
// A message that carries no value (and is not a remove) is a no-op,
// which keeps "no value sent" distinct from "set to null".
func (s *Store) applyDataModelLocked(m *protocol.UpdateDataModel) {
	if m.Op == protocol.OpRemove {
		s.removeDataLocked(m.SurfaceID, m.Path)
		return
	}
	if !m.HasValue() {
		return
	}
	value, err := m.DecodedValue()
	if err != nil {
		// Defensive: DecodeBatch already parsed this JSON, so a bad
		// raw value only shows up on hand-built messages.
		log.Printf("surface %s: discarding unparsable data model value: %v", m.SurfaceID, err)
		return
	}
	if datapath.IsRoot(m.Path) {
		s.setDataLocked(m.SurfaceID, "/", value)
		return
	}
	s.setDataLocked(m.SurfaceID, m.Path, value)
}
