// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/loom-tui/internal/protocol"
	"github.com/jeranaias/loom-tui/internal/surface"
)

func decodeTestBatch(t *testing.T, raw string) []protocol.Message {
	t.Helper()
	batch, err := protocol.DecodeBatch([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	return batch
}

const greetingBatch = `[
	{"createSurface": {"surfaceId": "s1", "catalogId": "std"}},
	{"updateComponents": {"surfaceId": "s1", "components": [
		{"id": "root", "type": "Text", "props": {"text": {"literalString": "Hello"}, "role": "h1"}}
	]}}
]`

func TestHandleBatchAppliesMessages(t *testing.T) {
	m := NewModel(Options{Store: surface.NewStore()})
	batch := decodeTestBatch(t, greetingBatch)
	raw, _ := json.Marshal(batch)

	next, _ := m.Update(BatchMsg{Prompt: "greet", Messages: batch, Raw: raw})
	m = next.(Model)

	if m.state != StateReady {
		t.Errorf("state = %v, want StateReady", m.state)
	}
	if got := m.Surfaces(); len(got) != 1 || got[0] != "s1" {
		t.Fatalf("Surfaces() = %v, want [s1]", got)
	}
	if !strings.Contains(m.viewport.View(), "Hello") {
		t.Errorf("viewport does not show the rendered surface")
	}
}

func TestHandleBatchRejectsInvalid(t *testing.T) {
	m := NewModel(Options{Store: surface.NewStore()})

	// A message with no recognized operation fails batch validation.
	next, _ := m.Update(BatchMsg{Prompt: "bad", Messages: []protocol.Message{{}}})
	m = next.(Model)

	if m.state != StateError {
		t.Errorf("state = %v, want StateError", m.state)
	}
	if m.store.Len() != 0 {
		t.Errorf("invalid batch mutated the store")
	}
}

func TestFetchErrorShowsInTranscript(t *testing.T) {
	m := NewModel(Options{Store: surface.NewStore()})

	next, _ := m.Update(FetchErrorMsg{Prompt: "x", Err: errors.New("boom")})
	m = next.(Model)

	if m.state != StateError {
		t.Errorf("state = %v, want StateError", m.state)
	}
	if !strings.Contains(m.viewport.View(), "boom") {
		t.Errorf("error not surfaced in viewport")
	}
}

func TestSubmitWithoutClientFails(t *testing.T) {
	m := NewModel(Options{Store: surface.NewStore()})
	m.input.SetValue("hello")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if cmd != nil {
		t.Errorf("expected no command without a client")
	}
	if m.state != StateError {
		t.Errorf("state = %v, want StateError", m.state)
	}
}

func TestTabCyclesSurfaceFocus(t *testing.T) {
	store := surface.NewStore()
	store.CreateSurface("a", "std")
	store.CreateSurface("b", "std")
	m := NewModel(Options{Store: store})

	if got := m.focusedSurface(); got != "a" {
		t.Fatalf("initial focus = %q, want a", got)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if got := m.focusedSurface(); got != "b" {
		t.Errorf("focus after Tab = %q, want b", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if got := m.focusedSurface(); got != "a" {
		t.Errorf("focus wraps to %q, want a", got)
	}
}

func TestClearRemovesAllSurfaces(t *testing.T) {
	store := surface.NewStore()
	store.CreateSurface("a", "std")
	store.CreateSurface("b", "std")
	m := NewModel(Options{Store: store})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = next.(Model)

	if m.store.Len() != 0 {
		t.Errorf("store still holds %d surfaces after clear", m.store.Len())
	}
}

func TestHelpOverlayToggles(t *testing.T) {
	m := NewModel(Options{Store: surface.NewStore()})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	m = next.(Model)
	if !m.showHelp {
		t.Fatalf("help did not open")
	}
	if !strings.Contains(m.View(), "loom") {
		t.Errorf("help view missing title")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	m = next.(Model)
	if m.showHelp {
		t.Errorf("help did not close")
	}
}
