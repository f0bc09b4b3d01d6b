// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive shell for the loom TUI.
package chat

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/loom-tui/internal/client"
	"github.com/jeranaias/loom-tui/internal/journal"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// FetchBatch creates a command that sends the prompt to the agent and
// returns the decoded message batch.
func FetchBatch(ctx context.Context, cli *client.Client, prompt string) tea.Cmd {
	return func() tea.Msg {
		batch, err := cli.FetchMessages(ctx, prompt)
		if err != nil {
			return FetchErrorMsg{Prompt: prompt, Err: err}
		}
		raw, err := json.Marshal(batch)
		if err != nil {
			raw = nil
		}
		return BatchMsg{Prompt: prompt, Messages: batch, Raw: raw}
	}
}

// RecordBatch creates a command that persists a batch to the journal.
func RecordBatch(j *journal.Journal, prompt string, raw []byte) tea.Cmd {
	return func() tea.Msg {
		id, err := j.Record(prompt, raw)
		return JournalRecordedMsg{ID: id, Err: err}
	}
}

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state != StateFetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case BatchMsg:
		return m.handleBatch(msg)

	case FetchErrorMsg:
		m.state = StateError
		m.lastErr = msg.Err
		m.fetchCancel = nil
		m.pushTranscript(m.theme.ErrorText.Render("agent error: " + msg.Err.Error()))
		m.refreshViewport()
		return m, nil

	case JournalRecordedMsg:
		if msg.Err != nil {
			m.setStatus("journal write failed: %v", msg.Err)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.canvas.SetWidth(msg.Width - 4)
	m.inspector.MaxWidth = msg.Width - 4

	// Header + status bar + input row
	const chromeHeight = 4
	m.viewport.Width = msg.Width
	m.viewport.Height = msg.Height - chromeHeight
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.input.Width = msg.Width - 6
	m.refreshViewport()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMap

	switch {
	case key.Matches(msg, keys.Quit):
		if m.fetchCancel != nil {
			m.fetchCancel()
		}
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, keys.Inspector):
		m.showInspector = !m.showInspector
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, keys.Cancel):
		if m.state == StateFetching && m.fetchCancel != nil {
			m.fetchCancel()
			m.fetchCancel = nil
			m.state = StateReady
			m.pushTranscript(m.theme.SurfaceMark.Render("(cancelled)"))
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, keys.NextSurf):
		if n := m.store.Len(); n > 0 {
			m.focusIndex = (m.focusIndex + 1) % n
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, keys.Clear):
		for _, id := range m.store.ListSurfaces() {
			m.store.DeleteSurface(id)
		}
		m.focusIndex = 0
		m.transcript = nil
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, keys.Submit):
		return m.handleSubmit()

	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down),
		key.Matches(msg, keys.PageUp), key.Matches(msg, keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	prompt := strings.TrimSpace(m.input.Value())
	if prompt == "" || m.state == StateFetching {
		return m, nil
	}
	if m.client == nil {
		m.state = StateError
		m.pushTranscript(m.theme.ErrorText.Render("no agent endpoint configured"))
		m.refreshViewport()
		return m, nil
	}

	m.input.Reset()
	m.state = StateFetching
	m.lastErr = nil
	m.pushTranscript(m.theme.InputPrompt.Render("❯ ") + prompt)
	m.refreshViewport()

	ctx, cancel := context.WithCancel(context.Background())
	m.fetchCancel = cancel
	return m, tea.Batch(FetchBatch(ctx, m.client, prompt), m.spinner.Tick)
}

func (m Model) handleBatch(msg BatchMsg) (tea.Model, tea.Cmd) {
	m.state = StateReady
	m.fetchCancel = nil
	m.lastBatchRaw = msg.Raw

	if err := m.store.Apply(msg.Messages); err != nil {
		m.state = StateError
		m.lastErr = err
		m.pushTranscript(m.theme.ErrorText.Render("rejected batch: " + err.Error()))
		m.refreshViewport()
		return m, nil
	}

	m.setStatus("%d message(s) applied", len(msg.Messages))
	m.refreshViewport()

	if m.journal != nil && len(msg.Raw) > 0 {
		return m, RecordBatch(m.journal, msg.Prompt, msg.Raw)
	}
	return m, nil
}
