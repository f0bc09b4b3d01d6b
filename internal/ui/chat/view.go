// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive shell for the loom TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the whole shell frame.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderInputRow())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderHeader() string {
	title := "loom"
	if focused := m.focusedSurface(); focused != "" {
		title += "  ·  " + focused
	}
	header := m.theme.Header.Render(title)
	if m.width > lipgloss.Width(header) {
		header += m.theme.StatusBar.Render(strings.Repeat(" ", m.width-lipgloss.Width(header)))
	}
	return header
}

func (m Model) renderInputRow() string {
	if m.state == StateFetching {
		return m.spinner.View() + " " + m.theme.Caption.Render("waiting for the agent...")
	}
	return m.input.View()
}

func (m Model) renderStatusBar() string {
	var parts []string
	for _, binding := range m.keyMap.ShortHelp() {
		parts = append(parts,
			m.theme.ShortcutKey.Render(binding.Help().Key)+" "+
				m.theme.ShortcutDesc.Render(binding.Help().Desc))
	}
	bar := strings.Join(parts, "  ")
	if m.statusMsg != "" {
		bar += "  " + m.theme.SurfaceMark.Render(m.statusMsg)
	}
	if m.lastErr != nil {
		bar += "  " + m.theme.ErrorText.Render(m.lastErr.Error())
	}
	return m.theme.StatusBar.Render(bar)
}

// =============================================================================
// VIEWPORT CONTENT
// =============================================================================

// refreshViewport rebuilds the scrollback: transcript lines followed by
// every live surface rendered through the canvas.
func (m *Model) refreshViewport() {
	var sections []string

	if len(m.transcript) > 0 {
		sections = append(sections, strings.Join(m.transcript, "\n"))
	}

	for _, id := range m.store.ListSurfaces() {
		surf, ok := m.store.Snapshot(id)
		if !ok {
			continue
		}

		mark := "── " + id + " ──"
		if id == m.focusedSurface() {
			mark = "━━ " + id + " ━━"
		}
		sections = append(sections, m.theme.SurfaceMark.Render(mark))

		if drawn := m.canvas.Render(m.renderer.RenderSurface(id)); drawn != "" {
			sections = append(sections, drawn)
		}

		if m.showInspector {
			sections = append(sections, m.inspector.InspectSurface(surf))
		}
	}

	if m.showInspector && len(m.lastBatchRaw) > 0 {
		sections = append(sections, m.inspector.InspectJSON("last batch", m.lastBatchRaw))
	}

	separator := "\n\n"
	if m.compact {
		separator = "\n"
	}

	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(strings.Join(sections, separator))
	if atBottom {
		m.viewport.GotoBottom()
	}
}
