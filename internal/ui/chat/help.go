// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive shell for the loom TUI.
//
// This file renders the full-screen help overlay. The body is written
// in markdown and drawn with glamour so it picks up the terminal's
// light/dark style automatically.
package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# loom

Type a prompt and press **Enter**. The agent answers with surface
messages instead of prose; each surface is rendered below your prompt
and updated in place as follow-up batches arrive.

## Keys

| Key | Action |
|-----|--------|
| Enter | send prompt |
| Esc | cancel an in-flight fetch |
| Tab | focus next surface |
| Ctrl+O | toggle the JSON inspector |
| Ctrl+L | clear all surfaces |
| Ctrl+G | toggle this help |
| Ctrl+C | quit |

## Inspector

The inspector shows each surface's component map and data model, plus
the raw JSON of the last applied batch, with syntax highlighting.
Useful when a surface renders as an unknown-component placeholder.
`

// markdownRenderer is the shared glamour renderer for the help overlay.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderHelp draws the help overlay, falling back to plain markdown if
// glamour is unavailable.
func (m Model) renderHelp() string {
	body := helpMarkdown
	if markdownRenderer != nil {
		if rendered, err := markdownRenderer.Render(helpMarkdown); err == nil {
			body = rendered
		}
	}
	footer := m.theme.Caption.Render("press Ctrl+G to close")
	return strings.TrimRight(body, "\n") + "\n\n" + footer
}
