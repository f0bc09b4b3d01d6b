// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package canvas is the terminal presentation layer for rendered
// surfaces.
package canvas

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/loom-tui/internal/surface"
	"github.com/jeranaias/loom-tui/internal/ui/styles"
)

// =============================================================================
// INSPECTOR
// =============================================================================

// Inspector renders raw protocol payloads and surface state as
// syntax-highlighted JSON for debugging alongside the live canvas.
type Inspector struct {
	theme    *styles.Theme
	MaxWidth int
}

// NewInspector creates an inspector with a default width.
func NewInspector(theme *styles.Theme) *Inspector {
	return &Inspector{theme: theme, MaxWidth: 80}
}

// InspectJSON pretty-prints and highlights a raw JSON payload.
// Invalid JSON is shown verbatim so nothing is ever hidden.
func (ins *Inspector) InspectJSON(title string, payload []byte) string {
	pretty := prettyJSON(payload)
	content := highlightJSON(pretty)

	var header string
	if title != "" {
		header = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Background(styles.OverlayDim).
			Padding(0, 1).
			Bold(true).
			Render(title) + "\n"
	}

	maxWidth := ins.MaxWidth - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(1, 2).
		MaxWidth(maxWidth).
		Render(header + content)
}

// InspectSurface dumps one surface's components and data model.
func (ins *Inspector) InspectSurface(surf *surface.Surface) string {
	if surf == nil {
		return ""
	}
	dump := map[string]any{
		"surfaceId":  surf.ID,
		"catalogId":  surf.CatalogID,
		"components": surf.Components,
		"dataModel":  surf.DataModel,
	}
	raw, err := json.Marshal(dump)
	if err != nil {
		return ins.theme.ErrorText.Render("inspect: " + err.Error())
	}
	return ins.InspectJSON("surface "+surf.ID, raw)
}

// prettyJSON re-indents a payload, returning it untouched on error.
func prettyJSON(payload []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return string(payload)
	}
	return buf.String()
}

// highlightJSON applies ANSI-safe syntax highlighting via chroma.
func highlightJSON(code string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
