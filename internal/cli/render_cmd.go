// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// render_cmd.go - Batch-file rendering for the loom CLI.
//
// Command: render
// Short:   Render a protocol batch file to stdout
//
// Examples:
//   loom render examples/contact.json
//   loom render batch.json --surface form
//   loom render batch.json --no-color > out.txt
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/loom-tui/internal/protocol"
	"github.com/jeranaias/loom-tui/internal/render"
	"github.com/jeranaias/loom-tui/internal/surface"
	"github.com/jeranaias/loom-tui/internal/ui/canvas"
	"github.com/jeranaias/loom-tui/internal/ui/styles"
)

// HandleRender renders a batch file once and exits.
func HandleRender(args *ArgParser) error {
	path, err := args.RequirePositional(0, "batch file")
	if err != nil {
		return err
	}

	if args.BoolFlag("no-color") || !ColorsEnabled() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	store := surface.NewStore()
	if err := applyBatchFile(store, path); err != nil {
		return err
	}

	out, err := renderStore(store, args.Flag("surface"), GetTerminalWidth())
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// applyBatchFile reads, decodes, and applies one batch file.
func applyBatchFile(store *surface.Store, path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read batch file: %w", err)
	}
	batch, err := protocol.DecodeBatch(payload)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if err := store.Apply(batch); err != nil {
		return fmt.Errorf("apply %s: %w", path, err)
	}
	return nil
}

// renderStore draws one surface, or all of them in creation order.
func renderStore(store *surface.Store, surfaceID string, width int) (string, error) {
	theme := styles.NewTheme()
	cv := canvas.New(theme, width)
	renderer := render.New(store)

	ids := store.ListSurfaces()
	if surfaceID != "" {
		if _, ok := store.Snapshot(surfaceID); !ok {
			return "", fmt.Errorf("no such surface: %s", surfaceID)
		}
		ids = []string{surfaceID}
	}
	if len(ids) == 0 {
		return theme.SurfaceMark.Render("(no surfaces)"), nil
	}

	var sections []string
	for _, id := range ids {
		if len(ids) > 1 {
			sections = append(sections, theme.SurfaceMark.Render("── "+id+" ──"))
		}
		if drawn := cv.Render(renderer.RenderSurface(id)); drawn != "" {
			sections = append(sections, drawn)
		}
	}
	return strings.Join(sections, "\n"), nil
}
