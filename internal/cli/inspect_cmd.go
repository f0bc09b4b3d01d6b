// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// inspect_cmd.go - Batch inspection for the loom CLI.
//
// Command: inspect
// Short:   Validate a batch file and pretty-print it with highlighting
//
// Examples:
//   loom inspect examples/contact.json
//   loom inspect bad.json          Exit non-zero with the decode error
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/loom-tui/internal/protocol"
	"github.com/jeranaias/loom-tui/internal/ui/canvas"
	"github.com/jeranaias/loom-tui/internal/ui/styles"
)

// HandleInspect validates and pretty-prints a batch file.
func HandleInspect(args *ArgParser) error {
	path, err := args.RequirePositional(0, "batch file")
	if err != nil {
		return err
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read batch file: %w", err)
	}

	theme := styles.NewTheme()
	inspector := canvas.NewInspector(theme)
	inspector.MaxWidth = GetTerminalWidth()

	batch, err := protocol.DecodeBatch(payload)
	if err != nil {
		// Still show the payload so the error can be located.
		fmt.Println(inspector.InspectJSON(path, payload))
		return err
	}

	fmt.Println(inspector.InspectJSON(path, payload))

	counts := make(map[protocol.Kind]int)
	surfaces := make(map[string]bool)
	for _, msg := range batch {
		counts[msg.Kind()]++
		surfaces[msg.SurfaceID()] = true
	}
	fmt.Printf("\n%d message(s) across %d surface(s):", len(batch), len(surfaces))
	for _, kind := range []protocol.Kind{
		protocol.KindCreateSurface,
		protocol.KindUpdateComponents,
		protocol.KindUpdateDataModel,
		protocol.KindDeleteSurface,
	} {
		if counts[kind] > 0 {
			fmt.Printf(" %s=%d", kind, counts[kind])
		}
	}
	fmt.Println()
	return nil
}
