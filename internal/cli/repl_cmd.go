// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl_cmd.go - Interactive protocol REPL for the loom CLI.
//
// Command: repl
// Short:   Type protocol batches by hand and watch surfaces evolve
//
// Input is either a JSON batch (or a single message object), or a
// slash command. Line editing and history come from liner, with the
// history persisted next to the config file.
//
// Interactive commands:
//   /load FILE          Apply a batch file
//   /surfaces           List live surfaces
//   /render [id]        Render one surface or all of them
//   /inspect [id]       Dump surface state as highlighted JSON
//   /clear              Delete all surfaces
//   /help               Show commands
//   /quit               Exit (also Ctrl+D)
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/loom-tui/internal/config"
	"github.com/jeranaias/loom-tui/internal/protocol"
	"github.com/jeranaias/loom-tui/internal/surface"
	"github.com/jeranaias/loom-tui/internal/ui/canvas"
	"github.com/jeranaias/loom-tui/internal/ui/styles"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// replInput wraps liner with persistent history.
type replInput struct {
	line        *liner.State
	historyFile string
}

func newReplInput() *replInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.Dir()
	if err != nil {
		dir = os.TempDir()
	}

	in := &replInput{
		line:        line,
		historyFile: filepath.Join(dir, "repl_history"),
	}
	if f, err := os.Open(in.historyFile); err == nil {
		in.line.ReadHistory(f)
		f.Close()
	}
	return in
}

func (in *replInput) read(prompt string) (string, error) {
	input, err := in.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		in.line.AppendHistory(input)
	}
	return input, nil
}

func (in *replInput) close() {
	if f, err := os.OpenFile(in.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
		in.line.WriteHistory(f)
		f.Close()
	}
	in.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// HandleRepl runs the interactive protocol REPL.
func HandleRepl(args *ArgParser) error {
	theme := styles.NewTheme()
	store := surface.NewStore()
	width := GetTerminalWidth()
	inspector := canvas.NewInspector(theme)
	inspector.MaxWidth = width

	input := newReplInput()
	defer input.close()

	fmt.Println(theme.Header.Render("loom repl"))
	fmt.Println(theme.Caption.Render("paste a JSON batch, or /help for commands"))
	fmt.Println()

	for {
		line, err := input.read("loom> ")
		if err != nil {
			// Ctrl+C aborts the line, Ctrl+D exits.
			if err == liner.ErrPromptAborted {
				continue
			}
			fmt.Println()
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if done := replCommand(line, store, theme, inspector, width); done {
				return nil
			}
			continue
		}

		if err := applyReplBatch(store, []byte(line)); err != nil {
			fmt.Println(theme.ErrorText.Render(err.Error()))
			continue
		}
		showSurfaces(store, theme, width)
	}
}

// applyReplBatch accepts either a batch array or a bare message object.
func applyReplBatch(store *surface.Store, payload []byte) error {
	trimmed := strings.TrimSpace(string(payload))
	if strings.HasPrefix(trimmed, "{") {
		trimmed = "[" + trimmed + "]"
	}
	batch, err := protocol.DecodeBatch([]byte(trimmed))
	if err != nil {
		return err
	}
	return store.Apply(batch)
}

// replCommand executes one slash command; returns true to exit.
func replCommand(line string, store *surface.Store, theme *styles.Theme, inspector *canvas.Inspector, width int) bool {
	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])
	rest := parts[1:]

	switch cmd {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h", "/?":
		fmt.Println("  /load FILE    apply a batch file")
		fmt.Println("  /surfaces     list live surfaces")
		fmt.Println("  /render [id]  render one surface or all")
		fmt.Println("  /inspect [id] dump surface state")
		fmt.Println("  /clear        delete all surfaces")
		fmt.Println("  /quit         exit")

	case "/load":
		if len(rest) == 0 {
			fmt.Println(theme.ErrorText.Render("usage: /load FILE"))
			break
		}
		if err := applyBatchFile(store, rest[0]); err != nil {
			fmt.Println(theme.ErrorText.Render(err.Error()))
			break
		}
		showSurfaces(store, theme, width)

	case "/surfaces":
		ids := store.ListSurfaces()
		if len(ids) == 0 {
			fmt.Println(theme.Caption.Render("(no surfaces)"))
			break
		}
		for _, id := range ids {
			fmt.Println("  " + id)
		}

	case "/render":
		target := ""
		if len(rest) > 0 {
			target = rest[0]
		}
		out, err := renderStore(store, target, width)
		if err != nil {
			fmt.Println(theme.ErrorText.Render(err.Error()))
			break
		}
		fmt.Println(out)

	case "/inspect":
		ids := store.ListSurfaces()
		if len(rest) > 0 {
			ids = []string{rest[0]}
		}
		for _, id := range ids {
			surf, ok := store.Snapshot(id)
			if !ok {
				fmt.Println(theme.ErrorText.Render("no such surface: " + id))
				continue
			}
			fmt.Println(inspector.InspectSurface(surf))
		}

	case "/clear":
		for _, id := range store.ListSurfaces() {
			store.DeleteSurface(id)
		}
		fmt.Println(theme.Caption.Render("(cleared)"))

	default:
		fmt.Println(theme.ErrorText.Render("unknown command " + cmd + " (try /help)"))
	}
	return false
}

// showSurfaces renders everything after a successful apply.
func showSurfaces(store *surface.Store, theme *styles.Theme, width int) {
	out, err := renderStore(store, "", width)
	if err != nil {
		fmt.Println(theme.ErrorText.Render(err.Error()))
		return
	}
	fmt.Println(out)
}
