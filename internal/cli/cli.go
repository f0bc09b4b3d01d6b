// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for loom.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI     Command = iota // Interactive shell (default)
	CmdRender                 // Render a batch file once
	CmdWatch                  // Re-render a batch file on change
	CmdReplay                 // Replay journaled batches
	CmdRepl                   // Line-oriented protocol REPL
	CmdInspect                // Dump a batch as highlighted JSON
	CmdConfig                 // Show or initialize configuration
	CmdVersion
	CmdHelp
)

const usageText = `loom - terminal interpreter for agent-driven UI

Loom speaks a declarative UI protocol: an agent streams surface
messages (createSurface, updateComponents, updateDataModel,
deleteSurface) and loom materializes them as live terminal UI.

Usage:
  loom                        Start the interactive shell (default)
  loom render FILE            Render a batch file to stdout
  loom watch FILE             Render FILE and re-render when it changes
  loom replay [--list|--id X] Replay journaled batches
  loom repl                   Interactive protocol REPL
  loom inspect FILE           Pretty-print a batch with highlighting
  loom config [show|init|path] Configuration management
  loom version                Show version information

Render flags:
  --surface ID                Render only the named surface
  --no-color                  Disable styled output

Replay flags:
  --journal PATH              Journal database (default: config)
  --list                      List journaled batches instead of replaying
  --id ID                     Replay up to and including one batch

Environment:
  LOOM_ENDPOINT               Agent endpoint URL
  LOOM_API_KEY                Agent API key
  LOOM_JOURNAL                Journal database path
  NO_COLOR                    Disable colored output

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("loom version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command plus an
// argument parser scoped to that command's remaining arguments.
func Parse() (Command, *ArgParser) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs is Parse with an explicit argument slice, for tests.
func ParseArgs(args []string) (Command, *ArgParser) {
	if len(args) == 0 {
		return CmdTUI, NewArgParser(nil)
	}

	cmd := strings.ToLower(args[0])
	rest := args[1:]

	switch cmd {
	case "tui", "shell":
		return CmdTUI, NewArgParser(rest)

	case "render":
		return CmdRender, NewArgParser(rest)

	case "watch":
		return CmdWatch, NewArgParser(rest)

	case "replay":
		return CmdReplay, NewArgParser(rest)

	case "repl":
		return CmdRepl, NewArgParser(rest)

	case "inspect":
		return CmdInspect, NewArgParser(rest)

	case "config":
		return CmdConfig, NewArgParser(rest)

	case "version", "-v", "--version":
		return CmdVersion, NewArgParser(rest)

	case "help", "-h", "--help":
		return CmdHelp, NewArgParser(rest)

	default:
		// A bare flag still means the shell; anything else is a
		// mistyped command and help is friendlier than a stack of
		// shell errors.
		if strings.HasPrefix(cmd, "-") {
			return CmdTUI, NewArgParser(args)
		}
		fmt.Fprintf(os.Stderr, "loom: unknown command %q\n\n", cmd)
		return CmdHelp, NewArgParser(rest)
	}
}
