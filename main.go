// loom - a terminal interpreter for agent-driven UI.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/loom-tui/internal/cli"
	"github.com/jeranaias/loom-tui/internal/client"
	"github.com/jeranaias/loom-tui/internal/config"
	"github.com/jeranaias/loom-tui/internal/journal"
	"github.com/jeranaias/loom-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	var err error
	switch cmd {
	case cli.CmdTUI:
		err = runTUI()
	case cli.CmdRender:
		err = cli.HandleRender(args)
	case cli.CmdWatch:
		err = cli.HandleWatch(args)
	case cli.CmdReplay:
		err = cli.HandleReplay(args)
	case cli.CmdRepl:
		err = cli.HandleRepl(args)
	case cli.CmdInspect:
		err = cli.HandleInspect(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "loom: %v\n", err)
		os.Exit(1)
	}
}

// runTUI starts the interactive shell.
func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	opts := chat.Options{
		Client:        client.New(cfg.Agent),
		ShowInspector: cfg.UI.ShowInspector,
		Compact:       cfg.UI.CompactMode,
	}

	if cfg.Journal.Enabled {
		path, err := cfg.JournalPath()
		if err != nil {
			return err
		}
		j, err := journal.Open(path)
		if err != nil {
			// The shell works without a journal; note it and move on.
			log.Printf("journal disabled: %v", err)
		} else {
			opts.Journal = j
			defer j.Close()
		}
	}

	program := tea.NewProgram(
		chat.NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = program.Run()
	return err
}
