// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the loom command line: argument parsing and
// the non-TUI commands (render, watch, replay, repl, inspect, config,
// version). The default command with no arguments starts the
// interactive shell; everything else is batch-oriented and writes to
// stdout so output can be piped.
package cli
