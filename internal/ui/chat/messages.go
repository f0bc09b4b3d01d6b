// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive shell for the loom TUI.
package chat

import (
	"github.com/jeranaias/loom-tui/internal/protocol"
)

// =============================================================================
// SHELL MESSAGES
// =============================================================================

// BatchMsg carries a fetched message batch back into the update loop.
type BatchMsg struct {
	Prompt   string
	Messages []protocol.Message
	Raw      []byte
}

// FetchErrorMsg reports a failed agent round trip.
type FetchErrorMsg struct {
	Prompt string
	Err    error
}

// JournalRecordedMsg confirms a batch was persisted. Errors are shown
// in the status bar but never block rendering.
type JournalRecordedMsg struct {
	ID  string
	Err error
}
