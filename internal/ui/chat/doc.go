// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive shell for the loom TUI: a
// Bubble Tea model wiring the prompt input to the agent client, the
// surface store, and the canvas. Each submitted prompt fetches a
// message batch, applies it to the store, and redraws every live
// surface in the viewport.
package chat
