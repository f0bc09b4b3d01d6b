// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch re-applies a protocol fixture file whenever it changes
// on disk. It backs the "loom watch" live-preview workflow: edit a
// batch JSON in one terminal, see the rendered surface refresh in
// another.
package watch
