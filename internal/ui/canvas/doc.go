// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package canvas is the terminal presentation layer for rendered
// surfaces: one rendering function per visual-node tag, producing
// lipgloss-styled strings. It consumes only the resolved node tree —
// never the surface store — so it is exactly the kind of front end the
// render package is designed to support.
package canvas
