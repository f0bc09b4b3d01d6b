// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render projects a surface's component graph into a visual
// node tree. Rendering is a pure, repeatable read: it walks from the
// reserved "root" component, resolves value bindings against the data
// model (honoring template context paths), expands templated children
// in document order, and never fails — dangling references render as
// absent content and unknown component types become visible
// placeholder nodes.
//
// The produced tree is presentation-agnostic: any front end (terminal,
// DOM, native widgets) consumes it by implementing one rendering
// function per tag. The terminal implementation lives in ui/canvas.
package render
