// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package binding resolves bindable property values against a
// surface's data model: inline literals pass through, path references
// are looked up (composing relative paths with the enclosing template
// context), and an unresolvable binding degrades to "no content"
// rather than an error.
package binding
