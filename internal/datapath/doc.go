// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package datapath provides slash-delimited path access into JSON-like trees.
//
// A "tree" is any value produced by encoding/json: map[string]any,
// []any, or a scalar. Paths look like "/items/0/name"; empty segments
// are discarded, so "/a/b", "a/b" and "a/b/" address the same node.
// Lookups never panic: a type mismatch, missing key, or out-of-range
// index simply reports absence.
package datapath
