// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package surface holds the authoritative per-surface state: the
// component graph and the data model each surface binds against, plus
// the processor that folds ordered message batches over that state.
//
// Every operation is total over the current set of surfaces: messages
// targeting an unknown surface are no-ops, never errors. The producer
// is an LLM and cannot be trusted to reference ids correctly; the
// system degrades to "render nothing" instead of crashing the
// pipeline.
package surface
