// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package journal records applied message batches in a local SQLite
// database so a session can be replayed or debugged after the fact.
//
// The interpreter itself stays persistence-free: journaling is a
// host-side facility layered around it, and replay simply folds the
// recorded batches over a fresh surface store.
package journal
