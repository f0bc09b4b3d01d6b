// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package client fetches protocol message batches from the remote
// agent endpoint.
//
// This is the interpreter's only asynchronous boundary: one opaque
// call that turns a user prompt into an ordered batch of messages (or
// fails). The interpreter is invoked only after a batch has fully
// arrived; cancellation happens here, by aborting the fetch, never
// inside the interpreter.
package client
