// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package protocol defines the wire format spoken between the remote
// agent and the interpreter: surface lifecycle messages, component
// records, bindable values and children references.
//
// A batch is an ordered JSON array of messages, each carrying exactly
// one operation (createSurface, updateComponents, updateDataModel or
// deleteSurface). Components are parsed into typed variants once, at
// ingestion; unknown component types keep their raw JSON so the
// renderer can surface them as visible placeholders instead of
// failing the whole tree.
package protocol
