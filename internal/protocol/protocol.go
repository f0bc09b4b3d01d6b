// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package protocol defines the wire format spoken between the remote
// agent and the interpreter.
package protocol

import "encoding/json"

// =============================================================================
// MESSAGE KINDS
// =============================================================================

// Kind identifies which operation a message carries.
type Kind int

const (
	KindNone Kind = iota // No recognized operation (malformed element)
	KindCreateSurface
	KindUpdateComponents
	KindUpdateDataModel
	KindDeleteSurface
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindCreateSurface:
		return "createSurface"
	case KindUpdateComponents:
		return "updateComponents"
	case KindUpdateDataModel:
		return "updateDataModel"
	case KindDeleteSurface:
		return "deleteSurface"
	default:
		return "none"
	}
}

// =============================================================================
// MESSAGE
// =============================================================================

// Message is one element of a protocol batch. Exactly one of the four
// operation fields should be set; when a producer sets more than one,
// the first in declaration order wins (the ordering among kinds is
// unspecified for such messages and callers must not rely on it).
type Message struct {
	CreateSurface    *CreateSurface    `json:"createSurface,omitempty"`
	UpdateComponents *UpdateComponents `json:"updateComponents,omitempty"`
	UpdateDataModel  *UpdateDataModel  `json:"updateDataModel,omitempty"`
	DeleteSurface    *DeleteSurface    `json:"deleteSurface,omitempty"`
}

// Kind reports which operation the message carries.
func (m Message) Kind() Kind {
	switch {
	case m.CreateSurface != nil:
		return KindCreateSurface
	case m.UpdateComponents != nil:
		return KindUpdateComponents
	case m.UpdateDataModel != nil:
		return KindUpdateDataModel
	case m.DeleteSurface != nil:
		return KindDeleteSurface
	default:
		return KindNone
	}
}

// SurfaceID returns the surface the message targets.
func (m Message) SurfaceID() string {
	switch {
	case m.CreateSurface != nil:
		return m.CreateSurface.SurfaceID
	case m.UpdateComponents != nil:
		return m.UpdateComponents.SurfaceID
	case m.UpdateDataModel != nil:
		return m.UpdateDataModel.SurfaceID
	case m.DeleteSurface != nil:
		return m.DeleteSurface.SurfaceID
	default:
		return ""
	}
}

// =============================================================================
// OPERATIONS
// =============================================================================

// CreateSurface starts (or resets) a surface with an empty component
// map and an empty data model.
type CreateSurface struct {
	SurfaceID string `json:"surfaceId"`
	CatalogID string `json:"catalogId"`
}

// UpdateComponents inserts or fully overwrites components on a surface.
type UpdateComponents struct {
	SurfaceID  string      `json:"surfaceId"`
	Components []Component `json:"components"`
}

// DataModelOp names the mutation an UpdateDataModel performs. "add"
// and "replace" are treated identically (set-at-path); "remove"
// deletes the node at the path.
type DataModelOp string

const (
	OpAdd     DataModelOp = "add"
	OpReplace DataModelOp = "replace"
	OpRemove  DataModelOp = "remove"
)

// UpdateDataModel mutates a surface's data model at a path. An omitted
// or root path addresses the whole tree. Value keeps the raw JSON so
// "no value sent" stays distinguishable from an explicit null.
type UpdateDataModel struct {
	SurfaceID string          `json:"surfaceId"`
	Path      string          `json:"path,omitempty"`
	Op        DataModelOp     `json:"op,omitempty"`
	Value     json.RawMessage `json:"value,omitempty"`
}

// HasValue reports whether the message carried a value field at all.
func (u *UpdateDataModel) HasValue() bool {
	return len(u.Value) > 0
}

// DecodedValue unmarshals the raw value into a JSON-like tree.
func (u *UpdateDataModel) DecodedValue() (any, error) {
	var v any
	if err := json.Unmarshal(u.Value, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteSurface removes a surface entirely.
type DeleteSurface struct {
	SurfaceID string `json:"surfaceId"`
}
