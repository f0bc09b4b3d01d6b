// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package protocol defines the wire format spoken between the remote
// agent and the interpreter.
package protocol

import "encoding/json"

// =============================================================================
// BINDABLE VALUE
// =============================================================================

// BindableValue is a property value that is either an inline literal or
// a path reference into the surface's data model. On the wire it is a
// tagged object:
//
//	{"literalString": "hello"}
//	{"path": "/user/name"}
//	{"literalString": "fallback", "path": "/user/name"}
//
// A bare scalar ("hello", 3, true) is also accepted and treated as an
// untagged literal. When both a literal tag and a path tag are present
// the literal wins; producers use that to ship a fallback alongside a
// binding. The zero value is "undefined" and renders as no content.
type BindableValue struct {
	LiteralString  *string
	LiteralNumber  *float64
	LiteralBoolean *bool
	LiteralArray   []any
	Path           string

	hasArray bool
	scalar   any
	isScalar bool
}

// LiteralStringValue builds an inline string literal.
func LiteralStringValue(s string) BindableValue {
	return BindableValue{LiteralString: &s}
}

// LiteralNumberValue builds an inline number literal.
func LiteralNumberValue(n float64) BindableValue {
	return BindableValue{LiteralNumber: &n}
}

// LiteralBooleanValue builds an inline boolean literal.
func LiteralBooleanValue(b bool) BindableValue {
	return BindableValue{LiteralBoolean: &b}
}

// PathValue builds a data-model reference.
func PathValue(path string) BindableValue {
	return BindableValue{Path: path}
}

// IsZero reports whether the value is undefined: no literal, no path,
// no untagged scalar.
func (b BindableValue) IsZero() bool {
	return b.LiteralString == nil &&
		b.LiteralNumber == nil &&
		b.LiteralBoolean == nil &&
		!b.hasArray &&
		b.Path == "" &&
		!b.isScalar
}

// Scalar returns the untagged scalar carried by the value, if any.
func (b BindableValue) Scalar() (any, bool) {
	return b.scalar, b.isScalar
}

// HasLiteralArray reports whether a literalArray tag was present, even
// when the array itself is empty.
func (b BindableValue) HasLiteralArray() bool {
	return b.hasArray
}

// bindable tag keys recognized on the wire.
var bindableTags = []string{"literalString", "literalNumber", "literalBoolean", "literalArray", "path"}

// UnmarshalJSON accepts either a tagged object or a bare scalar/array.
// An object carrying none of the bindable tags is kept as an untagged
// scalar value (the producer sent plain data, not a binding).
func (b *BindableValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	obj, isObj := raw.(map[string]any)
	if !isObj || !hasAnyTag(obj) {
		b.scalar = raw
		b.isScalar = true
		return nil
	}

	if v, ok := obj["literalString"].(string); ok {
		b.LiteralString = &v
	}
	if v, ok := obj["literalNumber"].(float64); ok {
		b.LiteralNumber = &v
	}
	if v, ok := obj["literalBoolean"].(bool); ok {
		b.LiteralBoolean = &v
	}
	if v, ok := obj["literalArray"].([]any); ok {
		b.LiteralArray = v
		b.hasArray = true
	}
	if v, ok := obj["path"].(string); ok {
		b.Path = v
	}
	return nil
}

// MarshalJSON writes the value back in its wire shape.
func (b BindableValue) MarshalJSON() ([]byte, error) {
	if b.isScalar {
		return json.Marshal(b.scalar)
	}
	obj := make(map[string]any)
	if b.LiteralString != nil {
		obj["literalString"] = *b.LiteralString
	}
	if b.LiteralNumber != nil {
		obj["literalNumber"] = *b.LiteralNumber
	}
	if b.LiteralBoolean != nil {
		obj["literalBoolean"] = *b.LiteralBoolean
	}
	if b.hasArray {
		obj["literalArray"] = b.LiteralArray
	}
	if b.Path != "" {
		obj["path"] = b.Path
	}
	return json.Marshal(obj)
}

func hasAnyTag(obj map[string]any) bool {
	for _, tag := range bindableTags {
		if _, ok := obj[tag]; ok {
			return true
		}
	}
	return false
}

// =============================================================================
// CHILDREN REFERENCE
// =============================================================================

// ChildrenRef selects a component's children: either an explicit
// ordered list of component ids, or a template instantiated once per
// element of the array (or key of the mapping) found at DataBinding.
//
//	{"explicitList": ["header", "body"]}
//	{"template": {"componentId": "itemRow", "dataBinding": "/items"}}
type ChildrenRef struct {
	ExplicitList []string       `json:"explicitList,omitempty"`
	Template     *ChildTemplate `json:"template,omitempty"`
}

// ChildTemplate is one component definition stamped out per data item.
type ChildTemplate struct {
	ComponentID string `json:"componentId"`
	DataBinding string `json:"dataBinding"`
}

// IsZero reports whether the reference selects nothing.
func (c ChildrenRef) IsZero() bool {
	return len(c.ExplicitList) == 0 && c.Template == nil
}
