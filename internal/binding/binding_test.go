// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package binding resolves bindable property values against a
// surface's data model.
package binding

import (
	"encoding/json"
	"testing"

	"github.com/jeranaias/loom-tui/internal/protocol"
)

func bindable(t *testing.T, raw string) protocol.BindableValue {
	t.Helper()
	var bv protocol.BindableValue
	if err := json.Unmarshal([]byte(raw), &bv); err != nil {
		t.Fatalf("bindable(%s): %v", raw, err)
	}
	return bv
}

func model() map[string]any {
	return map[string]any{
		"b": "from-path",
		"items": []any{
			map[string]any{"name": "x"},
			map[string]any{"name": "y"},
		},
		"count": float64(3),
		"flag":  true,
	}
}

// =============================================================================
// PRECEDENCE TESTS
// =============================================================================

func TestLiteralOverPathPrecedence(t *testing.T) {
	bv := bindable(t, `{"literalString": "A", "path": "/b"}`)
	if got := Resolve(bv, model(), ""); got != "A" {
		t.Errorf("literal must beat path, got %v", got)
	}
}

func TestLiteralTags(t *testing.T) {
	if got := Resolve(bindable(t, `{"literalNumber": 4}`), model(), ""); got != float64(4) {
		t.Errorf("literalNumber: %v", got)
	}
	if got := Resolve(bindable(t, `{"literalBoolean": true}`), model(), ""); got != true {
		t.Errorf("literalBoolean: %v", got)
	}
	arr := Resolve(bindable(t, `{"literalArray": [1, 2]}`), model(), "")
	if seq, ok := arr.([]any); !ok || len(seq) != 2 {
		t.Errorf("literalArray: %v", arr)
	}
}

func TestBareScalarPassesThrough(t *testing.T) {
	if got := Resolve(bindable(t, `"plain"`), model(), ""); got != "plain" {
		t.Errorf("bare scalar: %v", got)
	}
	if got := Resolve(bindable(t, `7`), model(), ""); got != float64(7) {
		t.Errorf("bare number: %v", got)
	}
}

// =============================================================================
// PATH RESOLUTION TESTS
// =============================================================================

func TestPathResolution(t *testing.T) {
	if got := Resolve(bindable(t, `{"path": "/b"}`), model(), ""); got != "from-path" {
		t.Errorf("absolute path: %v", got)
	}
}

func TestRelativePathComposition(t *testing.T) {
	relative := Resolve(bindable(t, `{"path": "./name"}`), model(), "/items/1")
	absolute := Resolve(bindable(t, `{"path": "/items/1/name"}`), model(), "/items/1")
	if relative != absolute || relative != "y" {
		t.Errorf("relative %v and absolute %v must agree on \"y\"", relative, absolute)
	}
}

func TestAbsolutePathIgnoresContext(t *testing.T) {
	if got := Resolve(bindable(t, `{"path": "/b"}`), model(), "/items/0"); got != "from-path" {
		t.Errorf("absolute path must ignore context, got %v", got)
	}
}

func TestUnresolvableBinding(t *testing.T) {
	if got := Resolve(bindable(t, `{"path": "/missing/deep"}`), model(), ""); got != nil {
		t.Errorf("missing path must resolve to nil, got %v", got)
	}
	var zero protocol.BindableValue
	if got := Resolve(zero, model(), ""); got != nil {
		t.Errorf("undefined value must resolve to nil, got %v", got)
	}
}

// =============================================================================
// TYPED WRAPPER TESTS
// =============================================================================

func TestResolveString(t *testing.T) {
	if got := ResolveString(bindable(t, `{"path": "/count"}`), model(), ""); got != "3" {
		t.Errorf("numbers should print without a trailing .0, got %q", got)
	}
	var zero protocol.BindableValue
	if got := ResolveString(zero, model(), ""); got != "" {
		t.Errorf("undefined resolves to empty string, got %q", got)
	}
}

func TestResolveBool(t *testing.T) {
	if !ResolveBool(bindable(t, `{"path": "/flag"}`), model(), "") {
		t.Error("bound boolean should resolve true")
	}
	if ResolveBool(bindable(t, `{"path": "/b"}`), model(), "") {
		t.Error("non-boolean resolves false")
	}
}

func TestResolveNumber(t *testing.T) {
	if v, ok := ResolveNumber(bindable(t, `{"path": "/count"}`), model(), ""); !ok || v != 3 {
		t.Errorf("ResolveNumber = %v, %v", v, ok)
	}
	if _, ok := ResolveNumber(bindable(t, `{"path": "/b"}`), model(), ""); ok {
		t.Error("non-numeric string must not resolve")
	}
}
