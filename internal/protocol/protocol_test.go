// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package protocol defines the wire format spoken between the remote
// agent and the interpreter.
package protocol

import (
	"encoding/json"
	"errors"
	"testing"
)

// =============================================================================
// BATCH DECODING TESTS
// =============================================================================

func TestDecodeBatchWellFormed(t *testing.T) {
	raw := `[
		{"createSurface": {"surfaceId": "main", "catalogId": "standard"}},
		{"updateDataModel": {"surfaceId": "main", "path": "/", "value": {"name": "Ann"}}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "Text", "text": {"path": "/name"}, "usageHint": "h1"}
		]}},
		{"deleteSurface": {"surfaceId": "main"}}
	]`

	batch, err := DecodeBatch([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	if len(batch) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(batch))
	}

	wantKinds := []Kind{KindCreateSurface, KindUpdateDataModel, KindUpdateComponents, KindDeleteSurface}
	for i, want := range wantKinds {
		if got := batch[i].Kind(); got != want {
			t.Errorf("message %d: kind = %v, want %v", i, got, want)
		}
		if id := batch[i].SurfaceID(); id != "main" {
			t.Errorf("message %d: surface id = %q", i, id)
		}
	}
}

func TestDecodeBatchNotAnArray(t *testing.T) {
	for _, raw := range []string{`{}`, `"hello"`, `42`, `not json`, `null`, ``, `  null  `} {
		if _, err := DecodeBatch([]byte(raw)); !errors.Is(err, ErrUnprocessableBatch) {
			t.Errorf("DecodeBatch(%q) = %v, want ErrUnprocessableBatch", raw, err)
		}
	}
}

func TestDecodeBatchUnrecognizedElement(t *testing.T) {
	raw := `[
		{"createSurface": {"surfaceId": "main", "catalogId": "standard"}},
		{"somethingElse": {"surfaceId": "main"}}
	]`
	batch, err := DecodeBatch([]byte(raw))
	if !errors.Is(err, ErrUnprocessableBatch) {
		t.Fatalf("want ErrUnprocessableBatch, got %v", err)
	}
	if batch != nil {
		t.Error("a malformed batch must not yield partial messages")
	}
}

// =============================================================================
// DATA MODEL VALUE TESTS
// =============================================================================

func TestUpdateDataModelValuePresence(t *testing.T) {
	var withValue UpdateDataModel
	if err := json.Unmarshal([]byte(`{"surfaceId":"s","path":"/a","value":null}`), &withValue); err != nil {
		t.Fatal(err)
	}
	if !withValue.HasValue() {
		t.Error("explicit null must count as a sent value")
	}

	var noValue UpdateDataModel
	if err := json.Unmarshal([]byte(`{"surfaceId":"s","path":"/a"}`), &noValue); err != nil {
		t.Fatal(err)
	}
	if noValue.HasValue() {
		t.Error("an omitted value field must not count as sent")
	}
}

// =============================================================================
// BINDABLE VALUE TESTS
// =============================================================================

func TestBindableValueTaggedForms(t *testing.T) {
	var bv BindableValue
	if err := json.Unmarshal([]byte(`{"literalString":"A","path":"/b"}`), &bv); err != nil {
		t.Fatal(err)
	}
	if bv.LiteralString == nil || *bv.LiteralString != "A" {
		t.Error("literalString not decoded")
	}
	if bv.Path != "/b" {
		t.Error("path not decoded alongside literal")
	}

	var num BindableValue
	if err := json.Unmarshal([]byte(`{"literalNumber":2.5}`), &num); err != nil {
		t.Fatal(err)
	}
	if num.LiteralNumber == nil || *num.LiteralNumber != 2.5 {
		t.Error("literalNumber not decoded")
	}

	var arr BindableValue
	if err := json.Unmarshal([]byte(`{"literalArray":[]}`), &arr); err != nil {
		t.Fatal(err)
	}
	if !arr.HasLiteralArray() {
		t.Error("empty literalArray must still register as present")
	}
}

func TestBindableValueBareScalar(t *testing.T) {
	var bv BindableValue
	if err := json.Unmarshal([]byte(`"plain"`), &bv); err != nil {
		t.Fatal(err)
	}
	v, ok := bv.Scalar()
	if !ok || v != "plain" {
		t.Errorf("bare scalar lost: %v, %v", v, ok)
	}
	if bv.IsZero() {
		t.Error("a bare scalar is not undefined")
	}
}

func TestBindableValueUntaggedObject(t *testing.T) {
	var bv BindableValue
	if err := json.Unmarshal([]byte(`{"label":"x","value":1}`), &bv); err != nil {
		t.Fatal(err)
	}
	if _, ok := bv.Scalar(); !ok {
		t.Error("an object without bindable tags should be kept as plain data")
	}
}

func TestBindableValueZero(t *testing.T) {
	var bv BindableValue
	if !bv.IsZero() {
		t.Error("zero value must be undefined")
	}
}

// =============================================================================
// COMPONENT DECODING TESTS
// =============================================================================

func TestComponentTypedDispatch(t *testing.T) {
	raw := `{"id": "list", "type": "List", "direction": "horizontal",
		"children": {"template": {"componentId": "item", "dataBinding": "/items"}}}`

	var c Component
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatal(err)
	}
	if c.ID != "list" || c.Type != TypeList {
		t.Fatalf("envelope not decoded: %+v", c)
	}
	props, ok := c.Props.(ListProps)
	if !ok {
		t.Fatalf("props = %T, want ListProps", c.Props)
	}
	if props.Direction != "horizontal" {
		t.Error("direction not decoded")
	}
	if props.Children.Template == nil || props.Children.Template.DataBinding != "/items" {
		t.Errorf("template children not decoded: %+v", props.Children)
	}
}

func TestComponentExplicitChildren(t *testing.T) {
	raw := `{"id": "row", "type": "Row", "children": {"explicitList": ["a", "b", "c"]}}`
	var c Component
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatal(err)
	}
	props := c.Props.(RowProps)
	if len(props.Children.ExplicitList) != 3 || props.Children.ExplicitList[0] != "a" {
		t.Errorf("explicit list not decoded: %+v", props.Children)
	}
}

func TestComponentUnknownType(t *testing.T) {
	raw := `{"id": "x", "type": "Carousel", "whatever": true}`
	var c Component
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("unknown types must decode without error: %v", err)
	}
	if c.Props != nil {
		t.Error("unknown type should have nil props")
	}
	if c.Type != "Carousel" || len(c.Raw) == 0 {
		t.Error("unknown type must keep its name and raw payload")
	}
}

func TestComponentRoundTrip(t *testing.T) {
	raw := `{"id":"b","type":"Button","child":"label","primary":true}`
	var c Component
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	var a, b map[string]any
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(out, &b); err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) || a["primary"] != b["primary"] {
		t.Errorf("round trip drifted: %s", out)
	}
}
