// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render projects a surface's component graph into a visual
// node tree.
package render

import (
	"reflect"
	"testing"

	"github.com/jeranaias/loom-tui/internal/protocol"
	"github.com/jeranaias/loom-tui/internal/surface"
)

// applyBatch folds a raw JSON batch into a fresh store.
func applyBatch(t *testing.T, raw string) *surface.Store {
	t.Helper()
	batch, err := protocol.DecodeBatch([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	store := surface.NewStore()
	if err := store.Apply(batch); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	return store
}

// =============================================================================
// END-TO-END SCENARIO
// =============================================================================

func TestEndToEndHeading(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "standard"}},
		{"updateDataModel": {"surfaceId": "main", "path": "/", "value": {"name": "Ann"}}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "Text", "text": {"path": "/name"}, "usageHint": "h1"}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	if node == nil {
		t.Fatal("expected a rendered tree")
	}
	if node.Tag != TagText || node.Role != "h1" {
		t.Errorf("tag/role = %v/%v, want text/h1", node.Tag, node.Role)
	}
	if got := node.StringAttr("text"); got != "Ann" {
		t.Errorf("text = %q, want \"Ann\"", got)
	}
}

// =============================================================================
// EMPTY SENTINEL TESTS
// =============================================================================

func TestRenderUnknownSurface(t *testing.T) {
	r := New(surface.NewStore())
	if r.RenderSurface("nope") != nil {
		t.Error("unknown surface must render to the empty sentinel")
	}
}

func TestRenderSurfaceWithoutRoot(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "orphan", "type": "Text", "text": "hi"}
		]}}
	]`)
	if New(store).RenderSurface("main") != nil {
		t.Error("a surface without a root component renders empty")
	}
}

func TestRenderAfterDelete(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "Text", "text": "hi"}
		]}},
		{"deleteSurface": {"surfaceId": "main"}}
	]`)
	if New(store).RenderSurface("main") != nil {
		t.Error("deleted surface must render to the empty sentinel")
	}

	// A later update targeting the deleted surface is a no-op.
	batch, _ := protocol.DecodeBatch([]byte(`[
		{"updateComponents": {"surfaceId": "main", "components": [{"id": "root", "type": "Text"}]}}
	]`))
	if err := store.Apply(batch); err != nil {
		t.Fatal(err)
	}
	if New(store).RenderSurface("main") != nil {
		t.Error("update after delete must not resurrect the surface")
	}
}

// =============================================================================
// IDEMPOTENT RENDERING
// =============================================================================

func TestRenderIsIdempotent(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateDataModel": {"surfaceId": "main", "path": "/", "value":
			{"items": [{"name": "x"}, {"name": "y"}], "labels": {"b": "two", "a": "one"}}}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "Column", "children": {"explicitList": ["list", "byKey"]}},
			{"id": "list", "type": "List", "children": {"template": {"componentId": "item", "dataBinding": "/items"}}},
			{"id": "byKey", "type": "List", "children": {"template": {"componentId": "label", "dataBinding": "/labels"}}},
			{"id": "item", "type": "Text", "text": {"path": "./name"}},
			{"id": "label", "type": "Text", "text": {"path": "."}}
		]}}
	]`)

	r := New(store)
	first := r.RenderSurface("main")
	second := r.RenderSurface("main")
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated renders of unchanged state must be identical")
	}
}

// =============================================================================
// CHILD ORDER TESTS
// =============================================================================

func TestExplicitChildOrder(t *testing.T) {
	// Components inserted in scrambled order; rendering follows the
	// declared list, not insertion order.
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "c", "type": "Text", "text": "C"},
			{"id": "a", "type": "Text", "text": "A"},
			{"id": "root", "type": "Row", "children": {"explicitList": ["a", "b", "c"]}},
			{"id": "b", "type": "Text", "text": "B"}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	var got []string
	for _, child := range node.Children {
		got = append(got, child.StringAttr("text"))
	}
	if !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("children = %v, want [A B C]", got)
	}
}

func TestExplicitChildrenSkipDangling(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "Row", "children": {"explicitList": ["a", "ghost", "b"]}},
			{"id": "a", "type": "Text", "text": "A"},
			{"id": "b", "type": "Text", "text": "B"}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	if len(node.Children) != 2 {
		t.Errorf("dangling ids are skipped, got %d children", len(node.Children))
	}
}

// =============================================================================
// TEMPLATE EXPANSION TESTS
// =============================================================================

func TestTemplateOverArray(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateDataModel": {"surfaceId": "main", "path": "/", "value": {"items": [{"name": "x"}, {"name": "y"}]}}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "List", "children": {"template": {"componentId": "item", "dataBinding": "/items"}}},
			{"id": "item", "type": "Text", "text": {"path": "./name"}}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	if len(node.Children) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(node.Children))
	}
	if node.Children[0].StringAttr("text") != "x" || node.Children[1].StringAttr("text") != "y" {
		t.Errorf("instances out of order: %q, %q",
			node.Children[0].StringAttr("text"), node.Children[1].StringAttr("text"))
	}
}

func TestTemplateOverMappingSortedKeys(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateDataModel": {"surfaceId": "main", "path": "/", "value": {"labels": {"b": "two", "a": "one", "c": "three"}}}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "List", "children": {"template": {"componentId": "label", "dataBinding": "/labels"}}},
			{"id": "label", "type": "Text", "text": {"path": "."}}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	var got []string
	for _, child := range node.Children {
		got = append(got, child.StringAttr("text"))
	}
	if !reflect.DeepEqual(got, []string{"one", "two", "three"}) {
		t.Errorf("mapping expansion = %v, want key-sorted [one two three]", got)
	}
}

func TestRelativeEqualsAbsoluteInsideTemplate(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateDataModel": {"surfaceId": "main", "path": "/", "value": {"items": [{"name": "x"}, {"name": "y"}]}}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "Row", "children": {"explicitList": ["relList", "absText"]}},
			{"id": "relList", "type": "List", "children": {"template": {"componentId": "rel", "dataBinding": "/items"}}},
			{"id": "rel", "type": "Text", "text": {"path": "./name"}},
			{"id": "absText", "type": "Text", "text": {"path": "/items/1/name"}}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	relSecond := node.Children[0].Children[1].StringAttr("text")
	absolute := node.Children[1].StringAttr("text")
	if relSecond != absolute || relSecond != "y" {
		t.Errorf("relative %q must equal absolute %q (= \"y\")", relSecond, absolute)
	}
}

func TestTemplateDanglingComponent(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateDataModel": {"surfaceId": "main", "path": "/items", "value": [1, 2]}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "List", "children": {"template": {"componentId": "ghost", "dataBinding": "/items"}}}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	if len(node.Children) != 0 {
		t.Error("a template with a dangling component id renders no children")
	}
}

func TestTemplateOverScalar(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateDataModel": {"surfaceId": "main", "path": "/items", "value": "not-a-collection"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "List", "children": {"template": {"componentId": "item", "dataBinding": "/items"}}},
			{"id": "item", "type": "Text", "text": "x"}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	if len(node.Children) != 0 {
		t.Error("a template bound to a scalar renders no children")
	}
}

// =============================================================================
// TOLERANT RENDERING TESTS
// =============================================================================

func TestCardWithDanglingChild(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "Card", "child": "ghost"}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	if node == nil || node.Tag != TagCard {
		t.Fatal("card must still render")
	}
	if len(node.Children) != 0 {
		t.Error("dangling child renders as no content")
	}
}

func TestUnknownTypePlaceholder(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "Carousel", "whatever": 1}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	if node == nil || node.Tag != TagUnknown {
		t.Fatal("unknown types render a placeholder, never raise")
	}
	if node.StringAttr("type") != "Carousel" {
		t.Errorf("placeholder must carry the unknown type name, got %q", node.StringAttr("type"))
	}
}

func TestSelfReferencingContainerTerminates(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "Row", "children": {"explicitList": ["root"]}}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	if node == nil || node.Tag != TagRow {
		t.Fatal("a self-referencing container must still render")
	}
	if len(node.Children) != 1 || node.Children[0].Tag != TagUnknown {
		t.Fatalf("the repeated reference degrades to a placeholder, got %+v", node.Children)
	}
	if node.Children[0].StringAttr("id") != "root" {
		t.Errorf("placeholder must carry the repeated id, got %q", node.Children[0].StringAttr("id"))
	}
}

func TestMutualReferenceTerminates(t *testing.T) {
	// root wraps a, a wraps b, b wraps a again: the graph closes on
	// itself two levels down and must degrade there, not recurse.
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "Card", "child": "a"},
			{"id": "a", "type": "Card", "child": "b"},
			{"id": "b", "type": "Card", "child": "a"}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	if node == nil || len(node.Children) != 1 ||
		len(node.Children[0].Children) != 1 || len(node.Children[0].Children[0].Children) != 1 {
		t.Fatal("the acyclic prefix of the graph must render")
	}
	inner := node.Children[0].Children[0].Children[0]
	if inner.Tag != TagUnknown || inner.StringAttr("id") != "a" {
		t.Errorf("cycle closes with a placeholder for %q, got %v/%q",
			"a", inner.Tag, inner.StringAttr("id"))
	}
}

func TestSharedComponentAcrossSiblings(t *testing.T) {
	// The same id referenced from sibling paths is reuse, not a
	// cycle; every instance renders in full.
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "Row", "children": {"explicitList": ["shared", "shared"]}},
			{"id": "shared", "type": "Text", "text": "hi"}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	if len(node.Children) != 2 {
		t.Fatalf("expected both references rendered, got %d", len(node.Children))
	}
	for i, child := range node.Children {
		if child.Tag != TagText || child.StringAttr("text") != "hi" {
			t.Errorf("sibling %d degraded: %v/%q", i, child.Tag, child.StringAttr("text"))
		}
	}
}

func TestModalDanglingEntryPoint(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "Modal", "entryPoint": "ghost", "content": "body"},
			{"id": "body", "type": "Text", "text": "Details"}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	if node == nil || len(node.Children) != 1 {
		t.Fatal("modal content must render without its entry point")
	}
	if node.BoolAttr("hasEntry") {
		t.Error("a dangling entry point must not claim the surviving child")
	}
}

func TestUnresolvableBindingRendersEmpty(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "Text", "text": {"path": "/never/set"}}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	if node.StringAttr("text") != "" {
		t.Errorf("unresolvable binding = %q, want empty", node.StringAttr("text"))
	}
}

// =============================================================================
// PER-TYPE DEFAULT TESTS
// =============================================================================

func TestContainerEnumFallbacks(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "Row", "distribution": "sideways", "alignment": "diagonal",
			 "children": {"explicitList": []}}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	if node.StringAttr("distribution") != "start" || node.StringAttr("alignment") != "center" {
		t.Errorf("unrecognized enums fall back to start/center, got %q/%q",
			node.StringAttr("distribution"), node.StringAttr("alignment"))
	}
}

func TestListDirectionOverride(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "List", "direction": "horizontal", "children": {"explicitList": []}}
		]}}
	]`)
	node := New(store).RenderSurface("main")
	if node.StringAttr("direction") != "horizontal" {
		t.Error("list direction override lost")
	}
}

func TestSliderDefaults(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "Slider"}
		]}}
	]`)

	node := New(store).RenderSurface("main")
	if node.FloatAttr("min") != 0 || node.FloatAttr("max") != 100 {
		t.Errorf("range defaults = %v..%v, want 0..100", node.Attr("min"), node.Attr("max"))
	}
	if node.FloatAttr("value") != 50 {
		t.Errorf("unbound slider defaults to the midpoint, got %v", node.Attr("value"))
	}
}

func TestTextFieldDefaults(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "TextField", "label": "Name", "textFieldType": "bogus"}
		]}}
	]`)
	node := New(store).RenderSurface("main")
	if node.StringAttr("fieldType") != "shortText" {
		t.Errorf("fieldType fallback = %q, want shortText", node.StringAttr("fieldType"))
	}
}

func TestButtonCarriesPrimary(t *testing.T) {
	store := applyBatch(t, `[
		{"createSurface": {"surfaceId": "main", "catalogId": "std"}},
		{"updateComponents": {"surfaceId": "main", "components": [
			{"id": "root", "type": "Button", "child": "lbl", "primary": true,
			 "action": {"name": "submit"}},
			{"id": "lbl", "type": "Text", "text": "Go"}
		]}}
	]`)
	node := New(store).RenderSurface("main")
	if !node.BoolAttr("primary") {
		t.Error("primary hint lost")
	}
	if len(node.Children) != 1 || node.Children[0].StringAttr("text") != "Go" {
		t.Error("button child not rendered")
	}
}

// =============================================================================
// ICON NAME CONVERSION TESTS
// =============================================================================

func TestIconName(t *testing.T) {
	cases := map[string]string{
		"chevronRight":  "chevron_right",
		"accountCircle": "account_circle",
		"home":          "home",
		"wifiOffRounded": "wifi_off_rounded",
		"":              "",
	}
	for in, want := range cases {
		if got := IconName(in); got != want {
			t.Errorf("IconName(%q) = %q, want %q", in, got, want)
		}
	}
}
