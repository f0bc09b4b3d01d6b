// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render projects a surface's component graph into a visual
// node tree.
package render

// =============================================================================
// VISUAL NODE
// =============================================================================

// Tag identifies the rendering rule a presentation layer applies to a
// node.
type Tag string

const (
	TagText           Tag = "text"
	TagImage          Tag = "image"
	TagIcon           Tag = "icon"
	TagRow            Tag = "row"
	TagColumn         Tag = "column"
	TagList           Tag = "list"
	TagCard           Tag = "card"
	TagButton         Tag = "button"
	TagTextField      Tag = "textfield"
	TagDivider        Tag = "divider"
	TagSlider         Tag = "slider"
	TagCheckBox       Tag = "checkbox"
	TagMultipleChoice Tag = "multiplechoice"
	TagDateTimeInput  Tag = "datetimeinput"
	TagTabs           Tag = "tabs"
	TagModal          Tag = "modal"
	TagUnknown        Tag = "unknown"
)

// Node is one element of the rendered tree: a tag selecting the
// rendering rule, an optional structural role (heading level, sizing
// hint), fully-resolved attributes, and ordered children. Two renders
// of unchanged state produce structurally identical trees.
type Node struct {
	Tag      Tag
	Role     string
	Attrs    map[string]any
	Children []*Node
}

// Attr reads a resolved attribute, nil when absent.
func (n *Node) Attr(key string) any {
	if n == nil || n.Attrs == nil {
		return nil
	}
	return n.Attrs[key]
}

// StringAttr reads a resolved string attribute, empty when absent or
// not a string.
func (n *Node) StringAttr(key string) string {
	s, _ := n.Attr(key).(string)
	return s
}

// BoolAttr reads a resolved boolean attribute, false when absent.
func (n *Node) BoolAttr(key string) bool {
	b, _ := n.Attr(key).(bool)
	return b
}

// FloatAttr reads a resolved numeric attribute, 0 when absent.
func (n *Node) FloatAttr(key string) float64 {
	f, _ := n.Attr(key).(float64)
	return f
}

// newNode builds a node with an attribute map ready to fill.
func newNode(tag Tag) *Node {
	return &Node{Tag: tag, Attrs: make(map[string]any)}
}

// Walk visits the node and every descendant in document order.
func (n *Node) Walk(visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, child := range n.Children {
		child.Walk(visit)
	}
}
