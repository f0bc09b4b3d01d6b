// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package datapath provides slash-delimited path access into JSON-like trees.
package datapath

import (
	"strconv"
	"strings"
)

// =============================================================================
// PATH SPLITTING
// =============================================================================

// Split breaks a slash-delimited path into segments, discarding empty
// segments so "/a/b", "a/b" and "a//b/" all normalize to ["a", "b"].
// The root path ("" or "/") splits to an empty slice.
func Split(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// IsRoot reports whether path addresses the whole tree.
func IsRoot(path string) bool {
	return len(Split(path)) == 0
}

// ResolveRelative composes a possibly-relative path with a context path.
// A path beginning with "./" is anchored under contextPath, and "." on
// its own refers to the context node itself; any other path is
// absolute from the tree root and returned unchanged. With an empty
// contextPath a relative path degrades to an absolute one.
func ResolveRelative(path, contextPath string) string {
	if path == "." {
		if contextPath == "" {
			return "/"
		}
		return contextPath
	}
	if !strings.HasPrefix(path, "./") {
		return path
	}
	rest := strings.TrimPrefix(path, ".")
	if contextPath == "" {
		return rest
	}
	return strings.TrimSuffix(contextPath, "/") + rest
}

// =============================================================================
// LOOKUP
// =============================================================================

// Get walks tree along path and returns the value found there.
// The second return is false when any segment cannot be followed:
// wrong node type, missing key, unparsable or out-of-range index.
func Get(tree any, path string) (any, bool) {
	current := tree
	for _, seg := range Split(path) {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// =============================================================================
// MUTATION
// =============================================================================

// Set assigns value at path and returns the (possibly replaced) root.
// Missing intermediate segments are created as empty mapping nodes.
// Setting at the root path replaces the entire tree with value. When an
// existing intermediate node is not a container it is replaced by a map
// so the write can proceed. A sequence root that the first segment
// cannot index is the one exception: replacing it would discard the
// whole tree, so the write is a no-op instead.
func Set(root any, path string, value any) any {
	segments := Split(path)
	if len(segments) == 0 {
		return value
	}

	parent, ok := root.(map[string]any)
	if !ok {
		// Sequence roots can still be written through if the first
		// segment is a valid index.
		if seq, isSeq := root.([]any); isSeq {
			if idx, err := strconv.Atoi(segments[0]); err == nil && idx >= 0 && idx < len(seq) {
				seq[idx] = Set(seq[idx], strings.Join(segments[1:], "/"), value)
			}
			return root
		}
		parent = make(map[string]any)
		root = parent
	}

	node := parent
	for i := 0; i < len(segments)-1; i++ {
		seg := segments[i]
		child, exists := node[seg]
		if !exists {
			next := make(map[string]any)
			node[seg] = next
			node = next
			continue
		}
		switch typed := child.(type) {
		case map[string]any:
			node = typed
		case []any:
			// Descend into the sequence for the remainder of the path.
			node[seg] = Set(typed, strings.Join(segments[i+1:], "/"), value)
			return root
		default:
			next := make(map[string]any)
			node[seg] = next
			node = next
		}
	}
	node[segments[len(segments)-1]] = value
	return root
}

// Remove deletes the node at path and returns the (possibly replaced)
// root. Removing the root path yields an empty mapping. A path that
// does not resolve is a no-op.
func Remove(root any, path string) any {
	segments := Split(path)
	if len(segments) == 0 {
		return make(map[string]any)
	}

	parentPath := strings.Join(segments[:len(segments)-1], "/")
	last := segments[len(segments)-1]

	parent, ok := Get(root, parentPath)
	if !ok {
		return root
	}
	switch node := parent.(type) {
	case map[string]any:
		delete(node, last)
	case []any:
		idx, err := strconv.Atoi(last)
		if err != nil || idx < 0 || idx >= len(node) {
			return root
		}
		trimmed := append(node[:idx:idx], node[idx+1:]...)
		if parentPath == "" {
			return trimmed
		}
		return Set(root, parentPath, trimmed)
	}
	return root
}

// =============================================================================
// CLONING
// =============================================================================

// Clone deep-copies a JSON-like tree. Scalars are returned as-is;
// maps and slices are copied recursively. Used to hand out snapshots
// that rendering can read without holding the store lock.
func Clone(tree any) any {
	switch node := tree.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, v := range node {
			out[k] = Clone(v)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, v := range node {
			out[i] = Clone(v)
		}
		return out
	default:
		return node
	}
}
