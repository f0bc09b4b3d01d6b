// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package binding resolves bindable property values against a
// surface's data model.
package binding

import (
	"fmt"
	"strconv"

	"github.com/jeranaias/loom-tui/internal/datapath"
	"github.com/jeranaias/loom-tui/internal/protocol"
)

// =============================================================================
// RESOLUTION
// =============================================================================

// Resolve turns a bindable value into concrete data. Precedence is
// literalString, literalNumber, literalBoolean, literalArray, then
// path; a literal always beats a path so producers can ship a
// fallback literal alongside a binding. An undefined value (or a path
// that resolves to nothing) yields nil.
func Resolve(bv protocol.BindableValue, dataModel any, contextPath string) any {
	if scalar, ok := bv.Scalar(); ok {
		return scalar
	}
	switch {
	case bv.LiteralString != nil:
		return *bv.LiteralString
	case bv.LiteralNumber != nil:
		return *bv.LiteralNumber
	case bv.LiteralBoolean != nil:
		return *bv.LiteralBoolean
	case bv.HasLiteralArray():
		return bv.LiteralArray
	case bv.Path != "":
		path := datapath.ResolveRelative(bv.Path, contextPath)
		if v, ok := datapath.Get(dataModel, path); ok {
			return v
		}
		return nil
	default:
		return nil
	}
}

// =============================================================================
// TYPED CONVENIENCE WRAPPERS
// =============================================================================

// ResolveString resolves to a display string, empty when undefined.
// Non-string scalars are formatted the way JSON would print them, so a
// Text bound to a number still shows something sensible.
func ResolveString(bv protocol.BindableValue, dataModel any, contextPath string) string {
	return Stringify(Resolve(bv, dataModel, contextPath))
}

// ResolveBool resolves to a boolean, false when undefined or not a
// boolean.
func ResolveBool(bv protocol.BindableValue, dataModel any, contextPath string) bool {
	b, _ := Resolve(bv, dataModel, contextPath).(bool)
	return b
}

// ResolveNumber resolves to a float64. The second return is false when
// the value is undefined or not numeric.
func ResolveNumber(bv protocol.BindableValue, dataModel any, contextPath string) (float64, bool) {
	switch v := Resolve(bv, dataModel, contextPath).(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Stringify formats a resolved value for display. nil becomes the
// empty string; numbers drop a trailing ".0" so 3.0 prints as "3".
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
