// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render projects a surface's component graph into a visual
// node tree.
package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jeranaias/loom-tui/internal/binding"
	"github.com/jeranaias/loom-tui/internal/datapath"
	"github.com/jeranaias/loom-tui/internal/protocol"
	"github.com/jeranaias/loom-tui/internal/surface"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// Layout enum defaults; unrecognized wire values fall back here.
	DefaultDistribution = "start"
	DefaultAlignment    = "center"

	// Slider range defaults when minValue/maxValue are absent.
	DefaultSliderMin = 0.0
	DefaultSliderMax = 100.0

	// Image defaults: cover fit at medium-feature sizing.
	DefaultImageFit  = "cover"
	DefaultImageRole = "mediumFeature"

	// TextField input category default.
	DefaultFieldType = "shortText"
)

var validDistributions = map[string]bool{
	"start": true, "center": true, "end": true,
	"spaceBetween": true, "spaceAround": true, "spaceEvenly": true,
}

var validAlignments = map[string]bool{
	"start": true, "center": true, "end": true, "stretch": true,
}

var validFieldTypes = map[string]bool{
	"date": true, "longText": true, "number": true, "shortText": true, "obscured": true,
}

var textRoles = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"caption": true, "body": true,
}

// =============================================================================
// RENDERER
// =============================================================================

// Renderer projects surfaces from a store into visual node trees. It
// holds no state of its own; every render reads a fresh snapshot, so
// independent surfaces can render concurrently.
type Renderer struct {
	store *surface.Store
}

// New creates a renderer over a surface store.
func New(store *surface.Store) *Renderer {
	return &Renderer{store: store}
}

// RenderSurface renders the surface's component graph from its "root"
// component. A missing surface or a surface without a root yields nil,
// the empty sentinel, never an error.
func (r *Renderer) RenderSurface(surfaceID string) *Node {
	surf, ok := r.store.Snapshot(surfaceID)
	if !ok {
		return nil
	}
	return RenderSurface(surf)
}

// RenderSurface renders an already-snapshotted surface. Exposed so
// replay and testing can render without a store.
func RenderSurface(surf *surface.Surface) *Node {
	root, ok := surf.Root()
	if !ok {
		return nil
	}
	return renderComponent(surf, root, "", make(map[string]bool))
}

// =============================================================================
// COMPONENT DISPATCH
// =============================================================================

// renderComponent renders one component and its descendants. The
// context path is the data-model prefix in effect inside a templated
// instance; it travels as a parameter, never as renderer state. seen
// holds the component ids on the current render path: a component
// graph that reaches back into itself would otherwise recurse without
// bound, so a repeated id degrades to the same marked placeholder an
// unknown type gets.
func renderComponent(surf *surface.Surface, c protocol.Component, ctx string, seen map[string]bool) *Node {
	if seen[c.ID] {
		n := newNode(TagUnknown)
		n.Attrs["type"] = c.Type
		n.Attrs["id"] = c.ID
		return n
	}
	seen[c.ID] = true
	defer delete(seen, c.ID)

	switch props := c.Props.(type) {
	case protocol.TextProps:
		return renderText(surf, props, ctx)
	case protocol.ImageProps:
		return renderImage(surf, props, ctx)
	case protocol.IconProps:
		return renderIcon(surf, props, ctx)
	case protocol.RowProps:
		return renderContainer(surf, TagRow, props.Children, "horizontal", props.Distribution, props.Alignment, ctx, seen)
	case protocol.ColumnProps:
		return renderContainer(surf, TagColumn, props.Children, "vertical", props.Distribution, props.Alignment, ctx, seen)
	case protocol.ListProps:
		direction := props.Direction
		if direction != "horizontal" {
			direction = "vertical"
		}
		return renderContainer(surf, TagList, props.Children, direction, props.Distribution, props.Alignment, ctx, seen)
	case protocol.CardProps:
		return renderSingleChild(surf, TagCard, props.Child, ctx, seen)
	case protocol.ButtonProps:
		n := renderSingleChild(surf, TagButton, props.Child, ctx, seen)
		n.Attrs["primary"] = props.Primary
		return n
	case protocol.TextFieldProps:
		return renderTextField(surf, props, ctx)
	case protocol.DividerProps:
		return renderDivider(props)
	case protocol.SliderProps:
		return renderSlider(surf, props, ctx)
	case protocol.CheckBoxProps:
		return renderCheckBox(surf, props, ctx)
	case protocol.MultipleChoiceProps:
		return renderMultipleChoice(surf, props, ctx)
	case protocol.DateTimeInputProps:
		return renderDateTimeInput(surf, props, ctx)
	case protocol.TabsProps:
		return renderTabs(surf, props, ctx, seen)
	case protocol.ModalProps:
		return renderModal(surf, props, ctx, seen)
	default:
		// Unknown type: a visibly-marked placeholder carrying the
		// type name, so the failure is debuggable without breaking
		// the rest of the tree.
		n := newNode(TagUnknown)
		n.Attrs["type"] = c.Type
		n.Attrs["id"] = c.ID
		return n
	}
}

// =============================================================================
// LEAF COMPONENTS
// =============================================================================

func renderText(surf *surface.Surface, props protocol.TextProps, ctx string) *Node {
	n := newNode(TagText)
	n.Attrs["text"] = binding.ResolveString(props.Text, surf.DataModel, ctx)
	n.Role = "body"
	if textRoles[props.UsageHint] {
		n.Role = props.UsageHint
	}
	return n
}

func renderImage(surf *surface.Surface, props protocol.ImageProps, ctx string) *Node {
	n := newNode(TagImage)
	n.Attrs["url"] = binding.ResolveString(props.URL, surf.DataModel, ctx)
	fit := props.Fit
	if fit == "" {
		fit = DefaultImageFit
	}
	n.Attrs["fit"] = fit
	n.Role = DefaultImageRole
	if props.UsageHint != "" {
		n.Role = props.UsageHint
	}
	return n
}

func renderIcon(surf *surface.Surface, props protocol.IconProps, ctx string) *Node {
	n := newNode(TagIcon)
	n.Attrs["name"] = IconName(binding.ResolveString(props.Name, surf.DataModel, ctx))
	return n
}

// IconName converts a camelCased icon identifier to the presentation
// layer's snake_case convention: an underscore is inserted before each
// capital letter, which is then lowercased. "chevronRight" becomes
// "chevron_right". The transform is exact so names round-trip.
func IconName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func renderDivider(props protocol.DividerProps) *Node {
	n := newNode(TagDivider)
	axis := props.Axis
	if axis != "vertical" {
		axis = "horizontal"
	}
	n.Attrs["axis"] = axis
	return n
}

func renderSlider(surf *surface.Surface, props protocol.SliderProps, ctx string) *Node {
	n := newNode(TagSlider)
	min, max := DefaultSliderMin, DefaultSliderMax
	if props.MinValue != nil {
		min = *props.MinValue
	}
	if props.MaxValue != nil {
		max = *props.MaxValue
	}
	value, ok := binding.ResolveNumber(props.Value, surf.DataModel, ctx)
	if !ok {
		// An unbound slider still needs a sane position.
		value = min + (max-min)/2
	}
	n.Attrs["min"] = min
	n.Attrs["max"] = max
	n.Attrs["value"] = value
	return n
}

func renderCheckBox(surf *surface.Surface, props protocol.CheckBoxProps, ctx string) *Node {
	n := newNode(TagCheckBox)
	n.Attrs["label"] = binding.ResolveString(props.Label, surf.DataModel, ctx)
	n.Attrs["value"] = binding.ResolveBool(props.Value, surf.DataModel, ctx)
	return n
}

func renderTextField(surf *surface.Surface, props protocol.TextFieldProps, ctx string) *Node {
	n := newNode(TagTextField)
	n.Attrs["label"] = binding.ResolveString(props.Label, surf.DataModel, ctx)
	n.Attrs["text"] = binding.ResolveString(props.Text, surf.DataModel, ctx)
	fieldType := props.TextFieldType
	if !validFieldTypes[fieldType] {
		fieldType = DefaultFieldType
	}
	n.Attrs["fieldType"] = fieldType
	return n
}

func renderMultipleChoice(surf *surface.Surface, props protocol.MultipleChoiceProps, ctx string) *Node {
	n := newNode(TagMultipleChoice)
	n.Attrs["label"] = binding.ResolveString(props.Label, surf.DataModel, ctx)
	options, _ := binding.Resolve(props.Options, surf.DataModel, ctx).([]any)
	n.Attrs["options"] = options
	n.Attrs["selections"] = selectionSet(binding.Resolve(props.Selections, surf.DataModel, ctx))
	if props.MaxAllowedSelections > 0 {
		n.Attrs["max"] = float64(props.MaxAllowedSelections)
	}
	return n
}

// selectionSet normalizes a resolved selections value to a string
// slice: a scalar becomes a one-element slice, an array keeps order.
func selectionSet(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, binding.Stringify(item))
		}
		return out
	default:
		return []string{binding.Stringify(t)}
	}
}

func renderDateTimeInput(surf *surface.Surface, props protocol.DateTimeInputProps, ctx string) *Node {
	n := newNode(TagDateTimeInput)
	n.Attrs["value"] = binding.ResolveString(props.Value, surf.DataModel, ctx)
	date, clock := true, true
	if props.EnableDate != nil {
		date = *props.EnableDate
	}
	if props.EnableTime != nil {
		clock = *props.EnableTime
	}
	n.Attrs["date"] = date
	n.Attrs["time"] = clock
	return n
}

// =============================================================================
// CONTAINER COMPONENTS
// =============================================================================

func renderContainer(surf *surface.Surface, tag Tag, children protocol.ChildrenRef, direction, distribution, alignment string, ctx string, seen map[string]bool) *Node {
	n := newNode(tag)
	n.Attrs["direction"] = direction
	if !validDistributions[distribution] {
		distribution = DefaultDistribution
	}
	if !validAlignments[alignment] {
		alignment = DefaultAlignment
	}
	n.Attrs["distribution"] = distribution
	n.Attrs["alignment"] = alignment
	n.Children = resolveChildren(surf, children, ctx, seen)
	return n
}

// renderSingleChild renders a wrapper (Card, Button) around one child
// id. A dangling id renders as a wrapper with no content.
func renderSingleChild(surf *surface.Surface, tag Tag, childID, ctx string, seen map[string]bool) *Node {
	n := newNode(tag)
	if child, ok := surf.Component(childID); ok {
		n.Children = append(n.Children, renderComponent(surf, child, ctx, seen))
	}
	return n
}

func renderTabs(surf *surface.Surface, props protocol.TabsProps, ctx string, seen map[string]bool) *Node {
	n := newNode(TagTabs)
	titles := make([]string, 0, len(props.TabItems))
	for _, item := range props.TabItems {
		child, ok := surf.Component(item.Child)
		if !ok {
			continue
		}
		titles = append(titles, binding.ResolveString(item.Title, surf.DataModel, ctx))
		n.Children = append(n.Children, renderComponent(surf, child, ctx, seen))
	}
	n.Attrs["titles"] = titles
	return n
}

func renderModal(surf *surface.Surface, props protocol.ModalProps, ctx string, seen map[string]bool) *Node {
	n := newNode(TagModal)
	entry, hasEntry := surf.Component(props.EntryPoint)
	if hasEntry {
		n.Children = append(n.Children, renderComponent(surf, entry, ctx, seen))
	}
	// The presentation layer frames the modal body, not the entry
	// point, so it needs to know which child survived.
	n.Attrs["hasEntry"] = hasEntry
	if content, ok := surf.Component(props.Content); ok {
		n.Children = append(n.Children, renderComponent(surf, content, ctx, seen))
	}
	return n
}

// =============================================================================
// CHILDREN RESOLUTION
// =============================================================================

// resolveChildren materializes a children reference. Explicit lists
// keep their declared order with dangling ids silently skipped.
// Templates expand in document order: array items by index, mapping
// items by sorted key (Go maps have no stable iteration order, and
// repeated renders must be identical).
func resolveChildren(surf *surface.Surface, ref protocol.ChildrenRef, ctx string, seen map[string]bool) []*Node {
	switch {
	case len(ref.ExplicitList) > 0:
		nodes := make([]*Node, 0, len(ref.ExplicitList))
		for _, id := range ref.ExplicitList {
			child, ok := surf.Component(id)
			if !ok {
				continue
			}
			nodes = append(nodes, renderComponent(surf, child, ctx, seen))
		}
		return nodes

	case ref.Template != nil:
		return expandTemplate(surf, ref.Template, ctx, seen)

	default:
		return nil
	}
}

// expandTemplate instantiates the template component once per element
// of the bound collection, each instance rendered under its own
// context path "{binding}/{index-or-key}". Sibling instances share no
// state beyond the immutable snapshot.
func expandTemplate(surf *surface.Surface, tmpl *protocol.ChildTemplate, ctx string, seen map[string]bool) []*Node {
	component, ok := surf.Component(tmpl.ComponentID)
	if !ok {
		return nil
	}
	bindingPath := datapath.ResolveRelative(tmpl.DataBinding, ctx)
	value, ok := datapath.Get(surf.DataModel, bindingPath)
	if !ok {
		return nil
	}

	switch collection := value.(type) {
	case []any:
		nodes := make([]*Node, 0, len(collection))
		for i := range collection {
			itemCtx := joinPath(bindingPath, strconv.Itoa(i))
			nodes = append(nodes, renderComponent(surf, component, itemCtx, seen))
		}
		return nodes

	case map[string]any:
		keys := make([]string, 0, len(collection))
		for k := range collection {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		nodes := make([]*Node, 0, len(keys))
		for _, k := range keys {
			nodes = append(nodes, renderComponent(surf, component, joinPath(bindingPath, k), seen))
		}
		return nodes

	default:
		// Bound to a scalar: nothing to repeat over.
		return nil
	}
}

// joinPath appends a segment to a base path with exactly one slash.
func joinPath(base, segment string) string {
	base = strings.TrimSuffix(base, "/")
	if base == "" {
		return "/" + segment
	}
	return base + "/" + segment
}
