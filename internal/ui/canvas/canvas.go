// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package canvas is the terminal presentation layer for rendered
// surfaces.
package canvas

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/loom-tui/internal/render"
	"github.com/jeranaias/loom-tui/internal/ui/styles"
	"github.com/jeranaias/loom-tui/internal/util"
)

// =============================================================================
// CANVAS
// =============================================================================

// Canvas draws visual node trees into terminal cells.
type Canvas struct {
	theme *styles.Theme
	width int
}

// New creates a canvas with a target width in columns.
func New(theme *styles.Theme, width int) *Canvas {
	if width < 20 {
		width = 20
	}
	return &Canvas{theme: theme, width: width}
}

// SetWidth adjusts the target width.
func (c *Canvas) SetWidth(width int) {
	if width >= 20 {
		c.width = width
	}
}

// Render draws a node tree. The empty sentinel (nil) draws nothing.
func (c *Canvas) Render(n *render.Node) string {
	if n == nil {
		return ""
	}
	switch n.Tag {
	case render.TagText:
		return c.renderText(n)
	case render.TagImage:
		return c.renderImage(n)
	case render.TagIcon:
		return c.renderIcon(n)
	case render.TagRow:
		return c.renderChildren(n, "horizontal")
	case render.TagColumn:
		return c.renderChildren(n, "vertical")
	case render.TagList:
		return c.renderChildren(n, n.StringAttr("direction"))
	case render.TagCard:
		return c.renderCard(n)
	case render.TagButton:
		return c.renderButton(n)
	case render.TagTextField:
		return c.renderTextField(n)
	case render.TagDivider:
		return c.renderDivider(n)
	case render.TagSlider:
		return c.renderSlider(n)
	case render.TagCheckBox:
		return c.renderCheckBox(n)
	case render.TagMultipleChoice:
		return c.renderMultipleChoice(n)
	case render.TagDateTimeInput:
		return c.renderDateTimeInput(n)
	case render.TagTabs:
		return c.renderTabs(n)
	case render.TagModal:
		return c.renderModal(n)
	default:
		return c.renderUnknown(n)
	}
}

// =============================================================================
// LEAF TAGS
// =============================================================================

func (c *Canvas) renderText(n *render.Node) string {
	text := n.StringAttr("text")
	switch n.Role {
	case "h1":
		return c.theme.Heading1.Render(text)
	case "h2":
		return c.theme.Heading2.Render(text)
	case "h3":
		return c.theme.Heading3.Render(text)
	case "h4":
		return c.theme.Heading4.Render(text)
	case "h5":
		return c.theme.Heading5.Render(text)
	case "caption":
		return c.theme.Caption.Render(text)
	default:
		return c.theme.Body.Render(text)
	}
}

func (c *Canvas) renderImage(n *render.Node) string {
	url := n.StringAttr("url")
	if url == "" {
		return ""
	}
	// Terminals don't draw bitmaps; show a labeled frame sized by the
	// node's role so layout still reads correctly.
	label := util.TruncateWidth(url, c.imageWidth(n.Role))
	return c.theme.ImageFrame.Render("▨ " + label)
}

// imageWidth maps the sizing role to a frame width.
func (c *Canvas) imageWidth(role string) int {
	switch role {
	case "icon", "avatar":
		return 12
	case "smallFeature":
		return 24
	case "largeFeature", "hero":
		return c.width - 6
	default: // mediumFeature
		return c.width / 2
	}
}

// iconGlyphs maps common snake_case icon names to terminal glyphs.
var iconGlyphs = map[string]string{
	"chevron_right": "›",
	"chevron_left":  "‹",
	"arrow_forward": "→",
	"arrow_back":    "←",
	"check":         "✓",
	"close":         "✕",
	"add":           "+",
	"remove":        "−",
	"star":          "★",
	"favorite":      "♥",
	"home":          "⌂",
	"search":        "⌕",
	"settings":      "⚙",
	"info":          "ℹ",
	"warning":       "⚠",
	"menu":          "☰",
	"calendar_today": "▤",
	"schedule":      "◷",
}

func (c *Canvas) renderIcon(n *render.Node) string {
	name := n.StringAttr("name")
	if glyph, ok := iconGlyphs[name]; ok {
		return c.theme.IconGlyph.Render(glyph)
	}
	if name == "" {
		return ""
	}
	return c.theme.Caption.Render("[" + name + "]")
}

func (c *Canvas) renderDivider(n *render.Node) string {
	if n.StringAttr("axis") == "vertical" {
		return c.theme.Divider.Render("│")
	}
	return c.theme.Divider.Render(util.Repeat("─", c.width/2))
}

func (c *Canvas) renderSlider(n *render.Node) string {
	min := n.FloatAttr("min")
	max := n.FloatAttr("max")
	value := n.FloatAttr("value")

	const trackWidth = 20
	position := 0
	if max > min {
		position = int(((value - min) / (max - min)) * float64(trackWidth-1))
	}
	if position < 0 {
		position = 0
	}
	if position > trackWidth-1 {
		position = trackWidth - 1
	}

	track := c.theme.SliderTrack.Render(util.Repeat("─", position)) +
		c.theme.SliderThumb.Render("●") +
		c.theme.SliderTrack.Render(util.Repeat("─", trackWidth-1-position))
	return fmt.Sprintf("%s %s", track, c.theme.Caption.Render(formatNumber(value)))
}

func (c *Canvas) renderCheckBox(n *render.Node) string {
	label := n.StringAttr("label")
	if n.BoolAttr("value") {
		return c.theme.Checked.Render("[✓] ") + c.theme.Body.Render(label)
	}
	return c.theme.Unchecked.Render("[ ] ") + c.theme.Body.Render(label)
}

func (c *Canvas) renderTextField(n *render.Node) string {
	label := n.StringAttr("label")
	text := n.StringAttr("text")
	fieldType := n.StringAttr("fieldType")

	switch fieldType {
	case "obscured":
		text = util.Repeat("•", len([]rune(text)))
	case "date":
		if text == "" {
			text = "YYYY-MM-DD"
		}
	case "number":
		if text == "" {
			text = "0"
		}
	}

	frameWidth := c.width/2 - 4
	var frame string
	if fieldType == "longText" {
		frame = c.theme.FieldFrame.Width(frameWidth).Height(3).Render(text)
	} else {
		frame = c.theme.FieldFrame.Width(frameWidth).Render(util.TruncateWidth(text, frameWidth))
	}

	if label == "" {
		return frame
	}
	return lipgloss.JoinVertical(lipgloss.Left, c.theme.FieldLabel.Render(label), frame)
}

func (c *Canvas) renderDateTimeInput(n *render.Node) string {
	value := n.StringAttr("value")
	var hints []string
	if n.BoolAttr("date") {
		hints = append(hints, "date")
	}
	if n.BoolAttr("time") {
		hints = append(hints, "time")
	}
	if value == "" {
		value = strings.Join(hints, " / ")
	}
	frame := c.theme.FieldFrame.Render(value)
	return lipgloss.JoinHorizontal(lipgloss.Center, frame, " ", c.theme.Caption.Render("◷"))
}

func (c *Canvas) renderUnknown(n *render.Node) string {
	name := n.StringAttr("type")
	if name == "" {
		name = string(n.Tag)
	}
	return c.theme.UnknownBox.Render("⚠ unknown component: " + name)
}

// =============================================================================
// CONTAINER TAGS
// =============================================================================

func (c *Canvas) renderChildren(n *render.Node, direction string) string {
	if len(n.Children) == 0 {
		return ""
	}
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		if s := c.Render(child); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	if direction == "horizontal" {
		return lipgloss.JoinHorizontal(alignPosition(n.StringAttr("alignment")), interleave(parts, "  ")...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// alignPosition maps the protocol alignment enum onto a lipgloss join
// position for horizontal layout.
func alignPosition(alignment string) lipgloss.Position {
	switch alignment {
	case "start":
		return lipgloss.Top
	case "end":
		return lipgloss.Bottom
	default:
		return lipgloss.Center
	}
}

// interleave inserts sep between elements.
func interleave(parts []string, sep string) []string {
	if len(parts) <= 1 {
		return parts
	}
	out := make([]string, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}

func (c *Canvas) renderCard(n *render.Node) string {
	var inner string
	if len(n.Children) > 0 {
		inner = c.Render(n.Children[0])
	}
	return c.theme.Card.Render(inner)
}

func (c *Canvas) renderButton(n *render.Node) string {
	var inner string
	if len(n.Children) > 0 {
		inner = c.Render(n.Children[0])
	}
	if n.BoolAttr("primary") {
		return c.theme.ButtonPrimary.Render(inner)
	}
	return c.theme.ButtonSecondary.Render(inner)
}

func (c *Canvas) renderMultipleChoice(n *render.Node) string {
	var lines []string
	if label := n.StringAttr("label"); label != "" {
		lines = append(lines, c.theme.FieldLabel.Render(label))
	}

	selected := make(map[string]bool)
	if sels, ok := n.Attr("selections").([]string); ok {
		for _, s := range sels {
			selected[s] = true
		}
	}

	options, _ := n.Attr("options").([]any)
	for _, raw := range options {
		label, value := optionFields(raw)
		marker := c.theme.Unchecked.Render("○ ")
		if selected[value] {
			marker = c.theme.Checked.Render("◉ ")
		}
		lines = append(lines, marker+c.theme.Body.Render(label))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// optionFields pulls label/value out of one option entry; a bare
// scalar serves as both.
func optionFields(raw any) (label, value string) {
	if obj, ok := raw.(map[string]any); ok {
		label, _ = obj["label"].(string)
		value, _ = obj["value"].(string)
		if label == "" {
			label = value
		}
		return label, value
	}
	s := fmt.Sprintf("%v", raw)
	return s, s
}

func (c *Canvas) renderTabs(n *render.Node) string {
	titles, _ := n.Attr("titles").([]string)
	if len(titles) == 0 || len(n.Children) == 0 {
		return ""
	}

	// Static projection: first tab is active.
	var bar []string
	for i, title := range titles {
		if i == 0 {
			bar = append(bar, c.theme.TabActive.Render(title))
			continue
		}
		bar = append(bar, c.theme.TabInactive.Render(title))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, bar...),
		c.Render(n.Children[0]),
	)
}

func (c *Canvas) renderModal(n *render.Node) string {
	// Children are [entryPoint, content] when both resolve; the
	// hasEntry attribute says whether the first child is the entry
	// point. The modal body is always drawn framed.
	switch {
	case len(n.Children) == 0:
		return ""
	case len(n.Children) == 1 && n.BoolAttr("hasEntry"):
		return c.Render(n.Children[0])
	case len(n.Children) == 1:
		return c.theme.ModalFrame.Render(c.Render(n.Children[0]))
	default:
		return lipgloss.JoinVertical(lipgloss.Left,
			c.Render(n.Children[0]),
			c.theme.ModalFrame.Render(c.Render(n.Children[1])),
		)
	}
}

// formatNumber prints a float without a trailing ".0".
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
