// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the loom TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled building blocks for rendering surfaces and
// the surrounding shell. It detects the terminal's color capability
// once and hands styles to the canvas and chat layers.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// TEXT ROLES
	// ==========================================================================

	Heading1 lipgloss.Style
	Heading2 lipgloss.Style
	Heading3 lipgloss.Style
	Heading4 lipgloss.Style
	Heading5 lipgloss.Style
	Body     lipgloss.Style
	Caption  lipgloss.Style

	// ==========================================================================
	// COMPONENT FRAMES
	// ==========================================================================

	Card            lipgloss.Style
	ButtonPrimary   lipgloss.Style
	ButtonSecondary lipgloss.Style
	FieldFrame      lipgloss.Style
	FieldLabel      lipgloss.Style
	Checked         lipgloss.Style
	Unchecked       lipgloss.Style
	IconGlyph       lipgloss.Style
	ImageFrame      lipgloss.Style
	TabActive       lipgloss.Style
	TabInactive     lipgloss.Style
	ModalFrame      lipgloss.Style
	Divider         lipgloss.Style
	SliderTrack     lipgloss.Style
	SliderThumb     lipgloss.Style

	// ==========================================================================
	// DIAGNOSTIC STYLES
	// ==========================================================================

	UnknownBox  lipgloss.Style
	SurfaceMark lipgloss.Style

	// ==========================================================================
	// SHELL CHROME
	// ==========================================================================

	Header       lipgloss.Style
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	InputPrompt  lipgloss.Style
	ErrorText    lipgloss.Style
	Spinner      lipgloss.Style
}

// NewTheme creates a theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	// Text roles
	t.Heading1 = lipgloss.NewStyle().Bold(true).Foreground(Purple).MarginBottom(1)
	t.Heading2 = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.Heading3 = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.Heading4 = lipgloss.NewStyle().Bold(true).Foreground(Text)
	t.Heading5 = lipgloss.NewStyle().Bold(true).Foreground(TextMuted)
	t.Body = lipgloss.NewStyle().Foreground(Text)
	t.Caption = lipgloss.NewStyle().Italic(true).Foreground(TextMuted)

	// Component frames
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.ButtonPrimary = lipgloss.NewStyle().
		Foreground(TextInverted).
		Background(Cyan).
		Padding(0, 2).
		Bold(true)
	t.ButtonSecondary = lipgloss.NewStyle().
		Foreground(Cyan).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)
	t.FieldFrame = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(OverlayDim).
		Padding(0, 1)
	t.FieldLabel = lipgloss.NewStyle().Foreground(TextMuted)
	t.Checked = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.Unchecked = lipgloss.NewStyle().Foreground(TextMuted)
	t.IconGlyph = lipgloss.NewStyle().Foreground(Cyan)
	t.ImageFrame = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(OverlayDim).
		Foreground(TextMuted).
		Padding(0, 1)
	t.TabActive = lipgloss.NewStyle().Bold(true).Foreground(Purple).Underline(true).Padding(0, 1)
	t.TabInactive = lipgloss.NewStyle().Foreground(TextMuted).Padding(0, 1)
	t.ModalFrame = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Purple).
		Padding(0, 2)
	t.Divider = lipgloss.NewStyle().Foreground(OverlayDim)
	t.SliderTrack = lipgloss.NewStyle().Foreground(OverlayDim)
	t.SliderThumb = lipgloss.NewStyle().Foreground(Cyan).Bold(true)

	// Diagnostics
	t.UnknownBox = lipgloss.NewStyle().
		Foreground(Rose).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Rose).
		Padding(0, 1)
	t.SurfaceMark = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	// Shell chrome
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 1)
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(SurfaceDim).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextMuted)
	t.InputPrompt = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.ErrorText = lipgloss.NewStyle().Foreground(Rose)
	t.Spinner = lipgloss.NewStyle().Foreground(Amber)

	return t
}
