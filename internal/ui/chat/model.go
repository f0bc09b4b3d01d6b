// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the interactive shell for the loom TUI.
package chat

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/loom-tui/internal/client"
	"github.com/jeranaias/loom-tui/internal/journal"
	"github.com/jeranaias/loom-tui/internal/render"
	"github.com/jeranaias/loom-tui/internal/surface"
	"github.com/jeranaias/loom-tui/internal/ui/canvas"
	"github.com/jeranaias/loom-tui/internal/ui/styles"
)

// =============================================================================
// SHELL STATE
// =============================================================================

// State represents the shell's current mode.
type State int

const (
	StateReady    State = iota // Ready for input
	StateFetching              // Waiting on the agent
	StateError                 // Showing an error
)

// =============================================================================
// SHELL MODEL
// =============================================================================

// Model is the Bubble Tea model for the shell.
type Model struct {
	state State
	theme *styles.Theme

	width  int
	height int

	// Protocol plumbing
	store    *surface.Store
	renderer *render.Renderer
	canvas   *canvas.Canvas
	client   *client.Client
	journal  *journal.Journal // nil when journaling is disabled

	// Current fetch, cancellable with Esc
	fetchCancel context.CancelFunc

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	keyMap   KeyMap

	// Inspector overlay
	inspector     *canvas.Inspector
	showInspector bool
	lastBatchRaw  []byte

	// Surface focus: index into store.ListSurfaces for Tab cycling.
	focusIndex int

	// Transcript of prompts and status lines shown above surfaces
	transcript []string

	compact   bool
	showHelp  bool
	statusMsg string
	lastErr   error
}

// Options configures a new shell model.
type Options struct {
	Store   *surface.Store
	Client  *client.Client
	Journal *journal.Journal

	// ShowInspector opens the inspector pane at startup.
	ShowInspector bool
	// Compact tightens vertical spacing between surfaces.
	Compact bool
}

// NewModel creates the shell model.
func NewModel(opts Options) Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Describe the UI you want..."
	input.Prompt = "❯ "
	input.PromptStyle = theme.InputPrompt
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	store := opts.Store
	if store == nil {
		store = surface.NewStore()
	}

	return Model{
		state:         StateReady,
		theme:         theme,
		store:         store,
		renderer:      render.New(store),
		canvas:        canvas.New(theme, 80),
		client:        opts.Client,
		journal:       opts.Journal,
		viewport:      viewport.New(80, 20),
		input:         input,
		spinner:       sp,
		keyMap:        DefaultKeyMap(),
		inspector:     canvas.NewInspector(theme),
		showInspector: opts.ShowInspector,
		compact:       opts.Compact,
	}
}

// Init starts the spinner tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Surfaces returns the live surface ids in creation order.
func (m Model) Surfaces() []string {
	return m.store.ListSurfaces()
}

// focusedSurface returns the id under Tab focus, or "".
func (m Model) focusedSurface() string {
	ids := m.store.ListSurfaces()
	if len(ids) == 0 {
		return ""
	}
	return ids[m.focusIndex%len(ids)]
}

func (m *Model) pushTranscript(line string) {
	m.transcript = append(m.transcript, line)
	const maxTranscript = 200
	if len(m.transcript) > maxTranscript {
		m.transcript = m.transcript[len(m.transcript)-maxTranscript:]
	}
}

func (m *Model) setStatus(format string, args ...any) {
	m.statusMsg = fmt.Sprintf(format, args...)
}
