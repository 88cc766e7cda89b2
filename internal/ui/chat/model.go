// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main chat view.
package chat

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragchat-tui/internal/api"
	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/history"
	"github.com/jeranaias/ragchat-tui/internal/session"
	"github.com/jeranaias/ragchat-tui/internal/ui/components"
	"github.com/jeranaias/ragchat-tui/internal/uploader"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// statusBarHeight and inputHeight are fixed rows below the viewport.
const chromeHeight = 4

// Model is the chat view.
type Model struct {
	theme  *styles.Theme
	cfg    *config.Config
	client *api.Client
	sess   *session.Session
	up     *uploader.Uploader
	hist   *history.Store // nil when history is disabled

	viewport  viewport.Model
	input     textinput.Model
	spinner   components.Spinner
	statusBar *components.StatusBar
	markdown  *components.Markdown

	width     int
	height    int
	ready     bool
	uploading bool
}

// New creates the chat view around an existing session.
func New(cfg *config.Config, client *api.Client, sess *session.Session, up *uploader.Uploader, hist *history.Store, theme *styles.Theme) Model {
	input := textinput.New()
	input.Placeholder = "Ask a question about your documents..."
	input.CharLimit = 4000
	input.Focus()

	return Model{
		theme:     theme,
		cfg:       cfg,
		client:    client,
		sess:      sess,
		up:        up,
		hist:      hist,
		input:     input,
		spinner:   components.NewSpinner(theme),
		statusBar: components.NewStatusBar(theme),
		markdown:  components.NewMarkdown(cfg.UI.WordWrap),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.healthCmd())
}

// =============================================================================
// COMMANDS
// =============================================================================

// queryCmd sends the in-flight question to the backend.
func (m Model) queryCmd(text string) tea.Cmd {
	client := m.client
	pairs := m.sess.Pairs()
	return func() tea.Msg {
		resp, err := client.Query(context.Background(), text, pairs)
		if err != nil {
			return QueryFailedMsg{Err: err}
		}
		return QueryResultMsg{Query: text, Resp: resp}
	}
}

// uploadCmd submits a batch of files.
func (m Model) uploadCmd(paths []string) tea.Cmd {
	up := m.up
	return func() tea.Msg {
		result, err := up.Send(context.Background(), paths)
		return UploadDoneMsg{Result: result, Err: err}
	}
}

// healthCmd probes the backend.
func (m Model) healthCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		resp, err := client.Health(context.Background())
		return HealthMsg{Resp: resp, Err: err}
	}
}

// recordHistoryCmd appends a completed exchange to the local history.
func (m Model) recordHistoryCmd(query string, resp *api.QueryResponse) tea.Cmd {
	hist := m.hist
	if hist == nil {
		return nil
	}
	return func() tea.Msg {
		if err := hist.Record(context.Background(), query, resp.Answer, resp.Sources); err != nil {
			log.Printf("history: failed to record query: %v", err)
		}
		return nil
	}
}
