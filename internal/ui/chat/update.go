// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main chat view.
package chat

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragchat-tui/internal/api"
	"github.com/jeranaias/ragchat-tui/internal/export"
	"github.com/jeranaias/ragchat-tui/internal/ui/components"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case QueryResultMsg:
		m.sess.Complete(msg.Resp.Answer, msg.Resp.Sources)
		m.spinner.Stop()
		m.refreshTranscript()
		return m, m.recordHistoryCmd(msg.Query, msg.Resp)

	case QueryFailedMsg:
		m.sess.Fail(msg.Err)
		m.spinner.Stop()
		m.refreshTranscript()
		if errors.Is(msg.Err, api.ErrAuthFailed) {
			return m, func() tea.Msg { return UnauthorizedMsg{} }
		}
		return m, nil

	case UploadDoneMsg:
		return m.handleUploadDone(msg)

	case HealthMsg:
		if msg.Err != nil {
			m.statusBar.State = components.BackendOffline
			m.statusBar.DocumentsLoaded = false
			m.refreshTranscript()
			return m, nil
		}
		if msg.Resp.Status == "healthy" && msg.Resp.DatabaseConnected {
			m.statusBar.State = components.BackendHealthy
		} else {
			m.statusBar.State = components.BackendDegraded
		}
		m.statusBar.DocumentsLoaded = msg.Resp.DocumentsLoaded
		m.refreshTranscript()
		return m, nil
	}

	return m.updateChildren(msg)
}

// handleResize lays the view out for a new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.statusBar.Width = msg.Width
	m.input.Width = msg.Width - 6

	wrap := m.cfg.UI.WordWrap
	if wrap > msg.Width-8 {
		wrap = msg.Width - 8
	}
	m.markdown = components.NewMarkdown(wrap)

	if !m.ready {
		m.viewport = newTranscriptViewport(msg.Width, msg.Height-chromeHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - chromeHeight
	}
	m.refreshTranscript()
	return m
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+l":
		m.sess.Reset()
		m.spinner.Stop()
		m.refreshTranscript()
		return m, nil

	case "ctrl+u":
		m.input.SetValue("/upload ")
		m.input.CursorEnd()
		return m, nil

	case "enter":
		return m.handleSubmit()

	case "pgup", "pgdown", "up", "down", "home", "end":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m.updateChildren(msg)
}

// handleSubmit routes the input line: /commands or a query.
func (m Model) handleSubmit() (Model, tea.Cmd) {
	if m.uploading {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if strings.HasPrefix(text, "/") {
		return m.handleCommand(text)
	}

	// Double-submit while loading is a no-op; the input keeps its text so
	// nothing is lost.
	if !m.sess.Begin(text) {
		return m, nil
	}
	m.input.SetValue("")
	m.refreshTranscript()
	return m, tea.Batch(m.spinner.Start(), m.queryCmd(text))
}

// handleCommand executes a slash command.
func (m Model) handleCommand(text string) (Model, tea.Cmd) {
	fields := strings.Fields(text)
	switch fields[0] {
	case "/upload":
		if len(fields) < 2 {
			m.statusBar.SetNotice("usage: /upload <file> [file...]")
			return m, nil
		}
		m.input.SetValue("")
		m.uploading = true
		m.input.Blur()
		m.statusBar.SetNotice("uploading...")
		return m, m.uploadCmd(fields[1:])

	case "/clear":
		m.input.SetValue("")
		m.sess.Reset()
		m.refreshTranscript()
		return m, nil

	case "/export":
		m.input.SetValue("")
		if m.sess.IsFresh() {
			m.statusBar.SetNotice("nothing to export yet")
			return m, nil
		}
		path, err := export.ToFile(m.sess.Messages(), export.NewMarkdownExporter(nil), nil)
		if err != nil {
			m.statusBar.SetNotice("export failed: " + err.Error())
			return m, nil
		}
		m.statusBar.SetNotice("exported to " + path)
		return m, nil

	default:
		m.statusBar.SetNotice("unknown command: " + fields[0])
		return m, nil
	}
}

// handleUploadDone reports an upload batch in the status bar.
func (m Model) handleUploadDone(msg UploadDoneMsg) (Model, tea.Cmd) {
	m.uploading = false
	m.input.Focus()
	if msg.Err != nil {
		if errors.Is(msg.Err, api.ErrAuthFailed) {
			return m, func() tea.Msg { return UnauthorizedMsg{} }
		}
		m.statusBar.SetNotice("upload failed: " + msg.Err.Error())
		return m, nil
	}

	notice := msg.Result.Response.Message
	if notice == "" {
		notice = fmt.Sprintf("processed %d file(s)", msg.Result.Response.FilesProcessed)
	}
	if n := len(msg.Result.Rejected); n > 0 {
		notice += fmt.Sprintf(" (skipped %d unsupported)", n)
	}
	m.statusBar.SetNotice(notice)

	// Documents changed; refresh the indicator.
	return m, m.healthCmd()
}

// updateChildren forwards a message to the input, viewport, and spinner.
func (m Model) updateChildren(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	if cmd := m.spinner.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}
