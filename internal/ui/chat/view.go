// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main chat view.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragchat-tui/internal/ui/components"
)

// newTranscriptViewport builds the scrollback viewport.
func newTranscriptViewport(width, height int) viewport.Model {
	if height < 1 {
		height = 1
	}
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = true
	return vp
}

// refreshTranscript re-renders the transcript into the viewport and
// follows the newest message.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// renderTranscript renders every message as a bubble. A fresh session
// against an empty document store also gets upload hints.
func (m *Model) renderTranscript() string {
	msgs := m.sess.Messages()
	parts := make([]string, 0, len(msgs)+1)
	for i := range msgs {
		bubble := components.NewMessageBubble(&msgs[i], m.theme, m.markdown, m.viewport.Width)
		bubble.ShowSources = m.cfg.UI.ShowSources
		parts = append(parts, bubble.View())
	}

	if m.sess.IsFresh() && !m.statusBar.DocumentsLoaded {
		welcome := components.NewWelcome(m.theme, m.viewport.Width)
		welcome.DropDir = m.cfg.Upload.DropDir
		parts = append(parts, welcome.View())
	}

	return strings.Join(parts, "\n\n")
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	inputLine := m.theme.InputContainer.Width(m.width - 2).Render(
		m.theme.InputPrompt.Render("> ") + m.input.View(),
	)

	bottom := inputLine
	if m.spinner.Active() {
		bottom = lipgloss.JoinVertical(lipgloss.Left, m.spinner.View(), inputLine)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		bottom,
		m.statusBar.View(),
	)
}
