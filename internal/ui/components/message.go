// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the ragchat TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE
// =============================================================================

// MessageBubble renders a single transcript message.
type MessageBubble struct {
	Message     *model.Message
	Theme       *styles.Theme
	Markdown    *Markdown
	Width       int
	ShowSources bool
}

// NewMessageBubble creates a bubble for a message.
func NewMessageBubble(msg *model.Message, theme *styles.Theme, md *Markdown, width int) *MessageBubble {
	return &MessageBubble{
		Message:     msg,
		Theme:       theme,
		Markdown:    md,
		Width:       width,
		ShowSources: true,
	}
}

// View renders the bubble.
func (b *MessageBubble) View() string {
	if b.Message.IsError {
		return b.renderErrorBubble()
	}
	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUserBubble()
	default:
		return b.renderAssistantBubble()
	}
}

// renderUserBubble renders the user's question, right-aligned.
func (b *MessageBubble) renderUserBubble() string {
	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := util.WordWrap(b.Message.Content, maxContentWidth)

	contentWidth := maxLineWidth(wrapped) + 4
	if contentWidth > b.Width-8 {
		contentWidth = b.Width - 8
	}

	bubble := b.Theme.UserBubble.Width(contentWidth).Render(wrapped)
	header := b.Theme.SourceLine.Render("you")

	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble),
	)
}

// renderAssistantBubble renders an answer: markdown body plus an optional
// source attribution line.
func (b *MessageBubble) renderAssistantBubble() string {
	body := b.Markdown.Render(b.Message.Content)

	maxContentWidth := b.Width - 8
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	bubble := b.Theme.AssistantBubble.MaxWidth(maxContentWidth).Render(body)
	header := b.Theme.SourceLine.Render("assistant")

	parts := []string{header, bubble}
	if b.ShowSources && len(b.Message.Sources) > 0 {
		parts = append(parts, b.Theme.SourceLine.Render("Sources: "+strings.Join(b.Message.Sources, ", ")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderErrorBubble renders a failed query inline in the transcript.
func (b *MessageBubble) renderErrorBubble() string {
	maxContentWidth := b.Width - 8
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := util.WordWrap(b.Message.Content, maxContentWidth)
	return b.Theme.ErrorBubble.Render(wrapped)
}

// maxLineWidth returns the widest display width of any line.
func maxLineWidth(s string) int {
	max := 0
	for _, line := range strings.Split(s, "\n") {
		if w := util.StringWidth(line); w > max {
			max = w
		}
	}
	return max
}
