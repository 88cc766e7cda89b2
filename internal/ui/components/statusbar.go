// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the ragchat TUI.
package components

import (
	"strings"

	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// BackendState is the displayed condition of the backend connection.
type BackendState int

const (
	BackendUnknown BackendState = iota
	BackendHealthy
	BackendDegraded
	BackendOffline
)

// StatusBar renders the bottom status line: backend state, document
// indicator, and shortcut hints.
type StatusBar struct {
	Theme *styles.Theme
	Width int

	State           BackendState
	DocumentsLoaded bool
	Notice          string
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Theme: theme}
}

// SetNotice shows a transient message (e.g. upload result) in the bar.
func (sb *StatusBar) SetNotice(notice string) {
	sb.Notice = notice
}

// View renders the status line at the bar's width.
func (sb *StatusBar) View() string {
	var state string
	switch sb.State {
	case BackendHealthy:
		state = sb.Theme.StatusConnected.Render("● connected")
	case BackendDegraded:
		state = sb.Theme.StatusDegraded.Render("● degraded")
	case BackendOffline:
		state = sb.Theme.StatusOffline.Render("● offline")
	default:
		state = sb.Theme.ShortcutDesc.Render("● connecting")
	}

	docs := sb.Theme.ShortcutDesc.Render("no documents")
	if sb.DocumentsLoaded {
		docs = sb.Theme.StatusConnected.Render("documents ready")
	}

	shortcuts := strings.Join([]string{
		sb.Theme.ShortcutKey.Render("ctrl+u") + sb.Theme.ShortcutDesc.Render(" upload"),
		sb.Theme.ShortcutKey.Render("ctrl+l") + sb.Theme.ShortcutDesc.Render(" clear"),
		sb.Theme.ShortcutKey.Render("ctrl+c") + sb.Theme.ShortcutDesc.Render(" quit"),
	}, "  ")

	left := state + "  " + docs
	if sb.Notice != "" {
		left += "  " + sb.Theme.ShortcutDesc.Render(sb.Notice)
	}

	// Pad the middle so shortcuts sit at the right edge.
	gap := sb.Width - util.StringWidth(stripForWidth(left)) - util.StringWidth(stripForWidth(shortcuts)) - 2
	if gap < 2 {
		gap = 2
	}
	return sb.Theme.StatusBar.Render(left + strings.Repeat(" ", gap) + shortcuts)
}

// stripForWidth removes ANSI escape sequences for width math.
func stripForWidth(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
