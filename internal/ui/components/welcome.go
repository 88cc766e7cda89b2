// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// welcome.go - Empty-state hints shown before any documents exist.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// Welcome renders upload hints under the greeting when the session is
// fresh and the backend reports no ingested documents.
type Welcome struct {
	Theme   *styles.Theme
	Width   int
	DropDir string
}

// NewWelcome creates the empty-state hint block.
func NewWelcome(theme *styles.Theme, width int) *Welcome {
	return &Welcome{Theme: theme, Width: width}
}

// View renders the hint lines.
func (w *Welcome) View() string {
	hints := []string{
		"No documents yet. To get started:",
		"  • type /upload <file> or press ctrl+u",
		"  • supported types: .pdf, .docx, .doc",
	}
	if w.DropDir != "" {
		hints = append(hints, "  • or drop files into "+w.DropDir)
	}

	body := w.Theme.UploadNotice.Render(strings.Join(hints, "\n"))
	if w.Width > 0 {
		return lipgloss.NewStyle().Width(w.Width).Render(body)
	}
	return body
}
