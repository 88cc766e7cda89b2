// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the ragchat TUI.
package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

// Markdown renders assistant answers for terminal display.
//
// Answers arrive as markdown. Glamour does the heavy lifting; when it is
// unavailable (renderer construction or rendering fails, e.g. in odd
// terminal environments) the fallback still syntax-highlights fenced code
// blocks with chroma so answers stay readable.
type Markdown struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdown creates a renderer wrapping at the given width.
func NewMarkdown(width int) *Markdown {
	if width < 20 {
		width = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		renderer = nil
	}
	return &Markdown{renderer: renderer, width: width}
}

// Render converts markdown to styled terminal text. The result is always
// usable; failures degrade to the chroma fallback, never to an error.
func (m *Markdown) Render(content string) string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(content); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return renderFallback(content)
}

// renderFallback passes fenced code blocks through chroma and leaves the
// rest of the markdown as plain text.
func renderFallback(content string) string {
	lines := strings.Split(content, "\n")

	var (
		out      []string
		code     []string
		language string
		inFence  bool
	)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inFence {
				out = append(out, highlightCode(strings.Join(code, "\n"), language))
				code = nil
				inFence = false
			} else {
				language = strings.TrimPrefix(trimmed, "```")
				inFence = true
			}
			continue
		}
		if inFence {
			code = append(code, line)
			continue
		}
		out = append(out, line)
	}
	// Unterminated fence: emit what we have.
	if inFence {
		out = append(out, highlightCode(strings.Join(code, "\n"), language))
	}
	return strings.Join(out, "\n")
}

// highlightCode applies chroma syntax highlighting for terminal output.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
