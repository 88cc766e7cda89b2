// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders transcripts as markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export renders the transcript. Answers are already markdown, so they
// pass through untouched; user messages become quoted headings.
func (e *MarkdownExporter) Export(messages []model.Message) ([]byte, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("transcript has no messages")
	}

	var sb strings.Builder

	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", escapeYAML(firstUserPreview(messages))))
		sb.WriteString(fmt.Sprintf("messages: %d\n", len(messages)))
		sb.WriteString(fmt.Sprintf("exported: %s\n", time.Now().Format(time.RFC3339)))
		sb.WriteString("generator: ragchat\n")
		sb.WriteString("---\n\n")
	}

	for _, msg := range messages {
		sb.WriteString("## " + msg.Role.DisplayName())
		if e.options.IncludeTimestamps && !msg.Timestamp.IsZero() {
			sb.WriteString(" (" + msg.Timestamp.Format("2006-01-02 15:04") + ")")
		}
		sb.WriteString("\n\n")

		if msg.IsError {
			sb.WriteString("> ⚠ " + strings.ReplaceAll(msg.Content, "\n", "\n> ") + "\n\n")
			continue
		}

		sb.WriteString(msg.Content + "\n\n")

		if len(msg.Sources) > 0 {
			sb.WriteString("**Sources:**\n\n")
			for _, src := range msg.Sources {
				sb.WriteString("- " + src + "\n")
			}
			sb.WriteString("\n")
		}
	}

	return []byte(sb.String()), nil
}

// FileExtension returns ".md".
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// firstUserPreview derives a title from the first user message.
func firstUserPreview(messages []model.Message) string {
	for _, msg := range messages {
		if msg.Role == model.RoleUser {
			return msg.Preview(60)
		}
	}
	return "ragchat conversation"
}
