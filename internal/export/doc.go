// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes chat transcripts to shareable files.
//
// # Key Types
//
//   - Exporter: converts a transcript to one output format
//   - MarkdownExporter: markdown with YAML frontmatter and source lists
//   - JSONExporter: complete transcript as indented JSON
//
// # Usage
//
//	path, err := export.ToFile(messages, export.NewMarkdownExporter(nil), nil)
//
// The error messages a backend attaches to the transcript are exported
// too; they are part of the record of the conversation.
package export
