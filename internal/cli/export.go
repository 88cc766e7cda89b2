// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export.go - Transcript export to markdown or JSON.
package cli

import (
	"fmt"

	"github.com/jeranaias/ragchat-tui/internal/export"
	"github.com/jeranaias/ragchat-tui/internal/storage"
)

func runExport(args []string) error {
	parser, err := ParseArgs(args, "no-metadata")
	if err != nil {
		return err
	}

	transcripts, err := storage.NewTranscriptStore()
	if err != nil {
		return fmt.Errorf("transcript store: %w", err)
	}
	messages, fresh := transcripts.LoadOrDefault()
	if fresh {
		return fmt.Errorf("nothing to export; the conversation is empty")
	}

	opts := export.DefaultOptions()
	opts.OutputDir = parser.String("out", ".")
	if parser.Bool("no-metadata") {
		opts.IncludeMetadata = false
	}

	var exporter export.Exporter
	switch format := parser.String("format", "md"); format {
	case "md", "markdown":
		exporter = export.NewMarkdownExporter(opts)
	case "json":
		exporter = export.NewJSONExporter(opts)
	default:
		return fmt.Errorf("unknown format %q (want md or json)", format)
	}

	path, err := export.ToFile(messages, exporter, opts)
	if err != nil {
		return err
	}

	fmt.Println(successStyle.Render("✓") + " Exported to " + path)
	return nil
}
