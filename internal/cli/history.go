// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history.go - Query history listing and search.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/history"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

func runHistory(args []string) error {
	cfg := config.Global()
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled (set history.enabled = true in the config)")
	}

	parser, err := ParseArgs(args, "yes")
	if err != nil {
		return err
	}

	path, err := history.DefaultPath()
	if err != nil {
		return err
	}
	store, err := history.Open(path, cfg.History.MaxEntries)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	limit := parser.Int("limit", 20)
	pos := parser.Positional()

	switch {
	case len(pos) == 0:
		entries, err := store.Recent(ctx, limit)
		if err != nil {
			return err
		}
		printEntries(entries)
	case pos[0] == "search":
		needle := strings.Join(pos[1:], " ")
		if needle == "" {
			return fmt.Errorf("usage: ragchat history search <text>")
		}
		entries, err := store.Search(ctx, needle, limit)
		if err != nil {
			return err
		}
		printEntries(entries)
	case pos[0] == "clear":
		if !parser.Bool("yes") && IsTTY() && !confirm("Delete all saved queries?") {
			fmt.Println("Aborted.")
			return nil
		}
		if err := store.Clear(ctx); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("✓") + " History cleared.")
	default:
		return fmt.Errorf("usage: ragchat history [search <text>|clear] [--limit N]")
	}
	return nil
}

func printEntries(entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Println(dimStyle.Render("No history yet."))
		return
	}
	width := GetTerminalWidth()
	for _, e := range entries {
		fmt.Printf("%s  %s\n",
			dimStyle.Render(e.AskedAt.Local().Format(time.DateTime)),
			infoStyle.Render(util.TruncateWidth(e.Query, width-22)))
		fmt.Println("  " + util.TruncateWidth(strings.ReplaceAll(e.Answer, "\n", " "), width-2))
	}
}
