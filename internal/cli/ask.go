// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question answering on stdout.
package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/ragchat-tui/internal/session"
)

var (
	rendererOnce sync.Once
	renderer     *glamour.TermRenderer
)

// renderMarkdown renders answer markdown for the terminal. Falls back to
// the raw text when the renderer cannot be built (e.g. piped output).
func renderMarkdown(text string) string {
	rendererOnce.Do(func() {
		width := GetTerminalWidth()
		if width > 100 {
			width = 100
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			renderer = r
		}
	})

	if renderer == nil || !IsStdoutTTY() {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// printSources prints a dimmed source list under an answer.
func printSources(sources []string) {
	if len(sources) == 0 {
		return
	}
	fmt.Println(sourceStyle.Render("Sources: " + strings.Join(sources, ", ")))
}

func runAsk(ctx context.Context, args []string) error {
	parser, err := ParseArgs(args, "no-sources")
	if err != nil {
		return err
	}
	question := strings.TrimSpace(strings.Join(parser.Positional(), " "))
	if question == "" {
		return fmt.Errorf("usage: ragchat ask <question>")
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	sess := session.New(client, nil)
	resp, err := sess.Ask(ctx, question)
	if err != nil {
		return fmt.Errorf("%s", session.FormatError(err))
	}

	fmt.Println(renderMarkdown(resp.Answer))
	if !parser.Bool("no-sources") {
		printSources(resp.Sources)
	}
	return nil
}
