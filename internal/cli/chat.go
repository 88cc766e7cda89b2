// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-based chat REPL for terminals where the full TUI is
// unwanted (ssh sessions, screen readers, scripting around expect).
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/session"
	"github.com/jeranaias/ragchat-tui/internal/storage"
)

// replInput wraps liner with persistent input history under the config
// directory.
type replInput struct {
	line        *liner.State
	historyPath string
}

func newREPLInput() (*replInput, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}

	l := liner.NewLiner()
	l.SetCtrlCAborts(true)

	r := &replInput{
		line:        l,
		historyPath: filepath.Join(dir, "chat_history"),
	}
	if f, err := os.Open(r.historyPath); err == nil {
		_, _ = r.line.ReadHistory(f)
		f.Close()
	}
	return r, nil
}

// Read prompts for one line. Returns liner.ErrPromptAborted on ctrl+c
// and io.EOF on ctrl+d.
func (r *replInput) Read(prompt string) (string, error) {
	text, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) != "" {
		r.line.AppendHistory(text)
	}
	return text, nil
}

func (r *replInput) Close() {
	// SECURITY: history file is user-private like the token file
	if f, err := os.OpenFile(r.historyPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
		_, _ = r.line.WriteHistory(f)
		f.Close()
	}
	r.line.Close()
}

func runChat(ctx context.Context, args []string) error {
	if !IsTTY() {
		return fmt.Errorf("chat requires an interactive terminal; use 'ragchat ask' for scripting")
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	transcripts, err := storage.NewTranscriptStore()
	if err != nil {
		return fmt.Errorf("transcript store: %w", err)
	}
	messages, fresh := transcripts.LoadOrDefault()
	sess := session.Restore(client, transcripts, messages, fresh)

	input, err := newREPLInput()
	if err != nil {
		return err
	}
	defer input.Close()

	fmt.Println(headingStyle.Render("ragchat") + dimStyle.Render("  /clear resets, /quit exits"))
	if !sess.IsFresh() {
		fmt.Println(dimStyle.Render(fmt.Sprintf("Restored %d messages from the previous session.", len(messages))))
	}
	fmt.Println()

	for {
		text, err := input.Read("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			fmt.Println()
			return nil
		}

		switch strings.TrimSpace(text) {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/clear":
			sess.Reset()
			fmt.Println(dimStyle.Render("Conversation cleared."))
			continue
		}

		resp, err := sess.Ask(ctx, text)
		if err != nil {
			fmt.Println(errorStyle.Render("Error:") + " " + session.FormatError(err))
			continue
		}

		fmt.Println(renderMarkdown(resp.Answer))
		printSources(resp.Sources)
		fmt.Println()
	}
}
