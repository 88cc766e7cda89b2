// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// login.go - Password authentication from the command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jeranaias/ragchat-tui/internal/api"
	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/storage"
)

// readPassword reads a password without echo. Falls back to a plain
// line read when stdin is not a terminal (piped input).
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if !IsTTY() {
		var line string
		_, err := fmt.Fscanln(os.Stdin, &line)
		return strings.TrimSpace(line), err
	}
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func runLogin(ctx context.Context, args []string) error {
	cfg := config.Global()
	client := api.NewClient(cfg.Backend.URL).WithTimeout(cfg.Backend.Timeout())

	store, err := storage.NewTokenStore()
	if err != nil {
		return fmt.Errorf("token store: %w", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	token, err := client.Login(ctx, password)
	if err != nil {
		if errors.Is(err, api.ErrInvalidPassword) {
			return fmt.Errorf("incorrect password")
		}
		if errors.Is(err, api.ErrUnavailable) {
			return fmt.Errorf("could not reach the backend at %s. Is it running?", cfg.Backend.URL)
		}
		return err
	}

	if err := store.Save(token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	fmt.Println(successStyle.Render("✓") + " Logged in.")
	return nil
}

func runLogout(args []string) error {
	store, err := storage.NewTokenStore()
	if err != nil {
		return fmt.Errorf("token store: %w", err)
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}

	// Logging out also forgets the conversation tied to the session.
	if transcripts, err := storage.NewTranscriptStore(); err == nil {
		_ = transcripts.Clear()
	}

	fmt.Println(successStyle.Render("✓") + " Logged out.")
	return nil
}
