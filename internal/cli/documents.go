// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// documents.go - Document store management.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/ragchat-tui/internal/api"
)

func runDocuments(ctx context.Context, args []string) error {
	parser, err := ParseArgs(args, "yes")
	if err != nil {
		return err
	}
	pos := parser.Positional()
	if len(pos) == 0 || pos[0] != "clear" {
		return fmt.Errorf("usage: ragchat documents clear [--yes]")
	}

	if !parser.Bool("yes") {
		if !IsTTY() {
			return fmt.Errorf("refusing to delete without --yes on non-interactive input")
		}
		if !confirm("Delete ALL ingested documents? This cannot be undone.") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.DeleteDocuments(ctx)
	if err != nil {
		if errors.Is(err, api.ErrAuthFailed) {
			return fmt.Errorf("session expired; run 'ragchat login' first")
		}
		return err
	}

	fmt.Println(successStyle.Render("✓") + " " + resp.Message)
	return nil
}

// confirm asks a yes/no question on stdin. Anything but "y"/"yes" is no.
func confirm(question string) bool {
	fmt.Print(warningStyle.Render(question) + " [y/N] ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
