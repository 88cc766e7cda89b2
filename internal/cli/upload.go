// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// upload.go - Document upload from the command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/ragchat-tui/internal/api"
	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/uploader"
)

func runUpload(ctx context.Context, args []string) error {
	parser, err := ParseArgs(args)
	if err != nil {
		return err
	}
	paths := parser.Positional()
	if len(paths) == 0 {
		return fmt.Errorf("usage: ragchat upload <files...>")
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}
	up := uploader.New(client, config.Global().Upload.MaxFileMB)

	result, err := up.Send(ctx, paths)
	if err != nil {
		if errors.Is(err, uploader.ErrNoSupportedFiles) {
			return fmt.Errorf("no supported files; only %s are accepted", strings.Join(uploader.SupportedExtensions(), ", "))
		}
		if errors.Is(err, api.ErrAuthFailed) {
			return fmt.Errorf("session expired; run 'ragchat login' first")
		}
		return err
	}

	resp := result.Response
	fmt.Printf("%s Processed %d file(s), %d chunk(s).\n",
		successStyle.Render("✓"), resp.FilesProcessed, resp.ChunksProcessed)
	for _, name := range resp.Filenames {
		fmt.Println(dimStyle.Render("  • " + name))
	}
	for _, rej := range result.Rejected {
		fmt.Println(warningStyle.Render("  skipped (unsupported type): " + rej))
	}
	return nil
}
