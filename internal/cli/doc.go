// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the ragchat command-line interface.
//
// Running ragchat with no arguments starts the TUI. Subcommands cover the
// non-interactive paths:
//
//	ask        one-shot question, markdown-rendered answer on stdout
//	chat       line-based REPL with input history
//	login      exchange the backend password for a token
//	logout     clear the stored token and transcript
//	upload     upload documents from the command line
//	status     backend health and token summary
//	documents  delete all ingested documents
//	history    list or search past queries
//	version    print version information
package cli
