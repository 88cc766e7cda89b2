// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command dispatch for ragchat.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jeranaias/ragchat-tui/internal/api"
	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/storage"
)

// Command identifies a ragchat subcommand.
type Command string

const (
	CmdTUI       Command = "tui"
	CmdAsk       Command = "ask"
	CmdChat      Command = "chat"
	CmdLogin     Command = "login"
	CmdLogout    Command = "logout"
	CmdUpload    Command = "upload"
	CmdStatus    Command = "status"
	CmdDocuments Command = "documents"
	CmdHistory   Command = "history"
	CmdExport    Command = "export"
	CmdVersion   Command = "version"
	CmdHelp      Command = "help"
)

// Parse maps os.Args-style arguments (without the program name) to a
// command and its remaining arguments. No arguments means the TUI.
func Parse(args []string) (Command, []string) {
	if len(args) == 0 {
		return CmdTUI, nil
	}

	switch args[0] {
	case "ask":
		return CmdAsk, args[1:]
	case "chat":
		return CmdChat, args[1:]
	case "login":
		return CmdLogin, args[1:]
	case "logout":
		return CmdLogout, args[1:]
	case "upload":
		return CmdUpload, args[1:]
	case "status":
		return CmdStatus, args[1:]
	case "documents":
		return CmdDocuments, args[1:]
	case "history":
		return CmdHistory, args[1:]
	case "export":
		return CmdExport, args[1:]
	case "version", "--version", "-v":
		return CmdVersion, args[1:]
	case "help", "--help", "-h":
		return CmdHelp, args[1:]
	default:
		return CmdHelp, args
	}
}

// Run executes a non-TUI command and returns a process exit code.
func Run(ctx context.Context, cmd Command, args []string) int {
	var err error

	switch cmd {
	case CmdAsk:
		err = runAsk(ctx, args)
	case CmdChat:
		err = runChat(ctx, args)
	case CmdLogin:
		err = runLogin(ctx, args)
	case CmdLogout:
		err = runLogout(args)
	case CmdUpload:
		err = runUpload(ctx, args)
	case CmdStatus:
		err = runStatus(ctx, args)
	case CmdDocuments:
		err = runDocuments(ctx, args)
	case CmdHistory:
		err = runHistory(args)
	case CmdExport:
		err = runExport(args)
	case CmdVersion:
		err = runVersion(args)
	case CmdHelp:
		printUsage()
	default:
		printUsage()
		return 1
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:")+" "+err.Error())
		return 1
	}
	return 0
}

// newClient builds an API client from the global config and the stored
// token, if any.
func newClient() (*api.Client, *storage.TokenStore, error) {
	cfg := config.Global()

	store, err := storage.NewTokenStore()
	if err != nil {
		return nil, nil, fmt.Errorf("token store: %w", err)
	}

	client := api.NewClient(cfg.Backend.URL).
		WithTimeout(cfg.Backend.Timeout())

	if token, err := store.Load(); err == nil && token != "" {
		client = client.WithToken(token)
	}

	return client, store, nil
}

func printUsage() {
	fmt.Println(headingStyle.Render("ragchat") + " - terminal client for a document question-answering backend")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ragchat                       start the interactive TUI")
	fmt.Println("  ragchat ask <question>        ask a single question and exit")
	fmt.Println("  ragchat chat                  line-based chat REPL")
	fmt.Println("  ragchat login                 authenticate with the backend")
	fmt.Println("  ragchat logout                clear stored token and transcript")
	fmt.Println("  ragchat upload <files...>     upload documents (.pdf, .docx, .doc)")
	fmt.Println("  ragchat status                backend health and session info")
	fmt.Println("  ragchat documents clear       delete all ingested documents")
	fmt.Println("  ragchat history [search|clear]  query history")
	fmt.Println("  ragchat export [--format md|json]  export the conversation")
	fmt.Println("  ragchat version               print version information")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  RAGCHAT_BACKEND_URL           backend base URL (default http://localhost:8000)")
	fmt.Println("  NO_COLOR                      disable colored output")
}
