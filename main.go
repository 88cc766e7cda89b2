// ragchat - A terminal client for a document question-answering backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragchat-tui/internal/api"
	"github.com/jeranaias/ragchat-tui/internal/cli"
	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/history"
	"github.com/jeranaias/ragchat-tui/internal/session"
	"github.com/jeranaias/ragchat-tui/internal/storage"
	"github.com/jeranaias/ragchat-tui/internal/ui/auth"
	"github.com/jeranaias/ragchat-tui/internal/ui/chat"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
	"github.com/jeranaias/ragchat-tui/internal/uploader"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	if cmd == cli.CmdTUI {
		runTUI()
		return
	}
	os.Exit(cli.Run(context.Background(), cmd, args))
}

// =============================================================================
// TUI WIRING
// =============================================================================

// appState selects which screen owns the terminal.
type appState int

const (
	stateAuth appState = iota
	stateChat
)

// appModel is the top-level Bubble Tea model. It gates the chat screen
// behind authentication and switches back when the backend rejects the
// token mid-session.
type appModel struct {
	state  appState
	auth   auth.Model
	chat   chat.Model
	tokens *storage.TokenStore
	client *api.Client

	width  int
	height int
}

func (m appModel) Init() tea.Cmd {
	if m.state == stateAuth {
		return m.auth.Init()
	}
	return m.chat.Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Both screens track the terminal size so switching is seamless.
		m.width, m.height = msg.Width, msg.Height
		var authCmd, chatCmd tea.Cmd
		m.auth, authCmd = m.auth.Update(msg)
		m.chat, chatCmd = m.chat.Update(msg)
		return m, tea.Batch(authCmd, chatCmd)

	case auth.SuccessMsg:
		m.client.WithToken(msg.Token)
		if err := m.tokens.Save(msg.Token); err != nil {
			log.Printf("failed to persist token: %v", err)
		}
		m.state = stateChat
		return m, m.chat.Init()

	case chat.UnauthorizedMsg:
		if err := m.tokens.Clear(); err != nil {
			log.Printf("failed to clear token: %v", err)
		}
		m.client.WithToken("")
		m.auth = m.auth.WithNotice("Session expired. Please log in again.")
		m.state = stateAuth
		return m, m.auth.Init()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && m.state == stateAuth {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case stateAuth:
		m.auth, cmd = m.auth.Update(msg)
	case stateChat:
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	if m.state == stateAuth {
		return m.auth.View()
	}
	return m.chat.View()
}

func runTUI() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	tokens, err := storage.NewTokenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "token store: %v\n", err)
		os.Exit(1)
	}

	transcripts, err := storage.NewTranscriptStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "transcript store: %v\n", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.Backend.URL).WithTimeout(cfg.Backend.Timeout())

	state := stateAuth
	if token, err := tokens.Load(); err == nil && token != "" {
		// Trust the stored token; a 401 on the first query sends the
		// user back to the password gate.
		client.WithToken(token)
		state = stateChat
	}

	messages, fresh := transcripts.LoadOrDefault()
	sess := session.Restore(client, transcripts, messages, fresh)
	up := uploader.New(client, cfg.Upload.MaxFileMB)

	var hist *history.Store
	if cfg.History.Enabled {
		if path, err := history.DefaultPath(); err == nil {
			if h, err := history.Open(path, cfg.History.MaxEntries); err == nil {
				hist = h
				defer hist.Close()
			} else {
				log.Printf("history disabled: %v", err)
			}
		}
	}

	theme := styles.NewTheme(cfg.UI.Theme)

	app := appModel{
		state:  state,
		auth:   auth.New(client, theme),
		chat:   chat.New(cfg, client, sess, up, hist, theme),
		tokens: tokens,
		client: client,
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Drop directory: files placed there upload automatically while the
	// TUI runs. Results surface through the same message the manual
	// upload path uses.
	if cfg.Upload.DropDir != "" {
		watcher, err := uploader.NewDropWatcher(cfg.Upload.DropDir, up, func(res *uploader.Result, err error) {
			p.Send(chat.UploadDoneMsg{Result: res, Err: err})
		})
		if err != nil {
			log.Printf("drop directory disabled: %v", err)
		} else if err := watcher.Watch(); err != nil {
			log.Printf("drop directory disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ragchat: %v\n", err)
		os.Exit(1)
	}
}
