// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements the authentication gate.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragchat-tui/internal/api"
	"github.com/jeranaias/ragchat-tui/internal/session"
	"github.com/jeranaias/ragchat-tui/internal/ui/components"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SuccessMsg is emitted when the backend accepts the password.
type SuccessMsg struct {
	Token string
}

// resultMsg carries the outcome of a login attempt.
type resultMsg struct {
	token string
	err   error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the authentication gate view.
type Model struct {
	client *api.Client
	theme  *styles.Theme

	input    textinput.Model
	spinner  components.Spinner
	checking bool
	errText  string

	width  int
	height int
}

// New creates the auth gate.
func New(client *api.Client, theme *styles.Theme) Model {
	input := textinput.New()
	input.Placeholder = "password"
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '*'
	input.CharLimit = 128
	input.Width = 32
	input.Focus()

	return Model{
		client:  client,
		theme:   theme,
		input:   input,
		spinner: components.NewSpinner(theme),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if m.checking {
				return m, nil
			}
			password := strings.TrimSpace(m.input.Value())
			if password == "" {
				return m, nil
			}
			m.checking = true
			m.errText = ""
			m.spinner.SetMessage("Checking")
			return m, tea.Batch(m.spinner.Start(), m.login(password))
		}

	case resultMsg:
		m.checking = false
		m.spinner.Stop()
		if msg.err != nil {
			m.errText = formatLoginError(msg.err)
			m.input.SetValue("")
			return m, nil
		}
		return m, func() tea.Msg { return SuccessMsg{Token: msg.token} }
	}

	var cmds []tea.Cmd
	if cmd := m.spinner.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// login sends the password to the backend.
func (m Model) login(password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		token, err := client.Login(context.Background(), password)
		return resultMsg{token: token, err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	title := m.theme.AuthTitle.Render("ragchat")
	subtitle := m.theme.AuthHint.Render("enter the backend password to continue")

	var status string
	switch {
	case m.checking:
		status = m.spinner.View()
	case m.errText != "":
		status = m.theme.AuthError.Render(m.errText)
	default:
		status = m.theme.AuthHint.Render("press enter to submit")
	}

	box := m.theme.AuthBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		m.input.View(),
		"",
		status,
	))

	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Checking reports whether a login attempt is in flight.
func (m Model) Checking() bool {
	return m.checking
}

// WithNotice returns a copy of the gate showing text in the status area,
// used when the user is sent back here after a session expiry.
func (m Model) WithNotice(text string) Model {
	m.errText = text
	m.input.SetValue("")
	m.input.Focus()
	return m
}

// formatLoginError maps login failures to display text.
func formatLoginError(err error) string {
	switch {
	case errors.Is(err, api.ErrInvalidPassword):
		return "incorrect password"
	default:
		return "Error: " + session.FormatError(err)
	}
}
