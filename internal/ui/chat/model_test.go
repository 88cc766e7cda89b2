// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragchat-tui/internal/api"
	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/session"
	"github.com/jeranaias/ragchat-tui/internal/ui/components"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
	"github.com/jeranaias/ragchat-tui/internal/uploader"
)

// newTestModel builds a chat model against an unreachable backend. Tests
// drive Update with messages directly and never execute network commands.
func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	client := api.NewClient("http://127.0.0.1:1")
	sess := session.New(client, nil)
	up := uploader.New(client, cfg.Upload.MaxFileMB)

	m := New(cfg, client, sess, up, nil, styles.NewTheme("dark"))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func typeText(m Model, text string) Model {
	m.input.SetValue(text)
	return m
}

func pressEnter(m Model) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSubmitStartsQuery(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "what is chapter 2 about?")

	m, cmd := pressEnter(m)
	if cmd == nil {
		t.Fatal("submit should produce commands")
	}
	if !m.sess.IsLoading() {
		t.Error("session should be loading after submit")
	}
	if m.input.Value() != "" {
		t.Error("input should be cleared after submit")
	}

	msgs := m.sess.Messages()
	if msgs[len(msgs)-1].Role != model.RoleUser {
		t.Error("user message should be appended before the response arrives")
	}
}

func TestBlankSubmitIsNoOp(t *testing.T) {
	m := newTestModel(t)
	before := len(m.sess.Messages())

	m = typeText(m, "   ")
	m, cmd := pressEnter(m)
	if cmd != nil {
		t.Error("blank submit should produce no command")
	}
	if len(m.sess.Messages()) != before {
		t.Error("blank submit must not touch the transcript")
	}
}

func TestDoubleSubmitKeepsInput(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "first")
	m, _ = pressEnter(m)

	m = typeText(m, "second while loading")
	m, _ = pressEnter(m)

	if m.input.Value() != "second while loading" {
		t.Error("a submit ignored while loading should keep the typed text")
	}
	msgs := m.sess.Messages()
	if msgs[len(msgs)-1].Content != "first" {
		t.Error("only the first question should be in the transcript")
	}
}

func TestQueryResultCompletes(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "q")
	m, _ = pressEnter(m)

	m, _ = m.Update(QueryResultMsg{
		Query: "q",
		Resp:  &api.QueryResponse{Answer: "the answer", Sources: []string{"doc.pdf"}},
	})

	if m.sess.IsLoading() {
		t.Error("loading should be cleared")
	}
	msgs := m.sess.Messages()
	last := msgs[len(msgs)-1]
	if last.Content != "the answer" || len(last.Sources) != 1 {
		t.Errorf("unexpected last message: %+v", last)
	}
	if m.spinner.Active() {
		t.Error("spinner should be stopped")
	}
}

func TestQueryFailureAddsErrorBubble(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "q")
	m, _ = pressEnter(m)

	m, cmd := m.Update(QueryFailedMsg{
		Err: &api.APIError{Status: 500, Detail: api.Detail{Text: "boom"}},
	})
	if cmd != nil {
		t.Error("plain failures should not emit follow-up messages")
	}
	msgs := m.sess.Messages()
	if !msgs[len(msgs)-1].IsError {
		t.Error("failure should append an error bubble")
	}
}

func TestUnauthorizedEmitsMsg(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "q")
	m, _ = pressEnter(m)

	m, cmd := m.Update(QueryFailedMsg{Err: fmt.Errorf("%w: expired", api.ErrAuthFailed)})
	if cmd == nil {
		t.Fatal("auth failure should emit a follow-up message")
	}
	if _, ok := cmd().(UnauthorizedMsg); !ok {
		t.Error("auth failure should produce UnauthorizedMsg")
	}

	// No error bubble: the auth gate takes over.
	msgs := m.sess.Messages()
	if msgs[len(msgs)-1].IsError {
		t.Error("auth failure must not add an error bubble")
	}
}

func TestUploadCommandValidation(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "/upload")
	m, cmd := pressEnter(m)
	if cmd != nil {
		t.Error("bare /upload should only set a notice")
	}
	if !strings.Contains(m.statusBar.Notice, "usage") {
		t.Errorf("notice = %q", m.statusBar.Notice)
	}

	m = typeText(m, "/upload /tmp/report.pdf")
	m, cmd = pressEnter(m)
	if cmd == nil {
		t.Error("/upload with a path should produce an upload command")
	}
}

func TestHealthUpdatesStatusBar(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(HealthMsg{Resp: &api.HealthResponse{Status: "healthy", DatabaseConnected: true, DocumentsLoaded: true}})
	if m.statusBar.State != components.BackendHealthy || !m.statusBar.DocumentsLoaded {
		t.Error("healthy probe should mark the bar connected with documents")
	}

	m, _ = m.Update(HealthMsg{Err: fmt.Errorf("%w: refused", api.ErrUnavailable)})
	if m.statusBar.State != components.BackendOffline {
		t.Error("failed probe should mark the bar offline")
	}
}

func TestClearResetsSession(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "q")
	m, _ = pressEnter(m)
	m, _ = m.Update(QueryResultMsg{Query: "q", Resp: &api.QueryResponse{Answer: "a"}})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if len(m.sess.Messages()) != 1 || !m.sess.IsFresh() {
		t.Error("ctrl+l should reset to a fresh session")
	}
}

func TestUploadingBlocksSubmit(t *testing.T) {
	m := newTestModel(t)
	m.uploading = true
	m = typeText(m, "question while uploading")

	m, _ = pressEnter(m)
	if m.sess.IsLoading() {
		t.Error("submit during upload must not start a query")
	}
	if m.input.Value() != "question while uploading" {
		t.Error("input should keep its text while uploading")
	}
}

func TestUploadDoneClearsUploading(t *testing.T) {
	m := newTestModel(t)
	m.uploading = true

	m, _ = m.Update(UploadDoneMsg{Result: &uploader.Result{
		Response: &api.UploadResponse{Message: "ok", FilesProcessed: 1},
	}})
	if m.uploading {
		t.Error("upload completion should clear the uploading state")
	}
}

func TestWelcomeHintsTrackDocuments(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(HealthMsg{Resp: &api.HealthResponse{
		Status: "healthy", DatabaseConnected: true, DocumentsLoaded: false,
	}})
	if !strings.Contains(m.viewport.View(), "No documents yet") {
		t.Error("fresh session with no documents should show upload hints")
	}

	m, _ = m.Update(HealthMsg{Resp: &api.HealthResponse{
		Status: "healthy", DatabaseConnected: true, DocumentsLoaded: true,
	}})
	if strings.Contains(m.viewport.View(), "No documents yet") {
		t.Error("hints should disappear once documents are loaded")
	}
}
