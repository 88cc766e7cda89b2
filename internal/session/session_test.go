// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jeranaias/ragchat-tui/internal/api"
	"github.com/jeranaias/ragchat-tui/internal/model"
)

// fakeClient records queries and returns canned responses.
type fakeClient struct {
	calls    int
	lastText string
	lastCtx  []model.QAPair
	resp     *api.QueryResponse
	err      error
}

func (f *fakeClient) Query(_ context.Context, text string, previous []model.QAPair) (*api.QueryResponse, error) {
	f.calls++
	f.lastText = text
	f.lastCtx = previous
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &api.QueryResponse{Answer: "answer to " + text}, nil
}

// memStore is an in-memory Persister.
type memStore struct {
	saves   int
	msgs    []model.Message
	fresh   bool
	cleared bool
}

func (m *memStore) Save(msgs []model.Message, fresh bool) error {
	m.saves++
	m.msgs = msgs
	m.fresh = fresh
	return nil
}

func (m *memStore) Clear() error {
	m.cleared = true
	return nil
}

func TestNewSessionIsFresh(t *testing.T) {
	s := New(&fakeClient{}, nil)
	if !s.IsFresh() {
		t.Error("new session should be fresh")
	}
	msgs := s.Messages()
	if len(msgs) != 1 || msgs[0].Content != model.WelcomeText {
		t.Errorf("new session should hold only the welcome message, got %d", len(msgs))
	}
}

func TestBeginGuards(t *testing.T) {
	client := &fakeClient{}
	s := New(client, nil)

	if s.Begin("") {
		t.Error("blank input should be ignored")
	}
	if s.Begin("   \t  ") {
		t.Error("whitespace input should be ignored")
	}
	if len(s.Messages()) != 1 {
		t.Error("ignored input must not touch the transcript")
	}

	if !s.Begin("real question") {
		t.Fatal("valid input should start a query")
	}
	if s.Begin("second while loading") {
		t.Error("submit while loading should be ignored")
	}
	if got := len(s.Messages()); got != 2 {
		t.Errorf("transcript length = %d, want 2", got)
	}
	if client.calls != 0 {
		t.Error("Begin itself must not hit the network")
	}
}

func TestBeginAppendsOptimistically(t *testing.T) {
	s := New(&fakeClient{}, nil)
	s.Begin("  what is this about?  ")

	msgs := s.Messages()
	last := msgs[len(msgs)-1]
	if last.Role != model.RoleUser {
		t.Errorf("last role = %q, want user", last.Role)
	}
	if last.Content != "what is this about?" {
		t.Errorf("content = %q (should be trimmed)", last.Content)
	}
	if !s.IsLoading() {
		t.Error("session should be loading after Begin")
	}
	if s.IsFresh() {
		t.Error("session should no longer be fresh")
	}
}

func TestAskSendsLastThreePairs(t *testing.T) {
	client := &fakeClient{}
	s := New(client, nil)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if _, err := s.Ask(ctx, fmt.Sprintf("q%d", i)); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := s.Ask(ctx, "q6"); err != nil {
		t.Fatal(err)
	}
	if len(client.lastCtx) != ContextPairs {
		t.Fatalf("context pairs = %d, want %d", len(client.lastCtx), ContextPairs)
	}
	if client.lastCtx[0].Query != "q3" || client.lastCtx[2].Query != "q5" {
		t.Errorf("wrong context window: %v", client.lastCtx)
	}
	// The in-flight question itself is never part of the context.
	for _, p := range client.lastCtx {
		if p.Query == "q6" {
			t.Error("in-flight question leaked into context")
		}
	}
}

func TestCompleteAppendsAnswer(t *testing.T) {
	s := New(&fakeClient{}, nil)
	s.Begin("q")
	s.Complete("the answer", []string{"doc.pdf"})

	msgs := s.Messages()
	last := msgs[len(msgs)-1]
	if last.Role != model.RoleAssistant || last.Content != "the answer" {
		t.Errorf("unexpected last message: %+v", last)
	}
	if len(last.Sources) != 1 || last.Sources[0] != "doc.pdf" {
		t.Errorf("sources = %v", last.Sources)
	}
	if s.IsLoading() {
		t.Error("loading should be cleared")
	}
}

func TestFailAppendsErrorBubble(t *testing.T) {
	s := New(&fakeClient{}, nil)
	s.Begin("q")
	s.Fail(&api.APIError{Status: 500, Detail: api.Detail{Text: "retrieval exploded"}})

	msgs := s.Messages()
	last := msgs[len(msgs)-1]
	if !last.IsError {
		t.Error("failure should append an error message")
	}
	if !strings.HasPrefix(last.Content, "Error: ") {
		t.Errorf("error content = %q", last.Content)
	}
	if !strings.Contains(last.Content, "retrieval exploded") {
		t.Errorf("error content should carry the detail: %q", last.Content)
	}
	if s.IsLoading() {
		t.Error("loading should be cleared")
	}
	if s.LastError() == nil {
		t.Error("last error should be recorded")
	}
}

func TestFailUnauthorized(t *testing.T) {
	s := New(&fakeClient{}, nil)
	var notified bool
	s.SetUnauthorizedHandler(func() { notified = true })

	s.Begin("q")
	before := len(s.Messages())
	s.Fail(fmt.Errorf("%w: token expired", api.ErrAuthFailed))

	if !notified {
		t.Error("unauthorized handler should fire")
	}
	if s.IsLoading() {
		t.Error("loading should be cleared")
	}
	// The optimistic user message stays; no error bubble is added because
	// the auth gate takes over the screen.
	msgs := s.Messages()
	if len(msgs) != before {
		t.Errorf("transcript length = %d, want %d (no error bubble)", len(msgs), before)
	}
	if msgs[len(msgs)-1].Role != model.RoleUser {
		t.Error("optimistic user message should remain last")
	}
}

func TestFailedExchangesStayInContext(t *testing.T) {
	client := &fakeClient{}
	s := New(client, nil)
	ctx := context.Background()

	s.Ask(ctx, "good question")

	client.err = &api.APIError{Status: 500, Detail: api.Detail{Text: "boom"}}
	s.Ask(ctx, "failing question")
	client.err = nil

	// The error reply is an assistant message, so the failed exchange
	// counts as a pair like any other.
	s.Ask(ctx, "next question")
	var found bool
	for _, p := range client.lastCtx {
		if p.Query == "failing question" {
			found = true
			if !strings.HasPrefix(p.Answer, "Error:") {
				t.Errorf("failed exchange answer = %q, want the error text", p.Answer)
			}
		}
	}
	if !found {
		t.Errorf("failed exchange missing from context: %v", client.lastCtx)
	}
}

func TestPersistence(t *testing.T) {
	store := &memStore{}
	client := &fakeClient{}
	s := New(client, store)

	s.Ask(context.Background(), "q1")
	if store.saves == 0 {
		t.Fatal("transcript should be persisted")
	}
	if store.fresh {
		t.Error("persisted session should not be fresh after a question")
	}

	// Restore resumes exactly what was saved.
	restored := Restore(client, store, store.msgs, store.fresh)
	if restored.IsFresh() {
		t.Error("restored session should keep its non-fresh flag")
	}
	if len(restored.Messages()) != len(store.msgs) {
		t.Error("restored transcript mismatch")
	}

	// Restoring an empty transcript falls back to a fresh default.
	fallback := Restore(client, store, nil, false)
	if !fallback.IsFresh() || len(fallback.Messages()) != 1 {
		t.Error("empty restore should produce a fresh default session")
	}
}

func TestReset(t *testing.T) {
	store := &memStore{}
	s := New(&fakeClient{}, store)
	s.Ask(context.Background(), "q1")

	s.Reset()
	if !s.IsFresh() {
		t.Error("reset session should be fresh")
	}
	if len(s.Messages()) != 1 {
		t.Error("reset should leave only the welcome message")
	}
	if !store.fresh {
		t.Error("reset state should be persisted as fresh")
	}
}

func TestFormatError(t *testing.T) {
	if got := FormatError(fmt.Errorf("%w: dial tcp refused", api.ErrUnavailable)); !strings.Contains(got, "backend") {
		t.Errorf("unavailable formatting = %q", got)
	}
	apiErr := &api.APIError{Status: 422, Detail: api.Detail{Kind: api.DetailValidation, Items: []string{"field required"}}}
	if got := FormatError(apiErr); got != "field required" {
		t.Errorf("api error formatting = %q", got)
	}
	if got := FormatError(errors.New("plain")); got != "plain" {
		t.Errorf("plain formatting = %q", got)
	}
}
