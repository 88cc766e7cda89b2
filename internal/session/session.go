// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the state of the active chat session.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/jeranaias/ragchat-tui/internal/api"
	"github.com/jeranaias/ragchat-tui/internal/model"
)

// ContextPairs is how many trailing question/answer pairs accompany each
// query so the backend can resolve follow-ups.
const ContextPairs = 3

// QueryClient is the backend surface a session needs.
type QueryClient interface {
	Query(ctx context.Context, query string, previous []model.QAPair) (*api.QueryResponse, error)
}

// Persister stores the transcript between runs. TranscriptStore satisfies
// it; tests substitute their own.
type Persister interface {
	Save(messages []model.Message, fresh bool) error
	Clear() error
}

// Session is the active chat session.
type Session struct {
	mu     sync.Mutex
	client QueryClient
	store  Persister // nil disables persistence

	messages []model.Message
	fresh    bool
	loading  bool
	lastErr  error

	onUnauthorized func()
}

// New creates a fresh session.
func New(client QueryClient, store Persister) *Session {
	return &Session{
		client:   client,
		store:    store,
		messages: model.DefaultMessages(),
		fresh:    true,
	}
}

// Restore creates a session from a previously persisted transcript.
func Restore(client QueryClient, store Persister, messages []model.Message, fresh bool) *Session {
	if len(messages) == 0 {
		messages = model.DefaultMessages()
		fresh = true
	}
	return &Session{
		client:   client,
		store:    store,
		messages: messages,
		fresh:    fresh,
	}
}

// SetUnauthorizedHandler registers the callback invoked when a query is
// rejected for authentication. Called without the session lock held.
func (s *Session) SetUnauthorizedHandler(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUnauthorized = fn
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// IsFresh reports whether the session has seen no user activity.
func (s *Session) IsFresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fresh
}

// IsLoading reports whether a query is in flight.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the most recent query failure, if any.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// =============================================================================
// QUERY LIFECYCLE
// =============================================================================

// Begin starts a query: the user's message is appended to the transcript
// before any network traffic so the input feels immediate. It returns
// false (and changes nothing) when the text is blank or a query is
// already in flight.
func (s *Session) Begin(text string) bool {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	if text == "" || s.loading {
		s.mu.Unlock()
		return false
	}
	s.messages = append(s.messages, *model.NewUserMessage(text))
	s.fresh = false
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()

	s.persist()
	return true
}

// Pairs returns the context pairs to send with the in-flight query. The
// optimistic user message has no answer yet and is never part of a pair.
func (s *Session) Pairs() []model.QAPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.LastPairs(s.messages, ContextPairs)
}

// Complete finishes the in-flight query with the backend's answer.
func (s *Session) Complete(answer string, sources []string) {
	s.mu.Lock()
	s.messages = append(s.messages, *model.NewAssistantMessage(answer, sources))
	s.loading = false
	s.mu.Unlock()

	s.persist()
}

// Fail finishes the in-flight query with an error. Authentication
// failures hand control to the unauthorized handler instead of adding an
// error bubble; everything else is appended to the transcript so the
// failure is visible in place.
func (s *Session) Fail(err error) {
	if errors.Is(err, api.ErrAuthFailed) {
		s.mu.Lock()
		s.loading = false
		s.lastErr = err
		handler := s.onUnauthorized
		s.mu.Unlock()

		s.persist()
		if handler != nil {
			handler()
		}
		return
	}

	s.mu.Lock()
	s.messages = append(s.messages, *model.NewErrorMessage("Error: "+FormatError(err)))
	s.loading = false
	s.lastErr = err
	s.mu.Unlock()

	s.persist()
}

// Ask runs a full blocking query cycle. Used by the REPL and one-shot
// commands; the TUI drives Begin/Complete/Fail itself to stay responsive.
func (s *Session) Ask(ctx context.Context, text string) (*api.QueryResponse, error) {
	if !s.Begin(text) {
		return nil, errors.New("nothing to ask")
	}

	resp, err := s.client.Query(ctx, strings.TrimSpace(text), s.Pairs())
	if err != nil {
		s.Fail(err)
		return nil, err
	}
	s.Complete(resp.Answer, resp.Sources)
	return resp, nil
}

// Reset discards the transcript and returns the session to a fresh state.
func (s *Session) Reset() {
	s.mu.Lock()
	s.messages = model.DefaultMessages()
	s.fresh = true
	s.loading = false
	s.lastErr = nil
	s.mu.Unlock()

	s.persist()
}

// persist writes the transcript out. Best effort: the chat must keep
// working even when the disk does not.
func (s *Session) persist() {
	s.mu.Lock()
	store := s.store
	msgs := make([]model.Message, len(s.messages))
	copy(msgs, s.messages)
	fresh := s.fresh
	s.mu.Unlock()

	if store == nil {
		return
	}
	if err := store.Save(msgs, fresh); err != nil {
		log.Printf("session: failed to persist transcript: %v", err)
	}
}

// FormatError renders a query failure for display.
func FormatError(err error) string {
	var apiErr *api.APIError
	switch {
	case errors.Is(err, api.ErrUnavailable):
		return "could not reach the backend. Is it running?"
	case errors.As(err, &apiErr):
		return apiErr.Detail.String()
	default:
		return fmt.Sprintf("%v", err)
	}
}
