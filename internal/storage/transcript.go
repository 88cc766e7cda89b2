// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for ragchat.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// transcriptFile is the on-disk shape of a persisted session. The Fresh
// flag records whether the transcript is still the untouched default, so
// restoring code never has to compare message text against the welcome
// greeting.
type transcriptFile struct {
	Version  int             `json:"version"`
	Fresh    bool            `json:"fresh"`
	Messages []model.Message `json:"messages"`
}

// transcriptVersion is bumped when the persisted shape changes.
const transcriptVersion = 1

// TranscriptStore persists the current chat transcript.
type TranscriptStore struct {
	path string
}

// NewTranscriptStore creates a transcript store under ~/.ragchat/.
func NewTranscriptStore() (*TranscriptStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &TranscriptStore{path: filepath.Join(home, ".ragchat", "session.json")}, nil
}

// NewTranscriptStoreWithPath creates a transcript store at a custom path.
func NewTranscriptStoreWithPath(path string) *TranscriptStore {
	return &TranscriptStore{path: path}
}

// Save persists the transcript and its fresh flag.
// RELIABILITY: Atomic write with fsync prevents data loss on crash.
func (s *TranscriptStore) Save(messages []model.Message, fresh bool) error {
	data, err := json.MarshalIndent(transcriptFile{
		Version:  transcriptVersion,
		Fresh:    fresh,
		Messages: messages,
	}, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(s.path, data, 0600)
}

// LoadOrDefault returns the persisted transcript, falling back to a fresh
// default session when the file is missing, unreadable, corrupt, or empty.
// The returned boolean reports whether the session is fresh (no user
// activity yet). The fallback is deliberate: a damaged session file must
// never block startup.
func (s *TranscriptStore) LoadOrDefault() ([]model.Message, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return model.DefaultMessages(), true
	}

	var tf transcriptFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return model.DefaultMessages(), true
	}
	if len(tf.Messages) == 0 {
		return model.DefaultMessages(), true
	}
	return tf.Messages, tf.Fresh
}

// Clear removes the persisted transcript. Used on logout.
func (s *TranscriptStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
