// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for ragchat.
package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/ragchat-tui/internal/util"
)

// TokenStore persists the backend bearer token.
//
// SECURITY: The token file is written with mode 0600 so other local users
// cannot read it. The token itself is never logged.
type TokenStore struct {
	path string
}

// NewTokenStore creates a token store under ~/.ragchat/.
func NewTokenStore() (*TokenStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &TokenStore{path: filepath.Join(home, ".ragchat", "token")}, nil
}

// NewTokenStoreWithPath creates a token store at a custom path.
func NewTokenStoreWithPath(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Save persists the token.
// RELIABILITY: Atomic write with fsync prevents data loss on crash.
func (s *TokenStore) Save(token string) error {
	return util.AtomicWriteFile(s.path, []byte(token), 0600)
}

// Load returns the stored token, or "" if none is stored.
func (s *TokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (s *TokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
