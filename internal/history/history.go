// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history provides a local SQLite record of past queries.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed   = errors.New("history store is closed")
	ErrNotFound = errors.New("history entry not found")
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS queries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	asked_at   TIMESTAMP NOT NULL,
	query      TEXT NOT NULL,
	answer     TEXT NOT NULL,
	sources    TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_queries_asked_at ON queries(asked_at);
`

// Entry is one recorded query with its answer.
type Entry struct {
	ID      int64
	AskedAt time.Time
	Query   string
	Answer  string
	Sources []string
}

// Store is the SQLite-backed query history.
type Store struct {
	db         *sql.DB
	maxEntries int
}

// DefaultPath returns the default history database location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".ragchat", "history.db"), nil
}

// Open opens (creating if needed) the history database at path. maxEntries
// caps retained rows; zero disables pruning.
func Open(path string, maxEntries int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, maxEntries: maxEntries}, nil
}

// Close closes the store and releases resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Record appends an answered query to the history and prunes old rows if
// the store is over its size cap.
func (s *Store) Record(ctx context.Context, query, answer string, sources []string) error {
	if s.db == nil {
		return ErrClosed
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO queries (asked_at, query, answer, sources) VALUES (?, ?, ?, ?)",
		time.Now().UTC(), query, answer, strings.Join(sources, "\n"))
	if err != nil {
		return fmt.Errorf("failed to record query: %w", err)
	}

	if s.maxEntries > 0 {
		// Prune oldest rows beyond the cap. Best effort; a failed prune
		// never fails the record.
		s.db.ExecContext(ctx, `
			DELETE FROM queries WHERE id NOT IN (
				SELECT id FROM queries ORDER BY id DESC LIMIT ?
			)`, s.maxEntries)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, asked_at, query, answer, sources FROM queries ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Search returns entries whose query or answer contains the needle,
// newest first.
func (s *Store) Search(ctx context.Context, needle string, limit int) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}

	pattern := "%" + needle + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, asked_at, query, answer, sources FROM queries
		WHERE query LIKE ? OR answer LIKE ?
		ORDER BY id DESC LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search history: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM queries").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

// Clear removes all entries.
func (s *Store) Clear(ctx context.Context) error {
	if s.db == nil {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM queries"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			sources string
		)
		if err := rows.Scan(&e.ID, &e.AskedAt, &e.Query, &e.Answer, &sources); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if sources != "" {
			e.Sources = strings.Split(sources, "\n")
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
