// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the RAG backend.
package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// authRequest is the body for POST /auth.
type authRequest struct {
	Password string `json:"password"`
}

// authResponse is the body returned by POST /auth on success.
type authResponse struct {
	Token string `json:"token"`
}

// queryRequest is the body for POST /query.
type queryRequest struct {
	Query            string         `json:"query"`
	TopK             int            `json:"top_k"`
	PreviousMessages []model.QAPair `json:"previous_messages"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// QueryResponse is the backend's answer to a retrieval query.
type QueryResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// UnmarshalJSON tolerates malformed sources: anything that is not an
// array of strings becomes an empty list instead of failing the whole
// response and losing the answer.
func (r *QueryResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Answer  string          `json:"answer"`
		Sources json.RawMessage `json:"sources"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Answer = raw.Answer
	r.Sources = nil
	if len(raw.Sources) > 0 {
		var sources []string
		if err := json.Unmarshal(raw.Sources, &sources); err == nil {
			r.Sources = sources
		}
	}
	return nil
}

// UploadResponse summarizes a processed upload batch.
type UploadResponse struct {
	Message         string   `json:"message"`
	FilesProcessed  int      `json:"files_processed"`
	ChunksProcessed int      `json:"chunks_processed"`
	Filenames       []string `json:"filenames"`
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status            string `json:"status"`
	DatabaseConnected bool   `json:"database_connected"`
	DocumentsLoaded   bool   `json:"documents_loaded"`
}

// DeleteResponse is the body returned by DELETE /documents.
type DeleteResponse struct {
	Message string `json:"message"`
}

// =============================================================================
// ERROR DETAIL
// =============================================================================

// DetailKind discriminates the two shapes the backend uses for error
// details: a plain string, or a list of field validation messages.
type DetailKind int

const (
	DetailText DetailKind = iota
	DetailValidation
)

// Detail is the normalized form of a backend error detail. The backend
// returns either {"detail": "text"} or {"detail": [{"msg": ...}, ...]};
// both shapes are resolved here so callers never touch raw JSON.
type Detail struct {
	Kind  DetailKind
	Text  string
	Items []string
}

// validationItem is one entry of a validation-error detail list.
type validationItem struct {
	Msg string `json:"msg"`
}

// UnmarshalJSON accepts both detail shapes.
func (d *Detail) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		d.Kind = DetailText
		d.Text = text
		d.Items = nil
		return nil
	}

	var items []validationItem
	if err := json.Unmarshal(data, &items); err == nil {
		d.Kind = DetailValidation
		d.Items = d.Items[:0]
		for _, it := range items {
			if it.Msg != "" {
				d.Items = append(d.Items, it.Msg)
			}
		}
		return nil
	}

	// Unknown shape: keep the raw JSON as text rather than failing the
	// whole error path.
	d.Kind = DetailText
	d.Text = string(data)
	return nil
}

// String renders the detail as a single display string.
func (d Detail) String() string {
	if d.Kind == DetailValidation {
		return strings.Join(d.Items, "; ")
	}
	return d.Text
}

// IsZero reports whether the detail carries no content.
func (d Detail) IsZero() bool {
	return d.Text == "" && len(d.Items) == 0
}

// errorResponse is the backend's error envelope.
type errorResponse struct {
	Detail Detail `json:"detail"`
}

// APIError is a backend error with its HTTP status and normalized detail.
type APIError struct {
	Status int
	Detail Detail
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail.IsZero() {
		return fmt.Sprintf("backend error (status %d)", e.Status)
	}
	return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Detail)
}
