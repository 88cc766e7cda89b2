// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

// =============================================================================
// AUTH TESTS
// =============================================================================

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		if req["password"] != "open-sesame" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Incorrect password"}`))
			return
		}
		w.Write([]byte(`{"token": "tok-abc123"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	token, err := client.Login(context.Background(), "open-sesame")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc123", token)

	_, err = client.Login(context.Background(), "wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestQuerySendsTokenAndContext(t *testing.T) {
	var captured struct {
		Query            string         `json:"query"`
		TopK             int            `json:"top_k"`
		PreviousMessages []model.QAPair `json:"previous_messages"`
	}
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/query", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer": "It covers routing.", "sources": ["guide.pdf"]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL).WithToken("tok-abc123")
	pairs := []model.QAPair{{Query: "q1", Answer: "a1"}}

	resp, err := client.Query(context.Background(), "What about chapter 2?", pairs)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-abc123", authHeader)
	assert.Equal(t, "What about chapter 2?", captured.Query)
	assert.Equal(t, DefaultTopK, captured.TopK)
	assert.Equal(t, pairs, captured.PreviousMessages)
	assert.Equal(t, "It covers routing.", resp.Answer)
	assert.Equal(t, []string{"guide.pdf"}, resp.Sources)
}

func TestQueryWithoutContextSendsEmptyList(t *testing.T) {
	var raw map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.Write([]byte(`{"answer": "ok", "sources": []}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).WithToken("t").Query(context.Background(), "q", nil)
	require.NoError(t, err)

	// The backend requires previous_messages to be a list, never null.
	assert.JSONEq(t, `[]`, string(raw["previous_messages"]))
}

func TestNon200SuccessStatusAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"answer": "ok", "sources": []}`))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).WithToken("t").Query(context.Background(), "q", nil)
	require.NoError(t, err, "any 2xx status is a success")
	assert.Equal(t, "ok", resp.Answer)
}

func TestQueryToleratesMalformedSources(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"string instead of array", `{"answer": "hi", "sources": "not-an-array"}`},
		{"object instead of array", `{"answer": "hi", "sources": {"a": 1}}`},
		{"number elements", `{"answer": "hi", "sources": [1, 2]}`},
		{"null", `{"answer": "hi", "sources": null}`},
		{"absent", `{"answer": "hi"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			resp, err := NewClient(server.URL).WithToken("t").Query(context.Background(), "q", nil)
			require.NoError(t, err, "a bad sources field must not discard the answer")
			assert.Equal(t, "hi", resp.Answer)
			assert.Empty(t, resp.Sources)
		})
	}
}

func TestQueryUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Invalid authentication credentials"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Query(context.Background(), "q", nil)
	assert.ErrorIs(t, err, ErrAuthFailed)
	assert.Contains(t, err.Error(), "Invalid authentication credentials")
}

func TestUnreachableBackend(t *testing.T) {
	// Port 1 is never listening.
	client := NewClient("http://127.0.0.1:1")
	_, err := client.Health(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

// =============================================================================
// UPLOAD TESTS
// =============================================================================

func TestUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		files := r.MultipartForm.File["files"]
		require.Len(t, files, 2)
		assert.Equal(t, "report.pdf", files[0].Filename)
		assert.Equal(t, "notes.docx", files[1].Filename)

		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		buf := make([]byte, 4)
		f.Read(buf)
		assert.Equal(t, "%PDF", string(buf))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"message": "Successfully processed 2 files",
			"files_processed": 2,
			"chunks_processed": 17,
			"filenames": ["report.pdf", "notes.docx"]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL).WithToken("t")
	resp, err := client.Upload(context.Background(), []UploadFile{
		{Name: "/tmp/report.pdf", Data: []byte("%PDF-1.7 data")},
		{Name: "notes.docx", Data: []byte("docx bytes")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.FilesProcessed)
	assert.Equal(t, 17, resp.ChunksProcessed)
	assert.Equal(t, []string{"report.pdf", "notes.docx"}, resp.Filenames)
}

func TestUploadEmptyBatch(t *testing.T) {
	_, err := NewClient("").Upload(context.Background(), nil)
	assert.Error(t, err)
}

// =============================================================================
// HEALTH AND DELETE TESTS
// =============================================================================

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{"status": "healthy", "database_connected": true, "documents_loaded": false}`))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", resp.Status)
	assert.True(t, resp.DatabaseConnected)
	assert.False(t, resp.DocumentsLoaded)
}

func TestDeleteDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/documents", r.URL.Path)
		w.Write([]byte(`{"message": "All documents deleted"}`))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).WithToken("t").DeleteDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "All documents deleted", resp.Message)
}

// =============================================================================
// ERROR DETAIL TESTS
// =============================================================================

func TestDetailNormalization(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
		kind DetailKind
	}{
		{
			name: "plain text detail",
			body: `{"detail": "Error processing query"}`,
			want: "Error processing query",
			kind: DetailText,
		},
		{
			name: "validation list detail",
			body: `{"detail": [{"loc": ["body", "query"], "msg": "field required"}, {"msg": "value too long"}]}`,
			want: "field required; value too long",
			kind: DetailValidation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var envelope errorResponse
			require.NoError(t, json.Unmarshal([]byte(tc.body), &envelope))
			assert.Equal(t, tc.kind, envelope.Detail.Kind)
			assert.Equal(t, tc.want, envelope.Detail.String())
		})
	}
}

func TestAPIErrorFromServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [{"msg": "field required"}]}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).WithToken("t").Query(context.Background(), "q", nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "field required", apiErr.Detail.String())
}

func TestUnparseableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream exploded`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Health(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "upstream exploded")
}
