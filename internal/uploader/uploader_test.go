// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package uploader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jeranaias/ragchat-tui/internal/api"
)

// =============================================================================
// TYPE FILTER TESTS
// =============================================================================

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"report.pdf", true},
		{"report.PDF", true}, // extension check is case-insensitive
		{"notes.docx", true},
		{"legacy.doc", true},
		{"notes.txt", false},
		{"image.png", false},
		{"archive.pdf.zip", false},
		{"noextension", false},
		{"/tmp/drop/Report.Docx", true},
	}
	for _, tc := range tests {
		if got := IsSupported(tc.name); got != tc.want {
			t.Errorf("IsSupported(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFilter(t *testing.T) {
	accepted, rejected := Filter([]string{"a.pdf", "b.txt", "c.docx", "d.md"})
	if len(accepted) != 2 || accepted[0] != "a.pdf" || accepted[1] != "c.docx" {
		t.Errorf("accepted = %v", accepted)
	}
	if len(rejected) != 2 || rejected[0] != "b.txt" || rejected[1] != "d.md" {
		t.Errorf("rejected = %v", rejected)
	}
}

// =============================================================================
// SEND TESTS
// =============================================================================

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSendRejectsUnsupportedWithoutNetwork(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	dir := t.TempDir()
	path := writeTestFile(t, dir, "notes.txt", "plain text")

	up := New(api.NewClient(server.URL).WithToken("t"), 50)
	result, err := up.Send(context.Background(), []string{path})

	if !errors.Is(err, ErrNoSupportedFiles) {
		t.Errorf("err = %v, want ErrNoSupportedFiles", err)
	}
	if requests.Load() != 0 {
		t.Error("rejected files must never generate network traffic")
	}
	if len(result.Rejected) != 1 {
		t.Errorf("rejected = %v", result.Rejected)
	}
}

func TestSendMixedBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("bad multipart form: %v", err)
		}
		files := r.MultipartForm.File["files"]
		if len(files) != 1 || files[0].Filename != "report.pdf" {
			t.Errorf("uploaded files = %v", files)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"ok","files_processed":1,"chunks_processed":4,"filenames":["report.pdf"]}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	pdf := writeTestFile(t, dir, "report.pdf", "%PDF-1.7")
	txt := writeTestFile(t, dir, "readme.txt", "nope")

	up := New(api.NewClient(server.URL).WithToken("t"), 50)
	result, err := up.Send(context.Background(), []string{pdf, txt})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if result.BatchID == "" {
		t.Error("batch should have an ID")
	}
	if result.Response.FilesProcessed != 1 {
		t.Errorf("files processed = %d", result.Response.FilesProcessed)
	}
	if len(result.Rejected) != 1 || filepath.Base(result.Rejected[0]) != "readme.txt" {
		t.Errorf("rejected = %v", result.Rejected)
	}
}

func TestSendEnforcesSizeCap(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	dir := t.TempDir()
	big := writeTestFile(t, dir, "big.pdf", string(make([]byte, 2*1024*1024)))

	up := New(api.NewClient(server.URL).WithToken("t"), 1)
	_, err := up.Send(context.Background(), []string{big})
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("err = %v, want ErrFileTooLarge", err)
	}
	if requests.Load() != 0 {
		t.Error("oversized files must not be transmitted")
	}
}

// =============================================================================
// DROP WATCHER TESTS
// =============================================================================

func TestDropWatcherUploadsNewDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"ok","files_processed":1,"chunks_processed":2,"filenames":["drop.pdf"]}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	results := make(chan *Result, 1)

	up := New(api.NewClient(server.URL).WithToken("t"), 50)
	dw, err := NewDropWatcher(dir, up, func(r *Result, err error) {
		if err != nil {
			t.Errorf("watcher upload failed: %v", err)
			return
		}
		results <- r
	})
	if err != nil {
		t.Fatalf("NewDropWatcher failed: %v", err)
	}
	defer dw.Close()

	if err := dw.Watch(); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	writeTestFile(t, dir, "drop.pdf", "%PDF-1.7")
	writeTestFile(t, dir, "ignored.txt", "not a document")

	select {
	case r := <-results:
		if r.Response.FilesProcessed != 1 {
			t.Errorf("files processed = %d", r.Response.FilesProcessed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for drop upload")
	}
}
