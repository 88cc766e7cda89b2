// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package uploader handles document ingestion into the RAG backend.
package uploader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jeranaias/ragchat-tui/internal/api"
)

// Sentinel errors for upload failures.
var (
	// ErrNoSupportedFiles indicates every candidate was rejected by type.
	ErrNoSupportedFiles = errors.New("no supported documents (accepted: .pdf, .docx, .doc)")

	// ErrFileTooLarge indicates a file exceeds the configured size cap.
	ErrFileTooLarge = errors.New("file too large")
)

// Result summarizes one upload batch.
type Result struct {
	// BatchID identifies the batch in logs and history.
	BatchID string

	// Response is the backend's ingestion summary.
	Response *api.UploadResponse

	// Rejected lists candidates skipped by type filtering. They were
	// never read or transmitted.
	Rejected []string
}

// Uploader reads local documents and submits them to the backend.
type Uploader struct {
	client       *api.Client
	maxFileBytes int64
}

// New creates an uploader. maxFileMB caps individual file size.
func New(client *api.Client, maxFileMB int) *Uploader {
	return &Uploader{
		client:       client,
		maxFileBytes: int64(maxFileMB) * 1024 * 1024,
	}
}

// Send filters, reads, and uploads the given paths as one batch.
// Unsupported files are reported in the Result, not treated as errors,
// unless the whole batch was rejected.
func (u *Uploader) Send(ctx context.Context, paths []string) (*Result, error) {
	accepted, rejected := Filter(paths)
	if len(accepted) == 0 {
		return &Result{Rejected: rejected}, ErrNoSupportedFiles
	}

	files := make([]api.UploadFile, 0, len(accepted))
	for _, p := range accepted {
		data, err := u.readCapped(p)
		if err != nil {
			return &Result{Rejected: rejected}, err
		}
		files = append(files, api.UploadFile{Name: filepath.Base(p), Data: data})
	}

	batchID := uuid.NewString()
	resp, err := u.client.Upload(ctx, files)
	if err != nil {
		return &Result{BatchID: batchID, Rejected: rejected}, err
	}
	return &Result{BatchID: batchID, Response: resp, Rejected: rejected}, nil
}

// readCapped reads a file, enforcing the size cap before reading.
func (u *Uploader) readCapped(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", filepath.Base(path), err)
	}
	if u.maxFileBytes > 0 && info.Size() > u.maxFileBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)",
			ErrFileTooLarge, filepath.Base(path), info.Size(), u.maxFileBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return data, nil
}
