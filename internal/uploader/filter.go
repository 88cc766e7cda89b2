// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package uploader handles document ingestion into the RAG backend.
package uploader

import (
	"path/filepath"
	"sort"
	"strings"
)

// supportedExtensions are the document types the backend can ingest.
// Matching is by extension only: browser-style MIME detection is
// unreliable for Word documents, and the backend re-validates content
// anyway.
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
}

// IsSupported reports whether the file name has a supported document
// extension. The check is case-insensitive, so "REPORT.PDF" passes.
func IsSupported(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// Filter splits paths into accepted and rejected by document type.
// Rejected paths never generate network traffic.
func Filter(paths []string) (accepted, rejected []string) {
	for _, p := range paths {
		if IsSupported(p) {
			accepted = append(accepted, p)
		} else {
			rejected = append(rejected, p)
		}
	}
	return accepted, rejected
}

// SupportedExtensions lists the accepted extensions in stable order.
func SupportedExtensions() []string {
	out := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
