// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package uploader handles document ingestion into the RAG backend.
//
// It filters candidate files by type before any bytes leave the machine
// (only PDF and Word documents are accepted, by extension), reads accepted
// files under a size cap, and submits them as one multipart batch.
//
// The package also provides DropWatcher, which watches a drop directory
// and uploads new documents automatically, debouncing rapid file events so
// a document being copied in is sent once, complete.
package uploader
