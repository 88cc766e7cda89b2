// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the RAG backend.
//
// The backend exposes a small JSON API: password authentication, document
// upload, retrieval-augmented queries, a health probe, and document
// deletion. This package implements the client for all five endpoints.
//
// # Key Types
//
//   - Client: pooled HTTP client with bearer-token auth
//   - QueryResponse: answer text plus source attributions
//   - UploadResponse: ingestion counts for an upload batch
//   - Detail: normalized backend error detail (plain text or field list)
//
// # Usage
//
//	client := api.NewClient("http://localhost:8000").WithToken(token)
//	resp, err := client.Query(ctx, "What does chapter 2 cover?", pairs)
//	if errors.Is(err, api.ErrAuthFailed) {
//	    // token expired - re-authenticate
//	}
//
// API: Secure logging, response size limits, and sentinel error mapping
package api
