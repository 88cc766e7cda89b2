// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main chat view.
package chat

import (
	"github.com/jeranaias/ragchat-tui/internal/api"
	"github.com/jeranaias/ragchat-tui/internal/uploader"
)

// =============================================================================
// MESSAGES
// =============================================================================

// QueryResultMsg carries a successful backend answer.
type QueryResultMsg struct {
	Query string
	Resp  *api.QueryResponse
}

// QueryFailedMsg carries a failed query.
type QueryFailedMsg struct {
	Err error
}

// UnauthorizedMsg tells the parent model the token was rejected. The
// parent clears the stored token and shows the auth gate again.
type UnauthorizedMsg struct{}

// UploadDoneMsg carries the outcome of an upload batch.
type UploadDoneMsg struct {
	Result *uploader.Result
	Err    error
}

// HealthMsg carries a backend health probe result.
type HealthMsg struct {
	Resp *api.HealthResponse
	Err  error
}
