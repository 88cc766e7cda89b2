// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main chat view.
//
// The view is a Bubble Tea model wrapping the session state machine:
// a scrolling transcript viewport, a single-line input, a thinking
// spinner while a query is in flight, and a status bar showing backend
// health and upload results. Uploads run from the "/upload" command or
// the drop directory; both paths go through the uploader package.
package chat
