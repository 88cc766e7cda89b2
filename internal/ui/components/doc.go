// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the ragchat TUI.
//
// # Components
//
//   - Markdown: glamour-backed markdown renderer with a chroma fallback
//   - RenderMessage: chat bubble rendering for user/assistant/error messages
//   - Spinner: "Thinking..." indicator shown while a query is in flight
//   - StatusBar: backend state, document indicator, and shortcut hints
package components
