// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history provides a local SQLite record of past queries.
//
// Every answered query is appended to ~/.ragchat/history.db along with its
// answer and source attributions. The store supports listing recent
// entries, substring search, and pruning to a configured maximum size.
//
// The history is purely local; nothing in this package talks to the
// backend.
package history
