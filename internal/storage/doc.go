// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for ragchat.
//
// Two stores live under ~/.ragchat/:
//
//   - TokenStore: the backend bearer token (token file, mode 0600)
//   - TranscriptStore: the current chat transcript (session.json),
//     restored on startup so a restart resumes the conversation
//
// Both stores write atomically. Reads are forgiving: a missing or corrupt
// transcript yields a fresh default session rather than an error, so a bad
// file can never lock the user out of the chat.
package storage
