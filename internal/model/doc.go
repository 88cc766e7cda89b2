// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat transcripts and messages.
//
// This package defines the core domain types used throughout the application
// for representing the chat transcript exchanged with the RAG backend.
//
// # Key Types
//
//   - Message: Single message with role, content, sources, and timestamp
//   - Role: Message role enumeration (user, assistant)
//   - QAPair: A completed question/answer exchange sent back as context
//
// # Usage
//
// Build a transcript and extract the trailing context window:
//
//	msgs := model.DefaultMessages()
//	msgs = append(msgs, *model.NewUserMessage("What does chapter 2 cover?"))
//	pairs := model.LastPairs(msgs, 3)
package model
