// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat transcripts and messages.
package model

// =============================================================================
// WELCOME MESSAGE
// =============================================================================

// WelcomeText is the assistant greeting shown at the start of a fresh session.
const WelcomeText = "Hello! Upload a document and ask me anything about its contents. I'll answer using the most relevant passages I can find."

// DefaultMessages returns the transcript a fresh session starts with: a
// single assistant welcome message.
func DefaultMessages() []Message {
	return []Message{*NewAssistantMessage(WelcomeText, nil)}
}

// =============================================================================
// QUESTION/ANSWER CONTEXT
// =============================================================================

// QAPair is one completed question/answer exchange. Recent pairs are sent
// with each query so the backend can resolve follow-up questions.
type QAPair struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
}

// LastPairs extracts up to n trailing question/answer pairs from a
// transcript. A pair is a user message immediately followed by an
// assistant message, error replies included; the welcome greeting never
// forms a pair because no user message precedes it. A trailing user
// message still awaiting its answer is ignored.
func LastPairs(messages []Message, n int) []QAPair {
	if n <= 0 {
		return nil
	}

	var pairs []QAPair
	for i := 0; i+1 < len(messages); i++ {
		if messages[i].Role != RoleUser {
			continue
		}
		next := messages[i+1]
		if next.Role != RoleAssistant {
			continue
		}
		pairs = append(pairs, QAPair{Query: messages[i].Content, Answer: next.Content})
	}

	if len(pairs) > n {
		pairs = pairs[len(pairs)-n:]
	}
	return pairs
}
