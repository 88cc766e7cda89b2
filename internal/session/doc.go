// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the state of the active chat session.
//
// A Session owns the transcript, the loading flag, and the rules around
// submitting queries: blank input and double-submits are ignored, the
// user's message is appended optimistically before the backend call, and
// the last three answered question/answer pairs ride along as context.
//
// Session persists the transcript after every change so a restart resumes
// the conversation. An authentication failure during a query clears the
// loading state and notifies the unauthorized handler; the optimistic user
// message stays in the transcript without an error bubble, since the auth
// gate itself takes over the screen.
package session
