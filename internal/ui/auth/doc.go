// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements the authentication gate.
//
// Until the backend accepts a password, this view is the whole
// application: a masked password prompt, a submit spinner, and an error
// line for rejections. On success it emits SuccessMsg carrying the bearer
// token and the parent model switches to the chat view.
package auth
