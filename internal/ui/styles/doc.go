// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the ragchat TUI.
//
// All colors use Lip Gloss AdaptiveColor so the same palette works on
// light and dark terminals. Theme bundles every styled component; views
// receive a *Theme and never construct ad-hoc styles.
package styles
