// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the ragchat TUI.
package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// UNICODE: Rune-aware truncation preserves multi-byte characters.
// These functions count characters or display columns, never bytes, so they
// cannot corrupt UTF-8 strings by splitting mid-character.

// TruncateRunes truncates a string to a maximum number of runes (characters).
// If the string is truncated, "..." is appended.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// TruncateWidth truncates a string to a maximum display width.
// Double-width characters (CJK) count as 2 columns.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth > 3 {
		return runewidth.Truncate(s, maxWidth, "...")
	}
	return runewidth.Truncate(s, maxWidth, "")
}

// StringWidth returns the display width of a string in terminal columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// WordWrap wraps text to the given display width, breaking on spaces where
// possible. Words longer than the width are broken mid-word.
func WordWrap(s string, width int) string {
	if width <= 0 {
		return s
	}

	var out []string
	for _, line := range strings.Split(s, "\n") {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var (
		wrapped []string
		current strings.Builder
		curW    int
	)

	flush := func() {
		wrapped = append(wrapped, current.String())
		current.Reset()
		curW = 0
	}

	for _, word := range strings.Fields(line) {
		wordW := runewidth.StringWidth(word)

		// Break oversized words so a single long token cannot overflow.
		for wordW > width {
			if curW > 0 {
				flush()
			}
			head := runewidth.Truncate(word, width, "")
			wrapped = append(wrapped, head)
			word = strings.TrimPrefix(word, head)
			wordW = runewidth.StringWidth(word)
		}
		if word == "" {
			continue
		}

		sep := 0
		if curW > 0 {
			sep = 1
		}
		if curW+sep+wordW > width {
			flush()
			sep = 0
		}
		if sep == 1 {
			current.WriteByte(' ')
			curW++
		}
		current.WriteString(word)
		curW += wordW
	}
	if curW > 0 {
		flush()
	}
	if len(wrapped) == 0 {
		return []string{""}
	}
	return wrapped
}
