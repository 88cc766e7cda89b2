// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCmd  Command
		wantRest []string
	}{
		{"no args means TUI", nil, CmdTUI, nil},
		{"ask with question", []string{"ask", "what", "is", "this"}, CmdAsk, []string{"what", "is", "this"}},
		{"chat", []string{"chat"}, CmdChat, []string{}},
		{"login", []string{"login"}, CmdLogin, []string{}},
		{"logout", []string{"logout"}, CmdLogout, []string{}},
		{"upload with files", []string{"upload", "a.pdf", "b.docx"}, CmdUpload, []string{"a.pdf", "b.docx"}},
		{"status", []string{"status"}, CmdStatus, []string{}},
		{"documents clear", []string{"documents", "clear"}, CmdDocuments, []string{"clear"}},
		{"history search", []string{"history", "search", "tax"}, CmdHistory, []string{"search", "tax"}},
		{"version word", []string{"version"}, CmdVersion, []string{}},
		{"version flag", []string{"--version"}, CmdVersion, []string{}},
		{"help flag", []string{"-h"}, CmdHelp, []string{}},
		{"unknown falls back to help", []string{"bogus"}, CmdHelp, []string{"bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, rest := Parse(tt.args)
			if cmd != tt.wantCmd {
				t.Errorf("Parse(%v) command = %q, want %q", tt.args, cmd, tt.wantCmd)
			}
			if len(rest) != len(tt.wantRest) {
				t.Fatalf("Parse(%v) rest = %v, want %v", tt.args, rest, tt.wantRest)
			}
			for i := range rest {
				if rest[i] != tt.wantRest[i] {
					t.Errorf("Parse(%v) rest[%d] = %q, want %q", tt.args, i, rest[i], tt.wantRest[i])
				}
			}
		})
	}
}

func TestParseArgs(t *testing.T) {
	p, err := ParseArgs([]string{"--limit", "5", "search", "tax", "--yes"}, "yes")
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if got := p.Int("limit", 20); got != 5 {
		t.Errorf("limit = %d, want 5", got)
	}
	if !p.Bool("yes") {
		t.Error("yes flag not detected")
	}
	pos := p.Positional()
	if len(pos) != 2 || pos[0] != "search" || pos[1] != "tax" {
		t.Errorf("positional = %v, want [search tax]", pos)
	}
}

func TestParseArgsEqualsForm(t *testing.T) {
	p, err := ParseArgs([]string{"--limit=7"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if got := p.Int("limit", 20); got != 7 {
		t.Errorf("limit = %d, want 7", got)
	}
}

func TestParseArgsMissingValue(t *testing.T) {
	if _, err := ParseArgs([]string{"--limit"}); err == nil {
		t.Error("expected error for flag without value")
	}
}

func TestParseArgsDefaults(t *testing.T) {
	p, err := ParseArgs(nil)
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if got := p.String("theme", "auto"); got != "auto" {
		t.Errorf("default string = %q, want auto", got)
	}
	if got := p.Int("limit", 20); got != 20 {
		t.Errorf("default int = %d, want 20", got)
	}
	if p.Bool("yes") {
		t.Error("unset bool flag reported true")
	}
}

func TestParseArgsBadIntFallsBack(t *testing.T) {
	p, err := ParseArgs([]string{"--limit", "many"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if got := p.Int("limit", 20); got != 20 {
		t.Errorf("invalid int = %d, want default 20", got)
	}
}
