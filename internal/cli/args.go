// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Argument parsing for ragchat subcommands.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgParser holds the parsed form of a subcommand's arguments:
// --key value flags, --key boolean flags, and positional arguments.
type ArgParser struct {
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
}

// ParseArgs splits args into flags and positionals. Flags listed in
// boolNames take no value; every other --flag consumes the next argument.
func ParseArgs(args []string, boolNames ...string) (*ArgParser, error) {
	isBool := make(map[string]bool, len(boolNames))
	for _, n := range boolNames {
		isBool[n] = true
	}

	p := &ArgParser{
		flags:     make(map[string]string),
		boolFlags: make(map[string]bool),
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			p.positional = append(p.positional, arg)
			continue
		}

		name := strings.TrimPrefix(arg, "--")
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			p.flags[name[:eq]] = name[eq+1:]
			continue
		}
		if isBool[name] {
			p.boolFlags[name] = true
			continue
		}
		if i+1 >= len(args) {
			return nil, fmt.Errorf("flag --%s requires a value", name)
		}
		i++
		p.flags[name] = args[i]
	}

	return p, nil
}

// String returns the value of a --flag, or def when absent.
func (p *ArgParser) String(name, def string) string {
	if v, ok := p.flags[name]; ok {
		return v
	}
	return def
}

// Int returns the integer value of a --flag, or def when absent or invalid.
func (p *ArgParser) Int(name string, def int) int {
	v, ok := p.flags[name]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Bool reports whether a boolean --flag was given.
func (p *ArgParser) Bool(name string) bool {
	return p.boolFlags[name]
}

// Positional returns the positional arguments in order.
func (p *ArgParser) Positional() []string {
	return p.positional
}
