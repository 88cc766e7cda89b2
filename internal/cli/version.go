// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// version.go - Version reporting.
package cli

import (
	"fmt"
	"runtime"
)

// Set at build time via -ldflags.
var (
	Version   = "dev"
	BuildDate = "unknown"
)

func runVersion(args []string) error {
	fmt.Printf("ragchat %s (built %s, %s/%s)\n", Version, BuildDate, runtime.GOOS, runtime.GOARCH)
	return nil
}
