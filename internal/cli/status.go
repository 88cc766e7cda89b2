// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Backend health probe and session summary.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/session"
)

func runStatus(ctx context.Context, args []string) error {
	cfg := config.Global()
	client, store, err := newClient()
	if err != nil {
		return err
	}

	fmt.Println(headingStyle.Render("Backend"))
	fmt.Printf("  URL: %s\n", cfg.Backend.URL)

	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	health, err := client.Health(probeCtx)
	if err != nil {
		fmt.Println("  Status: " + errorStyle.Render("offline") + dimStyle.Render("  ("+session.FormatError(err)+")"))
	} else {
		state := successStyle.Render(health.Status)
		if health.Status != "healthy" || !health.DatabaseConnected {
			state = warningStyle.Render(health.Status)
		}
		fmt.Println("  Status: " + state)
		fmt.Printf("  Database connected: %v\n", health.DatabaseConnected)
		fmt.Printf("  Documents loaded: %v\n", health.DocumentsLoaded)
	}

	fmt.Println()
	fmt.Println(headingStyle.Render("Session"))
	token, err := store.Load()
	if err != nil || token == "" {
		fmt.Println("  Not logged in. Run 'ragchat login'.")
		return nil
	}

	fmt.Println("  Token: " + successStyle.Render("stored"))
	printTokenClaims(token)
	return nil
}

// printTokenClaims shows the token's expiry when it is a JWT. The
// signature is not checked: only the backend can do that, and this is
// purely informational.
func printTokenClaims(token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if time.Now().After(exp.Time) {
		fmt.Println("  Expiry: " + warningStyle.Render(exp.Format(time.RFC1123)+" (expired)"))
	} else {
		fmt.Printf("  Expiry: %s\n", exp.Format(time.RFC1123))
	}
}
