// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config manages ragchat configuration.
//
// Configuration is stored in ~/.ragchat/config.toml (TOML preferred, JSON
// fallback for compatibility). Environment variables override file values,
// and a .env file in the working directory is honored before either.
//
// # Key Functions
//
//   - Load: read config from disk with env overrides and validation
//   - Save: atomically persist config as TOML
//   - Global: lazily-loaded process-wide config singleton
//
// # Precedence
//
//	defaults < config file < environment variables
//
// CONFIG: Comprehensive validation ensures safe configuration
package config
