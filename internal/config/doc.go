// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// loom.
//
// Configuration is TOML with sensible defaults and environment
// variable overrides. File location: ~/.loom/config.toml.
package config
