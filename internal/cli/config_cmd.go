// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration command for the loom CLI.
//
// Command: config
// Short:   Show, locate, or initialize the configuration file
//
// Examples:
//   loom config              Same as "loom config show"
//   loom config show         Print the effective configuration
//   loom config path         Print the config file location
//   loom config init         Write a default config file
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/loom-tui/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(args *ArgParser) error {
	switch args.Subcommand() {
	case "", "show":
		return configShow()
	case "path":
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case "init":
		return configInit()
	default:
		return fmt.Errorf("unknown config subcommand %q (want show, path, or init)", args.Subcommand())
	}
}

func configShow() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("endpoint:       %s\n", cfg.Agent.Endpoint)
	fmt.Printf("api key:        %s\n", maskSecret(cfg.Agent.APIKey))
	fmt.Printf("timeout:        %ds\n", cfg.Agent.TimeoutSecs)
	fmt.Printf("max retries:    %d\n", cfg.Agent.MaxRetries)
	fmt.Printf("rate limit:     %d req/min\n", cfg.Agent.RequestsPerMinute)
	fmt.Printf("journal:        %v\n", cfg.Journal.Enabled)
	if cfg.Journal.Enabled {
		path, err := cfg.JournalPath()
		if err == nil {
			fmt.Printf("journal path:   %s\n", path)
		}
	}
	fmt.Printf("show inspector: %v\n", cfg.UI.ShowInspector)
	fmt.Printf("compact mode:   %v\n", cfg.UI.CompactMode)
	return nil
}

func configInit() error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}

	cfg := config.Default()
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// maskSecret hides all but the last four characters of a credential.
func maskSecret(s string) string {
	if s == "" {
		return "(unset)"
	}
	runes := []rune(s)
	if len(runes) <= 4 {
		return "****"
	}
	return "****" + string(runes[len(runes)-4:])
}
