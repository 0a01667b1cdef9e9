// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - The "recipes config" command.

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/recipes/internal/config"
)

// HandleConfig shows or updates configuration.
func HandleConfig(args []string) {
	p := NewArgParser(args)

	switch p.Subcommand() {
	case "", "show":
		showConfig()
	case "set":
		pos := p.Positional()
		if len(pos) != 3 {
			fmt.Fprintln(os.Stderr, "Usage: recipes config set KEY VALUE")
			os.Exit(1)
		}
		setConfig(pos[1], pos[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", p.Subcommand())
		fmt.Fprintln(os.Stderr, "Usage: recipes config [show|set KEY VALUE]")
		os.Exit(1)
	}
}

func showConfig() {
	cfg := config.Global()

	fmt.Println(TitleStyle.Render("recipes configuration"))
	fmt.Println(MutedStyle.Render("  file: " + config.Path()))
	fmt.Println()
	fmt.Println(LabelStyle.Render("meld.default_output") + ValueStyle.Render(cfg.Meld.DefaultOutput))
	fmt.Println(LabelStyle.Render("meld.watch_debounce_ms") + ValueStyle.Render(fmt.Sprintf("%d", cfg.Meld.WatchDebounceMs)))
	fmt.Println(LabelStyle.Render("scaffold.template_prefix") + ValueStyle.Render(cfg.Scaffold.TemplatePrefix))
	fmt.Println(LabelStyle.Render("scaffold.excludes") + ValueStyle.Render(joinOrNone(cfg.Scaffold.Excludes)))
	fmt.Println(LabelStyle.Render("ui.color_mode") + ValueStyle.Render(cfg.UI.ColorMode))
}

func setConfig(key, value string) {
	cfg, err := config.Load()
	if err != nil {
		fatal("%v", err)
	}
	if err := cfg.Set(key, value); err != nil {
		fatal("%v", err)
	}
	if err := cfg.Save(); err != nil {
		fatal("%v", err)
	}
	config.SetGlobal(cfg)
	fmt.Println(SuccessStyle.Render("Updated ") + key + " = " + value)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
