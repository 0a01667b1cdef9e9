// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command parsing and routing for the recipes CLI.
package cli

import (
	"fmt"
	"os"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdHelp Command = iota
	CmdMeld
	CmdGeneralize
	CmdConfig
	CmdVersion
)

const usageText = `recipes - structural tooling for project build files

recipes compares Makefiles structurally and turns existing repositories
into cookiecutter templates.

Usage:
  recipes meld makefiles SOURCE TARGET [flags]   Compare two Makefiles
  recipes generalize --src DIR --dst DIR         Create a cookiecutter template
  recipes config [show|set KEY VALUE]            Configuration
  recipes version                                Show version information
  recipes help                                   Show this help

Meld flags:
  -o, --output FORMAT   Output format: analysis (default), json, diff, prompt
      --watch           Re-run the comparison when either file changes
      --tui             Browse the comparison interactively

Examples:
  recipes meld makefiles new.mk Makefile
  recipes meld makefiles new.mk Makefile -o json | jq .new_targets
  recipes meld makefiles new.mk Makefile -o prompt | pbcopy
  recipes generalize --src . --dst ~/templates
`

// Parse inspects os.Args and returns the command to run plus its
// remaining arguments.
func Parse() (Command, []string) {
	args := os.Args[1:]
	if len(args) == 0 {
		return CmdHelp, nil
	}

	switch args[0] {
	case "meld":
		return CmdMeld, args[1:]
	case "generalize":
		return CmdGeneralize, args[1:]
	case "config":
		return CmdConfig, args[1:]
	case "version", "--version", "-v":
		return CmdVersion, args[1:]
	case "help", "--help", "-h":
		return CmdHelp, args[1:]
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		PrintUsage(os.Stderr)
		os.Exit(1)
		return CmdHelp, nil
	}
}

// PrintUsage writes the top-level help text.
func PrintUsage(w *os.File) {
	fmt.Fprint(w, usageText)
}

// HandleHelp prints usage and exits successfully.
func HandleHelp(args []string) {
	PrintUsage(os.Stdout)
}

// HandleVersion prints version information.
func HandleVersion(args []string) {
	fmt.Printf("recipes %s\n", Version)
	fmt.Printf("  commit: %s\n", GitCommit)
	fmt.Printf("  built:  %s\n", BuildDate)
}

// fatal prints a styled error to stderr and exits with status 1.
func fatal(format string, a ...any) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+fmt.Sprintf(format, a...))
	os.Exit(1)
}
