// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// meld.go - The "recipes meld makefiles" command.

package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/recipes/internal/config"
	"github.com/jeranaias/recipes/internal/makefile"
	"github.com/jeranaias/recipes/internal/render"
	"github.com/jeranaias/recipes/internal/ui/components"
)

// HandleMeld routes the meld command. The only file melding currently
// supported is Makefile comparison.
func HandleMeld(args []string) {
	p := NewArgParser(args)

	if p.Subcommand() != "makefiles" {
		fmt.Fprintln(os.Stderr, "Usage: recipes meld makefiles SOURCE TARGET [-o FORMAT] [--watch] [--tui]")
		os.Exit(1)
	}

	pos := p.Positional()
	if len(pos) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: recipes meld makefiles SOURCE TARGET [-o FORMAT] [--watch] [--tui]")
		os.Exit(1)
	}
	srcPath, tgtPath := pos[1], pos[2]

	formatName := p.FlagOrDefault(config.Global().Meld.DefaultOutput, "output", "o")
	format, err := render.ParseFormat(formatName)
	if err != nil {
		fatal("%v", err)
	}

	if p.BoolFlag("tui") {
		runMeldTUI(srcPath, tgtPath)
		return
	}

	if p.BoolFlag("watch") {
		if err := watchMeld(srcPath, tgtPath, format); err != nil {
			fatal("%v", err)
		}
		return
	}

	out, err := meldOnce(srcPath, tgtPath, format)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Println(out)
}

// meldOnce reads both files, compares them, and renders the result. File
// access is the one place a comparison can fail; the engine itself is
// total.
func meldOnce(srcPath, tgtPath string, format render.Format) (string, error) {
	src, err := readSource(srcPath)
	if err != nil {
		return "", err
	}
	tgt, err := readSource(tgtPath)
	if err != nil {
		return "", err
	}

	res := makefile.Diff(makefile.Parse(src.Text), makefile.Parse(tgt.Text))
	return render.Render(res, src, tgt, format)
}

// readSource loads one comparison input. Empty files are rejected here so
// the parser can stay permissive.
func readSource(path string) (render.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return render.Source{}, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if len(data) == 0 {
		return render.Source{}, fmt.Errorf("input file is empty: %s", path)
	}
	return render.Source{Name: path, Text: string(data)}, nil
}

// runMeldTUI opens the interactive comparison browser.
func runMeldTUI(srcPath, tgtPath string) {
	src, err := readSource(srcPath)
	if err != nil {
		fatal("%v", err)
	}
	tgt, err := readSource(tgtPath)
	if err != nil {
		fatal("%v", err)
	}

	res := makefile.Diff(makefile.Parse(src.Text), makefile.Parse(tgt.Text))
	viewer := components.NewMeldViewer(res, src.Name, tgt.Name, render.UnifiedDiff(src, tgt))

	if _, err := tea.NewProgram(viewer, tea.WithAltScreen()).Run(); err != nil {
		fatal("%v", err)
	}
}
