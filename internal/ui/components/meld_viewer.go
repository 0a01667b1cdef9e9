// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides TUI components for the recipes CLI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/recipes/internal/makefile"
	"github.com/jeranaias/recipes/internal/ui/styles"
	"github.com/jeranaias/recipes/internal/util"
)

// =============================================================================
// MELD VIEWER
// =============================================================================

// MeldViewer is an interactive browser for a Makefile comparison: a
// structural summary on top and the scrollable unified diff below.
type MeldViewer struct {
	result  *makefile.Result
	srcName string
	tgtName string

	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// NewMeldViewer creates a viewer for a comparison result and its unified
// diff text.
func NewMeldViewer(res *makefile.Result, srcName, tgtName, unifiedDiff string) *MeldViewer {
	mv := &MeldViewer{
		result:  res,
		srcName: srcName,
		tgtName: tgtName,
	}
	mv.viewport = viewport.New(80, 20)
	mv.viewport.SetContent(colorizeDiff(unifiedDiff))
	return mv
}

// Init implements tea.Model.
func (mv *MeldViewer) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (mv *MeldViewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return mv, tea.Quit
		}
	case tea.WindowSizeMsg:
		mv.width = msg.Width
		mv.height = msg.Height
		headerHeight := lipgloss.Height(mv.renderHeader()) + lipgloss.Height(mv.renderSummary())
		footerHeight := 1
		mv.viewport.Width = msg.Width
		mv.viewport.Height = msg.Height - headerHeight - footerHeight
		if mv.viewport.Height < 3 {
			mv.viewport.Height = 3
		}
		mv.ready = true
	}

	var cmd tea.Cmd
	mv.viewport, cmd = mv.viewport.Update(msg)
	return mv, cmd
}

// View implements tea.Model.
func (mv *MeldViewer) View() string {
	if !mv.ready {
		return "Loading..."
	}
	return mv.renderHeader() + mv.renderSummary() + mv.viewport.View() + "\n" + mv.renderFooter()
}

// =============================================================================
// RENDERING
// =============================================================================

func (mv *MeldViewer) renderHeader() string {
	title := lipgloss.NewStyle().Foreground(styles.Purple).Bold(true).
		Render("Makefile Meld")
	names := lipgloss.NewStyle().Foreground(styles.Cyan).
		Render(fmt.Sprintf("%s -> %s", mv.srcName, mv.tgtName))
	return title + "  " + names + "\n"
}

func (mv *MeldViewer) renderSummary() string {
	entry := func(color lipgloss.AdaptiveColor, label string, names []string) string {
		if len(names) == 0 {
			return ""
		}
		line := fmt.Sprintf("%s (%d): %s", label, len(names), strings.Join(names, ", "))
		return lipgloss.NewStyle().Foreground(color).Render(util.TruncateRunes(line, 120)) + "\n"
	}

	var sb strings.Builder
	sb.WriteString(entry(styles.Green, "new targets", mv.result.NewTargets))
	sb.WriteString(entry(styles.Yellow, "modified targets", mv.result.ModifiedTargets))
	sb.WriteString(entry(styles.Red, "removed targets", mv.result.RemovedTargets))
	sb.WriteString(entry(styles.Green, "new variables", mapKeys(mv.result.NewVariables)))
	sb.WriteString(entry(styles.Yellow, "changed variables", mapKeys(mv.result.ChangedVariables)))
	sb.WriteString(entry(styles.Green, "new .PHONY", mv.result.NewPhony))

	if sb.Len() == 0 {
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.TextMuted).
			Render("no structural differences") + "\n")
	}

	separator := lipgloss.NewStyle().Foreground(styles.Overlay).
		Render(strings.Repeat("-", minInt(mv.width, 80)))
	return sb.String() + separator + "\n"
}

func (mv *MeldViewer) renderFooter() string {
	return lipgloss.NewStyle().Foreground(styles.TextMuted).
		Render(fmt.Sprintf("%3.0f%%  arrows/pgup/pgdn scroll - q quit", mv.viewport.ScrollPercent()*100))
}

// colorizeDiff styles unified diff lines by their prefix.
func colorizeDiff(unified string) string {
	if unified == "" {
		return lipgloss.NewStyle().Foreground(styles.TextMuted).
			Render("(files are textually identical)")
	}

	addStyle := lipgloss.NewStyle().Foreground(styles.Green)
	delStyle := lipgloss.NewStyle().Foreground(styles.Red)
	hunkStyle := lipgloss.NewStyle().Foreground(styles.Cyan)
	ctxStyle := lipgloss.NewStyle().Foreground(styles.Text)

	lines := strings.Split(strings.TrimSuffix(unified, "\n"), "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "@@"):
			out[i] = hunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			out[i] = addStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			out[i] = delStyle.Render(line)
		default:
			out[i] = ctxStyle.Render(line)
		}
	}
	return strings.Join(out, "\n")
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func minInt(a, b int) int {
	if a < b && a > 0 {
		return a
	}
	return b
}
