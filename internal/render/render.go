// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render formats a Makefile comparison result in one of four output
// forms: a human-readable analysis, a machine-readable JSON record, a
// textual unified diff, and a self-contained LLM prompt bundle.
//
// Renderers are pure functions over the comparison result and the two raw
// texts; they share no state and never touch the filesystem.
package render

import (
	"fmt"

	"github.com/jeranaias/recipes/internal/diff"
	"github.com/jeranaias/recipes/internal/makefile"
)

// =============================================================================
// FORMATS
// =============================================================================

// Format selects one of the four output forms.
type Format string

const (
	FormatAnalysis Format = "analysis"
	FormatJSON     Format = "json"
	FormatDiff     Format = "diff"
	FormatPrompt   Format = "prompt"
)

// Formats lists the valid output formats in display order.
var Formats = []Format{FormatAnalysis, FormatJSON, FormatDiff, FormatPrompt}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if s == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (valid: analysis, json, diff, prompt)", s)
}

// =============================================================================
// SOURCES
// =============================================================================

// Source is one comparison input: a display name (usually the file path as
// given on the command line) and the raw text. The renderers receive inputs
// by content so the core never reads files itself.
type Source struct {
	Name string
	Text string
}

// =============================================================================
// RENDERING
// =============================================================================

// Render formats the comparison result between src and tgt. The structural
// result is read by the analysis and json renderers; the diff and prompt
// renderers work from the raw texts. Rendering only fails for an unknown
// format.
func Render(res *makefile.Result, src, tgt Source, format Format) (string, error) {
	switch format {
	case FormatAnalysis:
		return renderAnalysis(res, src, tgt), nil
	case FormatJSON:
		return renderJSON(res)
	case FormatDiff:
		return UnifiedDiff(src, tgt), nil
	case FormatPrompt:
		return renderPrompt(src, tgt), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

// UnifiedDiff renders a standard unified diff between the target text (the
// "from" side) and the source text (the "to" side), labeled with the two
// original names. It works on raw text only, so it also shows
// formatting-only changes the structural comparison ignores.
func UnifiedDiff(src, tgt Source) string {
	return diff.Compute(tgt.Text, src.Text).Unified(tgt.Name, src.Name)
}
