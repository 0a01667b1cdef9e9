// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// analysis.go - Human-readable multi-section analysis report.

package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/recipes/internal/makefile"
)

// operatorDescriptions explains make's assignment operators in the
// variable sections.
var operatorDescriptions = map[string]string{
	"=":  "recursive expansion",
	":=": "immediate expansion",
	"?=": "conditional assignment",
	"+=": "append",
	"!=": "shell assignment",
}

const analysisRule = "=================================================="

// nameColumn pads a target or variable name to a fixed column, accounting
// for display width.
func nameColumn(name string) string {
	return runewidth.FillRight(name, 20)
}

// renderAnalysis produces the multi-section report. Sections whose
// collection is empty are omitted entirely rather than printed as "none".
func renderAnalysis(res *makefile.Result, src, tgt Source) string {
	var lines []string
	lines = append(lines,
		"Makefile Meld Analysis",
		analysisRule,
		"",
		fmt.Sprintf("Source: %s", src.Name),
		fmt.Sprintf("Target: %s", tgt.Name),
		"",
	)

	if len(res.NewTargets) > 0 {
		lines = append(lines, fmt.Sprintf("NEW TARGETS (%d)", len(res.NewTargets)))
		for _, name := range res.NewTargets {
			desc := ""
			if hc, ok := res.HelpChanges[name]; ok {
				desc = " -> " + hc.New
			}
			lines = append(lines, fmt.Sprintf("  * %s%s", nameColumn(name), desc))
		}
		lines = append(lines, "")
	}

	if len(res.ModifiedTargets) > 0 {
		lines = append(lines, fmt.Sprintf("MODIFIED TARGETS (%d)", len(res.ModifiedTargets)))
		for _, name := range res.ModifiedTargets {
			lines = append(lines, fmt.Sprintf("  * %s", name))
		}
		lines = append(lines, "")
	}

	if len(res.RemovedTargets) > 0 {
		lines = append(lines, fmt.Sprintf("REMOVED TARGETS (%d)", len(res.RemovedTargets)))
		for _, name := range res.RemovedTargets {
			lines = append(lines, fmt.Sprintf("  * %s", name))
		}
		lines = append(lines, "")
	}

	if len(res.NewVariables) > 0 {
		lines = append(lines, fmt.Sprintf("NEW VARIABLES (%d)", len(res.NewVariables)))
		for _, name := range sortedKeys(res.NewVariables) {
			v := res.NewVariables[name]
			opDesc := operatorDescriptions[v.Op]
			if opDesc == "" {
				opDesc = v.Op
			}
			lines = append(lines, fmt.Sprintf("  * %s %s %s [%s]", name, v.Op, v.Value, opDesc))
		}
		lines = append(lines, "")
	}

	if len(res.ChangedVariables) > 0 {
		lines = append(lines, fmt.Sprintf("CHANGED VARIABLES (%d)", len(res.ChangedVariables)))
		for _, name := range sortedKeys(res.ChangedVariables) {
			ch := res.ChangedVariables[name]
			lines = append(lines, fmt.Sprintf("  * %s: %s -> %s", name, ch.OldValue, ch.NewValue))
			if ch.OldOperator != ch.NewOperator {
				lines = append(lines, fmt.Sprintf("    (operator changed: %s -> %s)",
					ch.OldOperator, ch.NewOperator))
			}
		}
		lines = append(lines, "")
	}

	if len(res.NewPhony) > 0 {
		lines = append(lines, fmt.Sprintf("NEW .PHONY DECLARATIONS (%d)", len(res.NewPhony)))
		lines = append(lines, fmt.Sprintf("  * %s", strings.Join(res.NewPhony, ", ")))
		lines = append(lines, "")
	}

	if len(res.HelpChanges) > 0 {
		lines = append(lines, fmt.Sprintf("HELP ENTRY CHANGES (%d)", len(res.HelpChanges)))
		for _, name := range sortedKeys(res.HelpChanges) {
			hc := res.HelpChanges[name]
			if hc.Old == "" {
				lines = append(lines, fmt.Sprintf("  * %s: %s", nameColumn(name), hc.New))
			} else {
				lines = append(lines, fmt.Sprintf("  * %s: %s (was: %s)", nameColumn(name), hc.New, hc.Old))
			}
		}
		lines = append(lines, "")
	}

	if res.Empty() {
		lines = append(lines, "No structural differences detected.", "")
	}

	lines = append(lines, analysisRule)
	return strings.Join(lines, "\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
