// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// parse.go - Permissive line-by-line Makefile parser.

package makefile

import (
	"regexp"
	"strings"
)

// =============================================================================
// LINE PATTERNS
// =============================================================================

var (
	commentPattern     = regexp.MustCompile(`^\s*#\s?(.*)$`)
	helpEntryPattern   = regexp.MustCompile(`^##\s*([A-Za-z0-9_./%-]+)\s*:\s*(.*)$`)
	phonyPattern       = regexp.MustCompile(`^\.PHONY\s*:\s*(.*)$`)
	defaultGoalPattern = regexp.MustCompile(`^\.DEFAULT_GOAL\s*:=\s*(.*)$`)
	varNamePattern     = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)
)

// assignOps are the recognized assignment operators, longest first so that
// ":=" is found before a bare "=".
var assignOps = []string{"?=", ":=", "+=", "!=", "="}

// =============================================================================
// PARSING
// =============================================================================

// Parse turns raw Makefile text into a Document. Parsing is best-effort:
// orphaned recipe lines and unrecognized directives are dropped silently,
// and Parse never fails.
func Parse(text string) *Document {
	doc := newDocument()

	var pendingComments []string
	var current *Target

	for _, line := range logicalLines(text) {
		if strings.TrimSpace(line) == "" {
			// A blank line detaches any pending comments and ends
			// the open recipe block.
			pendingComments = nil
			current = nil
			continue
		}

		// Recipe lines are checked before the comment pattern so that
		// tab-indented "# ..." lines stay part of the recipe.
		if strings.HasPrefix(line, "\t") {
			if current != nil {
				current.Recipe = append(current.Recipe, line[1:])
			}
			// Orphaned recipe lines (no open target) are dropped.
			pendingComments = nil
			continue
		}
		current = nil

		if m := commentPattern.FindStringSubmatch(line); m != nil {
			pendingComments = append(pendingComments, m[1])
			if hm := helpEntryPattern.FindStringSubmatch(strings.TrimSpace(line)); hm != nil {
				// Last annotation wins, same as repeated variable
				// assignments.
				doc.HelpEntries[hm[1]] = strings.TrimSpace(hm[2])
			}
			continue
		}

		if m := phonyPattern.FindStringSubmatch(line); m != nil {
			doc.addPhony(strings.Fields(m[1]))
			pendingComments = nil
			continue
		}

		if m := defaultGoalPattern.FindStringSubmatch(line); m != nil {
			doc.DefaultGoal = strings.TrimSpace(m[1])
			pendingComments = nil
			continue
		}

		if v := parseAssignment(line); v != nil {
			v.Comments = pendingComments
			doc.setVariable(v)
			pendingComments = nil
			continue
		}

		if t := parseRuleHeader(line); t != nil {
			t.Comments = pendingComments
			doc.addTarget(t)
			current = t
			pendingComments = nil
			continue
		}

		// Unrecognized directive (include, ifeq, export, ...): ignored
		// for structural purposes.
		pendingComments = nil
	}

	return doc
}

// parseAssignment returns a Variable if the line is a variable assignment,
// nil otherwise. A line is an assignment when an assignment operator appears
// before the first colon; this check is what keeps "VAR := x" apart from
// "target: dep" since both grammars share the colon.
func parseAssignment(line string) *Variable {
	opIdx, op := firstAssignOp(line)
	if opIdx < 0 {
		return nil
	}
	if colon := strings.IndexByte(line, ':'); colon >= 0 && colon < opIdx {
		return nil
	}

	name := strings.TrimSpace(line[:opIdx])
	if !varNamePattern.MatchString(name) {
		return nil
	}
	return &Variable{
		Name:  name,
		Op:    op,
		Value: strings.TrimSpace(line[opIdx+len(op):]),
	}
}

// firstAssignOp finds the earliest assignment operator in the line,
// preferring the longer two-character operators at equal positions.
func firstAssignOp(line string) (int, string) {
	best := -1
	bestOp := ""
	for _, op := range assignOps {
		if i := strings.Index(line, op); i >= 0 && (best < 0 || i < best) {
			best = i
			bestOp = op
		}
	}
	return best, bestOp
}

// parseRuleHeader returns a Target if the line matches the rule-header
// grammar: one or more whitespace-separated names, a colon, and an optional
// prerequisite list.
func parseRuleHeader(line string) *Target {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return nil
	}

	names := strings.Fields(line[:colon])
	if len(names) == 0 {
		return nil
	}

	return &Target{
		NameKey:       normalizeNameKey(names),
		Names:         names,
		Prerequisites: strings.Fields(line[colon+1:]),
	}
}

// =============================================================================
// LOGICAL LINES
// =============================================================================

// logicalLines splits text into lines and joins physical lines that end in
// an unescaped backslash into a single logical line, so classification sees
// continuations as one unit.
func logicalLines(text string) []string {
	physical := strings.Split(text, "\n")
	logical := make([]string, 0, len(physical))

	for i := 0; i < len(physical); i++ {
		line := strings.TrimSuffix(physical[i], "\r")
		for hasContinuation(line) && i+1 < len(physical) {
			i++
			next := strings.TrimSuffix(physical[i], "\r")
			line = strings.TrimRight(line[:len(line)-1], " \t") + " " + strings.TrimLeft(next, " \t")
		}
		if hasContinuation(line) {
			// Trailing continuation at EOF: drop the marker.
			line = strings.TrimRight(line[:len(line)-1], " \t")
		}
		logical = append(logical, line)
	}

	return logical
}

// hasContinuation reports whether the line ends in an unescaped backslash.
func hasContinuation(line string) bool {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}
