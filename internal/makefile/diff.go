// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// diff.go - Structural comparison of two parsed Makefiles.

package makefile

import "slices"

// =============================================================================
// DIFF RESULT
// =============================================================================

// VariableChange records a variable present in both documents with a
// differing value or operator. Old is the target's side, New the source's.
type VariableChange struct {
	OldValue    string
	NewValue    string
	OldOperator string
	NewOperator string
}

// HelpChange records a help entry the target is missing or has stale.
// Old is empty when the target had no entry at all.
type HelpChange struct {
	Old string
	New string
}

// Result holds the structural differences between a source and a target
// document. It is derived data: created once per comparison and never
// mutated, so it is safe to hand to any number of renderers.
type Result struct {
	// Name keys present only in the source, in source order.
	NewTargets []string

	// Name keys present only in the target, in target order.
	RemovedTargets []string

	// Name keys present in both whose prerequisites or recipe differ,
	// in source order. Comment-only differences do not count.
	ModifiedTargets []string

	// Variables present in source but absent from target.
	NewVariables map[string]*Variable

	// Variables present in both with a differing operator or value.
	ChangedVariables map[string]VariableChange

	// Names in the source's .PHONY set absent from the target's, in
	// source first-seen order.
	NewPhony []string

	// Help entries the target is missing or has stale. Entries only the
	// target has are not reported; the comparison reads source -> target.
	HelpChanges map[string]HelpChange
}

// Empty reports whether the result carries no differences at all.
func (r *Result) Empty() bool {
	return len(r.NewTargets) == 0 &&
		len(r.RemovedTargets) == 0 &&
		len(r.ModifiedTargets) == 0 &&
		len(r.NewVariables) == 0 &&
		len(r.ChangedVariables) == 0 &&
		len(r.NewPhony) == 0 &&
		len(r.HelpChanges) == 0
}

// =============================================================================
// COMPARISON
// =============================================================================

// Diff compares a source document against a target document. It is a pure
// function: no side effects, and comparing a document against itself yields
// an empty result.
func Diff(source, target *Document) *Result {
	res := &Result{
		NewVariables:     make(map[string]*Variable),
		ChangedVariables: make(map[string]VariableChange),
		HelpChanges:      make(map[string]HelpChange),
	}

	for _, st := range source.Targets {
		tt := target.Target(st.NameKey)
		switch {
		case tt == nil:
			res.NewTargets = append(res.NewTargets, st.NameKey)
		case !slices.Equal(st.Prerequisites, tt.Prerequisites) ||
			!slices.Equal(st.Recipe, tt.Recipe):
			res.ModifiedTargets = append(res.ModifiedTargets, st.NameKey)
		}
	}
	for _, tt := range target.Targets {
		if source.Target(tt.NameKey) == nil {
			res.RemovedTargets = append(res.RemovedTargets, tt.NameKey)
		}
	}

	for _, name := range source.VarOrder {
		sv := source.Variables[name]
		tv, ok := target.Variables[name]
		if !ok {
			res.NewVariables[name] = sv
			continue
		}
		if sv.Op != tv.Op || sv.Value != tv.Value {
			res.ChangedVariables[name] = VariableChange{
				OldValue:    tv.Value,
				NewValue:    sv.Value,
				OldOperator: tv.Op,
				NewOperator: sv.Op,
			}
		}
	}

	for _, name := range source.Phony {
		if !target.HasPhony(name) {
			res.NewPhony = append(res.NewPhony, name)
		}
	}

	for name, desc := range source.HelpEntries {
		old, ok := target.HelpEntries[name]
		if !ok {
			res.HelpChanges[name] = HelpChange{New: desc}
		} else if old != desc {
			res.HelpChanges[name] = HelpChange{Old: old, New: desc}
		}
	}

	return res
}
