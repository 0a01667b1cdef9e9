// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package makefile provides structural parsing and comparison of Makefiles.
//
// The parser is deliberately permissive: it extracts targets, variables,
// .PHONY declarations and self-documenting help entries from loosely
// structured input and never fails on malformed lines. The comparison is
// purely structural; it does not evaluate variables or run recipes.
package makefile

import "strings"

// =============================================================================
// DOCUMENT MODEL
// =============================================================================

// Variable is a single variable assignment.
type Variable struct {
	Name     string
	Op       string // one of =, :=, ?=, +=, !=
	Value    string
	Comments []string
}

// Target is a single rule: one or more names sharing a prerequisite list
// and a recipe.
type Target struct {
	// NameKey is the whitespace-normalized list of names the rule defines.
	// A rule may define several names sharing one recipe; the composite
	// list is the identity used for comparison.
	NameKey       string
	Names         []string
	Prerequisites []string
	Recipe        []string
	Comments      []string
}

// Document is the parsed representation of one Makefile.
type Document struct {
	// Targets in order of first appearance.
	Targets []*Target

	// Variables keyed by name. A repeated assignment overwrites the
	// earlier one, matching make's last-write-wins behavior.
	Variables map[string]*Variable

	// VarOrder records first-seen order of variable names so reports
	// stay deterministic.
	VarOrder []string

	// Phony holds names declared via .PHONY, in first-seen order.
	Phony []string

	// HelpEntries maps a target name to its "## name: description"
	// annotation. Entries are recorded even when the target itself is
	// never found, since annotation and rule may appear in any order.
	HelpEntries map[string]string

	// DefaultGoal is the value of .DEFAULT_GOAL, if declared.
	DefaultGoal string

	phonySet  map[string]bool
	targetIdx map[string]int
}

// Target returns the target with the given name key, or nil.
func (d *Document) Target(nameKey string) *Target {
	if i, ok := d.targetIdx[nameKey]; ok {
		return d.Targets[i]
	}
	return nil
}

// IsPhony reports whether any of the target's names was declared .PHONY
// in doc.
func (t *Target) IsPhony(doc *Document) bool {
	for _, name := range t.Names {
		if doc.phonySet[name] {
			return true
		}
	}
	return false
}

// HasPhony reports whether name appears in the document's .PHONY set.
func (d *Document) HasPhony(name string) bool {
	return d.phonySet[name]
}

func newDocument() *Document {
	return &Document{
		Variables:   make(map[string]*Variable),
		HelpEntries: make(map[string]string),
		phonySet:    make(map[string]bool),
		targetIdx:   make(map[string]int),
	}
}

func (d *Document) addPhony(names []string) {
	for _, name := range names {
		if !d.phonySet[name] {
			d.phonySet[name] = true
			d.Phony = append(d.Phony, name)
		}
	}
}

func (d *Document) setVariable(v *Variable) {
	if _, ok := d.Variables[v.Name]; !ok {
		d.VarOrder = append(d.VarOrder, v.Name)
	}
	d.Variables[v.Name] = v
}

func (d *Document) addTarget(t *Target) {
	if i, ok := d.targetIdx[t.NameKey]; ok {
		// A redefined rule replaces the earlier one in place.
		d.Targets[i] = t
		return
	}
	d.targetIdx[t.NameKey] = len(d.Targets)
	d.Targets = append(d.Targets, t)
}

// normalizeNameKey collapses the whitespace in a rule's name list.
func normalizeNameKey(names []string) string {
	return strings.Join(names, " ")
}
