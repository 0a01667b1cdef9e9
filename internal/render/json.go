// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json.go - Machine-readable JSON rendering.
//
// The JSON schema is a compatibility surface for downstream consumers: the
// object always carries exactly these seven keys, present even when empty,
// so the shape is stable regardless of the comparison outcome.

package render

import (
	"encoding/json"

	"github.com/jeranaias/recipes/internal/makefile"
)

// =============================================================================
// JSON SCHEMA
// =============================================================================

type jsonVariable struct {
	Operator string   `json:"operator"`
	Value    string   `json:"value"`
	Comments []string `json:"comments"`
}

type jsonVariableChange struct {
	OldValue    string `json:"old_value"`
	NewValue    string `json:"new_value"`
	OldOperator string `json:"old_operator"`
	NewOperator string `json:"new_operator"`
}

type jsonHelpChange struct {
	Old string `json:"old"`
	New string `json:"new"`
}

type jsonResult struct {
	NewTargets       []string                      `json:"new_targets"`
	ModifiedTargets  []string                      `json:"modified_targets"`
	RemovedTargets   []string                      `json:"removed_targets"`
	NewVariables     map[string]jsonVariable       `json:"new_variables"`
	ChangedVariables map[string]jsonVariableChange `json:"changed_variables"`
	NewPhony         []string                      `json:"new_phony"`
	HelpChanges      map[string]jsonHelpChange     `json:"help_changes"`
}

// renderJSON produces the seven-key JSON object. Sequence-valued fields
// keep the result's ordering; empty collections render as [] or {}, never
// null.
func renderJSON(res *makefile.Result) (string, error) {
	out := jsonResult{
		NewTargets:       emptyIfNil(res.NewTargets),
		ModifiedTargets:  emptyIfNil(res.ModifiedTargets),
		RemovedTargets:   emptyIfNil(res.RemovedTargets),
		NewVariables:     make(map[string]jsonVariable, len(res.NewVariables)),
		ChangedVariables: make(map[string]jsonVariableChange, len(res.ChangedVariables)),
		NewPhony:         emptyIfNil(res.NewPhony),
		HelpChanges:      make(map[string]jsonHelpChange, len(res.HelpChanges)),
	}

	for name, v := range res.NewVariables {
		out.NewVariables[name] = jsonVariable{
			Operator: v.Op,
			Value:    v.Value,
			Comments: emptyIfNil(v.Comments),
		}
	}
	for name, ch := range res.ChangedVariables {
		out.ChangedVariables[name] = jsonVariableChange{
			OldValue:    ch.OldValue,
			NewValue:    ch.NewValue,
			OldOperator: ch.OldOperator,
			NewOperator: ch.NewOperator,
		}
	}
	for name, hc := range res.HelpChanges {
		out.HelpChanges[name] = jsonHelpChange{Old: hc.Old, New: hc.New}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
