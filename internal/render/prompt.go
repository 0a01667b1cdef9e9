// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prompt.go - Self-contained prompt bundle for LLM analysis.

package render

import (
	"fmt"
	"strings"
)

const promptPreamble = `I'm melding features from a source Makefile into a target Makefile.
Both files and their unified diff follow. Analyze the differences and
recommend which features to merge into the target.`

const promptEpilogue = `## Analysis Request

For each difference, evaluate:
1. **Compatibility**: Does the target project structure support this?
2. **Value**: Does this improve the target's workflow?
3. **Risk**: Any naming conflicts or dependency issues?
4. **Assignment operators**: Are ` + "`?=` vs `:=` vs `=`" + ` used correctly?
5. **Recommendation**: Include, exclude, or modify?

Please provide a structured analysis for merging these features.`

// renderPrompt builds the prompt bundle: preamble, both raw texts fenced
// and labeled, the unified diff, and the analysis request. No structural
// comparison data is embedded; the consumer reasons from the raw material.
func renderPrompt(src, tgt Source) string {
	var sb strings.Builder

	sb.WriteString(promptPreamble)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "SOURCE: %s\n", src.Name)
	fmt.Fprintf(&sb, "TARGET: %s\n", tgt.Name)
	sb.WriteString("\n## Full Source File\n\n")
	writeFenced(&sb, "makefile", src.Text)
	sb.WriteString("\n## Full Target File\n\n")
	writeFenced(&sb, "makefile", tgt.Text)
	sb.WriteString("\n## Unified Diff\n\n")
	writeFenced(&sb, "diff", UnifiedDiff(src, tgt))
	sb.WriteString("\n")
	sb.WriteString(promptEpilogue)
	sb.WriteString("\n")

	return sb.String()
}

func writeFenced(sb *strings.Builder, lang, content string) {
	sb.WriteString("```")
	sb.WriteString(lang)
	sb.WriteString("\n")
	sb.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("```\n")
}
