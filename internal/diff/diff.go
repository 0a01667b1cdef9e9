// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff provides line-based diff computation between two texts and
// formatting as a standard unified diff.
package diff

import (
	"fmt"
	"strings"
)

// =============================================================================
// DIFF TYPES
// =============================================================================

// LineType classifies a line in a diff.
type LineType int

const (
	// LineContext is an unchanged line present on both sides.
	LineContext LineType = iota
	// LineAdded is a line only present on the new side.
	LineAdded
	// LineRemoved is a line only present on the old side.
	LineRemoved
)

// Prefix returns the unified-diff prefix character for this line type.
func (t LineType) Prefix() string {
	switch t {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	default:
		return " "
	}
}

// Line is a single line in a computed diff.
type Line struct {
	Type    LineType
	Content string
	OldLine int // Line number on the old side (0 if added)
	NewLine int // Line number on the new side (0 if removed)
}

// Hunk is a contiguous run of changes with surrounding context.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Stats holds line counts for a diff.
type Stats struct {
	Additions int
	Deletions int
}

// Diff is a complete line diff between two texts.
type Diff struct {
	OldContent string
	NewContent string
	Lines      []Line
	Hunks      []Hunk
	Stats      Stats
}

// =============================================================================
// DIFF COMPUTATION
// =============================================================================

// ContextLines is the number of unchanged lines kept around each hunk.
const ContextLines = 3

// Compute creates a line diff between old and new content using an
// LCS-based comparison.
func Compute(oldContent, newContent string) *Diff {
	d := &Diff{
		OldContent: oldContent,
		NewContent: newContent,
	}

	oldLines := SplitLines(oldContent)
	newLines := SplitLines(newContent)

	d.Lines = computeLineDiff(oldLines, newLines)
	d.Hunks = groupIntoHunks(d.Lines)

	for _, line := range d.Lines {
		switch line.Type {
		case LineAdded:
			d.Stats.Additions++
		case LineRemoved:
			d.Stats.Deletions++
		}
	}

	return d
}

// SplitLines splits content into lines without a trailing empty element
// for content ending in a final newline.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// computeLineDiff walks both sides against their longest common
// subsequence, emitting removed, added and context lines in order.
func computeLineDiff(oldLines, newLines []string) []Line {
	lcs := computeLCS(oldLines, newLines)

	var result []Line
	oldIdx, newIdx, lcsIdx := 0, 0, 0

	for oldIdx < len(oldLines) || newIdx < len(newLines) {
		switch {
		case lcsIdx < len(lcs) && oldIdx < len(oldLines) && newIdx < len(newLines) &&
			oldLines[oldIdx] == lcs[lcsIdx] && newLines[newIdx] == lcs[lcsIdx]:
			result = append(result, Line{
				Type:    LineContext,
				Content: oldLines[oldIdx],
				OldLine: oldIdx + 1,
				NewLine: newIdx + 1,
			})
			oldIdx++
			newIdx++
			lcsIdx++
		case oldIdx < len(oldLines) && (lcsIdx >= len(lcs) || oldLines[oldIdx] != lcs[lcsIdx]):
			result = append(result, Line{
				Type:    LineRemoved,
				Content: oldLines[oldIdx],
				OldLine: oldIdx + 1,
			})
			oldIdx++
		default:
			result = append(result, Line{
				Type:    LineAdded,
				Content: newLines[newIdx],
				NewLine: newIdx + 1,
			})
			newIdx++
		}
	}

	return result
}

// computeLCS computes the longest common subsequence of two line slices
// with a standard dynamic-programming table.
func computeLCS(a, b []string) []string {
	m, n := len(a), len(b)
	if m == 0 || n == 0 {
		return nil
	}

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	lcs := make([]string, 0, dp[m][n])
	i, j := m, n
	for i > 0 && j > 0 {
		if a[i-1] == b[j-1] {
			lcs = append(lcs, a[i-1])
			i--
			j--
		} else if dp[i-1][j] >= dp[i][j-1] {
			i--
		} else {
			j--
		}
	}
	for l, r := 0, len(lcs)-1; l < r; l, r = l+1, r-1 {
		lcs[l], lcs[r] = lcs[r], lcs[l]
	}
	return lcs
}

// =============================================================================
// HUNK GROUPING
// =============================================================================

// groupIntoHunks groups changed lines into hunks, each padded with up to
// ContextLines of unchanged lines. Changes closer together than twice the
// context distance share a hunk.
func groupIntoHunks(lines []Line) []Hunk {
	type span struct{ start, end int }
	var spans []span
	for i, line := range lines {
		if line.Type == LineContext {
			continue
		}
		if len(spans) > 0 && i-spans[len(spans)-1].end <= 2*ContextLines {
			spans[len(spans)-1].end = i
		} else {
			spans = append(spans, span{start: i, end: i})
		}
	}
	if len(spans) == 0 {
		return nil
	}

	hunks := make([]Hunk, 0, len(spans))
	for _, sp := range spans {
		start := sp.start - ContextLines
		if start < 0 {
			start = 0
		}
		end := sp.end + ContextLines
		if end > len(lines)-1 {
			end = len(lines) - 1
		}

		h := Hunk{Lines: lines[start : end+1]}
		for _, line := range h.Lines {
			if line.OldLine > 0 {
				if h.OldStart == 0 {
					h.OldStart = line.OldLine
				}
				h.OldCount++
			}
			if line.NewLine > 0 {
				if h.NewStart == 0 {
					h.NewStart = line.NewLine
				}
				h.NewCount++
			}
		}
		// A hunk with no lines on one side anchors at the position
		// after which the change applies, per unified diff convention.
		if h.OldCount == 0 {
			h.OldStart = precedingOldLine(lines, start)
		}
		if h.NewCount == 0 {
			h.NewStart = precedingNewLine(lines, start)
		}
		hunks = append(hunks, h)
	}

	return hunks
}

func precedingOldLine(lines []Line, idx int) int {
	for i := idx - 1; i >= 0; i-- {
		if lines[i].OldLine > 0 {
			return lines[i].OldLine
		}
	}
	return 0
}

func precedingNewLine(lines []Line, idx int) int {
	for i := idx - 1; i >= 0; i-- {
		if lines[i].NewLine > 0 {
			return lines[i].NewLine
		}
	}
	return 0
}

// =============================================================================
// UNIFIED DIFF FORMAT
// =============================================================================

// Unified renders the diff in standard unified format, labeling the old
// side with fromLabel and the new side with toLabel. An empty diff renders
// as an empty string.
func (d *Diff) Unified(fromLabel, toLabel string) string {
	if len(d.Hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n", fromLabel)
	fmt.Fprintf(&sb, "+++ %s\n", toLabel)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n",
			hunk.OldStart, hunk.OldCount,
			hunk.NewStart, hunk.NewCount)
		for _, line := range hunk.Lines {
			sb.WriteString(line.Type.Prefix())
			sb.WriteString(line.Content)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
