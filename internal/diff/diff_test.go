// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestCompute_Identical(t *testing.T) {
	d := Compute("a\nb\nc\n", "a\nb\nc\n")

	if d.Stats.Additions != 0 || d.Stats.Deletions != 0 {
		t.Errorf("Expected no changes, got +%d -%d", d.Stats.Additions, d.Stats.Deletions)
	}
	if len(d.Hunks) != 0 {
		t.Errorf("Expected no hunks, got %d", len(d.Hunks))
	}
	if got := d.Unified("a", "b"); got != "" {
		t.Errorf("Expected empty unified output, got %q", got)
	}
}

func TestCompute_Stats(t *testing.T) {
	d := Compute("a\nb\nc\n", "a\nx\nc\nd\n")

	if d.Stats.Additions != 2 {
		t.Errorf("Expected 2 additions, got %d", d.Stats.Additions)
	}
	if d.Stats.Deletions != 1 {
		t.Errorf("Expected 1 deletion, got %d", d.Stats.Deletions)
	}
}

func TestCompute_EmptySides(t *testing.T) {
	d := Compute("", "a\nb\n")
	if d.Stats.Additions != 2 || d.Stats.Deletions != 0 {
		t.Errorf("empty old side: got +%d -%d", d.Stats.Additions, d.Stats.Deletions)
	}

	d = Compute("a\nb\n", "")
	if d.Stats.Additions != 0 || d.Stats.Deletions != 2 {
		t.Errorf("empty new side: got +%d -%d", d.Stats.Additions, d.Stats.Deletions)
	}
}

func TestSplitLines(t *testing.T) {
	if got := SplitLines(""); got != nil {
		t.Errorf("Expected nil for empty content, got %v", got)
	}
	if got := SplitLines("a\nb\n"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("trailing newline must not add an empty line, got %v", got)
	}
	if got := SplitLines("a\nb"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("missing final newline handled, got %v", got)
	}
}

func TestGroupIntoHunks_DistantChangesSplit(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&sb, "line-%02d\n", i)
	}
	old := sb.String()
	lines := SplitLines(old)
	lines[0] = "CHANGED-TOP"
	lines[29] = "CHANGED-BOTTOM"
	newContent := strings.Join(lines, "\n") + "\n"

	d := Compute(old, newContent)
	if len(d.Hunks) != 2 {
		t.Fatalf("Expected 2 hunks for changes 30 lines apart, got %d", len(d.Hunks))
	}
}

func TestGroupIntoHunks_NearbyChangesMerge(t *testing.T) {
	old := "a\nb\nc\nd\ne\nf\ng\n"
	newContent := "A\nb\nc\nd\ne\nf\nG\n"

	d := Compute(old, newContent)
	if len(d.Hunks) != 1 {
		t.Fatalf("Expected changes within context range to merge into 1 hunk, got %d", len(d.Hunks))
	}
}

func TestUnified_HeaderLabels(t *testing.T) {
	d := Compute("a\n", "b\n")
	out := d.Unified("old/Makefile", "new/Makefile")

	if !strings.HasPrefix(out, "--- old/Makefile\n+++ new/Makefile\n") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.Contains(out, "@@ -1,1 +1,1 @@") {
		t.Errorf("expected hunk header, got:\n%s", out)
	}
}

// applyHunks patches the old lines with the computed hunks. The result
// must reproduce the new content exactly; this is the property that
// makes the unified output a valid patch.
func applyHunks(oldLines []string, hunks []Hunk) []string {
	var out []string
	oldPos := 0 // 0-based index into oldLines

	for _, h := range hunks {
		start := h.OldStart - 1
		if h.OldCount == 0 {
			// Pure insertion anchors after OldStart.
			start = h.OldStart
		}
		out = append(out, oldLines[oldPos:start]...)
		oldPos = start

		for _, line := range h.Lines {
			switch line.Type {
			case LineContext:
				out = append(out, oldLines[oldPos])
				oldPos++
			case LineRemoved:
				oldPos++
			case LineAdded:
				out = append(out, line.Content)
			}
		}
	}
	out = append(out, oldLines[oldPos:]...)
	return out
}

func TestHunks_ApplyRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		old  string
		new  string
	}{
		{
			"modification",
			"one\ntwo\nthree\nfour\nfive\n",
			"one\nTWO\nthree\nfour\nfive\n",
		},
		{
			"append",
			"a\nb\n",
			"a\nb\nc\nd\n",
		},
		{
			"prepend",
			"a\nb\n",
			"zero\na\nb\n",
		},
		{
			"deletion",
			"a\nb\nc\nd\n",
			"a\nd\n",
		},
		{
			"makefile rewrite",
			".PHONY: build\nbuild:\n\tgo build ./...\n",
			".PHONY: build test\nbuild:\n\tgo build ./...\n\ntest:\n\tgo test ./...\n",
		},
		{
			"total replacement",
			"a\nb\nc\n",
			"x\ny\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Compute(tc.old, tc.new)
			got := applyHunks(SplitLines(tc.old), d.Hunks)
			want := SplitLines(tc.new)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("patched result mismatch:\ngot  %q\nwant %q", got, want)
			}
		})
	}
}

func TestLineType_Prefix(t *testing.T) {
	if LineContext.Prefix() != " " || LineAdded.Prefix() != "+" || LineRemoved.Prefix() != "-" {
		t.Error("unexpected line prefixes")
	}
}
