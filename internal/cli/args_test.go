// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"reflect"
	"testing"
)

func TestArgParser_Positional(t *testing.T) {
	p := NewArgParser([]string{"makefiles", "new/Makefile", "old/Makefile"})

	if p.Subcommand() != "makefiles" {
		t.Errorf("Expected subcommand 'makefiles', got %q", p.Subcommand())
	}
	want := []string{"makefiles", "new/Makefile", "old/Makefile"}
	if !reflect.DeepEqual(p.Positional(), want) {
		t.Errorf("Expected positional %v, got %v", want, p.Positional())
	}
}

func TestArgParser_FlagFormats(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"long with space", []string{"--output", "json"}},
		{"long with equals", []string{"--output=json"}},
		{"short with space", []string{"-o", "json"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewArgParser(tc.args)
			if got := p.Flag("output", "o"); got != "json" {
				t.Errorf("Expected 'json', got %q", got)
			}
		})
	}
}

func TestArgParser_BoolFlags(t *testing.T) {
	p := NewArgParser([]string{"--watch", "makefiles", "a", "b"})

	if !p.BoolFlag("watch") {
		t.Error("Expected watch flag to be set")
	}
	// watch never takes a value, so it must not swallow the subcommand.
	if p.Subcommand() != "makefiles" {
		t.Errorf("Expected subcommand 'makefiles', got %q", p.Subcommand())
	}
	if len(p.Positional()) != 3 {
		t.Errorf("Expected 3 positionals, got %v", p.Positional())
	}
}

func TestArgParser_BoolEquals(t *testing.T) {
	p := NewArgParser([]string{"--tui=true", "--quiet=false"})

	if !p.BoolFlag("tui") {
		t.Error("Expected tui=true")
	}
	if p.BoolFlag("quiet") {
		t.Error("Expected quiet=false")
	}
}

func TestArgParser_FlagOrDefault(t *testing.T) {
	p := NewArgParser([]string{"makefiles", "a", "b"})

	if got := p.FlagOrDefault("analysis", "output", "o"); got != "analysis" {
		t.Errorf("Expected default 'analysis', got %q", got)
	}

	p = NewArgParser([]string{"-o", "diff", "makefiles", "a", "b"})
	if got := p.FlagOrDefault("analysis", "output", "o"); got != "diff" {
		t.Errorf("Expected 'diff', got %q", got)
	}
}

func TestArgParser_MixedFlagsAndPositionals(t *testing.T) {
	p := NewArgParser([]string{"makefiles", "--output", "prompt", "new/Makefile", "--watch", "old/Makefile"})

	if got := p.Flag("output"); got != "prompt" {
		t.Errorf("Expected output 'prompt', got %q", got)
	}
	if !p.BoolFlag("watch") {
		t.Error("Expected watch flag")
	}
	want := []string{"makefiles", "new/Makefile", "old/Makefile"}
	if !reflect.DeepEqual(p.Positional(), want) {
		t.Errorf("Expected positional %v, got %v", want, p.Positional())
	}
}

func TestArgParser_Empty(t *testing.T) {
	p := NewArgParser(nil)

	if p.Subcommand() != "" {
		t.Errorf("Expected empty subcommand, got %q", p.Subcommand())
	}
	if len(p.Positional()) != 0 {
		t.Errorf("Expected no positionals, got %v", p.Positional())
	}
	if p.Flag("anything") != "" || p.BoolFlag("anything") {
		t.Error("Expected no flags")
	}
}
