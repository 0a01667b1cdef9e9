// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// generalize.go - The "recipes generalize" command.

package cli

import (
	"fmt"

	"github.com/jeranaias/recipes/internal/config"
	"github.com/jeranaias/recipes/internal/scaffold"
)

// HandleGeneralize creates a cookiecutter template from an existing repo.
func HandleGeneralize(args []string) {
	p := NewArgParser(args)

	dst := p.Flag("dst")
	if dst == "" {
		fatal("--dst is required\nUsage: recipes generalize --src DIR --dst DIR [--template-name NAME]")
	}

	cfg := config.Global()
	result, err := scaffold.Generalize(scaffold.Args{
		Src:            p.FlagOrDefault(".", "src"),
		Dst:            dst,
		TemplateName:   p.Flag("template-name"),
		ExtraExcludes:  cfg.Scaffold.Excludes,
		TemplatePrefix: cfg.Scaffold.TemplatePrefix,
	})
	if err != nil {
		fatal("%v", err)
	}

	pkg := result.PackageName
	if pkg == "" {
		pkg = "(none)"
	}
	fmt.Println(SuccessStyle.Render("Template created: ") + result.TemplateRoot)
	fmt.Println(LabelStyle.Render("  package detected") + ValueStyle.Render(pkg))
	for _, key := range []string{"project_name", "project_slug", "package_name"} {
		fmt.Println(LabelStyle.Render("  "+key) + ValueStyle.Render(result.CookiecutterJSON[key]))
	}
}
