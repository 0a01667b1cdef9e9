// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scaffold converts an existing repository layout into a
// cookiecutter template: it detects the package directory, rewrites
// project-specific names to template variables in text files, and copies
// everything else verbatim while honoring .gitignore and .gitattributes.
package scaffold

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/jeranaias/recipes/internal/util"
)

// =============================================================================
// EXCLUSIONS AND TEMPLATABLE FILES
// =============================================================================

// defaultExcludes are directory and file names never copied into a
// template.
var defaultExcludes = map[string]bool{
	".DS_Store":     true,
	".coverage":     true,
	".direnv":       true,
	".git":          true,
	".idea":         true,
	".mypy_cache":   true,
	".pytest_cache": true,
	".ruff_cache":   true,
	".venv":         true,
	".vscode":       true,
	"__pycache__":   true,
	"build":         true,
	"dist":          true,
	"node_modules":  true,
	"uv.lock":       true,
}

// templateExtensions are file suffixes treated as text eligible for
// variable substitution.
var templateExtensions = map[string]bool{
	".json": true,
	".md":   true,
	".py":   true,
	".toml": true,
	".txt":  true,
	".yaml": true,
	".yml":  true,
	".cfg":  true,
	".ini":  true,
}

// templateFilenames are extensionless files treated as text.
var templateFilenames = map[string]bool{
	".envrc":         true,
	".gitattributes": true,
	".gitignore":     true,
	"Dockerfile":     true,
	"Makefile":       true,
	"Procfile":       true,
	"Justfile":       true,
}

// =============================================================================
// ARGS AND RESULT
// =============================================================================

// Args are the inputs for a generalize run.
type Args struct {
	// Src is the repository to generalize.
	Src string
	// Dst is the directory the template is created under.
	Dst string
	// TemplateName overrides the derived "cookiecutter-<slug>" name.
	TemplateName string
	// ExtraExcludes extends the built-in exclusion list.
	ExtraExcludes []string
	// TemplatePrefix is used when deriving the template name.
	// Empty means "cookiecutter-".
	TemplatePrefix string
}

// Result describes a successfully created template.
type Result struct {
	TemplateRoot     string
	CookiecutterJSON map[string]string
	PackageName      string
}

// =============================================================================
// PACKAGE DETECTION
// =============================================================================

// DetectPackageDir finds the first top-level directory of src containing
// an __init__.py, which marks the importable package in Python repo
// layouts. Returns "" when none exists.
func DetectPackageDir(src string) string {
	entries, err := os.ReadDir(src)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		init := filepath.Join(src, entry.Name(), "__init__.py")
		if _, err := os.Stat(init); err == nil {
			return entry.Name()
		}
	}
	return ""
}

// =============================================================================
// GENERALIZE
// =============================================================================

// Generalize creates a cookiecutter template from the repository at
// args.Src. The destination template directory must not already exist.
func Generalize(args Args) (*Result, error) {
	src, err := filepath.Abs(args.Src)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source: %w", err)
	}
	dstRoot, err := filepath.Abs(args.Dst)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination: %w", err)
	}
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("source is not a directory: %s", src)
	}

	packageName := DetectPackageDir(src)

	projectSlug := filepath.Base(src)
	projectName := titleCase(projectSlug)
	pkg := packageName
	if pkg == "" {
		pkg = strings.ReplaceAll(projectSlug, "-", "_")
	}

	prefix := args.TemplatePrefix
	if prefix == "" {
		prefix = "cookiecutter-"
	}
	templateName := args.TemplateName
	if templateName == "" {
		templateName = prefix + projectSlug
	}
	templateRoot := filepath.Join(dstRoot, templateName)

	if _, err := os.Stat(templateRoot); err == nil {
		return nil, fmt.Errorf("template folder already exists: %s", templateRoot)
	}
	if err := os.MkdirAll(templateRoot, 0755); err != nil {
		return nil, fmt.Errorf("failed to create template root: %w", err)
	}

	excludes := make(map[string]bool, len(defaultExcludes)+len(args.ExtraExcludes))
	for name := range defaultExcludes {
		excludes[name] = true
	}
	for _, name := range args.ExtraExcludes {
		excludes[name] = true
	}

	gitignoreSpec := loadGitignore(src)
	binaryPatterns := loadGitattributesBinaries(src)

	ccJSON := map[string]string{
		"project_name": projectName,
		"project_slug": projectSlug,
		"package_name": pkg,
	}
	data, err := json.MarshalIndent(ccJSON, "", "  ")
	if err != nil {
		return nil, err
	}
	ccPath := filepath.Join(templateRoot, "cookiecutter.json")
	if err := util.AtomicWriteFile(ccPath, append(data, '\n'), 0644); err != nil {
		return nil, fmt.Errorf("failed to write cookiecutter.json: %w", err)
	}

	projectRoot := filepath.Join(templateRoot, "{{cookiecutter.project_slug}}")
	if err := os.MkdirAll(projectRoot, 0755); err != nil {
		return nil, err
	}

	sub := newSubstituter(packageName)

	walkErr := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // best effort: unreadable entries are skipped
		}
		rel, err := filepath.Rel(src, path)
		if err != nil || rel == "." {
			return nil
		}
		relSlash := filepath.ToSlash(rel)

		if d.IsDir() {
			if excludes[d.Name()] {
				return filepath.SkipDir
			}
			if gitignoreSpec != nil && gitignoreSpec.MatchesPath(relSlash+"/") {
				return filepath.SkipDir
			}
			dest := filepath.Join(projectRoot, templatePath(rel, packageName))
			return os.MkdirAll(dest, 0755)
		}

		if excludes[d.Name()] {
			return nil
		}
		if gitignoreSpec != nil && gitignoreSpec.MatchesPath(relSlash) {
			return nil
		}

		dest := filepath.Join(projectRoot, templatePath(rel, packageName))
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		return processFile(path, dest, relSlash, sub, binaryPatterns)
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to copy tree: %w", walkErr)
	}

	return &Result{
		TemplateRoot:     templateRoot,
		CookiecutterJSON: ccJSON,
		PackageName:      packageName,
	}, nil
}

// =============================================================================
// FILE PROCESSING
// =============================================================================

// processFile writes one file into the template, substituting template
// variables in text files and byte-copying everything else.
func processFile(srcFile, destFile, relFile string, sub *substituter, binaryPatterns []string) error {
	if matchesBinaryPattern(relFile, binaryPatterns) || !isTemplatable(srcFile) {
		return copyFile(srcFile, destFile)
	}

	data, err := os.ReadFile(srcFile)
	if err != nil {
		return err
	}
	if !utf8.Valid(data) {
		// Declared text but not decodable: copy untouched.
		return copyFile(srcFile, destFile)
	}

	content := sub.apply(string(data), filepath.Base(srcFile))
	return os.WriteFile(destFile, []byte(content), filePerm(srcFile))
}

func isTemplatable(path string) bool {
	return templateExtensions[filepath.Ext(path)] || templateFilenames[filepath.Base(path)]
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm(src))
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

func filePerm(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}

// templatePath maps the package directory name inside a relative path to
// the cookiecutter variable.
func templatePath(rel, packageName string) string {
	if packageName == "" {
		return rel
	}
	parts := strings.Split(rel, string(filepath.Separator))
	for i, part := range parts {
		if part == packageName {
			parts[i] = "{{cookiecutter.package_name}}"
		}
	}
	return filepath.Join(parts...)
}

// =============================================================================
// GITIGNORE / GITATTRIBUTES
// =============================================================================

func loadGitignore(src string) *ignore.GitIgnore {
	data, err := os.ReadFile(filepath.Join(src, ".gitignore"))
	if err != nil {
		return nil
	}
	return ignore.CompileIgnoreLines(strings.Split(string(data), "\n")...)
}

// loadGitattributesBinaries collects patterns marked "binary" in
// .gitattributes; matching files are never treated as templatable text.
func loadGitattributesBinaries(src string) []string {
	data, err := os.ReadFile(filepath.Join(src, ".gitattributes"))
	if err != nil {
		return nil
	}
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		for _, attr := range fields[1:] {
			if attr == "binary" {
				patterns = append(patterns, fields[0])
				break
			}
		}
	}
	return patterns
}

func matchesBinaryPattern(relFile string, patterns []string) bool {
	for _, pattern := range patterns {
		if ignore.CompileIgnoreLines(pattern).MatchesPath(relFile) {
			return true
		}
	}
	return false
}

// =============================================================================
// SUBSTITUTIONS
// =============================================================================

// substituter rewrites project-specific values to cookiecutter variables.
type substituter struct {
	packageRe *regexp.Regexp
}

var (
	pyprojectNameRe = regexp.MustCompile(`(name\s*=\s*)"[^"]+"`)
	pyprojectDescRe = regexp.MustCompile(`(description\s*=\s*)"[^"]+"`)
	readmeTitleRe   = regexp.MustCompile(`(?m)^#\s+.+`)
)

func newSubstituter(packageName string) *substituter {
	s := &substituter{}
	if packageName != "" {
		s.packageRe = regexp.MustCompile(`\b` + regexp.QuoteMeta(packageName) + `\b`)
	}
	return s
}

func (s *substituter) apply(content, fileName string) string {
	if s.packageRe != nil {
		content = s.packageRe.ReplaceAllString(content, "{{cookiecutter.package_name}}")
	}

	switch fileName {
	case "pyproject.toml":
		content = replaceFirst(pyprojectNameRe, content, `$1"{{cookiecutter.project_slug}}"`)
		content = replaceFirst(pyprojectDescRe, content, `$1"My take on {{cookiecutter.project_name}}"`)
	case "README.md":
		content = replaceFirst(readmeTitleRe, content, "# {{cookiecutter.package_name}}")
	}

	return content
}

// replaceFirst applies re once, leaving later matches untouched.
func replaceFirst(re *regexp.Regexp, content, repl string) string {
	done := false
	return re.ReplaceAllStringFunc(content, func(m string) string {
		if done {
			return m
		}
		done = true
		return re.ReplaceAllString(m, repl)
	})
}

// titleCase converts "my-cool_project" to "My Cool Project".
func titleCase(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
