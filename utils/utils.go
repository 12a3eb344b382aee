package utils

import (
	"context"
	"fmt"
	"go/ast"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/tools/go/packages"
)

// LoadMode is the go/packages mode needed to scan annotated enums: syntax with comments plus
// type information for constant values
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedModule

// Ptr returns a pointer to the given value
func Ptr[T any](v T) *T {
	return &v
}

// DerefPtr returns the value pointed to by ptr, or defaultValue if ptr is nil
func DerefPtr[T any](ptr *T, defaultValue T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultValue
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ExpandGlobs expands patterns including recursive ** globs and negations, relative to dir.
// Example:
//
//	"./models/**/*.go", "!./models/test/**"
func ExpandGlobs(dir string, patterns ...string) ([]string, error) {
	include := []string{}
	exclude := []string{}

	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if after, ok := strings.CutPrefix(p, "!"); ok {
			exclude = append(exclude, absPattern(dir, after))
		} else {
			include = append(include, absPattern(dir, p))
		}
	}

	results := map[string]struct{}{}
	for _, pattern := range include {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			results[m] = struct{}{}
		}
	}

	for m := range results {
		for _, pattern := range exclude {
			excluded, err := doublestar.PathMatch(pattern, m)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			// a bare directory exclusion drops everything below it
			if excluded || strings.HasPrefix(m, strings.TrimSuffix(pattern, string(filepath.Separator))+string(filepath.Separator)) {
				delete(results, m)
				break
			}
		}
	}

	out := make([]string, 0, len(results))
	for k := range results {
		out = append(out, k)
	}
	sort.Strings(out)

	return out, nil
}

func absPattern(dir, pattern string) string {
	pattern = filepath.FromSlash(pattern)
	if filepath.IsAbs(pattern) || dir == "" {
		return filepath.Clean(pattern)
	}
	return filepath.Join(dir, pattern)
}

// UniqueDirs converts file paths to unique directories
func UniqueDirs(files []string) []string {
	dirs := map[string]struct{}{}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		dir := f
		if !info.IsDir() {
			dir = filepath.Dir(f)
		}
		dirs[dir] = struct{}{}
	}

	out := make([]string, 0, len(dirs))
	for d := range dirs {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// LoadPackages loads Go packages from import path patterns or file glob patterns (with exclusions).
// Relative patterns are resolved against dir; an empty dir means the working directory.
func LoadPackages(ctx context.Context, dir string, patterns ...string) ([]*packages.Package, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	if AllPatternsAreImportPaths(patterns) {
		return load(ctx, dir, patterns...)
	}

	files, err := ExpandGlobs(dir, patterns...)
	if err != nil {
		return nil, err
	}
	dirs := UniqueDirs(files)
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no directories found from patterns %v", patterns)
	}
	return load(ctx, dir, dirs...)
}

func load(ctx context.Context, dir string, patterns ...string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, err
	}
	return pkgs, nil
}

// AllPatternsAreImportPaths checks if all patterns look like Go import paths or
// go list patterns ("./...", "."), as opposed to file globs
func AllPatternsAreImportPaths(patterns []string) bool {
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if strings.HasPrefix(pattern, "!") ||
			strings.HasSuffix(pattern, ".go") ||
			strings.ContainsAny(pattern, "*?[") {
			return false
		}
	}
	return true
}

// ExtractCommentText extracts plain text from comment groups, removing comment markers and annotation lines
func ExtractCommentText(commentGroups []*ast.CommentGroup) string {
	var parts []string
	for _, group := range commentGroups {
		if group == nil {
			continue
		}
		for _, line := range strings.Split(group.Text(), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "@") {
				continue
			}
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

// IsBasicType checks if a type name represents a predeclared Go type that can back an enum
func IsBasicType(typeName string) bool {
	switch typeName {
	case "bool", "byte", "rune", "string",
		"int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"float32", "float64", "complex64", "complex128":
		return true
	}
	return false
}
