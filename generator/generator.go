// Package generator writes the expansions of a scan next to their source files, one generated
// file per annotated source file.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/pablor21/boollike/config"
	"github.com/pablor21/boollike/logger"
	"github.com/pablor21/boollike/types"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"
)

// File is one generated output file
type File struct {
	Path    string
	Source  string // annotated source file the declarations extend
	Package string
	Types   []string
	Content []byte
}

// Plan is the set of files a run produces and the previously generated files it replaces
type Plan struct {
	Files []*File
	Stale []string // generated files no longer backed by an annotated type
}

// Summary reports what Write did
type Summary struct {
	Written   []string
	Unchanged []string
	Removed   []string
}

// Drift is a generated file whose content on disk differs from the planned content
type Drift struct {
	Path string
	Diff string // unified diff from disk to planned content
}

type Generator struct {
	cfg *config.Config
	log logger.Logger
}

func New(cfg *config.Config, log logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{cfg: cfg, log: log}
}

// OutputPath returns the generated file for a source file: answer.go -> answer_boollike.go
func (g *Generator) OutputPath(source string) string {
	return strings.TrimSuffix(source, ".go") + g.cfg.Generation.FileSuffix
}

// Plan renders the expansions of pkgs, grouped by the file declaring each type. Expansions of
// packages not in pkgs are ignored, and so are the generated files of those packages.
func (g *Generator) Plan(pkgs []*types.PackageInfo, results []*types.ExpansionResult) (*Plan, error) {
	bySource := make(map[string][]*types.ExpansionResult)
	for _, r := range results {
		bySource[r.Type.File] = append(bySource[r.Type.File], r)
	}

	plan := &Plan{}
	for _, pkg := range pkgs {
		planned := make(map[string]bool)
		for _, src := range sourcesOf(pkg, bySource) {
			rs := bySource[src]
			sort.SliceStable(rs, func(i, j int) bool { return rs[i].Type.Position.Offset < rs[j].Type.Position.Offset })

			if g.OutputPath(src) == src {
				return nil, fmt.Errorf("%s: generated file would overwrite its source, check generation.file_suffix", src)
			}
			f := &File{
				Path:    g.OutputPath(src),
				Source:  src,
				Package: pkg.Name,
			}
			for _, r := range rs {
				f.Types = append(f.Types, r.Type.Name)
			}
			content, err := g.render(pkg.Name, rs)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", src, err)
			}
			f.Content = content
			planned[f.Path] = true
			plan.Files = append(plan.Files, f)
		}

		stale, err := g.staleFiles(pkg.Dir, planned)
		if err != nil {
			return nil, err
		}
		plan.Stale = append(plan.Stale, stale...)
	}
	return plan, nil
}

// sourcesOf returns the files of pkg that declare expanded types, in file order
func sourcesOf(pkg *types.PackageInfo, bySource map[string][]*types.ExpansionResult) []string {
	var out []string
	for _, ti := range pkg.Types {
		if _, ok := bySource[ti.File]; ok && !contains(out, ti.File) {
			out = append(out, ti.File)
		}
	}
	sort.Strings(out)
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (g *Generator) render(pkgName string, results []*types.ExpansionResult) ([]byte, error) {
	var decls []dst.Decl
	for _, r := range results {
		decls = append(decls, r.Decls...)
	}

	var buf bytes.Buffer
	buf.WriteString("// " + g.cfg.Generation.Header + "\n\n")
	if err := decorator.Fprint(&buf, &dst.File{Name: dst.NewIdent(pkgName), Decls: decls}); err != nil {
		return nil, fmt.Errorf("error formatting generated code: %w", err)
	}
	return append(bytes.TrimRight(buf.Bytes(), "\n"), '\n'), nil
}

// staleFiles lists the files in dir written by this generator that are not planned. Generated
// files of other tools sharing the suffix are left alone.
func (g *Generator) staleFiles(dir string, planned map[string]bool) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*"+g.cfg.Generation.FileSuffix))
	if err != nil {
		return nil, err
	}
	var stale []string
	for _, path := range matches {
		if planned[path] {
			continue
		}
		if g.isOwnOutput(path) {
			stale = append(stale, path)
		}
	}
	return stale, nil
}

// isOwnOutput reports whether the first line of the file at path is this generator's header
func (g *Generator) isOwnOutput(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	line, _, _ := bytes.Cut(content, []byte("\n"))
	return string(bytes.TrimRight(line, "\r")) == "// "+g.cfg.Generation.Header
}

// Write writes the planned files concurrently and removes stale ones. Files whose content is
// already up to date are left untouched.
func (g *Generator) Write(ctx context.Context, plan *Plan) (*Summary, error) {
	var (
		mu  sync.Mutex
		sum Summary
	)
	record := func(list *[]string, path string) {
		mu.Lock()
		*list = append(*list, path)
		mu.Unlock()
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.cfg.Generation.Concurrency, 1))

	for _, f := range plan.Files {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			old, err := os.ReadFile(f.Path)
			if err == nil && bytes.Equal(old, f.Content) {
				g.log.Debug("generated file is up to date", "file", f.Path)
				record(&sum.Unchanged, f.Path)
				return nil
			}
			if err := os.WriteFile(f.Path, f.Content, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", f.Path, err)
			}
			g.log.Info("generated", "file", f.Path, "types", strings.Join(f.Types, ","))
			record(&sum.Written, f.Path)
			return nil
		})
	}
	for _, path := range plan.Stale {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to remove %s: %w", path, err)
			}
			g.log.Info("removed stale generated file", "file", path)
			record(&sum.Removed, path)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(sum.Written)
	sort.Strings(sum.Unchanged)
	sort.Strings(sum.Removed)
	return &sum, nil
}

// Check compares the plan with the files on disk without writing anything
func (g *Generator) Check(plan *Plan) ([]Drift, error) {
	var drifts []Drift
	for _, f := range plan.Files {
		old, err := os.ReadFile(f.Path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if bytes.Equal(old, f.Content) {
			continue
		}
		d, err := diff(f.Path, string(old), string(f.Content))
		if err != nil {
			return nil, err
		}
		drifts = append(drifts, Drift{Path: f.Path, Diff: d})
	}
	for _, path := range plan.Stale {
		old, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		d, err := diff(path, string(old), "")
		if err != nil {
			return nil, err
		}
		drifts = append(drifts, Drift{Path: path, Diff: d})
	}
	return drifts, nil
}

func diff(path, old, planned string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(old),
		B:        difflib.SplitLines(planned),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	})
}
