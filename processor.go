package boollike

import (
	"context"
	"fmt"
	"go/build"
	"os"
	"path/filepath"
	"strings"

	"github.com/pablor21/boollike/config"
	"github.com/pablor21/boollike/expand"
	"github.com/pablor21/boollike/generator"
	"github.com/pablor21/boollike/logger"
	"github.com/pablor21/boollike/types"
	"github.com/pablor21/boollike/utils"
	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"
)

// Report is the outcome of Run
type Report struct {
	Result  *types.ProcessResult
	Plan    *generator.Plan
	Summary *generator.Summary // nil in check mode
	Drifts  []generator.Drift  // only in check mode
}

// Failed reports whether the run should exit non-zero: a type could not be expanded, or in check
// mode a generated file is out of date
func (r *Report) Failed() bool {
	return len(r.Result.Diagnostics) > 0 || len(r.Drifts) > 0
}

// Process scans and expands the configured packages with the default configuration
func Process() (*types.ProcessResult, error) {
	return ProcessWithConfig(config.NewDefaultConfig())
}

// ProcessWithConfig scans and expands the packages named by cfg
func ProcessWithConfig(cfg *config.Config) (*types.ProcessResult, error) {
	cfg.Normalize()
	ctx := types.NewProcessContext(cfg, logger.NewDefaultLogger())
	ctx.ModulePath = detectModulePath(cfg.Dir)
	return ProcessWithContext(context.Background(), ctx)
}

// ProcessWithContext scans the configured packages and expands every annotated type. Expansion
// failures are collected as diagnostics; the returned error is reserved for load failures.
func ProcessWithContext(ctx context.Context, pctx *types.ProcessContext) (*types.ProcessResult, error) {
	pkgs, err := loadPackages(ctx, pctx)
	if err != nil {
		return nil, err
	}
	res, err := parsePackages(pctx, pkgs)
	if err != nil {
		return nil, err
	}
	expandTypes(pctx, res)
	return res, nil
}

// Run processes the configured packages and writes their generated files. With check set nothing
// is written and the differences with the files on disk are reported instead. Packages with a
// failing type are left untouched.
func Run(ctx context.Context, pctx *types.ProcessContext, check bool) (*Report, error) {
	res, err := ProcessWithContext(ctx, pctx)
	if err != nil {
		return nil, err
	}

	var ready []*types.PackageInfo
	for _, pkg := range res.Packages {
		if pkg.Blocked() {
			pctx.Logger.Warn("skipping package with errors", "package", pkg.Path, "errors", len(pkg.Errors))
			continue
		}
		ready = append(ready, pkg)
	}

	gen := generator.New(pctx.Config, pctx.Logger)
	plan, err := gen.Plan(ready, res.Expansions)
	if err != nil {
		return nil, err
	}

	report := &Report{Result: res, Plan: plan}
	if check {
		report.Drifts, err = gen.Check(plan)
	} else {
		report.Summary, err = gen.Write(ctx, plan)
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// loadPackages loads the packages specified in the configuration
func loadPackages(ctx context.Context, pctx *types.ProcessContext) ([]*packages.Package, error) {
	patterns := pctx.Config.Scanning.Packages
	pctx.Logger.Debug("loading packages", "patterns", strings.Join(patterns, " "), "dir", pctx.Config.Dir, "module", pctx.ModulePath)

	pkgs, err := utils.LoadPackages(ctx, pctx.Config.Dir, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	return pkgs, nil
}

// parsePackages collects the annotated types of all loaded packages
func parsePackages(pctx *types.ProcessContext, pkgs []*packages.Package) (*types.ProcessResult, error) {
	res := types.NewProcessResult()
	for _, pkg := range pkgs {
		if err := res.ParsePackage(pctx, pkg); err != nil {
			return nil, fmt.Errorf("failed to parse package %s: %w", pkg.PkgPath, err)
		}
	}
	return res, nil
}

// expandTypes expands every collected type. A failure is recorded on the type's package, which
// blocks that package's output, and in the result's diagnostics.
func expandTypes(pctx *types.ProcessContext, res *types.ProcessResult) {
	exp := expand.New(pctx.Config)
	for _, pkg := range res.Packages {
		res.Diagnostics = append(res.Diagnostics, pkg.Errors...)
		for _, ti := range pkg.Types {
			out, err := exp.Expand(ti)
			if err != nil {
				pctx.Logger.Error("cannot expand type", "type", ti.CanonicalName, "error", err.Error())
				pkg.Errors = append(pkg.Errors, err)
				res.Diagnostics = append(res.Diagnostics, err)
				continue
			}
			pctx.Logger.Debug("expanded type", "type", ti.CanonicalName, "conversions", out.HasConversions())
			res.Expansions = append(res.Expansions, out)
		}
	}
}

// detectModulePath finds the module path of the go.mod enclosing dir, the working directory when
// dir is empty
func detectModulePath(dir string) string {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = wd
	}
	start := dir

	for {
		if content, err := os.ReadFile(filepath.Join(dir, "go.mod")); err == nil {
			return modfile.ModulePath(content)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	// Fallback: try to infer from GOPATH
	if gopath := build.Default.GOPATH; gopath != "" {
		srcDir := filepath.Join(gopath, "src")
		if rel, err := filepath.Rel(srcDir, start); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return ""
}
