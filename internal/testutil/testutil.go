// Package testutil builds type-checked packages from in-memory sources so scanner tests do not
// need the go command.
package testutil

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	gotypes "go/types"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

// Package parses and type-checks files (name -> source) as package pkgPath, rooted at dir.
// Type errors are recorded on the package rather than failing the test.
func Package(t testing.TB, dir, pkgPath string, files map[string]string) *packages.Package {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	fset := token.NewFileSet()
	pkg := &packages.Package{
		ID:      pkgPath,
		PkgPath: pkgPath,
		Fset:    fset,
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		f, err := parser.ParseFile(fset, path, files[name], parser.ParseComments)
		require.NoError(t, err, "parse %s", name)
		pkg.Syntax = append(pkg.Syntax, f)
		pkg.GoFiles = append(pkg.GoFiles, path)
		pkg.CompiledGoFiles = append(pkg.CompiledGoFiles, path)
		pkg.Name = f.Name.Name
	}

	info := &gotypes.Info{
		Types: make(map[ast.Expr]gotypes.TypeAndValue),
		Defs:  make(map[*ast.Ident]gotypes.Object),
		Uses:  make(map[*ast.Ident]gotypes.Object),
	}
	conf := gotypes.Config{
		Importer: importer.Default(),
		Error: func(err error) {
			pkg.Errors = append(pkg.Errors, packages.Error{Msg: err.Error(), Kind: packages.TypeError})
		},
	}
	pkg.Types, _ = conf.Check(pkgPath, fset, pkg.Syntax, info)
	pkg.TypesInfo = info
	return pkg
}

// Source is Package for a single file named source.go
func Source(t testing.TB, src string) *packages.Package {
	t.Helper()
	return Package(t, t.TempDir(), "example.com/test", map[string]string{"source.go": src})
}
