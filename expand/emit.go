package expand

import (
	"bytes"
	"fmt"
	"go/token"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/pablor21/boollike/config"
	"github.com/pablor21/boollike/types"
)

// Names are the identifiers of the generated declarations
type Names struct {
	Not      string
	Bool     string
	FromBool string // suffix appended to the type name
}

// DefaultNames returns Not, Bool and <Type>FromBool
func DefaultNames() Names {
	return Names{Not: "Not", Bool: "Bool", FromBool: "FromBool"}
}

// NamesFromConfig reads the names from the generation config
func NamesFromConfig(m config.MethodsConfig) Names {
	return Names{Not: m.Not, Bool: m.Bool, FromBool: m.FromBool}
}

// Constructor returns the bool constructor name for a type. It keeps the type's visibility
// since it starts with the type name.
func (n Names) Constructor(typeName string) string {
	return typeName + n.FromBool
}

// Emit builds the negation method and, when marker is a variant index, the two bool conversions.
// The selection between the two variants is fixed here; the generated code never enumerates.
func Emit(def *types.TypeDefinition, marker int, names Names) *types.ExpansionResult {
	// a is the variant tested against: the false variant, or the second one in negation-only mode
	a := 1
	if marker >= 0 {
		a = marker
	}
	cmp, other := def.Variants[a].Name, def.Variants[1-a].Name

	res := &types.ExpansionResult{
		Type: def,
		Negation: types.Negation{
			Method:  names.Not,
			Mapping: map[string]string{cmp: other, other: cmp},
		},
	}

	recv := freeName(def, "v", "x", "e")
	res.Decls = append(res.Decls, &dst.FuncDecl{
		Recv: fields(recv, def.Name),
		Name: dst.NewIdent(names.Not),
		Type: &dst.FuncType{Results: fields("", def.Name)},
		Body: &dst.BlockStmt{List: []dst.Stmt{
			&dst.IfStmt{
				Cond: &dst.BinaryExpr{X: dst.NewIdent(recv), Op: token.EQL, Y: dst.NewIdent(cmp)},
				Body: returns(dst.NewIdent(other)),
			},
			&dst.ReturnStmt{Results: []dst.Expr{dst.NewIdent(cmp)}},
		}},
		Decs: docs(fmt.Sprintf("// %s returns the other variant of %s: %s for %s and %s for %s.",
			names.Not, def.Name, other, cmp, cmp, other)),
	})

	if marker < 0 {
		return res
	}

	falseV, trueV := cmp, other
	res.ToBool = &types.ToBool{
		Method:  names.Bool,
		Mapping: map[string]bool{falseV: false, trueV: true},
	}
	res.Decls = append(res.Decls, &dst.FuncDecl{
		Recv: fields(recv, def.Name),
		Name: dst.NewIdent(names.Bool),
		Type: &dst.FuncType{Results: fields("", "bool")},
		Body: &dst.BlockStmt{List: []dst.Stmt{
			&dst.ReturnStmt{
				Results: []dst.Expr{
					&dst.BinaryExpr{X: dst.NewIdent(recv), Op: token.NEQ, Y: dst.NewIdent(falseV)},
				},
				// a single statement body would otherwise be printed on the signature's line
				Decs: dst.ReturnStmtDecorations{NodeDecs: dst.NodeDecs{Before: dst.NewLine, After: dst.NewLine}},
			},
		}},
		Decs: docs(fmt.Sprintf("// %s converts %s to bool: %s is false and %s is true.",
			names.Bool, def.Name, falseV, trueV)),
	})

	ctor := names.Constructor(def.Name)
	param := freeName(def, "b", "value", "in")
	res.FromBool = &types.FromBool{
		Func:    ctor,
		Mapping: map[bool]string{false: falseV, true: trueV},
	}
	res.Decls = append(res.Decls, &dst.FuncDecl{
		Name: dst.NewIdent(ctor),
		Type: &dst.FuncType{Params: fields(param, "bool"), Results: fields("", def.Name)},
		Body: &dst.BlockStmt{List: []dst.Stmt{
			&dst.IfStmt{
				Cond: dst.NewIdent(param),
				Body: returns(dst.NewIdent(trueV)),
			},
			&dst.ReturnStmt{Results: []dst.Expr{dst.NewIdent(falseV)}},
		}},
		Decs: docs(fmt.Sprintf("// %s converts a bool to %s: false is %s and true is %s.",
			ctor, def.Name, falseV, trueV)),
	})

	return res
}

// Render prints decls as Go source without the package clause
func Render(pkgName string, decls []dst.Decl) ([]byte, error) {
	var buf bytes.Buffer
	if err := decorator.Fprint(&buf, &dst.File{Name: dst.NewIdent(pkgName), Decls: decls}); err != nil {
		return nil, fmt.Errorf("error formatting generated code: %w", err)
	}
	out := bytes.TrimPrefix(buf.Bytes(), []byte("package "+pkgName+"\n"))
	return append(bytes.TrimRight(bytes.TrimLeft(out, "\n"), "\n"), '\n'), nil
}

func fields(name, typ string) *dst.FieldList {
	f := &dst.Field{Type: dst.NewIdent(typ)}
	if name != "" {
		f.Names = []*dst.Ident{dst.NewIdent(name)}
	}
	return &dst.FieldList{List: []*dst.Field{f}}
}

func returns(x dst.Expr) *dst.BlockStmt {
	return &dst.BlockStmt{List: []dst.Stmt{&dst.ReturnStmt{Results: []dst.Expr{x}}}}
}

func docs(lines ...string) dst.FuncDeclDecorations {
	return dst.FuncDeclDecorations{NodeDecs: dst.NodeDecs{
		Before: dst.EmptyLine,
		Start:  dst.Decorations(lines),
		After:  dst.EmptyLine,
	}}
}

// freeName returns the first candidate that does not shadow the type or a variant
func freeName(def *types.TypeDefinition, candidates ...string) string {
	taken := map[string]bool{def.Name: true, def.Variants[0].Name: true, def.Variants[1].Name: true}
	for _, c := range candidates {
		if !taken[c] {
			return c
		}
	}
	return "_" + candidates[0]
}
