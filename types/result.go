package types

import (
	"fmt"
	"go/ast"
	"go/token"
	gotypes "go/types"
	"path/filepath"

	"github.com/pablor21/boollike/annotations"
	"github.com/pablor21/boollike/utils"
	"golang.org/x/tools/go/packages"
)

// PackageInfo describes one scanned package
type PackageInfo struct {
	Name    string
	Path    string
	Dir     string
	GoFiles []string
	Types   []*TypeInfo // annotated types in declaration order
	Errors  []error     // annotation errors that block the package's output
}

// Blocked reports whether the package has errors that prevent writing its generated files
func (p *PackageInfo) Blocked() bool {
	return len(p.Errors) > 0
}

type ProcessResult struct {
	Packages    []*PackageInfo
	Elements    map[string]*TypeInfo // keyed by CanonicalName
	Expansions  []*ExpansionResult
	Diagnostics []error // expansion and annotation failures, in scan order
}

func NewProcessResult() *ProcessResult {
	return &ProcessResult{
		Elements: make(map[string]*TypeInfo),
	}
}

// ParsePackage collects the annotated types of pkg and the values declared with them
func (pr *ProcessResult) ParsePackage(ctx *ProcessContext, pkg *packages.Package) error {
	for _, e := range pkg.Errors {
		// type errors are expected while a generated file is stale
		ctx.Logger.Warn("package has errors", "package", pkg.PkgPath, "error", e.Error())
	}
	if len(pkg.Syntax) == 0 {
		if len(pkg.Errors) > 0 {
			return fmt.Errorf("failed to load package %s: %v", pkg.PkgPath, pkg.Errors[0])
		}
		return nil
	}

	info := &PackageInfo{
		Name:    pkg.Name,
		Path:    pkg.PkgPath,
		GoFiles: pkg.GoFiles,
	}
	if len(pkg.GoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	s := &scanner{
		ctx:    ctx,
		pkg:    pkg,
		info:   info,
		byName: make(map[string]*TypeInfo),
		byObj:  make(map[*gotypes.TypeName]*TypeInfo),
	}

	// types first: values may be declared before their type
	for _, file := range s.files() {
		for _, decl := range file.Decls {
			if d, ok := decl.(*ast.GenDecl); ok && d.Tok == token.TYPE {
				for _, spec := range d.Specs {
					s.addTypeSpec(spec.(*ast.TypeSpec), d)
				}
			}
		}
	}
	if len(info.Types) > 0 {
		for _, file := range s.files() {
			for _, decl := range file.Decls {
				if d, ok := decl.(*ast.GenDecl); ok && (d.Tok == token.CONST || d.Tok == token.VAR) {
					s.addValueBlock(d)
				}
			}
		}
	}

	s.detectEnums()
	s.validateAnnotations()

	for _, ti := range info.Types {
		pr.Elements[ti.CanonicalName] = ti
	}
	pr.Packages = append(pr.Packages, info)
	return nil
}

// Types returns every annotated type in scan order
func (pr *ProcessResult) Types() []*TypeInfo {
	var out []*TypeInfo
	for _, p := range pr.Packages {
		out = append(out, p.Types...)
	}
	return out
}

type scanner struct {
	ctx    *ProcessContext
	pkg    *packages.Package
	info   *PackageInfo
	byName map[string]*TypeInfo
	byObj  map[*gotypes.TypeName]*TypeInfo
}

// files returns the hand-written files of the package
func (s *scanner) files() []*ast.File {
	var out []*ast.File
	for _, f := range s.pkg.Syntax {
		if ast.IsGenerated(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (s *scanner) position(pos token.Pos) token.Position {
	if s.pkg.Fset == nil {
		return token.Position{}
	}
	return s.pkg.Fset.Position(pos)
}

// docGroups returns the comment groups that belong to a spec. The declaration's doc only
// belongs to the spec when the declaration is not parenthesized.
func docGroups(doc, comment *ast.CommentGroup, genDecl *ast.GenDecl) []*ast.CommentGroup {
	groups := []*ast.CommentGroup{doc, comment}
	if !genDecl.Lparen.IsValid() {
		groups = append(groups, genDecl.Doc)
	}
	return groups
}

func (s *scanner) addTypeSpec(ts *ast.TypeSpec, genDecl *ast.GenDecl) {
	defs := s.ctx.Definitions
	groups := docGroups(ts.Doc, ts.Comment, genDecl)
	anns := annotations.ParseAnnotations(groups)
	if !defs.Has(anns, defs.TypeSpec()) {
		return
	}

	pos := s.position(ts.Name.Pos())
	if defs.Has(anns, defs.SkipSpec()) {
		s.ctx.Logger.Debug("skipping type", "type", ts.Name.Name, "location", pos.String())
		return
	}

	ti := &TypeInfo{
		Name:          ts.Name.Name,
		CanonicalName: s.pkg.PkgPath + "." + ts.Name.Name,
		Visibility:    determineVisibility(ts.Name.Name),
		IsAlias:       ts.Assign.IsValid(),
		IsGeneric:     ts.TypeParams != nil && len(ts.TypeParams.List) > 0,
		PkgName:       s.pkg.Name,
		PkgPath:       s.pkg.PkgPath,
		File:          pos.Filename,
		Position:      pos,
		Comment:       utils.ExtractCommentText(groups),
		Annotations:   anns,
		EnumValues:    []EnumValue{},
		TypeSpec:      ts,
	}

	if obj := s.typeName(ts.Name); obj != nil {
		ti.Kind, ti.Underlying = kindOfType(obj.Type())
		s.byObj[obj] = ti
	} else {
		ti.Kind = kindOfExpr(ts.Type)
		if ti.Kind == TypeKindBasic {
			ti.Underlying = ts.Type.(*ast.Ident).Name
		}
	}
	if ti.IsAlias {
		ti.Kind = TypeKindAlias
	}

	s.byName[ti.Name] = ti
	s.info.Types = append(s.info.Types, ti)
	s.ctx.Logger.Debug(fmt.Sprintf("Parsed %d annotations for type %s.%s.", len(anns), s.pkg.PkgPath, ti.Name))
}

func (s *scanner) typeName(ident *ast.Ident) *gotypes.TypeName {
	if s.pkg.TypesInfo == nil {
		return nil
	}
	obj, _ := s.pkg.TypesInfo.Defs[ident].(*gotypes.TypeName)
	return obj
}

// addValueBlock attaches the constants and variables of a const/var declaration to the annotated
// type they are declared with
func (s *scanner) addValueBlock(genDecl *ast.GenDecl) {
	// Track the current type across the const block for implicit repetition
	var current *TypeInfo

	for _, spec := range genDecl.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		if vs.Type != nil || len(vs.Values) > 0 || genDecl.Tok == token.VAR {
			current = s.typeOfSpec(vs)
		}

		for i, name := range vs.Names {
			if name.Name == "_" {
				continue
			}
			ti, value, isConst := s.resolveValue(name, current, genDecl.Tok)
			if ti == nil {
				continue
			}
			groups := docGroups(vs.Doc, vs.Comment, genDecl)
			ev := EnumValue{
				Name:        name.Name,
				Visibility:  determineVisibility(name.Name),
				Value:       value,
				IsConst:     isConst,
				Comment:     utils.ExtractCommentText(groups),
				Annotations: annotations.ParseAnnotations(groups),
				Position:    s.position(name.Pos()),
			}
			if value == "" && i < len(vs.Values) {
				ev.Value = gotypes.ExprString(vs.Values[i])
			}
			ti.EnumValues = append(ti.EnumValues, ev)
			s.ctx.Logger.Debug(fmt.Sprintf("Parsed %d annotations for enum value %s.", len(ev.Annotations), name.Name))
		}
	}
}

// resolveValue finds the annotated type a declared name belongs to, preferring type information
func (s *scanner) resolveValue(name *ast.Ident, syntactic *TypeInfo, tok token.Token) (*TypeInfo, string, bool) {
	if s.pkg.TypesInfo != nil {
		obj := s.pkg.TypesInfo.Defs[name]
		if obj == nil {
			return nil, "", false
		}
		named, ok := gotypes.Unalias(obj.Type()).(*gotypes.Named)
		if !ok {
			return nil, "", false
		}
		ti := s.byObj[named.Obj()]
		if ti == nil {
			return nil, "", false
		}
		if c, ok := obj.(*gotypes.Const); ok {
			return ti, c.Val().ExactString(), true
		}
		return ti, "", false
	}
	return syntactic, "", tok == token.CONST
}

// typeOfSpec resolves the annotated type of a value spec from its syntax: an explicit type or a
// conversion such as Answer(1)
func (s *scanner) typeOfSpec(vs *ast.ValueSpec) *TypeInfo {
	if ident, ok := vs.Type.(*ast.Ident); ok {
		return s.byName[ident.Name]
	}
	if vs.Type == nil && len(vs.Values) > 0 {
		if call, ok := vs.Values[0].(*ast.CallExpr); ok {
			if ident, ok := call.Fun.(*ast.Ident); ok && len(call.Args) == 1 {
				return s.byName[ident.Name]
			}
		}
	}
	return nil
}

// detectEnums marks basic types with declared values as enums
func (s *scanner) detectEnums() {
	for _, ti := range s.info.Types {
		if ti.Kind == TypeKindBasic && len(ti.EnumValues) > 0 {
			ti.Kind = TypeKindEnum
		}
	}
}

func (s *scanner) validateAnnotations() {
	mode := annotations.ValidationMode(s.ctx.Config.Validation.Annotations)
	v := annotations.NewValidator(mode, s.ctx.Definitions)
	for _, ti := range s.info.Types {
		v.ValidateAnnotations(ti.Annotations, annotations.AnnotationValidOnEnum, ti.Location()+" "+ti.Name)
		for _, ev := range ti.EnumValues {
			v.ValidateAnnotations(ev.Annotations, annotations.AnnotationValidOnEnumValue, ev.Position.String()+" "+ev.Name)
		}
	}
	v.LogWarnings(s.ctx.Logger)
	s.info.Errors = append(s.info.Errors, v.Errors()...)
}
