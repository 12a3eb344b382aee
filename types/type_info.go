package types

import (
	"go/ast"
	"go/token"
	gotypes "go/types"

	"github.com/pablor21/boollike/annotations"
	"github.com/pablor21/boollike/utils"
)

type TypeKind string

const (
	TypeKindStruct    TypeKind = "struct"
	TypeKindInterface TypeKind = "interface"
	TypeKindFunction  TypeKind = "function"
	TypeKindEnum      TypeKind = "enum"
	TypeKindBasic     TypeKind = "basic"
	TypeKindAlias     TypeKind = "alias"
	TypeKindArray     TypeKind = "array"
	TypeKindSlice     TypeKind = "slice"
	TypeKindMap       TypeKind = "map"
	TypeKindChan      TypeKind = "chan"
	TypeKindPointer   TypeKind = "pointer"
	TypeKindUnknown   TypeKind = "unknown"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// TypeInfo is an annotated type declaration as found in the source, before any validation
type TypeInfo struct {
	Name          string
	CanonicalName string // PkgPath + "." + Name
	Kind          TypeKind
	Visibility    Visibility
	Underlying    string // basic underlying type name, empty for composite kinds
	IsAlias       bool
	IsGeneric     bool
	PkgName       string
	PkgPath       string
	File          string // source file path
	Position      token.Position
	Comment       string
	Annotations   []annotations.Annotation
	EnumValues    []EnumValue // constants and package-level variables declared with this type

	TypeSpec *ast.TypeSpec `json:"-"`
}

// determineVisibility returns the visibility of a named element based on Go naming conventions
func determineVisibility(name string) Visibility {
	if ast.IsExported(name) {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

// kindOfExpr classifies a type expression syntactically
func kindOfExpr(expr ast.Expr) TypeKind {
	switch t := expr.(type) {
	case *ast.StructType:
		return TypeKindStruct
	case *ast.InterfaceType:
		return TypeKindInterface
	case *ast.FuncType:
		return TypeKindFunction
	case *ast.MapType:
		return TypeKindMap
	case *ast.ChanType:
		return TypeKindChan
	case *ast.StarExpr:
		return TypeKindPointer
	case *ast.ArrayType:
		if t.Len == nil {
			return TypeKindSlice
		}
		return TypeKindArray
	case *ast.ParenExpr:
		return kindOfExpr(t.X)
	case *ast.Ident:
		if utils.IsBasicType(t.Name) {
			return TypeKindBasic
		}
	}
	return TypeKindUnknown
}

// kindOfType classifies a checked type by its underlying type
func kindOfType(t gotypes.Type) (TypeKind, string) {
	switch u := t.Underlying().(type) {
	case *gotypes.Basic:
		if u.Kind() == gotypes.Invalid {
			return TypeKindUnknown, ""
		}
		return TypeKindBasic, u.Name()
	case *gotypes.Struct:
		return TypeKindStruct, ""
	case *gotypes.Interface:
		return TypeKindInterface, ""
	case *gotypes.Signature:
		return TypeKindFunction, ""
	case *gotypes.Map:
		return TypeKindMap, ""
	case *gotypes.Chan:
		return TypeKindChan, ""
	case *gotypes.Pointer:
		return TypeKindPointer, ""
	case *gotypes.Slice:
		return TypeKindSlice, ""
	case *gotypes.Array:
		return TypeKindArray, ""
	}
	return TypeKindUnknown, ""
}

// IsEnumLike reports whether the type can hold enum constants: a basic underlying type
// declared as a defined (non-alias, non-generic) type
func (ti *TypeInfo) IsEnumLike() bool {
	return (ti.Kind == TypeKindBasic || ti.Kind == TypeKindEnum) && !ti.IsAlias && !ti.IsGeneric
}

// Location formats the declaration position for diagnostics
func (ti *TypeInfo) Location() string {
	return ti.Position.String()
}
