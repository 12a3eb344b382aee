package types

import (
	"go/token"

	"github.com/dave/dst"
	"github.com/pablor21/boollike/annotations"
)

// TypeDefinition is a validated two-variant enum. It is built once by the shape validator and
// only read afterwards.
type TypeDefinition struct {
	Name       string
	Visibility Visibility
	Variants   [2]VariantDefinition // declaration order

	// passed through to the emitted code unchanged
	PkgName    string
	PkgPath    string
	File       string
	Position   token.Position
	Underlying string
	Comment    string
}

// VariantDefinition is one of the two values of a TypeDefinition
type VariantDefinition struct {
	Name          string
	IsFalseMarker bool
	Value         string
	Position      token.Position
	Annotations   []annotations.Annotation `json:"-"`
}

// Marker returns the index of the variant designated false, or -1 in negation-only mode
func (d *TypeDefinition) Marker() int {
	for i := range d.Variants {
		if d.Variants[i].IsFalseMarker {
			return i
		}
	}
	return -1
}

// Other returns the variant that is not v. It panics if v is not a variant of d.
func (d *TypeDefinition) Other(v string) string {
	switch v {
	case d.Variants[0].Name:
		return d.Variants[1].Name
	case d.Variants[1].Name:
		return d.Variants[0].Name
	}
	panic("boollike: " + v + " is not a variant of " + d.Name)
}

// ExpansionResult is the generated code for one TypeDefinition, to be appended next to it
type ExpansionResult struct {
	Type     *TypeDefinition
	Negation Negation
	ToBool   *ToBool   // nil in negation-only mode
	FromBool *FromBool // nil in negation-only mode

	Decls []dst.Decl `json:"-"` // emitted declarations, in output order
	Code  []byte     // Decls rendered without a package clause
}

// HasConversions reports whether bool conversions were emitted
func (r *ExpansionResult) HasConversions() bool {
	return r.ToBool != nil && r.FromBool != nil
}

// Negation is the generated negation method
type Negation struct {
	Method  string
	Mapping map[string]string // variant -> negated variant
}

// ToBool is the generated enum to bool conversion method
type ToBool struct {
	Method  string
	Mapping map[string]bool
}

// FromBool is the generated bool to enum constructor
type FromBool struct {
	Func    string
	Mapping map[bool]string
}
