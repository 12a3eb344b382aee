package types

import (
	"go/token"

	"github.com/pablor21/boollike/annotations"
)

// EnumValue represents a single value declared with an enum type
type EnumValue struct {
	Name        string
	Visibility  Visibility
	Value       string // exact constant value, empty when unknown
	IsConst     bool   // false for package-level variables, which carry runtime state
	Comment     string
	Annotations []annotations.Annotation
	Position    token.Position
}
