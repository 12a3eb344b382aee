package expand

import (
	"fmt"
	"strings"

	"github.com/pablor21/boollike/types"
)

// Validate checks that ti is an enum with exactly two constant variants and builds its definition.
// It does not modify ti.
func Validate(ti *types.TypeInfo) (*types.TypeDefinition, error) {
	shapeErr := func(reason ShapeReason, format string, args ...any) error {
		return &ShapeError{
			Type:     ti.Name,
			Position: ti.Position,
			Reason:   reason,
			Detail:   fmt.Sprintf(format, args...),
		}
	}

	switch {
	case ti.IsAlias:
		return nil, shapeErr(ShapeNotEnum, "is an alias; only defined types can be extended")
	case ti.IsGeneric:
		return nil, shapeErr(ShapeNotEnum, "has type parameters; generic enums are not supported")
	case !ti.IsEnumLike():
		return nil, shapeErr(ShapeNotEnum, "is a %s type; want a named basic type with two constants", ti.Kind)
	}

	if n := len(ti.EnumValues); n != 2 {
		names := make([]string, n)
		for i, ev := range ti.EnumValues {
			names[i] = ev.Name
		}
		listed := ""
		if n > 0 {
			listed = " (" + strings.Join(names, ", ") + ")"
		}
		return nil, shapeErr(ShapeVariantCount, "has %d variants%s; want exactly 2", n, listed)
	}

	for _, ev := range ti.EnumValues {
		if !ev.IsConst {
			return nil, shapeErr(ShapeVariantData, "variant %s is a variable; only constant variants are supported", ev.Name)
		}
	}
	a, b := ti.EnumValues[0], ti.EnumValues[1]
	if a.Value != "" && a.Value == b.Value {
		return nil, shapeErr(ShapeVariantData, "variants %s and %s share the value %s", a.Name, b.Name, a.Value)
	}

	def := &types.TypeDefinition{
		Name:       ti.Name,
		Visibility: ti.Visibility,
		PkgName:    ti.PkgName,
		PkgPath:    ti.PkgPath,
		File:       ti.File,
		Position:   ti.Position,
		Underlying: ti.Underlying,
		Comment:    ti.Comment,
	}
	for i, ev := range ti.EnumValues {
		def.Variants[i] = types.VariantDefinition{
			Name:        ev.Name,
			Value:       ev.Value,
			Position:    ev.Position,
			Annotations: ev.Annotations,
		}
	}
	return def, nil
}
