// Package expand turns an annotated two-variant enum into its generated negation and bool
// conversions.
//
// Expansion runs three stages in order, each aborting with no output on failure:
//
//  1. Validate checks the shape: a named basic type with exactly two constants of distinct value.
//  2. ResolveMarker finds the variant annotated as false, if any.
//  3. Emit produces Not, plus Bool and <Type>FromBool when a variant is marked false.
//
// Expansion is a pure function of one type declaration; an Expander may be shared between
// goroutines.
package expand

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/pablor21/boollike/annotations"
	"github.com/pablor21/boollike/config"
	"github.com/pablor21/boollike/types"
)

// Expander runs the expansion pipeline with a fixed set of names
type Expander struct {
	Names       Names
	Definitions annotations.Definitions
}

// New returns an Expander configured from cfg
func New(cfg *config.Config) *Expander {
	return &Expander{
		Names:       NamesFromConfig(cfg.Generation.Methods),
		Definitions: annotations.NewDefinitions(cfg.Annotations.Prefix, cfg.Annotations.Type, cfg.Annotations.FalseMarker),
	}
}

// NewDefault returns an Expander using the default annotation and declaration names
func NewDefault() *Expander {
	return New(config.NewDefaultConfig())
}

// Expand validates ti, resolves its false marker and emits the generated declarations
func (e *Expander) Expand(ti *types.TypeInfo) (*types.ExpansionResult, error) {
	def, err := Validate(ti)
	if err != nil {
		return nil, err
	}

	marker, err := ResolveMarker(def, e.Definitions)
	if err != nil {
		return nil, err
	}

	names, err := e.namesFor(ti, def, marker >= 0)
	if err != nil {
		return nil, err
	}

	res := Emit(def, marker, names)
	res.Code, err = Render(def.PkgName, res.Decls)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", def.Name, err)
	}
	return res, nil
}

// namesFor applies the name overrides of the type annotation, as in @boollike(not=Flip). The
// constructor is only checked against the package level names when it is emitted.
func (e *Expander) namesFor(ti *types.TypeInfo, def *types.TypeDefinition, conversions bool) (Names, error) {
	names := e.Names
	overrides := []struct {
		param  string
		target *string
	}{
		{"not", &names.Not},
		{"bool", &names.Bool},
		{"from_bool", &names.FromBool},
	}

	for _, ann := range e.Definitions.Find(ti.Annotations, e.Definitions.TypeSpec()) {
		for _, o := range overrides {
			v, ok := ann.GetParamValue(o.param, strings.ReplaceAll(o.param, "_", ""))
			if !ok {
				continue
			}
			if v == "" {
				return Names{}, fmt.Errorf("%s: %s: empty %s name", ti.Location(), ti.Name, o.param)
			}
			name := v
			if o.target == &names.FromBool {
				name = ti.Name + v
			}
			if !token.IsIdentifier(name) {
				return Names{}, fmt.Errorf("%s: %s: invalid %s name %q", ti.Location(), ti.Name, o.param, v)
			}
			*o.target = v
		}
	}
	if names.Not == names.Bool {
		return Names{}, fmt.Errorf("%s: %s: not and bool share the name %q", ti.Location(), ti.Name, names.Not)
	}
	if conversions {
		ctor := names.Constructor(ti.Name)
		for _, taken := range []string{def.Name, def.Variants[0].Name, def.Variants[1].Name} {
			if ctor == taken {
				return Names{}, fmt.Errorf("%s: %s: from_bool function %q redeclares %s", ti.Location(), ti.Name, ctor, taken)
			}
		}
	}
	return names, nil
}
