package expand

import (
	"github.com/pablor21/boollike/annotations"
	"github.com/pablor21/boollike/types"
)

// ResolveMarker finds the variant carrying the false marker and flags it on def.
// It returns the variant index, or -1 when no variant is marked (negation-only mode).
func ResolveMarker(def *types.TypeDefinition, defs annotations.Definitions) (int, error) {
	spec := defs.FalseMarkerSpec()

	var marked []int
	for i := range def.Variants {
		if defs.Has(def.Variants[i].Annotations, spec) {
			marked = append(marked, i)
		}
	}

	switch len(marked) {
	case 0:
		return -1, nil
	case 1:
		def.Variants[marked[0]].IsFalseMarker = true
		return marked[0], nil
	}

	variants := make([]string, len(marked))
	for i, idx := range marked {
		variants[i] = def.Variants[idx].Name
	}
	return -1, &DuplicateMarkerError{
		Type:     def.Name,
		Position: def.Position,
		Marker:   spec.Name,
		Variants: variants,
	}
}
