package annotations

import "strings"

// Definitions contains the annotation specifications the generator recognizes
type Definitions struct {
	Prefix      string
	Annotations []AnnotationSpec
}

const (
	// TypeAnnotation marks a two-variant enum for expansion
	TypeAnnotation = "boollike"
	// FalseMarkerAnnotation marks the variant equivalent to false
	FalseMarkerAnnotation = "intofalse"
	// SkipAnnotation excludes an otherwise annotated type
	SkipAnnotation = "skip"
)

// NewDefinitions builds the definitions for the given annotation names. The first name of each
// list is the canonical one, the rest are aliases.
func NewDefinitions(prefix string, typeNames, falseMarkerNames []string) Definitions {
	return Definitions{
		Prefix: prefix,
		Annotations: []AnnotationSpec{
			{
				Name:        first(typeNames, TypeAnnotation),
				Aliases:     rest(typeNames),
				Description: "Generates negation, and bool conversions when a variant is marked false, for a two-variant enum",
				ValidOn:     []AnnotationValidOn{AnnotationValidOnEnum},
			},
			{
				Name:        first(falseMarkerNames, FalseMarkerAnnotation),
				Aliases:     rest(falseMarkerNames),
				Description: "Marks the enum variant that converts to false; the other variant converts to true",
				ValidOn:     []AnnotationValidOn{AnnotationValidOnEnumValue},
			},
			{
				Name:        SkipAnnotation,
				Aliases:     []string{"ignore"},
				Description: "Skip this type even though it is annotated",
				ValidOn:     []AnnotationValidOn{AnnotationValidOnEnum},
			},
		},
	}
}

// TypeSpec returns the specification of the type annotation
func (d Definitions) TypeSpec() *AnnotationSpec { return &d.Annotations[0] }

// FalseMarkerSpec returns the specification of the false-designator annotation
func (d Definitions) FalseMarkerSpec() *AnnotationSpec { return &d.Annotations[1] }

// SkipSpec returns the specification of the skip annotation
func (d Definitions) SkipSpec() *AnnotationSpec { return &d.Annotations[2] }

// GetAnnotationSpecByName finds an annotation specification by name or alias, honoring the prefix
func (d Definitions) GetAnnotationSpecByName(name string) *AnnotationSpec {
	for i := range d.Annotations {
		if d.Matches(name, &d.Annotations[i]) {
			return &d.Annotations[i]
		}
	}
	return nil
}

// Matches reports whether an annotation name refers to spec
func (d Definitions) Matches(name string, spec *AnnotationSpec) bool {
	return MatchesAnnotation(name, d.Prefix, append([]string{spec.Name}, spec.Aliases...)...)
}

// Has reports whether any of anns refers to spec
func (d Definitions) Has(anns []Annotation, spec *AnnotationSpec) bool {
	return len(d.Find(anns, spec)) > 0
}

// Find returns the annotations in anns that refer to spec
func (d Definitions) Find(anns []Annotation, spec *AnnotationSpec) []Annotation {
	var out []Annotation
	for _, ann := range anns {
		if d.Matches(ann.Name, spec) {
			out = append(out, ann)
		}
	}
	return out
}

// NormalizeAnnotationName normalizes annotation names for comparison (case-insensitive)
func NormalizeAnnotationName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func first(names []string, def string) string {
	if len(names) == 0 {
		return def
	}
	return names[0]
}

func rest(names []string) []string {
	if len(names) < 2 {
		return nil
	}
	return names[1:]
}
