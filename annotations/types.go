// Package annotations parses and checks the comment annotations (@name(params)) that drive generation.
package annotations

// Annotation represents a parsed annotation from Go comments (@name(params))
type Annotation struct {
	Name    string            // e.g., "boollike", "intofalse"
	Params  map[string]string // key-value parameters
	RawText string            // original text
}

// AnnotationValidOn represents where an annotation can be used
type AnnotationValidOn string

const (
	AnnotationValidOnEnum      AnnotationValidOn = "enum"
	AnnotationValidOnEnumValue AnnotationValidOn = "enumValue"
	AnnotationValidOnAll       AnnotationValidOn = "all"
)

// AnnotationSpec defines the specification for an annotation
type AnnotationSpec struct {
	// Annotation name, for example: "boollike"
	Name string `yaml:"name" json:"name"`
	// Where the annotation is valid on, nil or empty means all
	ValidOn     []AnnotationValidOn `yaml:"validOn" json:"validOn"`
	Aliases     []string            `yaml:"aliases" json:"aliases"`
	Description string              `yaml:"description" json:"description"`
	Multiple    bool                `yaml:"multiple" json:"multiple"` // Indicates if this annotation can be used multiple times per valid target
}

// IsValidOn reports whether the annotation may be placed on the given target
func (a *AnnotationSpec) IsValidOn(placement AnnotationValidOn) bool {
	if len(a.ValidOn) == 0 {
		return true
	}
	for _, v := range a.ValidOn {
		if v == placement || v == AnnotationValidOnAll {
			return true
		}
	}
	return false
}

// GetParamValue returns the value of an annotation parameter by name, checking aliases after the exact name
func (a *Annotation) GetParamValue(name string, aliases ...string) (string, bool) {
	if val, ok := a.Params[name]; ok {
		return val, true
	}
	for _, alias := range aliases {
		if val, ok := a.Params[alias]; ok {
			return val, true
		}
	}
	return "", false
}
