package annotations

import (
	"fmt"

	"github.com/pablor21/boollike/logger"
)

// ValidationMode defines the strictness of validation
type ValidationMode string

const (
	ValidationModeDisabled ValidationMode = "disabled"
	ValidationModeLax      ValidationMode = "lax"
	ValidationModeStrict   ValidationMode = "strict"
)

// Severity of a ValidationError
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationError represents a validation error
type ValidationError struct {
	Location string // Where the error occurred (e.g., "answer.go:12:2 No")
	Message  string
	Severity Severity
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// Validator checks annotation placement against the definitions.
// Lax mode reports misplaced annotations as warnings; strict mode makes them errors and
// also reports repeated annotations.
type Validator struct {
	mode   ValidationMode
	defs   Definitions
	errors []ValidationError
}

// NewValidator creates a new validator
func NewValidator(mode ValidationMode, defs Definitions) *Validator {
	if mode == "" {
		mode = ValidationModeDisabled
	}
	return &Validator{
		mode: mode,
		defs: defs,
	}
}

// ValidateAnnotations checks every annotation attached to one target
func (v *Validator) ValidateAnnotations(anns []Annotation, placement AnnotationValidOn, location string) {
	if v.mode == ValidationModeDisabled {
		return
	}

	seen := map[*AnnotationSpec]int{}
	for _, ann := range anns {
		spec := v.defs.GetAnnotationSpecByName(ann.Name)
		if spec == nil {
			// other tools' annotations share the comment space
			continue
		}
		seen[spec]++

		if !spec.IsValidOn(placement) {
			v.addError(location, fmt.Sprintf("@%s is not valid on %s (valid on: %v)", ann.Name, placementName(placement), spec.ValidOn), v.severity())
		}
		if seen[spec] == 2 && !spec.Multiple && v.mode == ValidationModeStrict {
			v.addError(location, fmt.Sprintf("@%s is repeated", ann.Name), SeverityError)
		}
	}
}

func (v *Validator) severity() Severity {
	if v.mode == ValidationModeStrict {
		return SeverityError
	}
	return SeverityWarning
}

// AddError adds a validation error (public method for external validators)
func (v *Validator) AddError(location, message string, severity Severity) {
	v.addError(location, message, severity)
}

func (v *Validator) addError(location, message string, severity Severity) {
	v.errors = append(v.errors, ValidationError{
		Location: location,
		Message:  message,
		Severity: severity,
	})
}

// GetErrors returns all validation errors
func (v *Validator) GetErrors() []ValidationError {
	return v.errors
}

// HasErrors returns true if there are any errors
func (v *Validator) HasErrors() bool {
	for _, err := range v.errors {
		if err.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the error-severity entries as errors
func (v *Validator) Errors() []error {
	var out []error
	for _, err := range v.errors {
		if err.Severity == SeverityError {
			out = append(out, err)
		}
	}
	return out
}

// LogWarnings logs every warning-severity entry
func (v *Validator) LogWarnings(l logger.Logger) {
	if l == nil {
		return
	}
	for _, err := range v.errors {
		if err.Severity == SeverityWarning {
			l.Warn(err.Message, "location", err.Location)
		}
	}
}

func placementName(p AnnotationValidOn) string {
	switch p {
	case AnnotationValidOnEnum:
		return "a type"
	case AnnotationValidOnEnumValue:
		return "a constant"
	}
	return string(p)
}
