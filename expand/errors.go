package expand

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

var (
	// ErrShape matches every *ShapeError
	ErrShape = errors.New("not a two-variant enum")
	// ErrDuplicateMarker matches every *DuplicateMarkerError
	ErrDuplicateMarker = errors.New("false marker on more than one variant")
)

// ShapeReason tells which structural precondition failed
type ShapeReason string

const (
	ShapeNotEnum      ShapeReason = "not-enum"
	ShapeVariantCount ShapeReason = "variant-count"
	ShapeVariantData  ShapeReason = "variant-data"
)

// ShapeError reports an annotated type that is not a two-variant, data-free enum
type ShapeError struct {
	Type     string
	Position token.Position
	Reason   ShapeReason
	Detail   string
}

func (e *ShapeError) Error() string {
	return locate(e.Position, fmt.Sprintf("%s: %s", e.Type, e.Detail))
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }

// DuplicateMarkerError reports a false marker attached to both variants
type DuplicateMarkerError struct {
	Type     string
	Position token.Position
	Marker   string
	Variants []string
}

func (e *DuplicateMarkerError) Error() string {
	return locate(e.Position, fmt.Sprintf("%s: @%s is on %s; only one variant can convert to false",
		e.Type, e.Marker, strings.Join(e.Variants, " and ")))
}

func (e *DuplicateMarkerError) Is(target error) bool { return target == ErrDuplicateMarker }

func locate(pos token.Position, msg string) string {
	if !pos.IsValid() {
		return msg
	}
	return pos.String() + ": " + msg
}
