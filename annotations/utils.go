package annotations

import "strings"

// MatchesAnnotation checks if an annotation name matches the expected pattern with the configured prefix
// For example, with prefix "@gen" and suffix "boollike", it matches "@genboollike" or "@genBoolLike"
// The suffix alone always matches as well
func MatchesAnnotation(annName string, prefix string, suffixes ...string) bool {
	annName = NormalizeAnnotationName(strings.TrimPrefix(annName, "@"))
	prefix = NormalizeAnnotationName(strings.TrimPrefix(prefix, "@"))

	for _, suffix := range suffixes {
		suffix = NormalizeAnnotationName(suffix)

		if prefix != "" && annName == prefix+suffix {
			return true
		}
		if annName == suffix {
			return true
		}
	}

	return false
}
