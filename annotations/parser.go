package annotations

import (
	"go/ast"
	"strings"
)

// ParseAnnotations extracts annotations from comment groups. Only lines that start with '@'
// (after the comment marker) are annotations; everything else is documentation.
func ParseAnnotations(comments []*ast.CommentGroup) []Annotation {
	var annotations []Annotation

	for _, cg := range comments {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			text := strings.TrimSpace(c.Text)
			text = strings.TrimPrefix(text, "//")
			text = strings.TrimPrefix(text, "/*")
			text = strings.TrimSuffix(text, "*/")

			for _, line := range strings.Split(text, "\n") {
				line = strings.TrimSpace(line)
				line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
				if !strings.HasPrefix(line, "@") {
					continue
				}
				if ann := parseAnnotation(line); ann.Name != "" {
					annotations = append(annotations, ann)
				}
			}
		}
	}

	return annotations
}

// parseAnnotation parses a single annotation: @name, @name(key:value) or @name key="value"
func parseAnnotation(line string) Annotation {
	ann := Annotation{
		RawText: line,
		Params:  make(map[string]string),
	}

	line = strings.TrimPrefix(line, "@")

	// @name(key:value, flag)
	if open := strings.Index(line, "("); open != -1 && !strings.ContainsAny(line[:open], " \t") {
		ann.Name = strings.TrimSpace(line[:open])
		params := line[open+1:]
		if end := strings.LastIndex(params, ")"); end != -1 {
			params = params[:end]
		}
		ann.Params = parseParams(splitOutsideQuotes(params, ','))
		return ann
	}

	// @name key="value" flag
	parts := splitOutsideQuotes(line, ' ')
	if len(parts) == 0 {
		return ann
	}
	ann.Name = parts[0]
	ann.Params = parseParams(parts[1:])
	return ann
}

// parseParams turns key:value / key=value / flag / "positional" parts into a map.
// Positional values are joined under the empty key.
func parseParams(parts []string) map[string]string {
	params := make(map[string]string)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		sep := -1
		for i, ch := range part {
			if (ch == ':' || ch == '=') && !isInQuotes(part, i) {
				sep = i
				break
			}
		}

		if sep == -1 {
			quoted := len(part) >= 2 && (part[0] == '"' || part[0] == '\'') && part[len(part)-1] == part[0]
			value := strings.Trim(part, `"'`)
			if !quoted && isIdentifierLike(value) {
				params[value] = "true"
				continue
			}
			if prev, ok := params[""]; ok {
				params[""] = prev + "," + value
			} else {
				params[""] = value
			}
			continue
		}

		key := strings.TrimSpace(part[:sep])
		params[key] = strings.Trim(strings.TrimSpace(part[sep+1:]), `"'`)
	}
	return params
}

// splitOutsideQuotes splits s on sep, ignoring separators inside quotes or brackets
func splitOutsideQuotes(s string, sep rune) []string {
	var parts []string
	var current strings.Builder
	var quote rune
	depth := 0

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}

	for _, ch := range s {
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '[':
			depth++
		case ch == ']':
			depth--
		case ch == sep && depth == 0:
			flush()
			continue
		}
		current.WriteRune(ch)
	}
	flush()

	return parts
}

// isInQuotes checks if a character at given index is inside quotes
func isInQuotes(s string, idx int) bool {
	var quote rune
	for i, ch := range s {
		if i >= idx {
			break
		}
		switch {
		case quote != 0 && ch == quote:
			quote = 0
		case quote == 0 && (ch == '"' || ch == '\''):
			quote = ch
		}
	}
	return quote != 0
}

// isIdentifierLike reports whether s can be a boolean flag: letters, digits, '_' and '-'
func isIdentifierLike(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		isLetter := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
		isDigit := ch >= '0' && ch <= '9'
		if !isLetter && !isDigit && ch != '_' && ch != '-' {
			return false
		}
	}
	return true
}
