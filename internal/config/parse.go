package config

import "strings"

// parseRecord parses the inline map representation scrub-config prints for a
// structured query, e.g. `{dir=sub, cmd="make clean"}`.
//
// Rules: strip one matching pair of enclosing braces, split on top-level
// commas, split each segment on the first '=' only (values keep any embedded
// '='), trim whitespace, and strip one matching pair of surrounding quotes
// (single or double) from each value. Embedded escaped quotes are left
// untouched.
func parseRecord(raw string) map[string]string {
	body := strings.TrimSpace(raw)
	if strings.HasPrefix(body, "{") && strings.HasSuffix(body, "}") {
		body = body[1 : len(body)-1]
	}

	record := make(map[string]string)
	for _, segment := range splitTopLevel(body) {
		key, value, found := strings.Cut(segment, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		record[key] = unquote(strings.TrimSpace(value))
	}

	return record
}

// splitTopLevel splits on commas that are not inside quotes.
func splitTopLevel(body string) []string {
	var segments []string
	var current strings.Builder
	var quote rune

	for _, r := range body {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			current.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			current.WriteRune(r)
		case r == ',':
			segments = append(segments, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		segments = append(segments, current.String())
	}

	return segments
}

// unquote strips one matching pair of surrounding single or double quotes.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first := value[0]
	last := value[len(value)-1]
	if first == last && (first == '\'' || first == '"') {
		return value[1 : len(value)-1]
	}
	return value
}
