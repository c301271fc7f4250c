package enrich

import "strings"

// CleanResponse normalises raw model output into a single line of copy:
// surrounding quotes are removed, numbered and dash list prefixes are
// stripped per line, and the lines are joined with spaces. Models keep
// returning quoted or enumerated answers despite prompt instructions, so
// this runs on every response.
func CleanResponse(s string) string {
	cleaned := strings.TrimSpace(s)

	if len(cleaned) >= 2 {
		first, last := cleaned[0], cleaned[len(cleaned)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			cleaned = cleaned[1 : len(cleaned)-1]
		}
	}

	var out []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > 1 && line[0] >= '0' && line[0] <= '9' &&
			(line[1] == '.' || line[1] == ')' || line[1] == '-') {
			line = strings.TrimSpace(line[2:])
		}
		if strings.HasPrefix(line, "- ") {
			line = strings.TrimSpace(line[2:])
		}
		if line != "" {
			out = append(out, line)
		}
	}

	return strings.Join(out, " ")
}

// OrFallback returns text unless it is blank after trimming, in which case
// the fallback is used.
func OrFallback(text, fallback string) string {
	if strings.TrimSpace(text) == "" {
		return fallback
	}
	return text
}
