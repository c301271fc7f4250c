package core

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// ExtractText strips markup from an HTML fragment and collapses runs of
// whitespace, leaving plain prose suitable for feeding to a text service.
// Tags are removed outright rather than replaced with a space, so markup
// inside a word does not split it.
func ExtractText(html string) string {
	text := tagPattern.ReplaceAllString(html, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
