package classify

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeText lower-cases the input, collapses whitespace runs to single
// spaces and trims the ends. Empty input normalizes to the empty string.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " ")))
}
