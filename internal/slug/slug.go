// Package slug derives URL-safe tenant identifiers from display names.
package slug

import (
	"regexp"
	"strings"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s-]`)
	separators = regexp.MustCompile(`[\s_]+`)
)

// Make lowercases the name, strips non-word characters and collapses
// whitespace/underscore runs into single hyphens. Uniqueness against
// existing restaurants is the caller's job.
func Make(name string) string {
	s := nonWord.ReplaceAllString(strings.ToLower(name), "")
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
