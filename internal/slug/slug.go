// Package slug converts free-text song titles into URL-safe identifiers.
//
// The codec is one-directional and total: any input yields a slug (possibly
// empty). Slugs are never stored independently of the title they derive
// from; callers recompute them whenever the title changes.
package slug

import (
	"regexp"
	"strings"
)

var (
	// stripRE removes every character that is not a letter, digit,
	// whitespace, or hyphen.
	stripRE = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)

	// spaceRE matches runs of whitespace, each collapsed to a single hyphen.
	spaceRE = regexp.MustCompile(`\s+`)
)

// Make derives the URL slug for a title: strip disallowed characters, trim
// surrounding whitespace, then join the remaining words with single hyphens.
//
//	Make("Betonowy Las")   == "Betonowy-Las"
//	Make("  Jak  nie ty ") == "Jak-nie-ty"
//	Make("&*%")            == ""
func Make(title string) string {
	s := stripRE.ReplaceAllString(title, "")
	s = strings.TrimSpace(s)
	return spaceRE.ReplaceAllString(s, "-")
}
