package engine

import (
	"regexp"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanHTML strips HTML tags and collapses whitespace.
func CleanHTML(s string) string {
	s = htmlTagRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8.
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}

// CompanyTitleKey returns a normalized dedup key for cross-source job
// deduplication when no URL is available: same company + same title collapse
// to the same key regardless of casing or spacing.
func CompanyTitleKey(company, title string) string {
	norm := func(s string) string {
		s = strings.ToLower(strings.TrimSpace(s))
		return whitespaceRe.ReplaceAllString(s, " ")
	}
	return norm(company) + "_" + norm(title)
}
