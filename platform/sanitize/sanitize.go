// Package sanitize cleans scraped marketplace text before it enters the
// catalog or an AI prompt.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// htmlTagRegex matches HTML tags
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
	// spaceRegex collapses whitespace runs, including newlines from scraped pages
	spaceRegex = regexp.MustCompile(`\s+`)
)

// StripHTML removes all HTML tags from a string. Scraped seller pages embed
// markup inside description fields; the catalog stores plain text only.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	// Decode common HTML entities
	result = strings.ReplaceAll(result, "&lt;", "<")
	result = strings.ReplaceAll(result, "&gt;", ">")
	result = strings.ReplaceAll(result, "&amp;", "&")
	result = strings.ReplaceAll(result, "&quot;", "\"")
	result = strings.ReplaceAll(result, "&#39;", "'")
	// Re-strip after entity decode to catch encoded tags
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text strips HTML and collapses whitespace runs to single spaces.
func Text(s string) string {
	return strings.TrimSpace(spaceRegex.ReplaceAllString(StripHTML(s), " "))
}
