package textutil

import (
	"html"
	"regexp"
	"strings"
)

// Product names and descriptions arrive from operator tooling and supplier
// feeds with markup, links and decorative symbols mixed in. Sanitizing
// happens once on the write path so every read sees clean text.

var (
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
	linkPattern = regexp.MustCompile(`(http|https|www)[^\s]*`)
)

// RemoveTags strips HTML tags after unescaping entities.
func RemoveTags(input string) string {
	return tagPattern.ReplaceAllString(html.UnescapeString(input), "")
}

// RemoveLinks strips bare URLs.
func RemoveLinks(input string) string {
	return linkPattern.ReplaceAllString(input, "")
}

// ReduceToLength cuts input down to at most length runes, preferring to cut
// on a word boundary.
func ReduceToLength(input string, length int) string {
	if length <= 0 {
		return ""
	}
	runes := []rune(input)
	if len(runes) <= length {
		return input
	}

	cut := string(runes[:length])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}

// CleanDescription is the write-path normalization applied to product
// descriptions: unescape, drop markup and links, collapse whitespace and
// bound the length.
func CleanDescription(input string, maxLength int) string {
	out := RemoveTags(input)
	out = RemoveLinks(out)
	out = strings.Join(strings.Fields(out), " ")
	return ReduceToLength(out, maxLength)
}
