package endpoints

import (
	"regexp"
	"strings"
	"unicode"
)

// Slugify turns free text or an identifier into a lower-case hyphenated word
// sequence. Camel-case and acronym runs are split: "APIKeys" -> "api-keys".
func Slugify(s string) string {
	runes := []rune(s)
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 && wordBoundary(runes, i) {
			flush()
		}
		cur = append(cur, unicode.ToLower(r))
	}
	flush()
	return strings.Join(words, "-")
}

// wordBoundary reports whether a new word starts at runes[i], given that
// runes[i-1] is part of the current word.
func wordBoundary(runes []rune, i int) bool {
	prev, r := runes[i-1], runes[i]
	if !unicode.IsUpper(r) {
		return false
	}
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	// Last capital of an acronym run starts the next word: HTTPServer -> HTTP Server.
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

var (
	fallbackSepRe = regexp.MustCompile(`[/{}]+`)
	hyphenRunRe   = regexp.MustCompile(`-{2,}`)
)

// FallbackSlug builds "<method>-<path>" with slashes and braces turned into hyphens.
func FallbackSlug(method, path string) string {
	s := strings.ToLower(method) + "-" + fallbackSepRe.ReplaceAllString(path, "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// OperationSlug prefers the slugified summary and falls back to FallbackSlug.
func OperationSlug(op Operation) string {
	if slug := Slugify(op.Summary); slug != "" {
		return slug
	}
	return FallbackSlug(op.Method, op.Path)
}
