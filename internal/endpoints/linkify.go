package endpoints

import (
	"regexp"
	"strings"
)

// referenceRe matches an HTTP method followed by a path, optionally wrapped in
// backticks. Escaped braces (\{ \}) are part of the path token.
var referenceRe = regexp.MustCompile("(`?)\\b(GET|POST|PUT|PATCH|DELETE|HEAD|OPTIONS)[ \\t]+(/[^\\s`<>()\\[\\]\"']*)(`?)")

const trailingPunctuation = ".,;:!?"

// Linkify rewrites every resolvable endpoint reference in text into a markdown
// link. Unresolvable references and references already inside link text are
// left untouched.
func (r *Resolver) Linkify(text string) string {
	matches := referenceRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > 0 && text[start-1] == '[' {
			continue
		}
		openTick := m[3] > m[2]
		closeTick := m[9] > m[8]
		method := text[m[4]:m[5]]
		rawPath := text[m[6]:m[7]]

		path := strings.TrimRight(rawPath, trailingPunctuation)
		trimmed := rawPath[len(path):]

		link, tier := r.Resolve(method, unescapeBraces(path))
		if tier == TierUnresolved {
			continue
		}

		// Backticks stay inside the link text only when they pair up around
		// the reference itself.
		label := method + text[m[5]:m[6]] + path
		lead, tail := text[last:start], trimmed
		if openTick && closeTick && trimmed == "" {
			// Code spans show backslashes literally.
			label = "`" + unescapeBraces(label) + "`"
		} else {
			if openTick {
				lead += "`"
			}
			if closeTick {
				tail += "`"
			}
		}

		b.WriteString(lead)
		b.WriteString("[" + label + "](" + link + ")")
		b.WriteString(tail)
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

var braceUnescaper = strings.NewReplacer(`\{`, "{", `\}`, "}")

func unescapeBraces(s string) string { return braceUnescaper.Replace(s) }
