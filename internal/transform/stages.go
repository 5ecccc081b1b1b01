package transform

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/relnotes/internal/foundation/normalization"
)

var (
	topHeadingRe = regexp.MustCompile(`(?m)^#{1,2}[ \t]+(.*)$`)
	subHeadingRe = regexp.MustCompile(`(?m)^###[ \t]+(.*)$`)

	calloutRe = regexp.MustCompile(`(?s):::(\w+)\s+(.*?):::`)

	frameGapRe = regexp.MustCompile(`</Frame>\s*<Frame`)

	loneBackslashRe = regexp.MustCompile(`(?m)^[ \t]*\\[ \t]*$`)
)

// RemapHeadings lowers level 1 and 2 headings to level 4 and turns level 3
// headings into bold text.
func RemapHeadings(text string) string {
	text = topHeadingRe.ReplaceAllString(text, "\n#### $1")
	return subHeadingRe.ReplaceAllString(text, "\n**$1**")
}

// safeTags may follow '<' unescaped, optionally as a closing tag.
var safeTags = []string{"Note", "Tip", "Warning", "Info", "Success", "Danger", "Frame", "img", "br"}

// EscapeStructural backslash-escapes braces and any '<' that does not open a
// known component tag or an autolink. Characters already preceded by a
// backslash are left alone.
func EscapeStructural(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 16)
	for i := 0; i < len(text); i++ {
		c := text[i]
		escaped := i > 0 && text[i-1] == '\\'
		switch {
		case (c == '{' || c == '}') && !escaped:
			b.WriteByte('\\')
		case c == '<' && !escaped && !safeAfterAngle(text[i+1:]):
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func safeAfterAngle(rest string) bool {
	if strings.HasPrefix(rest, "http:") || strings.HasPrefix(rest, "https:") {
		return true
	}
	rest = strings.TrimPrefix(rest, "/")
	for _, tag := range safeTags {
		after, ok := strings.CutPrefix(rest, tag)
		if !ok {
			continue
		}
		if after == "" {
			return true
		}
		switch after[0] {
		case ' ', '\t', '\n', '/', '>':
			return true
		}
	}
	return false
}

// Callout names used by Mintlify.
const (
	CalloutNote    = "Note"
	CalloutTip     = "Tip"
	CalloutWarning = "Warning"
)

var calloutKinds = normalization.NewNormalizer(map[string]string{
	"tip":     CalloutTip,
	"success": CalloutTip,
	"warning": CalloutWarning,
	"danger":  CalloutWarning,
	"info":    CalloutNote,
	"note":    CalloutNote,
}, CalloutNote)

// CalloutFor maps an admonition kind onto a callout component.
func CalloutFor(kind string) string { return calloutKinds.Normalize(kind) }

// ConvertCallouts turns ":::kind ... :::" blocks into callout components.
func ConvertCallouts(text string) string {
	return calloutRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := calloutRe.FindStringSubmatch(m)
		component := CalloutFor(sub[1])
		return "\n<" + component + ">\n" + strings.TrimSpace(sub[2]) + "\n</" + component + ">\n"
	})
}

// SeparateFrames inserts a visible break between media blocks that only have
// whitespace between them.
func SeparateFrames(text string) string {
	return frameGapRe.ReplaceAllString(text, "</Frame>\n\n<br />\n\n<Frame")
}

// CleanupArtifacts unescapes literal "\n" sequences and drops lines holding
// nothing but a backslash.
func CleanupArtifacts(text string) string {
	text = strings.ReplaceAll(text, `\n`, "\n")
	return loneBackslashRe.ReplaceAllString(text, "")
}
