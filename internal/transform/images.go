package transform

import (
	"context"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/relnotes/internal/markdown"
)

var imageRe = regexp.MustCompile(`!\[(.*?)\]\(([^)\s"]+)(?:\s+"(.*?)")?\)`)

// ImageResolver maps a remote image locator to the reference used in output.
type ImageResolver interface {
	Resolve(ctx context.Context, locator string) string
}

// Caption picks the frame caption: the title unless it is a "=WxH" size hint,
// then the alt text.
func Caption(alt, title string) string {
	if strings.HasPrefix(strings.TrimSpace(title), "=") {
		title = ""
	}
	if title != "" {
		return title
	}
	return alt
}

func attr(s string) string { return strings.ReplaceAll(s, `"`, "&quot;") }

// FrameImage renders one image as a captioned Frame block.
func FrameImage(src, alt, caption string) string {
	img := `<img src="` + src + `" alt="` + attr(alt) + `" />`
	if caption == "" {
		return "\n\n<Frame>" + img + "</Frame>\n\n"
	}
	return "\n\n<Frame caption=\"" + attr(caption) + "\">" + img + "</Frame>\n\n"
}

// ConvertImages rewrites Markdown images into Frame blocks, resolving each
// locator through r. A nil resolver keeps locators as written.
func ConvertImages(ctx context.Context, text string, r ImageResolver) string {
	matches := imageRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	edits := make([]markdown.Edit, 0, len(matches))
	for _, m := range matches {
		alt := text[m[2]:m[3]]
		src := text[m[4]:m[5]]
		title := ""
		if m[6] >= 0 {
			title = text[m[6]:m[7]]
		}
		if r != nil {
			src = r.Resolve(ctx, src)
		}
		edits = append(edits, markdown.Edit{
			Start:       m[0],
			End:         m[1],
			Replacement: FrameImage(src, alt, Caption(alt, title)),
		})
	}

	out, err := markdown.ApplyEdits(text, edits)
	if err != nil {
		// Regexp matches never overlap.
		return text
	}
	return out
}
