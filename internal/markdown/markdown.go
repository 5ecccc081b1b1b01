package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/relnotes/internal/util/sets"
)

// Image is an image reference found in a Markdown body.
type Image struct {
	Alt         string
	Destination string
	Title       string
}

// ParseBody parses a Markdown body (front matter already removed) into a Goldmark AST.
func ParseBody(body []byte) gmast.Node {
	return goldmark.New().Parser().Parse(text.NewReader(body))
}

// ExtractImages returns every image reference in body in document order.
// Fenced and indented code is ignored because Goldmark never produces image
// nodes inside code blocks.
//
// This is an analysis API; it does not attempt to re-render Markdown.
func ExtractImages(body []byte) []Image {
	root := ParseBody(body)

	images := make([]Image, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if img, ok := n.(*gmast.Image); ok {
			images = append(images, Image{
				Alt:         nodeText(img, body),
				Destination: string(img.Destination),
				Title:       string(img.Title),
			})
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return images
}

// RemoteImageDestinations returns the distinct http(s) image destinations in
// body, in first-seen order.
func RemoteImageDestinations(body []byte) []string {
	out := make([]string, 0)
	for _, img := range ExtractImages(body) {
		dest := img.Destination
		if strings.HasPrefix(dest, "https://") || strings.HasPrefix(dest, "http://") {
			out = append(out, dest)
		}
	}
	return sets.Unique(out)
}

func nodeText(n gmast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(source))
		case *gmast.String:
			b.Write(t.Value)
		default:
			b.WriteString(nodeText(c, source))
		}
	}
	return b.String()
}
