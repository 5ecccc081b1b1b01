// Package pages renders MDX pages made of <Update> blocks and writes them,
// skipping files whose content fingerprint is unchanged.
package pages

import (
	"strings"

	"git.home.luguber.info/inful/relnotes/internal/frontmatter"
	"git.home.luguber.info/inful/relnotes/internal/frontmatterops"
)

// Block is one <Update> entry. Content is already in the target dialect.
type Block struct {
	Label       string
	Description string
	Content     string
}

// Page is one MDX file. Intro is free-standing content placed before the
// blocks.
type Page struct {
	Title       string
	Description string
	Intro       string
	Blocks      []Block
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;")

// Body renders the page's blocks without front matter.
func (p Page) Body() string {
	var b strings.Builder
	if intro := strings.TrimSpace(p.Intro); intro != "" {
		b.WriteString("\n")
		b.WriteString(intro)
		b.WriteString("\n")
	}
	for _, blk := range p.Blocks {
		b.WriteString("\n<Update label=\"")
		b.WriteString(attrEscaper.Replace(blk.Label))
		b.WriteString("\" description=\"")
		b.WriteString(attrEscaper.Replace(blk.Description))
		b.WriteString("\">\n\n")
		b.WriteString(strings.TrimSpace(blk.Content))
		b.WriteString("\n\n</Update>\n")
	}
	return b.String()
}

// Fields is the page's front matter, before the fingerprint is added.
func (p Page) Fields() []frontmatter.Field {
	return []frontmatter.Field{
		{Key: "title", Value: p.Title},
		{Key: "description", Value: p.Description},
	}
}

// Render returns the complete file content and its fingerprint.
func Render(p Page) ([]byte, string, error) {
	return frontmatterops.Render(p.Fields(), []byte(p.Body()))
}
