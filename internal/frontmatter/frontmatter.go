// Package frontmatter splits and assembles YAML front matter blocks.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opened a front matter
// block but never closed it.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Document is a page split into its raw front matter and body.
type Document struct {
	Front   []byte
	Body    []byte
	Had     bool
	Newline string
}

// Split separates `---` delimited YAML front matter from the body. Input
// without an opening delimiter is returned as body only.
func Split(content []byte) (Document, error) {
	nl := detectNewline(content)
	doc := Document{Body: content, Newline: nl}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return doc, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		doc.Front, doc.Body, doc.Had = []byte{}, content[start+len(open):], true
		return doc, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the final line without a newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			end := len(content) - len("---")
			doc.Front, doc.Body, doc.Had = content[start:end], []byte{}, true
			return doc, nil
		}
		return Document{}, ErrMissingClosingDelimiter
	}

	doc.Front = content[start : start+idx+len(nl)]
	doc.Body = content[start+idx+len(closeSeq):]
	doc.Had = true
	return doc, nil
}

// Join reassembles front matter and body. Without front matter the body is
// returned as is.
func Join(front, body []byte, newline string) []byte {
	if front == nil {
		return body
	}
	if newline == "" {
		newline = "\n"
	}
	delim := []byte("---" + newline)
	out := make([]byte, 0, 2*len(delim)+len(front)+len(body))
	out = append(out, delim...)
	out = append(out, front...)
	out = append(out, delim...)
	return append(out, body...)
}

// Parse decodes raw front matter (without delimiters) into a map.
func Parse(front []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(front)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(front, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
