package frontmatterops

import (
	"git.home.luguber.info/inful/relnotes/internal/frontmatter"
	"github.com/inful/mdfp"
)

// Read splits a document into parsed front matter fields and body. Input
// without front matter yields empty fields and the whole input as body.
func Read(content []byte) (fields map[string]any, body []byte, err error) {
	doc, err := frontmatter.Split(content)
	if err != nil {
		return nil, nil, err
	}
	fields, err = frontmatter.Parse(doc.Front)
	if err != nil {
		return nil, nil, err
	}
	return fields, doc.Body, nil
}

// StoredFingerprint returns the fingerprint recorded in content, or "" when
// there is none or the front matter cannot be read.
func StoredFingerprint(content []byte) string {
	fields, _, err := Read(content)
	if err != nil {
		return ""
	}
	fp, _ := fields[mdfp.FingerprintField].(string)
	return fp
}

// StringField returns fields[key] when it is a non-empty string.
func StringField(fields map[string]any, key string) (string, bool) {
	s, ok := fields[key].(string)
	return s, ok && s != ""
}
