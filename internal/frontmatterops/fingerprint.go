// Package frontmatterops renders and inspects generated pages' front matter,
// including the content fingerprint used to skip unchanged writes.
package frontmatterops

import (
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/relnotes/internal/frontmatter"
)

// ComputeFingerprint hashes fields (minus any existing fingerprint) and body.
// The serialized YAML has its trailing newline trimmed before hashing.
func ComputeFingerprint(fields []frontmatter.Field, body []byte) (string, error) {
	forHash := make([]frontmatter.Field, 0, len(fields))
	for _, f := range fields {
		if f.Key == mdfp.FingerprintField {
			continue
		}
		forHash = append(forHash, f)
	}

	front := ""
	if len(forHash) > 0 {
		serialized, err := frontmatter.Serialize(forHash)
		if err != nil {
			return "", err
		}
		front = strings.TrimSuffix(string(serialized), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(front, string(body)), nil
}

// Render produces a complete page: fields plus a computed fingerprint, then body.
func Render(fields []frontmatter.Field, body []byte) (content []byte, fingerprint string, err error) {
	fingerprint, err = ComputeFingerprint(fields, body)
	if err != nil {
		return nil, "", err
	}
	withFP := make([]frontmatter.Field, 0, len(fields)+1)
	for _, f := range fields {
		if f.Key != mdfp.FingerprintField {
			withFP = append(withFP, f)
		}
	}
	withFP = append(withFP, frontmatter.Field{Key: mdfp.FingerprintField, Value: fingerprint})

	front, err := frontmatter.Serialize(withFP)
	if err != nil {
		return nil, "", err
	}
	return frontmatter.Join(front, body, "\n"), fingerprint, nil
}
