package release

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/relnotes/internal/dates"
)

var (
	// <ID>: <anything> - <date label>; the last whitespace-led hyphen separates the label.
	titleRe         = regexp.MustCompile(`^\s*([A-Za-z]+\d[\w.]*)\s*:.*\s-\s*(\S.*?)\s*$`)
	patchNotesRe    = regexp.MustCompile(`(?im)^[ \t]*#{2,}[^\n]*patch notes[^\n]*$`)
	subHeadingRe    = regexp.MustCompile(`(?m)^[ \t]*###[ \t]`)
	patchHeaderRe   = regexp.MustCompile(`\b([A-Za-z]+\d[\w.]*)\s*-\s*(.+?)\s*$`)
	headingPrefixRe = regexp.MustCompile(`^###\s*`)
)

// ParseTitle returns the release identifier and date label of a document title,
// or UnknownLabel for both when the title does not follow "<ID>: ... - <label>".
func ParseTitle(title string) (id, label string) {
	m := titleRe.FindStringSubmatch(title)
	if m == nil {
		return UnknownLabel, UnknownLabel
	}
	return m[1], m[2]
}

// ParseDocument splits one document into its release update and patch updates,
// in source order. Malformed metadata degrades to UnknownLabel; it is never an error.
func ParseDocument(title, body string) []Update {
	id, label := ParseTitle(title)
	occurred := dates.Sentinel
	if label != UnknownLabel {
		occurred = dates.Parse(label)
	}

	main, patches := splitPatchNotes(body)

	var updates []Update
	if main = strings.TrimSpace(main); main != "" {
		updates = append(updates, Update{
			Label:       label,
			Description: "Release " + id,
			Content:     main,
			OccurredAt:  occurred,
		})
	}
	return append(updates, parsePatches(patches)...)
}

// splitPatchNotes cuts body at the first heading naming a Patch Notes section.
func splitPatchNotes(body string) (main, patches string) {
	loc := patchNotesRe.FindStringIndex(body)
	if loc == nil {
		return body, ""
	}
	return body[:loc[0]], body[loc[1]:]
}

func parsePatches(content string) []Update {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	starts := subHeadingRe.FindAllStringIndex(content, -1)
	var updates []Update
	for i, loc := range starts {
		end := len(content)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		if u, ok := parsePatchSegment(content[loc[0]:end]); ok {
			updates = append(updates, u)
		}
	}
	return updates
}

func parsePatchSegment(segment string) (Update, bool) {
	segment = strings.TrimSpace(segment)
	nl := strings.IndexByte(segment, '\n')
	if nl < 0 {
		return Update{}, false
	}
	header := strings.TrimSpace(headingPrefixRe.ReplaceAllString(segment[:nl], ""))
	m := patchHeaderRe.FindStringSubmatch(header)
	if m == nil {
		return Update{}, false
	}
	return Update{
		Label:       m[2],
		Description: "Patch " + m[1],
		Content:     strings.TrimSpace(segment[nl+1:]),
		OccurredAt:  dates.Parse(m[2]),
	}, true
}
