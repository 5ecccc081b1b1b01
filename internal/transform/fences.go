package transform

import (
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```.*?```")

// Segment is a run of either fenced code or prose.
type Segment struct {
	Text string
	Code bool
}

// SplitFences partitions s into alternating prose and fenced-code segments.
// Joining the Text of every segment yields s again. An unbalanced fence is
// treated as prose.
func SplitFences(s string) []Segment {
	locs := fenceRe.FindAllStringIndex(s, -1)
	segments := make([]Segment, 0, 2*len(locs)+1)
	pos := 0
	for _, loc := range locs {
		if loc[0] > pos {
			segments = append(segments, Segment{Text: s[pos:loc[0]]})
		}
		segments = append(segments, Segment{Text: s[loc[0]:loc[1]], Code: true})
		pos = loc[1]
	}
	if pos < len(s) {
		segments = append(segments, Segment{Text: s[pos:]})
	}
	return segments
}

// JoinSegments concatenates segments in order.
func JoinSegments(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}
