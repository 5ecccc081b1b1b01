package markdown

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrOverlappingEdits = errors.New("overlapping edits")

// Edit replaces source[Start:End] with Replacement. Offsets are byte offsets
// into the original source, End exclusive.
type Edit struct {
	Start       int
	End         int
	Replacement string
}

// ApplyEdits applies non-overlapping edits to source. Edits may be given in
// any order; offsets always refer to the unmodified source.
func ApplyEdits(source string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End < sorted[j].End
		}
		return sorted[i].Start < sorted[j].Start
	})

	var b strings.Builder
	b.Grow(len(source))
	pos := 0
	for i, e := range sorted {
		switch {
		case e.Start < 0 || e.End < e.Start:
			return "", fmt.Errorf("edit %d: invalid range [%d,%d)", i, e.Start, e.End)
		case e.End > len(source):
			return "", fmt.Errorf("edit %d: range [%d,%d) out of bounds", i, e.Start, e.End)
		case e.Start < pos:
			return "", fmt.Errorf("edit %d: %w", i, ErrOverlappingEdits)
		}
		b.WriteString(source[pos:e.Start])
		b.WriteString(e.Replacement)
		pos = e.End
	}
	b.WriteString(source[pos:])
	return b.String(), nil
}
