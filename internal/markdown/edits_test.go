package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEdits(t *testing.T) {
	tests := []struct {
		name   string
		source string
		edits  []Edit
		want   string
	}{
		{name: "no edits", source: "abc", want: "abc"},
		{
			name:   "unordered",
			source: "one two three",
			edits: []Edit{
				{Start: 8, End: 13, Replacement: "3"},
				{Start: 0, End: 3, Replacement: "1"},
			},
			want: "1 two 3",
		},
		{
			name:   "insertion",
			source: "ab",
			edits:  []Edit{{Start: 1, End: 1, Replacement: "-"}},
			want:   "a-b",
		},
		{
			name:   "adjacent",
			source: "abcd",
			edits:  []Edit{{Start: 0, End: 2, Replacement: "X"}, {Start: 2, End: 4, Replacement: "Y"}},
			want:   "XY",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyEdits(tt.source, tt.edits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyEdits_Rejects(t *testing.T) {
	_, err := ApplyEdits("abcdef", []Edit{{Start: 0, End: 3}, {Start: 2, End: 4}})
	require.ErrorIs(t, err, ErrOverlappingEdits)

	_, err = ApplyEdits("abc", []Edit{{Start: 1, End: 9}})
	require.Error(t, err)

	_, err = ApplyEdits("abc", []Edit{{Start: 2, End: 1}})
	require.Error(t, err)
}
