package release

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/relnotes/internal/dates"
)

func at(year int) time.Time { return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC) }

func descriptions(updates []Update) []string {
	out := make([]string, len(updates))
	for i, u := range updates {
		out[i] = u.Description
	}
	return out
}

func TestSorted_NewestFirstUnparseableLast(t *testing.T) {
	var a Aggregator
	a.AddDocument([]Update{{Description: "2023", OccurredAt: at(2023)}})
	a.AddDocument([]Update{{Description: "undated", OccurredAt: dates.Sentinel}})
	a.AddDocument([]Update{{Description: "2024", OccurredAt: at(2024)}})

	assert.Equal(t, []string{"2024", "2023", "undated"}, descriptions(a.Sorted()))
}

func TestSorted_StableOnTies(t *testing.T) {
	var a Aggregator
	a.AddDocument([]Update{{Description: "doc0-a", OccurredAt: at(2024)}, {Description: "doc0-b", OccurredAt: at(2024)}})
	a.AddDocument([]Update{{Description: "doc1", OccurredAt: at(2024)}})

	sorted := a.Sorted()
	assert.Equal(t, []string{"doc0-a", "doc0-b", "doc1"}, descriptions(sorted))
	assert.Equal(t, []int{0, 0, 1}, []int{sorted[0].Source, sorted[1].Source, sorted[2].Source})
	assert.Equal(t, 3, a.Len())
}

func TestPartition(t *testing.T) {
	var a Aggregator
	a.AddDocument([]Update{
		{Description: "2025", OccurredAt: at(2025)},
		{Description: "2021", OccurredAt: at(2021)},
		{Description: "2024", OccurredAt: at(2024)},
		{Description: "undated", OccurredAt: dates.Sentinel},
		{Description: "2022", OccurredAt: at(2022)},
		{Description: "2022b", OccurredAt: at(2022).AddDate(0, 1, 0)},
	})

	p := a.Partition(time.Date(2025, time.October, 19, 0, 0, 0, 0, time.UTC), 1)

	assert.Equal(t, 2025, p.CurrentYear)
	assert.Equal(t, 2024, p.CutoffYear)
	assert.Equal(t, []string{"2025", "2024"}, descriptions(p.Current))
	assert.Equal(t, []int{2022, 2021}, p.ArchiveYears())
	require.Len(t, p.Archive, 2)
	assert.Equal(t, []string{"2022b", "2022"}, descriptions(p.Archive[0].Updates))
	assert.Equal(t, []string{"undated"}, descriptions(p.Undated))
}

func TestPartition_Empty(t *testing.T) {
	var a Aggregator
	p := a.Partition(time.Now(), 1)
	assert.Empty(t, p.Current)
	assert.Empty(t, p.Archive)
	assert.Empty(t, p.ArchiveYears())
}
