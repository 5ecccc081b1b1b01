package release

import (
	"slices"
	"sort"
	"time"

	"git.home.luguber.info/inful/relnotes/internal/dates"
)

// Aggregator collects updates across documents, remembering document order.
type Aggregator struct {
	updates   []Update
	documents int
}

// AddDocument records the updates parsed from the next document.
func (a *Aggregator) AddDocument(updates []Update) {
	idx := a.documents
	a.documents++
	for _, u := range updates {
		u.Source = idx
		a.updates = append(a.updates, u)
	}
}

// Len returns the number of collected updates.
func (a *Aggregator) Len() int { return len(a.updates) }

// Sorted returns every update, newest first. Equal dates keep document order,
// and sentinel-dated updates end up last.
func (a *Aggregator) Sorted() []Update {
	out := slices.Clone(a.updates)
	SortNewestFirst(out)
	return out
}

// SortNewestFirst stable-sorts updates by OccurredAt descending.
func SortNewestFirst(updates []Update) {
	slices.SortStableFunc(updates, func(x, y Update) int {
		return y.OccurredAt.Compare(x.OccurredAt)
	})
}

// YearGroup is one archive page worth of updates.
type YearGroup struct {
	Year    int
	Updates []Update
}

// Partition splits sorted updates into the current page and yearly archives.
type Partition struct {
	CurrentYear int
	CutoffYear  int
	// Current holds updates from CutoffYear onwards.
	Current []Update
	// Archive is ordered by year, newest first.
	Archive []YearGroup
	// Undated updates had no parseable date and are left out of every page.
	Undated []Update
}

// ArchiveYears returns the archive years in page order.
func (p Partition) ArchiveYears() []int {
	years := make([]int, len(p.Archive))
	for i, g := range p.Archive {
		years[i] = g.Year
	}
	return years
}

// Partition groups the sorted updates relative to now. Updates dated within
// window years before now's year stay current; older ones are archived per year.
func (a *Aggregator) Partition(now time.Time, window int) Partition {
	if window < 0 {
		window = 0
	}
	p := Partition{CurrentYear: now.Year(), CutoffYear: now.Year() - window}

	byYear := map[int][]Update{}
	for _, u := range a.Sorted() {
		switch year := u.OccurredAt.Year(); {
		case dates.IsSentinel(u.OccurredAt):
			p.Undated = append(p.Undated, u)
		case year >= p.CutoffYear:
			p.Current = append(p.Current, u)
		default:
			byYear[year] = append(byYear[year], u)
		}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	for _, y := range years {
		p.Archive = append(p.Archive, YearGroup{Year: y, Updates: byYear[y]})
	}
	return p
}
