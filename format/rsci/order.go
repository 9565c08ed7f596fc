package rsci

import (
	"sort"

	"github.com/lehigh-university-libraries/rsciexport/source"
)

// NoSection is the previous section before the first article of an issue.
const NoSection int64 = -1

// SortByStartingPage returns the submissions ordered by starting page.
// Articles on the same page keep their input order. The input is not
// modified.
func SortByStartingPage(subs []*source.Submission) []*source.Submission {
	sorted := make([]*source.Submission, len(subs))
	copy(sorted, subs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartingPage() < sorted[j].StartingPage()
	})
	return sorted
}

// SectionChanged reports whether a section node belongs before an article
// of section current that follows one of section previous.
func SectionChanged(exportSections bool, previous, current int64) bool {
	return exportSections && previous != current
}

// IssuePageRange returns the lowest starting page and the highest ending
// page of the submissions.
func IssuePageRange(subs []*source.Submission) (start, end int, err error) {
	if len(subs) == 0 {
		return 0, 0, ErrEmptyPageRange
	}
	start, end = subs[0].StartingPage(), subs[0].EndingPage()
	for _, sub := range subs[1:] {
		start = min(start, sub.StartingPage())
		end = max(end, sub.EndingPage())
	}
	return start, end, nil
}
