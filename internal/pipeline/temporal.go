package pipeline

import (
	"regexp"
	"time"
)

// dateMentionRE matches "Month D, YYYY" style calendar-date mentions, the
// one format the program pages use for deadlines. Broadening it changes
// which passages count as dated and thus droppable; do so cautiously.
var dateMentionRE = regexp.MustCompile(`[A-Za-z]+ \d{1,2}, \d{4}`)

// dateMentionLayout parses what dateMentionRE matches.
const dateMentionLayout = "January 2, 2006"

// TemporalFilter drops passages that mention already-elapsed calendar dates.
// Retrieved passages may describe deadlines that are no longer valid, and
// surfacing a stale deadline is a worse failure than omitting the passage.
//
// The policy is deliberately conservative: a passage is dropped when ANY
// date in it has elapsed, even if other dates in the same passage are still
// ahead; a passage with no parseable date at all is always kept (absence of
// evidence is not evidence of expiry). Unparseable date-like substrings are
// ignored.
type TemporalFilter struct{}

// Filter returns the passages whose date mentions have not elapsed relative
// to reference, preserving input order. Comparing the same output again
// drops nothing further. The comparison is by calendar date, not instant.
func (TemporalFilter) Filter(passages []Passage, reference time.Time) []Passage {
	kept := make([]Passage, 0, len(passages))
	for _, p := range passages {
		if hasElapsedDate(p.Content, reference) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// hasElapsedDate reports whether text mentions at least one parseable
// calendar date strictly earlier than reference's calendar date.
func hasElapsedDate(text string, reference time.Time) bool {
	for _, mention := range dateMentionRE.FindAllString(text, -1) {
		d, err := time.Parse(dateMentionLayout, mention)
		if err != nil {
			continue
		}
		if dateOrdinal(d) < dateOrdinal(reference) {
			return true
		}
	}
	return false
}

// dateOrdinal collapses a time to a comparable calendar-date integer,
// ignoring clock time and zone.
func dateOrdinal(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
