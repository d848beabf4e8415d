package wiki

import "time"

// MergedEntry is one entry of a page's unified change timeline: either a
// log entry or a revision, never both.
type MergedEntry struct {
	Log *LogEntry
	Rev *Revision
}

// Created returns the entry's timestamp regardless of which side it holds.
func (e MergedEntry) Created() time.Time {
	if e.Log != nil {
		return e.Log.Created
	}
	return e.Rev.Created
}

// MergeTimeline interleaves a page's log entries and revisions, both already
// sorted newest-first, into one newest-first sequence. The merge is stable:
// relative order within each input is preserved, and when a revision and a
// log entry share a timestamp the log entry comes first. Either input may be
// empty, in which case the other is returned verbatim.
func MergeTimeline(log []*LogEntry, revisions []*Revision) []MergedEntry {
	merged := make([]MergedEntry, 0, len(log)+len(revisions))

	for len(log) > 0 && len(revisions) > 0 {
		if revisions[0].Created.After(log[0].Created) {
			merged = append(merged, MergedEntry{Rev: revisions[0]})
			revisions = revisions[1:]
		} else {
			merged = append(merged, MergedEntry{Log: log[0]})
			log = log[1:]
		}
	}

	for _, entry := range log {
		merged = append(merged, MergedEntry{Log: entry})
	}
	for _, rev := range revisions {
		merged = append(merged, MergedEntry{Rev: rev})
	}

	return merged
}
