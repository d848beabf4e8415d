package wiki

import (
	"testing"
	"time"
)

func ts(offset int) time.Time {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(offset) * time.Minute)
}

func logAt(offset int) *LogEntry {
	return &LogEntry{Type: LogTypeDelete, Action: LogActionDelete, ActorName: "Admin", Created: ts(offset)}
}

func revAt(offset int) *Revision {
	return &Revision{ActorName: "Editor", Created: ts(offset)}
}

func timestamps(merged []MergedEntry) []time.Time {
	out := make([]time.Time, len(merged))
	for i, e := range merged {
		out[i] = e.Created()
	}
	return out
}

func TestMergeTimeline(t *testing.T) {
	t.Run("interleaves newest first", func(t *testing.T) {
		log := []*LogEntry{logAt(100)}
		revs := []*Revision{revAt(110), revAt(90)}

		merged := MergeTimeline(log, revs)

		if len(merged) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(merged))
		}
		want := []time.Time{ts(110), ts(100), ts(90)}
		for i, ts := range timestamps(merged) {
			if !ts.Equal(want[i]) {
				t.Errorf("entry %d: expected %v, got %v", i, want[i], ts)
			}
		}
		if merged[0].Rev == nil || merged[1].Log == nil || merged[2].Rev == nil {
			t.Error("expected rev, log, rev sequence")
		}
	})

	t.Run("log wins timestamp ties", func(t *testing.T) {
		log := []*LogEntry{logAt(100)}
		revs := []*Revision{revAt(100)}

		merged := MergeTimeline(log, revs)

		if len(merged) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(merged))
		}
		if merged[0].Log == nil {
			t.Error("expected log entry first on tie")
		}
		if merged[1].Rev == nil {
			t.Error("expected revision second on tie")
		}
	})

	t.Run("preserves relative order within each source", func(t *testing.T) {
		log := []*LogEntry{logAt(95), logAt(85), logAt(75)}
		revs := []*Revision{revAt(100), revAt(90), revAt(80), revAt(70)}

		merged := MergeTimeline(log, revs)

		if len(merged) != 7 {
			t.Fatalf("expected 7 entries, got %d", len(merged))
		}

		var logSeen, revSeen []time.Time
		for _, e := range merged {
			if e.Log != nil {
				logSeen = append(logSeen, e.Log.Created)
			} else {
				revSeen = append(revSeen, e.Rev.Created)
			}
		}
		if len(logSeen) != len(log) || len(revSeen) != len(revs) {
			t.Fatal("every element of each source must appear exactly once")
		}
		for i := range log {
			if !logSeen[i].Equal(log[i].Created) {
				t.Errorf("log order changed at %d", i)
			}
		}
		for i := range revs {
			if !revSeen[i].Equal(revs[i].Created) {
				t.Errorf("revision order changed at %d", i)
			}
		}

		for i := 1; i < len(merged); i++ {
			if merged[i].Created().After(merged[i-1].Created()) {
				t.Errorf("output not newest-first at %d", i)
			}
		}
	})

	t.Run("empty log returns revisions verbatim", func(t *testing.T) {
		revs := []*Revision{revAt(30), revAt(20), revAt(10)}
		merged := MergeTimeline(nil, revs)

		if len(merged) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(merged))
		}
		for i, e := range merged {
			if e.Rev != revs[i] {
				t.Errorf("entry %d: expected revision %d", i, i)
			}
		}
	})

	t.Run("empty revisions returns log verbatim", func(t *testing.T) {
		log := []*LogEntry{logAt(30), logAt(20)}
		merged := MergeTimeline(log, nil)

		if len(merged) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(merged))
		}
		for i, e := range merged {
			if e.Log != log[i] {
				t.Errorf("entry %d: expected log entry %d", i, i)
			}
		}
	})

	t.Run("both empty", func(t *testing.T) {
		merged := MergeTimeline(nil, nil)
		if len(merged) != 0 {
			t.Errorf("expected empty merge, got %d entries", len(merged))
		}
	})
}
