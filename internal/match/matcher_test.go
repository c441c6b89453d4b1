package match

import (
	"errors"
	"testing"
	"time"

	"filmtag/internal/photo"
	"filmtag/internal/services"
	"filmtag/internal/shootlog"
)

func tsPtr(t time.Time) *time.Time { return &t }

func makePhotos(times ...*time.Time) []photo.Ref {
	refs := make([]photo.Ref, len(times))
	for i, ts := range times {
		refs[i] = photo.Ref{Path: "/roll/" + string(rune('a'+i)) + ".jpg", Index: i, KnownTimestamp: ts}
	}
	return refs
}

func makeRecords(times ...*time.Time) []shootlog.Record {
	records := make([]shootlog.Record, len(times))
	for i, ts := range times {
		records[i] = shootlog.Record{Index: i, Timestamp: ts}
	}
	return records
}

func TestSequenceIsPositionalBijection(t *testing.T) {
	t.Parallel()

	photos := makePhotos(nil, nil, nil, nil, nil)
	records := makeRecords(nil, nil, nil)

	result, err := Match(photos, records, Options{Strategy: StrategySequence})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if result.Matched != 3 || result.Total != 5 {
		t.Fatalf("unexpected counts: matched=%d total=%d", result.Matched, result.Total)
	}
	for i := 0; i < 3; i++ {
		record := result.Assignments[i].Record
		if record == nil || record.Index != i {
			t.Fatalf("photo %d not matched to record %d: %+v", i, i, record)
		}
	}
	for i := 3; i < 5; i++ {
		if result.Assignments[i].Record != nil {
			t.Fatalf("photo %d should be unmatched", i)
		}
	}
}

func TestSequenceOffsetShiftsAlignment(t *testing.T) {
	t.Parallel()

	photos := makePhotos(nil, nil, nil, nil, nil)
	records := makeRecords(nil, nil, nil, nil, nil)

	result, err := Match(photos, records, Options{Strategy: StrategySequence, Offset: 1})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if result.Assignments[0].Record != nil {
		t.Fatal("photo 0 should be unmatched with offset 1")
	}
	for i := 0; i <= 3; i++ {
		record := result.Assignments[i+1].Record
		if record == nil || record.Index != i {
			t.Fatalf("photo %d should hold record %d, got %+v", i+1, i, record)
		}
	}
	// records[4] has no slot.
	if result.Matched != 4 {
		t.Fatalf("unexpected matched count: %d", result.Matched)
	}
}

func TestSequenceOffsetRoundTrip(t *testing.T) {
	t.Parallel()

	photos := makePhotos(nil, nil, nil, nil, nil, nil)
	records := makeRecords(nil, nil, nil, nil, nil, nil)

	base, err := Match(photos, records, Options{Strategy: StrategySequence})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}

	for _, k := range []int{1, 2, 3} {
		shifted, err := Match(photos, records, Options{Strategy: StrategySequence, Offset: k})
		if err != nil {
			t.Fatalf("Match offset %d returned error: %v", k, err)
		}
		// Shifting by +k then -k restores the original pairing on the
		// overlap that survives both truncations.
		for i := range shifted.Assignments {
			record := shifted.Assignments[i].Record
			if record == nil {
				continue
			}
			restored := record.Index + k
			if restored != i {
				t.Fatalf("offset %d: photo %d holds record %d", k, i, record.Index)
			}
			baseRecord := base.Assignments[record.Index].Record
			if baseRecord == nil || baseRecord.Index != record.Index {
				t.Fatalf("offset %d: base mapping disagrees at record %d", k, record.Index)
			}
		}
	}
}

func TestSequenceNegativeOffsetNeverWraps(t *testing.T) {
	t.Parallel()

	photos := makePhotos(nil, nil)
	records := makeRecords(nil, nil, nil)

	result, err := Match(photos, records, Options{Strategy: StrategySequence, Offset: -2})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	// records[2] lands on photos[0]; records[0] and records[1] fall off the
	// front and must not wrap around.
	if result.Matched != 1 {
		t.Fatalf("unexpected matched count: %d", result.Matched)
	}
	record := result.Assignments[0].Record
	if record == nil || record.Index != 2 {
		t.Fatalf("photo 0 should hold record 2, got %+v", record)
	}
}

func TestTimestampPicksSmallestDelta(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)
	photos := makePhotos(
		tsPtr(base),
		tsPtr(base.Add(2*time.Minute)),
		tsPtr(base.Add(10*time.Minute)),
	)
	records := makeRecords(tsPtr(base.Add(1 * time.Minute)))

	result, err := Match(photos, records, Options{Strategy: StrategyTimestamp, Tolerance: 5 * time.Minute})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if result.Matched != 1 {
		t.Fatalf("unexpected matched count: %d", result.Matched)
	}
	if result.Assignments[0].Record != nil {
		t.Fatal("photo 0 should lose the record to the closer photo 1")
	}
	if result.Assignments[1].Record == nil {
		t.Fatal("photo 1 should win the record with the smallest delta")
	}
	if result.Assignments[2].Record != nil {
		t.Fatal("photo 2 is outside the window")
	}
}

func TestTimestampGlobalGreedyBeatsFirstFit(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)
	// Photo 0 is 4m from record 0 but photo 1 is only 1m from it; under
	// per-photo first-fit photo 0 would steal record 0 and strand photo 1.
	photos := makePhotos(
		tsPtr(base.Add(4*time.Minute)),
		tsPtr(base.Add(1*time.Minute)),
	)
	records := makeRecords(
		tsPtr(base),
		tsPtr(base.Add(5*time.Minute)),
	)

	result, err := Match(photos, records, Options{Strategy: StrategyTimestamp, Tolerance: 5 * time.Minute})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if result.Matched != 2 {
		t.Fatalf("expected both photos matched, got %d", result.Matched)
	}
	if got := result.Assignments[0].Record.Index; got != 1 {
		t.Fatalf("photo 0 should hold record 1, got %d", got)
	}
	if got := result.Assignments[1].Record.Index; got != 0 {
		t.Fatalf("photo 1 should hold record 0, got %d", got)
	}
}

func TestTimestampIsInjective(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)
	photos := makePhotos(
		tsPtr(base),
		tsPtr(base.Add(30*time.Second)),
		tsPtr(base.Add(1*time.Minute)),
	)
	records := makeRecords(
		tsPtr(base.Add(10*time.Second)),
		tsPtr(base.Add(40*time.Second)),
	)

	result, err := Match(photos, records, Options{Strategy: StrategyTimestamp})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	seen := make(map[int]int)
	for pi, assignment := range result.Assignments {
		if assignment.Record == nil {
			continue
		}
		if prev, dup := seen[assignment.Record.Index]; dup {
			t.Fatalf("record %d assigned to photos %d and %d", assignment.Record.Index, prev, pi)
		}
		seen[assignment.Record.Index] = pi
	}
	if result.Matched != len(seen) {
		t.Fatalf("matched count %d disagrees with assignments %d", result.Matched, len(seen))
	}
}

func TestTimestampSkipsMissingTimestamps(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)
	photos := makePhotos(nil, tsPtr(base))
	records := makeRecords(tsPtr(base), nil)

	result, err := Match(photos, records, Options{Strategy: StrategyTimestamp})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if result.Matched != 1 {
		t.Fatalf("unexpected matched count: %d", result.Matched)
	}
	if result.Assignments[0].Record != nil {
		t.Fatal("photo without timestamp must stay unmatched")
	}
}

func TestHybridFallsBackBelowThreshold(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)
	// Only 1 of 4 photos can timestamp-match: rate 0.25 < 0.5.
	photos := makePhotos(tsPtr(base), nil, nil, nil)
	records := makeRecords(tsPtr(base), nil, nil, nil)

	result, err := Match(photos, records, Options{Strategy: StrategyHybrid})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if result.Strategy != StrategySequence {
		t.Fatalf("expected sequence fallback, got %q", result.Strategy)
	}
	if result.Matched != 4 {
		t.Fatalf("expected full positional match, got %d", result.Matched)
	}
}

func TestHybridKeepsTimestampAboveThreshold(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)
	photos := makePhotos(tsPtr(base), tsPtr(base.Add(time.Minute)))
	records := makeRecords(tsPtr(base), tsPtr(base.Add(time.Minute)))

	result, err := Match(photos, records, Options{Strategy: StrategyHybrid})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if result.Strategy != StrategyTimestamp {
		t.Fatalf("expected timestamp strategy kept, got %q", result.Strategy)
	}
	if result.Matched != 2 {
		t.Fatalf("unexpected matched count: %d", result.Matched)
	}
}

func TestHybridNeverReportsLowTimestampRate(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)
	for unmatched := 0; unmatched <= 6; unmatched++ {
		times := make([]*time.Time, 6)
		for i := range times {
			if i >= unmatched {
				times[i] = tsPtr(base.Add(time.Duration(i) * time.Minute))
			}
		}
		photos := makePhotos(times...)
		records := makeRecords(times...)

		result, err := Match(photos, records, Options{Strategy: StrategyHybrid})
		if err != nil {
			t.Fatalf("Match returned error: %v", err)
		}
		if result.Strategy == StrategyTimestamp && result.Rate() < DefaultHybridThreshold {
			t.Fatalf("hybrid reported timestamp result with rate %.2f", result.Rate())
		}
	}
}

func TestMatchRejectsUnknownStrategy(t *testing.T) {
	t.Parallel()

	_, err := Match(nil, nil, Options{Strategy: Strategy("closest")})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	if s, err := ParseStrategy(""); err != nil || s != StrategySequence {
		t.Fatalf("empty strategy: %v %q", err, s)
	}
	if s, err := ParseStrategy("Hybrid"); err != nil || s != StrategyHybrid {
		t.Fatalf("hybrid strategy: %v %q", err, s)
	}
	if _, err := ParseStrategy("nearest"); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}
