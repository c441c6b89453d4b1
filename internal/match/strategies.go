package match

import (
	"sort"
	"time"

	"filmtag/internal/photo"
	"filmtag/internal/shootlog"
)

// matchSequence assigns records[i] to photos[i+offset], strictly positional.
// Positions that fall outside either list are left unmatched, never wrapped.
func matchSequence(photos []photo.Ref, records []shootlog.Record, offset int) *Result {
	result := &Result{
		Assignments: make([]Assignment, len(photos)),
		Total:       len(photos),
		Strategy:    StrategySequence,
	}
	for i := range photos {
		result.Assignments[i] = Assignment{Photo: photos[i]}
	}
	for i := range records {
		position := i + offset
		if position < 0 || position >= len(photos) {
			continue
		}
		result.Assignments[position].Record = &records[i]
		result.Matched++
	}
	return result
}

type timestampCandidate struct {
	delta       time.Duration
	photoIndex  int
	recordIndex int
}

// matchTimestamp pairs photos and records whose timestamps lie within the
// tolerance window. Candidates are taken globally in increasing-delta order
// rather than per-photo first-fit, so a close photo cannot steal a record
// that fits another photo better. Ties break on the lowest photo index, then
// the lowest record index.
func matchTimestamp(photos []photo.Ref, records []shootlog.Record, tolerance time.Duration) *Result {
	result := &Result{
		Assignments: make([]Assignment, len(photos)),
		Total:       len(photos),
		Strategy:    StrategyTimestamp,
	}
	for i := range photos {
		result.Assignments[i] = Assignment{Photo: photos[i]}
	}

	var candidates []timestampCandidate
	for pi := range photos {
		if photos[pi].KnownTimestamp == nil {
			continue
		}
		for ri := range records {
			if records[ri].Timestamp == nil {
				continue
			}
			delta := photos[pi].KnownTimestamp.Sub(*records[ri].Timestamp)
			if delta < 0 {
				delta = -delta
			}
			if delta > tolerance {
				continue
			}
			candidates = append(candidates, timestampCandidate{delta: delta, photoIndex: pi, recordIndex: ri})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].delta != candidates[j].delta {
			return candidates[i].delta < candidates[j].delta
		}
		if candidates[i].photoIndex != candidates[j].photoIndex {
			return candidates[i].photoIndex < candidates[j].photoIndex
		}
		return candidates[i].recordIndex < candidates[j].recordIndex
	})

	photoUsed := make(map[int]struct{}, len(photos))
	recordUsed := make(map[int]struct{}, len(records))
	for _, candidate := range candidates {
		if _, ok := photoUsed[candidate.photoIndex]; ok {
			continue
		}
		if _, ok := recordUsed[candidate.recordIndex]; ok {
			continue
		}
		photoUsed[candidate.photoIndex] = struct{}{}
		recordUsed[candidate.recordIndex] = struct{}{}
		result.Assignments[candidate.photoIndex].Record = &records[candidate.recordIndex]
		result.Matched++
	}
	return result
}
