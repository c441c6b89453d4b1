package match

import (
	"strings"
	"time"

	"filmtag/internal/photo"
	"filmtag/internal/services"
	"filmtag/internal/shootlog"
)

// Strategy selects how records are aligned to photos.
type Strategy string

const (
	StrategySequence  Strategy = "sequence"
	StrategyTimestamp Strategy = "timestamp"
	StrategyHybrid    Strategy = "hybrid"
)

// DefaultTolerance is the timestamp-window tolerance applied when the caller
// does not supply one.
const DefaultTolerance = 5 * time.Minute

// DefaultHybridThreshold is the minimum timestamp match rate the hybrid
// strategy accepts before falling back to sequence matching.
const DefaultHybridThreshold = 0.5

// ParseStrategy converts a user-supplied strategy name.
func ParseStrategy(value string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "sequence":
		return StrategySequence, nil
	case "timestamp":
		return StrategyTimestamp, nil
	case "hybrid":
		return StrategyHybrid, nil
	default:
		return "", services.Wrap(services.ErrValidation, "match", "strategy", "unknown strategy "+value, nil)
	}
}

// Options tunes a matching run.
type Options struct {
	Strategy Strategy
	// Tolerance bounds the timestamp window; zero means DefaultTolerance.
	Tolerance time.Duration
	// Offset shifts the sequence alignment so records[i] pairs with
	// photos[i+Offset]. Out-of-range positions are left unmatched.
	Offset int
	// HybridThreshold overrides DefaultHybridThreshold when positive.
	HybridThreshold float64
}

// Assignment pairs one photo with its matched record, nil when unmatched.
type Assignment struct {
	Photo  photo.Ref
	Record *shootlog.Record
}

// Result reports one matching run. Assignments holds one entry per photo in
// photo order. The invariant is 1:1 partial matching: a record appears in at
// most one assignment.
type Result struct {
	Assignments []Assignment
	Matched     int
	Total       int
	Strategy    Strategy
}

// Rate returns the matched fraction, zero when there were no photos.
func (r *Result) Rate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Matched) / float64(r.Total)
}

// Match aligns records to photos using the configured strategy.
func Match(photos []photo.Ref, records []shootlog.Record, opts Options) (*Result, error) {
	if opts.Tolerance < 0 {
		return nil, services.Wrap(services.ErrValidation, "match", "tolerance", "must not be negative", nil)
	}
	tolerance := opts.Tolerance
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}

	switch opts.Strategy {
	case "", StrategySequence:
		return matchSequence(photos, records, opts.Offset), nil
	case StrategyTimestamp:
		return matchTimestamp(photos, records, tolerance), nil
	case StrategyHybrid:
		threshold := opts.HybridThreshold
		if threshold <= 0 {
			threshold = DefaultHybridThreshold
		}
		result := matchTimestamp(photos, records, tolerance)
		if result.Total > 0 && result.Rate() < threshold {
			// A low match rate is itself evidence the timestamps are not
			// trustworthy for this batch, so the partial match is discarded
			// rather than kept.
			return matchSequence(photos, records, opts.Offset), nil
		}
		return result, nil
	default:
		return nil, services.Wrap(services.ErrValidation, "match", "strategy", "unknown strategy "+string(opts.Strategy), nil)
	}
}
