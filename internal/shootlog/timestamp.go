package shootlog

import (
	"strconv"
	"strings"
	"time"
)

// timestampLayouts covers the date/time spellings seen in log exports,
// including the colon-separated EXIF form. Order matters: more specific
// layouts come first so date-only forms do not shadow full timestamps.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"2006:01:02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2006:01:02",
}

// parseTimestamp attempts every known layout plus numeric Unix seconds.
// A nil result is not an error; records without a usable timestamp stay
// matchable by the sequence strategy.
func parseTimestamp(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return &ts
		}
	}
	if seconds, err := strconv.ParseFloat(raw, 64); err == nil && seconds > 0 {
		ts := time.Unix(int64(seconds), 0)
		return &ts
	}
	return nil
}
