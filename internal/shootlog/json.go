package shootlog

import (
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"filmtag/internal/services"
)

// wrapperKeys are the known envelope keys of tagged-object exports.
var wrapperKeys = []string{"entries", "frames", "shots", "records"}

func parseJSON(content []byte) ([]Record, error) {
	if !gjson.ValidBytes(content) {
		return nil, services.Wrap(services.ErrFormat, "parse", "json", "invalid JSON document", nil)
	}

	root := gjson.ParseBytes(content)
	var list gjson.Result
	switch {
	case root.IsArray():
		list = root
	case root.IsObject():
		found := false
		for _, key := range wrapperKeys {
			if candidate := root.Get(key); candidate.IsArray() {
				list = candidate
				found = true
				break
			}
		}
		if !found {
			return nil, services.Wrap(services.ErrFormat, "parse", "json", "no known record wrapper key", nil)
		}
	default:
		return nil, services.Wrap(services.ErrFormat, "parse", "json", "document must be an array or object", nil)
	}

	records := make([]Record, 0, int(list.Get("#").Int()))
	list.ForEach(func(_, entry gjson.Result) bool {
		records = append(records, parseJSONEntry(entry, len(records)))
		return true
	})
	return records, nil
}

func parseJSONEntry(entry gjson.Result, index int) Record {
	record := Record{Index: index}

	get := func(key string) (string, bool) {
		value, ok := lookupInsensitive(entry, key)
		if !ok || !value.Exists() {
			return "", false
		}
		return value.String(), true
	}

	for _, field := range Fields {
		raw, ok := firstMatchJSON(entry, field)
		if !ok {
			continue
		}
		record.set(field, raw)
	}

	if raw, ok := firstTimestamp(get); ok {
		record.Timestamp = parseTimestamp(raw)
	}

	return record
}

// firstMatchJSON resolves a field against a JSON entry with numeric value
// normalization: bare numbers become the canonical display forms the rest of
// the pipeline expects (f/2.8, 1/125, 80mm).
func firstMatchJSON(entry gjson.Result, field Field) (string, bool) {
	for _, synonym := range fieldSynonyms[field] {
		value, ok := lookupInsensitive(entry, synonym)
		if !ok || !value.Exists() {
			continue
		}
		rendered := renderJSONValue(field, value)
		if rendered != "" {
			return rendered, true
		}
	}
	return "", false
}

func renderJSONValue(field Field, value gjson.Result) string {
	if value.Type == gjson.Number {
		number := value.Float()
		switch field {
		case FieldAperture:
			return trimFloat("f/%v", number)
		case FieldShutterSpeed:
			if number > 0 && number < 1 {
				return fmt.Sprintf("1/%d", int(math.Round(1/number)))
			}
			return trimFloat("%v", number)
		case FieldISO, FieldFrameNumber:
			return fmt.Sprintf("%d", int(number))
		case FieldFocalLength:
			return fmt.Sprintf("%dmm", int(math.Round(number)))
		default:
			return trimFloat("%v", number)
		}
	}
	return strings.TrimSpace(value.String())
}

func trimFloat(format string, number float64) string {
	if number == math.Trunc(number) {
		return fmt.Sprintf(format, int64(number))
	}
	return fmt.Sprintf(format, number)
}

func lookupInsensitive(entry gjson.Result, key string) (gjson.Result, bool) {
	if value := entry.Get(key); value.Exists() {
		return value, true
	}
	var match gjson.Result
	found := false
	entry.ForEach(func(k, v gjson.Result) bool {
		if normalizeKey(k.String()) == key {
			match = v
			found = true
			return false
		}
		return true
	})
	return match, found
}
