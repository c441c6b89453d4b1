package shootlog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"filmtag/internal/services"
)

func parseCSV(content []byte) ([]Record, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, services.Wrap(services.ErrFormat, "parse", "csv", "file is empty", nil)
		}
		return nil, services.Wrap(services.ErrFormat, "parse", "csv", "malformed header row", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := normalizeKey(name)
		if key == "" {
			continue
		}
		if _, exists := columns[key]; !exists {
			columns[key] = i
		}
	}
	if len(columns) == 0 {
		return nil, services.Wrap(services.ErrFormat, "parse", "csv", "header row has no usable columns", nil)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, services.Wrap(services.ErrFormat, "parse", "csv", "malformed data row", err)
		}

		get := func(key string) (string, bool) {
			idx, ok := columns[key]
			if !ok || idx >= len(row) {
				return "", false
			}
			return strings.TrimSpace(row[idx]), true
		}

		record := Record{Index: len(records)}
		for _, field := range Fields {
			if value, ok := firstMatch(field, get); ok {
				record.set(field, value)
			}
		}
		if raw, ok := firstTimestamp(get); ok {
			record.Timestamp = parseTimestamp(raw)
		}
		records = append(records, record)
	}
	return records, nil
}
