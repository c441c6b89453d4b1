package shootlog

import (
	"bufio"
	"bytes"
	"strings"

	"filmtag/internal/services"
)

// parseText handles delimited-text logs with a fixed positional field order.
// The delimiter is pipe when the first data line contains one, tab otherwise.
func parseText(content []byte) ([]Record, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	delimiter := ""
	var records []Record
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if delimiter == "" {
			if strings.Contains(line, "|") {
				delimiter = "|"
			} else {
				delimiter = "\t"
			}
		}

		parts := strings.Split(line, delimiter)
		record := Record{Index: len(records)}
		for i, field := range textFieldOrder {
			if i >= len(parts) {
				break
			}
			record.set(field, strings.TrimSpace(parts[i]))
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrFormat, "parse", "text", "read input", err)
	}
	return records, nil
}
