package shootlog

import (
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"filmtag/internal/services"
)

// Format identifies the structural layout of a shoot-log file.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// ParseFormat converts a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", services.Wrap(services.ErrValidation, "parse", "format", "unknown format "+value, nil)
	}
}

// Parse decodes one shoot-log file into ordered records. The name is used
// only for format auto-detection; pass an empty string when the content does
// not come from a file.
func Parse(name string, content []byte, format Format) ([]Record, error) {
	if format == "" || format == FormatAuto {
		format = DetectFormat(name, content)
	}
	switch format {
	case FormatJSON:
		return parseJSON(content)
	case FormatCSV:
		return parseCSV(content)
	case FormatText:
		return parseText(content)
	default:
		return nil, services.Wrap(services.ErrFormat, "parse", "detect", "unable to determine log format", nil)
	}
}

// DetectFormat guesses the structural format from the file extension,
// falling back to content sniffing.
func DetectFormat(name string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	case ".txt":
		return FormatText
	}

	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return FormatText
	}
	if (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) && gjson.Valid(trimmed) {
		return FormatJSON
	}
	firstLine := trimmed
	if idx := strings.IndexByte(firstLine, '\n'); idx >= 0 {
		firstLine = firstLine[:idx]
	}
	if strings.ContainsAny(firstLine, "|\t") {
		return FormatText
	}
	return FormatCSV
}
