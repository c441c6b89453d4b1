package shootlog

import (
	"errors"
	"strings"
	"testing"
	"time"

	"filmtag/internal/services"
)

func TestParseJSONWrappedEntries(t *testing.T) {
	t.Parallel()

	content := `{
		"frames": [
			{"camera": "Hasselblad 503CX", "lens": "Planar 80mm f/2.8", "aperture": 2.8, "shutter_speed": 0.008, "iso": 400, "timestamp": "2024-05-04 14:02:11"},
			{"Body": "Canon AE-1", "FNumber": "f/5.6", "exposure_time": "1/60", "film": "Kodak Portra 400"}
		]
	}`

	records, err := Parse("roll.json", []byte(content), FormatAuto)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Index != 0 {
		t.Fatalf("unexpected index: %d", first.Index)
	}
	if got, _ := first.Value(FieldCamera); got != "Hasselblad 503CX" {
		t.Fatalf("unexpected camera: %q", got)
	}
	if got, _ := first.Value(FieldAperture); got != "f/2.8" {
		t.Fatalf("expected numeric aperture normalization, got %q", got)
	}
	if got, _ := first.Value(FieldShutterSpeed); got != "1/125" {
		t.Fatalf("expected fractional shutter normalization, got %q", got)
	}
	if first.Timestamp == nil {
		t.Fatal("expected timestamp to parse")
	}
	want := time.Date(2024, 5, 4, 14, 2, 11, 0, time.Local)
	if !first.Timestamp.Equal(want) {
		t.Fatalf("unexpected timestamp: %v", first.Timestamp)
	}

	second := records[1]
	if second.Index != 1 {
		t.Fatalf("unexpected index: %d", second.Index)
	}
	if got, _ := second.Value(FieldCamera); got != "Canon AE-1" {
		t.Fatalf("expected Body synonym to resolve, got %q", got)
	}
	if got, _ := second.Value(FieldShutterSpeed); got != "1/60" {
		t.Fatalf("unexpected shutter: %q", got)
	}
	if got, _ := second.Value(FieldFilmStock); got != "Kodak Portra 400" {
		t.Fatalf("unexpected film stock: %q", got)
	}
	if second.Timestamp != nil {
		t.Fatal("expected absent timestamp to stay nil")
	}
}

func TestParseJSONBareArray(t *testing.T) {
	t.Parallel()

	records, err := Parse("", []byte(`[{"camera":"Leica M6"},{"camera":"Leica M6"}]`), FormatAuto)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestParseJSONUnknownWrapperFails(t *testing.T) {
	t.Parallel()

	_, err := Parse("roll.json", []byte(`{"rolls": []}`), FormatJSON)
	if err == nil {
		t.Fatal("expected format error")
	}
	if !errors.Is(err, services.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestParseCSVSynonymPriority(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"Camera,Lens,Aperture,Shutter,ISO,FilmStock,Notes,Date",
		"Canon AE-1,50mm f/1.8,f/2.8,1/125,400,Kodak Portra 400,Portrait,2024-05-04 10:00:00",
		"Nikon FM2,,,,,,,",
	}, "\n")

	records, err := Parse("roll.csv", []byte(content), FormatAuto)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if got, _ := records[0].Value(FieldShutterSpeed); got != "1/125" {
		t.Fatalf("unexpected shutter: %q", got)
	}
	if records[0].Timestamp == nil {
		t.Fatal("expected timestamp from Date column")
	}

	// Missing fields are absent, not errors.
	if _, ok := records[1].Value(FieldLens); ok {
		t.Fatal("expected absent lens")
	}
	if got, _ := records[1].Value(FieldCamera); got != "Nikon FM2" {
		t.Fatalf("unexpected camera: %q", got)
	}
}

func TestParseCSVEmptyFails(t *testing.T) {
	t.Parallel()

	_, err := Parse("roll.csv", nil, FormatCSV)
	if !errors.Is(err, services.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestParseTextPipeDelimited(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"# roll 12, pushed one stop",
		"Canon AE-1 | 50mm f/1.8 | f/2.8 | 1/125 | 400 | Kodak Portra 400 | Portrait",
		"Canon AE-1 | 50mm f/1.8 | f/4 | 1/250 | 400 | Kodak Portra 400 |",
	}, "\n")

	records, err := Parse("roll.txt", []byte(content), FormatAuto)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if got, _ := records[0].Value(FieldNotes); got != "Portrait" {
		t.Fatalf("unexpected notes: %q", got)
	}
	if got, _ := records[1].Value(FieldAperture); got != "f/4" {
		t.Fatalf("unexpected aperture: %q", got)
	}
	if _, ok := records[1].Value(FieldNotes); ok {
		t.Fatal("expected empty trailing field to be absent")
	}
}

func TestParseTextTabDelimited(t *testing.T) {
	t.Parallel()

	content := "Canon AE-1\t50mm f/1.8\tf/2.8\t1/125\t400\tKodak Portra 400\tPortrait\n"
	records, err := Parse("", []byte(content), FormatText)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got, _ := records[0].Value(FieldFilmStock); got != "Kodak Portra 400" {
		t.Fatalf("unexpected film stock: %q", got)
	}
}

func TestParseIndexesAreSequential(t *testing.T) {
	t.Parallel()

	content := `[{"camera":"a"},{"camera":"b"},{"camera":"c"},{"camera":"d"}]`
	records, err := Parse("", []byte(content), FormatJSON)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	for i, record := range records {
		if record.Index != i {
			t.Fatalf("record %d has index %d", i, record.Index)
		}
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2024-05-04 14:02:11", time.Date(2024, 5, 4, 14, 2, 11, 0, time.Local)},
		{"2024-05-04T14:02:11", time.Date(2024, 5, 4, 14, 2, 11, 0, time.Local)},
		{"2024/05/04 14:02:11", time.Date(2024, 5, 4, 14, 2, 11, 0, time.Local)},
		{"2024:05:04 14:02:11", time.Date(2024, 5, 4, 14, 2, 11, 0, time.Local)},
		{"2024-05-04", time.Date(2024, 5, 4, 0, 0, 0, 0, time.Local)},
	}
	for _, tc := range cases {
		got := parseTimestamp(tc.raw)
		if got == nil {
			t.Fatalf("parseTimestamp(%q) returned nil", tc.raw)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("parseTimestamp(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}

	if got := parseTimestamp("yesterday-ish"); got != nil {
		t.Fatalf("expected nil for unparseable input, got %v", got)
	}
}

func TestDetectFormatSniffsContent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		want    Format
	}{
		{"", `[{"camera":"x"}]`, FormatJSON},
		{"", "a|b|c", FormatText},
		{"", "Camera,Lens\nx,y", FormatCSV},
		{"roll.JSON", "", FormatJSON},
		{"roll.TXT", "", FormatText},
	}
	for _, tc := range cases {
		if got := DetectFormat(tc.name, []byte(tc.content)); got != tc.want {
			t.Fatalf("DetectFormat(%q, %q) = %q, want %q", tc.name, tc.content, got, tc.want)
		}
	}
}
