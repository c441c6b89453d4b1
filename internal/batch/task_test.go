package batch

import (
	"testing"
	"time"

	"filmtag/internal/match"
	"filmtag/internal/photo"
	"filmtag/internal/shootlog"
)

func TestTaskFromRecordMapsFields(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 5, 4, 14, 2, 11, 0, time.UTC)
	record := shootlog.Record{
		Index:     0,
		Timestamp: &ts,
		Fields: map[shootlog.Field]string{
			shootlog.FieldCamera:       "Hasselblad 503CX",
			shootlog.FieldLens:         "Planar 80mm f/2.8",
			shootlog.FieldAperture:     "f/2.8",
			shootlog.FieldShutterSpeed: "1/125",
			shootlog.FieldISO:          "ISO 400",
			shootlog.FieldFocalLength:  "80mm",
			shootlog.FieldFilmStock:    "Kodak Portra 400",
			shootlog.FieldNotes:        "window light",
		},
	}

	task := taskFromRecord("/roll/frame_001.jpg", record)

	want := map[string]string{
		"Make":             "Hasselblad",
		"Model":            "503CX",
		"LensModel":        "Planar 80mm f/2.8",
		"FNumber":          "2.8",
		"ExposureTime":     "1/125",
		"ISO":              "400",
		"FocalLength":      "80",
		"DateTimeOriginal": "2024:05:04 14:02:11",
		"CreateDate":       "2024:05:04 14:02:11",
		"ModifyDate":       "2024:05:04 14:02:11",
		"UserComment":      "Film: Kodak Portra 400 | window light",
	}
	got := make(map[string]string, len(task.Assignments))
	for _, assignment := range task.Assignments {
		got[assignment.Tag] = assignment.Value
	}
	for tag, value := range want {
		if got[tag] != value {
			t.Fatalf("tag %s = %q, want %q", tag, got[tag], value)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected assignment count: got %d want %d (%v)", len(got), len(want), got)
	}
}

func TestTaskFromRecordSingleWordCamera(t *testing.T) {
	t.Parallel()

	record := shootlog.Record{Fields: map[shootlog.Field]string{shootlog.FieldCamera: "Rolleiflex"}}
	task := taskFromRecord("/roll/f.jpg", record)

	got := make(map[string]string)
	for _, assignment := range task.Assignments {
		got[assignment.Tag] = assignment.Value
	}
	if got["Make"] != "Rolleiflex" || got["Model"] != "Rolleiflex" {
		t.Fatalf("single-word camera should fill both Make and Model: %v", got)
	}
}

func TestTasksFromResultSkipsUnmatchedAndEmpty(t *testing.T) {
	t.Parallel()

	records := []shootlog.Record{
		{Index: 0, Fields: map[shootlog.Field]string{shootlog.FieldCamera: "Leica M6"}},
		{Index: 1}, // nothing usable
	}
	result := &match.Result{
		Assignments: []match.Assignment{
			{Photo: photo.Ref{Path: "/roll/a.jpg", Index: 0}, Record: &records[0]},
			{Photo: photo.Ref{Path: "/roll/b.jpg", Index: 1}, Record: &records[1]},
			{Photo: photo.Ref{Path: "/roll/c.jpg", Index: 2}},
		},
		Matched: 2,
		Total:   3,
	}

	tasks := TasksFromResult(result)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Path != "/roll/a.jpg" {
		t.Fatalf("unexpected task path: %q", tasks[0].Path)
	}
}
