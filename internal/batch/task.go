package batch

import (
	"strings"

	"filmtag/internal/match"
	"filmtag/internal/shootlog"
)

// exifTimestampLayout is the colon-separated form EXIF date tags expect.
const exifTimestampLayout = "2006:01:02 15:04:05"

// Assignment is one tag write. The value is opaque to everything downstream
// of the batcher; validation and formatting happen before a task is built.
type Assignment struct {
	Tag   string
	Value string
}

// Task is one file plus the ordered tag assignments to apply to it.
type Task struct {
	Path        string
	Assignments []Assignment
}

func (t Task) assign(tag, value string) Task {
	if value == "" {
		return t
	}
	t.Assignments = append(t.Assignments, Assignment{Tag: tag, Value: value})
	return t
}

// TasksFromResult converts the matched assignments of a matching run into
// write tasks, mapping semantic log fields onto metadata tag names.
// Unmatched photos and records without any usable field produce no task.
func TasksFromResult(result *match.Result) []Task {
	if result == nil {
		return nil
	}
	tasks := make([]Task, 0, result.Matched)
	for _, assignment := range result.Assignments {
		if assignment.Record == nil {
			continue
		}
		task := taskFromRecord(assignment.Photo.Path, *assignment.Record)
		if len(task.Assignments) == 0 {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks
}

func taskFromRecord(path string, record shootlog.Record) Task {
	task := Task{Path: path}

	if camera, ok := record.Value(shootlog.FieldCamera); ok {
		// "Make Model" in one field is common; split on the first space.
		parts := strings.SplitN(strings.TrimSpace(camera), " ", 2)
		if len(parts) == 2 {
			task = task.assign("Make", parts[0])
			task = task.assign("Model", parts[1])
		} else {
			task = task.assign("Make", camera)
			task = task.assign("Model", camera)
		}
	}
	if lens, ok := record.Value(shootlog.FieldLens); ok {
		task = task.assign("LensModel", lens)
	}
	if aperture, ok := record.Value(shootlog.FieldAperture); ok {
		task = task.assign("FNumber", strings.TrimPrefix(strings.TrimPrefix(aperture, "f/"), "F/"))
	}
	if shutter, ok := record.Value(shootlog.FieldShutterSpeed); ok {
		task = task.assign("ExposureTime", shutter)
	}
	if iso, ok := record.Value(shootlog.FieldISO); ok {
		trimmed := strings.TrimSpace(iso)
		if len(trimmed) > 3 && strings.EqualFold(trimmed[:3], "iso") {
			trimmed = strings.TrimSpace(trimmed[3:])
		}
		task = task.assign("ISO", trimmed)
	}
	if focal, ok := record.Value(shootlog.FieldFocalLength); ok {
		task = task.assign("FocalLength", strings.TrimSuffix(focal, "mm"))
	}
	if record.Timestamp != nil {
		stamp := record.Timestamp.Format(exifTimestampLayout)
		task = task.assign("DateTimeOriginal", stamp)
		task = task.assign("CreateDate", stamp)
		task = task.assign("ModifyDate", stamp)
	}
	if location, ok := record.Value(shootlog.FieldLocation); ok {
		task = task.assign("ImageDescription", location)
	}
	task = task.assign("UserComment", userComment(record))

	return task
}

// userComment folds film stock, location, and free-text notes into one
// comment tag, matching the layout companion apps expect on re-import.
func userComment(record shootlog.Record) string {
	var parts []string
	if film, ok := record.Value(shootlog.FieldFilmStock); ok {
		parts = append(parts, "Film: "+film)
	}
	if location, ok := record.Value(shootlog.FieldLocation); ok {
		parts = append(parts, "Location: "+location)
	}
	if notes, ok := record.Value(shootlog.FieldNotes); ok {
		parts = append(parts, notes)
	}
	return strings.Join(parts, " | ")
}
