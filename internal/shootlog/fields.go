package shootlog

import "strings"

// fieldSynonyms maps each semantic field to its known spellings across log
// formats, in priority order. Lookup is case-insensitive and the first
// matching synonym wins. The tables are data on purpose: adding a new export
// dialect should not require touching parser logic.
var fieldSynonyms = map[Field][]string{
	FieldCamera:       {"camera", "body", "camera_body", "camera_model", "make", "model"},
	FieldLens:         {"lens", "lensmodel", "lens_model", "optic", "lensmake"},
	FieldAperture:     {"aperture", "f_stop", "f-stop", "fnumber", "f_number", "maxaperturevalue"},
	FieldShutterSpeed: {"shutter_speed", "shutter", "exposure_time", "exposuretime", "speed"},
	FieldISO:          {"iso", "sensitivity", "film_speed", "isospeed"},
	FieldFilmStock:    {"film_stock", "film", "filmstock", "film_type", "emulsion"},
	FieldFocalLength:  {"focal_length", "focallength", "focal", "focallengthin35mmformat"},
	FieldFrameNumber:  {"frame", "frame_number", "number", "shot_number", "imagenumber"},
	FieldLocation:     {"location", "geo", "gps", "place"},
	FieldNotes:        {"notes", "comments", "comment", "usercomment", "note"},
}

// timestampSynonyms lists keys that may carry the capture time, in priority order.
var timestampSynonyms = []string{"timestamp", "time", "date", "datetime", "shot_time", "datetimeoriginal"}

// textFieldOrder is the fixed positional layout of delimited-text logs.
var textFieldOrder = []Field{
	FieldCamera,
	FieldLens,
	FieldAperture,
	FieldShutterSpeed,
	FieldISO,
	FieldFilmStock,
	FieldNotes,
}

// firstMatch walks a field's synonym list in priority order and returns the
// first non-empty value get yields. Keys passed to get are normalized.
func firstMatch(field Field, get func(key string) (string, bool)) (string, bool) {
	for _, synonym := range fieldSynonyms[field] {
		if value, ok := get(synonym); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

func firstTimestamp(get func(key string) (string, bool)) (string, bool) {
	for _, synonym := range timestampSynonyms {
		if value, ok := get(synonym); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

func normalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
