package shootlog

import "time"

// Field identifies one semantic metadata field of a shoot record.
type Field string

const (
	FieldCamera       Field = "camera"
	FieldLens         Field = "lens"
	FieldAperture     Field = "aperture"
	FieldShutterSpeed Field = "shutter_speed"
	FieldISO          Field = "iso"
	FieldFilmStock    Field = "film_stock"
	FieldFocalLength  Field = "focal_length"
	FieldFrameNumber  Field = "frame_number"
	FieldLocation     Field = "location"
	FieldNotes        Field = "notes"
)

// Fields lists every semantic field in display order.
var Fields = []Field{
	FieldCamera,
	FieldLens,
	FieldAperture,
	FieldShutterSpeed,
	FieldISO,
	FieldFilmStock,
	FieldFocalLength,
	FieldFrameNumber,
	FieldLocation,
	FieldNotes,
}

// Record is one logged capture event. Index preserves the position in the
// source file and is always set; everything else is optional.
type Record struct {
	Index     int
	Timestamp *time.Time
	Fields    map[Field]string
}

// Value returns the raw value for a field and whether it is present.
func (r Record) Value(field Field) (string, bool) {
	if r.Fields == nil {
		return "", false
	}
	value, ok := r.Fields[field]
	return value, ok && value != ""
}

func (r *Record) set(field Field, value string) {
	if value == "" {
		return
	}
	if r.Fields == nil {
		r.Fields = make(map[Field]string)
	}
	if _, exists := r.Fields[field]; exists {
		return
	}
	r.Fields[field] = value
}
