// Package core defines the shared types, interfaces, and format registry
// for mediamd.
package core

import "context"

// Kind is the broad media category a file was classified into.
type Kind int

const (
	KindIgnored Kind = iota
	KindImage
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "ignored"
	}
}

// MediaFile is a classified input file. It is never modified after Classify.
type MediaFile struct {
	Path string // Path as listed from the input directory
	Name string // Base name, used as the section heading
	Size int64  // Size in bytes
	Kind Kind
}

// ErrorKey is the reserved raw tag carrying a reader-level failure.
const ErrorKey = "error"

// Rational is one EXIF RATIONAL value.
type Rational struct {
	Num int64
	Den int64
}

// GPSRaw holds GPS position as EXIF stores it: a latitude triple and a
// longitude triple of degrees/minutes/seconds, plus hemisphere references.
type GPSRaw struct {
	Triples [][]Rational // latitude, then longitude
	LatRef  string       // "N" | "S"
	LonRef  string       // "E" | "W"
}

// RawTags is the reader-specific tag map produced for a single file.
// Keys are the reader's own tag names (EXIF names for images, exiftool
// tag names for videos).
type RawTags struct {
	Values map[string]string
	GPS    *GPSRaw
}

// Get returns the value for key, treating empty strings as absent.
func (r RawTags) Get(key string) (string, bool) {
	v, ok := r.Values[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Failed returns RawTags carrying only an error message.
func Failed(err error) RawTags {
	return RawTags{Values: map[string]string{ErrorKey: err.Error()}}
}

// Field is a canonical metadata field name.
type Field string

const (
	FieldCreationDate Field = "Creation Date"
	FieldDescription  Field = "Description"
	FieldDuration     Field = "Duration"
	FieldComment      Field = "Comment"
	FieldGPS          Field = "GPS"
	FieldMake         Field = "Make"
	FieldModel        Field = "Model"
	FieldMIMEType     Field = "MIME Type"
	FieldFileName     Field = "File Name"
	FieldFileSize     Field = "File Size"
	FieldImageWidth   Field = "Image Width"
	FieldImageHeight  Field = "Image Height"
)

// Label returns the text shown in the report for f.
func (f Field) Label() string {
	switch f {
	case FieldDuration:
		return "Video Length"
	case FieldComment:
		return "Video Description"
	default:
		return string(f)
	}
}

// ImageFields is the ordered canonical field list for images.
var ImageFields = []Field{
	FieldCreationDate,
	FieldDescription,
	FieldGPS,
	FieldMake,
	FieldModel,
	FieldMIMEType,
	FieldFileName,
	FieldFileSize,
	FieldImageWidth,
	FieldImageHeight,
}

// VideoFields is the ordered canonical field list for videos.
var VideoFields = []Field{
	FieldCreationDate,
	FieldDescription,
	FieldDuration,
	FieldComment,
	FieldGPS,
	FieldMake,
	FieldModel,
	FieldMIMEType,
	FieldFileName,
	FieldFileSize,
	FieldImageWidth,
	FieldImageHeight,
}

// FieldsFor returns the ordered canonical field list for kind.
func FieldsFor(kind Kind) []Field {
	switch kind {
	case KindImage:
		return ImageFields
	case KindVideo:
		return VideoFields
	default:
		return nil
	}
}

// Metadata is the canonical, normalized metadata of one file.
type Metadata struct {
	Kind   Kind
	Fields map[Field]string
	Err    string // reader failure; when set, Fields is empty
}

// Get returns the value of f and whether it is present.
func (m Metadata) Get(f Field) (string, bool) {
	v, ok := m.Fields[f]
	return v, ok
}

// Empty reports whether none of the kind's declared fields are present.
func (m Metadata) Empty() bool {
	for _, f := range FieldsFor(m.Kind) {
		if _, ok := m.Fields[f]; ok {
			return false
		}
	}
	return true
}

// TagReader reads the raw tags of a single file. Failures are carried in
// the returned RawTags under ErrorKey, never returned.
type TagReader interface {
	ReadTags(ctx context.Context, f MediaFile) RawTags
}

// Transcriber turns the audio track of a video into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}
