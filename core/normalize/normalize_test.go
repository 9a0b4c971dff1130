package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ankit-chaubey/mediamd/core"
)

func tags(kv ...string) core.RawTags {
	r := core.RawTags{Values: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		r.Values[kv[i]] = kv[i+1]
	}
	return r
}

func TestNormalize_Image(t *testing.T) {
	raw := tags(
		"DateTimeOriginal", "2023:07:14 10:11:12",
		"Make", "FUJIFILM",
		"Model", "X100V",
		"ImageDescription", "harbour at dusk",
		"FileName", "a.jpg",
		"FileSize", "12 KB",
		"MIMEType", "image/jpeg",
		"ImageWidth", "640",
		"ImageHeight", "480",
		"Software", "ignored",
	)
	raw.GPS = &core.GPSRaw{
		Triples: [][]core.Rational{
			{{Num: 1, Den: 1}, {Num: 30, Den: 1}, {Num: 0, Den: 1}},
			{{Num: 2, Den: 1}, {Num: 15, Den: 1}, {Num: 0, Den: 1}},
		},
		LatRef: "S",
		LonRef: "E",
	}

	m := Normalize(core.KindImage, raw)

	assert.Empty(t, m.Err)
	assert.Equal(t, map[core.Field]string{
		core.FieldCreationDate: "2023:07:14 10:11:12",
		core.FieldDescription:  "harbour at dusk",
		core.FieldGPS:          "-1.500000, 2.250000",
		core.FieldMake:         "FUJIFILM",
		core.FieldModel:        "X100V",
		core.FieldMIMEType:     "image/jpeg",
		core.FieldFileName:     "a.jpg",
		core.FieldFileSize:     "12 KB",
		core.FieldImageWidth:   "640",
		core.FieldImageHeight:  "480",
	}, m.Fields)
}

func TestNormalize_ImageOmitsAbsent(t *testing.T) {
	raw := tags("FileName", "b.png", "Make", "")
	raw.GPS = &core.GPSRaw{Triples: [][]core.Rational{{{Num: 1, Den: 0}}}}

	m := Normalize(core.KindImage, raw)

	assert.Equal(t, map[core.Field]string{core.FieldFileName: "b.png"}, m.Fields)
	_, ok := m.Get(core.FieldDescription)
	assert.False(t, ok, "image Description is left to the renderer")
}

func TestNormalize_ImageDescriptionFallsBackToUserComment(t *testing.T) {
	m := Normalize(core.KindImage, tags("UserComment", "from the ferry"))
	assert.Equal(t, "from the ferry", m.Fields[core.FieldDescription])
}

func TestNormalize_VideoCreationDatePrecedence(t *testing.T) {
	tests := []struct {
		name string
		raw  core.RawTags
		want string
	}{
		{"create date wins", tags("CreateDate", "A", "CreationDate", "B", "FileModifyDate", "F"), "A"},
		{"creation date second", tags("CreationDate", "B", "ModifyDate", "C"), "B"},
		{"empty create date skipped", tags("CreateDate", "", "ModifyDate", "C"), "C"},
		{"track before media", tags("TrackCreateDate", "D", "MediaCreateDate", "E"), "D"},
		{"file modify last", tags("FileModifyDate", "F"), "F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Normalize(core.KindVideo, tt.raw)
			assert.Equal(t, tt.want, m.Fields[core.FieldCreationDate])
		})
	}
}

func TestNormalize_VideoDescription(t *testing.T) {
	tests := []struct {
		name string
		raw  core.RawTags
		want string
	}{
		{"description", tags("Description", "d", "UserComment", "u", "Comment", "c"), "d"},
		{"user comment", tags("UserComment", "u", "XPComment", "x"), "u"},
		{"xp comment", tags("XPComment", "x", "Comment", "c"), "x"},
		{"comment", tags("Comment", "c"), "c"},
		{"none", tags("Make", "Apple"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Normalize(core.KindVideo, tt.raw)
			v, ok := m.Get(core.FieldDescription)
			assert.True(t, ok, "video Description is always present")
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestNormalize_VideoPassThrough(t *testing.T) {
	raw := tags(
		"Duration", "0:01:05",
		"Comment", "holiday",
		"GPSPosition", "51 deg 30' 0.00\" N, 0 deg 7' 0.00\" W",
		"Make", "Apple",
		"Model", "iPhone 14",
		"MIMEType", "video/quicktime",
		"FileName", "clip.mov",
		"FileSize", "3.2 MB",
		"ImageWidth", "1920",
		"ImageHeight", "1080",
	)

	m := Normalize(core.KindVideo, raw)

	assert.Equal(t, "0:01:05", m.Fields[core.FieldDuration])
	assert.Equal(t, "holiday", m.Fields[core.FieldComment])
	assert.Equal(t, "holiday", m.Fields[core.FieldDescription])
	assert.Equal(t, "51 deg 30' 0.00\" N, 0 deg 7' 0.00\" W", m.Fields[core.FieldGPS])
	assert.Equal(t, "video/quicktime", m.Fields[core.FieldMIMEType])
	assert.Equal(t, "1080", m.Fields[core.FieldImageHeight])
	_, ok := m.Get(core.FieldCreationDate)
	assert.False(t, ok)
}

func TestNormalize_VideoGPSFallbacks(t *testing.T) {
	m := Normalize(core.KindVideo, tags("GPSLatitude", "51.5 N", "GPSLongitude", "0.1 W"))
	assert.Equal(t, "51.5 N, 0.1 W", m.Fields[core.FieldGPS])

	m = Normalize(core.KindVideo, tags("GPSLatitude", "51.5 N"))
	_, ok := m.Get(core.FieldGPS)
	assert.False(t, ok)
}

func TestNormalize_ErrorWins(t *testing.T) {
	for _, kind := range []core.Kind{core.KindImage, core.KindVideo} {
		t.Run(kind.String(), func(t *testing.T) {
			raw := tags(core.ErrorKey, "exec: \"exiftool\": executable file not found in $PATH", "Make", "Apple")

			m := Normalize(kind, raw)

			assert.Equal(t, "exec: \"exiftool\": executable file not found in $PATH", m.Err)
			assert.Empty(t, m.Fields)
			assert.True(t, m.Empty())
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := tags("CreateDate", "2024:01:01 00:00:00", "Comment", "c", "Make", "GoPro")
	raw.GPS = &core.GPSRaw{
		Triples: [][]core.Rational{
			{{Num: 1, Den: 1}, {Num: 0, Den: 1}, {Num: 0, Den: 1}},
			{{Num: 2, Den: 1}, {Num: 0, Den: 1}, {Num: 0, Den: 1}},
		},
	}
	for _, kind := range []core.Kind{core.KindImage, core.KindVideo} {
		assert.Equal(t, Normalize(kind, raw), Normalize(kind, raw))
	}
}
