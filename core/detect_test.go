package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"a.mp4", KindVideo},
		{"dir/b.MOV", KindVideo},
		{"c.avi", KindVideo},
		{"d.mkv", KindVideo},
		{"e.flv", KindVideo},
		{"f.WMV", KindVideo},
		{"g.jpg", KindImage},
		{"h.JPEG", KindImage},
		{"i.png", KindImage},
		{"j.heic", KindImage},
		{"k.tiff", KindImage},
		{"l.bmp", KindImage},
		{"m.gif", KindImage},
		{"n.tif", KindIgnored},
		{"o.webm", KindIgnored},
		{"notes.txt", KindIgnored},
		{"noext", KindIgnored},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}

func TestFieldsFor(t *testing.T) {
	assert.Equal(t, ImageFields, FieldsFor(KindImage))
	assert.Equal(t, VideoFields, FieldsFor(KindVideo))
	assert.Nil(t, FieldsFor(KindIgnored))

	assert.Equal(t, "Video Length", FieldDuration.Label())
	assert.Equal(t, "Video Description", FieldComment.Label())
	assert.Equal(t, "MIME Type", FieldMIMEType.Label())
}

func TestRawTagsGet_EmptyIsAbsent(t *testing.T) {
	r := RawTags{Values: map[string]string{"Make": "", "Model": "X100"}}

	_, ok := r.Get("Make")
	assert.False(t, ok)
	v, ok := r.Get("Model")
	assert.True(t, ok)
	assert.Equal(t, "X100", v)
	_, ok = r.Get("Missing")
	assert.False(t, ok)
}
