// Package normalize maps reader-specific raw tags onto the canonical
// metadata field set, applying per-field precedence.
package normalize

import (
	"github.com/ankit-chaubey/mediamd/core"
	"github.com/ankit-chaubey/mediamd/core/gps"
)

// rule fills field from the first present source key.
type rule struct {
	field   core.Field
	sources []string
}

var imageRules = []rule{
	{core.FieldCreationDate, []string{"DateTimeOriginal"}},
	{core.FieldDescription, []string{"ImageDescription", "UserComment"}},
	{core.FieldMake, []string{"Make"}},
	{core.FieldModel, []string{"Model"}},
	{core.FieldMIMEType, []string{"MIMEType"}},
	{core.FieldFileName, []string{"FileName"}},
	{core.FieldFileSize, []string{"FileSize"}},
	{core.FieldImageWidth, []string{"ImageWidth"}},
	{core.FieldImageHeight, []string{"ImageHeight"}},
}

var videoRules = []rule{
	{core.FieldCreationDate, []string{
		"CreateDate",
		"CreationDate",
		"ModifyDate",
		"TrackCreateDate",
		"MediaCreateDate",
		"FileModifyDate",
	}},
	{core.FieldDescription, []string{"Description", "UserComment", "XPComment", "Comment"}},
	{core.FieldDuration, []string{"Duration"}},
	{core.FieldComment, []string{"Comment"}},
	{core.FieldGPS, []string{"GPSPosition"}},
	{core.FieldMake, []string{"Make"}},
	{core.FieldModel, []string{"Model"}},
	{core.FieldMIMEType, []string{"MIMEType"}},
	{core.FieldFileName, []string{"FileName"}},
	{core.FieldFileSize, []string{"FileSize"}},
	{core.FieldImageWidth, []string{"ImageWidth"}},
	{core.FieldImageHeight, []string{"ImageHeight"}},
}

// Normalize converts raw into canonical metadata for kind. It has no side
// effects: the same input always yields the same output.
func Normalize(kind core.Kind, raw core.RawTags) core.Metadata {
	m := core.Metadata{Kind: kind, Fields: map[core.Field]string{}}
	if msg, ok := raw.Get(core.ErrorKey); ok {
		m.Err = msg
		return m
	}

	switch kind {
	case core.KindImage:
		apply(m.Fields, imageRules, raw)
		if s, ok := gpsFromRaw(raw); ok {
			m.Fields[core.FieldGPS] = s
		}
	case core.KindVideo:
		apply(m.Fields, videoRules, raw)
		if _, ok := m.Fields[core.FieldGPS]; !ok {
			if s, ok := videoGPS(raw); ok {
				m.Fields[core.FieldGPS] = s
			}
		}
		// Description always renders for video, even when no source had it.
		if _, ok := m.Fields[core.FieldDescription]; !ok {
			m.Fields[core.FieldDescription] = ""
		}
	}
	return m
}

func apply(dst map[core.Field]string, rules []rule, raw core.RawTags) {
	for _, r := range rules {
		if v, ok := first(raw, r.sources); ok {
			dst[r.field] = v
		}
	}
}

func first(raw core.RawTags, keys []string) (string, bool) {
	for _, k := range keys {
		if v, ok := raw.Get(k); ok {
			return v, true
		}
	}
	return "", false
}

func gpsFromRaw(raw core.RawTags) (string, bool) {
	if raw.GPS == nil {
		return "", false
	}
	c, ok := gps.ToDecimal(*raw.GPS)
	if !ok {
		return "", false
	}
	return gps.Format(c), true
}

// videoGPS falls back to the probe's separate latitude/longitude text, then
// to a typed position when the probe supplied one.
func videoGPS(raw core.RawTags) (string, bool) {
	lat, okLat := raw.Get("GPSLatitude")
	lon, okLon := raw.Get("GPSLongitude")
	if okLat && okLon {
		return lat + ", " + lon, true
	}
	return gpsFromRaw(raw)
}
