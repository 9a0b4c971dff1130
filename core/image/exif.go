package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	"golang.org/x/text/encoding/unicode"

	"github.com/ankit-chaubey/mediamd/core"
)

var errNoEXIF = errors.New("no EXIF metadata found")

// readEXIF decodes the EXIF block of r (positioned at the start of the
// file) into values and returns the GPS position when one is present.
func readEXIF(r io.ReadSeeker, format core.FormatID, values map[string]string) (*core.GPSRaw, error) {
	x, err := openEXIF(r, format)
	if err != nil {
		return nil, err
	}

	if v, ok := textTag(x, exif.DateTimeOriginal); ok {
		values[TagDateTimeOriginal] = v
	}
	if v, ok := textTag(x, exif.Make); ok {
		values[TagMake] = v
	}
	if v, ok := textTag(x, exif.Model); ok {
		values[TagModel] = v
	}
	if v, ok := textTag(x, exif.ImageDescription); ok {
		values[TagImageDescription] = v
	}
	if tag, err := x.Get(exif.UserComment); err == nil {
		if v := userComment(tag, x.Tiff.Order); v != "" {
			values[TagUserComment] = v
		}
	}
	return gpsTags(x), nil
}

func openEXIF(r io.ReadSeeker, format core.FormatID) (*exif.Exif, error) {
	switch format {
	case core.FmtJPEG, core.FmtTIFF:
		return decodeEXIFSafe(r)
	case core.FmtPNG:
		// EXIF data embedded in PNG lives in an eXIf chunk.
		chunks, err := readPNGChunks(r)
		if err != nil {
			return nil, err
		}
		for _, c := range chunks {
			if c.typ == "eXIf" {
				return decodeEXIFSafe(bytes.NewReader(c.data))
			}
		}
		return nil, errNoEXIF
	default:
		return nil, errNoEXIF
	}
}

// decodeEXIFSafe protects against panics from the decoder on malformed files.
func decodeEXIFSafe(r io.Reader) (x *exif.Exif, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			x, err = nil, fmt.Errorf("panic while decoding EXIF: %v", rec)
		}
	}()
	return exif.Decode(r)
}

func textTag(x *exif.Exif, name exif.FieldName) (string, bool) {
	tag, err := x.Get(name)
	if err != nil || tag.Format() != tiff.StringVal {
		return "", false
	}
	v := lossy(tag.Val)
	return v, v != ""
}

// userComment decodes the EXIF UserComment: an 8-byte character code
// followed by the text. UNICODE text is UTF-16 in the byte order of the
// enclosing TIFF block.
func userComment(tag *tiff.Tag, order binary.ByteOrder) string {
	b := tag.Val
	if len(b) < 8 {
		return lossy(b)
	}
	code := strings.TrimRight(string(b[:8]), "\x00 ")
	body := b[8:]
	if code == "UNICODE" {
		endian := unicode.BigEndian
		if order == binary.LittleEndian {
			endian = unicode.LittleEndian
		}
		s, err := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder().Bytes(body)
		if err != nil {
			return ""
		}
		return clean(s)
	}
	return lossy(body)
}

func gpsTags(x *exif.Exif) *core.GPSRaw {
	lat, err := x.Get(exif.GPSLatitude)
	if err != nil {
		return nil
	}
	lon, err := x.Get(exif.GPSLongitude)
	if err != nil {
		return nil
	}

	raw := &core.GPSRaw{
		Triples: [][]core.Rational{rationals(lat), rationals(lon)},
		LatRef:  "N",
		LonRef:  "E",
	}
	if v, ok := textTag(x, exif.GPSLatitudeRef); ok {
		raw.LatRef = v
	}
	if v, ok := textTag(x, exif.GPSLongitudeRef); ok {
		raw.LonRef = v
	}
	return raw
}

func rationals(tag *tiff.Tag) []core.Rational {
	out := make([]core.Rational, 0, tag.Count)
	for i := 0; i < int(tag.Count); i++ {
		num, den, err := tag.Rat2(i)
		if err != nil {
			return nil
		}
		out = append(out, core.Rational{Num: num, Den: den})
	}
	return out
}

// WalkEXIF calls fn for every EXIF tag of the image at path.
func WalkEXIF(path string, fn func(name, value string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	x, err := openEXIF(f, core.DetectFormat(path))
	if err != nil {
		return errNoEXIF
	}
	return x.Walk(walker(fn))
}

type walker func(name, value string)

func (w walker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	val := tag.String()
	// Remove surrounding quotes from string values
	if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
		val = val[1 : len(val)-1]
	}
	w(string(name), val)
	return nil
}
