package image

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/evanoberholster/imagemeta"
	"github.com/evanoberholster/imagemeta/exif2"

	"github.com/ankit-chaubey/mediamd/core"
	"github.com/ankit-chaubey/mediamd/core/gps"
)

var errHEICUnsupported = errors.New("HEIC support is disabled; cannot extract HEIC metadata")

// heicDecoder is the HEIC capability chosen once by NewReader.
type heicDecoder interface {
	decode(r io.ReadSeeker, values map[string]string) (*core.GPSRaw, error)
}

type unsupportedHEIC struct{}

func (unsupportedHEIC) decode(io.ReadSeeker, map[string]string) (*core.GPSRaw, error) {
	return nil, errHEICUnsupported
}

type imagemetaHEIC struct{}

func (imagemetaHEIC) decode(r io.ReadSeeker, values map[string]string) (*core.GPSRaw, error) {
	x, err := decodeHEICSafe(r)
	if err != nil {
		return nil, fmt.Errorf("decode HEIC metadata: %w", err)
	}
	return heicTags(x, values), nil
}

// heicTags copies the fields of a decoded HEIC EXIF block into values and
// returns its GPS position, if any.
func heicTags(x exif2.Exif, values map[string]string) *core.GPSRaw {
	if t := x.DateTimeOriginal(); !t.IsZero() {
		values[TagDateTimeOriginal] = t.Format("2006:01:02 15:04:05")
	}
	if v := strings.TrimSpace(x.Make); v != "" {
		values[TagMake] = v
	}
	if v := strings.TrimSpace(x.Model); v != "" {
		values[TagModel] = v
	}
	if v := strings.TrimSpace(x.ImageDescription); v != "" {
		values[TagImageDescription] = v
	}
	if x.ImageWidth != 0 && x.ImageHeight != 0 {
		values[TagImageWidth] = strconv.Itoa(int(x.ImageWidth))
		values[TagImageHeight] = strconv.Itoa(int(x.ImageHeight))
	}

	lat, lon := x.GPS.Latitude(), x.GPS.Longitude()
	if lat == 0 && lon == 0 {
		return nil
	}
	raw := gps.FromDecimal(lat, lon)
	return &raw
}

// decodeHEICSafe protects against panics from the decoder on malformed files.
func decodeHEICSafe(r io.ReadSeeker) (x exif2.Exif, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while decoding HEIC: %v", rec)
		}
	}()
	return imagemeta.Decode(r)
}
