// Package image reads raw metadata tags from image files:
// JPEG/JPG, PNG, GIF, TIFF, BMP, HEIC
package image

import (
	"context"
	"fmt"
	stdimage "image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/ankit-chaubey/mediamd/core"
)

// Raw tag names produced by the image reader.
const (
	TagDateTimeOriginal = "DateTimeOriginal"
	TagMake             = "Make"
	TagModel            = "Model"
	TagImageDescription = "ImageDescription"
	TagUserComment      = "UserComment"
	TagFileName         = "FileName"
	TagFileSize         = "FileSize"
	TagMIMEType         = "MIMEType"
	TagImageWidth       = "ImageWidth"
	TagImageHeight      = "ImageHeight"
)

// Options configures a Reader.
type Options struct {
	// HEIC enables the HEIC decoder. When false, HEIC files yield a single
	// error tag.
	HEIC bool
	Log  zerolog.Logger
}

// Reader implements core.TagReader for images.
type Reader struct {
	heic heicDecoder
	log  zerolog.Logger
}

// NewReader returns a Reader. HEIC capability is decided here, once.
func NewReader(opts Options) *Reader {
	r := &Reader{log: opts.Log.With().Str("reader", "image").Logger()}
	if opts.HEIC {
		r.heic = imagemetaHEIC{}
	} else {
		r.heic = unsupportedHEIC{}
	}
	return r
}

// HEICSupported reports whether the reader can introspect HEIC files.
func (r *Reader) HEICSupported() bool {
	_, ok := r.heic.(unsupportedHEIC)
	return !ok
}

// ReadTags reads the raw tags of f. Decode failures are returned as a
// single core.ErrorKey tag.
func (r *Reader) ReadTags(_ context.Context, f core.MediaFile) core.RawTags {
	raw, err := r.read(f)
	if err != nil {
		r.log.Warn().Err(err).Str("path", f.Path).Msg("image metadata unavailable")
		return core.Failed(err)
	}
	return raw
}

func (r *Reader) read(mf core.MediaFile) (core.RawTags, error) {
	format := core.DetectFormat(mf.Path)

	f, err := os.Open(mf.Path)
	if err != nil {
		return core.RawTags{}, err
	}
	defer f.Close()

	raw := core.RawTags{Values: map[string]string{}}

	if format == core.FmtHEIC {
		g, err := r.heic.decode(f, raw.Values)
		if err != nil {
			return core.RawTags{}, err
		}
		raw.GPS = g
	} else {
		cfg, decoded, err := stdimage.DecodeConfig(f)
		if err != nil {
			return core.RawTags{}, fmt.Errorf("cannot identify image file %q: %w", mf.Name, err)
		}
		raw.Values[TagImageWidth] = strconv.Itoa(cfg.Width)
		raw.Values[TagImageHeight] = strconv.Itoa(cfg.Height)
		raw.Values[TagMIMEType] = "image/" + decoded

		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return core.RawTags{}, err
		}
		g, err := readEXIF(f, format, raw.Values)
		if err != nil {
			r.log.Debug().Err(err).Str("path", mf.Path).Msg("no EXIF")
		}
		raw.GPS = g
	}

	raw.Values[TagFileName] = mf.Name
	raw.Values[TagFileSize] = fmt.Sprintf("%d KB", mf.Size/1024)

	// Content sniffing is more specific than the decoder's format name.
	if _, err := f.Seek(0, io.SeekStart); err == nil {
		if mt, err := mimetype.DetectReader(f); err == nil && strings.HasPrefix(mt.String(), "image/") {
			raw.Values[TagMIMEType] = mt.String()
		}
	}
	return raw, nil
}
