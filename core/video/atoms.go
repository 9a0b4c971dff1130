package video

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/rs/zerolog"

	"github.com/ankit-chaubey/mediamd/core"
)

// Atoms reads MP4/QuickTime atoms in-process. Other containers only get the
// file-level tags.
type Atoms struct {
	log zerolog.Logger
}

func (a *Atoms) ReadTags(_ context.Context, f core.MediaFile) core.RawTags {
	values := map[string]string{}

	switch core.DetectFormat(f.Path) {
	case core.FmtMP4, core.FmtMOV:
		if err := a.readAtoms(f.Path, values); err != nil {
			a.log.Warn().Err(err).Str("path", f.Path).Msg("video metadata unavailable")
			return core.Failed(err)
		}
	}

	fileTags(f, values)
	return core.RawTags{Values: values}
}

func (a *Atoms) readAtoms(path string, values map[string]string) error {
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	walkBoxes(fh, 0, -1, values, 0)

	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		return err
	}
	m, err := tag.ReadFrom(fh)
	switch {
	case errors.Is(err, tag.ErrNoTagsFound):
	case err != nil:
		a.log.Debug().Err(err).Str("path", path).Msg("no ilst tags")
	default:
		if c := strings.TrimSpace(m.Comment()); c != "" {
			values[TagComment] = c
		}
	}
	return nil
}

// mp4Epoch is the zero point of QuickTime timestamps.
var mp4Epoch = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)

// maxMP4Seconds is the first creation time past year 9999.
var maxMP4Seconds = uint64(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC).Unix() - mp4Epoch.Unix())

// ilstTags maps the iTunes-style atoms read here to raw tag names.
var ilstTags = map[string]string{
	"\xa9cmt": TagComment,
	"desc":    TagDescription,
	"ldes":    TagDescription,
}

// walkBoxes walks the atoms in [start, limit) and records the movie header
// and the comment/description atoms. limit < 0 means until EOF.
func walkBoxes(r io.ReadSeeker, start, limit int64, values map[string]string, depth int) {
	if depth > 8 {
		return
	}
	pos := start
	hdr := make([]byte, 8)
	for limit < 0 || pos < limit {
		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return
		}
		if _, err := io.ReadFull(r, hdr); err != nil {
			return
		}
		size := int64(binary.BigEndian.Uint32(hdr[0:4]))
		boxType := string(hdr[4:8])
		headerLen := int64(8)

		if size == 1 {
			ext := make([]byte, 8)
			if _, err := io.ReadFull(r, ext); err != nil {
				return
			}
			size = int64(binary.BigEndian.Uint64(ext))
			headerLen = 16
		}
		if size < headerLen {
			return
		}
		body := pos + headerLen
		end := pos + size

		switch boxType {
		case "moov", "udta", "ilst":
			walkBoxes(r, body, end, values, depth+1)
		case "meta":
			// version/flags prefix
			walkBoxes(r, body+4, end, values, depth+1)
		case "mvhd":
			buf := make([]byte, min64(size-headerLen, 32))
			if _, err := io.ReadFull(r, buf); err == nil {
				movieHeader(buf, values)
			}
		case "\xa9cmt", "desc", "ldes":
			child := make([]byte, min64(size-headerLen, 1<<20))
			if _, err := io.ReadFull(r, child); err == nil {
				if v := itemData(child); v != "" {
					if _, seen := values[ilstTags[boxType]]; !seen {
						values[ilstTags[boxType]] = v
					}
				}
			}
		}
		pos = end
	}
}

// movieHeader decodes creation time and duration from an mvhd payload.
func movieHeader(buf []byte, values map[string]string) {
	if len(buf) < 1 {
		return
	}
	var created uint64
	var scale uint32
	var duration uint64
	switch buf[0] {
	case 0:
		if len(buf) < 20 {
			return
		}
		created = uint64(binary.BigEndian.Uint32(buf[4:8]))
		scale = binary.BigEndian.Uint32(buf[12:16])
		duration = uint64(binary.BigEndian.Uint32(buf[16:20]))
	case 1:
		if len(buf) < 32 {
			return
		}
		created = binary.BigEndian.Uint64(buf[4:12])
		scale = binary.BigEndian.Uint32(buf[20:24])
		duration = binary.BigEndian.Uint64(buf[24:32])
	default:
		return
	}

	if created > 0 && created < maxMP4Seconds {
		t := time.Unix(mp4Epoch.Unix()+int64(created), 0).UTC()
		values[TagCreateDate] = t.Format("2006:01:02 15:04:05")
	}
	if scale > 0 {
		values[TagDuration] = formatDuration(float64(duration) / float64(scale))
	}
}

// itemData extracts the value of an ilst item's child data atom:
// 4 size + 4 "data" + 4 type + 4 locale + value.
func itemData(data []byte) string {
	if len(data) < 16 || string(data[4:8]) != "data" {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(string(data[16:]), "\x00"))
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
