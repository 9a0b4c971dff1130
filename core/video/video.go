// Package video reads raw metadata tags from video containers:
// MP4, MOV, AVI, MKV, FLV, WMV
//
// Three probes are available. The exiftool probe shells out to exiftool and
// is the most complete. The ffprobe probe reads stream properties through
// ffprobe. The atoms probe parses MP4/QuickTime atoms in-process and needs
// no external tool.
package video

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/ankit-chaubey/mediamd/core"
)

// Probe names accepted by New.
const (
	ProbeExiftool = "exiftool"
	ProbeFFprobe  = "ffprobe"
	ProbeAtoms    = "atoms"
)

// Raw tag names produced by the video probes. They match exiftool's
// short tag names so every probe feeds the same normalization rules.
const (
	TagCreateDate     = "CreateDate"
	TagFileModifyDate = "FileModifyDate"
	TagFileName       = "FileName"
	TagFileSize       = "FileSize"
	TagMIMEType       = "MIMEType"
	TagImageWidth     = "ImageWidth"
	TagImageHeight    = "ImageHeight"
	TagDuration       = "Duration"
	TagComment        = "Comment"
	TagDescription    = "Description"
)

// Options configures the probe returned by New.
type Options struct {
	Probe        string
	ExiftoolPath string
	FFprobePath  string
	Timeout      time.Duration
	Log          zerolog.Logger
}

// New returns the video probe named by opts.Probe.
func New(opts Options) (core.TagReader, error) {
	log := opts.Log.With().Str("reader", "video").Str("probe", opts.Probe).Logger()
	switch opts.Probe {
	case ProbeExiftool, "":
		return &Exiftool{Bin: opts.ExiftoolPath, Timeout: opts.Timeout, log: log}, nil
	case ProbeFFprobe:
		return &FFprobe{Bin: opts.FFprobePath, Timeout: opts.Timeout, log: log}, nil
	case ProbeAtoms:
		return &Atoms{log: log}, nil
	default:
		return nil, fmt.Errorf("unknown video probe %q", opts.Probe)
	}
}

// fileTags fills the tags every in-process probe derives from the file
// itself: name, size, modification time and sniffed MIME type.
func fileTags(f core.MediaFile, values map[string]string) {
	values[TagFileName] = f.Name
	values[TagFileSize] = humanSize(f.Size)

	fh, err := os.Open(f.Path)
	if err != nil {
		return
	}
	defer fh.Close()

	if st, err := fh.Stat(); err == nil {
		values[TagFileModifyDate] = st.ModTime().Format("2006:01:02 15:04:05-07:00")
	}
	if mt, err := mimetype.DetectReader(fh); err == nil && strings.HasPrefix(mt.String(), "video/") {
		values[TagMIMEType] = mt.String()
	}
}

// humanSize renders a byte count the way exiftool does.
func humanSize(n int64) string {
	switch {
	case n < 2048:
		return fmt.Sprintf("%d bytes", n)
	case n < 2048<<10:
		return fmt.Sprintf("%d kB", n>>10)
	case n < 2048<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	default:
		return fmt.Sprintf("%.1f GB", float64(n)/(1<<30))
	}
}

// formatDuration renders seconds the way exiftool does: "12.50 s" below
// thirty seconds, "h:mm:ss" otherwise.
func formatDuration(seconds float64) string {
	if seconds < 30 {
		return fmt.Sprintf("%.2f s", seconds)
	}
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
