// Package pipeline runs one pass over an input directory: it lists the
// media files, reads and normalizes their metadata, transcribes videos and
// writes the Markdown report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ankit-chaubey/mediamd/core"
	"github.com/ankit-chaubey/mediamd/core/normalize"
	"github.com/ankit-chaubey/mediamd/core/report"
	"github.com/ankit-chaubey/mediamd/core/scan"
)

var (
	// ErrMissingInput is returned when the input is not an existing directory.
	ErrMissingInput = errors.New("input directory does not exist")
	// ErrNoMedia is returned when the input holds no recognized media file.
	ErrNoMedia = errors.New("no image or video files found")
)

// Pipeline wires the tag readers, the transcriber and the report writer.
type Pipeline struct {
	Images      core.TagReader
	Videos      core.TagReader
	Transcriber core.Transcriber
	Log         zerolog.Logger

	// Debug receives per-file diagnostics in debug runs.
	Debug *core.Printer
	// WalkEXIF, when set, lists every EXIF tag of an image in debug runs.
	WalkEXIF func(path string, fn func(name, value string)) error
}

// Options select the input, the output and the run mode.
type Options struct {
	Input  string
	Output string
	// Debug limits the run to the first video and the first image and
	// prints diagnostics for both.
	Debug bool
}

// Result summarizes a completed run.
type Result struct {
	Output string
	Images int
	Videos int
}

// Run processes every media file of opts.Input in sorted order and writes
// the report to opts.Output. Per-file failures end up in the report; only
// a missing input, an empty input or a failed write abort the run, and in
// those cases no report is written.
func (p *Pipeline) Run(ctx context.Context, opts Options) (Result, error) {
	files, err := scan.List(opts.Input)
	if err != nil {
		if errors.Is(err, scan.ErrNotDir) {
			return Result{}, fmt.Errorf("%w: %s", ErrMissingInput, opts.Input)
		}
		return Result{}, err
	}
	if len(files) == 0 {
		return Result{}, fmt.Errorf("%w in %s", ErrNoMedia, opts.Input)
	}
	if opts.Debug {
		files = scan.FirstOfEach(files)
	}

	res := Result{Output: opts.Output}
	var doc report.Document
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		doc.Append(p.process(ctx, f, opts.Debug))
		switch f.Kind {
		case core.KindImage:
			res.Images++
		case core.KindVideo:
			res.Videos++
		}
	}

	if err := report.WriteFile(opts.Output, doc.Bytes()); err != nil {
		return Result{}, fmt.Errorf("write report %s: %w", opts.Output, err)
	}
	p.Log.Info().Str("output", opts.Output).Int("images", res.Images).Int("videos", res.Videos).Msg("report written")
	return res, nil
}

func (p *Pipeline) process(ctx context.Context, f core.MediaFile, debug bool) report.Section {
	log := p.Log.With().Str("file", f.Name).Logger()

	reader := p.Images
	if f.Kind == core.KindVideo {
		reader = p.Videos
	}
	raw := reader.ReadTags(ctx, f)
	meta := normalize.Normalize(f.Kind, raw)
	if meta.Err != "" {
		log.Warn().Str("error", meta.Err).Msg("metadata unavailable")
	}
	if debug {
		p.dump(f, raw, meta)
	}

	section := report.Section{File: f, Meta: meta}
	if f.Kind == core.KindVideo {
		section.Transcript = p.transcribe(ctx, f, log)
	}
	return section
}

func (p *Pipeline) transcribe(ctx context.Context, f core.MediaFile, log zerolog.Logger) string {
	if p.Transcriber == nil {
		return ""
	}
	log.Info().Msgf("Transcribing: %s", f.Path)
	text, err := p.Transcriber.Transcribe(ctx, f.Path)
	if err != nil {
		log.Warn().Err(err).Msg("transcription failed")
		return "Transcription failed: " + err.Error()
	}
	return text
}

func (p *Pipeline) dump(f core.MediaFile, raw core.RawTags, meta core.Metadata) {
	if p.Debug == nil {
		return
	}
	p.Debug.PrintHeading(f)

	var modTime time.Time
	if st, err := os.Stat(f.Path); err == nil {
		modTime = st.ModTime()
	}
	p.Debug.PrintRawTags(raw, modTime)

	if f.Kind == core.KindImage && p.WalkEXIF != nil {
		p.Debug.PrintInfo("EXIF tags:")
		if err := p.WalkEXIF(f.Path, p.Debug.PrintTag); err != nil {
			p.Debug.PrintTag("EXIF", err.Error())
		}
	}
	p.Debug.PrintMetadata(meta)
}
