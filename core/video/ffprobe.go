package video

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/floostack/transcoder/ffmpeg"
	"github.com/rs/zerolog"

	"github.com/ankit-chaubey/mediamd/core"
)

// ffprobeArgs matches the flags the transcoder passes to ffprobe, so its
// JSON decodes into ffmpeg.Metadata.
var ffprobeArgs = []string{"-print_format", "json", "-show_format", "-show_streams", "-show_error"}

// killGrace bounds how long Wait waits for output pipes after ffprobe is
// killed.
const killGrace = 500 * time.Millisecond

// FFprobe probes a video through ffprobe. It yields duration and frame
// size; date, comment and description fields stay with exiftool.
type FFprobe struct {
	Bin     string
	Timeout time.Duration
	log     zerolog.Logger
}

// ReadTags runs ffprobe on f. The process is killed when the context is
// done or the timeout passes, and has exited before ReadTags returns.
func (p *FFprobe) ReadTags(ctx context.Context, f core.MediaFile) core.RawTags {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	values, err := p.probe(ctx, f.Path)
	if err != nil {
		err = fmt.Errorf("probe %s with ffprobe: %w", f.Name, err)
		p.log.Warn().Err(err).Str("path", f.Path).Msg("video metadata unavailable")
		return core.Failed(err)
	}

	fileTags(f, values)
	return core.RawTags{Values: values}
}

func (p *FFprobe) probe(ctx context.Context, path string) (map[string]string, error) {
	cmd := exec.CommandContext(ctx, p.Bin, append([]string{"-i", path}, ffprobeArgs...)...)
	cmd.WaitDelay = killGrace
	out, err := cmd.Output()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}

	var md ffmpeg.Metadata
	if err := json.Unmarshal(out, &md); err != nil {
		return nil, fmt.Errorf("decode ffprobe output: %w", err)
	}

	values := map[string]string{}
	if d, err := strconv.ParseFloat(md.GetFormat().GetDuration(), 64); err == nil {
		values[TagDuration] = formatDuration(d)
	}
	for _, s := range md.GetStreams() {
		if s.GetCodecType() != "video" {
			continue
		}
		if s.GetWidth() > 0 && s.GetHeight() > 0 {
			values[TagImageWidth] = strconv.Itoa(s.GetWidth())
			values[TagImageHeight] = strconv.Itoa(s.GetHeight())
		}
		break
	}
	return values, nil
}
