package video

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ankit-chaubey/mediamd/core"
)

// exiftoolFields is the fixed tag list requested per file.
var exiftoolFields = []string{
	"CreateDate", "CreationDate", "ModifyDate", "TrackCreateDate", "MediaCreateDate",
	"FileModifyDate", "FileName", "FileSize", "ImageWidth", "ImageHeight", "MIMEType",
	"Make", "Model", "GPSLatitude", "GPSLongitude", "GPSPosition",
	"Duration", "Comment", "Description", "UserComment", "XPComment",
}

// Exiftool probes a video by running the exiftool executable once per file.
type Exiftool struct {
	Bin     string
	Timeout time.Duration
	log     zerolog.Logger
}

func (e *Exiftool) args(path string) []string {
	args := make([]string, 0, len(exiftoolFields)+2)
	args = append(args, "-s")
	for _, f := range exiftoolFields {
		args = append(args, "-"+f)
	}
	return append(args, path)
}

// ReadTags runs exiftool on f. A non-zero exit status still yields whatever
// exiftool printed; only a failure to run the process is an error tag.
func (e *Exiftool) ReadTags(ctx context.Context, f core.MediaFile) core.RawTags {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	out, err := exec.CommandContext(ctx, e.Bin, e.args(f.Path)...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if ctx.Err() != nil || !errors.As(err, &exitErr) {
			err = fmt.Errorf("run %s: %w", e.Bin, err)
			e.log.Warn().Err(err).Str("path", f.Path).Msg("video metadata unavailable")
			return core.Failed(err)
		}
		e.log.Debug().Int("status", exitErr.ExitCode()).Str("path", f.Path).Msg("exiftool exited non-zero")
	}
	return core.RawTags{Values: parseProbeOutput(out)}
}

// parseProbeOutput parses "Key : Value" lines, splitting on the first
// colon. Lines without a colon are skipped.
func parseProbeOutput(out []byte) map[string]string {
	values := map[string]string{}
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.TrimSpace(value)
	}
	return values
}
