// Package transcribe turns the speech in a video file into plain text.
package transcribe

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrUnavailable is returned when the speech-to-text executable cannot be
// found.
var ErrUnavailable = errors.New("speech-to-text engine unavailable")

// Options configures a Whisper handle.
type Options struct {
	Bin      string
	Model    string
	Language string
	Timeout  time.Duration
	Log      zerolog.Logger
}

// Whisper transcribes through the whisper command-line tool. The
// executable is resolved once, when the handle is created, and the handle
// is reused for every file of a run.
type Whisper struct {
	bin        string
	model      string
	language   string
	timeout    time.Duration
	resolveErr error
	log        zerolog.Logger
}

// New resolves the whisper executable and returns a handle. A missing
// executable is not an error here: every Transcribe call reports it.
func New(opts Options) *Whisper {
	w := &Whisper{
		model:    opts.Model,
		language: opts.Language,
		timeout:  opts.Timeout,
		log:      opts.Log.With().Str("component", "transcribe").Logger(),
	}
	if w.model == "" {
		w.model = "base"
	}
	bin, err := exec.LookPath(opts.Bin)
	if err != nil {
		w.resolveErr = fmt.Errorf("%w: %v", ErrUnavailable, err)
		w.log.Warn().Err(err).Str("bin", opts.Bin).Msg("whisper not found; videos will carry a failure note")
	}
	w.bin = bin
	return w
}

// Transcribe returns the transcript of the audio track of path, with
// segment texts joined by single spaces.
func (w *Whisper) Transcribe(ctx context.Context, path string) (string, error) {
	if w.resolveErr != nil {
		return "", w.resolveErr
	}
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	outDir, err := os.MkdirTemp("", "mediamd-whisper-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(outDir)

	args := []string{
		path,
		"--model", w.model,
		"--output_format", "txt",
		"--output_dir", outDir,
		"--verbose", "False",
	}
	if w.language != "" {
		args = append(args, "--language", w.language)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, w.bin, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("whisper: %w", ctx.Err())
		}
		if msg := lastLine(stderr.String()); msg != "" {
			return "", fmt.Errorf("whisper: %w: %s", err, msg)
		}
		return "", fmt.Errorf("whisper: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	data, err := os.ReadFile(filepath.Join(outDir, stem+".txt"))
	if err != nil {
		return "", fmt.Errorf("whisper produced no transcript: %w", err)
	}
	return joinSegments(data), nil
}

// joinSegments joins the trimmed non-empty lines of a whisper txt output.
func joinSegments(data []byte) string {
	var parts []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4<<20)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}

// Disabled is used with --no-transcribe. It yields an empty transcript.
type Disabled struct{}

func (Disabled) Transcribe(context.Context, string) (string, error) { return "", nil }
