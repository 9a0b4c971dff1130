package transcribe

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWhisper writes a whisper stand-in that prints its arguments to
// args.txt next to itself and runs body.
func fakeWhisper(t *testing.T, body string) (bin, argsFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	dir := t.TempDir()
	bin = filepath.Join(dir, "whisper")
	argsFile = filepath.Join(dir, "args.txt")
	script := "#!/bin/sh\n" +
		`echo "$@" > "` + argsFile + `"` + "\n" +
		body + "\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin, argsFile
}

// Writes a txt transcript named after the input into --output_dir.
const writeTranscript = `in="$1"; shift
while [ $# -gt 0 ]; do
  case "$1" in --output_dir) out="$2"; shift ;; esac
  shift
done
stem=$(basename "$in"); stem="${stem%.*}"
printf ' Hello there.\n\n  General Kenobi. \n' > "$out/$stem.txt"`

func TestWhisper_Transcribe(t *testing.T) {
	bin, argsFile := fakeWhisper(t, writeTranscript)
	w := New(Options{Bin: bin, Model: "tiny", Language: "en", Log: zerolog.Nop()})

	text, err := w.Transcribe(context.Background(), "/videos/holiday.clip.mp4")

	require.NoError(t, err)
	assert.Equal(t, "Hello there. General Kenobi.", text)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(args), "/videos/holiday.clip.mp4 --model tiny --output_format txt")
	assert.Contains(t, string(args), "--verbose False --language en")
}

func TestWhisper_DefaultModelNoLanguage(t *testing.T) {
	bin, argsFile := fakeWhisper(t, writeTranscript)
	w := New(Options{Bin: bin, Log: zerolog.Nop()})

	_, err := w.Transcribe(context.Background(), "a.mov")
	require.NoError(t, err)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(args), "--model base")
	assert.NotContains(t, string(args), "--language")
}

func TestWhisper_Unavailable(t *testing.T) {
	w := New(Options{Bin: filepath.Join(t.TempDir(), "missing-whisper"), Log: zerolog.Nop()})

	_, err := w.Transcribe(context.Background(), "a.mp4")

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestWhisper_Failure(t *testing.T) {
	bin, _ := fakeWhisper(t, `echo "loading model" >&2
echo "RuntimeError: ffmpeg not found" >&2
exit 3`)
	w := New(Options{Bin: bin, Log: zerolog.Nop()})

	_, err := w.Transcribe(context.Background(), "a.mp4")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "RuntimeError: ffmpeg not found")
	assert.NotContains(t, err.Error(), "loading model")
}

func TestWhisper_NoOutputFile(t *testing.T) {
	bin, _ := fakeWhisper(t, "exit 0")
	w := New(Options{Bin: bin, Log: zerolog.Nop()})

	_, err := w.Transcribe(context.Background(), "a.mp4")

	assert.ErrorContains(t, err, "no transcript")
}

func TestWhisper_Timeout(t *testing.T) {
	bin, _ := fakeWhisper(t, "exec sleep 5")
	w := New(Options{Bin: bin, Timeout: 100 * time.Millisecond, Log: zerolog.Nop()})

	_, err := w.Transcribe(context.Background(), "a.mp4")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDisabled(t *testing.T) {
	text, err := Disabled{}.Transcribe(context.Background(), "a.mp4")
	assert.NoError(t, err)
	assert.Empty(t, text)
}

func TestJoinSegments(t *testing.T) {
	assert.Equal(t, "", joinSegments(nil))
	assert.Equal(t, "a b c", joinSegments([]byte("a\n  b  \r\n\nc")))
}
