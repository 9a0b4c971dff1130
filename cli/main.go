package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"

	"github.com/ankit-chaubey/mediamd/core"
	"github.com/ankit-chaubey/mediamd/core/config"
	"github.com/ankit-chaubey/mediamd/core/image"
	"github.com/ankit-chaubey/mediamd/core/pipeline"
	"github.com/ankit-chaubey/mediamd/core/transcribe"
	"github.com/ankit-chaubey/mediamd/core/video"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mediamd", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: mediamd [options]\n\n")
		fmt.Fprintf(stderr, "Write the metadata and transcripts of a media folder to one Markdown file\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	var input, output, configPath string
	fs.StringVar(&input, "i", ".", "Input directory with images and videos")
	fs.StringVar(&input, "input", ".", "Input directory with images and videos")
	fs.StringVar(&output, "o", "transcriptions.md", "Output Markdown file")
	fs.StringVar(&output, "output", "transcriptions.md", "Output Markdown file")
	fs.StringVar(&configPath, "config", "", "Optional YAML config file")
	debug := fs.Bool("debug", false, "Process one video and one image and print their metadata")
	noTranscribe := fs.Bool("no-transcribe", false, "Skip speech-to-text")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	printer := core.NewPrinterTo(stdout, stderr)

	cfg, err := config.Load(configPath)
	if err != nil {
		printer.PrintError(err.Error())
		return 1
	}

	level := cfg.Level()
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen, NoColor: color.NoColor}).
		Level(level).
		With().Timestamp().Logger()

	if input, err = homedir.Expand(input); err != nil {
		printer.PrintError(err.Error())
		return 1
	}
	if output, err = homedir.Expand(output); err != nil {
		printer.PrintError(err.Error())
		return 1
	}

	videos, err := video.New(video.Options{
		Probe:        cfg.VideoProbe,
		ExiftoolPath: cfg.ExiftoolPath,
		FFprobePath:  cfg.FFprobePath,
		Timeout:      cfg.ProbeTimeout,
		Log:          log,
	})
	if err != nil {
		printer.PrintError(err.Error())
		return 1
	}

	var transcriber core.Transcriber = transcribe.Disabled{}
	if cfg.Whisper.Enabled && !*noTranscribe {
		transcriber = transcribe.New(transcribe.Options{
			Bin:      cfg.Whisper.Bin,
			Model:    cfg.Whisper.Model,
			Language: cfg.Whisper.Language,
			Timeout:  cfg.Whisper.Timeout,
			Log:      log,
		})
	}

	images := image.NewReader(image.Options{HEIC: cfg.HEIC, Log: log})
	log.Debug().Bool("heic", images.HEICSupported()).Str("video_probe", cfg.VideoProbe).Msg("readers ready")

	p := &pipeline.Pipeline{
		Images:      images,
		Videos:      videos,
		Transcriber: transcriber,
		Log:         log,
	}
	if *debug {
		p.Debug = printer
		p.WalkEXIF = image.WalkEXIF
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := p.Run(ctx, pipeline.Options{Input: input, Output: output, Debug: *debug})
	switch {
	case errors.Is(err, pipeline.ErrMissingInput), errors.Is(err, pipeline.ErrNoMedia):
		printer.PrintError(err.Error())
		return 0
	case err != nil:
		printer.PrintError(err.Error())
		return 1
	}

	printer.PrintSuccess(fmt.Sprintf("Processed %d videos and %d images. Report saved to %s", res.Videos, res.Images, res.Output))
	return 0
}
