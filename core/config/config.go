package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
)

// Config holds the settings read from an optional YAML file and the
// environment. Environment variables override the file.
type Config struct {
	VideoProbe   string        `yaml:"video_probe" env:"MEDIAMD_VIDEO_PROBE" env-default:"exiftool"`
	ExiftoolPath string        `yaml:"exiftool_path" env:"MEDIAMD_EXIFTOOL" env-default:"exiftool"`
	FFprobePath  string        `yaml:"ffprobe_path" env:"MEDIAMD_FFPROBE" env-default:"ffprobe"`
	ProbeTimeout time.Duration `yaml:"probe_timeout" env:"MEDIAMD_PROBE_TIMEOUT" env-default:"30s"`
	HEIC         bool          `yaml:"heic" env:"MEDIAMD_HEIC"`
	LogLevel     string        `yaml:"log_level" env:"MEDIAMD_LOG_LEVEL" env-default:"info"`
	Whisper      WhisperConfig `yaml:"whisper"`
}

// WhisperConfig is the subset of the configuration for speech-to-text.
type WhisperConfig struct {
	Enabled  bool          `yaml:"enabled" env:"MEDIAMD_WHISPER_ENABLED"`
	Bin      string        `yaml:"bin" env:"MEDIAMD_WHISPER_BIN" env-default:"whisper"`
	Model    string        `yaml:"model" env:"MEDIAMD_WHISPER_MODEL" env-default:"base"`
	Language string        `yaml:"language" env:"MEDIAMD_WHISPER_LANGUAGE"`
	Timeout  time.Duration `yaml:"timeout" env:"MEDIAMD_WHISPER_TIMEOUT" env-default:"0s"`
}

var probes = map[string]bool{"exiftool": true, "ffprobe": true, "atoms": true}

// Load reads the YAML file at path when path is non-empty, then applies
// the environment and defaults. The result is validated.
func Load(path string) (*Config, error) {
	// cleanenv applies env-default to any zero value, explicit false included.
	cfg := &Config{HEIC: true, Whisper: WhisperConfig{Enabled: true}}
	if path != "" {
		p, err := homedir.Expand(path)
		if err != nil {
			return nil, err
		}
		if err := cleanenv.ReadConfig(p, cfg); err != nil {
			return nil, fmt.Errorf("failed to load configuration from %s: %w", p, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration from environment: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown probe names and log levels.
func (c *Config) Validate() error {
	if !probes[c.VideoProbe] {
		return fmt.Errorf("invalid video_probe %q: want exiftool, ffprobe or atoms", c.VideoProbe)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.ProbeTimeout < 0 || c.Whisper.Timeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

// Level returns the configured zerolog level.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.ExiftoolPath, &c.FFprobePath, &c.Whisper.Bin} {
		v, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expand %q: %w", *p, err)
		}
		*p = v
	}
	return nil
}
