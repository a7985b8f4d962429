// Package config loads the optional motion.yaml file of the motion CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when --config is not given.
const DefaultFile = "motion.yaml"

// Default cue tones in hertz.
const (
	DefaultEndTone    = 880.0
	DefaultRepeatTone = 440.0
)

// Config represents the optional motion.yaml configuration.
type Config struct {
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Log       LogConfig       `yaml:"log"`
	Audio     AudioConfig     `yaml:"audio"`
	Terminal  TerminalConfig  `yaml:"terminal"`
}

// SchedulerConfig contains animation scheduler settings.
type SchedulerConfig struct {
	FrameInterval string `yaml:"frame_interval,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// AudioConfig contains the cue settings.
type AudioConfig struct {
	Cues       bool    `yaml:"cues,omitempty"`
	EndTone    float64 `yaml:"end_tone,omitempty"`
	RepeatTone float64 `yaml:"repeat_tone,omitempty"`
}

// TerminalConfig contains terminal player settings.
type TerminalConfig struct {
	AutoRepaint string `yaml:"auto_repaint,omitempty"`
	HideStatus  bool   `yaml:"hide_status,omitempty"`
}

// Overrides carries command-line flags. Empty fields keep the file value.
type Overrides struct {
	LogLevel string
	Sound    *bool
}

// Resolved contains resolved configuration values.
type Resolved struct {
	// FrameInterval is zero when neither the file nor the scene sets it.
	FrameInterval time.Duration
	LogLevel      slog.Level
	Cues          bool
	EndTone       float64
	RepeatTone    float64
	// AutoRepaint is zero for the surface default.
	AutoRepaint time.Duration
	HideStatus  bool
}

// LoadOptional reads the file at path if present. An empty path means
// DefaultFile. A missing file yields an empty Config.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Resolve applies overrides and defaults and checks every value.
func Resolve(cfg *Config, o Overrides) (*Resolved, error) {
	r := &Resolved{
		Cues:       cfg.Audio.Cues,
		EndTone:    cfg.Audio.EndTone,
		RepeatTone: cfg.Audio.RepeatTone,
		HideStatus: cfg.Terminal.HideStatus,
	}

	var err error
	if r.FrameInterval, err = parseDuration("scheduler.frame_interval", cfg.Scheduler.FrameInterval); err != nil {
		return nil, err
	}
	if r.AutoRepaint, err = parseDuration("terminal.auto_repaint", cfg.Terminal.AutoRepaint); err != nil {
		return nil, err
	}

	level := strings.TrimSpace(cfg.Log.Level)
	if o.LogLevel != "" {
		level = o.LogLevel
	}
	if level == "" {
		level = "warn"
	}
	if err := r.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	if o.Sound != nil {
		r.Cues = *o.Sound
	}
	if r.EndTone == 0 {
		r.EndTone = DefaultEndTone
	}
	if r.RepeatTone == 0 {
		r.RepeatTone = DefaultRepeatTone
	}
	if r.EndTone < 0 || r.RepeatTone < 0 {
		return nil, fmt.Errorf("audio tones must be positive (got %v, %v)", r.EndTone, r.RepeatTone)
	}

	return r, nil
}

func parseDuration(field, s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative (got %v)", field, d)
	}
	return d, nil
}
