package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOptionalMissing(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	r, err := Resolve(cfg, Overrides{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.LogLevel != slog.LevelWarn || r.Cues || r.FrameInterval != 0 {
		t.Errorf("unexpected defaults %+v", r)
	}
	if r.EndTone != DefaultEndTone || r.RepeatTone != DefaultRepeatTone {
		t.Errorf("tones = %v, %v", r.EndTone, r.RepeatTone)
	}
}

func TestLoadAndResolve(t *testing.T) {
	path := writeConfig(t, `
scheduler:
  frame_interval: 16ms
log:
  level: debug
audio:
  cues: true
  end_tone: 660
terminal:
  auto_repaint: 1s
  hide_status: true
`)
	cfg, err := LoadOptional(path)
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	r, err := Resolve(cfg, Overrides{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.FrameInterval != 16*time.Millisecond {
		t.Errorf("FrameInterval = %v", r.FrameInterval)
	}
	if r.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", r.LogLevel)
	}
	if !r.Cues || r.EndTone != 660 || r.RepeatTone != DefaultRepeatTone {
		t.Errorf("audio = %+v", r)
	}
	if r.AutoRepaint != time.Second || !r.HideStatus {
		t.Errorf("terminal = %+v", r)
	}
}

func TestOverridesWin(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "debug"}, Audio: AudioConfig{Cues: true}}
	off := false
	r, err := Resolve(cfg, Overrides{LogLevel: "error", Sound: &off})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.LogLevel != slog.LevelError || r.Cues {
		t.Errorf("resolved %+v", r)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad interval", Config{Scheduler: SchedulerConfig{FrameInterval: "soon"}}},
		{"negative interval", Config{Scheduler: SchedulerConfig{FrameInterval: "-1s"}}},
		{"bad repaint", Config{Terminal: TerminalConfig{AutoRepaint: "x"}}},
		{"bad level", Config{Log: LogConfig{Level: "loud"}}},
		{"negative tone", Config{Audio: AudioConfig{EndTone: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(&tt.cfg, Overrides{}); err == nil {
				t.Error("Resolve succeeded")
			}
		})
	}
}

func TestLoadOptionalInvalidYAML(t *testing.T) {
	path := writeConfig(t, "scheduler: [1, 2\n")
	if _, err := LoadOptional(path); err == nil {
		t.Error("LoadOptional accepted invalid YAML")
	}
}
