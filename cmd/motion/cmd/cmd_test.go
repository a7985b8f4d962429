package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/motion/cmd/motion/internal/config"
	motionerrors "github.com/go-drift/motion/pkg/errors"
)

const fadeScene = `
version: v1.0.0
frame_interval: 10ms
shapes:
  - {id: a, kind: box, bounds: [0, 0, 2, 2], fill: red}
animations:
  - {target: a, duration: 20ms, easing: linear, to: {opacity: 0}}
`

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() {
		stdout = prev
		motionerrors.SetLogger(nil)
		motionerrors.SetHandler(nil)
	})
	return &buf
}

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func noConfig(t *testing.T) string {
	return "--config=" + filepath.Join(t.TempDir(), "none.yaml")
}

func TestVersion(t *testing.T) {
	out := captureOutput(t)
	if err := execute([]string{"version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Errorf("output = %q", out.String())
	}
}

func TestHelpListsCommands(t *testing.T) {
	out := captureOutput(t)
	if err := execute(nil); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"play", "trace", "check"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("help does not list %q", name)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	captureOutput(t)
	if err := execute([]string{"dance"}); err == nil {
		t.Error("unknown command accepted")
	}
}

func TestGlobalFlagParsing(t *testing.T) {
	captureOutput(t)
	path := writeScene(t, fadeScene)
	if err := execute([]string{"--log-level", "error", "--no-sound", "check", path}); err != nil {
		t.Fatal(err)
	}
	if globals.overrides.LogLevel != "error" {
		t.Errorf("LogLevel = %q", globals.overrides.LogLevel)
	}
	if s := globals.overrides.Sound; s == nil || *s {
		t.Error("--no-sound not recorded")
	}
	if err := execute([]string{"check", path, "--config"}); err == nil {
		t.Error("--config without a value accepted")
	}
}

func TestCheck(t *testing.T) {
	out := captureOutput(t)
	path := writeScene(t, fadeScene)
	if err := execute([]string{noConfig(t), "check", path, "--normalize"}); err != nil {
		t.Fatalf("check: %v", err)
	}
	got := out.String()
	for _, want := range []string{"1 shapes, 1 animations (0 looping)", "settle after 20ms", "---", "frame_interval: 10ms"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestCheckWarnsAboutSupersededAnimations(t *testing.T) {
	out := captureOutput(t)
	path := writeScene(t, fadeScene+"  - {target: a, duration: 1s, to: {rotation: 90}}\n")
	if err := execute([]string{noConfig(t), "check", path}); err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out.String(), `2 animations target "a"`) {
		t.Errorf("no supersede warning:\n%s", out.String())
	}
}

func TestCheckInvalidScene(t *testing.T) {
	captureOutput(t)
	path := writeScene(t, "version: v3.0.0\nshapes: []\n")
	if err := execute([]string{noConfig(t), "check", path}); err == nil {
		t.Error("invalid scene accepted")
	}
}

func TestTrace(t *testing.T) {
	out := captureOutput(t)
	path := writeScene(t, fadeScene)
	if err := execute([]string{noConfig(t), "trace", path}); err != nil {
		t.Fatalf("trace: %v", err)
	}
	want := `frame 1
  a box bounds=(0.00,0.00,2.00,2.00) fill=#ff0000ff stroke=#00000000 width=0.00 opacity=127 rotation=0.00
frame 2
  a box bounds=(0.00,0.00,2.00,2.00) fill=#ff0000ff stroke=#00000000 width=0.00 opacity=0 rotation=0.00
`
	if got := out.String(); got != want {
		t.Errorf("trace output:\n%s\nwant:\n%s", got, want)
	}
}

func TestTraceFramesLimit(t *testing.T) {
	out := captureOutput(t)
	path := writeScene(t, strings.Replace(fadeScene, "easing: linear", "repeat: oscillate", 1))
	if err := execute([]string{noConfig(t), "trace", path, "--frames", "7"}); err != nil {
		t.Fatalf("trace: %v", err)
	}
	if n := strings.Count(out.String(), "frame "); n != 7 {
		t.Errorf("printed %d frames, want 7", n)
	}
	if err := execute([]string{noConfig(t), "trace", path, "--frames=0"}); err == nil {
		t.Error("--frames=0 accepted")
	}
}

func TestPlaySettles(t *testing.T) {
	captureOutput(t)
	doc, err := loadScene(writeScene(t, fadeScene))
	if err != nil {
		t.Fatal(err)
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(20, 6)
	defer screen.Fini()

	cfg, err := config.Resolve(&config.Config{}, config.Overrides{})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	if err := play(ctx, screen, doc, cfg); err != nil {
		t.Fatalf("play: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("play did not settle before the timeout")
	}
}

func TestPlayQuitKey(t *testing.T) {
	captureOutput(t)
	doc, err := loadScene(writeScene(t, strings.Replace(fadeScene, "easing: linear", "repeat: repeat", 1)))
	if err != nil {
		t.Fatal(err)
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()

	cfg, _ := config.Resolve(&config.Config{}, config.Overrides{})
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	go func() {
		time.Sleep(50 * time.Millisecond)
		screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	}()
	if err := play(ctx, screen, doc, cfg); err != nil {
		t.Fatalf("play: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("quit key ignored")
	}
}
