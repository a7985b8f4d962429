package errors

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestMotionErrorString(t *testing.T) {
	err := New("animation.Play", KindConfig, stderrors.New("duration must be positive"))
	got := err.Error()
	want := "animation.Play [config]: duration must be positive"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestMotionErrorUnwrap(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := New("op", KindScene, sentinel)
	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should see through MotionError")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfig, "config"},
		{KindListener, "listener"},
		{KindAdvance, "advance"},
		{KindScene, "scene"},
		{KindRender, "render"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom"}
	if got := err.Error(); got != "panic: boom" {
		t.Errorf("Error() = %q", got)
	}
	err.Op = "scheduler.tick"
	if got := err.Error(); got != "panic in scheduler.tick: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestReport(t *testing.T) {
	var captured *MotionError
	handler := &testHandler{onError: func(err *MotionError) { captured = err }}

	oldHandler := Handler()
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(New("test.op", KindListener, stderrors.New("x")))

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	handler := &testHandler{onPanic: func(err *PanicError) { captured = err }}

	oldHandler := Handler()
	SetHandler(handler)
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v", captured.Value)
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q", captured.Op)
	}
	if captured.StackTrace == "" {
		t.Error("expected stack trace")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	oldHandler := Handler()
	SetHandler(&testHandler{})
	defer SetHandler(oldHandler)

	var got any
	func() {
		defer RecoverWithCallback("op", func(r any) { got = r })
		panic(42)
	}()
	if got != 42 {
		t.Errorf("callback value = %v, want 42", got)
	}
}

func TestSetHandlerNil(t *testing.T) {
	oldHandler := Handler()
	defer SetHandler(oldHandler)

	SetHandler(nil)
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", Handler())
	}
}

func TestLogHandlerWritesToLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	h := &LogHandler{Verbose: true}
	h.HandleError(New("scene.Load", KindScene, stderrors.New("bad yaml")))
	h.HandlePanic(&PanicError{Op: "listener", Value: "oops", StackTrace: "frame", Timestamp: time.Now()})

	out := buf.String()
	for _, want := range []string{"op=scene.Load", "kind=scene", "bad yaml", "value=oops", "stack=frame"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestDefaultLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

type testHandler struct {
	onError func(*MotionError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *MotionError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
