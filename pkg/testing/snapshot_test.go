package testing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/motion/pkg/graphics"
	"github.com/go-drift/motion/pkg/shape"
)

func testShapes() []shape.Shape {
	box := shape.NewBox(graphics.RectFromLTWH(1, 2, 3, 4), graphics.ColorRed)
	label := shape.NewLabel(graphics.Offset{X: 5, Y: 6}, "hi", graphics.ColorWhite)
	return []shape.Shape{box, label, shape.NewBox(graphics.Rect{}, graphics.ColorBlue)}
}

func TestCaptureSnapshot_GeneratesIDs(t *testing.T) {
	snap := CaptureSnapshot(testShapes(), nil)
	var ids []string
	for _, n := range snap.Shapes {
		ids = append(ids, n.ID)
	}
	if got := strings.Join(ids, ","); got != "box#0,label#0,box#1" {
		t.Errorf("ids = %s", got)
	}
	if snap.Shapes[0].Props["fill"] != "#ff0000ff" {
		t.Errorf("fill = %v", snap.Shapes[0].Props["fill"])
	}
	if snap.Shapes[1].Props["text"] != "hi" {
		t.Errorf("text = %v", snap.Shapes[1].Props["text"])
	}
}

func TestCaptureSnapshot_UsesNames(t *testing.T) {
	shapes := testShapes()
	snap := CaptureSnapshot(shapes, func(sh shape.Shape) string {
		if sh == shapes[1] {
			return "title"
		}
		return ""
	})
	if snap.Shapes[1].ID != "title" || snap.Shapes[2].ID != "box#1" {
		t.Errorf("ids = %s, %s", snap.Shapes[1].ID, snap.Shapes[2].ID)
	}
}

func TestSnapshot_Diff(t *testing.T) {
	shapes := testShapes()
	a := CaptureSnapshot(shapes, nil)
	if diff := a.Diff(CaptureSnapshot(shapes, nil)); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}

	shapes[0].(*shape.Box).SetOpacity(10)
	diff := a.Diff(CaptureSnapshot(shapes, nil))
	if !strings.Contains(diff, `-        "opacity": 10`) || !strings.Contains(diff, `+        "opacity": 255`) {
		t.Errorf("diff does not show the opacity change:\n%s", diff)
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	snap := CaptureSnapshot(testShapes(), nil)
	path := filepath.Join(t.TempDir(), "testdata", "shapes.snapshot.json")

	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}
	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	snap := CaptureSnapshot(testShapes(), nil)

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, filepath.Join(t.TempDir(), "missing.json"))

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	shapes := testShapes()
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := CaptureSnapshot(shapes, nil).UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	shapes[0].(*shape.Box).SetRotation(45)
	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	CaptureSnapshot(shapes, nil).MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	snap := CaptureSnapshot(testShapes(), nil)
	path := filepath.Join(t.TempDir(), "update.snapshot.json")

	t.Setenv(UpdateEnv, "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
