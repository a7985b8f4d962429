package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/motion/pkg/shape"
)

// UpdateEnv names the environment variable that makes MatchesFile rewrite
// golden files instead of comparing against them.
const UpdateEnv = "MOTION_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the visible state of a list of shapes.
type Snapshot struct {
	Shapes []*ShapeNode `json:"shapes"`
}

// ShapeNode is one serialized shape.
type ShapeNode struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Props map[string]any `json:"props,omitempty"`
}

// CaptureSnapshot records shapes in drawing order. name supplies ids; when
// it is nil or returns "", ids like "box#0" are generated per type. Shapes
// other than Box and Label are recorded by type only.
func CaptureSnapshot(shapes []shape.Shape, name func(shape.Shape) string) *Snapshot {
	snap := &Snapshot{Shapes: []*ShapeNode{}}
	counter := &typeCounter{}
	for _, sh := range shapes {
		node := captureShape(sh)
		id := ""
		if name != nil {
			id = name(sh)
		}
		if id == "" {
			id = counter.next(node.Type)
		}
		node.ID = id
		snap.Shapes = append(snap.Shapes, node)
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When MOTION_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other, or "" when
// they are equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(typeName string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[typeName]
	c.counts[typeName] = n + 1
	return fmt.Sprintf("%s#%d", typeName, n)
}

func captureShape(sh shape.Shape) *ShapeNode {
	switch s := sh.(type) {
	case *shape.Box:
		st := s.Snapshot()
		b := st.Bounds
		return &ShapeNode{Type: "box", Props: map[string]any{
			"bounds":      []float64{round2(b.Left), round2(b.Top), round2(b.Right), round2(b.Bottom)},
			"fill":        st.Fill.String(),
			"stroke":      st.Stroke.String(),
			"strokeWidth": round2(st.StrokeWidth),
			"opacity":     st.Opacity,
			"rotation":    round2(st.Rotation),
		}}
	case *shape.Label:
		st := s.Snapshot()
		return &ShapeNode{Type: "label", Props: map[string]any{
			"position": []float64{round2(st.Position.X), round2(st.Position.Y)},
			"text":     st.Text,
			"textSize": st.TextSize,
			"fill":     st.Fill.String(),
			"opacity":  st.Opacity,
			"rotation": round2(st.Rotation),
		}}
	default:
		return &ShapeNode{Type: fmt.Sprintf("%T", sh)}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := 0; i < max(len(expectedLines), len(actualLines)); i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}
	return buf.String()
}
