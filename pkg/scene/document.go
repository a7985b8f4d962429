// Package scene loads animated scenes from YAML documents.
//
// A document declares shapes and the animations that drive them:
//
//	version: v1.0.0
//	frame_interval: 20ms
//	shapes:
//	  - {id: a, kind: box, bounds: [2, 2, 10, 4], fill: crimson}
//	animations:
//	  - target: a
//	    duration: 1s
//	    repeat: oscillate
//	    to: {position: [40, 2], fill: navy}
//
// Parse and Load only decode. Validate reports every problem at once, and
// Build turns a valid document into live shapes and unplayed animations.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	motionerrors "github.com/go-drift/motion/pkg/errors"
)

// SupportedMajor is the only document major version this package reads.
const SupportedMajor = "v1"

// Document is the decoded form of a scene file.
type Document struct {
	Version       string          `yaml:"version"`
	FrameInterval Duration        `yaml:"frame_interval,omitempty"`
	Shapes        []ShapeSpec     `yaml:"shapes"`
	Animations    []AnimationSpec `yaml:"animations,omitempty"`
}

// ShapeSpec declares one shape. Kind is "box" or "label".
type ShapeSpec struct {
	ID          string    `yaml:"id"`
	Kind        string    `yaml:"kind"`
	Bounds      []float64 `yaml:"bounds,omitempty"`
	Position    []float64 `yaml:"position,omitempty"`
	Text        string    `yaml:"text,omitempty"`
	TextSize    *int      `yaml:"text_size,omitempty"`
	Fill        string    `yaml:"fill,omitempty"`
	Stroke      string    `yaml:"stroke,omitempty"`
	StrokeWidth *float64  `yaml:"stroke_width,omitempty"`
	Opacity     *int      `yaml:"opacity,omitempty"`
	Rotation    *float64  `yaml:"rotation,omitempty"`
}

// AnimationSpec declares one animation of a shape.
type AnimationSpec struct {
	Name        string   `yaml:"name,omitempty"`
	Target      string   `yaml:"target"`
	Duration    Duration `yaml:"duration"`
	Delay       Duration `yaml:"delay,omitempty"`
	Easing      string   `yaml:"easing,omitempty"`
	Repeat      string   `yaml:"repeat,omitempty"`
	RemoveOnEnd bool     `yaml:"remove_on_end,omitempty"`
	To          Targets  `yaml:"to"`
}

// Targets lists the end values of an animation. Unset fields are not
// animated.
type Targets struct {
	Position    []float64 `yaml:"position,omitempty"`
	X           *float64  `yaml:"x,omitempty"`
	Y           *float64  `yaml:"y,omitempty"`
	MoveBy      []float64 `yaml:"move_by,omitempty"`
	Bounds      []float64 `yaml:"bounds,omitempty"`
	Fill        string    `yaml:"fill,omitempty"`
	Stroke      string    `yaml:"stroke,omitempty"`
	StrokeWidth *float64  `yaml:"stroke_width,omitempty"`
	Opacity     *int      `yaml:"opacity,omitempty"`
	Rotation    *float64  `yaml:"rotation,omitempty"`
	TextSize    *int      `yaml:"text_size,omitempty"`
}

func (t Targets) empty() bool {
	return t.Position == nil && t.X == nil && t.Y == nil && t.MoveBy == nil &&
		t.Bounds == nil && t.Fill == "" && t.Stroke == "" && t.StrokeWidth == nil &&
		t.Opacity == nil && t.Rotation == nil && t.TextSize == nil
}

// Duration is a time.Duration written in Go syntax, e.g. "250ms" or "1.5s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a string like \"500ms\"", value.Line)
	}
	v, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Parse decodes a scene document. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}
		return nil, motionerrors.New("scene.Parse", motionerrors.KindScene, err)
	}
	return &doc, nil
}

// Load reads and decodes the scene file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, motionerrors.New("scene.Load", motionerrors.KindScene, fmt.Errorf("failed to read %s: %w", path, err))
	}
	return Parse(data)
}

// Marshal encodes doc back to YAML.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
