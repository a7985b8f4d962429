package scene

import (
	"errors"
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/go-drift/motion/pkg/animation"
	motionerrors "github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/graphics"
	"github.com/go-drift/motion/pkg/shape"
)

// Shape kinds.
const (
	KindBox   = "box"
	KindLabel = "label"
)

// Validation errors. Validate wraps them with the offending location.
var (
	ErrVersion     = errors.New("unsupported scene version")
	ErrDuplicateID = errors.New("duplicate shape id")
	ErrUnknownKind = errors.New("unknown shape kind")
	ErrUnknownID   = errors.New("unknown shape id")
	ErrVector      = errors.New("wrong number of coordinates")
	ErrRange       = errors.New("value out of range")
	ErrProperty    = errors.New("property not supported by shape kind")
	ErrEasing      = errors.New("unknown easing")
	ErrNoTargets   = errors.New("animation has no end values")
)

// Validate checks the whole document and returns every problem found,
// joined, as a single KindScene error. A nil result means Build will
// succeed.
func (d *Document) Validate() error {
	var errs []error
	add := func(where string, err error) {
		errs = append(errs, fmt.Errorf("%s: %w", where, err))
	}

	switch {
	case !semver.IsValid(d.Version):
		add("version", fmt.Errorf("%w: %q is not a semantic version", ErrVersion, d.Version))
	case semver.Major(d.Version) != SupportedMajor:
		add("version", fmt.Errorf("%w: %s, want %s.x", ErrVersion, d.Version, SupportedMajor))
	}
	if d.FrameInterval < 0 {
		add("frame_interval", fmt.Errorf("%w: %v", ErrRange, d.FrameInterval.Std()))
	}

	kinds := make(map[string]string, len(d.Shapes))
	for i, s := range d.Shapes {
		where := fmt.Sprintf("shapes[%d]", i)
		if s.ID != "" {
			where = fmt.Sprintf("shape %q", s.ID)
		}
		if s.ID == "" {
			add(where, errors.New("missing id"))
		} else if _, dup := kinds[s.ID]; dup {
			add(where, ErrDuplicateID)
		} else {
			kinds[s.ID] = s.Kind
		}
		for _, err := range validateShape(s) {
			add(where, err)
		}
	}

	for i, a := range d.Animations {
		where := fmt.Sprintf("animations[%d]", i)
		if a.Name != "" {
			where = fmt.Sprintf("animation %q", a.Name)
		}
		kind, ok := kinds[a.Target]
		if !ok {
			add(where, fmt.Errorf("%w %q", ErrUnknownID, a.Target))
		}
		for _, err := range validateAnimation(a, kind) {
			add(where, err)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return motionerrors.New("scene.Validate", motionerrors.KindScene, errors.Join(errs...))
}

func validateShape(s ShapeSpec) []error {
	var errs []error
	switch s.Kind {
	case KindBox:
		if err := checkVector("bounds", s.Bounds, 4, true); err != nil {
			errs = append(errs, err)
		} else if s.Bounds[2] < 0 || s.Bounds[3] < 0 {
			errs = append(errs, fmt.Errorf("bounds: %w: negative size", ErrRange))
		}
		if s.Position != nil {
			errs = append(errs, fmt.Errorf("position: %w (use bounds)", ErrProperty))
		}
		if s.Text != "" || s.TextSize != nil {
			errs = append(errs, fmt.Errorf("text: %w", ErrProperty))
		}
	case KindLabel:
		if err := checkVector("position", s.Position, 2, true); err != nil {
			errs = append(errs, err)
		}
		if s.Bounds != nil {
			errs = append(errs, fmt.Errorf("bounds: %w", ErrProperty))
		}
		if s.Stroke != "" || s.StrokeWidth != nil {
			errs = append(errs, fmt.Errorf("stroke: %w", ErrProperty))
		}
		if s.TextSize != nil && *s.TextSize < 0 {
			errs = append(errs, fmt.Errorf("text_size: %w: %d", ErrRange, *s.TextSize))
		}
	default:
		return []error{fmt.Errorf("%w %q (want %s or %s)", ErrUnknownKind, s.Kind, KindBox, KindLabel)}
	}
	errs = append(errs, checkColor("fill", s.Fill), checkColor("stroke", s.Stroke))
	if s.StrokeWidth != nil && *s.StrokeWidth < 0 {
		errs = append(errs, fmt.Errorf("stroke_width: %w: %v", ErrRange, *s.StrokeWidth))
	}
	errs = append(errs, checkOpacity(s.Opacity))
	return compact(errs)
}

func validateAnimation(a AnimationSpec, kind string) []error {
	var errs []error
	if a.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration: %w", animation.ErrInvalidDuration))
	}
	if a.Delay < 0 {
		errs = append(errs, fmt.Errorf("delay: %w", animation.ErrNegativeDelay))
	}
	if a.Easing != "" {
		if _, ok := animation.CurveByName(a.Easing); !ok {
			errs = append(errs, fmt.Errorf("%w %q", ErrEasing, a.Easing))
		}
	}
	if _, err := animation.ParseRepeatPolicy(a.Repeat); err != nil {
		errs = append(errs, err)
	}

	to := a.To
	if to.empty() {
		return append(errs, ErrNoTargets)
	}
	errs = append(errs,
		checkVector("to.position", to.Position, 2, false),
		checkVector("to.move_by", to.MoveBy, 2, false),
		checkVector("to.bounds", to.Bounds, 4, false),
		checkColor("to.fill", to.Fill),
		checkColor("to.stroke", to.Stroke),
		checkOpacity(to.Opacity),
	)
	if to.TextSize != nil && *to.TextSize < 0 {
		errs = append(errs, fmt.Errorf("to.text_size: %w: %d", ErrRange, *to.TextSize))
	}
	if to.StrokeWidth != nil && *to.StrokeWidth < 0 {
		errs = append(errs, fmt.Errorf("to.stroke_width: %w: %v", ErrRange, *to.StrokeWidth))
	}
	if kind == KindLabel {
		if to.Bounds != nil {
			errs = append(errs, fmt.Errorf("to.bounds: %w", ErrProperty))
		}
		if to.Stroke != "" || to.StrokeWidth != nil {
			errs = append(errs, fmt.Errorf("to.stroke: %w", ErrProperty))
		}
	}
	if kind == KindBox && to.TextSize != nil {
		errs = append(errs, fmt.Errorf("to.text_size: %w", ErrProperty))
	}
	return compact(errs)
}

func checkVector(field string, v []float64, n int, required bool) error {
	if v == nil && !required {
		return nil
	}
	if len(v) != n {
		return fmt.Errorf("%s: %w: got %d, want %d", field, ErrVector, len(v), n)
	}
	return nil
}

func checkColor(field, s string) error {
	if s == "" {
		return nil
	}
	if _, err := graphics.ParseColor(s); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

func checkOpacity(o *int) error {
	if o != nil && (*o < 0 || *o > shape.MaxOpacity) {
		return fmt.Errorf("opacity: %w: %d not in [0, %d]", ErrRange, *o, shape.MaxOpacity)
	}
	return nil
}

func compact(errs []error) []error {
	out := errs[:0]
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}
