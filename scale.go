package pxscale

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type specKind uint8

const (
	specNone specKind = iota
	specFactor
	specWidth
	specHeight
	specSize
	specStretch
)

// ScaleSpec describes how large the output should be. It is a closed set of
// variants built by Factor, TargetWidth, TargetHeight, TargetSize and
// StretchTo. The zero value means "no scaling requested" and resolves to 1.
type ScaleSpec struct {
	kind   specKind
	factor float64
	width  int
	height int
}

// Factor requests an explicit multiplier, such as 4 or 4.5.
func Factor(f float64) ScaleSpec { return ScaleSpec{kind: specFactor, factor: f} }

// TargetWidth requests an output width; height follows the aspect ratio.
func TargetWidth(w int) ScaleSpec { return ScaleSpec{kind: specWidth, width: w} }

// TargetHeight requests an output height; width follows the aspect ratio.
func TargetHeight(h int) ScaleSpec { return ScaleSpec{kind: specHeight, height: h} }

// TargetSize requests the largest aspect-preserving output that fits inside
// w x h.
func TargetSize(w, h int) ScaleSpec { return ScaleSpec{kind: specSize, width: w, height: h} }

// StretchTo requests exactly w x h, scaling each axis independently.
func StretchTo(w, h int) ScaleSpec { return ScaleSpec{kind: specStretch, width: w, height: h} }

// IsZero reports whether s is the zero ScaleSpec.
func (s ScaleSpec) IsZero() bool { return s.kind == specNone }

// String formats s in the syntax accepted by ParseScaleSpec.
func (s ScaleSpec) String() string {
	switch s.kind {
	case specFactor:
		return strconv.FormatFloat(s.factor, 'g', -1, 64) + "x"
	case specWidth:
		return "w=" + strconv.Itoa(s.width)
	case specHeight:
		return "h=" + strconv.Itoa(s.height)
	case specSize:
		return fmt.Sprintf("%dx%d", s.width, s.height)
	case specStretch:
		return fmt.Sprintf("%dx%d!", s.width, s.height)
	default:
		return "1x"
	}
}

// ParseScaleSpec parses the textual forms
//
//	4.5 or 4.5x   Factor(4.5)
//	w=72          TargetWidth(72)
//	h=64          TargetHeight(64)
//	72x72         TargetSize(72, 72)
//	72x48!        StretchTo(72, 48)
//
// An empty string yields the zero ScaleSpec. Values are not range-checked
// here; Resolve reports ErrInvalidScale for them.
func ParseScaleSpec(text string) (ScaleSpec, error) {
	t := strings.TrimSpace(strings.ToLower(text))
	if t == "" {
		return ScaleSpec{}, nil
	}

	bad := func() (ScaleSpec, error) {
		return ScaleSpec{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidScale, text)
	}

	switch {
	case strings.HasPrefix(t, "w="):
		n, err := strconv.Atoi(t[2:])
		if err != nil {
			return bad()
		}
		return TargetWidth(n), nil
	case strings.HasPrefix(t, "h="):
		n, err := strconv.Atoi(t[2:])
		if err != nil {
			return bad()
		}
		return TargetHeight(n), nil
	}

	if ws, hs, ok := strings.Cut(strings.TrimSuffix(t, "!"), "x"); ok && hs != "" {
		w, errW := strconv.Atoi(ws)
		h, errH := strconv.Atoi(hs)
		if errW != nil || errH != nil {
			return bad()
		}
		if strings.HasSuffix(t, "!") {
			return StretchTo(w, h), nil
		}
		return TargetSize(w, h), nil
	}

	f, err := strconv.ParseFloat(strings.TrimSuffix(t, "x"), 64)
	if err != nil {
		return bad()
	}
	return Factor(f), nil
}

// Resolve turns spec into a single scale factor for a width x height source.
//
//	Factor(f)          f, unclamped
//	TargetWidth(w)     w / width
//	TargetHeight(h)    h / height
//	TargetSize(w, h)   min(w/width, h/height)
//	StretchTo(w, h)    min(w/width, h/height); see ResolveAxes
//	zero value         1
//
// Non-positive source dimensions yield ErrInvalidSource. A non-positive, NaN
// or infinite factor, or a non-positive target dimension, yields
// ErrInvalidScale.
func Resolve(spec ScaleSpec, width, height int) (float64, error) {
	fx, fy, err := ResolveAxes(spec, width, height)
	if err != nil {
		return 0, err
	}
	return math.Min(fx, fy), nil
}

// ResolveAxes is Resolve with a factor per axis. Every variant except
// StretchTo returns the same factor twice.
func ResolveAxes(spec ScaleSpec, width, height int) (fx, fy float64, err error) {
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidSource, width, height)
	}

	switch spec.kind {
	case specNone:
		return 1, 1, nil
	case specFactor:
		if !validFactor(spec.factor) {
			return 0, 0, fmt.Errorf("%w: factor %v", ErrInvalidScale, spec.factor)
		}
		return spec.factor, spec.factor, nil
	case specWidth:
		if spec.width <= 0 {
			return 0, 0, fmt.Errorf("%w: target width %d", ErrInvalidScale, spec.width)
		}
		f := float64(spec.width) / float64(width)
		return f, f, nil
	case specHeight:
		if spec.height <= 0 {
			return 0, 0, fmt.Errorf("%w: target height %d", ErrInvalidScale, spec.height)
		}
		f := float64(spec.height) / float64(height)
		return f, f, nil
	case specSize, specStretch:
		if spec.width <= 0 || spec.height <= 0 {
			return 0, 0, fmt.Errorf("%w: target size %dx%d", ErrInvalidScale, spec.width, spec.height)
		}
		fx = float64(spec.width) / float64(width)
		fy = float64(spec.height) / float64(height)
		if spec.kind == specStretch {
			return fx, fy, nil
		}
		f := math.Min(fx, fy)
		return f, f, nil
	default:
		return 0, 0, fmt.Errorf("%w: unknown spec kind %d", ErrInvalidScale, spec.kind)
	}
}

// EffectiveFactor clamps a resolved factor to at least 1: pxscale only
// upsamples, since shrinking pixel art destroys it.
func EffectiveFactor(f float64) float64 {
	return math.Max(f, 1)
}

func validFactor(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
