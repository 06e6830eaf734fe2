package attr

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"

	"github.com/gogpu/ggchart"
)

// Normalize turns a change request into canonical values.
//
// Shorthands are expanded first: translation/translate {x, y};
// scaling/scale as a number for both axes or {x, y, centerX, centerY};
// rotation/rotate as degrees or {rads | degrees, centerX, centerY}; and
// matrix, which also yields the decomposed rotation, scaling and
// translation with both centers reset to the origin. Explicit canonical
// keys override shorthand expansions, except that matrix-derived
// components always win so the matrix stays consistent.
//
// Every remaining key is alias-resolved and run through its processor.
// Rejected values are dropped and logged at debug level. Keys without a
// processor are dropped unless keepUnrecognized is set.
//
// The only error is a configuration error: a matrix that cannot be
// decomposed returns ggchart.ErrDegenerateTransform.
func (s *Schema) Normalize(changes Changes, keepUnrecognized bool) (Values, error) {
	return s.normalize(changes, keepUnrecognized, false)
}

// NormalizeBatch is Normalize for batched shapes that carry one value per
// instance: slice inputs to scalar processors are processed element-wise
// and rejected elements become nil.
func (s *Schema) NormalizeBatch(changes Changes, keepUnrecognized bool) (Values, error) {
	return s.normalize(changes, keepUnrecognized, true)
}

func (s *Schema) normalize(changes Changes, keep, batched bool) (Values, error) {
	raw := make(Changes, len(changes))

	if v, ok := firstOf(changes, keyTranslation, keyTranslate); ok {
		expandTranslation(v, raw)
	}
	if v, ok := firstOf(changes, keyScaling, keyScale); ok {
		expandScaling(v, raw)
	}
	if v, ok := firstOf(changes, keyRotation, keyRotate); ok {
		expandRotation(v, raw)
	}

	// Keys are visited in sorted order so that, of two aliases for the
	// same attribute, the first in that order wins.
	aliased := make(map[string]bool)
	for _, k := range slices.Sorted(maps.Keys(changes)) {
		v := changes[k]
		if v == nil || isShorthand(k) || k == KeyMatrix {
			continue
		}
		name := s.Canonical(k)
		if name != k {
			if _, explicit := changes[name]; explicit || aliased[name] {
				continue
			}
			aliased[name] = true
		}
		raw[name] = v
	}

	if v, ok := changes[KeyMatrix]; ok && v != nil {
		if err := expandMatrix(v, raw); err != nil {
			return nil, err
		}
	}

	out := make(Values, len(raw))
	for name, v := range raw {
		p, ok := s.processors[name]
		if !ok {
			if keep {
				out[name] = v
			}
			continue
		}
		val, err := process(p, v, batched)
		if err != nil {
			ggchart.Logger().Debug("attr: value rejected", "attr", name, "err", err)
			continue
		}
		out[name] = val
	}
	return out, nil
}

func process(p Processor, v any, batched bool) (any, error) {
	if !batched || p.elementWise() {
		return p.Process(v)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return p.Process(v)
	}
	out := make([]any, rv.Len())
	for i := range out {
		e, err := p.Process(rv.Index(i).Interface())
		if err == nil {
			out[i] = e
		}
	}
	return out, nil
}

func firstOf(c Changes, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := c[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// member reads a named member of a shorthand object.
func member(v any, key string) (any, bool) {
	switch m := v.(type) {
	case map[string]any:
		x, ok := m[key]
		return x, ok && x != nil
	case Changes:
		x, ok := m[key]
		return x, ok && x != nil
	case map[string]float64:
		x, ok := m[key]
		return x, ok
	case ggchart.Point:
		switch key {
		case "x":
			return m.X, true
		case "y":
			return m.Y, true
		}
	}
	return nil, false
}

func copyMember(v any, key string, raw Changes, to string) {
	if x, ok := member(v, key); ok {
		raw[to] = x
	}
}

func expandTranslation(v any, raw Changes) {
	copyMember(v, "x", raw, KeyTranslationX)
	copyMember(v, "y", raw, KeyTranslationY)
}

func expandScaling(v any, raw Changes) {
	if f, ok := toFloat(v); ok {
		raw[KeyScalingX] = f
		raw[KeyScalingY] = f
		return
	}
	copyMember(v, "x", raw, KeyScalingX)
	copyMember(v, "y", raw, KeyScalingY)
	copyMember(v, "centerX", raw, KeyScalingCenterX)
	copyMember(v, "centerY", raw, KeyScalingCenterY)
}

func expandRotation(v any, raw Changes) {
	if f, ok := toFloat(v); ok {
		raw[KeyRotationRads] = degreesToRads(f)
		return
	}
	if r, ok := member(v, "rads"); ok {
		raw[KeyRotationRads] = r
	} else if d, ok := member(v, "degrees"); ok {
		raw[KeyRotationRads] = degreesValue(d)
	}
	copyMember(v, "centerX", raw, KeyRotationCenterX)
	copyMember(v, "centerY", raw, KeyRotationCenterY)
}

// degreesValue converts a scalar or a slice of degrees to radians.
// Non-numeric input is left for the processor to reject.
func degreesValue(d any) any {
	if f, ok := toFloat(d); ok {
		return degreesToRads(f)
	}
	series, err := toSeries(d)
	if err != nil {
		return d
	}
	rads := series.([]float64)
	for i := range rads {
		rads[i] = degreesToRads(rads[i])
	}
	return rads
}

func degreesToRads(d float64) float64 {
	return d / 180 * math.Pi
}

func expandMatrix(v any, raw Changes) error {
	m, err := ToMatrix(v)
	if err != nil {
		ggchart.Logger().Debug("attr: value rejected", "attr", KeyMatrix, "err", err)
		return nil
	}
	c, err := ggchart.Decompose(m)
	if err != nil {
		return fmt.Errorf("attr: %s %v: %w", KeyMatrix, m.Elements(), err)
	}
	raw[KeyMatrix] = m
	raw[KeyRotationRads] = c.RotationRads
	raw[KeyRotationCenterX] = 0.0
	raw[KeyRotationCenterY] = 0.0
	raw[KeyScalingX] = c.ScalingX
	raw[KeyScalingY] = c.ScalingY
	raw[KeyScalingCenterX] = 0.0
	raw[KeyScalingCenterY] = 0.0
	raw[KeyTranslationX] = c.TranslationX
	raw[KeyTranslationY] = c.TranslationY
	return nil
}
