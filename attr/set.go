package attr

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/gogpu/ggchart"
)

// Cascade guards for Apply. Updaters that keep re-applying changes to the
// same set are cut off once either bound is exceeded.
const (
	MaxDepth        = 32
	MaxUpdaterCalls = 4096
)

// Set is the live attribute state of one shape.
type Set struct {
	schema    *Schema
	owner     any
	values    Values
	transform Transform
	dirty     bool

	depth int
	calls int
}

// NewSet returns a set holding the schema defaults. owner is available to
// updaters through Owner.
func NewSet(schema *Schema, owner any) *Set {
	s := &Set{
		schema:    schema,
		owner:     owner,
		values:    schema.Defaults(),
		transform: IdentityTransform(),
		dirty:     true,
	}
	for _, k := range elementaryKeys {
		f := s.transform.field(k)
		if x, ok := s.values[k].(float64); ok {
			*f = x
		} else {
			s.values[k] = *f
		}
	}
	if m, ok := s.values[KeyMatrix].(ggchart.Matrix); ok {
		s.transform.Matrix = m
	} else {
		s.recompose()
	}
	return s
}

// Schema returns the schema the set was built from.
func (s *Set) Schema() *Schema { return s.schema }

// Owner returns the shape that owns the set.
func (s *Set) Owner() any { return s.owner }

// Apply normalizes changes and commits them.
//
// Every key that survives normalization counts as changed, even when the
// new value equals the old one. The union of updaters triggered by those
// keys runs once each, in declaration order. An updater may call Apply on
// the same set; the nested call completes fully before returning.
//
// A configuration error aborts before anything is stored. Updater errors
// are collected and returned after the pass finishes.
func (s *Set) Apply(changes Changes) error {
	if s.depth >= MaxDepth {
		return fmt.Errorf("%w: depth %d", ErrCascadeLimit, s.depth)
	}
	vals, err := s.schema.Normalize(changes, false)
	if err != nil {
		return err
	}
	return s.commit(vals)
}

// ApplyNormalized commits values that are already canonical, such as
// frames produced by Tween.
func (s *Set) ApplyNormalized(vals Values) error {
	if s.depth >= MaxDepth {
		return fmt.Errorf("%w: depth %d", ErrCascadeLimit, s.depth)
	}
	return s.commit(maps.Clone(vals))
}

func (s *Set) commit(vals Values) error {
	if s.depth == 0 {
		s.calls = 0
	}
	s.depth++
	defer func() { s.depth-- }()

	keys := slices.Sorted(maps.Keys(vals))
	_, hasMatrix := vals[KeyMatrix]
	recompose := false
	for _, k := range keys {
		recompose = s.assign(k, vals[k]) || recompose
	}
	if recompose && !hasMatrix {
		s.recompose()
	}

	triggered := make(map[string][]string)
	for _, k := range keys {
		for _, u := range s.schema.triggers[k] {
			if u == UpdaterCanvas {
				s.dirty = true
				continue
			}
			triggered[u] = append(triggered[u], k)
		}
	}
	if len(triggered) == 0 {
		return nil
	}

	names := slices.SortedFunc(maps.Keys(triggered), func(a, b string) int {
		return cmp.Compare(s.schema.order[a], s.schema.order[b])
	})
	var errs []error
	for _, name := range names {
		s.calls++
		if s.calls > MaxUpdaterCalls {
			errs = append(errs, fmt.Errorf("%w: %d updater calls", ErrCascadeLimit, MaxUpdaterCalls))
			return errors.Join(errs...)
		}
		ggchart.Logger().Debug("attr: updater", "name", name, "depth", s.depth, "changed", triggered[name])
		u := s.schema.updaters[s.schema.order[name]]
		if err := u.Fn(s, triggered[name]); err != nil {
			errs = append(errs, fmt.Errorf("attr: updater %s: %w", name, err))
			if errors.Is(err, ErrCascadeLimit) {
				return errors.Join(errs...)
			}
		}
	}
	return errors.Join(errs...)
}

// assign stores one value and reports whether it touched an elementary
// transform field.
func (s *Set) assign(k string, v any) bool {
	s.values[k] = v
	if k == KeyMatrix {
		if m, ok := v.(ggchart.Matrix); ok {
			s.transform.Matrix = m
		}
		return false
	}
	f := s.transform.field(k)
	if f == nil {
		return false
	}
	x, ok := v.(float64)
	if !ok {
		return false
	}
	*f = x
	return true
}

func (s *Set) recompose() {
	s.transform.Matrix = ComposeAround(s.transform)
	s.values[KeyMatrix] = s.transform.Matrix
}

// Put stores a value directly, bypassing normalization and triggers.
// Updaters use it for derived state.
func (s *Set) Put(name string, v any) {
	if s.assign(name, v) {
		s.recompose()
	}
}

// Get returns the value of an attribute or alias.
func (s *Set) Get(name string) (any, bool) {
	v, ok := s.values[s.schema.Canonical(name)]
	return v, ok
}

// Float returns a numeric attribute, or NaN when it is unset or not a
// number.
func (s *Set) Float(name string) float64 {
	v, _ := s.Get(name)
	if f, ok := toFloat(v); ok {
		return f
	}
	return math.NaN()
}

// Bool returns a boolean attribute, false when unset.
func (s *Set) Bool(name string) bool {
	v, _ := s.Get(name)
	b, _ := v.(bool)
	return b
}

// Text returns a string attribute, "" when unset.
func (s *Set) Text(name string) string {
	v, _ := s.Get(name)
	str, _ := v.(string)
	return str
}

// Color returns a color attribute, transparent when unset.
func (s *Set) Color(name string) ggchart.RGBA {
	v, _ := s.Get(name)
	c, _ := v.(ggchart.RGBA)
	return c
}

// Floats returns a numeric series attribute. The slice is shared with the
// set and must not be modified.
func (s *Set) Floats(name string) []float64 {
	v, _ := s.Get(name)
	switch f := v.(type) {
	case []float64:
		return f
	case []any:
		out := make([]float64, len(f))
		for i, e := range f {
			x, ok := toFloat(e)
			if !ok {
				x = math.NaN()
			}
			out[i] = x
		}
		return out
	}
	return nil
}

// Transform returns the canonical transform record.
func (s *Set) Transform() Transform { return s.transform }

// Matrix returns the shape matrix.
func (s *Set) Matrix() ggchart.Matrix { return s.transform.Matrix }

// Values returns a snapshot of every stored value.
func (s *Set) Values() Values { return maps.Clone(s.values) }

// Dirty reports whether a surface-facing attribute changed since the last
// ClearDirty.
func (s *Set) Dirty() bool { return s.dirty }

// ClearDirty resets the dirty flag after a render.
func (s *Set) ClearDirty() { s.dirty = false }
