package attr

import (
	"fmt"
	"image/color"
	"math"
	"reflect"
	"slices"
	"strconv"

	"github.com/gogpu/ggchart"
)

// Kind identifies a processor variant.
type Kind uint8

const (
	KindPassthrough Kind = iota
	KindNumber
	KindBool
	KindClamped
	KindEnum
	KindColor
	KindText
	KindSeries
	KindEach
	KindMatrix
	KindCustom
)

var kindNames = [...]string{
	KindPassthrough: "passthrough",
	KindNumber:      "number",
	KindBool:        "bool",
	KindClamped:     "clamped",
	KindEnum:        "enum",
	KindColor:       "color",
	KindText:        "text",
	KindSeries:      "series",
	KindEach:        "each",
	KindMatrix:      "matrix",
	KindCustom:      "custom",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Processor validates and coerces one attribute value. Processors are
// values: build them with the constructors below.
type Processor struct {
	kind     Kind
	min, max float64
	values   []string
	elem     *Processor
	fn       func(any) (any, error)
}

// Passthrough accepts any value unchanged.
func Passthrough() Processor { return Processor{kind: KindPassthrough} }

// Number accepts any Go numeric type or numeric string and yields a
// float64. NaN is rejected.
func Number() Processor { return Processor{kind: KindNumber} }

// Bool coerces booleans, numbers (non-zero is true) and strconv.ParseBool
// strings.
func Bool() Processor { return Processor{kind: KindBool} }

// Clamped is Number with the result clamped to [lo, hi].
func Clamped(lo, hi float64) Processor { return Processor{kind: KindClamped, min: lo, max: hi} }

// Enum accepts one of the listed strings.
func Enum(values ...string) Processor { return Processor{kind: KindEnum, values: values} }

// Color accepts ggchart.RGBA, any color.Color, or a string understood by
// ggchart.ParseColor.
func Color() Processor { return Processor{kind: KindColor} }

// Text accepts strings, fmt.Stringer values and numbers.
func Text() Processor { return Processor{kind: KindText} }

// Series accepts a numeric slice and yields a fresh []float64. Elements
// that are not numbers become NaN gaps.
func Series() Processor { return Processor{kind: KindSeries} }

// Each applies elem to every element of a slice, yielding []any. Any
// rejected element rejects the whole value.
func Each(elem Processor) Processor { return Processor{kind: KindEach, elem: &elem} }

// MatrixProc accepts ggchart.Matrix, [6]float64, or a six-element slice.
func MatrixProc() Processor { return Processor{kind: KindMatrix} }

// Custom wraps fn. A non-nil error rejects the value.
func Custom(fn func(any) (any, error)) Processor { return Processor{kind: KindCustom, fn: fn} }

// Kind returns the processor variant.
func (p Processor) Kind() Kind { return p.kind }

// elementWise reports whether the processor consumes whole slices itself.
func (p Processor) elementWise() bool {
	return p.kind == KindSeries || p.kind == KindEach || p.kind == KindPassthrough || p.kind == KindCustom
}

func reject(v any, why string) error {
	return fmt.Errorf("%w: %v (%s)", ErrRejected, v, why)
}

// Process validates v. A rejected value returns an error wrapping
// ErrRejected.
func (p Processor) Process(v any) (any, error) {
	switch p.kind {
	case KindPassthrough:
		return v, nil
	case KindNumber:
		f, ok := toFloat(v)
		if !ok || math.IsNaN(f) {
			return nil, reject(v, "not a number")
		}
		return f, nil
	case KindBool:
		return toBool(v)
	case KindClamped:
		f, ok := toFloat(v)
		if !ok || math.IsNaN(f) {
			return nil, reject(v, "not a number")
		}
		return math.Max(p.min, math.Min(p.max, f)), nil
	case KindEnum:
		s, ok := v.(string)
		if !ok || !slices.Contains(p.values, s) {
			return nil, reject(v, fmt.Sprintf("not one of %v", p.values))
		}
		return s, nil
	case KindColor:
		return toColor(v)
	case KindText:
		return toText(v)
	case KindSeries:
		return toSeries(v)
	case KindEach:
		return p.each(v)
	case KindMatrix:
		m, err := ToMatrix(v)
		if err != nil {
			return nil, reject(v, err.Error())
		}
		return m, nil
	case KindCustom:
		out, err := p.fn(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRejected, err)
		}
		return out, nil
	}
	return nil, reject(v, "unknown processor")
}

func (p Processor) each(v any) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, reject(v, "not a slice")
	}
	out := make([]any, rv.Len())
	for i := range out {
		e, err := p.elem.Process(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = e
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func toBool(v any) (any, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		out, err := strconv.ParseBool(b)
		if err != nil {
			return nil, reject(v, "not a boolean")
		}
		return out, nil
	}
	if f, ok := toFloat(v); ok {
		return f != 0 && !math.IsNaN(f), nil
	}
	return nil, reject(v, "not a boolean")
}

func toColor(v any) (any, error) {
	switch c := v.(type) {
	case ggchart.RGBA:
		return c, nil
	case string:
		out, err := ggchart.ParseColor(c)
		if err != nil {
			return nil, reject(v, err.Error())
		}
		return out, nil
	case color.Color:
		return ggchart.FromColor(c), nil
	}
	return nil, reject(v, "not a color")
}

func toText(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return nil, reject(v, "not text")
}

func toSeries(v any) (any, error) {
	switch s := v.(type) {
	case []float64:
		return slices.Clone(s), nil
	case nil:
		return nil, reject(v, "not a slice")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, reject(v, "not a slice")
	}
	out := make([]float64, rv.Len())
	for i := range out {
		f, ok := toFloat(rv.Index(i).Interface())
		if !ok {
			f = math.NaN()
		}
		out[i] = f
	}
	return out, nil
}

// ToMatrix converts the accepted matrix representations.
func ToMatrix(v any) (ggchart.Matrix, error) {
	switch m := v.(type) {
	case ggchart.Matrix:
		return m, nil
	case [6]float64:
		return ggchart.MatrixFromSlice(m[:])
	case map[string]any:
		var vals [6]float64
		for i, k := range []string{"a", "b", "c", "d", "e", "f"} {
			f, ok := toFloat(m[k])
			if !ok {
				return ggchart.Matrix{}, fmt.Errorf("matrix element %q missing", k)
			}
			vals[i] = f
		}
		return ggchart.MatrixFromSlice(vals[:])
	}
	s, err := toSeries(v)
	if err != nil {
		return ggchart.Matrix{}, fmt.Errorf("unsupported matrix %T", v)
	}
	return ggchart.MatrixFromSlice(s.([]float64))
}
