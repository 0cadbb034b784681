// Package uniform models the values that can be fed to a fragment
// shader at runtime: a closed set of scalar and vector variants over
// float32 and int32, a tolerant converter for dynamically typed
// caller input, and a name-keyed table that tracks what still needs
// uploading to the current program.
package uniform

import (
	"fmt"
	"log"

	"github.com/fragview/fragview/glx"
)

// Kind identifies the GLSL type a Value carries.
type Kind uint8

const (
	KindFloat Kind = iota
	KindVec2
	KindVec3
	KindVec4
	KindInt
	KindIVec2
	KindIVec3
	KindIVec4
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindVec4:
		return "vec4"
	case KindInt:
		return "int"
	case KindIVec2:
		return "ivec2"
	case KindIVec3:
		return "ivec3"
	case KindIVec4:
		return "ivec4"
	}
	return "unknown"
}

// components reports the payload arity for the kind.
func (k Kind) components() int {
	switch k {
	case KindFloat, KindInt:
		return 1
	case KindVec2, KindIVec2:
		return 2
	case KindVec3, KindIVec3:
		return 3
	default:
		return 4
	}
}

// Value is an immutable tagged variant. The kind fixes both the upload
// call and the number of payload components; updates replace the whole
// value.
type Value struct {
	kind Kind
	f    [4]float32
	i    [4]int32
}

func Float(v float32) Value         { return Value{kind: KindFloat, f: [4]float32{v}} }
func Vec2(x, y float32) Value       { return Value{kind: KindVec2, f: [4]float32{x, y}} }
func Vec3(x, y, z float32) Value    { return Value{kind: KindVec3, f: [4]float32{x, y, z}} }
func Vec4(x, y, z, w float32) Value { return Value{kind: KindVec4, f: [4]float32{x, y, z, w}} }
func Int(v int32) Value             { return Value{kind: KindInt, i: [4]int32{v}} }
func IVec2(x, y int32) Value        { return Value{kind: KindIVec2, i: [4]int32{x, y}} }
func IVec3(x, y, z int32) Value     { return Value{kind: KindIVec3, i: [4]int32{x, y, z}} }
func IVec4(x, y, z, w int32) Value  { return Value{kind: KindIVec4, i: [4]int32{x, y, z, w}} }

func (v Value) Kind() Kind { return v.kind }

// Floats returns the float payload for float-kinded values.
func (v Value) Floats() []float32 {
	return v.f[:v.kind.components()]
}

// Ints returns the integer payload for integer-kinded values.
func (v Value) Ints() []int32 {
	return v.i[:v.kind.components()]
}

// Equal compares by kind and payload value.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.f == o.f && v.i == o.i
}

func (v Value) String() string {
	switch v.kind {
	case KindFloat, KindVec2, KindVec3, KindVec4:
		return fmt.Sprintf("%s%v", v.kind, v.Floats())
	default:
		return fmt.Sprintf("%s%v", v.kind, v.Ints())
	}
}

// Upload issues the type-matched uniform call for location.
func (v Value) Upload(g glx.Funcs, location int32) {
	switch v.kind {
	case KindFloat:
		g.Uniform1f(location, v.f[0])
	case KindVec2:
		g.Uniform2f(location, v.f[0], v.f[1])
	case KindVec3:
		g.Uniform3f(location, v.f[0], v.f[1], v.f[2])
	case KindVec4:
		g.Uniform4f(location, v.f[0], v.f[1], v.f[2], v.f[3])
	case KindInt:
		g.Uniform1i(location, v.i[0])
	case KindIVec2:
		g.Uniform2i(location, v.i[0], v.i[1])
	case KindIVec3:
		g.Uniform3i(location, v.i[0], v.i[1], v.i[2])
	case KindIVec4:
		g.Uniform4i(location, v.i[0], v.i[1], v.i[2], v.i[3])
	}
}

// InvalidValueError reports caller input that does not classify into
// any supported variant.
type InvalidValueError struct {
	Name   string
	Reason string
}

func (e *InvalidValueError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid uniform value: %s", e.Reason)
	}
	return fmt.Sprintf("invalid uniform value %q: %s", e.Name, e.Reason)
}

// FromAny classifies a dynamically typed value into exactly one
// variant: numeric scalars become Float or Int, numeric slices of
// length 2..4 become the matching vector. Everything else fails.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case float32:
		return Float(x), nil
	case float64:
		return Float(float32(x)), nil
	case int:
		return Int(int32(x)), nil
	case int32:
		return Int(x), nil
	case int64:
		return Int(int32(x)), nil
	case []float32:
		return vecFromFloats(toF32(x))
	case []float64:
		return vecFromFloats(toF32(x))
	case []int:
		return ivecFromInts(toI32(x))
	case []int32:
		return ivecFromInts(toI32(x))
	case []int64:
		return ivecFromInts(toI32(x))
	case []any:
		return fromAnySlice(x)
	}
	return Value{}, &InvalidValueError{Reason: fmt.Sprintf("unsupported type %T", v)}
}

func toF32[T float32 | float64](s []T) []float32 {
	out := make([]float32, len(s))
	for i, v := range s {
		out[i] = float32(v)
	}
	return out
}

func toI32[T int | int32 | int64](s []T) []int32 {
	out := make([]int32, len(s))
	for i, v := range s {
		out[i] = int32(v)
	}
	return out
}

func vecFromFloats(s []float32) (Value, error) {
	switch len(s) {
	case 2:
		return Vec2(s[0], s[1]), nil
	case 3:
		return Vec3(s[0], s[1], s[2]), nil
	case 4:
		return Vec4(s[0], s[1], s[2], s[3]), nil
	}
	return Value{}, &InvalidValueError{
		Reason: fmt.Sprintf("array has %d elements (expected 2, 3, or 4)", len(s)),
	}
}

func ivecFromInts(s []int32) (Value, error) {
	switch len(s) {
	case 2:
		return IVec2(s[0], s[1]), nil
	case 3:
		return IVec3(s[0], s[1], s[2]), nil
	case 4:
		return IVec4(s[0], s[1], s[2], s[3]), nil
	}
	return Value{}, &InvalidValueError{
		Reason: fmt.Sprintf("array has %d elements (expected 2, 3, or 4)", len(s)),
	}
}

// fromAnySlice handles untyped slices, as produced by JSON decoding or
// scripting bridges. All-integer slices classify as integer vectors,
// otherwise every element must be numeric.
func fromAnySlice(s []any) (Value, error) {
	ints := make([]int32, 0, len(s))
	allInts := true
	for _, e := range s {
		switch n := e.(type) {
		case int:
			ints = append(ints, int32(n))
		case int32:
			ints = append(ints, n)
		case int64:
			ints = append(ints, int32(n))
		default:
			allInts = false
		}
		if !allInts {
			break
		}
	}
	if allInts {
		return ivecFromInts(ints)
	}

	floats := make([]float32, 0, len(s))
	for _, e := range s {
		switch n := e.(type) {
		case float32:
			floats = append(floats, n)
		case float64:
			floats = append(floats, float32(n))
		case int:
			floats = append(floats, float32(n))
		case int32:
			floats = append(floats, float32(n))
		case int64:
			floats = append(floats, float32(n))
		default:
			return Value{}, &InvalidValueError{
				Reason: fmt.Sprintf("array element has unsupported type %T", e),
			}
		}
	}
	return vecFromFloats(floats)
}

// FromMap converts a dictionary of dynamically typed values. Entries
// that fail to classify are logged and skipped so the remaining valid
// uniforms still take effect; this partial tolerance is deliberate and
// distinct from the all-or-nothing texture and shader paths.
func FromMap(m map[string]any) map[string]Value {
	out := make(map[string]Value, len(m))
	for name, raw := range m {
		v, err := FromAny(raw)
		if err != nil {
			if ive, ok := err.(*InvalidValueError); ok {
				ive.Name = name
			}
			log.Printf("Skipping uniform %q: %v", name, err)
			continue
		}
		out[name] = v
	}
	return out
}
