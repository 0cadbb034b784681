package uniform

import (
	"fmt"
	"strconv"
	"strings"
)

// SpecError reports a malformed segment in a compact uniform spec
// string. The whole parse fails; there is no partial result.
type SpecError struct {
	Segment string
	Reason  string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("invalid uniform spec segment %q: %s", e.Segment, e.Reason)
}

// specTags maps the spec type tags to their uniform kinds.
var specTags = map[string]Kind{
	"f":  KindFloat,
	"v2": KindVec2,
	"v3": KindVec3,
	"v4": KindVec4,
	"i":  KindInt,
	"i2": KindIVec2,
	"i3": KindIVec3,
	"i4": KindIVec4,
}

// ParseSpec parses the compact construction form
// "name:type:v1[,v2,v3,v4]" with segments separated by ";", e.g.
// "time:f:0.0;color:v4:1.0,1.0,1.0,1.0". Any malformed segment fails
// the entire parse.
func ParseSpec(spec string) (map[string]Value, error) {
	out := make(map[string]Value)
	if strings.TrimSpace(spec) == "" {
		return out, nil
	}
	for _, segment := range strings.Split(spec, ";") {
		name, value, err := parseSegment(segment)
		if err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, nil
}

func parseSegment(segment string) (string, Value, error) {
	parts := strings.Split(segment, ":")
	if len(parts) != 3 {
		return "", Value{}, &SpecError{Segment: segment, Reason: "want name:type:values"}
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return "", Value{}, &SpecError{Segment: segment, Reason: "empty uniform name"}
	}

	kind, ok := specTags[strings.TrimSpace(parts[1])]
	if !ok {
		return "", Value{}, &SpecError{
			Segment: segment,
			Reason:  fmt.Sprintf("unknown type tag %q", strings.TrimSpace(parts[1])),
		}
	}

	fields := strings.Split(parts[2], ",")
	if len(fields) != kind.components() {
		return "", Value{}, &SpecError{
			Segment: segment,
			Reason: fmt.Sprintf("%s wants %d values, got %d",
				kind, kind.components(), len(fields)),
		}
	}

	switch kind {
	case KindInt, KindIVec2, KindIVec3, KindIVec4:
		ints := make([]int32, len(fields))
		for i, field := range fields {
			n, err := strconv.ParseInt(strings.TrimSpace(field), 10, 32)
			if err != nil {
				return "", Value{}, &SpecError{
					Segment: segment,
					Reason:  fmt.Sprintf("bad integer %q", strings.TrimSpace(field)),
				}
			}
			ints[i] = int32(n)
		}
		if kind == KindInt {
			return name, Int(ints[0]), nil
		}
		v, _ := ivecFromInts(ints)
		return name, v, nil
	default:
		floats := make([]float32, len(fields))
		for i, field := range fields {
			n, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
			if err != nil {
				return "", Value{}, &SpecError{
					Segment: segment,
					Reason:  fmt.Sprintf("bad number %q", strings.TrimSpace(field)),
				}
			}
			floats[i] = float32(n)
		}
		if kind == KindFloat {
			return name, Float(floats[0]), nil
		}
		v, _ := vecFromFloats(floats)
		return name, v, nil
	}
}
